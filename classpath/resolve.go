/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package classpath

import (
	"github.com/launix-de/memjit/itable"
	"github.com/pkg/errors"
)

// ResolveMethod finds the interface method a call site naming class, name
// and desc refers to: the class's own method if it is an interface, else
// the first match among its interfaces and superinterfaces, then those of
// its superclasses.
func (r *Registry) ResolveMethod(class, name, desc string) (*itable.Method, error) {
	key := class + "." + name + desc
	if m, ok := r.cache.Get(key); ok {
		return m, nil
	}
	start, ok := r.Lookup(class)
	if !ok {
		return nil, errors.Wrap(ErrClassNotFound, class)
	}
	visited := make(map[string]bool)
	queue := []*itable.ClassInfo{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if visited[c.ClassName] {
			continue
		}
		visited[c.ClassName] = true
		if c.Interface {
			if m := c.FindMethod(name, desc); m != nil {
				r.cache.Add(key, m)
				return m, nil
			}
		}
		for _, iname := range c.InterfaceNames {
			iface, ok := r.Lookup(iname)
			if !ok {
				return nil, errors.Wrapf(ErrClassNotFound, "interface %s of %s", iname, c.ClassName)
			}
			queue = append(queue, iface)
		}
		if c.Super != nil {
			queue = append(queue, c.Super)
		}
	}
	return nil, errors.Wrapf(ErrMethodNotFound, "%s.%s%s", class, name, desc)
}

// Invoke performs an interface call the way compiled code does: resolve the
// called method through iface, index the itable of class (linking it if
// needed) and call through the slot.
func (r *Registry) Invoke(class, iface, name, desc string, args []uint64) (uint64, error) {
	callee, err := r.ResolveMethod(iface, name, desc)
	if err != nil {
		return 0, err
	}
	table, err := r.Link(class)
	if err != nil {
		return 0, err
	}
	return table.Invoke(callee, args)
}
