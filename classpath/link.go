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
	"fmt"

	"github.com/jtolds/gls"
	"github.com/launix-de/memjit/itable"
	"github.com/pkg/errors"
)

// Link builds the itable of a class once; concurrent callers for the same
// class wait for the first one. A failed link attaches nothing.
func (r *Registry) Link(name string) (*itable.Table, error) {
	e := r.classes.Get(name)
	if e == nil {
		return nil, errors.Wrap(ErrClassNotFound, name)
	}
	if t := e.state.table.Load(); t != nil {
		return t, nil
	}
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	if t := e.state.table.Load(); t != nil {
		return t, nil
	}
	t, err := itable.NewBuilder(r, r.config.Itable).Build(e.class)
	if err != nil {
		return nil, err
	}
	e.state.table.Store(t)
	return t, nil
}

// Table returns the itable of a linked class, nil if it is not linked.
func (r *Registry) Table(name string) *itable.Table {
	e := r.classes.Get(name)
	if e == nil {
		return nil
	}
	return e.state.table.Load()
}

// LinkAll links the named classes (all classes if names is empty) in
// parallel and returns the first error.
func (r *Registry) LinkAll(names []string) error {
	if len(names) == 0 {
		names = r.Classes()
	}
	workers := r.config.Workers
	if workers <= 0 || workers > len(names) {
		workers = len(names)
	}
	sem := make(chan struct{}, workers)
	errs := make(chan error, len(names))
	for _, name := range names {
		sem <- struct{}{}
		gls.Go(func(name string) func() {
			return func() {
				defer func() {
					if p := recover(); p != nil {
						errs <- fmt.Errorf("linking %s: %v", name, p)
					}
					<-sem
				}()
				_, err := r.Link(name)
				errs <- err
			}
		}(name))
	}
	var first error
	for range names {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	return first
}
