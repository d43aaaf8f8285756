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
	"encoding/json"
	"io"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/launix-de/memjit/itable"
	"github.com/pkg/errors"
)

type hierarchyFile struct {
	Classes []classDecl `json:"classes"`
}

type classDecl struct {
	Name       string       `json:"name"`
	Interface  bool         `json:"interface"`
	Super      string       `json:"super"`
	Interfaces []string     `json:"interfaces"`
	Methods    []methodDecl `json:"methods"`
}

type methodDecl struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Abstract bool   `json:"abstract"`
	Returns  uint64 `json:"returns"` // result of a concrete method's body
}

// LoadHierarchy reads classes from JSON and registers them. Superclasses
// may be declared in any order or already be registered. Nothing is
// registered if the file is inconsistent.
func (r *Registry) LoadHierarchy(in io.Reader) ([]string, error) {
	var f hierarchyFile
	if err := json.NewDecoder(in).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "parse class hierarchy")
	}
	loaded := make(map[string]*itable.ClassInfo, len(f.Classes))
	var names []string
	for _, d := range f.Classes {
		if d.Name == "" {
			return nil, errors.New("class without name")
		}
		if _, dup := loaded[d.Name]; dup {
			return nil, errors.Errorf("class %s declared twice", d.Name)
		}
		c := itable.NewClass(d.Name, d.Interface, nil, d.Interfaces...)
		for _, md := range d.Methods {
			if md.Abstract || d.Interface {
				c.AddMethod(md.Name, md.Type, nil)
			} else {
				c.AddMethod(md.Name, md.Type, constant(md.Returns))
			}
		}
		loaded[d.Name] = c
		names = append(names, d.Name)
	}
	for _, d := range f.Classes {
		if d.Super == "" {
			continue
		}
		super, ok := loaded[d.Super]
		if !ok {
			if super, ok = r.Lookup(d.Super); !ok {
				return nil, errors.Wrapf(ErrClassNotFound, "superclass %s of %s", d.Super, d.Name)
			}
		}
		loaded[d.Name].Super = super
	}
	for _, name := range names {
		if err := checkSuperChain(loaded[name]); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	replaced := false
	for _, name := range names {
		if r.register(loaded[name]) {
			replaced = true
		}
	}
	if replaced {
		r.invalidate()
	}
	r.cache.Purge()
	return names, nil
}

// checkSuperChain rejects a class that is its own (indirect) superclass.
func checkSuperChain(c *itable.ClassInfo) error {
	seen := mapset.NewThreadUnsafeSet[*itable.ClassInfo]()
	for s := c; s != nil; s = s.Super {
		if !seen.Add(s) {
			return errors.Errorf("superclass cycle through %s", c.ClassName)
		}
	}
	return nil
}

func (r *Registry) LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open class hierarchy")
	}
	defer f.Close()
	return r.LoadHierarchy(f)
}

func constant(v uint64) func([]uint64) (uint64, error) {
	return func([]uint64) (uint64, error) {
		return v, nil
	}
}
