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
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/launix-de/NonLockingReadMap"
	"github.com/launix-de/memjit/itable"
	"github.com/pkg/errors"
)

var (
	ErrClassNotFound  = errors.New("class not found")
	ErrMethodNotFound = errors.New("method not found")
)

type Config struct {
	Itable    itable.Config
	Workers   int // parallel linkers in LinkAll, 0 = unbounded
	CacheSize int // method resolution cache entries
}

// linkState is shared by all copies of an entry
type linkState struct {
	mu    sync.Mutex // held while the class is being linked
	table atomic.Pointer[itable.Table]
}

type entry struct {
	class *itable.ClassInfo
	state *linkState
}

func (e entry) GetKey() string {
	return e.class.ClassName
}

func (e entry) ComputeSize() uint {
	return 64 + 48*uint(len(e.class.MethodList)) + 16*uint(len(e.class.InterfaceNames))
}

// Registry holds the loaded classes, links their itables and resolves
// interface call sites. Lookups never block; linking one class blocks only
// callers linking the same class.
type Registry struct {
	mu      sync.Mutex // serializes writers; readers never take it
	classes NonLockingReadMap.NonLockingReadMap[entry, string]
	config  Config
	cache   *lru.Cache[string, *itable.Method]
}

func NewRegistry(config Config) *Registry {
	if config.CacheSize <= 0 {
		config.CacheSize = 1024
	}
	cache, err := lru.New[string, *itable.Method](config.CacheSize)
	if err != nil {
		panic(err)
	}
	return &Registry{
		classes: NonLockingReadMap.New[entry, string](),
		config:  config,
		cache:   cache,
	}
}

// Register adds or replaces a class. Replacing or removing a class drops
// every itable and the resolution cache, since linked classes may hold
// methods of the old version.
func (r *Registry) Register(c *itable.ClassInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.register(c) {
		r.invalidate()
	}
	r.cache.Purge()
}

// register must be called with mu held and reports whether c replaced a
// registered class. The map's Set does not replace an existing key
// cleanly, so the old entry is removed first.
func (r *Registry) register(c *itable.ClassInfo) bool {
	replaced := r.classes.Remove(c.ClassName) != nil
	r.classes.Set(&entry{class: c, state: new(linkState)})
	return replaced
}

// invalidate drops the itables of all classes. A link running right now
// finishes first and then loses its result.
func (r *Registry) invalidate() {
	for _, e := range r.classes.GetAll() {
		e.state.mu.Lock()
		e.state.table.Store(nil)
		e.state.mu.Unlock()
	}
}

func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := r.classes.Remove(name) != nil
	if removed {
		r.invalidate()
		r.cache.Purge()
	}
	return removed
}

// Load implements itable.ClassLoader.
func (r *Registry) Load(name string) (itable.Class, error) {
	e := r.classes.Get(name)
	if e == nil {
		return nil, errors.Wrap(ErrClassNotFound, name)
	}
	return e.class, nil
}

func (r *Registry) Lookup(name string) (*itable.ClassInfo, bool) {
	e := r.classes.Get(name)
	if e == nil {
		return nil, false
	}
	return e.class, true
}

// Classes returns the registered class names in order.
func (r *Registry) Classes() []string {
	all := r.classes.GetAll()
	result := make([]string, len(all))
	for i, e := range all {
		result[i] = e.class.ClassName
	}
	return result
}

// MemorySize estimates the bytes held by the registry.
func (r *Registry) MemorySize() uint {
	sz := r.classes.ComputeSize()
	for _, e := range r.classes.GetAll() {
		sz += e.ComputeSize()
	}
	return sz
}

func (r *Registry) SetItableConfig(c itable.Config) {
	r.config.Itable = c
}
