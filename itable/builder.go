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
package itable

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/launix-de/memjit/trace"
	"github.com/pkg/errors"
)

type Config struct {
	Trace      bool      // print the table after building
	TraceOut   io.Writer // defaults to stdout
	ArenaBytes int64     // candidate memory per build, 0 = unlimited
	Tracefile  *trace.Tracefile
}

// Builder builds itables for classes whose interfaces it resolves through
// its loader. A Builder may be shared; each Build call has its own state.
type Builder struct {
	loader ClassLoader
	config Config
}

func NewBuilder(loader ClassLoader, config Config) *Builder {
	if config.TraceOut == nil {
		config.TraceOut = os.Stdout
	}
	return &Builder{loader: loader, config: config}
}

type phase uint8

const (
	phaseCollecting phase = iota
	phaseResolving
	phaseDone
)

var phaseNames = [...]string{"collecting", "resolving", "done"}

const candidateSize = int64(unsafe.Sizeof(Candidate{}))

const arenaChunk = 64

// arena hands out candidates from a byte budget. It is dropped as a whole
// when the build ends, failed or not.
type arena struct {
	limit int64
	used  int64
	chunk []Candidate
}

func (a *arena) alloc() (*Candidate, error) {
	if a.limit > 0 && a.used+candidateSize > a.limit {
		return nil, ErrOutOfMemory
	}
	if len(a.chunk) == 0 {
		a.chunk = make([]Candidate, arenaChunk)
	}
	c := &a.chunk[0]
	a.chunk = a.chunk[1:]
	a.used += candidateSize
	return c, nil
}

// build is the state of one class link
type build struct {
	*Builder
	class   Class
	phase   phase
	arena   arena
	slots   [Size][]*Candidate
	visited mapset.Set[string]
	impls   map[*Method]*Method
	supers  []Class // class and its superclasses, most derived first
}

func (b *build) enter(p phase) {
	if p != b.phase+1 {
		panic(fmt.Sprintf("itable: cannot enter %s while %s", phaseNames[p], phaseNames[b.phase]))
	}
	b.phase = p
}

// Build links the itable of class. On error no table is returned and all
// collected candidates are dropped.
func (bl *Builder) Build(class Class) (result *Table, err error) {
	b := &build{
		Builder: bl,
		class:   class,
		phase:   phaseCollecting,
		arena:   arena{limit: bl.config.ArenaBytes},
		visited: mapset.NewThreadUnsafeSet[string](),
		impls:   make(map[*Method]*Method),
	}
	if b.supers, err = superChain(class); err != nil {
		return nil, err
	}
	tf := bl.config.Tracefile
	tf.Duration("collect "+class.Name(), "itable", func() {
		err = b.collect()
	})
	if err != nil {
		return nil, err
	}
	b.enter(phaseResolving)
	tf.Duration("resolve "+class.Name(), "itable", func() {
		result = b.resolve()
	})
	b.enter(phaseDone)
	if bl.config.Trace {
		result.WriteTrace(bl.config.TraceOut)
	}
	return result, nil
}

/*
collect walks the class like this recursive definition, but iteratively
and visiting every class once (diamonds and illegal cycles):

	add(C):
		if C is an interface: add C's methods
		for I in C's interfaces: add(I)
		add(C's superclass)

so the class's own interfaces come before the ones inherited through the
superclass chain.
*/
func (b *build) collect() error {
	stack := []Class{b.class}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !b.visited.Add(c.Name()) {
			continue
		}
		if c.IsInterface() {
			for _, m := range c.Methods() {
				if err := b.addCandidate(m); err != nil {
					return errors.Wrapf(err, "linking %s", b.class.Name())
				}
			}
		}
		// pushed in reverse, the superclass is popped last
		if super := c.Superclass(); super != nil {
			stack = append(stack, super)
		}
		names := c.Interfaces()
		ifaces := make([]Class, len(names))
		for i, name := range names {
			iface, err := b.loader.Load(name)
			if err != nil {
				return errors.Wrapf(ErrLinkFailure, "interface %s of %s: %v", name, c.Name(), err)
			}
			if iface == nil {
				return errors.Wrapf(ErrLinkFailure, "interface %s of %s not found", name, c.Name())
			}
			ifaces[i] = iface
		}
		for i := len(ifaces) - 1; i >= 0; i-- {
			stack = append(stack, ifaces[i])
		}
	}
	return nil
}

func (b *build) addCandidate(m *Method) error {
	if b.phase != phaseCollecting {
		panic("itable: adding a candidate after collection")
	}
	c, err := b.arena.alloc()
	if err != nil {
		return err
	}
	c.Method = m
	c.Target = b.implementation(m).Trampoline()
	slot := MethodSlot(m)
	b.slots[slot] = append(b.slots[slot], c)
	return nil
}

// implementation finds the concrete method the class uses for the
// interface method m; m itself if nothing implements it.
func (b *build) implementation(m *Method) *Method {
	if impl, ok := b.impls[m]; ok {
		return impl
	}
	impl := m
	for _, c := range b.supers {
		if c.IsInterface() {
			continue
		}
		if found := declared(c, m.Name, m.Type); found != nil {
			impl = found
			break
		}
	}
	b.impls[m] = impl
	return impl
}

// superChain lists class and its superclasses. A class appearing twice
// is a link failure.
func superChain(class Class) ([]Class, error) {
	seen := mapset.NewThreadUnsafeSet[string]()
	var chain []Class
	for c := class; c != nil; c = c.Superclass() {
		if !seen.Add(c.Name()) {
			return nil, errors.Wrapf(ErrLinkFailure, "superclass cycle through %s", c.Name())
		}
		chain = append(chain, c)
	}
	return chain, nil
}

func declared(c Class, name, typ string) *Method {
	for _, m := range c.Methods() {
		if !m.Abstract && m.Name == name && m.Type == typ {
			return m
		}
	}
	return nil
}

func (b *build) resolve() *Table {
	t := &Table{Class: b.class.Name()}
	for i := range b.slots {
		list := b.slots[i]
		switch len(list) {
		case 0:
			t.slots[i] = EmptySlotStub
		case 1:
			// only call sites of this one method can reach the slot
			t.slots[i] = list[0].Target
		default:
			t.slots[i] = newResolver(list)
		}
		if len(list) > 0 {
			names := make([]string, len(list))
			for j, c := range list {
				names[j] = c.Method.QualifiedName()
			}
			t.names[i] = names
		}
	}
	return t
}
