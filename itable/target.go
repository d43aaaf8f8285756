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
	"github.com/pkg/errors"
)

var (
	ErrOutOfMemory        = errors.New("itable: out of memory")
	ErrLinkFailure        = errors.New("itable: link failure")
	ErrEmptySlot          = errors.New("itable: call through empty slot")
	ErrUnresolvedDispatch = errors.New("itable: no candidate matches the called method")
	ErrAbstractMethod     = errors.New("itable: abstract method called")
)

// Target is what an itable slot holds: something a call site can invoke.
// callee is the interface method named by the call site.
type Target interface {
	Invoke(callee *Method, args []uint64) (uint64, error)
}

// Trampoline calls its method directly.
type Trampoline struct {
	Method *Method
}

func (t *Trampoline) Invoke(callee *Method, args []uint64) (uint64, error) {
	if t.Method.Code == nil {
		return 0, errors.Wrap(ErrAbstractMethod, t.Method.QualifiedName())
	}
	return t.Method.Code(args)
}

type emptySlot struct{}

// EmptySlotStub fills slots no method hashes to. Reaching it means the
// caller computed a wrong index.
var EmptySlotStub Target = emptySlot{}

func (emptySlot) Invoke(callee *Method, args []uint64) (uint64, error) {
	name := "<nil>"
	if callee != nil {
		name = callee.QualifiedName()
	}
	return 0, errors.Wrapf(ErrEmptySlot, "calling %s", name)
}

// Candidate is one interface method that hashed to a slot and the target
// implementing it for the class being linked.
type Candidate struct {
	Method *Method
	Target Target
}

// Resolver sits in slots shared by several methods and picks the candidate
// by method identity at call time.
type Resolver struct {
	candidates []Candidate
}

func newResolver(list []*Candidate) *Resolver {
	r := &Resolver{candidates: make([]Candidate, len(list))}
	for i, c := range list {
		r.candidates[i] = *c
	}
	return r
}

func (r *Resolver) Invoke(callee *Method, args []uint64) (uint64, error) {
	for _, c := range r.candidates {
		if c.Method == callee {
			return c.Target.Invoke(callee, args)
		}
	}
	name := "<nil>"
	if callee != nil {
		name = callee.QualifiedName()
	}
	return 0, errors.Wrapf(ErrUnresolvedDispatch, "calling %s", name)
}

// Candidates returns a copy of the candidates in slot order.
func (r *Resolver) Candidates() []Candidate {
	return append([]Candidate(nil), r.candidates...)
}
