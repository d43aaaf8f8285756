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
	"sync"
)

// Class is the view of a loaded class the builder needs.
type Class interface {
	Name() string
	IsInterface() bool
	Interfaces() []string // directly declared interfaces, in declaration order
	Superclass() Class    // nil for the root
	Methods() []*Method
}

// ClassLoader resolves interface names referenced by a class.
type ClassLoader interface {
	Load(name string) (Class, error)
}

// Method is a declared method. Code is nil for abstract methods.
type Method struct {
	Class    Class
	Name     string
	Type     string // descriptor, e.g. "(I)V"
	Abstract bool
	Code     func(args []uint64) (uint64, error)

	once  sync.Once
	tramp *Trampoline
}

// Trampoline returns the callable target of m. The pointer is stable, so
// it can be compared for identity.
func (m *Method) Trampoline() *Trampoline {
	m.once.Do(func() {
		m.tramp = &Trampoline{Method: m}
	})
	return m.tramp
}

// QualifiedName is Class.nameDesc as printed in traces.
func (m *Method) QualifiedName() string {
	cls := "?"
	if m.Class != nil {
		cls = m.Class.Name()
	}
	return cls + "." + m.Name + m.Type
}

func (m *Method) String() string {
	return m.QualifiedName()
}

// ClassInfo is a plain in-memory Class.
type ClassInfo struct {
	ClassName      string
	Interface      bool
	Super          *ClassInfo
	InterfaceNames []string
	MethodList     []*Method
}

func NewClass(name string, isInterface bool, super *ClassInfo, interfaces ...string) *ClassInfo {
	return &ClassInfo{ClassName: name, Interface: isInterface, Super: super, InterfaceNames: interfaces}
}

// AddMethod declares a method; a nil code makes it abstract.
func (c *ClassInfo) AddMethod(name, typ string, code func(args []uint64) (uint64, error)) *Method {
	m := &Method{Class: c, Name: name, Type: typ, Abstract: code == nil, Code: code}
	c.MethodList = append(c.MethodList, m)
	return m
}

// FindMethod returns the method declared by c itself with this name and descriptor.
func (c *ClassInfo) FindMethod(name, typ string) *Method {
	for _, m := range c.MethodList {
		if m.Name == name && m.Type == typ {
			return m
		}
	}
	return nil
}

func (c *ClassInfo) Name() string {
	return c.ClassName
}

func (c *ClassInfo) IsInterface() bool {
	return c.Interface
}

func (c *ClassInfo) Interfaces() []string {
	return c.InterfaceNames
}

func (c *ClassInfo) Superclass() Class {
	if c.Super == nil {
		return nil // no typed nil in the interface
	}
	return c.Super
}

func (c *ClassInfo) Methods() []*Method {
	return c.MethodList
}

func (c *ClassInfo) String() string {
	kind := "class"
	if c.Interface {
		kind = "interface"
	}
	return fmt.Sprintf("%s %s", kind, c.ClassName)
}
