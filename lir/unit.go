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
package lir

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// StackSlot is a frame slot addressed relative to the frame pointer.
type StackSlot struct {
	Index int
	Size  int // in 32 bit words
}

// BasicBlock is a straight-line run of instructions with explicit edges.
type BasicBlock struct {
	ID    int
	Insns *InsnList
	Succs []*BasicBlock
	Preds []*BasicBlock

	// set once the block has been emitted
	Emitted    bool
	MachOffset uint32

	backpatch []*Insn
}

// ResolutionBlock holds the moves the allocator needs on one CFG edge. It is
// placed after the regular blocks, so branches into it are backpatched.
type ResolutionBlock struct {
	From, To *BasicBlock
	Insns    *InsnList

	Emitted    bool
	MachOffset uint32

	backpatch []*Insn
}

// AddBackpatch records a branch to this block whose displacement can only
// be filled in once the block is emitted.
func (bb *BasicBlock) AddBackpatch(insn *Insn) {
	insn.Flags |= FlagBackpatchBranch
	bb.backpatch = append(bb.backpatch, insn)
}

// SetMachOffset places the block and returns the instructions waiting for
// its offset; their backpatch flag is cleared.
func (bb *BasicBlock) SetMachOffset(off uint32) []*Insn {
	bb.Emitted = true
	bb.MachOffset = off
	pending := bb.backpatch
	bb.backpatch = nil
	for _, insn := range pending {
		insn.Flags &^= FlagBackpatchBranch
	}
	return pending
}

func (bb *BasicBlock) PendingBackpatches() int {
	return len(bb.backpatch)
}

func (rb *ResolutionBlock) AddBackpatch(insn *Insn) {
	insn.Flags |= FlagBackpatchResolution
	rb.backpatch = append(rb.backpatch, insn)
}

func (rb *ResolutionBlock) SetMachOffset(off uint32) []*Insn {
	rb.Emitted = true
	rb.MachOffset = off
	pending := rb.backpatch
	rb.backpatch = nil
	for _, insn := range pending {
		insn.Flags &^= FlagBackpatchResolution
	}
	return pending
}

// CompilationUnit is one method being compiled: its blocks in layout order,
// its virtual registers and its frame.
type CompilationUnit struct {
	ID     uuid.UUID
	Method string
	Blocks []*BasicBlock
	Vars   []*Var
	Slots  []*StackSlot

	Resolutions []*ResolutionBlock

	// distance between the positions of two consecutive instructions
	PosStep uint32
}

func NewCompilationUnit(method string) *CompilationUnit {
	return &CompilationUnit{
		ID:      uuid.New(),
		Method:  method,
		PosStep: 2,
	}
}

func (cu *CompilationUnit) NewBlock() *BasicBlock {
	bb := &BasicBlock{ID: len(cu.Blocks), Insns: NewInsnList()}
	cu.Blocks = append(cu.Blocks, bb)
	return bb
}

func (cu *CompilationUnit) NewVar(t RegType) *Var {
	v := &Var{VReg: uint32(len(cu.Vars)), Type: t, Fixed: RegUnassigned}
	cu.Vars = append(cu.Vars, v)
	return v
}

// NewFixedVar returns a virtual register precolored to r.
func (cu *CompilationUnit) NewFixedVar(r MachReg) *Var {
	t := RegGPR
	if r.IsXMM() {
		t = RegXMM
	}
	v := cu.NewVar(t)
	v.Fixed = r
	return v
}

func (cu *CompilationUnit) NewStackSlot(size int) *StackSlot {
	slot := &StackSlot{Index: len(cu.Slots), Size: size}
	cu.Slots = append(cu.Slots, slot)
	return slot
}

// AddEdge links from -> to in the control flow graph.
func (cu *CompilationUnit) AddEdge(from, to *BasicBlock) {
	from.Succs = append(from.Succs, to)
	to.Preds = append(to.Preds, from)
}

func (cu *CompilationUnit) NewResolutionBlock(from, to *BasicBlock) *ResolutionBlock {
	rb := &ResolutionBlock{From: from, To: to, Insns: NewInsnList()}
	cu.Resolutions = append(cu.Resolutions, rb)
	return rb
}

// Number assigns LIR positions to all instructions in block order and
// returns the first free position. Positions are PosStep apart so that
// spill and reload code can be given positions in between later.
func (cu *CompilationUnit) Number() uint32 {
	step := cu.PosStep
	if step == 0 {
		step = 1
	}
	var pos uint32
	for _, bb := range cu.Blocks {
		bb.Insns.Each(func(_ InsnID, insn *Insn) bool {
			insn.SetLIRPos(pos)
			pos += step
			return true
		})
	}
	return pos
}

// AssignReg writes the physical register chosen for v into every operand
// referencing it, resolution blocks included.
func (cu *CompilationUnit) AssignReg(v *Var, r MachReg) int {
	n := 0
	visit := func(_ InsnID, insn *Insn) bool {
		n += insn.AssignReg(v, r)
		return true
	}
	for _, bb := range cu.Blocks {
		bb.Insns.Each(visit)
	}
	for _, rb := range cu.Resolutions {
		rb.Insns.Each(visit)
	}
	return n
}

// Dump prints the unit in a readable listing.
func (cu *CompilationUnit) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unit %s (%s)\n", cu.Method, cu.ID)
	for _, bb := range cu.Blocks {
		fmt.Fprintf(&b, "bb%d:", bb.ID)
		for _, s := range bb.Succs {
			fmt.Fprintf(&b, " ->bb%d", s.ID)
		}
		b.WriteByte('\n')
		bb.Insns.Each(func(_ InsnID, insn *Insn) bool {
			if insn.Pos.Kind == PosLIR {
				fmt.Fprintf(&b, "  %4d  %s\n", insn.Pos.Value, insn)
			} else {
				fmt.Fprintf(&b, "        %s\n", insn)
			}
			return true
		})
	}
	return b.String()
}
