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
)

type InsnFlags uint8

const (
	FlagEscaped             InsnFlags = 1 << iota // branches to a slow path
	FlagSafepoint                                 // runtime state is inspectable here
	FlagKnownBCOffset                             // BCOffset is valid
	FlagBackpatchBranch                           // branch target offset not yet known
	FlagBackpatchResolution                       // resolution block offset not yet known
)

// PosKind tells which meaning the position of an instruction currently has.
type PosKind uint8

const (
	PosNone    PosKind = iota
	PosLIR             // index in the linear instruction stream (before emission)
	PosMachine         // byte offset in emitted code (after emission)
)

// Position is the dual-use position field: one value, two meanings, the
// active meaning is carried alongside.
type Position struct {
	Kind  PosKind
	Value uint32
}

/*
Insn is one target instruction. Operand storage depends on the shape of the
type tag:

  - ShapeNone:    no operands
  - ShapeSingle:  Operand
  - ShapeSrcDest: Src, Dest
  - ShapePhi:     SSASrcs, Dest

Instructions are built through the per-shape constructors below, which
reject operand combinations the type table does not allow.
*/
type Insn struct {
	Type     InsnType
	Flags    InsnFlags
	BCOffset uint16
	Pos      Position

	Src     Operand
	Dest    Operand
	Operand Operand
	SSASrcs []Operand
}

func checkShape(t InsnType, shape Shape) *insnInfo {
	info := t.info()
	if info.shape != shape {
		panic(fmt.Sprintf("lir: %s has shape %s, not %s", t, info.shape, shape))
	}
	return info
}

func checkOperand(t InsnType, slot string, want OperandType, o *Operand) {
	if o.Type != want {
		panic(fmt.Sprintf("lir: %s wants %s %s operand, got %s", t, want, slot, o.Type))
	}
}

func newSingle(t InsnType, o Operand) *Insn {
	info := checkShape(t, ShapeSingle)
	checkOperand(t, "single", info.src, &o)
	return &Insn{Type: t, Operand: o}
}

func newSrcDest(t InsnType, src, dest Operand) *Insn {
	info := checkShape(t, ShapeSrcDest)
	checkOperand(t, "source", info.src, &src)
	checkOperand(t, "destination", info.dest, &dest)
	return &Insn{Type: t, Src: src, Dest: dest}
}

// NewInsn builds an operandless instruction (nop, ret, caller register saves).
func NewInsn(t InsnType) *Insn {
	checkShape(t, ShapeNone)
	return &Insn{Type: t}
}

func RegInsn(t InsnType, v *Var) *Insn {
	return newSingle(t, RegOperand(v))
}

func ImmInsn(t InsnType, imm uint64) *Insn {
	return newSingle(t, ImmOperand(imm))
}

func RelInsn(t InsnType, target uint64) *Insn {
	return newSingle(t, RelOperand(target))
}

func BranchInsn(t InsnType, target *BasicBlock) *Insn {
	return newSingle(t, BranchOperand(target))
}

func MembaseInsn(t InsnType, base *Var, disp int64) *Insn {
	return newSingle(t, MembaseOperand(base, disp))
}

func MemindexInsn(t InsnType, base, index *Var, shift uint8) *Insn {
	return newSingle(t, MemindexOperand(base, index, shift))
}

func MemlocalInsn(t InsnType, slot *StackSlot) *Insn {
	return newSingle(t, MemlocalOperand(slot))
}

func RegRegInsn(t InsnType, src, dest *Var) *Insn {
	return newSrcDest(t, RegOperand(src), RegOperand(dest))
}

func ImmRegInsn(t InsnType, imm uint64, dest *Var) *Insn {
	return newSrcDest(t, ImmOperand(imm), RegOperand(dest))
}

func MembaseRegInsn(t InsnType, base *Var, disp int64, dest *Var) *Insn {
	return newSrcDest(t, MembaseOperand(base, disp), RegOperand(dest))
}

func RegMembaseInsn(t InsnType, src, base *Var, disp int64) *Insn {
	return newSrcDest(t, RegOperand(src), MembaseOperand(base, disp))
}

func MemdispRegInsn(t InsnType, disp int64, dest *Var) *Insn {
	return newSrcDest(t, MemdispOperand(disp), RegOperand(dest))
}

func RegMemdispInsn(t InsnType, src *Var, disp int64) *Insn {
	return newSrcDest(t, RegOperand(src), MemdispOperand(disp))
}

func MemindexRegInsn(t InsnType, base, index *Var, shift uint8, dest *Var) *Insn {
	return newSrcDest(t, MemindexOperand(base, index, shift), RegOperand(dest))
}

func RegMemindexInsn(t InsnType, src, base, index *Var, shift uint8) *Insn {
	return newSrcDest(t, RegOperand(src), MemindexOperand(base, index, shift))
}

func MemlocalRegInsn(t InsnType, slot *StackSlot, dest *Var) *Insn {
	return newSrcDest(t, MemlocalOperand(slot), RegOperand(dest))
}

func RegMemlocalInsn(t InsnType, src *Var, slot *StackSlot) *Insn {
	return newSrcDest(t, RegOperand(src), MemlocalOperand(slot))
}

func ImmMembaseInsn(t InsnType, imm uint64, base *Var, disp int64) *Insn {
	return newSrcDest(t, ImmOperand(imm), MembaseOperand(base, disp))
}

func ImmMemlocalInsn(t InsnType, imm uint64, slot *StackSlot) *Insn {
	return newSrcDest(t, ImmOperand(imm), MemlocalOperand(slot))
}

func ImmMemdispInsn(t InsnType, imm uint64, disp int64) *Insn {
	return newSrcDest(t, ImmOperand(imm), MemdispOperand(disp))
}

// ICCallInsn is an inline-cache call: receiver in a register, the call
// site's symbol as relocatable target resolved on first call.
func ICCallInsn(receiver *Var, target uint64) *Insn {
	return newSrcDest(InsnICCall, RegOperand(receiver), RelOperand(target))
}

// PhiInsn creates a merge instruction with nrSrcs empty source slots that
// are filled with SetPhiSrc once the predecessors are known.
func PhiInsn(dest *Var, nrSrcs int) *Insn {
	checkShape(InsnPhi, ShapePhi)
	return &Insn{
		Type:    InsnPhi,
		Dest:    RegOperand(dest),
		SSASrcs: make([]Operand, nrSrcs),
	}
}

func (insn *Insn) SetPhiSrc(i int, v *Var) {
	if insn.Type != InsnPhi {
		panic("lir: SetPhiSrc on " + insn.Type.String())
	}
	insn.SSASrcs[i] = RegOperand(v)
}

func (insn *Insn) NrPhiSrcs() int {
	if insn.Type != InsnPhi {
		panic("lir: NrPhiSrcs on " + insn.Type.String())
	}
	return len(insn.SSASrcs)
}

func (insn *Insn) HasFlag(f InsnFlags) bool {
	return insn.Flags&f != 0
}

func (insn *Insn) SetBCOffset(off uint16) {
	insn.BCOffset = off
	insn.Flags |= FlagKnownBCOffset
}

func (insn *Insn) SetLIRPos(pos uint32) {
	insn.Pos = Position{Kind: PosLIR, Value: pos}
}

func (insn *Insn) LIRPos() uint32 {
	if insn.Pos.Kind != PosLIR {
		panic("lir: instruction has no LIR position")
	}
	return insn.Pos.Value
}

// SetMachOffset switches the position to its post-emission meaning.
func (insn *Insn) SetMachOffset(off uint32) {
	insn.Pos = Position{Kind: PosMachine, Value: off}
}

func (insn *Insn) MachOffset() uint32 {
	if insn.Pos.Kind != PosMachine {
		panic("lir: instruction was not emitted yet")
	}
	return insn.Pos.Value
}

/* classification */

func (insn *Insn) IsCall() bool {
	return insn.Type.info().flags&classCall != 0
}

// IsCallTo is true only for a relocatable call whose raw target equals target.
func (insn *Insn) IsCallTo(target uint64) bool {
	if insn.Type != InsnCallRel {
		return false
	}
	return insn.Operand.Rel() == target
}

func (insn *Insn) IsBranch() bool {
	return insn.Type.info().flags&classBranch != 0
}

func (insn *Insn) IsJmpBranch() bool {
	return insn.Type == InsnJmpBranch
}

func (insn *Insn) IsJmpMem() bool {
	return insn.Type.info().flags&classJmpMem != 0
}

// IsCopy identifies register to register moves: the destination is an alias
// of the source, not a computation.
func (insn *Insn) IsCopy() bool {
	return insn.Type.info().flags&classCopy != 0
}

func (insn *Insn) IsPhi() bool {
	return insn.Type == InsnPhi
}

func (insn *Insn) IsMovImmReg() bool {
	return insn.Type == InsnMovImmReg
}

// Operands returns pointers to the active operand slots in src, dest order.
func (insn *Insn) Operands() []*Operand {
	switch insn.Type.Shape() {
	case ShapeSingle:
		return []*Operand{&insn.Operand}
	case ShapeSrcDest:
		return []*Operand{&insn.Src, &insn.Dest}
	case ShapePhi:
		result := make([]*Operand, 0, len(insn.SSASrcs)+1)
		for i := range insn.SSASrcs {
			result = append(result, &insn.SSASrcs[i])
		}
		return append(result, &insn.Dest)
	}
	return nil
}

// Uses returns the register references read by the instruction. Registers
// forming a memory address are always read, a bare register only when the
// type table says so.
func (insn *Insn) Uses() []*Use {
	info := insn.Type.info()
	var result []*Use
	add := func(o *Operand, read bool) {
		if o.Type == OperandReg && !read {
			return
		}
		result = append(result, o.Uses()...)
	}
	switch info.shape {
	case ShapeSingle:
		add(&insn.Operand, info.flags&useSrc != 0)
	case ShapeSrcDest:
		add(&insn.Src, info.flags&useSrc != 0)
		add(&insn.Dest, info.flags&useDest != 0)
	case ShapePhi:
		for i := range insn.SSASrcs {
			add(&insn.SSASrcs[i], true)
		}
	}
	return result
}

// Defs returns the registers written by the instruction.
func (insn *Insn) Defs() []*Use {
	info := insn.Type.info()
	if info.flags&defDest == 0 {
		return nil
	}
	var o *Operand
	switch info.shape {
	case ShapeSingle:
		o = &insn.Operand
	case ShapeSrcDest, ShapePhi:
		o = &insn.Dest
	default:
		return nil
	}
	if o.Type != OperandReg {
		return nil
	}
	return []*Use{&o.base}
}

// AssignReg installs r for every reference to v in the instruction.
func (insn *Insn) AssignReg(v *Var, r MachReg) int {
	n := 0
	for _, o := range insn.Operands() {
		n += o.AssignReg(v, r)
	}
	return n
}

func (insn *Insn) String() string {
	var b strings.Builder
	b.WriteString(insn.Type.String())
	for i, o := range insn.Operands() {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	return b.String()
}
