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

import "fmt"

/*
Operands
========

An Operand is a tagged value: Type selects exactly one addressing mode and
only the fields belonging to that mode carry meaning.

  - OperandNone:       empty slot
  - OperandBranch:     target basic block
  - OperandImm:        unsigned immediate
  - OperandMembase:    [base + disp]
  - OperandMemdisp:    [disp] (absolute, no register)
  - OperandMemindex:   [base + index << shift]
  - OperandMemlocal:   frame slot (rbp relative)
  - OperandReg:        bare register
  - OperandRel:        relocatable target, a raw address resolved at link time
  - OperandResolution: branch into a resolution block that is not placed yet

Reading a field through the accessor of another variant panics: callers
have to switch on Type first.
*/

type OperandType uint8

const (
	OperandNone OperandType = iota
	OperandBranch
	OperandImm
	OperandMembase
	OperandMemdisp
	OperandMemindex
	OperandMemlocal
	OperandReg
	OperandRel
	OperandResolution
	nrOperandTypes
)

var operandTypeNames = [nrOperandTypes]string{
	"none", "branch", "imm", "membase", "memdisp", "memindex", "memlocal", "reg", "rel", "resolution",
}

func (t OperandType) String() string {
	if t < nrOperandTypes {
		return operandTypeNames[t]
	}
	return fmt.Sprintf("operand(%d)", uint8(t))
}

type Operand struct {
	Type OperandType

	base       Use   // Reg, Membase, Memindex
	index      Use   // Memindex
	shift      uint8 // Memindex
	disp       int64 // Membase, Memdisp
	imm        uint64
	slot       *StackSlot
	word       int // Memlocal: 32 bit word inside slot
	block      *BasicBlock
	resolution *ResolutionBlock
}

func RegOperand(v *Var) Operand {
	return Operand{Type: OperandReg, base: newUse(v)}
}

func ImmOperand(imm uint64) Operand {
	return Operand{Type: OperandImm, imm: imm}
}

func RelOperand(target uint64) Operand {
	return Operand{Type: OperandRel, imm: target}
}

func MembaseOperand(base *Var, disp int64) Operand {
	return Operand{Type: OperandMembase, base: newUse(base), disp: disp}
}

func MemdispOperand(disp int64) Operand {
	return Operand{Type: OperandMemdisp, disp: disp}
}

func MemindexOperand(base, index *Var, shift uint8) Operand {
	if shift > 3 {
		panic("lir: memindex shift must be 0..3")
	}
	return Operand{Type: OperandMemindex, base: newUse(base), index: newUse(index), shift: shift}
}

func MemlocalOperand(slot *StackSlot) Operand {
	if slot == nil {
		panic("lir: memlocal operand without a stack slot")
	}
	return Operand{Type: OperandMemlocal, slot: slot}
}

// MemlocalWordOperand addresses one 32 bit word of a multi-word slot.
func MemlocalWordOperand(slot *StackSlot, word int) Operand {
	o := MemlocalOperand(slot)
	if word < 0 || word >= slot.Size {
		panic(fmt.Sprintf("lir: word %d outside stack slot of size %d", word, slot.Size))
	}
	o.word = word
	return o
}

func BranchOperand(target *BasicBlock) Operand {
	if target == nil {
		panic("lir: branch operand without a target")
	}
	return Operand{Type: OperandBranch, block: target}
}

func ResolutionOperand(rb *ResolutionBlock) Operand {
	if rb == nil {
		panic("lir: resolution operand without a block")
	}
	return Operand{Type: OperandResolution, resolution: rb}
}

func (o *Operand) expect(types ...OperandType) {
	for _, t := range types {
		if o.Type == t {
			return
		}
	}
	panic(fmt.Sprintf("lir: operand is %s, accessor wants %v", o.Type, types))
}

// IsReg reports whether the operand's primary addressing component is a
// register, i.e. whether it takes part in register allocation at all.
func (o *Operand) IsReg() bool {
	switch o.Type {
	case OperandMembase, OperandMemindex, OperandReg:
		return true
	case OperandNone, OperandBranch, OperandImm, OperandMemdisp, OperandMemlocal, OperandRel, OperandResolution:
		return false
	}
	panic("lir: invalid operand type")
}

// IsXMMReg is true for bare registers living in the XMM file.
func (o *Operand) IsXMMReg() bool {
	if o.Type != OperandReg {
		return false
	}
	if o.base.Reg != RegUnassigned {
		return o.base.Reg.IsXMM()
	}
	return o.base.Var.Type == RegXMM
}

func (o *Operand) Reg() *Use {
	o.expect(OperandReg)
	return &o.base
}

func (o *Operand) Base() *Use {
	o.expect(OperandMembase, OperandMemindex)
	return &o.base
}

func (o *Operand) Index() *Use {
	o.expect(OperandMemindex)
	return &o.index
}

func (o *Operand) Shift() uint8 {
	o.expect(OperandMemindex)
	return o.shift
}

func (o *Operand) Disp() int64 {
	o.expect(OperandMembase, OperandMemdisp)
	return o.disp
}

func (o *Operand) Imm() uint64 {
	o.expect(OperandImm)
	return o.imm
}

func (o *Operand) Rel() uint64 {
	o.expect(OperandRel)
	return o.imm
}

func (o *Operand) Slot() *StackSlot {
	o.expect(OperandMemlocal)
	return o.slot
}

func (o *Operand) Word() int {
	o.expect(OperandMemlocal)
	return o.word
}

func (o *Operand) BranchTarget() *BasicBlock {
	o.expect(OperandBranch)
	return o.block
}

func (o *Operand) Resolution() *ResolutionBlock {
	o.expect(OperandResolution)
	return o.resolution
}

// Uses lists the register references of the operand; nil for operands that
// carry no allocatable register.
func (o *Operand) Uses() []*Use {
	switch o.Type {
	case OperandReg, OperandMembase:
		return []*Use{&o.base}
	case OperandMemindex:
		return []*Use{&o.base, &o.index}
	}
	return nil
}

// AssignReg installs r into every use of v and returns how many uses changed.
func (o *Operand) AssignReg(v *Var, r MachReg) int {
	n := 0
	for _, u := range o.Uses() {
		if u.Var == v {
			u.Reg = r
			n++
		}
	}
	return n
}

// SpillTo rewrites a bare register operand into a frame slot reference.
func (o *Operand) SpillTo(slot *StackSlot) {
	o.expect(OperandReg)
	*o = MemlocalOperand(slot)
}

func (o Operand) String() string {
	switch o.Type {
	case OperandNone:
		return "-"
	case OperandBranch:
		return fmt.Sprintf("bb%d", o.block.ID)
	case OperandImm:
		return fmt.Sprintf("$%#x", o.imm)
	case OperandMembase:
		return fmt.Sprintf("%d(%s)", o.disp, o.base)
	case OperandMemdisp:
		return fmt.Sprintf("(%#x)", o.disp)
	case OperandMemindex:
		return fmt.Sprintf("(%s,%s,%d)", o.base, o.index, 1<<o.shift)
	case OperandMemlocal:
		if o.word > 0 {
			return fmt.Sprintf("@slot%d+%d", o.slot.Index, o.word)
		}
		return fmt.Sprintf("@slot%d", o.slot.Index)
	case OperandReg:
		return o.base.String()
	case OperandRel:
		return fmt.Sprintf("<%#x>", o.imm)
	case OperandResolution:
		return fmt.Sprintf("rb(bb%d->bb%d)", o.resolution.From.ID, o.resolution.To.ID)
	}
	return "?"
}
