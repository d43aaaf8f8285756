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

// helpers used by generic allocator code to insert spill and reload code

// SpillInsn stores v into slot, picking the move form of v's register file.
func SpillInsn(v *Var, slot *StackSlot) *Insn {
	if v.Type == RegXMM {
		if slot.Size > 1 {
			return RegMemlocalInsn(InsnMovsdXMMMemlocal, v, slot)
		}
		return RegMemlocalInsn(InsnMovssXMMMemlocal, v, slot)
	}
	return RegMemlocalInsn(InsnMovRegMemlocal, v, slot)
}

// ReloadInsn loads v back from slot.
func ReloadInsn(slot *StackSlot, v *Var) *Insn {
	if v.Type == RegXMM {
		if slot.Size > 1 {
			return MemlocalRegInsn(InsnMovsdMemlocalXMM, slot, v)
		}
		return MemlocalRegInsn(InsnMovssMemlocalXMM, slot, v)
	}
	return MemlocalRegInsn(InsnMovMemlocalReg, slot, v)
}

func JumpInsn(bb *BasicBlock) *Insn {
	return BranchInsn(InsnJmpBranch, bb)
}

// InsertCopySlotInsns copies one frame slot into another through the
// machine stack, one push/pop pair per 32 bit word, right before at. bcOffset is attached
// to the new instructions. Returns the id of the last inserted instruction.
func InsertCopySlotInsns(from, to *StackSlot, l *InsnList, at InsnID, bcOffset uint16) InsnID {
	if from.Size != to.Size {
		panic("lir: copying between stack slots of different size")
	}
	last := NoInsn
	for i := 0; i < from.Size; i++ {
		push := newSingle(InsnPushMemlocal, MemlocalWordOperand(from, i))
		pop := newSingle(InsnPopMemlocal, MemlocalWordOperand(to, i))
		push.SetBCOffset(bcOffset)
		pop.SetBCOffset(bcOffset)
		l.InsertBefore(at, push)
		last = l.InsertBefore(at, pop)
	}
	return last
}
