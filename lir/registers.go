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

// MachReg is a hardware register of the x86-64 target. General purpose
// registers use their encoding number, XMM registers start at 16.
type MachReg uint8

const (
	RegRAX MachReg = 0
	RegRCX MachReg = 1
	RegRDX MachReg = 2
	RegRBX MachReg = 3
	RegRSP MachReg = 4
	RegRBP MachReg = 5
	RegRSI MachReg = 6
	RegRDI MachReg = 7
	RegR8  MachReg = 8
	RegR9  MachReg = 9
	RegR10 MachReg = 10
	RegR11 MachReg = 11
	RegR12 MachReg = 12
	RegR13 MachReg = 13
	RegR14 MachReg = 14
	RegR15 MachReg = 15
	// XMM registers start at 16
	RegXMM0  MachReg = 16
	RegXMM1  MachReg = 17
	RegXMM2  MachReg = 18
	RegXMM3  MachReg = 19
	RegXMM4  MachReg = 20
	RegXMM5  MachReg = 21
	RegXMM6  MachReg = 22
	RegXMM7  MachReg = 23
	RegXMM8  MachReg = 24
	RegXMM9  MachReg = 25
	RegXMM10 MachReg = 26
	RegXMM11 MachReg = 27
	RegXMM12 MachReg = 28
	RegXMM13 MachReg = 29
	RegXMM14 MachReg = 30
	RegXMM15 MachReg = 31

	NrMachRegs = 32

	// RegUnassigned marks a use that has not been given a location yet.
	RegUnassigned MachReg = 0xFF
)

var gprNames = [16]string{
	"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
}

func (r MachReg) IsXMM() bool {
	return r >= RegXMM0 && r <= RegXMM15
}

func (r MachReg) IsGPR() bool {
	return r <= RegR15
}

func (r MachReg) String() string {
	switch {
	case r.IsGPR():
		return gprNames[r]
	case r.IsXMM():
		return fmt.Sprintf("xmm%d", r-RegXMM0)
	case r == RegUnassigned:
		return "unassigned"
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// RegType selects the register file a virtual register lives in.
type RegType uint8

const (
	RegGPR RegType = iota
	RegXMM
)

func (t RegType) String() string {
	if t == RegXMM {
		return "xmm"
	}
	return "gpr"
}

// Var is a virtual register. Fixed is RegUnassigned unless the value is
// precolored (e.g. the implicit RAX/RDX operands of division).
type Var struct {
	VReg  uint32
	Type  RegType
	Fixed MachReg
}

func (v *Var) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.Fixed != RegUnassigned {
		return fmt.Sprintf("v%d(%s)", v.VReg, v.Fixed)
	}
	return fmt.Sprintf("v%d", v.VReg)
}

// Use is one register reference inside an operand. Reg is written back by
// the allocation policy once a physical location was chosen.
type Use struct {
	Var *Var
	Reg MachReg
}

func newUse(v *Var) Use {
	if v == nil {
		panic("lir: register operand without a variable")
	}
	return Use{Var: v, Reg: v.Fixed}
}

func (u Use) String() string {
	if u.Reg != RegUnassigned {
		return u.Reg.String()
	}
	return u.Var.String()
}
