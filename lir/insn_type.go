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

//go:generate go run ../tools/insngen -patch insn_names.go

// InsnType identifies the opcode, the operand shape and the operand types
// of an instruction. The name spells <opcode>_<src>_<dest>.
type InsnType uint8

const (
	InsnAdcImmReg InsnType = iota
	InsnAdcMembaseReg
	InsnAdcRegReg
	InsnAddsdMemdispXMM
	InsnAddsdXMMXMM
	InsnAddssXMMXMM
	InsnAddImmReg
	InsnAddMembaseReg
	InsnAddRegReg
	InsnAndMembaseReg
	InsnAndRegReg
	InsnCallReg
	InsnCallRel
	InsnCltdRegReg // CDQ in Intel manuals
	InsnCmpImmReg
	InsnCmpMembaseReg
	InsnCmpRegReg
	InsnConvFPU64ToGPR
	InsnConvFPUToGPR
	InsnConvGPRToFPU
	InsnConvGPRToFPU64
	InsnConvXMM64ToXMM
	InsnConvXMMToXMM64
	InsnDivsdXMMXMM
	InsnDivssXMMXMM
	InsnDivMembaseReg
	InsnDivRegReg
	InsnFild64Membase
	InsnFistp64Membase
	InsnFldcwMembase
	InsnFld64Membase
	InsnFld64Memlocal
	InsnFldMembase
	InsnFldMemlocal
	InsnFnstcwMembase
	InsnFstp64Membase
	InsnFstp64Memlocal
	InsnFstpMembase
	InsnFstpMemlocal
	InsnICCall
	InsnJeBranch
	InsnJgeBranch
	InsnJgBranch
	InsnJleBranch
	InsnJlBranch
	InsnJmpBranch
	InsnJmpMembase
	InsnJmpMemindex
	InsnJneBranch
	InsnMovsdMembaseXMM
	InsnMovsdMemdispXMM
	InsnMovsdMemindexXMM
	InsnMovsdMemlocalXMM
	InsnMovsdXMMMembase
	InsnMovsdXMMMemdisp
	InsnMovsdXMMMemindex
	InsnMovsdXMMMemlocal
	InsnMovsdXMMXMM
	InsnMovssMembaseXMM
	InsnMovssMemdispXMM
	InsnMovssMemindexXMM
	InsnMovssMemlocalXMM
	InsnMovssXMMMembase
	InsnMovssXMMMemdisp
	InsnMovssXMMMemindex
	InsnMovssXMMMemlocal
	InsnMovssXMMXMM
	InsnMovsxdRegReg
	InsnMovsx16MembaseReg
	InsnMovsx16RegReg
	InsnMovsx8MembaseReg
	InsnMovsx8RegReg
	InsnMovzx16RegReg
	InsnMovImmMembase
	InsnMovImmMemlocal
	InsnMovImmReg
	InsnMovImmThreadLocalMembase
	InsnMovMembaseReg
	InsnMovMemdispReg
	InsnMovMemindexReg
	InsnMovMemlocalReg
	InsnMovRegMembase
	InsnMovRegMemdisp
	InsnMovRegMemindex
	InsnMovRegMemlocal
	InsnMovRegReg
	InsnMovRegThreadLocalMembase
	InsnMovRegThreadLocalMemdisp
	InsnMovThreadLocalMemdispReg
	InsnMulsdMemdispXMM
	InsnMulsdXMMXMM
	InsnMulssXMMXMM
	InsnMulMembaseEAX
	InsnMulRegEAX
	InsnMulRegReg
	InsnNegReg
	InsnNop
	InsnOrImmMembase
	InsnOrMembaseReg
	InsnOrRegReg
	InsnPhi
	InsnPopMemlocal
	InsnPopReg
	InsnPushImm
	InsnPushMemlocal
	InsnPushReg
	InsnRet
	InsnSarImmReg
	InsnSarRegReg
	InsnSbbImmReg
	InsnSbbMembaseReg
	InsnSbbRegReg
	InsnShlRegReg
	InsnShrRegReg
	InsnSubsdXMMXMM
	InsnSubssXMMXMM
	InsnSubImmReg
	InsnSubMembaseReg
	InsnSubRegReg
	InsnTestImmMemdisp
	InsnTestMembaseReg
	InsnXorpdXMMXMM
	InsnXorMembaseReg
	InsnXorRegReg
	InsnXorpsXMMXMM

	InsnSaveCallerRegs
	InsnRestoreCallerRegs
	InsnRestoreCallerRegsI32
	InsnRestoreCallerRegsI64
	InsnRestoreCallerRegsF32
	InsnRestoreCallerRegsF64

	// NrInsnTypes must be last
	NrInsnTypes
)

// Shape is the operand storage layout of an instruction.
type Shape uint8

const (
	ShapeNone    Shape = iota // no operands
	ShapeSingle               // one unified operand
	ShapeSrcDest              // fixed source + destination pair
	ShapePhi                  // variable arity source list + destination
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeSingle:
		return "single"
	case ShapeSrcDest:
		return "src,dest"
	case ShapePhi:
		return "phi"
	}
	return "?"
}

type infoFlags uint16

const (
	useSrc  infoFlags = 1 << iota // registers of the source (or single operand) are read
	useDest                       // a register destination is read as well
	defDest                       // a register destination (or single operand) is written

	classCall
	classBranch
	classJmpMem
	classCopy

	// common use/def patterns
	rmw   = useSrc | useDest | defDest // two-address arithmetic
	mov   = useSrc | defDest           // loads, moves, conversions
	cmp   = useSrc | useDest           // compares and tests
	store = useSrc | useDest           // destination is memory, its base is read
)

type insnInfo struct {
	shape Shape
	src   OperandType // single shape keeps its operand type here
	dest  OperandType
	flags infoFlags
}

func none() insnInfo {
	return insnInfo{shape: ShapeNone}
}

func single(t OperandType, f infoFlags) insnInfo {
	return insnInfo{shape: ShapeSingle, src: t, flags: f}
}

func srcDest(src, dest OperandType, f infoFlags) insnInfo {
	return insnInfo{shape: ShapeSrcDest, src: src, dest: dest, flags: f}
}

const (
	imm      = OperandImm
	reg      = OperandReg
	membase  = OperandMembase
	memdisp  = OperandMemdisp
	memindex = OperandMemindex
	memlocal = OperandMemlocal
	branch   = OperandBranch
	rel      = OperandRel
)

// insnInfos is the fixed type -> shape table. Every InsnType has an entry,
// insnSanityCheck enforces that at init.
var insnInfos = [NrInsnTypes]insnInfo{
	InsnAdcImmReg:       srcDest(imm, reg, rmw),
	InsnAdcMembaseReg:   srcDest(membase, reg, rmw),
	InsnAdcRegReg:       srcDest(reg, reg, rmw),
	InsnAddsdMemdispXMM: srcDest(memdisp, reg, rmw),
	InsnAddsdXMMXMM:     srcDest(reg, reg, rmw),
	InsnAddssXMMXMM:     srcDest(reg, reg, rmw),
	InsnAddImmReg:       srcDest(imm, reg, rmw),
	InsnAddMembaseReg:   srcDest(membase, reg, rmw),
	InsnAddRegReg:       srcDest(reg, reg, rmw),
	InsnAndMembaseReg:   srcDest(membase, reg, rmw),
	InsnAndRegReg:       srcDest(reg, reg, rmw),
	InsnCallReg:         single(reg, useSrc|classCall),
	InsnCallRel:         single(rel, classCall),
	InsnCltdRegReg:      srcDest(reg, reg, mov),
	InsnCmpImmReg:       srcDest(imm, reg, cmp),
	InsnCmpMembaseReg:   srcDest(membase, reg, cmp),
	InsnCmpRegReg:       srcDest(reg, reg, cmp),
	InsnConvFPU64ToGPR:  srcDest(reg, reg, mov),
	InsnConvFPUToGPR:    srcDest(reg, reg, mov),
	InsnConvGPRToFPU:    srcDest(reg, reg, mov),
	InsnConvGPRToFPU64:  srcDest(reg, reg, mov),
	InsnConvXMM64ToXMM:  srcDest(reg, reg, mov),
	InsnConvXMMToXMM64:  srcDest(reg, reg, mov),
	InsnDivsdXMMXMM:     srcDest(reg, reg, rmw),
	InsnDivssXMMXMM:     srcDest(reg, reg, rmw),
	InsnDivMembaseReg:   srcDest(membase, reg, rmw),
	InsnDivRegReg:       srcDest(reg, reg, rmw),
	InsnFild64Membase:   single(membase, useSrc),
	InsnFistp64Membase:  single(membase, useSrc),
	InsnFldcwMembase:    single(membase, useSrc),
	InsnFld64Membase:    single(membase, useSrc),
	InsnFld64Memlocal:   single(memlocal, 0),
	InsnFldMembase:      single(membase, useSrc),
	InsnFldMemlocal:     single(memlocal, 0),
	InsnFnstcwMembase:   single(membase, useSrc),
	InsnFstp64Membase:   single(membase, useSrc),
	InsnFstp64Memlocal:  single(memlocal, 0),
	InsnFstpMembase:     single(membase, useSrc),
	InsnFstpMemlocal:    single(memlocal, 0),
	InsnICCall:          srcDest(reg, rel, useSrc|classCall),
	InsnJeBranch:        single(branch, classBranch),
	InsnJgeBranch:       single(branch, classBranch),
	InsnJgBranch:        single(branch, classBranch),
	InsnJleBranch:       single(branch, classBranch),
	InsnJlBranch:        single(branch, classBranch),
	InsnJmpBranch:       single(branch, classBranch),
	InsnJmpMembase:      single(membase, useSrc|classJmpMem),
	InsnJmpMemindex:     single(memindex, useSrc|classJmpMem),
	InsnJneBranch:       single(branch, classBranch),

	InsnMovsdMembaseXMM:  srcDest(membase, reg, mov),
	InsnMovsdMemdispXMM:  srcDest(memdisp, reg, mov),
	InsnMovsdMemindexXMM: srcDest(memindex, reg, mov),
	InsnMovsdMemlocalXMM: srcDest(memlocal, reg, mov),
	InsnMovsdXMMMembase:  srcDest(reg, membase, store),
	InsnMovsdXMMMemdisp:  srcDest(reg, memdisp, store),
	InsnMovsdXMMMemindex: srcDest(reg, memindex, store),
	InsnMovsdXMMMemlocal: srcDest(reg, memlocal, store),
	InsnMovsdXMMXMM:      srcDest(reg, reg, mov|classCopy),
	InsnMovssMembaseXMM:  srcDest(membase, reg, mov),
	InsnMovssMemdispXMM:  srcDest(memdisp, reg, mov),
	InsnMovssMemindexXMM: srcDest(memindex, reg, mov),
	InsnMovssMemlocalXMM: srcDest(memlocal, reg, mov),
	InsnMovssXMMMembase:  srcDest(reg, membase, store),
	InsnMovssXMMMemdisp:  srcDest(reg, memdisp, store),
	InsnMovssXMMMemindex: srcDest(reg, memindex, store),
	InsnMovssXMMMemlocal: srcDest(reg, memlocal, store),
	InsnMovssXMMXMM:      srcDest(reg, reg, mov|classCopy),

	InsnMovsxdRegReg:      srcDest(reg, reg, mov),
	InsnMovsx16MembaseReg: srcDest(membase, reg, mov),
	InsnMovsx16RegReg:     srcDest(reg, reg, mov),
	InsnMovsx8MembaseReg:  srcDest(membase, reg, mov),
	InsnMovsx8RegReg:      srcDest(reg, reg, mov),
	InsnMovzx16RegReg:     srcDest(reg, reg, mov),
	InsnMovImmMembase:     srcDest(imm, membase, store),
	InsnMovImmMemlocal:    srcDest(imm, memlocal, store),
	InsnMovImmReg:         srcDest(imm, reg, mov),
	InsnMovMembaseReg:     srcDest(membase, reg, mov),
	InsnMovMemdispReg:     srcDest(memdisp, reg, mov),
	InsnMovMemindexReg:    srcDest(memindex, reg, mov),
	InsnMovMemlocalReg:    srcDest(memlocal, reg, mov),
	InsnMovRegMembase:     srcDest(reg, membase, store),
	InsnMovRegMemdisp:     srcDest(reg, memdisp, store),
	InsnMovRegMemindex:    srcDest(reg, memindex, store),
	InsnMovRegMemlocal:    srcDest(reg, memlocal, store),
	InsnMovRegReg:         srcDest(reg, reg, mov|classCopy),

	InsnMovImmThreadLocalMembase: srcDest(imm, membase, store),
	InsnMovRegThreadLocalMembase: srcDest(reg, membase, store),
	InsnMovRegThreadLocalMemdisp: srcDest(reg, memdisp, store),
	InsnMovThreadLocalMemdispReg: srcDest(memdisp, reg, mov),

	InsnMulsdMemdispXMM: srcDest(memdisp, reg, rmw),
	InsnMulsdXMMXMM:     srcDest(reg, reg, rmw),
	InsnMulssXMMXMM:     srcDest(reg, reg, rmw),
	InsnMulMembaseEAX:   srcDest(membase, reg, rmw),
	InsnMulRegEAX:       srcDest(reg, reg, rmw),
	InsnMulRegReg:       srcDest(reg, reg, rmw),
	InsnNegReg:          single(reg, useSrc|defDest),
	InsnNop:             none(),
	InsnOrImmMembase:    srcDest(imm, membase, store),
	InsnOrMembaseReg:    srcDest(membase, reg, rmw),
	InsnOrRegReg:        srcDest(reg, reg, rmw),
	InsnPhi:             {shape: ShapePhi, src: reg, dest: reg, flags: mov},
	InsnPopMemlocal:     single(memlocal, 0),
	InsnPopReg:          single(reg, defDest),
	InsnPushImm:         single(imm, 0),
	InsnPushMemlocal:    single(memlocal, 0),
	InsnPushReg:         single(reg, useSrc),
	InsnRet:             none(),
	InsnSarImmReg:       srcDest(imm, reg, rmw),
	InsnSarRegReg:       srcDest(reg, reg, rmw),
	InsnSbbImmReg:       srcDest(imm, reg, rmw),
	InsnSbbMembaseReg:   srcDest(membase, reg, rmw),
	InsnSbbRegReg:       srcDest(reg, reg, rmw),
	InsnShlRegReg:       srcDest(reg, reg, rmw),
	InsnShrRegReg:       srcDest(reg, reg, rmw),
	InsnSubsdXMMXMM:     srcDest(reg, reg, rmw),
	InsnSubssXMMXMM:     srcDest(reg, reg, rmw),
	InsnSubImmReg:       srcDest(imm, reg, rmw),
	InsnSubMembaseReg:   srcDest(membase, reg, rmw),
	InsnSubRegReg:       srcDest(reg, reg, rmw),
	InsnTestImmMemdisp:  srcDest(imm, memdisp, cmp),
	InsnTestMembaseReg:  srcDest(membase, reg, cmp),
	InsnXorpdXMMXMM:     srcDest(reg, reg, rmw),
	InsnXorMembaseReg:   srcDest(membase, reg, rmw),
	InsnXorRegReg:       srcDest(reg, reg, rmw),
	InsnXorpsXMMXMM:     srcDest(reg, reg, rmw),

	InsnSaveCallerRegs:       none(),
	InsnRestoreCallerRegs:    none(),
	InsnRestoreCallerRegsI32: none(),
	InsnRestoreCallerRegsI64: none(),
	InsnRestoreCallerRegsF32: none(),
	InsnRestoreCallerRegsF64: none(),
}

func init() {
	insnSanityCheck()
}

// insnSanityCheck verifies that the table covers every type: a missing
// entry would silently decay to ShapeNone.
func insnSanityCheck() {
	for t := InsnType(0); t < NrInsnTypes; t++ {
		if insnNames[t] == "" {
			panic("lir: missing name for instruction type")
		}
		if insnInfos[t].shape == ShapeNone && !isOperandless(t) {
			panic("lir: missing shape table entry for " + t.String())
		}
	}
}

func isOperandless(t InsnType) bool {
	switch t {
	case InsnNop, InsnRet, InsnSaveCallerRegs, InsnRestoreCallerRegs,
		InsnRestoreCallerRegsI32, InsnRestoreCallerRegsI64,
		InsnRestoreCallerRegsF32, InsnRestoreCallerRegsF64:
		return true
	}
	return false
}

func (t InsnType) info() *insnInfo {
	if t >= NrInsnTypes {
		panic("lir: invalid instruction type")
	}
	return &insnInfos[t]
}

func (t InsnType) Shape() Shape {
	return t.info().shape
}

// SrcType is the legal operand type of the source slot (or of the single
// operand for ShapeSingle).
func (t InsnType) SrcType() OperandType {
	return t.info().src
}

func (t InsnType) DestType() OperandType {
	return t.info().dest
}

func (t InsnType) String() string {
	if t < NrInsnTypes && insnNames[t] != "" {
		return insnNames[t]
	}
	return "insn?"
}
