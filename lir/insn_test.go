package lir

import "testing"

func TestInsnTableComplete(t *testing.T) {
	for it := InsnType(0); it < NrInsnTypes; it++ {
		if it.String() == "insn?" {
			t.Errorf("instruction type %d has no name", it)
		}
		if it.Shape() == ShapeNone && !isOperandless(it) {
			t.Errorf("%s has no shape", it)
		}
	}
	if InsnAddRegReg.String() != "add_reg_reg" {
		t.Errorf("unexpected name %q", InsnAddRegReg.String())
	}
	if InsnMovsdXMMXMM.String() != "movsd_xmm_xmm" {
		t.Errorf("unexpected name %q", InsnMovsdXMMXMM.String())
	}
	expectPanic(t, "info of NrInsnTypes", func() { NrInsnTypes.Shape() })
}

func TestInsnClassification(t *testing.T) {
	calls := map[InsnType]bool{InsnCallReg: true, InsnCallRel: true, InsnICCall: true}
	copies := map[InsnType]bool{InsnMovRegReg: true, InsnMovsdXMMXMM: true, InsnMovssXMMXMM: true}
	branches := map[InsnType]bool{
		InsnJeBranch: true, InsnJgeBranch: true, InsnJgBranch: true, InsnJleBranch: true,
		InsnJlBranch: true, InsnJmpBranch: true, InsnJneBranch: true,
	}
	for it := InsnType(0); it < NrInsnTypes; it++ {
		insn := &Insn{Type: it}
		if insn.IsCall() != calls[it] {
			t.Errorf("%s: IsCall = %v", it, insn.IsCall())
		}
		if insn.IsCopy() != copies[it] {
			t.Errorf("%s: IsCopy = %v", it, insn.IsCopy())
		}
		if insn.IsBranch() != branches[it] {
			t.Errorf("%s: IsBranch = %v", it, insn.IsBranch())
		}
		if insn.IsJmpMem() != (it == InsnJmpMembase || it == InsnJmpMemindex) {
			t.Errorf("%s: IsJmpMem = %v", it, insn.IsJmpMem())
		}
	}
}

func TestIsCallTo(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	v := cu.NewVar(RegGPR)

	call := RelInsn(InsnCallRel, 0xdead)
	if !call.IsCallTo(0xdead) {
		t.Error("call_rel to its own target not detected")
	}
	if call.IsCallTo(0xbeef) {
		t.Error("call_rel matched a foreign target")
	}
	// only relocatable calls compare their target
	if RegInsn(InsnCallReg, v).IsCallTo(0xdead) {
		t.Error("call_reg must never match")
	}
	if ICCallInsn(v, 0xdead).IsCallTo(0xdead) {
		t.Error("ic_call must never match")
	}
}

func TestInsnConstructorsRejectMismatch(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	v := cu.NewVar(RegGPR)
	slot := cu.NewStackSlot(1)

	expectPanic(t, "reg_reg as imm", func() { ImmRegInsn(InsnAddRegReg, 1, v) })
	expectPanic(t, "single as src/dest", func() { RegRegInsn(InsnPushReg, v, v) })
	expectPanic(t, "src/dest as single", func() { RegInsn(InsnAddRegReg, v) })
	expectPanic(t, "nop with operand", func() { ImmInsn(InsnNop, 0) })
	expectPanic(t, "operandless constructor for push", func() { NewInsn(InsnPushReg) })
	expectPanic(t, "memlocal into membase slot", func() { RegMemlocalInsn(InsnMovRegMembase, v, slot) })

	insn := RegRegInsn(InsnAddRegReg, v, v)
	if insn.Type.Shape() != ShapeSrcDest || insn.Src.Type != OperandReg || insn.Dest.Type != OperandReg {
		t.Errorf("add_reg_reg built wrong: %s", insn)
	}
	if NewInsn(InsnRet).Operands() != nil {
		t.Error("ret should have no operands")
	}
}

func TestInsnUsesDefs(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	a := cu.NewVar(RegGPR)
	b := cu.NewVar(RegGPR)
	base := cu.NewVar(RegGPR)

	type want struct{ uses, defs int }
	cases := []struct {
		insn *Insn
		want want
	}{
		{RegRegInsn(InsnAddRegReg, a, b), want{2, 1}},
		{RegRegInsn(InsnMovRegReg, a, b), want{1, 1}},
		{ImmRegInsn(InsnMovImmReg, 7, b), want{0, 1}},
		{RegRegInsn(InsnCmpRegReg, a, b), want{2, 0}},
		{RegMembaseInsn(InsnMovRegMembase, a, base, 8), want{2, 0}},
		{MembaseRegInsn(InsnMovMembaseReg, base, 8, b), want{1, 1}},
		{RegInsn(InsnPushReg, a), want{1, 0}},
		{RegInsn(InsnPopReg, a), want{0, 1}},
		{RegInsn(InsnNegReg, a), want{1, 1}},
		{MemindexInsn(InsnJmpMemindex, base, a, 3), want{2, 0}},
		{NewInsn(InsnRet), want{0, 0}},
	}
	for _, c := range cases {
		if got := len(c.insn.Uses()); got != c.want.uses {
			t.Errorf("%s: expected %d uses, got %d", c.insn, c.want.uses, got)
		}
		if got := len(c.insn.Defs()); got != c.want.defs {
			t.Errorf("%s: expected %d defs, got %d", c.insn, c.want.defs, got)
		}
	}
}

func TestPhi(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	d := cu.NewVar(RegGPR)
	s0 := cu.NewVar(RegGPR)
	s1 := cu.NewVar(RegGPR)

	phi := PhiInsn(d, 2)
	if !phi.IsPhi() || phi.NrPhiSrcs() != 2 {
		t.Fatalf("bad phi: %s", phi)
	}
	phi.SetPhiSrc(0, s0)
	phi.SetPhiSrc(1, s1)
	if len(phi.Uses()) != 2 || len(phi.Defs()) != 1 {
		t.Errorf("phi uses/defs: %d/%d", len(phi.Uses()), len(phi.Defs()))
	}
	if n := phi.AssignReg(s1, RegRBX); n != 1 {
		t.Errorf("expected one assignment, got %d", n)
	}
	add := RegRegInsn(InsnAddRegReg, s0, d)
	expectPanic(t, "SetPhiSrc on add", func() { add.SetPhiSrc(0, s0) })
	expectPanic(t, "NrPhiSrcs on add", func() { add.NrPhiSrcs() })
}

func TestInsnPosition(t *testing.T) {
	insn := NewInsn(InsnNop)
	expectPanic(t, "LIRPos before numbering", func() { insn.LIRPos() })

	insn.SetLIRPos(42)
	if insn.LIRPos() != 42 {
		t.Errorf("expected LIR position 42, got %d", insn.LIRPos())
	}
	expectPanic(t, "MachOffset before emission", func() { insn.MachOffset() })

	insn.SetMachOffset(0x80)
	if insn.MachOffset() != 0x80 || insn.Pos.Kind != PosMachine {
		t.Errorf("unexpected machine offset %v", insn.Pos)
	}
	expectPanic(t, "LIRPos after emission", func() { insn.LIRPos() })

	insn.SetBCOffset(12)
	if !insn.HasFlag(FlagKnownBCOffset) || insn.BCOffset != 12 {
		t.Error("bytecode offset not recorded")
	}
}

func TestInsnString(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	a := cu.NewVar(RegGPR)
	b := cu.NewVar(RegGPR)
	insn := ImmRegInsn(InsnAddImmReg, 16, a)
	if got := insn.String(); got != "add_imm_reg $0x10, v0" {
		t.Errorf("unexpected rendering %q", got)
	}
	insn = RegRegInsn(InsnMovRegReg, a, b)
	insn.AssignReg(b, RegRCX)
	if got := insn.String(); got != "mov_reg_reg v0, rcx" {
		t.Errorf("unexpected rendering %q", got)
	}
}
