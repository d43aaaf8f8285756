package lir

import (
	"strings"
	"testing"
)

func TestNumber(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	b0 := cu.NewBlock()
	b1 := cu.NewBlock()
	cu.AddEdge(b0, b1)
	b0.Insns.Append(NewInsn(InsnNop))
	b0.Insns.Append(JumpInsn(b1))
	b1.Insns.Append(NewInsn(InsnRet))

	if next := cu.Number(); next != 6 {
		t.Errorf("expected next free position 6, got %d", next)
	}
	want := []uint32{0, 2, 4}
	var got []uint32
	for _, bb := range cu.Blocks {
		bb.Insns.Each(func(_ InsnID, insn *Insn) bool {
			got = append(got, insn.LIRPos())
			return true
		})
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	if len(b1.Preds) != 1 || b1.Preds[0] != b0 {
		t.Error("edge not recorded on the successor")
	}
	if !strings.Contains(cu.Dump(), "bb0: ->bb1") {
		t.Errorf("dump lacks edge:\n%s", cu.Dump())
	}
}

func TestBackpatch(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	b0 := cu.NewBlock()
	b1 := cu.NewBlock()
	jmp := JumpInsn(b1)
	b0.Insns.Append(jmp)
	b1.AddBackpatch(jmp)
	if !jmp.HasFlag(FlagBackpatchBranch) || b1.PendingBackpatches() != 1 {
		t.Fatal("branch not queued for backpatching")
	}
	pending := b1.SetMachOffset(0x40)
	if len(pending) != 1 || pending[0] != jmp {
		t.Errorf("unexpected pending list %v", pending)
	}
	if jmp.HasFlag(FlagBackpatchBranch) || b1.PendingBackpatches() != 0 || !b1.Emitted {
		t.Error("backpatch state not cleared")
	}

	rb := cu.NewResolutionBlock(b0, b1)
	br := &Insn{Type: InsnJmpBranch, Operand: ResolutionOperand(rb)}
	rb.AddBackpatch(br)
	if !br.HasFlag(FlagBackpatchResolution) {
		t.Error("resolution backpatch flag missing")
	}
	if got := rb.SetMachOffset(0x80); len(got) != 1 || br.HasFlag(FlagBackpatchResolution) {
		t.Error("resolution backpatch not drained")
	}
}

func TestUnitAssignReg(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	b0 := cu.NewBlock()
	b1 := cu.NewBlock()
	v := cu.NewVar(RegGPR)
	w := cu.NewVar(RegGPR)
	b0.Insns.Append(ImmRegInsn(InsnMovImmReg, 1, v))
	b1.Insns.Append(RegRegInsn(InsnAddRegReg, v, w))
	rb := cu.NewResolutionBlock(b0, b1)
	rb.Insns.Append(RegRegInsn(InsnMovRegReg, v, w))

	if n := cu.AssignReg(v, RegR12); n != 3 {
		t.Errorf("expected 3 rewritten uses, got %d", n)
	}
	if got := rb.Insns.Get(rb.Insns.First()).Src.Reg().Reg; got != RegR12 {
		t.Errorf("resolution move not rewritten: %s", got)
	}
}

func TestSpillReload(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	g := cu.NewVar(RegGPR)
	x := cu.NewVar(RegXMM)
	s1 := cu.NewStackSlot(1)
	s2 := cu.NewStackSlot(2)

	cases := []struct {
		insn *Insn
		want InsnType
	}{
		{SpillInsn(g, s1), InsnMovRegMemlocal},
		{SpillInsn(x, s1), InsnMovssXMMMemlocal},
		{SpillInsn(x, s2), InsnMovsdXMMMemlocal},
		{ReloadInsn(s1, g), InsnMovMemlocalReg},
		{ReloadInsn(s1, x), InsnMovssMemlocalXMM},
		{ReloadInsn(s2, x), InsnMovsdMemlocalXMM},
	}
	for _, c := range cases {
		if c.insn.Type != c.want {
			t.Errorf("expected %s, got %s", c.want, c.insn.Type)
		}
	}
}

func TestInsertCopySlotInsns(t *testing.T) {
	cu := NewCompilationUnit("Test.m()V")
	bb := cu.NewBlock()
	from := cu.NewStackSlot(2)
	to := cu.NewStackSlot(2)
	ret := bb.Insns.Append(NewInsn(InsnRet))

	last := InsertCopySlotInsns(from, to, bb.Insns, ret, 7)
	want := []InsnType{InsnPushMemlocal, InsnPopMemlocal, InsnPushMemlocal, InsnPopMemlocal, InsnRet}
	if got := listTypes(bb.Insns); !sameTypes(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if bb.Insns.Next(last) != ret {
		t.Error("last inserted instruction should precede the anchor")
	}
	if bc := bb.Insns.Get(last); !bc.HasFlag(FlagKnownBCOffset) || bc.BCOffset != 7 {
		t.Error("bytecode offset not propagated")
	}
	// each pair moves its own word
	insns := bb.Insns.Insns()
	for i := 0; i < 2; i++ {
		push, pop := insns[2*i], insns[2*i+1]
		if push.Operand.Slot() != from || push.Operand.Word() != i {
			t.Errorf("push %d reads %s", i, push.Operand)
		}
		if pop.Operand.Slot() != to || pop.Operand.Word() != i {
			t.Errorf("pop %d writes %s", i, pop.Operand)
		}
	}
	if s := insns[2].String(); s != "push_memlocal @slot0+1" {
		t.Errorf("unexpected listing %q", s)
	}
	expectPanic(t, "size mismatch", func() {
		InsertCopySlotInsns(from, cu.NewStackSlot(1), bb.Insns, ret, 0)
	})
}
