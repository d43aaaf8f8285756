package liveness

import (
	"testing"

	"github.com/launix-de/memjit/lir"
)

func newTestInterval() *Interval {
	return NewInterval(&lir.Var{VReg: 0, Fixed: lir.RegUnassigned})
}

func assertRanges(t *testing.T, it *Interval, want ...Range) {
	t.Helper()
	got := it.Ranges()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestIntervalBridging(t *testing.T) {
	it := newTestInterval()
	it.AddRange(1, 3)
	it.AddRange(5, 7)
	assertRanges(t, it, Range{1, 3}, Range{5, 7})

	it.AddRange(3, 5)
	assertRanges(t, it, Range{1, 7})

	it.AddRange(7, 8)
	assertRanges(t, it, Range{1, 8})

	it.AddRange(10, 13)
	assertRanges(t, it, Range{1, 8}, Range{10, 13})

	it.AddRange(0, 14)
	assertRanges(t, it, Range{0, 14})
}

func TestIntervalIdempotent(t *testing.T) {
	a := newTestInterval()
	b := newTestInterval()
	for _, r := range []Range{{4, 9}, {12, 15}, {1, 2}} {
		a.AddRange(r.Start, r.End)
		b.AddRange(r.Start, r.End)
		b.AddRange(r.Start, r.End)
	}
	assertRanges(t, b, a.Ranges()...)
}

func TestIntervalOrderIndependent(t *testing.T) {
	input := []Range{{20, 22}, {0, 2}, {8, 10}, {2, 4}, {14, 16}, {9, 15}}
	forward := newTestInterval()
	backward := newTestInterval()
	for i := range input {
		forward.AddRange(input[i].Start, input[i].End)
		r := input[len(input)-1-i]
		backward.AddRange(r.Start, r.End)
	}
	assertRanges(t, forward, Range{0, 4}, Range{8, 16}, Range{20, 22})
	assertRanges(t, backward, forward.Ranges()...)
}

func TestIntervalContainedAndOverlapping(t *testing.T) {
	it := newTestInterval()
	it.AddRange(10, 20)
	it.AddRange(12, 15) // inside
	assertRanges(t, it, Range{10, 20})
	it.AddRange(5, 11) // overlaps start
	assertRanges(t, it, Range{5, 20})
	it.AddRange(19, 25) // overlaps end
	assertRanges(t, it, Range{5, 25})
	it.AddRange(30, 30) // empty
	assertRanges(t, it, Range{5, 25})
	expectPanic(t, func() { it.AddRange(9, 3) })
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	fn()
}

func TestIntervalTraversal(t *testing.T) {
	it := newTestInterval()
	if _, ok := it.First(); ok {
		t.Error("empty interval has a first range")
	}
	it.AddRange(10, 13)
	it.AddRange(1, 3)
	it.AddRange(5, 7)

	var got []Range
	for r, ok := it.First(); ok; r, ok = it.Next(r) {
		got = append(got, r)
	}
	if len(got) != 3 || got[0] != (Range{1, 3}) || got[2] != (Range{10, 13}) {
		t.Errorf("unexpected traversal %v", got)
	}
	if it.Start() != 1 || it.End() != 13 || it.Len() != 3 {
		t.Errorf("start/end/len: %d %d %d", it.Start(), it.End(), it.Len())
	}
	for pos, want := range map[uint32]bool{0: false, 1: true, 2: true, 3: false, 6: true, 7: false, 12: true, 13: false} {
		if it.Covers(pos) != want {
			t.Errorf("Covers(%d) = %v", pos, !want)
		}
	}
}

func TestIntervalIntersection(t *testing.T) {
	a := newTestInterval()
	b := newTestInterval()
	a.AddRange(0, 4)
	a.AddRange(10, 20)
	b.AddRange(4, 8)
	if a.Intersects(b) || b.Intersects(a) {
		t.Error("touching intervals do not intersect")
	}
	b.AddRange(16, 30)
	pos, ok := a.FirstIntersection(b)
	if !ok || pos != 16 {
		t.Errorf("expected first intersection at 16, got %d %v", pos, ok)
	}
	if p2, _ := b.FirstIntersection(a); p2 != pos {
		t.Error("first intersection not symmetric")
	}
}

func TestIntervalUses(t *testing.T) {
	it := newTestInterval()
	i1 := lir.NewInsn(lir.InsnNop)
	i2 := lir.NewInsn(lir.InsnRet)
	it.AddUse(8, i2)
	it.AddUse(2, i1)
	it.AddUse(8, i2)
	uses := it.Uses()
	if len(uses) != 2 || uses[0].Pos != 2 || uses[1].Pos != 8 {
		t.Fatalf("unexpected uses %v", uses)
	}
	if u, ok := it.NextUseAfter(3); !ok || u.Insn != i2 {
		t.Error("next use after 3 should be at 8")
	}
	if _, ok := it.NextUseAfter(9); ok {
		t.Error("no use after 9")
	}
}
