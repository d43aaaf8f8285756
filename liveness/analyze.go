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
package liveness

import (
	"sort"

	"github.com/launix-de/memjit/lir"
	"github.com/launix-de/memjit/trace"
	"github.com/willf/bitset"
)

// Result holds the per-block live sets and the per-value intervals of one
// compilation unit.
type Result struct {
	cu        *lir.CompilationUnit
	use       []*bitset.BitSet
	def       []*bitset.BitSet
	liveIn    []*bitset.BitSet
	liveOut   []*bitset.BitSet
	intervals []*Interval // indexed by VReg
}

func Analyze(cu *lir.CompilationUnit) *Result {
	return AnalyzeTraced(cu, nil)
}

/*
AnalyzeTraced computes liveness for cu and records the phases to tf (which
may be nil).

 1. number the instructions (PosStep apart)
 2. local use/def sets per block
 3. live-in/live-out by backward dataflow until nothing changes
 4. intervals by a backward scan of every block

Phi sources are treated as ordinary uses at the phi's position.
*/
func AnalyzeTraced(cu *lir.CompilationUnit, tf *trace.Tracefile) *Result {
	res := &Result{cu: cu}
	tf.Duration("number", "liveness", func() {
		cu.Number()
	})
	tf.Duration("local sets", "liveness", res.computeLocalSets)
	tf.Duration("dataflow", "liveness", res.computeGlobalSets)
	tf.Duration("intervals", "liveness", res.buildIntervals)
	return res
}

func (res *Result) computeLocalSets() {
	n := uint(len(res.cu.Vars))
	for _, bb := range res.cu.Blocks {
		use := bitset.New(n)
		def := bitset.New(n)
		bb.Insns.Each(func(_ lir.InsnID, insn *lir.Insn) bool {
			for _, u := range insn.Uses() {
				if !def.Test(uint(u.Var.VReg)) {
					use.Set(uint(u.Var.VReg))
				}
			}
			for _, d := range insn.Defs() {
				def.Set(uint(d.Var.VReg))
			}
			return true
		})
		res.use = append(res.use, use)
		res.def = append(res.def, def)
	}
}

func (res *Result) computeGlobalSets() {
	n := uint(len(res.cu.Vars))
	blocks := res.cu.Blocks
	res.liveIn = make([]*bitset.BitSet, len(blocks))
	res.liveOut = make([]*bitset.BitSet, len(blocks))
	for i := range blocks {
		res.liveIn[i] = bitset.New(n)
		res.liveOut[i] = bitset.New(n)
	}
	for changed := true; changed; {
		changed = false
		// reverse layout order converges fast for a backward problem
		for i := len(blocks) - 1; i >= 0; i-- {
			bb := blocks[i]
			out := bitset.New(n)
			for _, s := range bb.Succs {
				out = out.Union(res.liveIn[s.ID])
			}
			in := res.use[i].Union(out.Difference(res.def[i]))
			if !in.Equal(res.liveIn[i]) || !out.Equal(res.liveOut[i]) {
				changed = true
			}
			res.liveIn[i] = in
			res.liveOut[i] = out
		}
	}
}

func (res *Result) interval(v *lir.Var) *Interval {
	if res.intervals[v.VReg] == nil {
		res.intervals[v.VReg] = NewInterval(v)
	}
	return res.intervals[v.VReg]
}

func (res *Result) buildIntervals() {
	cu := res.cu
	step := cu.PosStep
	if step == 0 {
		step = 1
	}
	res.intervals = make([]*Interval, len(cu.Vars))
	liveEnd := make([]uint32, len(cu.Vars))
	for i, bb := range cu.Blocks {
		if bb.Insns.Len() == 0 {
			continue
		}
		from := bb.Insns.Get(bb.Insns.First()).LIRPos()
		to := bb.Insns.Get(bb.Insns.Last()).LIRPos() + step

		live := res.liveOut[i].Clone()
		for v, ok := live.NextSet(0); ok; v, ok = live.NextSet(v + 1) {
			liveEnd[v] = to
		}
		bb.Insns.EachReverse(func(_ lir.InsnID, insn *lir.Insn) bool {
			p := insn.LIRPos()
			for _, d := range insn.Defs() {
				v := uint(d.Var.VReg)
				it := res.interval(d.Var)
				if live.Test(v) {
					it.AddRange(p, liveEnd[v])
					live.Clear(v)
				} else {
					// dead definition still occupies its register
					it.AddRange(p, p+1)
				}
				it.AddUse(p, insn)
			}
			for _, u := range insn.Uses() {
				v := uint(u.Var.VReg)
				if !live.Test(v) {
					live.Set(v)
					liveEnd[v] = p + 1
				}
				res.interval(u.Var).AddUse(p, insn)
			}
			return true
		})
		for v, ok := live.NextSet(0); ok; v, ok = live.NextSet(v + 1) {
			res.interval(cu.Vars[v]).AddRange(from, liveEnd[v])
		}
	}
}

// Interval returns the interval of v, nil if v is never referenced.
func (res *Result) Interval(v *lir.Var) *Interval {
	if int(v.VReg) >= len(res.intervals) {
		return nil
	}
	return res.intervals[v.VReg]
}

// Intervals returns all non-empty intervals ordered by start position, ties
// broken by virtual register number.
func (res *Result) Intervals() []*Interval {
	var result []*Interval
	for _, it := range res.intervals {
		if it != nil && !it.IsEmpty() {
			result = append(result, it)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start() != result[j].Start() {
			return result[i].Start() < result[j].Start()
		}
		return result[i].Var.VReg < result[j].Var.VReg
	})
	return result
}

// LiveIn lists the virtual registers live at the entry of bb.
func (res *Result) LiveIn(bb *lir.BasicBlock) []uint32 {
	return members(res.liveIn[bb.ID])
}

func (res *Result) LiveOut(bb *lir.BasicBlock) []uint32 {
	return members(res.liveOut[bb.ID])
}

func members(b *bitset.BitSet) []uint32 {
	var result []uint32
	for v, ok := b.NextSet(0); ok; v, ok = b.NextSet(v + 1) {
		result = append(result, uint32(v))
	}
	return result
}
