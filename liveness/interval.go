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
	"fmt"
	"sort"
	"strings"

	"github.com/google/btree"
	"github.com/launix-de/memjit/lir"
)

// UsePosition is one instruction referencing the value of an interval.
type UsePosition struct {
	Pos  uint32
	Insn *lir.Insn
}

/*
Interval is the set of positions where one value is live. Ranges are kept
canonical at all times: sorted by start, pairwise disjoint and never touching.
AddRange merges on insert, so ranges may be added in any order.
*/
type Interval struct {
	Var    *lir.Var
	ranges *btree.BTreeG[Range]
	uses   []UsePosition
}

func rangeLess(a, b Range) bool {
	return a.Start < b.Start
}

func NewInterval(v *lir.Var) *Interval {
	return &Interval{Var: v, ranges: btree.NewG[Range](8, rangeLess)}
}

// AddRange inserts [start, end) and coalesces it with every stored range it
// overlaps or touches.
func (it *Interval) AddRange(start, end uint32) {
	if start > end {
		panic(fmt.Sprintf("liveness: invalid range [%d,%d)", start, end))
	}
	if start == end {
		return
	}
	merged := Range{start, end}

	// predecessor (the only range starting at or before start that can reach it)
	it.ranges.DescendLessOrEqual(Range{Start: start}, func(p Range) bool {
		if p.End >= start {
			merged.Start = p.Start
			if p.End > merged.End {
				merged.End = p.End
			}
		}
		return false
	})

	// every successor starting inside or right at the end of the merged span
	var absorbed []Range
	it.ranges.AscendGreaterOrEqual(Range{Start: merged.Start}, func(s Range) bool {
		if s.Start > merged.End {
			return false
		}
		absorbed = append(absorbed, s)
		if s.End > merged.End {
			merged.End = s.End
		}
		return true
	})
	for _, s := range absorbed {
		it.ranges.Delete(s)
	}
	it.ranges.ReplaceOrInsert(merged)
}

// First returns the lowest range; false if the interval is empty.
func (it *Interval) First() (Range, bool) {
	return it.ranges.Min()
}

// Next returns the range following r; false if r is the last one.
func (it *Interval) Next(r Range) (result Range, ok bool) {
	it.ranges.AscendGreaterOrEqual(Range{Start: r.Start + 1}, func(s Range) bool {
		result, ok = s, true
		return false
	})
	return
}

func (it *Interval) Ranges() []Range {
	result := make([]Range, 0, it.ranges.Len())
	it.ranges.Ascend(func(r Range) bool {
		result = append(result, r)
		return true
	})
	return result
}

// Len is the number of stored ranges.
func (it *Interval) Len() int {
	return it.ranges.Len()
}

func (it *Interval) IsEmpty() bool {
	return it.ranges.Len() == 0
}

// Start is the first live position; 0 for an empty interval.
func (it *Interval) Start() uint32 {
	r, _ := it.ranges.Min()
	return r.Start
}

// End is the position after the last live one; 0 for an empty interval.
func (it *Interval) End() uint32 {
	r, _ := it.ranges.Max()
	return r.End
}

func (it *Interval) Covers(pos uint32) (covered bool) {
	it.ranges.DescendLessOrEqual(Range{Start: pos}, func(r Range) bool {
		covered = r.Contains(pos)
		return false
	})
	return
}

// FirstIntersection returns the lowest position covered by both intervals.
func (it *Interval) FirstIntersection(other *Interval) (uint32, bool) {
	a := it.Ranges()
	b := other.Ranges()
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Intersects(b[j]) {
			return max(a[i].Start, b[j].Start), true
		}
		if a[i].End <= b[j].End {
			i++
		} else {
			j++
		}
	}
	return 0, false
}

func (it *Interval) Intersects(other *Interval) bool {
	_, ok := it.FirstIntersection(other)
	return ok
}

// AddUse records a reference at pos. Uses are kept in ascending order; the
// same instruction is recorded once.
func (it *Interval) AddUse(pos uint32, insn *lir.Insn) {
	i := sort.Search(len(it.uses), func(i int) bool { return it.uses[i].Pos >= pos })
	for j := i; j < len(it.uses) && it.uses[j].Pos == pos; j++ {
		if it.uses[j].Insn == insn {
			return
		}
	}
	it.uses = append(it.uses, UsePosition{})
	copy(it.uses[i+1:], it.uses[i:])
	it.uses[i] = UsePosition{Pos: pos, Insn: insn}
}

func (it *Interval) Uses() []UsePosition {
	return it.uses
}

// NextUseAfter returns the first use at or after pos.
func (it *Interval) NextUseAfter(pos uint32) (UsePosition, bool) {
	i := sort.Search(len(it.uses), func(i int) bool { return it.uses[i].Pos >= pos })
	if i == len(it.uses) {
		return UsePosition{}, false
	}
	return it.uses[i], true
}

func (it *Interval) String() string {
	var b strings.Builder
	b.WriteString(it.Var.String())
	b.WriteByte(':')
	it.ranges.Ascend(func(r Range) bool {
		b.WriteByte(' ')
		b.WriteString(r.String())
		return true
	})
	return b.String()
}
