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

import "fmt"

// Range is the half-open position span [Start, End).
type Range struct {
	Start, End uint32
}

func (r Range) Len() uint32 {
	return r.End - r.Start
}

// Contains reports Start <= pos < End; the end position itself is outside.
func (r Range) Contains(pos uint32) bool {
	return r.Start <= pos && pos < r.End
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Intersects is symmetric. Ranges that only touch ([a,b) and [b,c)) do not
// intersect, and an empty range intersects nothing.
func (r Range) Intersects(o Range) bool {
	return RangesIntersect(r, o)
}

func RangesIntersect(r1, r2 Range) bool {
	if r1.IsEmpty() || r2.IsEmpty() {
		return false
	}
	return r1.Start < r2.End && r2.Start < r1.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}
