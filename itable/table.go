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
package itable

import (
	"fmt"
	"io"
	"strings"
)

// Table is a finished itable. It is immutable and safe for concurrent use.
type Table struct {
	Class string
	slots [Size]Target
	names [Size][]string
}

func (t *Table) Slot(i int) Target {
	return t.slots[i]
}

// Lookup indexes the table the way a call site does.
func (t *Table) Lookup(name, desc string) Target {
	return t.slots[SlotIndex(name, desc)]
}

// Invoke dispatches a call to the interface method callee.
func (t *Table) Invoke(callee *Method, args []uint64) (uint64, error) {
	return t.slots[MethodSlot(callee)].Invoke(callee, args)
}

// Candidates lists the methods that hashed to slot i, for diagnostics.
func (t *Table) Candidates(i int) []string {
	return t.names[i]
}

// Used is the number of non-empty slots.
func (t *Table) Used() (n int) {
	for i := range t.names {
		if len(t.names[i]) > 0 {
			n++
		}
	}
	return
}

// WriteTrace prints every non-empty slot in slot order.
func (t *Table) WriteTrace(w io.Writer) {
	fmt.Fprintf(w, "trace itable: %s\n", t.Class)
	for i, names := range t.names {
		if len(names) == 0 {
			continue
		}
		fmt.Fprintf(w, " %d: %s\n", i, strings.Join(names, ", "))
	}
}
