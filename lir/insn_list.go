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

// InsnID addresses an instruction inside its InsnList arena.
type InsnID int32

// NoInsn is the end-of-list marker.
const NoInsn InsnID = -1

type insnNode struct {
	insn       *Insn
	prev, next InsnID
	live       bool
}

/*
InsnList is an ordered instruction sequence backed by an arena. Links are
indices, so spill code can be spliced in anywhere in O(1) without back
pointers into the instructions. Removed nodes are recycled by later inserts.
The list owns its instructions.
*/
type InsnList struct {
	nodes []insnNode
	head  InsnID
	tail  InsnID
	free  []InsnID
	count int
}

func NewInsnList() *InsnList {
	return &InsnList{head: NoInsn, tail: NoInsn}
}

func (l *InsnList) alloc(insn *Insn) InsnID {
	if insn == nil {
		panic("lir: nil instruction")
	}
	var id InsnID
	if n := len(l.free); n > 0 {
		id = l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[id] = insnNode{insn: insn, prev: NoInsn, next: NoInsn, live: true}
	} else {
		id = InsnID(len(l.nodes))
		l.nodes = append(l.nodes, insnNode{insn: insn, prev: NoInsn, next: NoInsn, live: true})
	}
	l.count++
	return id
}

func (l *InsnList) node(id InsnID) *insnNode {
	if id < 0 || int(id) >= len(l.nodes) || !l.nodes[id].live {
		panic("lir: invalid instruction id")
	}
	return &l.nodes[id]
}

func (l *InsnList) Len() int {
	return l.count
}

func (l *InsnList) Get(id InsnID) *Insn {
	return l.node(id).insn
}

func (l *InsnList) First() InsnID {
	return l.head
}

func (l *InsnList) Last() InsnID {
	return l.tail
}

func (l *InsnList) Next(id InsnID) InsnID {
	return l.node(id).next
}

func (l *InsnList) Prev(id InsnID) InsnID {
	return l.node(id).prev
}

// Append adds insn at the end of the list.
func (l *InsnList) Append(insn *Insn) InsnID {
	if l.tail == NoInsn {
		id := l.alloc(insn)
		l.head, l.tail = id, id
		return id
	}
	return l.InsertAfter(l.tail, insn)
}

func (l *InsnList) Prepend(insn *Insn) InsnID {
	if l.head == NoInsn {
		return l.Append(insn)
	}
	return l.InsertBefore(l.head, insn)
}

func (l *InsnList) InsertAfter(at InsnID, insn *Insn) InsnID {
	l.node(at)
	id := l.alloc(insn)
	n := &l.nodes[id]
	a := &l.nodes[at]
	n.prev = at
	n.next = a.next
	if a.next != NoInsn {
		l.nodes[a.next].prev = id
	} else {
		l.tail = id
	}
	a.next = id
	return id
}

func (l *InsnList) InsertBefore(at InsnID, insn *Insn) InsnID {
	l.node(at)
	id := l.alloc(insn)
	n := &l.nodes[id]
	a := &l.nodes[at]
	n.next = at
	n.prev = a.prev
	if a.prev != NoInsn {
		l.nodes[a.prev].next = id
	} else {
		l.head = id
	}
	a.prev = id
	return id
}

// Remove unlinks the instruction and returns it; the id becomes invalid.
func (l *InsnList) Remove(id InsnID) *Insn {
	n := l.node(id)
	if n.prev != NoInsn {
		l.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != NoInsn {
		l.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	insn := n.insn
	*n = insnNode{prev: NoInsn, next: NoInsn}
	l.free = append(l.free, id)
	l.count--
	return insn
}

// Each visits the instructions in order until fn returns false.
func (l *InsnList) Each(fn func(InsnID, *Insn) bool) {
	for id := l.head; id != NoInsn; {
		n := &l.nodes[id]
		next := n.next
		if !fn(id, n.insn) {
			return
		}
		id = next
	}
}

func (l *InsnList) EachReverse(fn func(InsnID, *Insn) bool) {
	for id := l.tail; id != NoInsn; {
		n := &l.nodes[id]
		prev := n.prev
		if !fn(id, n.insn) {
			return
		}
		id = prev
	}
}

// Insns returns the instructions in order (a snapshot).
func (l *InsnList) Insns() []*Insn {
	result := make([]*Insn, 0, l.count)
	l.Each(func(_ InsnID, insn *Insn) bool {
		result = append(result, insn)
		return true
	})
	return result
}
