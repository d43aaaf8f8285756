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

// Size is the number of itable slots. Tables never grow: methods whose
// hashes collide share a slot and are told apart by a Resolver.
const Size = 256

// HashString is Jenkins' one-at-a-time hash over the bytes of s. Bytes are
// added unsigned, so non-ASCII UTF-8 names differ from a signed char hash.
func HashString(s string) uint32 {
	var hash uint32
	for i := 0; i < len(s); i++ {
		hash += uint32(s[i])
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

// fold8 compresses a 32 bit hash into 8 bits; the table has at most 256 slots
func fold8(x uint32) uint32 {
	return (x>>24 ^ x>>16 ^ x>>8 ^ x) & 0xff
}

func HashCombine(a, b uint32) uint32 {
	return fold8(a) ^ fold8(b)
}

// SlotIndex is the slot a method with the given name and descriptor lives
// in. Call sites index the table with the same function.
func SlotIndex(name, desc string) int {
	return int(HashCombine(HashString(name), HashString(desc)) % Size)
}

func MethodSlot(m *Method) int {
	return SlotIndex(m.Name, m.Type)
}
