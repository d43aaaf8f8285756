package itable

import "testing"

func TestHashString(t *testing.T) {
	cases := map[string]uint32{
		"":          0,
		"a":         0xca2e9442,
		"run":       0x1109b569,
		"()V":       0xcc466c73,
		"compareTo": 0xb2f3161f,
	}
	for s, want := range cases {
		if got := HashString(s); got != want {
			t.Errorf("HashString(%q) = %#x, expected %#x", s, got, want)
		}
	}
	// UTF-8 bytes above 0x7f are added unsigned
	if got := HashString("é"); got != 0xae8600ef {
		t.Errorf("HashString(é) = %#x, expected 0xae8600ef", got)
	}
	if got := HashString("()LÜber;"); got != 0xdcc12cd0 {
		t.Errorf("HashString(()LÜber;) = %#x, expected 0xdcc12cd0", got)
	}
	if HashString("run") == HashString("Run") {
		t.Error("hash must be case sensitive")
	}
	if HashString("ab") == HashString("ba") {
		t.Error("hash must be order sensitive")
	}
}

func TestSlotIndex(t *testing.T) {
	cases := []struct {
		name, desc string
		slot       int
	}{
		{"run", "()V", 81},
		{"compareTo", "(Ljava/lang/Object;)I", 172},
		{"hashCode", "()I", 72},
		{"size", "()I", 177},
		{"close", "()V", 164},
		{"m7", "()V", 160},
		{"m25", "()V", 160},
	}
	for _, c := range cases {
		if got := SlotIndex(c.name, c.desc); got != c.slot {
			t.Errorf("SlotIndex(%s%s) = %d, expected %d", c.name, c.desc, got, c.slot)
		}
	}
	for a := uint32(0); a < 1<<20; a += 4099 {
		if HashCombine(a, a*31) >= Size {
			t.Fatalf("combined hash %d out of range", HashCombine(a, a*31))
		}
		if HashCombine(a, a*31) != HashCombine(a*31, a) {
			t.Fatal("combine must be symmetric")
		}
	}
}
