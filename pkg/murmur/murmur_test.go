package murmur

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"", 0x0},
		{"a", 0xa52be5b3f6674b2a},
		{"ab", 0xfb5af385ab84b3e3},
		{"bob", 0xb233546802a67c4e},
		{"alice", 0xdc278b86c5c6fbda},
		{"happy", 0x2ef13df03276adac},
		{"ff8800", 0x16a7c88648062e89},
		{"abcdefg", 0x8cd819f79c52b2f3},
		{"abcdefgh", 0x0a260ffea29f3ed5},
		{"narrator", 0xa16fe1f67593a919},
		{"abcdefghijklmnop", 0xe3d2905f6f2b78fe},
	}
	for _, tc := range tests {
		if got := String(tc.input); got != tc.want {
			t.Errorf("String(%q) = 0x%016x; want 0x%016x", tc.input, got, tc.want)
		}
	}
}

func TestSum64Deterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	first := Sum64(data)
	for i := 0; i < 10; i++ {
		if got := Sum64(data); got != first {
			t.Fatalf("Sum64 changed between calls: 0x%x vs 0x%x", got, first)
		}
	}
	if Sum64(data[:len(data)-1]) == first {
		t.Error("different inputs produced the same hash")
	}
}
