// Package murmur implements MurmurHash64A, used to turn actor, emotion and
// color names into fixed-width operands.
package murmur

import "encoding/binary"

const (
	m = 0xc6a4a7935bd1e995
	r = 47
)

// Sum64 hashes data, seeding with its length.
func Sum64(data []byte) uint64 {
	n := uint64(len(data))
	h := n ^ (n * m)

	off := len(data) &^ 7
	for i := 0; i < off; i += 8 {
		k := binary.LittleEndian.Uint64(data[i : i+8])
		k *= m
		k ^= k >> r
		k *= m
		h ^= k
		h *= m
	}

	tail := data[off:]
	switch len(tail) {
	case 7:
		h ^= uint64(tail[6]) << 48
		fallthrough
	case 6:
		h ^= uint64(tail[5]) << 40
		fallthrough
	case 5:
		h ^= uint64(tail[4]) << 32
		fallthrough
	case 4:
		h ^= uint64(tail[3]) << 24
		fallthrough
	case 3:
		h ^= uint64(tail[2]) << 16
		fallthrough
	case 2:
		h ^= uint64(tail[1]) << 8
		fallthrough
	case 1:
		h ^= uint64(tail[0])
		h *= m
	}

	h ^= h >> r
	h *= m
	h ^= h >> r
	return h
}

// String hashes the UTF-8 bytes of s.
func String(s string) uint64 {
	return Sum64([]byte(s))
}
