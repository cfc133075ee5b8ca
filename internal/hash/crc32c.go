package hash

import (
	"hash/crc32"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
// Computing this once avoids repeated MakeTable calls.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
// Uses hardware acceleration when available (SSE4.2, ARM CRC).
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// Words hashes a sequence of 64-bit words, e.g. the backing array of a
// bitset. Trailing zero words are ignored, so two sets that differ only in
// allocated capacity hash equally.
func Words(words []uint64) uint64 {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	var buf [8]byte
	h := crc32.New(crc32cTable)
	for _, w := range words[:n] {
		for i := range buf {
			buf[i] = byte(w >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	return Mix64(uint64(h.Sum32()) | uint64(n)<<32)
}

// Mix64 scrambles x with the SplitMix64 finalizer so that low bits, which
// drive "hash mod k" bucket assignment, depend on every input bit.
func Mix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
