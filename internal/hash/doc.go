// Package hash provides deterministic content hashing for bucket assignment.
//
// Hash-bucket selection needs a hash that is a pure function of a
// candidate's content and stable across processes, so no per-process seeded
// hash (maphash, map iteration) is used here.
//
// # CRC32-Castagnoli (CRC32C)
//
// Byte content is digested with CRC32-Castagnoli, which Go's crc32 package
// accelerates in hardware where available:
//
//	checksum := hash.CRC32C(data)
//
// # Word sets
//
// Bitset-backed content (for example the used-set index of a set-cover
// model) is hashed with Words, which ignores trailing zero words and mixes
// the result with the SplitMix64 finalizer:
//
//	h := hash.Words(bits.Words())
package hash
