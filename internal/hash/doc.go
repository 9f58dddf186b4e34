// Package hash provides the checksum used by snapshots.
//
// CRC32-Castagnoli (CRC32C) is hardware accelerated on x86 (SSE4.2) and ARM
// (CRC extension) and detects all single-bit, double-bit and odd-bit errors
// plus burst errors up to 32 bits.
package hash
