// Package checksum provides calculators for the pluggable checksum
// slot of an embxx.ChecksumLayer.
//
// Each calculator implements the embxx.Checksum interface. The layer
// masks the computed value down to its configured field width, so a
// calculator may return more significant bits than the wire carries.
package checksum

import (
	"hash/crc32"

	"github.com/zeebo/xxh3"
)

// ByteSum is the classic embedded checksum: the modular sum of all
// bytes in the span. The value is the field width in bytes, which
// bounds the sum; a ByteSum(2) truncates the sum to 16 bits.
type ByteSum int

// Sum implements embxx.Checksum.
func (b ByteSum) Sum(p []byte) uint64 {
	var s uint64
	for _, c := range p {
		s += uint64(c)
	}
	if b >= 8 || b <= 0 {
		return s
	}
	return s & (1<<(8*b) - 1)
}

// CRC32 computes the IEEE CRC-32 of the span.
type CRC32 struct{}

// Sum implements embxx.Checksum.
func (CRC32) Sum(p []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(p))
}

// XXH3 computes the 64-bit XXH3 hash of the span. It is not an
// error-detecting code in the CRC sense, but on trusted links it is a
// cheap integrity check with excellent dispersion.
type XXH3 struct{}

// Sum implements embxx.Checksum.
func (XXH3) Sum(p []byte) uint64 {
	return xxh3.Hash(p)
}
