// internal/integrity/crc.go
package integrity

import "hash/crc32"

// InitialValue is the running value before the first byte is folded in.
const InitialValue uint32 = 0xFFFFFFFF

// nibbleTable is the reflected CRC-32 (0xEDB88320) table for 4-bit steps.
var nibbleTable = [16]uint32{
	0x00000000, 0x1db71064, 0x3b6e20c8, 0x26d930ac,
	0x76dc4190, 0x6b6b51f4, 0x4db26158, 0x5005713c,
	0xedb88320, 0xf00f9344, 0xd6d6a3e8, 0xcb61b38c,
	0x9b64c2b0, 0x86d3d2d4, 0xa00ae278, 0xbdbdf21c,
}

// Checksum computes the configuration image checksum over data.
//
// The running value is complemented after every byte, not once at the end
// as canonical CRC-32 does. Images already persisted by the converter
// firmware carry this value, so the algorithm is locked.
// Pure function. No IO. No side effects.
func Checksum(data []byte) uint32 {
	crc := InitialValue
	for _, b := range data {
		crc = nibbleTable[(crc^uint32(b))&0x0f] ^ (crc >> 4)
		crc = nibbleTable[(crc^uint32(b>>4))&0x0f] ^ (crc >> 4)
		crc = ^crc
	}
	return crc
}

// Standard returns canonical CRC-32 (IEEE) of data.
// It only agrees with Checksum for single-byte input.
func Standard(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
