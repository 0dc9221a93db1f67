// internal/layout/constants.go
package layout

import "math"

// Configuration image layout constants.
// These values define the on-disk contract and MUST NOT be configurable.
// Multi-byte fields are little-endian.

// ---- HEADER ----

// OffsetChecksum holds the 32-bit integrity checksum.
const OffsetChecksum = 0

// OffsetSignature holds the two signature bytes.
const OffsetSignature = 4

// OffsetVersion holds the schema version tag.
const OffsetVersion = 6

// OffsetSize holds the number of bytes after the checksum.
const OffsetSize = 8

// ---- SERIAL ----

const OffsetHostBaud = 10
const OffsetCharDelay = 14
const OffsetLineDelay = 16
const OffsetXonXoff = 18
const OffsetSerialEnabled = 19

// ---- KEYBOARD ----

const OffsetExtendedKeys = 20
const OffsetBoardType = 21

const OffsetATBitDelay = 23
const OffsetATNextByteDelay = 24
const OffsetATStartBitDelay = 25

const OffsetXTBitDelay = 26
const OffsetXTNextByteDelay = 27
const OffsetXTStartBitDelay = 28

// ---- GEOMETRY ----

// Size is the total image length (end address, exclusive).
const Size = 29

// ChecksumStart is the first byte covered by the checksum.
// The signature is covered; only the checksum field itself is excluded.
const ChecksumStart = OffsetSignature

// PayloadSize is the value stored in the size field.
const PayloadSize = Size - 4

// ---- SIGNATURE / VERSION ----

const SignatureLo byte = 0x55
const SignatureHi byte = 0xAA

// SchemaVersion is the version tag written by Defaults.
const SchemaVersion uint16 = 2

// ---- SCHEMA V1 (firmware 00.00.01) ----

// SchemaV1 images end after the xon/xoff flag.
const SchemaV1 uint16 = 1

// SizeV1 is the end address of a v1 image.
const SizeV1 = 19

// ---- DEFAULTS ----

const DefaultHostBaud uint32 = 115200
const DefaultCharDelay uint16 = 0
const DefaultLineDelay uint16 = 0
const DefaultXonXoff byte = 0
const DefaultSerialEnabled byte = 1
const DefaultExtendedKeys byte = 0
const DefaultBoardType = BoardStandard

// Timing defaults are in microseconds.
const DefaultATBitDelay byte = 40
const DefaultATNextByteDelay byte = 200
const DefaultATStartBitDelay byte = 50
const DefaultXTBitDelay byte = 95
const DefaultXTNextByteDelay byte = 200
const DefaultXTStartBitDelay byte = 120

// ---- ALLOW-LISTS ----

// BaudRates are the host baud rates the converter can run at.
var BaudRates = []uint32{115200, 57600, 38400, 19200, 9600, 4800, 2400, 1200, 600, 300}

// AllowedBaud reports whether v is in BaudRates.
func AllowedBaud(v uint32) bool {
	for _, b := range BaudRates {
		if b == v {
			return true
		}
	}
	return false
}

// AllowedBaudInt is AllowedBaud for values that may not fit a uint32.
func AllowedBaudInt(v int) bool {
	if v < 0 || int64(v) > math.MaxUint32 {
		return false
	}
	return AllowedBaud(uint32(v))
}

// BoardType values. 0 and values above BoardVariant are invalid.
const (
	BoardStandard    uint16 = 1
	BoardDevelopment uint16 = 2
	BoardVariant     uint16 = 3
)
