// internal/layout/image.go
package layout

import (
	"encoding/binary"

	"github.com/tamzrod/kbconv/internal/integrity"
)

// Image is the raw configuration image in address order.
type Image [Size]byte

// Get decodes a field value. Layout is protocol-locked.
// Invalid fields decode as 0.
func (img *Image) Get(f Field) uint32 {
	if !f.Valid() {
		return 0
	}
	b := img[f.Offset() : f.Offset()+f.Width()]
	switch f.Width() {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

// Put encodes v into the field, truncating to the field width.
// Invalid fields are ignored.
func (img *Image) Put(f Field, v uint32) {
	if !f.Valid() {
		return
	}
	b := img[f.Offset() : f.Offset()+f.Width()]
	switch f.Width() {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}

// HasSignature reports whether the signature bytes are present.
func (img *Image) HasSignature() bool {
	return img[OffsetSignature] == SignatureLo && img[OffsetSignature+1] == SignatureHi
}

// Checksum computes the checksum over the covered range.
func (img *Image) Checksum() uint32 {
	return integrity.Checksum(img[ChecksumStart:Size])
}

// SavedChecksum is the checksum currently stored in the image.
func (img *Image) SavedChecksum() uint32 {
	return img.Get(FieldChecksum)
}

// Seal recomputes and stores the checksum.
func (img *Image) Seal() {
	img.Put(FieldChecksum, img.Checksum())
}

// Valid reports whether the signature is present and the checksum matches.
func (img *Image) Valid() bool {
	return img.HasSignature() && img.SavedChecksum() == img.Checksum()
}

// Defaults builds a sealed image holding the compiled-in defaults.
// No IO. No side effects.
func Defaults() Image {
	var img Image

	img[OffsetSignature] = SignatureLo
	img[OffsetSignature+1] = SignatureHi
	img.Put(FieldVersion, uint32(SchemaVersion))
	img.Put(FieldSize, PayloadSize)

	img.Put(FieldHostBaud, DefaultHostBaud)
	img.Put(FieldCharDelay, uint32(DefaultCharDelay))
	img.Put(FieldLineDelay, uint32(DefaultLineDelay))
	img.Put(FieldXonXoff, uint32(DefaultXonXoff))
	img.Put(FieldSerialEnabled, uint32(DefaultSerialEnabled))

	img.Put(FieldExtendedKeys, uint32(DefaultExtendedKeys))
	img.Put(FieldBoardType, uint32(DefaultBoardType))

	img.Put(FieldATBitDelay, uint32(DefaultATBitDelay))
	img.Put(FieldATNextByteDelay, uint32(DefaultATNextByteDelay))
	img.Put(FieldATStartBitDelay, uint32(DefaultATStartBitDelay))
	img.Put(FieldXTBitDelay, uint32(DefaultXTBitDelay))
	img.Put(FieldXTNextByteDelay, uint32(DefaultXTNextByteDelay))
	img.Put(FieldXTStartBitDelay, uint32(DefaultXTStartBitDelay))

	img.Seal()
	return img
}

// ValidV1 reports whether img holds an intact schema v1 image.
// v1 images cover [ChecksumStart, SizeV1) and carry version 1.
func (img *Image) ValidV1() bool {
	if !img.HasSignature() || img.Get(FieldVersion) != uint32(SchemaV1) {
		return false
	}
	return img.SavedChecksum() == img.v1Checksum()
}

func (img *Image) v1Checksum() uint32 {
	return integrity.Checksum(img[ChecksumStart:SizeV1])
}
