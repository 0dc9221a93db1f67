// internal/layout/fields.go
package layout

import "fmt"

// Field identifies one logical value inside the image.
type Field int

const (
	FieldChecksum Field = iota
	FieldSignature
	FieldVersion
	FieldSize
	FieldHostBaud
	FieldCharDelay
	FieldLineDelay
	FieldXonXoff
	FieldSerialEnabled
	FieldExtendedKeys
	FieldBoardType
	FieldATBitDelay
	FieldATNextByteDelay
	FieldATStartBitDelay
	FieldXTBitDelay
	FieldXTNextByteDelay
	FieldXTStartBitDelay

	fieldCount
)

type fieldSpec struct {
	name   string
	offset int
	width  int
}

var fieldSpecs = [fieldCount]fieldSpec{
	FieldChecksum:        {"checksum", OffsetChecksum, 4},
	FieldSignature:       {"signature", OffsetSignature, 2},
	FieldVersion:         {"version", OffsetVersion, 2},
	FieldSize:            {"size", OffsetSize, 2},
	FieldHostBaud:        {"host_baud", OffsetHostBaud, 4},
	FieldCharDelay:       {"char_delay", OffsetCharDelay, 2},
	FieldLineDelay:       {"line_delay", OffsetLineDelay, 2},
	FieldXonXoff:         {"xon_xoff", OffsetXonXoff, 1},
	FieldSerialEnabled:   {"serial_enabled", OffsetSerialEnabled, 1},
	FieldExtendedKeys:    {"extended_keys", OffsetExtendedKeys, 1},
	FieldBoardType:       {"board_type", OffsetBoardType, 2},
	FieldATBitDelay:      {"at_bit_delay", OffsetATBitDelay, 1},
	FieldATNextByteDelay: {"at_next_byte_delay", OffsetATNextByteDelay, 1},
	FieldATStartBitDelay: {"at_start_bit_delay", OffsetATStartBitDelay, 1},
	FieldXTBitDelay:      {"xt_bit_delay", OffsetXTBitDelay, 1},
	FieldXTNextByteDelay: {"xt_next_byte_delay", OffsetXTNextByteDelay, 1},
	FieldXTStartBitDelay: {"xt_start_bit_delay", OffsetXTStartBitDelay, 1},
}

// Fields returns every field in address order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool { return f >= 0 && f < fieldCount }

func (f Field) Name() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldSpecs[f].name
}

func (f Field) String() string { return f.Name() }

// Offset is the first byte of the field. Invalid fields report 0.
func (f Field) Offset() int {
	if !f.Valid() {
		return 0
	}
	return fieldSpecs[f].offset
}

// Width is the field length in bytes. Invalid fields report 0.
func (f Field) Width() int {
	if !f.Valid() {
		return 0
	}
	return fieldSpecs[f].width
}

// Max is the largest value the field can hold.
func (f Field) Max() uint32 {
	if f.Width() >= 4 {
		return 0xFFFFFFFF
	}
	return 1<<(8*uint(f.Width())) - 1
}

// Lookup resolves a field by its name.
func Lookup(name string) (Field, bool) {
	for f := Field(0); f < fieldCount; f++ {
		if fieldSpecs[f].name == name {
			return f, true
		}
	}
	return 0, false
}
