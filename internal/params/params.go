// internal/params/params.go
package params

import (
	"fmt"
	"strconv"

	"github.com/tamzrod/kbconv/internal/layout"
)

// Store is the subset of the configuration store the facade needs.
type Store interface {
	Field(f layout.Field) uint32
	SetField(f layout.Field, v uint32) error
}

// Protocol selects a keyboard wire protocol for timing parameters.
type Protocol int

const (
	AT Protocol = iota
	XT
)

func (p Protocol) String() string {
	if p == XT {
		return "XT"
	}
	return "AT"
}

// Timing selects one of the per-protocol bit timings.
type Timing int

const (
	BitDelay Timing = iota
	NextByteDelay
	StartBitDelay
)

var timingFields = [2][3]layout.Field{
	AT: {layout.FieldATBitDelay, layout.FieldATNextByteDelay, layout.FieldATStartBitDelay},
	XT: {layout.FieldXTBitDelay, layout.FieldXTNextByteDelay, layout.FieldXTStartBitDelay},
}

// Switch literals accepted by ParseSwitch.
const (
	On  = "on"
	Off = "off"
)

// Params exposes typed, validated access to the configuration store.
type Params struct {
	s Store
}

func New(s Store) *Params {
	return &Params{s: s}
}

// ---- keyboard ----

// BoardType returns the converter board type.
func (p *Params) BoardType() uint16 {
	return uint16(p.s.Field(layout.FieldBoardType))
}

// SetBoardType accepts Standard, Development and Variant only.
func (p *Params) SetBoardType(v int) error {
	if v < int(layout.BoardStandard) || v > int(layout.BoardVariant) {
		return &ValidationError{
			Param:  "board_type",
			Value:  strconv.Itoa(v),
			Reason: fmt.Sprintf("must be %d-%d", layout.BoardStandard, layout.BoardVariant),
		}
	}
	return p.s.SetField(layout.FieldBoardType, uint32(v))
}

// ExtendedKeys reports whether 101-key navigation codes are translated.
func (p *Params) ExtendedKeys() bool {
	return p.s.Field(layout.FieldExtendedKeys) != 0
}

func (p *Params) SetExtendedKeys(on bool) error {
	return p.setFlag(layout.FieldExtendedKeys, on)
}

// Timing returns a protocol timing in microseconds.
func (p *Params) Timing(proto Protocol, t Timing) (uint8, error) {
	f, err := timingField(proto, t)
	if err != nil {
		return 0, err
	}
	return uint8(p.s.Field(f)), nil
}

// SetTiming accepts 0-255 microseconds.
func (p *Params) SetTiming(proto Protocol, t Timing, v int) error {
	f, err := timingField(proto, t)
	if err != nil {
		return err
	}
	if v < 0 || v > 0xFF {
		return &ValidationError{Param: f.Name(), Value: strconv.Itoa(v), Reason: "must be 0-255"}
	}
	return p.s.SetField(f, uint32(v))
}

func timingField(proto Protocol, t Timing) (layout.Field, error) {
	if proto < AT || proto > XT || t < BitDelay || t > StartBitDelay {
		return 0, fmt.Errorf("params: unknown timing %d/%d", proto, t)
	}
	return timingFields[proto][t], nil
}

// ---- serial ----

// BaudRate returns the host baud rate.
func (p *Params) BaudRate() uint32 {
	return p.s.Field(layout.FieldHostBaud)
}

// SetBaudRate accepts only the rates in layout.BaudRates.
// Setting the current rate is a successful no-op.
func (p *Params) SetBaudRate(v int) error {
	if !layout.AllowedBaudInt(v) {
		return &ValidationError{Param: "host_baud", Value: strconv.Itoa(v), Reason: "unsupported baud rate"}
	}
	if p.BaudRate() == uint32(v) {
		return nil
	}
	return p.s.SetField(layout.FieldHostBaud, uint32(v))
}

// CharDelay returns the inter-character delay in milliseconds.
func (p *Params) CharDelay() uint16 {
	return uint16(p.s.Field(layout.FieldCharDelay))
}

// SetCharDelay accepts 0-65535 ms. Zero disables the delay.
func (p *Params) SetCharDelay(v int) error {
	return p.setDelay(layout.FieldCharDelay, v)
}

// LineDelay returns the inter-line delay in milliseconds.
func (p *Params) LineDelay() uint16 {
	return uint16(p.s.Field(layout.FieldLineDelay))
}

// SetLineDelay accepts 0-65535 ms. Zero disables the delay.
func (p *Params) SetLineDelay(v int) error {
	return p.setDelay(layout.FieldLineDelay, v)
}

func (p *Params) setDelay(f layout.Field, v int) error {
	if v < 0 || v > 0xFFFF {
		return &ValidationError{Param: f.Name(), Value: strconv.Itoa(v), Reason: "must be 0-65535"}
	}
	if p.s.Field(f) == uint32(v) {
		return nil
	}
	return p.s.SetField(f, uint32(v))
}

// XonXoff reports whether software flow control is enabled.
func (p *Params) XonXoff() bool {
	return p.s.Field(layout.FieldXonXoff) != 0
}

func (p *Params) SetXonXoff(on bool) error {
	return p.setFlag(layout.FieldXonXoff, on)
}

// SerialEnabled reports whether output to the host port is enabled.
func (p *Params) SerialEnabled() bool {
	return p.s.Field(layout.FieldSerialEnabled) != 0
}

func (p *Params) SetSerialEnabled(on bool) error {
	return p.setFlag(layout.FieldSerialEnabled, on)
}

func (p *Params) setFlag(f layout.Field, on bool) error {
	var v uint32
	if on {
		v = 1
	}
	return p.s.SetField(f, v)
}

// ParseSwitch accepts exactly "on" or "off".
func ParseSwitch(s string) (bool, error) {
	switch s {
	case On:
		return true, nil
	case Off:
		return false, nil
	default:
		return false, &ValidationError{Param: "switch", Value: s, Reason: "use 'on' or 'off'"}
	}
}
