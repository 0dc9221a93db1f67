// internal/store/errors.go
package store

import (
	"errors"
	"fmt"

	"github.com/tamzrod/kbconv/internal/layout"
)

// ErrReadOnlyField is returned when a caller tries to set the checksum directly.
var ErrReadOnlyField = errors.New("store: field is maintained by the store")

// AddressError indicates a raw access outside the image.
type AddressError struct {
	Address int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("store: address %d out of range 0-%d", e.Address, layout.Size-1)
}

// RangeError indicates a value wider than its field.
type RangeError struct {
	Field layout.Field
	Value uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("store: value %d does not fit %s (max %d)", e.Value, e.Field, e.Field.Max())
}

// MediumError wraps a failure of the underlying storage medium.
// The operation that produced it was not applied.
type MediumError struct {
	Op  string
	Err error
}

func (e *MediumError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *MediumError) Unwrap() error { return e.Err }
