// internal/store/store.go
package store

import (
	"fmt"
	"sync"

	clog "github.com/charmbracelet/log"

	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/logging"
)

// Medium is the persistence contract the store needs.
// Implementations must write synchronously: WriteAt returning nil means durable.
type Medium interface {
	ReadImage(size int) ([]byte, error)
	WriteAt(off int, data []byte) error
}

// Outcome reports what ValidateOrReset did.
type Outcome int

const (
	OutcomeValid Outcome = iota
	OutcomeReset
	OutcomeMigrated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeReset:
		return "reset"
	case OutcomeMigrated:
		return "migrated"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Store owns the configuration image.
// Every mutation reaches the medium before the call returns; the in-memory
// copy always mirrors what was last persisted.
type Store struct {
	mu  sync.Mutex
	m   Medium
	img layout.Image
	log *clog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for reset and migration reports.
func WithLogger(l *clog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open loads the image from m. It does not validate; call ValidateOrReset.
func Open(m Medium, opts ...Option) (*Store, error) {
	s := &Store{m: m, log: logging.L}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the image from the medium.
// Bytes missing from a short read are treated as erased (0xFF).
func (s *Store) Reload() error {
	raw, err := s.m.ReadImage(layout.Size)
	if err != nil {
		return &MediumError{Op: "read image", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.img {
		if i < len(raw) {
			s.img[i] = raw[i]
		} else {
			s.img[i] = 0xFF
		}
	}
	return nil
}

// ValidateOrReset checks the signature and checksum. A missing signature or
// a checksum mismatch replaces the whole image with defaults. There is no
// partial repair. Intact schema v1 images are upgraded in place.
// On medium failure the outcome names the attempted repair and the
// in-memory image is left as read.
func (s *Store) ValidateOrReset() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.img.Valid() {
		return OutcomeValid, nil
	}

	if s.img.ValidV1() {
		next := migrateV1(s.img)
		if err := s.replace(next); err != nil {
			return OutcomeMigrated, err
		}
		s.log.Info("configuration image migrated",
			"from", layout.SchemaV1,
			"to", layout.SchemaVersion,
		)
		return OutcomeMigrated, nil
	}

	reason := "signature missing"
	if s.img.HasSignature() {
		reason = "checksum mismatch"
	}
	saved, calc := s.img.SavedChecksum(), s.img.Checksum()

	if err := s.replace(layout.Defaults()); err != nil {
		return OutcomeReset, err
	}
	s.log.Warn("configuration image invalid, defaults restored",
		"reason", reason,
		"saved", fmt.Sprintf("%08x", saved),
		"calculated", fmt.Sprintf("%08x", calc),
	)
	return OutcomeReset, nil
}

// replace persists a complete image. Caller holds mu.
func (s *Store) replace(next layout.Image) error {
	if err := s.m.WriteAt(0, next[:]); err != nil {
		return &MediumError{Op: "write image", Err: err}
	}
	s.img = next
	return nil
}

// Field reads a field as currently persisted.
func (s *Store) Field(f layout.Field) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.Get(f)
}

// SetField writes v then recomputes and persists the checksum.
// One checksum write per successful call. On a medium failure the previous
// bytes are restored and the image is left as it was.
func (s *Store) SetField(f layout.Field, v uint32) error {
	if !f.Valid() {
		return fmt.Errorf("store: unknown field %d", int(f))
	}
	if f == layout.FieldChecksum {
		return ErrReadOnlyField
	}
	if v > f.Max() {
		return &RangeError{Field: f, Value: v}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.img
	next := s.img
	next.Put(f, v)
	next.Seal()

	lo, hi := f.Offset(), f.Offset()+f.Width()
	if err := s.m.WriteAt(lo, next[lo:hi]); err != nil {
		return &MediumError{Op: "write " + f.Name(), Err: err}
	}

	sum := layout.FieldChecksum
	if err := s.m.WriteAt(sum.Offset(), next[sum.Offset():sum.Offset()+sum.Width()]); err != nil {
		// best effort: put the old field bytes back so medium and copy agree
		_ = s.m.WriteAt(lo, prev[lo:hi])
		return &MediumError{Op: "write checksum", Err: err}
	}

	s.img = next
	return nil
}

// Dump returns every image byte in address order. No validation.
func (s *Store) Dump() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, layout.Size)
	copy(out, s.img[:])
	return out
}

// Peek reads one raw byte.
func (s *Store) Peek(addr int) (byte, error) {
	if addr < 0 || addr >= layout.Size {
		return 0, &AddressError{Address: addr}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img[addr], nil
}

// Poke writes one raw byte without touching the checksum.
// A poke into the covered range invalidates the image until the next
// setter call or reset.
func (s *Store) Poke(addr int, v byte) error {
	if addr < 0 || addr >= layout.Size {
		return &AddressError{Address: addr}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.m.WriteAt(addr, []byte{v}); err != nil {
		return &MediumError{Op: fmt.Sprintf("write address %d", addr), Err: err}
	}
	s.img[addr] = v
	return nil
}

// Checksum computes the checksum of the current image.
func (s *Store) Checksum() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.Checksum()
}

// SavedChecksum returns the checksum stored in the image.
func (s *Store) SavedChecksum() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img.SavedChecksum()
}
