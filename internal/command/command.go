// internal/command/command.go
//
// Package command implements the programming-mode command set.
// A line is parsed into a command word and arguments; no argument means query.
package command

import (
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/tamzrod/kbconv/internal/i18n"
	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/logging"
	"github.com/tamzrod/kbconv/internal/params"
	"github.com/tamzrod/kbconv/internal/store"
)

// Store is what the interpreter needs from the configuration store.
type Store interface {
	params.Store

	ValidateOrReset() (store.Outcome, error)
	Checksum() uint32
	SavedChecksum() uint32
	Dump() []byte
	Peek(addr int) (byte, error)
	Poke(addr int, v byte) error
}

// Response is the result of one command line.
type Response struct {
	OK    bool
	Lines []string

	// BaudChanged is set when the stored host baud differs after the command.
	BaudChanged bool
}

type handler func(it *Interpreter, args []string) Response

// Interpreter executes command lines against a store.
type Interpreter struct {
	s   Store
	p   *params.Params
	cat *i18n.Catalog
	log *clog.Logger

	handlers map[string]handler
}

// Option configures an Interpreter.
type Option func(*Interpreter)

func WithLogger(l *clog.Logger) Option {
	return func(it *Interpreter) {
		if l != nil {
			it.log = l
		}
	}
}

// New builds an interpreter. A nil catalog selects English.
func New(s Store, cat *i18n.Catalog, opts ...Option) *Interpreter {
	if cat == nil {
		cat = i18n.New("en")
	}
	it := &Interpreter{
		s:   s,
		p:   params.New(s),
		cat: cat,
		log: logging.L,
	}
	for _, opt := range opts {
		opt(it)
	}

	it.handlers = map[string]handler{
		"?":     (*Interpreter).summary,
		"help":  (*Interpreter).help,
		"kbt":   (*Interpreter).boardType,
		"k101":  toggle((*params.Params).ExtendedKeys, (*params.Params).SetExtendedKeys, "ext"),
		"kabd":  timing(params.AT, params.BitDelay, "at_bit_delay"),
		"kand":  timing(params.AT, params.NextByteDelay, "at_next_byte_delay"),
		"kasd":  timing(params.AT, params.StartBitDelay, "at_start_bit_delay"),
		"kxbd":  timing(params.XT, params.BitDelay, "xt_bit_delay"),
		"kxnd":  timing(params.XT, params.NextByteDelay, "xt_next_byte_delay"),
		"kxsd":  timing(params.XT, params.StartBitDelay, "xt_start_bit_delay"),
		"sbr":   (*Interpreter).baudRate,
		"scd":   delay((*params.Params).CharDelay, (*params.Params).SetCharDelay, "char_delay"),
		"sld":   delay((*params.Params).LineDelay, (*params.Params).SetLineDelay, "line_delay"),
		"sfc":   toggle((*params.Params).XonXoff, (*params.Params).SetXonXoff, "xon"),
		"sen":   toggle((*params.Params).SerialEnabled, (*params.Params).SetSerialEnabled, "serial"),
		"reset": (*Interpreter).reset,
		"ccrc":  (*Interpreter).calcCRC,
		"scrc":  (*Interpreter).savedCRC,
		"ep":    (*Interpreter).printAll,
		"er":    (*Interpreter).read,
		"ew":    (*Interpreter).write,
	}
	if word := cat.T("help_word", nil); word != "help" {
		it.handlers[word] = (*Interpreter).help
	}
	return it
}

// Params exposes the facade the interpreter mutates.
func (it *Interpreter) Params() *params.Params {
	return it.p
}

// Catalog returns the message catalog in use.
func (it *Interpreter) Catalog() *i18n.Catalog {
	return it.cat
}

// Exec runs one command line. An empty line is a successful no-op.
func (it *Interpreter) Exec(line string) Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{OK: true}
	}

	name, args := fields[0], fields[1:]
	h, ok := it.handlers[name]
	if !ok {
		return it.fail(
			it.cat.T("not_found", map[string]any{"Command": name}),
			it.cat.T("help_hint", nil),
		)
	}

	before := it.s.Field(layout.FieldHostBaud)
	resp := h(it, args)
	resp.BaudChanged = it.s.Field(layout.FieldHostBaud) != before

	it.log.Debug("command", "name", name, "args", len(args), "ok", resp.OK)
	return resp
}

// ---- response helpers ----

func (it *Interpreter) ok(lines ...string) Response {
	return Response{OK: true, Lines: lines}
}

func (it *Interpreter) fail(lines ...string) Response {
	return Response{OK: false, Lines: lines}
}

func (it *Interpreter) msg(id string, data map[string]any) string {
	return it.cat.T(id, data)
}

func (it *Interpreter) value(id string, v any) string {
	return it.cat.T(id, map[string]any{"Value": v})
}

// storeFailed reports a write the medium refused.
func (it *Interpreter) storeFailed(err error) Response {
	it.log.Warn("configuration write failed", "err", err)
	return it.fail(it.msg("write_failed", nil))
}
