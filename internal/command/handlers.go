// internal/command/handlers.go
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/params"
	"github.com/tamzrod/kbconv/internal/store"
)

var helpLines = []string{
	"help_header",
	"help_keyboard",
	"help_kbt", "help_k101",
	"help_kabd", "help_kand", "help_kasd",
	"help_kxbd", "help_kxnd", "help_kxsd",
	"help_serial",
	"help_sbr", "help_scd", "help_sld", "help_sfc", "help_sen",
	"help_debug",
	"help_reset", "help_ccrc", "help_scrc", "help_ep", "help_er", "help_ew",
}

func (it *Interpreter) help(_ []string) Response {
	lines := make([]string, 0, len(helpLines))
	for _, id := range helpLines {
		lines = append(lines, it.msg(id, nil))
	}
	return it.ok(lines...)
}

func (it *Interpreter) summary(_ []string) Response {
	return it.ok(
		it.msg("summary_keyboard", nil),
		it.msg("summary_serial", nil),
		it.msg("summary_debug", nil),
		it.msg("summary_more", nil),
	)
}

// ---- keyboard ----

func (it *Interpreter) boardType(args []string) Response {
	if len(args) == 0 {
		return it.ok(it.value("board_type", it.p.BoardType()))
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return it.fail(it.msg("board_invalid", nil))
	}
	if err := it.p.SetBoardType(v); err != nil {
		if params.IsValidationError(err) {
			return it.fail(it.msg("board_invalid", nil))
		}
		return it.storeFailed(err)
	}
	return it.ok()
}

func timing(proto params.Protocol, kind params.Timing, id string) handler {
	return func(it *Interpreter, args []string) Response {
		if len(args) == 0 {
			v, err := it.p.Timing(proto, kind)
			if err != nil {
				return it.fail(err.Error())
			}
			return it.ok(it.value(id, v))
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return it.fail(it.value("is_invalid", args[0]))
		}
		if err := it.p.SetTiming(proto, kind, v); err != nil {
			if params.IsValidationError(err) {
				return it.fail(it.msg("timing_invalid", nil))
			}
			return it.storeFailed(err)
		}
		return it.ok()
	}
}

// ---- serial ----

func (it *Interpreter) baudRate(args []string) Response {
	if len(args) == 0 {
		return it.ok(it.value("baud_rate", it.p.BaudRate()))
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return it.fail(it.msg("baud_invalid", nil))
	}
	if err := it.p.SetBaudRate(v); err != nil {
		if params.IsValidationError(err) {
			return it.fail(it.msg("baud_invalid", nil))
		}
		return it.storeFailed(err)
	}
	return it.ok()
}

// delay handles scd and sld. Zero is refused here even though the
// facade accepts it.
func delay(get func(*params.Params) uint16, set func(*params.Params, int) error, id string) handler {
	return func(it *Interpreter, args []string) Response {
		if len(args) == 0 {
			return it.ok(it.value(id, get(it.p)))
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return it.fail(it.value("is_invalid", args[0]))
		}
		if v == 0 {
			return it.fail(it.msg(id+"_small", nil))
		}
		if err := set(it.p, v); err != nil {
			if params.IsValidationError(err) {
				return it.fail(it.msg("delay_invalid", nil))
			}
			return it.storeFailed(err)
		}
		return it.ok()
	}
}

// toggle handles on/off parameters. prefix names the
// <prefix>_enabled and <prefix>_disabled messages.
func toggle(get func(*params.Params) bool, set func(*params.Params, bool) error, prefix string) handler {
	return func(it *Interpreter, args []string) Response {
		if len(args) == 0 {
			if get(it.p) {
				return it.ok(it.msg(prefix+"_enabled", nil))
			}
			return it.ok(it.msg(prefix+"_disabled", nil))
		}
		on, err := it.parseSwitch(args[0])
		if err != nil {
			return it.fail(
				it.value("is_invalid", args[0]),
				it.msg("on_or_off", nil),
			)
		}
		if err := set(it.p, on); err != nil {
			return it.storeFailed(err)
		}
		return it.ok()
	}
}

// parseSwitch maps the catalog's on/off words onto the facade literals.
func (it *Interpreter) parseSwitch(s string) (bool, error) {
	switch s {
	case it.msg("switch_on", nil):
		s = params.On
	case it.msg("switch_off", nil):
		s = params.Off
	default:
		return false, &params.ValidationError{Param: "switch", Value: s, Reason: "not an on/off word"}
	}
	return params.ParseSwitch(s)
}

// ---- debug ----

func (it *Interpreter) reset(_ []string) Response {
	outcome, err := it.s.ValidateOrReset()
	if err != nil {
		return it.storeFailed(err)
	}
	switch outcome {
	case store.OutcomeReset:
		return it.ok(it.msg("reset_defaults", nil))
	case store.OutcomeMigrated:
		return it.ok(it.msg("reset_migrated", map[string]any{"Version": layout.SchemaVersion}))
	default:
		return it.ok(it.msg("reset_valid", nil))
	}
}

func (it *Interpreter) calcCRC(_ []string) Response {
	return it.ok(it.value("calc_crc", hex32(it.s.Checksum())))
}

func (it *Interpreter) savedCRC(_ []string) Response {
	return it.ok(it.value("saved_crc", hex32(it.s.SavedChecksum())))
}

// printAll renders the raw image, 16 bytes per row.
func (it *Interpreter) printAll(_ []string) Response {
	img := it.s.Dump()
	var lines []string
	for off := 0; off < len(img); off += 16 {
		end := min(off+16, len(img))
		var b strings.Builder
		fmt.Fprintf(&b, "%02X:", off)
		for _, v := range img[off:end] {
			fmt.Fprintf(&b, " %02X", v)
		}
		lines = append(lines, b.String())
	}
	return it.ok(lines...)
}

func (it *Interpreter) read(args []string) Response {
	if len(args) == 0 {
		return it.fail(it.msg("eeprom_no_address", nil))
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return it.fail(it.msg("eeprom_bad_address", map[string]any{"Address": args[0]}))
	}
	v, err := it.s.Peek(addr)
	if err != nil {
		return it.fail(it.msg("eeprom_bad_address", map[string]any{"Address": args[0]}))
	}
	return it.ok(it.msg("eeprom_read", map[string]any{
		"Address": addr,
		"Value":   strconv.FormatUint(uint64(v), 16),
	}))
}

func (it *Interpreter) write(args []string) Response {
	if len(args) == 0 {
		return it.fail(it.msg("eeprom_no_address", nil))
	}
	if len(args) == 1 {
		return it.fail(it.msg("eeprom_no_value", nil))
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return it.fail(it.msg("eeprom_bad_address", map[string]any{"Address": args[0]}))
	}
	v, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return it.fail(it.value("eeprom_bad_value", args[1]))
	}

	if err := it.s.Poke(addr, byte(v)); err != nil {
		var ae *store.AddressError
		if errors.As(err, &ae) {
			return it.fail(it.msg("eeprom_bad_address", map[string]any{"Address": args[0]}))
		}
		return it.storeFailed(err)
	}
	return it.ok(it.msg("eeprom_write", map[string]any{"Address": addr, "Value": v}))
}

func hex32(v uint32) string {
	return strconv.FormatUint(uint64(v), 16)
}
