package command

import (
	"errors"
	"io"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"

	"github.com/tamzrod/kbconv/internal/i18n"
	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/medium"
	"github.com/tamzrod/kbconv/internal/store"
)

// flakyMedium fails every write once fail is set.
type flakyMedium struct {
	*medium.Memory
	fail bool
}

func (f *flakyMedium) WriteAt(off int, data []byte) error {
	if f.fail {
		return errors.New("write refused")
	}
	return f.Memory.WriteAt(off, data)
}

func newInterpreter(t *testing.T, lang string) (*Interpreter, *store.Store, *flakyMedium) {
	t.Helper()
	m := &flakyMedium{Memory: medium.NewMemory(layout.Size)}
	quiet := clog.New(io.Discard)
	s, err := store.Open(m, store.WithLogger(quiet))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.ValidateOrReset(); err != nil {
		t.Fatalf("ValidateOrReset: %v", err)
	}
	return New(s, i18n.New(lang), WithLogger(quiet)), s, m
}

func expectLines(t *testing.T, line string, resp Response, ok bool, want ...string) {
	t.Helper()
	if resp.OK != ok {
		t.Fatalf("%q: ok=%v want %v (lines=%q)", line, resp.OK, ok, resp.Lines)
	}
	if len(resp.Lines) != len(want) {
		t.Fatalf("%q: lines=%q want %q", line, resp.Lines, want)
	}
	for i := range want {
		if resp.Lines[i] != want[i] {
			t.Fatalf("%q: line %d=%q want %q", line, i, resp.Lines[i], want[i])
		}
	}
}

func TestExec_Queries(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")

	tests := []struct {
		line string
		want string
	}{
		{"kbt", "Board type = 1"},
		{"k101", "101 keys is disabled"},
		{"kabd", "AT Bit Delay = 40 uSec"},
		{"kand", "AT Next Byte Delay = 200 uSec"},
		{"kasd", "AT Start Bit Delay = 50 uSec"},
		{"kxbd", "XT Bit Delay = 95 uSec"},
		{"kxnd", "XT Next Byte Delay = 200 uSec"},
		{"kxsd", "XT Start Bit Delay = 120 uSec"},
		{"sbr", "Baud rate = 115200 bps"},
		{"scd", "Inter character delay = 0 mSec"},
		{"sld", "Inter line delay = 0 mSec"},
		{"sfc", "Xon/Xoff flow control is disabled"},
		{"sen", "Serial output is enabled"},
		{"ccrc", "Calculated CRC = 66fa7bea"},
		{"scrc", "Saved CRC = 66fa7bea"},
		{"er 4", "EEPROM Address 4 = 55"},
	}

	for _, tt := range tests {
		expectLines(t, tt.line, it.Exec(tt.line), true, tt.want)
	}
}

func TestExec_SetThenQuery(t *testing.T) {
	it, s, _ := newInterpreter(t, "en")

	steps := []struct {
		set   string
		query string
		want  string
	}{
		{"kbt 3", "kbt", "Board type = 3"},
		{"k101 on", "k101", "101 keys is enabled"},
		{"kxbd 0", "kxbd", "XT Bit Delay = 0 uSec"},
		{"kasd 255", "kasd", "AT Start Bit Delay = 255 uSec"},
		{"scd 5", "scd", "Inter character delay = 5 mSec"},
		{"sld 65535", "sld", "Inter line delay = 65535 mSec"},
		{"sfc on", "sfc", "Xon/Xoff flow control is enabled"},
		{"sen off", "sen", "Serial output is disabled"},
	}

	for _, st := range steps {
		expectLines(t, st.set, it.Exec(st.set), true)
		expectLines(t, st.query, it.Exec(st.query), true, st.want)
		if s.SavedChecksum() != s.Checksum() {
			t.Fatalf("%q left a stale checksum", st.set)
		}
	}
}

func TestExec_Rejections(t *testing.T) {
	it, s, _ := newInterpreter(t, "en")
	before := s.Dump()

	tests := []struct {
		line string
		want []string
	}{
		{"kbt 4", []string{"Invalid board type"}},
		{"kbt x", []string{"Invalid board type"}},
		{"k101 yes", []string{"yes is invalid", "Please use either 'on' or 'off'"}},
		{"sfc ON", []string{"ON is invalid", "Please use either 'on' or 'off'"}},
		{"kabd 256", []string{"Delay must be between 0 and 255 uSec"}},
		{"kand abc", []string{"abc is invalid"}},
		{"sbr 14400", []string{"Host baud rate not valid"}},
		{"sbr 4294976896", []string{"Host baud rate not valid"}},
		{"scd 0", []string{"Inter character delay too small"}},
		{"sld 0", []string{"Inter line delay too small"}},
		{"sld 70000", []string{"Delay must be between 1 and 65535 mSec"}},
		{"er", []string{"EEPROM address not specified"}},
		{"er 29", []string{"EEPROM address 29 out of range"}},
		{"ew", []string{"EEPROM address not specified"}},
		{"ew 5", []string{"EEPROM value not specified"}},
		{"ew 5 256", []string{"EEPROM value 256 out of range"}},
		{"ew -1 2", []string{"EEPROM address -1 out of range"}},
		{"bogus 1", []string{"command 'bogus' not found", "Type 'help' for a list of commands"}},
	}

	for _, tt := range tests {
		expectLines(t, tt.line, it.Exec(tt.line), false, tt.want...)
	}
	if string(s.Dump()) != string(before) {
		t.Fatalf("rejected commands mutated the image")
	}
}

func TestExec_EmptyLine(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")
	expectLines(t, "", it.Exec("   "), true)
}

func TestExec_BaudChanged(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")

	if resp := it.Exec("sbr 115200"); !resp.OK || resp.BaudChanged {
		t.Fatalf("same baud: %+v", resp)
	}
	if resp := it.Exec("sbr 9600"); !resp.OK || !resp.BaudChanged {
		t.Fatalf("new baud: %+v", resp)
	}
	if resp := it.Exec("sbr"); resp.BaudChanged {
		t.Fatalf("query reported a baud change")
	}
	if got := it.Params().BaudRate(); got != 9600 {
		t.Fatalf("BaudRate()=%d", got)
	}
}

func TestExec_RawWriteThenReset(t *testing.T) {
	it, s, _ := newInterpreter(t, "en")

	expectLines(t, "ew 21 2", it.Exec("ew 21 2"), true, "Writing to EEPROM Address 21 = 2")
	expectLines(t, "kbt", it.Exec("kbt"), true, "Board type = 2")
	if s.SavedChecksum() == s.Checksum() {
		t.Fatalf("raw write must not update the checksum")
	}

	resp := it.Exec("reset")
	expectLines(t, "reset", resp, true, "Configuration reset to defaults")
	expectLines(t, "kbt", it.Exec("kbt"), true, "Board type = 1")

	expectLines(t, "reset", it.Exec("reset"), true, "Configuration is valid")
}

func TestExec_ResetRestoresBaud(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")

	it.Exec("sbr 9600")
	it.Exec("ew 30 0") // out of range, no effect
	it.Exec("ew 6 9")  // corrupt the version

	resp := it.Exec("reset")
	if !resp.OK || !resp.BaudChanged {
		t.Fatalf("reset: %+v", resp)
	}
	if got := it.Params().BaudRate(); got != layout.DefaultHostBaud {
		t.Fatalf("BaudRate()=%d after reset", got)
	}
}

func TestExec_PrintAll(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")

	resp := it.Exec("ep")
	expectLines(t, "ep", resp, true,
		"00: EA 7B FA 66 55 AA 02 00 19 00 00 C2 01 00 00 00",
		"10: 00 00 00 01 00 01 00 28 C8 32 5F C8 78",
	)
}

func TestExec_Help(t *testing.T) {
	it, _, _ := newInterpreter(t, "en")

	resp := it.Exec("help")
	if !resp.OK || len(resp.Lines) != len(helpLines) {
		t.Fatalf("help: %+v", resp)
	}
	if resp.Lines[0] != "The following commands are available:" {
		t.Fatalf("help header: %q", resp.Lines[0])
	}

	resp = it.Exec("?")
	if !resp.OK || len(resp.Lines) != 4 || !strings.HasPrefix(resp.Lines[0], "Keyboard:") {
		t.Fatalf("?: %+v", resp)
	}
}

func TestExec_German(t *testing.T) {
	it, _, _ := newInterpreter(t, "de")

	resp := it.Exec("hilfe")
	if !resp.OK || resp.Lines[0] != "Die folgenden Befehle sind verfügbar:" {
		t.Fatalf("hilfe: %+v", resp)
	}
	if resp := it.Exec("help"); !resp.OK {
		t.Fatalf("help must stay available: %+v", resp)
	}

	expectLines(t, "k101 ein", it.Exec("k101 ein"), true)
	expectLines(t, "k101", it.Exec("k101"), true, "101 tasten sind aktiviert")
	expectLines(t, "sfc on", it.Exec("sfc on"), false,
		"on ist ungültig",
		"Bitte verwenden Sie entweder 'ein' oder 'aus'",
	)
	expectLines(t, "scd 0", it.Exec("scd 0"), false, "Zeichenverzögerung zu klein")
}

func TestExec_MediumFailure(t *testing.T) {
	it, s, m := newInterpreter(t, "en")
	before := s.Dump()

	m.fail = true
	for _, line := range []string{"kbt 2", "k101 on", "kabd 1", "sbr 9600", "scd 3", "ew 21 2"} {
		expectLines(t, line, it.Exec(line), false, "EEPROM write failed")
	}
	if string(s.Dump()) != string(before) {
		t.Fatalf("failed writes mutated the image")
	}
}
