package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tamzrod/kbconv/internal/config"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile = ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExec_PersistsAcrossRuns(t *testing.T) {
	img := filepath.Join(t.TempDir(), "conv.img")

	if _, err := run(t, "", "--image", img, "exec", "sbr", "9600"); err != nil {
		t.Fatalf("exec sbr 9600: %v", err)
	}
	out, err := run(t, "", "--image", img, "exec", "sbr")
	if err != nil {
		t.Fatalf("exec sbr: %v", err)
	}
	if strings.TrimSpace(out) != "Baud rate = 9600 bps" {
		t.Fatalf("unexpected output %q", out)
	}

	info, err := os.Stat(img)
	if err != nil {
		t.Fatalf("stat image: %v", err)
	}
	if info.Size() != 29 {
		t.Fatalf("image size %d", info.Size())
	}
}

func TestExec_RejectedCommandFails(t *testing.T) {
	img := filepath.Join(t.TempDir(), "conv.img")

	out, err := run(t, "", "--image", img, "exec", "scd", "0")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(out, "Inter character delay too small") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestExec_German(t *testing.T) {
	out, err := run(t, "", "--medium", "memory", "--lang", "de", "exec", "k101")
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if strings.TrimSpace(out) != "101 tasten sind deaktiviert" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDump_DefaultImage(t *testing.T) {
	out, err := run(t, "", "--medium", "memory", "dump")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, "checksum saved=66fa7bea calculated=66fa7bea valid") {
		t.Fatalf("unexpected dump %q", out)
	}
	if !strings.Contains(out, "host_baud") || !strings.Contains(out, "115200") {
		t.Fatalf("dump missing baud: %q", out)
	}
}

func TestDump_RawShowsInvalid(t *testing.T) {
	out, err := run(t, "", "--medium", "memory", "dump", "--raw")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(out, "INVALID") {
		t.Fatalf("erased image must show as invalid: %q", out)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"translate", "at2xt", "0x1C"}, "0x1E key=31 table=standard strip_prefix=false"},
		{[]string{"translate", "xt2at", "0x1E"}, "0x1C key=31 table=standard strip_prefix=false"},
		{[]string{"translate", "-e", "at2xt", "0x11"}, "0x38 key=62 table=extended-short strip_prefix=false"},
	}

	for _, tt := range tests {
		out, err := run(t, "", append([]string{"--medium", "memory"}, tt.args...)...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Fatalf("%v: got %q want %q", tt.args, out, tt.want)
		}
	}
}

func TestTranslate_NavNeedsExtendedKeys(t *testing.T) {
	img := filepath.Join(t.TempDir(), "conv.img")

	if _, err := run(t, "", "--image", img, "translate", "-e", "at2xt", "0x6B"); err == nil {
		t.Fatalf("expected no translation with 101 keys off")
	}
	if _, err := run(t, "", "--image", img, "exec", "k101", "on"); err != nil {
		t.Fatalf("k101 on: %v", err)
	}
	out, err := run(t, "", "--image", img, "translate", "-e", "at2xt", "0x5A")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if strings.TrimSpace(out) != "0x1C key=108 table=extended-nav strip_prefix=true" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTranslate_BadDirection(t *testing.T) {
	if _, err := run(t, "", "--medium", "memory", "translate", "up", "0x1C"); err == nil {
		t.Fatalf("expected direction error")
	}
}

func TestConsole_Stdio(t *testing.T) {
	out, err := run(t, "kbt\r\n", "--medium", "memory", "console")
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	if out != "Programming mode...\r\n>Board type = 1\r\n>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbconv.yaml")

	if _, err := run(t, "", "init-config", path); err != nil {
		t.Fatalf("init-config: %v", err)
	}
	if _, err := run(t, "", "init-config", path); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if _, err := run(t, "", "init-config", "--force", path); err != nil {
		t.Fatalf("init-config --force: %v", err)
	}

	cfg, err := config.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != config.Default() {
		t.Fatalf("got %+v want %+v", *cfg, config.Default())
	}
}
