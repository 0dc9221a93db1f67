// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/natefinch/lumberjack"
)

// L is the package-level logger used when no logger is injected.
var L = clog.NewWithOptions(os.Stderr, clog.Options{ReportTimestamp: true})

// New builds a logger writing to w at the named level ("debug", "info", ...).
func New(w io.Writer, level string) (*clog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Level:           lvl,
	}), nil
}

// Rotating sizes for NewFile.
const (
	MaxFileMB  = 5
	MaxBackups = 3
	MaxAgeDays = 28
)

// NewFile builds a logger writing to a size-rotated file at path.
// The returned closer releases the file.
func NewFile(path, level string) (*clog.Logger, io.Closer, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("logging: empty log file path")
	}
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    MaxFileMB,
		MaxBackups: MaxBackups,
		MaxAge:     MaxAgeDays,
	}
	l, err := New(out, level)
	if err != nil {
		return nil, nil, err
	}
	return l, out, nil
}

// SetLevel changes the level of L.
func SetLevel(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	L.SetLevel(lvl)
	return nil
}

func parseLevel(level string) (clog.Level, error) {
	if level == "" {
		return clog.InfoLevel, nil
	}
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return clog.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}
