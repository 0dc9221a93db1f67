// internal/config/validate.go
package config

import (
	"fmt"

	clog "github.com/charmbracelet/log"

	"github.com/tamzrod/kbconv/internal/i18n"
	"github.com/tamzrod/kbconv/internal/layout"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// IMAGE MEDIUM
	// ------------------------------------------------------------

	switch cfg.Image.Medium {
	case "", MediumFile, MediumMemory:
	case MediumModbus:
		if err := validateModbus(cfg.Image.Modbus); err != nil {
			return err
		}
	default:
		return fmt.Errorf("image.medium %q: must be %s, %s or %s",
			cfg.Image.Medium, MediumFile, MediumMemory, MediumModbus)
	}

	// ------------------------------------------------------------
	// CONSOLE
	// ------------------------------------------------------------

	if cfg.Console.ReadTimeoutMs < 0 {
		return fmt.Errorf("console.read_timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// AMBIENT
	// ------------------------------------------------------------

	if cfg.Language != "" && !i18n.Supported(cfg.Language) {
		return fmt.Errorf("language %q: supported languages are %v", cfg.Language, i18n.Languages())
	}
	if cfg.LogLevel != "" {
		if _, err := clog.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("log_level %q: %w", cfg.LogLevel, err)
		}
	}

	return nil
}

func validateModbus(m ModbusConfig) error {
	switch m.Transport {
	case "", "rtu", "tcp":
	default:
		return fmt.Errorf("image.modbus.transport %q: must be rtu or tcp", m.Transport)
	}

	if m.Endpoint == "" {
		return fmt.Errorf("image.modbus.endpoint is required")
	}
	if m.SlaveID > 247 {
		return fmt.Errorf("image.modbus.slave_id %d: must be 1-247", m.SlaveID)
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("image.modbus.timeout_ms must be >= 0")
	}
	if m.BaudRate != 0 && !layout.AllowedBaudInt(m.BaudRate) {
		return fmt.Errorf("image.modbus.baud_rate %d: unsupported", m.BaudRate)
	}

	// two image bytes per register
	regs := (layout.Size + 1) / 2
	if int(m.BaseAddress)+regs > 0x10000 {
		return fmt.Errorf(
			"image.modbus.base_address %d: image needs %d registers and would run past 65535",
			m.BaseAddress,
			regs,
		)
	}

	return nil
}
