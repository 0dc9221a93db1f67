// internal/config/normalize.go
package config

const (
	DefaultImagePath     = "kbconv.img"
	DefaultLanguage      = "en"
	DefaultLogLevel      = "info"
	DefaultModbusTimeout = 1000
	DefaultModbusBaud    = 19200
	DefaultReadTimeout   = 100
)

// Normalize fills unset values with defaults.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Image.Medium == "" {
		cfg.Image.Medium = MediumFile
	}
	if cfg.Image.Medium == MediumFile && cfg.Image.Path == "" {
		cfg.Image.Path = DefaultImagePath
	}

	if cfg.Image.Medium == MediumModbus {
		m := &cfg.Image.Modbus
		if m.Transport == "" {
			m.Transport = "rtu"
		}
		if m.SlaveID == 0 {
			m.SlaveID = 1
		}
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultModbusTimeout
		}
		if m.Transport == "rtu" && m.BaudRate == 0 {
			m.BaudRate = DefaultModbusBaud
		}
	}

	if cfg.Console.ReadTimeoutMs == 0 {
		cfg.Console.ReadTimeoutMs = DefaultReadTimeout
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Default returns a normalized configuration with every value defaulted.
func Default() Config {
	var cfg Config
	Normalize(&cfg)
	return cfg
}
