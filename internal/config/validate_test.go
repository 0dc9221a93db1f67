// internal/config/validate_test.go
package config

import "testing"

// helper to build a modbus image config quickly
func modbusCfg(transport, endpoint string, slave uint8, base uint16) *Config {
	return &Config{
		Image: ImageConfig{
			Medium: MediumModbus,
			Modbus: ModbusConfig{
				Transport:   transport,
				Endpoint:    endpoint,
				SlaveID:     slave,
				BaseAddress: base,
			},
		},
	}
}

// ---- tests ----

func TestValidate_EmptyConfigAllowed(t *testing.T) {
	if err := Validate(&Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NilRejected(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestValidate_UnknownMedium(t *testing.T) {
	cfg := &Config{Image: ImageConfig{Medium: "flash"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected medium error, got nil")
	}
}

func TestValidate_ModbusTCP(t *testing.T) {
	if err := Validate(modbusCfg("tcp", "127.0.0.1:502", 1, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusEndpointRequired(t *testing.T) {
	if err := Validate(modbusCfg("rtu", "", 1, 0)); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

func TestValidate_ModbusTransport(t *testing.T) {
	if err := Validate(modbusCfg("udp", "127.0.0.1:502", 1, 0)); err == nil {
		t.Fatalf("expected transport error, got nil")
	}
}

func TestValidate_ModbusSlaveRange(t *testing.T) {
	if err := Validate(modbusCfg("tcp", "127.0.0.1:502", 248, 0)); err == nil {
		t.Fatalf("expected slave_id error, got nil")
	}
}

func TestValidate_ModbusBaudRate(t *testing.T) {
	cfg := modbusCfg("rtu", "/dev/ttyUSB0", 1, 0)
	cfg.Image.Modbus.BaudRate = 14400
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected baud_rate error, got nil")
	}

	cfg.Image.Modbus.BaudRate = 1<<32 + 9600
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected baud_rate error for %d, got nil", cfg.Image.Modbus.BaudRate)
	}

	cfg.Image.Modbus.BaudRate = 9600
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusBlockFitsAddressSpace(t *testing.T) {
	// 29 bytes -> 15 registers
	if err := Validate(modbusCfg("tcp", "h:502", 1, 65535-14)); err != nil {
		t.Fatalf("block ending at 65535 must fit: %v", err)
	}
	if err := Validate(modbusCfg("tcp", "h:502", 1, 65535-13)); err == nil {
		t.Fatalf("expected base_address error, got nil")
	}
}

func TestValidate_Language(t *testing.T) {
	if err := Validate(&Config{Language: "de"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(&Config{Language: "fr"}); err == nil {
		t.Fatalf("expected language error, got nil")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	if err := Validate(&Config{LogLevel: "debug"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(&Config{LogLevel: "loud"}); err == nil {
		t.Fatalf("expected log_level error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := modbusCfg("", "h:502", 0, 0)
	before := *cfg
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != before {
		t.Fatalf("Validate mutated the config")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := Default()
	if cfg.Image.Medium != MediumFile || cfg.Image.Path != DefaultImagePath {
		t.Fatalf("unexpected image defaults: %+v", cfg.Image)
	}
	if cfg.Language != "en" || cfg.LogLevel != "info" || cfg.Console.ReadTimeoutMs != DefaultReadTimeout {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestNormalize_ModbusDefaults(t *testing.T) {
	cfg := modbusCfg("", "/dev/ttyUSB0", 0, 0)
	Normalize(cfg)

	m := cfg.Image.Modbus
	if m.Transport != "rtu" || m.SlaveID != 1 || m.TimeoutMs != DefaultModbusTimeout || m.BaudRate != DefaultModbusBaud {
		t.Fatalf("unexpected modbus defaults: %+v", m)
	}
	if cfg.Image.Path != "" {
		t.Fatalf("modbus medium must not get a file path")
	}
}
