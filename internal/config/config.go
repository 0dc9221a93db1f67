// internal/config/config.go
package config

type Config struct {
	Image    ImageConfig   `yaml:"image" mapstructure:"image"`
	Console  ConsoleConfig `yaml:"console" mapstructure:"console"`
	Language string        `yaml:"language" mapstructure:"language"`
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile  string        `yaml:"log_file,omitempty" mapstructure:"log_file"` // empty = stderr
}

// ---- IMAGE ----

// Media accepted in ImageConfig.Medium.
const (
	MediumFile   = "file"
	MediumMemory = "memory"
	MediumModbus = "modbus"
)

type ImageConfig struct {
	Medium string       `yaml:"medium" mapstructure:"medium"`
	Path   string       `yaml:"path,omitempty" mapstructure:"path"` // file medium
	Modbus ModbusConfig `yaml:"modbus,omitempty" mapstructure:"modbus"`
}

type ModbusConfig struct {
	Transport   string `yaml:"transport" mapstructure:"transport"` // rtu | tcp
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`   // device path or host:port
	SlaveID     uint8  `yaml:"slave_id" mapstructure:"slave_id"`
	BaudRate    int    `yaml:"baud_rate,omitempty" mapstructure:"baud_rate"` // rtu only
	TimeoutMs   int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	BaseAddress uint16 `yaml:"base_address" mapstructure:"base_address"`
}

// ---- CONSOLE ----

type ConsoleConfig struct {
	Device        string `yaml:"device,omitempty" mapstructure:"device"` // empty = stdin/stdout
	ReadTimeoutMs int    `yaml:"read_timeout_ms" mapstructure:"read_timeout_ms"`
}
