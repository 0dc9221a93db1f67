// internal/config/load.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. KBCONV_IMAGE_PATH.
const EnvPrefix = "kbconv"

// FlagKeys maps command line flag names onto config keys.
var FlagKeys = map[string]string{
	"medium":    "image.medium",
	"image":     "image.path",
	"device":    "console.device",
	"lang":      "language",
	"log-level": "log_level",
	"log-file":  "log_file",
}

// Load reads path (optional), then KBCONV_* environment variables, then any
// changed flags in fs named in FlagKeys. The result is validated and normalized.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// keys must be known to viper for env and flag overrides to unmarshal
	def := Default()
	v.SetDefault("image.medium", "")
	v.SetDefault("image.path", "")
	v.SetDefault("image.modbus.transport", "")
	v.SetDefault("image.modbus.endpoint", "")
	v.SetDefault("image.modbus.slave_id", 0)
	v.SetDefault("image.modbus.baud_rate", 0)
	v.SetDefault("image.modbus.timeout_ms", 0)
	v.SetDefault("image.modbus.base_address", 0)
	v.SetDefault("console.device", "")
	v.SetDefault("console.read_timeout_ms", def.Console.ReadTimeoutMs)
	v.SetDefault("language", def.Language)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range FlagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	return &cfg, nil
}

// Write renders cfg as YAML to path, creating parent directories.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config encode: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config write %s: %w", path, err)
	}
	return nil
}
