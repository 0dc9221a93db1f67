// cmd/kbconv/root.go
package main

import (
	"fmt"
	"os"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tamzrod/kbconv/internal/config"
	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/logging"
	"github.com/tamzrod/kbconv/internal/medium"
	mbmedium "github.com/tamzrod/kbconv/internal/medium/modbus"
	"github.com/tamzrod/kbconv/internal/store"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kbconv",
		Short: "Keyboard converter configuration tool",
		Long: `kbconv edits the persistent configuration image of an AT/XT keyboard
protocol converter, translates scan codes, and runs the converter's
programming-mode console against a file, memory, or Modbus-backed image.`,
		SilenceUsage: true,
		Version:      version,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml)")
	pf.String("medium", "", `image medium ("file", "memory", "modbus")`)
	pf.String("image", "", "image file path for the file medium")
	pf.String("device", "", "host serial device for the console (default stdin/stdout)")
	pf.String("lang", "", `console language ("en", "de")`)
	pf.String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	pf.String("log-file", "", "write logs to a rotated file instead of stderr")

	cmd.AddCommand(newConsoleCmd())
	cmd.AddCommand(newExecCmd())
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newTranslateCmd())
	cmd.AddCommand(newInitConfigCmd())

	return cmd
}

// env is what every subcommand works with.
type env struct {
	cfg   *config.Config
	log   *clog.Logger
	store *store.Store
	close func()
}

// loadConfig reads the config and configures logging.
// The returned func closes the log file, if any.
func loadConfig(cmd *cobra.Command) (*config.Config, *clog.Logger, func(), error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return nil, nil, nil, err
	}

	if cfg.LogFile == "" {
		log, err := logging.New(os.Stderr, cfg.LogLevel)
		if err != nil {
			return nil, nil, nil, err
		}
		return cfg, log, func() {}, nil
	}

	log, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logging.Debugf("logging to %s", cfg.LogFile)
	return cfg, log, func() { closer.Close() }, nil
}

// openEnv loads config, opens the image medium and the store.
// With validate set the image is checked and reset like a converter boot.
func openEnv(cmd *cobra.Command, validate bool) (*env, error) {
	cfg, log, closeLog, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	m, closeMedium, err := openMedium(cfg.Image)
	if err != nil {
		closeLog()
		return nil, err
	}
	closeAll := func() {
		closeMedium()
		closeLog()
	}

	s, err := store.Open(m, store.WithLogger(log))
	if err != nil {
		closeAll()
		return nil, err
	}

	if validate {
		outcome, err := s.ValidateOrReset()
		if err != nil {
			closeAll()
			return nil, err
		}
		log.Debug("configuration image checked", "outcome", outcome)
	}

	return &env{cfg: cfg, log: log, store: s, close: closeAll}, nil
}

func openMedium(c config.ImageConfig) (store.Medium, func(), error) {
	switch c.Medium {
	case config.MediumMemory:
		return medium.NewMemory(layout.Size), func() {}, nil

	case config.MediumModbus:
		client, err := mbmedium.New(mbmedium.Config{
			Transport:   c.Modbus.Transport,
			Endpoint:    c.Modbus.Endpoint,
			SlaveID:     c.Modbus.SlaveID,
			BaudRate:    c.Modbus.BaudRate,
			Timeout:     time.Duration(c.Modbus.TimeoutMs) * time.Millisecond,
			BaseAddress: c.Modbus.BaseAddress,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, func() {
			if err := client.Close(); err != nil {
				logging.Warnf("modbus close failed: %v", err)
			}
		}, nil

	case config.MediumFile:
		f, err := medium.NewFile(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown image medium %q", c.Medium)
	}
}
