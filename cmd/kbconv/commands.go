// cmd/kbconv/commands.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/kbconv/internal/command"
	"github.com/tamzrod/kbconv/internal/config"
	"github.com/tamzrod/kbconv/internal/console"
	"github.com/tamzrod/kbconv/internal/i18n"
	"github.com/tamzrod/kbconv/internal/layout"
	"github.com/tamzrod/kbconv/internal/params"
	"github.com/tamzrod/kbconv/internal/scancode"
)

// ---- console ----

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the programming-mode console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.close()

			it := command.New(e.store, i18n.New(e.cfg.Language), command.WithLogger(e.log))

			var c *console.Console
			if dev := e.cfg.Console.Device; dev != "" {
				timeout := time.Duration(e.cfg.Console.ReadTimeoutMs) * time.Millisecond
				c = console.New(it, console.SerialPort(dev, timeout), console.WithLogger(e.log))
			} else {
				c = console.NewStdio(it, cmd.InOrStdin(), cmd.OutOrStdout(), console.WithLogger(e.log))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.Run(ctx)
		},
	}
}

// ---- exec ----

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [args...]",
		Short: "Run one console command and print its reply",
		Example: `  kbconv exec sbr 9600
  kbconv exec k101 on
  kbconv --lang de exec hilfe`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.close()

			it := command.New(e.store, i18n.New(e.cfg.Language), command.WithLogger(e.log))
			resp := it.Exec(strings.Join(args, " "))

			out := cmd.OutOrStdout()
			for _, l := range resp.Lines {
				fmt.Fprintln(out, l)
			}
			if !resp.OK {
				return errors.New("command failed")
			}
			return nil
		},
	}
}

// ---- dump ----

func newDumpCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every configuration field and the checksum state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, !raw)
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			for _, f := range layout.Fields() {
				fmt.Fprintf(out, "%-22s @%-2d w%d  %d\n", f.Name(), f.Offset(), f.Width(), e.store.Field(f))
			}

			saved, calc := e.store.SavedChecksum(), e.store.Checksum()
			state := "valid"
			if saved != calc {
				state = "INVALID"
			}
			fmt.Fprintf(out, "checksum saved=%08x calculated=%08x %s\n", saved, calc, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "do not validate or reset the image first")
	return cmd
}

// ---- translate ----

func newTranslateCmd() *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "translate <at2xt|xt2at> <code>",
		Short: "Translate one scan code between AT and XT",
		Example: `  kbconv translate at2xt 0x1C
  kbconv translate --extended at2xt 0x6B`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir scancode.Direction
			switch args[0] {
			case "at2xt":
				dir = scancode.ATToXT
			case "xt2at":
				dir = scancode.XTToAT
			default:
				return fmt.Errorf("direction %q: use at2xt or xt2at", args[0])
			}

			code, err := strconv.ParseUint(args[1], 0, 8)
			if err != nil {
				return fmt.Errorf("code %q: %w", args[1], err)
			}

			e, err := openEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.close()

			eng := scancode.NewEngine(params.New(e.store))
			res, ok := eng.Translate(dir, uint8(code), extended)
			if !ok {
				return fmt.Errorf("0x%02X: no translation", code)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "0x%02X key=%d table=%s strip_prefix=%v\n",
				res.Code, res.Key, res.Table, res.StripPrefix)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "code follows the 0xE0 prefix")
	return cmd
}

// ---- init-config ----

func newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "kbconv.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if err := config.Write(&cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
