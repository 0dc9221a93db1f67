// internal/console/console.go
//
// Package console runs the programming-mode line console over a host port.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/tamzrod/kbconv/internal/command"
	"github.com/tamzrod/kbconv/internal/logging"
)

const prompt = ">"

// OpenFunc opens the host port at a baud rate.
type OpenFunc func(baud uint32) (io.ReadWriteCloser, error)

// Console reads command lines, runs them and writes CRLF replies.
// Output is dropped while serial output is disabled.
type Console struct {
	it   *command.Interpreter
	open OpenFunc
	port io.ReadWriteCloser
	log  *clog.Logger

	sleep func(time.Duration)
}

// Option configures a Console.
type Option func(*Console)

func WithLogger(l *clog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a console that opens its port through open and reopens it
// whenever a command changes the stored baud rate.
func New(it *command.Interpreter, open OpenFunc, opts ...Option) *Console {
	c := &Console{it: it, open: open, log: logging.L, sleep: time.Sleep}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewStdio returns a console on a fixed reader and writer. Baud changes are
// stored but do not reopen anything.
func NewStdio(it *command.Interpreter, r io.Reader, w io.Writer, opts ...Option) *Console {
	c := New(it, nil, opts...)
	c.port = stdio{r, w}
	return c
}

// Run serves the console until ctx is cancelled or input ends.
func (c *Console) Run(ctx context.Context) error {
	p := c.it.Params()

	port := c.port
	if port == nil {
		var err error
		if port, err = c.open(p.BaudRate()); err != nil {
			return fmt.Errorf("console: open port: %w", err)
		}
	}
	c.log.Info("console started", "baud", p.BaudRate(), "lang", c.it.Catalog().Lang())

	if err := c.println(port, c.it.Catalog().T("prog_mode", nil)); err != nil {
		port.Close()
		return err
	}

	for {
		sctx, cancel := context.WithCancel(ctx)
		lines := make(chan string)
		errc := make(chan error, 1)
		go readLines(sctx, port, lines, errc)

		reopen, err := c.serve(sctx, port, lines, errc)
		cancel()
		if !reopen {
			port.Close()
			return err
		}

		// ---- baud change: reopen at the stored rate ----
		port.Close()
		baud := p.BaudRate()
		if port, err = c.open(baud); err != nil {
			return fmt.Errorf("console: reopen port at %d: %w", baud, err)
		}
		c.log.Info("host port reopened", "baud", baud)
	}
}

// serve handles lines until ctx ends, input fails, or the port needs reopening.
func (c *Console) serve(ctx context.Context, w io.Writer, lines <-chan string, errc <-chan error) (bool, error) {
	if err := c.print(w, prompt); err != nil {
		return false, err
	}

	for {
		select {
		case <-ctx.Done():
			return false, nil

		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("console: read: %w", err)

		case line := <-lines:
			resp := c.it.Exec(line)
			if !resp.OK {
				c.log.Debug("command rejected", "line", line)
			}
			for _, l := range resp.Lines {
				if err := c.println(w, l); err != nil {
					return false, err
				}
			}
			if resp.BaudChanged && c.open != nil {
				return true, nil
			}
			if err := c.print(w, prompt); err != nil {
				return false, err
			}
		}
	}
}

// ---- output ----

func (c *Console) print(w io.Writer, s string) error {
	p := c.it.Params()
	if !p.SerialEnabled() {
		return nil
	}

	delay := time.Duration(p.CharDelay()) * time.Millisecond
	if delay == 0 {
		_, err := io.WriteString(w, s)
		return err
	}
	for i := 0; i < len(s); i++ {
		if _, err := w.Write([]byte{s[i]}); err != nil {
			return err
		}
		c.sleep(delay)
	}
	return nil
}

func (c *Console) println(w io.Writer, s string) error {
	if err := c.print(w, s+"\r\n"); err != nil {
		return err
	}
	p := c.it.Params()
	if p.SerialEnabled() && p.LineDelay() > 0 {
		c.sleep(time.Duration(p.LineDelay()) * time.Millisecond)
	}
	return nil
}

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }
