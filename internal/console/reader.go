// internal/console/reader.go
package console

import (
	"context"
	"errors"
	"io"

	"github.com/goburrow/serial"
)

const (
	backspace = 0x08
	del       = 0x7F
)

// readLines splits r on CR or LF and sends each line to out.
// A CRLF pair ends one line. Backspace and DEL erase the previous byte.
// Serial read timeouts are not errors.
func readLines(ctx context.Context, r io.Reader, out chan<- string, errc chan<- error) {
	buf := make([]byte, 64)
	var line []byte
	lastCR := false

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			switch {
			case b == '\n' && lastCR:
				lastCR = false
				continue
			case b == '\r' || b == '\n':
				lastCR = b == '\r'
				select {
				case out <- string(line):
				case <-ctx.Done():
					return
				}
				line = line[:0]
				continue
			case b == backspace || b == del:
				if len(line) > 0 {
					line = line[:len(line)-1]
				}
			default:
				line = append(line, b)
			}
			lastCR = false
		}

		if err != nil {
			if errors.Is(err, serial.ErrTimeout) {
				if ctx.Err() != nil {
					return
				}
				continue
			}
			if errors.Is(err, io.EOF) && len(line) > 0 {
				select {
				case out <- string(line):
				case <-ctx.Done():
					return
				}
			}
			errc <- err
			return
		}
	}
}
