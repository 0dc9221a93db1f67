// internal/console/serial.go
package console

import (
	"io"
	"time"

	"github.com/goburrow/serial"
)

// SerialPort returns an OpenFunc for a host serial device at 8N1.
// timeout bounds each read so cancellation is noticed.
func SerialPort(device string, timeout time.Duration) OpenFunc {
	return func(baud uint32) (io.ReadWriteCloser, error) {
		return serial.Open(&serial.Config{
			Address:  device,
			BaudRate: int(baud),
			DataBits: 8,
			StopBits: 1,
			Parity:   "N",
			Timeout:  timeout,
		})
	}
}
