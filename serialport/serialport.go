// Package serialport opens and configures the serial port a clone
// session runs over. Clone-mode radios universally speak 8N1; only the
// baud rate varies per model, so that is all a caller supplies beyond
// the device path.
package serialport

import (
	"fmt"
	"io"
	"time"

	"github.com/grid-x/serial"
)

// DefaultTimeout is the per-read timeout used when the caller does not
// specify one. One second is comfortably above the inter-byte gaps seen
// on real radios while keeping failed-session feedback quick.
const DefaultTimeout = time.Second

// Open opens device at the given baud rate, 8 data bits, no parity, one
// stop bit, with the given read timeout. A Read on the returned port
// blocks for at most the timeout and returns whatever arrived, which is
// exactly the channel contract the clone engine expects.
func Open(device string, baudRate int, timeout time.Duration) (io.ReadWriteCloser, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	port, err := serial.Open(&serial.Config{
		Address:  device,
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", device, err)
	}
	return port, nil
}
