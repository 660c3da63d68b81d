package serialline

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// replyTimeout bounds how long a command waits for its reply. A few
// frame times at the slowest common baud rate is plenty; a bridge that
// needs longer is wedged.
const replyTimeout = 250 * time.Millisecond

// Open opens the named serial port and wraps it in a Conn. The port
// name is platform-specific ("/dev/ttyACM0", "COM3").
func Open(port string, baud int) (*Conn, error) {
	p, err := serial.Open(port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", port, err)
	}
	if err := p.SetReadTimeout(replyTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("setting read timeout on %s: %w", port, err)
	}
	return NewConn(p), nil
}
