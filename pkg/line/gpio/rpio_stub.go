//go:build !linux

package gpio

import "github.com/muxkit/muxkit-go/pkg/line"

// Rpio mints lines on the Raspberry Pi's memory-mapped GPIO registers.
// Only available on Linux.
type Rpio struct{}

// OpenRpio is unavailable on this platform.
func OpenRpio() (*Rpio, error) {
	return nil, ErrUnsupported
}

// Line is unavailable on this platform.
func (*Rpio) Line(name string, number uint32, polarity line.Polarity) (line.Line, error) {
	return nil, ErrUnsupported
}

// Close is a no-op on this platform.
func (*Rpio) Close() error {
	return nil
}
