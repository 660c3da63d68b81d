//go:build !linux

package gpio

import "github.com/muxkit/muxkit-go/pkg/line"

// Chardev mints lines on a GPIO character device through the Linux GPIO
// uAPI. Only available on Linux.
type Chardev struct{}

// OpenChardev is unavailable on this platform.
func OpenChardev(name string) (*Chardev, error) {
	return nil, ErrUnsupported
}

// Line is unavailable on this platform.
func (*Chardev) Line(name string, offset uint32, polarity line.Polarity) (line.Line, error) {
	return nil, ErrUnsupported
}

// Close is a no-op on this platform.
func (*Chardev) Close() error {
	return nil
}
