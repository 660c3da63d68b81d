//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Rpio mints lines on the Raspberry Pi's memory-mapped GPIO registers.
// One Rpio source serves the whole board; the mapping is process-global.
type Rpio struct {
	mu   sync.Mutex
	open bool
}

// OpenRpio maps the Pi's GPIO registers. Requires /dev/gpiomem (or root
// for /dev/mem on older kernels).
func OpenRpio() (*Rpio, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("opening gpio memory: %w", err)
	}
	return &Rpio{open: true}, nil
}

// Line returns a line driving BCM pin number with the given polarity.
// The pin is switched to output mode; its level is left as-is until the
// first drive.
func (r *Rpio) Line(name string, number uint32, polarity line.Polarity) (line.Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return nil, ErrClosed
	}

	p := rpio.Pin(number)
	p.Output()
	return &rpioLine{pin: p, polarity: polarity}, nil
}

// Close unmaps the GPIO registers. Lines minted from this source must
// not be driven afterwards.
func (r *Rpio) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.open {
		return nil
	}
	r.open = false
	return rpio.Close()
}

type rpioLine struct {
	pin      rpio.Pin
	polarity line.Polarity
}

// Compile-time interface satisfaction check.
var _ line.Line = (*rpioLine)(nil)

func (l *rpioLine) Activate() error {
	l.write(l.polarity.Level(true))
	return nil
}

func (l *rpioLine) Deactivate() error {
	l.write(l.polarity.Level(false))
	return nil
}

// write drives the pin level. Register writes cannot fail once the
// mapping is open, hence no error path.
func (l *rpioLine) write(level bool) {
	if level {
		l.pin.High()
	} else {
		l.pin.Low()
	}
}
