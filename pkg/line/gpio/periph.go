package gpio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// FromPeriph adapts a periph.io output pin to a muxkit line with the
// given polarity. The pin must already be configured for output; muxkit
// performs no host initialization (use periph.io/x/host for that).
func FromPeriph(pin pgpio.PinOut, polarity line.Polarity) line.Line {
	return &periphLine{pin: pin, polarity: polarity}
}

type periphLine struct {
	pin      pgpio.PinOut
	polarity line.Polarity
}

// Compile-time interface satisfaction check.
var _ line.Line = (*periphLine)(nil)

// Activate drives the pin to its asserted level.
func (l *periphLine) Activate() error {
	return l.set(true)
}

// Deactivate drives the pin to its deasserted level.
func (l *periphLine) Deactivate() error {
	return l.set(false)
}

func (l *periphLine) set(asserted bool) error {
	if err := l.pin.Out(pgpio.Level(l.polarity.Level(asserted))); err != nil {
		return fmt.Errorf("pin %s: %w", l.pin.Name(), err)
	}
	return nil
}
