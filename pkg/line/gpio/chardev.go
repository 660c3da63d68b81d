//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Chardev mints lines on a GPIO character device ("gpiochip0" and
// friends) through the Linux GPIO uAPI. Unlike Rpio this works on any
// board with a gpiochip, not just the Raspberry Pi.
type Chardev struct {
	mu    sync.Mutex
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// OpenChardev opens the named GPIO character device. The name is as
// listed under /dev, for example "gpiochip0".
func OpenChardev(name string) (*Chardev, error) {
	chip, err := gpiocdev.NewChip(name, gpiocdev.WithConsumer("muxkit"))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return &Chardev{chip: chip}, nil
}

// Line requests the line at offset as an output with the given polarity.
// The kernel requires an initial value for output requests, so the line
// is driven to its deasserted level here; this is the one place a muxkit
// backend writes hardware outside an Activate/Deactivate call.
func (c *Chardev) Line(name string, offset uint32, polarity line.Polarity) (line.Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chip == nil {
		return nil, ErrClosed
	}

	initial := 0
	if polarity.Level(false) {
		initial = 1
	}

	l, err := c.chip.RequestLine(int(offset),
		gpiocdev.AsOutput(initial),
		gpiocdev.WithConsumer("muxkit-"+name))
	if err != nil {
		return nil, fmt.Errorf("requesting line %d: %w", offset, err)
	}

	c.lines = append(c.lines, l)
	return &chardevLine{line: l, polarity: polarity}, nil
}

// Close releases all requested lines and the chip handle. Released
// output lines revert to the kernel's default state.
func (c *Chardev) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chip == nil {
		return nil
	}

	var firstErr error
	for _, l := range c.lines {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.lines = nil

	if err := c.chip.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.chip = nil
	return firstErr
}

type chardevLine struct {
	line     *gpiocdev.Line
	polarity line.Polarity
}

// Compile-time interface satisfaction check.
var _ line.Line = (*chardevLine)(nil)

func (l *chardevLine) Activate() error {
	return l.set(true)
}

func (l *chardevLine) Deactivate() error {
	return l.set(false)
}

func (l *chardevLine) set(asserted bool) error {
	value := 0
	if l.polarity.Level(asserted) {
		value = 1
	}
	if err := l.line.SetValue(value); err != nil {
		return fmt.Errorf("line %d: %w", l.line.Offset(), err)
	}
	return nil
}
