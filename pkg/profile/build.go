package profile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muxkit/muxkit-go/pkg/demux"
	"github.com/muxkit/muxkit-go/pkg/demux/hc138"
	"github.com/muxkit/muxkit-go/pkg/demux/hc154"
	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/line/gpio"
	"github.com/muxkit/muxkit-go/pkg/line/linetest"
	"github.com/muxkit/muxkit-go/pkg/line/serialline"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// ErrOutputRange reports an output index outside the chip's range.
var ErrOutputRange = errors.New("output index out of range")

// LineSource mints the lines a profile names. Every backend satisfies
// it, as does linetest.Recorder.
type LineSource interface {
	Line(name string, pin uint32, polarity line.Polarity) (line.Line, error)
}

// Board is a built profile: a chip driver plus the backend it runs on.
type Board struct {
	name string
	chip string
	sel  *demux.Selector
	outs []*demux.Output

	// closer releases the backend. Nil when the caller owns it (Build)
	// or the backend holds nothing (sim).
	closer io.Closer
}

// Build constructs the profile's chip driver on lines minted from src.
// The caller keeps ownership of src; the returned board's Close is a
// no-op. Tools that just want the profile's own backend use Open.
func Build(p *Profile, src LineSource, tracer trace.Logger) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Mint lines by role, keeping the first failure. Optional roles the
	// profile does not list come back nil, which is what the chip
	// configs take for "strapped in hardware".
	var firstErr error
	mint := func(role string) line.Line {
		if firstErr != nil {
			return nil
		}
		spec, ok := p.Lines[role]
		if !ok {
			return nil
		}
		pol, err := spec.Polarity()
		if err != nil {
			firstErr = fmt.Errorf("line %q: %w", role, err)
			return nil
		}
		l, err := src.Line(strings.ToUpper(role), spec.Pin, pol)
		if err != nil {
			firstErr = fmt.Errorf("line %q: %w", role, err)
			return nil
		}
		return l
	}

	var sel *demux.Selector
	switch p.Chip {
	case ChipHC138:
		chip := hc138.NewWithConfig(
			mint("a0"), mint("a1"), mint("a2"), mint("g1"),
			hc138.Config{
				DeviceID: p.Name,
				G2A:      mint("g2a"),
				G2B:      mint("g2b"),
				Tracer:   tracer,
			})
		sel = chip.Selector()
	case ChipHC154:
		chip := hc154.NewWithConfig(
			mint("a0"), mint("a1"), mint("a2"), mint("a3"), mint("e0"),
			hc154.Config{
				DeviceID: p.Name,
				E1:       mint("e1"),
				Tracer:   tracer,
			})
		sel = chip.Selector()
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return &Board{
		name: p.Name,
		chip: p.Chip,
		sel:  sel,
		outs: sel.Split(),
	}, nil
}

// Open builds the profile on its configured backend. The returned board
// owns the backend and releases it on Close.
func Open(p *Profile, tracer trace.Logger) (*Board, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		src    LineSource
		closer io.Closer
	)
	switch p.Backend {
	case BackendSim:
		src = linetest.NewRecorder()
	case BackendRpio:
		r, err := gpio.OpenRpio()
		if err != nil {
			return nil, fmt.Errorf("rpio backend: %w", err)
		}
		src, closer = r, r
	case BackendChardev:
		c, err := gpio.OpenChardev(p.Chardev.Chip)
		if err != nil {
			return nil, fmt.Errorf("cdev backend: %w", err)
		}
		src, closer = c, c
	case BackendSerial:
		conn, err := serialline.Open(p.Serial.Port, p.Serial.Baud)
		if err != nil {
			return nil, fmt.Errorf("serial backend: %w", err)
		}
		src, closer = conn, conn
	}

	b, err := Build(p, src, tracer)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	b.closer = closer
	return b, nil
}

// Name returns the profile's board name.
func (b *Board) Name() string {
	return b.name
}

// Chip returns the chip model.
func (b *Board) Chip() string {
	return b.chip
}

// Selector returns the chip's selector.
func (b *Board) Selector() *demux.Selector {
	return b.sel
}

// Outputs returns all output handles in index order.
func (b *Board) Outputs() []*demux.Output {
	return b.outs
}

// Output returns the handle for output k.
func (b *Board) Output(k int) (*demux.Output, error) {
	if k < 0 || k >= len(b.outs) {
		return nil, fmt.Errorf("%w: %d (chip %s has %d)", ErrOutputRange, k, b.chip, len(b.outs))
	}
	return b.outs[k], nil
}

// Close releases the backend, if the board owns one.
func (b *Board) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
