package hc138

import (
	"github.com/muxkit/muxkit-go/pkg/demux"
	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// Chip geometry.
const (
	// AddressWidth is the number of address inputs.
	AddressWidth = 3

	// OutputCount is the number of outputs.
	OutputCount = 8
)

// chipName identifies the model in trace events.
const chipName = "hc138"

// Config holds optional chip configuration. The zero value selects
// defaults for every field.
type Config struct {
	// DeviceID identifies this chip instance in trace events.
	// Defaults to a random UUID.
	DeviceID string

	// G2A and G2B are the complementary enable gates. Leave nil when
	// they are strapped permanently active in hardware. When set they
	// are asserted on every activation, before G1.
	G2A line.Line
	G2B line.Line

	// Tracer receives hardware trace events. Defaults to trace.NoopLogger.
	Tracer trace.Logger
}

// Chip is a 74HC138 driver. Create one with New or NewWithConfig, then
// call Split for the output handles.
type Chip struct {
	sel *demux.Selector
}

// Compile-time interface satisfaction check.
var _ demux.Demultiplexer[Outputs] = (*Chip)(nil)

// New creates a driver over address lines a0..a2 and enable gate g1.
// All lines must be non-nil. No hardware writes happen here and
// construction cannot fail; the chip keeps whatever state it had.
func New(a0, a1, a2, g1 line.Line) *Chip {
	return NewWithConfig(a0, a1, a2, g1, Config{})
}

// NewWithConfig creates a driver with explicit configuration.
func NewWithConfig(a0, a1, a2, g1 line.Line, cfg Config) *Chip {
	var aux []line.Line
	var auxLabels []string
	if cfg.G2A != nil {
		aux = append(aux, cfg.G2A)
		auxLabels = append(auxLabels, "G2A")
	}
	if cfg.G2B != nil {
		aux = append(aux, cfg.G2B)
		auxLabels = append(auxLabels, "G2B")
	}

	sel := demux.NewSelector(
		[]line.Line{a0, a1, a2}, g1,
		demux.Config{
			DeviceID: cfg.DeviceID,
			Chip:     chipName,
			Labels: demux.Labels{
				Address: []string{"A0", "A1", "A2"},
				Enable:  "G1",
				Aux:     auxLabels,
			},
			Aux:    aux,
			Tracer: cfg.Tracer,
		})

	return &Chip{sel: sel}
}

// Split returns the chip's output handles. The handles are created once;
// repeated calls return the same handles.
func (c *Chip) Split() Outputs {
	return newOutputs(c.sel)
}

// Selector returns the underlying selector, for index-based tooling.
func (c *Chip) Selector() *demux.Selector {
	return c.sel
}
