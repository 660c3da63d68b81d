// Package hc154 drives 74HC154-class 4-to-16 line decoder/demultiplexers.
//
// Same contract as pkg/demux/hc138 with four address inputs A0..A3 and
// sixteen outputs Y0..Y15. The part's two enable gates are E0 and E1;
// this driver owns E0 and can optionally drive E1 (see Config), which is
// commonly strapped permanently active in hardware.
package hc154

import (
	"github.com/muxkit/muxkit-go/pkg/demux"
	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// Chip geometry.
const (
	// AddressWidth is the number of address inputs.
	AddressWidth = 4

	// OutputCount is the number of outputs.
	OutputCount = 16
)

const chipName = "hc154"

// Config holds optional chip configuration. The zero value selects
// defaults for every field.
type Config struct {
	// DeviceID identifies this chip instance in trace events.
	// Defaults to a random UUID.
	DeviceID string

	// E1 is the second enable gate. Leave nil when strapped permanently
	// active in hardware. When set it is asserted on every activation,
	// before E0.
	E1 line.Line

	// Tracer receives hardware trace events. Defaults to trace.NoopLogger.
	Tracer trace.Logger
}

// Chip is a 74HC154 driver.
type Chip struct {
	sel *demux.Selector
}

// Compile-time interface satisfaction check.
var _ demux.Demultiplexer[Outputs] = (*Chip)(nil)

// New creates a driver over address lines a0..a3 and enable gate e0.
// All lines must be non-nil. No hardware writes happen here and
// construction cannot fail.
func New(a0, a1, a2, a3, e0 line.Line) *Chip {
	return NewWithConfig(a0, a1, a2, a3, e0, Config{})
}

// NewWithConfig creates a driver with explicit configuration.
func NewWithConfig(a0, a1, a2, a3, e0 line.Line, cfg Config) *Chip {
	var aux []line.Line
	var auxLabels []string
	if cfg.E1 != nil {
		aux = append(aux, cfg.E1)
		auxLabels = append(auxLabels, "E1")
	}

	sel := demux.NewSelector(
		[]line.Line{a0, a1, a2, a3}, e0,
		demux.Config{
			DeviceID: cfg.DeviceID,
			Chip:     chipName,
			Labels: demux.Labels{
				Address: []string{"A0", "A1", "A2", "A3"},
				Enable:  "E0",
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
