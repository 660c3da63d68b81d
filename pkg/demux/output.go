package demux

import (
	"github.com/muxkit/muxkit-go/pkg/line"
)

// Output is a handle on one demultiplexer output.
//
// All handles of a chip share the selector they were split from, so
// activating one output moves the shared selection and every other
// output is inactive. Output satisfies line.Line, which lets a chip
// output gate a downstream chip's enable input in cascaded setups.
type Output struct {
	sel   *Selector
	index int
	label string
}

// Compile-time interface satisfaction check.
var _ line.Line = (*Output)(nil)

// Index returns the output's index on the chip.
func (o *Output) Index() int {
	return o.index
}

// Label returns the output's pin label (for example "Y3").
func (o *Output) Label() string {
	return o.label
}

// String returns the pin label.
func (o *Output) String() string {
	return o.label
}

// Activate addresses this output and enables the chip. If another output
// is active its handle observes the displacement through IsActive.
func (o *Output) Activate() error {
	return o.sel.activate(o.index)
}

// Deactivate releases this output. Calling it while the output is not
// active succeeds without touching any line.
func (o *Output) Deactivate() error {
	return o.sel.deactivate(o.index)
}

// IsActive reports whether this output is currently addressed and
// enabled. The answer is a snapshot; concurrent users may move the
// selection at any time.
func (o *Output) IsActive() bool {
	return o.sel.isActive(o.index)
}
