package line

// Line is the control contract for a single digital output line.
//
// The contract is logical. Whether "asserted" means electrically high or
// low is decided by the backend that implements the line, so a chip driver
// can address an active-low input without carrying inversion logic itself.
type Line interface {
	// Activate drives the line to its asserted state.
	Activate() error

	// Deactivate drives the line to its deasserted state.
	Deactivate() error
}

// Op identifies a line operation in errors and trace events.
type Op uint8

const (
	// OpActivate is a drive to the asserted state.
	OpActivate Op = 0
	// OpDeactivate is a drive to the deasserted state.
	OpDeactivate Op = 1
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpActivate:
		return "ACTIVATE"
	case OpDeactivate:
		return "DEACTIVATE"
	default:
		return "UNKNOWN"
	}
}

// OpFor returns the operation that drives a line to the given logical state.
func OpFor(asserted bool) Op {
	if asserted {
		return OpActivate
	}
	return OpDeactivate
}

// Apply drives l to the given logical state.
func Apply(l Line, asserted bool) error {
	if asserted {
		return l.Activate()
	}
	return l.Deactivate()
}

// Invert returns a view of l with the asserted and deasserted states
// swapped. Useful when a complementary chip input must follow the same
// logical signal.
func Invert(l Line) Line {
	if i, ok := l.(inverted); ok {
		return i.l
	}
	return inverted{l}
}

type inverted struct {
	l Line
}

func (i inverted) Activate() error   { return i.l.Deactivate() }
func (i inverted) Deactivate() error { return i.l.Activate() }
