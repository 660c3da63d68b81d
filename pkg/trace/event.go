package trace

import (
	"time"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Event represents one hardware trace event emitted by a chip driver.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Device uniquely identifies the driver instance (UUID).
	Device string `cbor:"2,keyasint"`

	// Chip names the chip model (for example "hc138").
	Chip string `cbor:"3,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Kind-specific payload (exactly one of these is set).
	Write   *WriteEvent   `cbor:"5,keyasint,omitempty"` // KindWrite, KindFault
	Select  *SelectEvent  `cbor:"6,keyasint,omitempty"` // KindSelect
	Release *ReleaseEvent `cbor:"7,keyasint,omitempty"` // KindRelease
}

// Kind classifies a trace event.
type Kind uint8

const (
	// KindWrite indicates a successful line drive.
	KindWrite Kind = 0
	// KindFault indicates a failed line drive.
	KindFault Kind = 1
	// KindSelect indicates an output became active.
	KindSelect Kind = 2
	// KindRelease indicates an output was released.
	KindRelease Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWrite:
		return "WRITE"
	case KindFault:
		return "FAULT"
	case KindSelect:
		return "SELECT"
	case KindRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// WriteEvent captures a single line drive.
type WriteEvent struct {
	// Line is the role label of the driven input (for example "A1" or "G1").
	Line string `cbor:"1,keyasint"`

	// Op is the performed operation.
	Op line.Op `cbor:"2,keyasint"`

	// Error is the backend error text (KindFault only).
	Error string `cbor:"3,keyasint,omitempty"`
}

// SelectEvent captures an output becoming active.
type SelectEvent struct {
	// Output is the index of the now-active output.
	Output uint8 `cbor:"1,keyasint"`

	// Previous is the index of the output this selection displaced, if any.
	Previous *uint8 `cbor:"2,keyasint,omitempty"`
}

// ReleaseEvent captures an output being released.
type ReleaseEvent struct {
	// Output is the index of the released output.
	Output uint8 `cbor:"1,keyasint"`

	// Noop indicates the output was not active, so no lines were touched.
	Noop bool `cbor:"2,keyasint,omitempty"`
}
