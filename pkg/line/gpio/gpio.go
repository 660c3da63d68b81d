package gpio

import "errors"

// Backend errors.
var (
	// ErrUnsupported reports that a backend is not available on this
	// platform.
	ErrUnsupported = errors.New("gpio backend not supported on this platform")

	// ErrClosed reports a mint attempt on a closed source.
	ErrClosed = errors.New("gpio source closed")
)
