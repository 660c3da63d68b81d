package demux

// Demultiplexer is the capability offered by every muxkit chip driver:
// exchanging the one-piece device for its full set of output handles.
// Each chip fixes its own bundle type O, named after the part's output
// pins.
type Demultiplexer[O any] interface {
	// Split returns the chip's output handles. All handles share one
	// arbitration state; repeated calls return the same handles.
	Split() O
}
