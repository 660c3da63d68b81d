// Package linetest provides fake lines for testing code that drives
// demultiplexer chips.
//
// A Recorder hands out named fake pins that share one monotonic write
// sequence, so tests can assert ordering across pins (for example that all
// address inputs are driven before the enable input). Pins track their
// logical state and support scripted failures.
package linetest

import (
	"sync"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Write is one successful drive of a fake pin.
type Write struct {
	// Seq is the position in the recorder's global order, starting at 0.
	Seq int

	// Pin is the pin name.
	Pin string

	// Op is the performed operation.
	Op line.Op
}

// Recorder mints fake pins and records their drives in one global order.
type Recorder struct {
	mu     sync.Mutex
	seq    int
	pins   map[string]*Pin
	writes []Write
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		pins: make(map[string]*Pin),
	}
}

// Pin returns the fake pin with the given name, creating it on first use.
func (r *Recorder) Pin(name string) *Pin {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pins[name]; ok {
		return p
	}
	p := &Pin{rec: r, name: name}
	r.pins[name] = p
	return p
}

// Line returns the fake pin with the given name as a line.Line. The pin
// number and polarity are accepted for board profile compatibility and
// ignored; fake pins are purely logical.
func (r *Recorder) Line(name string, number uint32, polarity line.Polarity) (line.Line, error) {
	return r.Pin(name), nil
}

// Writes returns a copy of all recorded drives in order.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// WriteCount returns the number of recorded drives.
func (r *Recorder) WriteCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

// Reset discards the recorded drives and restarts the sequence at 0.
// Pin states and scheduled failures are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq = 0
	r.writes = nil
	for _, p := range r.pins {
		p.history = nil
		p.writes = 0
	}
}

// record appends a successful drive. Caller holds r.mu.
func (r *Recorder) record(p *Pin, op line.Op) {
	r.writes = append(r.writes, Write{Seq: r.seq, Pin: p.name, Op: op})
	r.seq++
	p.history = append(p.history, op)
	p.writes++
}
