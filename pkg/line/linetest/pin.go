package linetest

import (
	"github.com/muxkit/muxkit-go/pkg/line"
)

// Pin is a fake digital output line. All state is guarded by the owning
// recorder's lock, so pins minted from one recorder are safe to drive from
// multiple goroutines.
type Pin struct {
	rec  *Recorder
	name string

	// Guarded by rec.mu.
	asserted bool
	history  []line.Op
	writes   int
	failNext []error
	failOn   map[line.Op]error
}

// Compile-time interface satisfaction check.
var _ line.Line = (*Pin)(nil)

// New creates a standalone fake pin with its own recorder.
func New(name string) *Pin {
	return NewRecorder().Pin(name)
}

// Name returns the pin name.
func (p *Pin) Name() string {
	return p.name
}

// Activate drives the pin to its asserted state.
func (p *Pin) Activate() error {
	return p.drive(line.OpActivate)
}

// Deactivate drives the pin to its deasserted state.
func (p *Pin) Deactivate() error {
	return p.drive(line.OpDeactivate)
}

func (p *Pin) drive(op line.Op) error {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()

	if err := p.takeFailure(op); err != nil {
		return err
	}

	p.asserted = op == line.OpActivate
	p.rec.record(p, op)
	return nil
}

// takeFailure consumes the next scheduled failure, if any. Caller holds
// the recorder lock.
func (p *Pin) takeFailure(op line.Op) error {
	if len(p.failNext) > 0 {
		err := p.failNext[0]
		p.failNext = p.failNext[1:]
		return err
	}
	if err, ok := p.failOn[op]; ok {
		return err
	}
	return nil
}

// Asserted returns the pin's logical state.
func (p *Pin) Asserted() bool {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	return p.asserted
}

// Writes returns the number of successful drives of this pin.
func (p *Pin) Writes() int {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	return p.writes
}

// History returns a copy of the successful drives of this pin in order.
func (p *Pin) History() []line.Op {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()

	out := make([]line.Op, len(p.history))
	copy(out, p.history)
	return out
}

// FailNext schedules err for the next drive of the pin. Scheduled failures
// are consumed in order before any FailOn rule applies. A failed drive
// leaves the pin state unchanged and records nothing.
func (p *Pin) FailNext(err error) {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	p.failNext = append(p.failNext, err)
}

// FailOn makes every drive performing op fail with err until ClearFailures.
func (p *Pin) FailOn(op line.Op, err error) {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()

	if p.failOn == nil {
		p.failOn = make(map[line.Op]error)
	}
	p.failOn[op] = err
}

// ClearFailures removes all scheduled and standing failures.
func (p *Pin) ClearFailures() {
	p.rec.mu.Lock()
	defer p.rec.mu.Unlock()
	p.failNext = nil
	p.failOn = nil
}
