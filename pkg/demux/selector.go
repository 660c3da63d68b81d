package demux

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// none is the selected value while no output is addressed and enabled.
const none = -1

// Config holds optional selector configuration. The zero value selects
// defaults for every field.
type Config struct {
	// DeviceID identifies this driver instance in trace events.
	// Defaults to a random UUID.
	DeviceID string

	// Chip names the chip model for trace events (for example "hc138").
	Chip string

	// Labels names the lines in errors and trace events.
	Labels Labels

	// Aux holds additional enable gates. They are asserted after the
	// address lines and before the primary enable during activation,
	// and left untouched during deactivation.
	Aux []line.Line

	// Tracer receives hardware trace events. Defaults to trace.NoopLogger.
	Tracer trace.Logger
}

// Labels names a selector's lines for errors and trace events.
// Missing entries fall back to A0..An, G1 and G2A, G2B, ...
type Labels struct {
	// Address labels the address lines, least significant first.
	Address []string

	// Enable labels the primary enable line.
	Enable string

	// Aux labels the auxiliary enable gates.
	Aux []string
}

// Selector owns a demultiplexer's lines and arbitrates its outputs.
//
// The number of outputs is 2^w for w address lines (one to eight lines).
// Construction performs no hardware writes; the chip's real state is
// unknown until the first activation, and the selector conservatively
// starts with no recorded selection.
type Selector struct {
	mu sync.Mutex

	id   string
	chip string

	addr       []line.Line
	addrLabels []string

	enable      line.Line
	enableLabel string

	aux       []line.Line
	auxLabels []string

	tracer trace.Logger

	// Index of the output that is addressed and enabled, or none.
	selected int

	splitOnce sync.Once
	outputs   []*Output
}

// Compile-time interface satisfaction check.
var _ Demultiplexer[[]*Output] = (*Selector)(nil)

// NewSelector creates a selector over the given address lines (least
// significant first) and primary enable line. All lines must be non-nil.
// No hardware writes happen here and construction cannot fail.
func NewSelector(addr []line.Line, enable line.Line, cfg Config) *Selector {
	s := &Selector{
		id:          cfg.DeviceID,
		chip:        cfg.Chip,
		addr:        make([]line.Line, len(addr)),
		enable:      enable,
		enableLabel: cfg.Labels.Enable,
		tracer:      cfg.Tracer,
		selected:    none,
	}
	copy(s.addr, addr)

	if len(cfg.Aux) > 0 {
		s.aux = make([]line.Line, len(cfg.Aux))
		copy(s.aux, cfg.Aux)
	}

	if s.id == "" {
		s.id = uuid.New().String()
	}
	if s.tracer == nil {
		s.tracer = trace.NoopLogger{}
	}
	if s.enableLabel == "" {
		s.enableLabel = "G1"
	}

	s.addrLabels = make([]string, len(s.addr))
	for i := range s.addr {
		if i < len(cfg.Labels.Address) && cfg.Labels.Address[i] != "" {
			s.addrLabels[i] = cfg.Labels.Address[i]
			continue
		}
		s.addrLabels[i] = "A" + strconv.Itoa(i)
	}

	s.auxLabels = make([]string, len(s.aux))
	for i := range s.aux {
		if i < len(cfg.Labels.Aux) && cfg.Labels.Aux[i] != "" {
			s.auxLabels[i] = cfg.Labels.Aux[i]
			continue
		}
		s.auxLabels[i] = "G2" + string(rune('A'+i))
	}

	return s
}

// ID returns the device ID used in trace events.
func (s *Selector) ID() string {
	return s.id
}

// Chip returns the chip model name, if configured.
func (s *Selector) Chip() string {
	return s.chip
}

// Width returns the number of address lines.
func (s *Selector) Width() int {
	return len(s.addr)
}

// OutputCount returns the number of outputs (2^Width).
func (s *Selector) OutputCount() int {
	return 1 << len(s.addr)
}

// Split returns the selector's output handles, indexed 0..OutputCount-1.
// The handles are created once; repeated calls return the same handles.
func (s *Selector) Split() []*Output {
	s.splitOnce.Do(func() {
		s.outputs = make([]*Output, s.OutputCount())
		for k := range s.outputs {
			s.outputs[k] = &Output{
				sel:   s,
				index: k,
				label: "Y" + strconv.Itoa(k),
			}
		}
	})

	out := make([]*Output, len(s.outputs))
	copy(out, s.outputs)
	return out
}

// Selected returns the index of the output that is addressed and enabled.
// The second return is false while the chip is disabled.
func (s *Selector) Selected() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == none {
		return 0, false
	}
	return s.selected, true
}

// activate addresses output k and enables the chip.
func (s *Selector) activate(k int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Address first; the enable is only asserted once the code is complete.
	for i, al := range s.addr {
		bit := k&(1<<i) != 0
		if err := s.drive(al, s.addrLabels[i], line.OpFor(bit)); err != nil {
			return err
		}
	}
	for i, ax := range s.aux {
		if err := s.drive(ax, s.auxLabels[i], line.OpActivate); err != nil {
			return err
		}
	}
	if err := s.drive(s.enable, s.enableLabel, line.OpActivate); err != nil {
		return err
	}

	prev := s.selected
	s.selected = k
	s.traceSelect(k, prev)
	return nil
}

// deactivate releases output k. Releasing an output that is not the
// active one succeeds without touching any line.
func (s *Selector) deactivate(k int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected != k {
		s.traceRelease(k, true)
		return nil
	}

	if err := s.drive(s.enable, s.enableLabel, line.OpDeactivate); err != nil {
		return err
	}

	s.selected = none
	s.traceRelease(k, false)
	return nil
}

// isActive reports whether output k is addressed and enabled.
func (s *Selector) isActive(k int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected == k
}

// drive performs one line write and wraps failures. Caller holds s.mu.
func (s *Selector) drive(l line.Line, label string, op line.Op) error {
	if err := line.Apply(l, op == line.OpActivate); err != nil {
		s.tracer.Log(trace.Event{
			Timestamp: time.Now(),
			Device:    s.id,
			Chip:      s.chip,
			Kind:      trace.KindFault,
			Write:     &trace.WriteEvent{Line: label, Op: op, Error: err.Error()},
		})
		return &line.IOError{Line: label, Op: op, Err: err}
	}

	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		Device:    s.id,
		Chip:      s.chip,
		Kind:      trace.KindWrite,
		Write:     &trace.WriteEvent{Line: label, Op: op},
	})
	return nil
}

func (s *Selector) traceSelect(k, prev int) {
	ev := &trace.SelectEvent{Output: uint8(k)}
	if prev != none {
		p := uint8(prev)
		ev.Previous = &p
	}
	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		Device:    s.id,
		Chip:      s.chip,
		Kind:      trace.KindSelect,
		Select:    ev,
	})
}

func (s *Selector) traceRelease(k int, noop bool) {
	s.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		Device:    s.id,
		Chip:      s.chip,
		Kind:      trace.KindRelease,
		Release:   &trace.ReleaseEvent{Output: uint8(k), Noop: noop},
	})
}
