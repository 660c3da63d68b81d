package demux_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/muxkit/muxkit-go/pkg/demux"
	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/line/linetest"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// newBench builds a three-line selector on fake pins A0..A2 and G1.
func newBench(cfg demux.Config) (*demux.Selector, *linetest.Recorder) {
	rec := linetest.NewRecorder()
	addr := []line.Line{rec.Pin("A0"), rec.Pin("A1"), rec.Pin("A2")}
	return demux.NewSelector(addr, rec.Pin("G1"), cfg), rec
}

func TestConstructionTouchesNoLines(t *testing.T) {
	_, rec := newBench(demux.Config{})
	if rec.WriteCount() != 0 {
		t.Errorf("construction performed %d writes, want 0", rec.WriteCount())
	}
}

func TestDimensions(t *testing.T) {
	cases := []struct {
		width   int
		outputs int
	}{
		{1, 2},
		{2, 4},
		{3, 8},
		{4, 16},
	}

	for _, tc := range cases {
		rec := linetest.NewRecorder()
		addr := make([]line.Line, tc.width)
		for i := range addr {
			addr[i] = rec.Pin("A" + string(rune('0'+i)))
		}
		s := demux.NewSelector(addr, rec.Pin("G1"), demux.Config{})

		if s.Width() != tc.width {
			t.Errorf("width %d: Width() = %d", tc.width, s.Width())
		}
		if s.OutputCount() != tc.outputs {
			t.Errorf("width %d: OutputCount() = %d, want %d", tc.width, s.OutputCount(), tc.outputs)
		}
		if got := len(s.Split()); got != tc.outputs {
			t.Errorf("width %d: len(Split()) = %d, want %d", tc.width, got, tc.outputs)
		}
	}
}

func TestSplitReturnsSameHandles(t *testing.T) {
	s, _ := newBench(demux.Config{})

	first := s.Split()
	second := s.Split()

	if len(first) != len(second) {
		t.Fatalf("bundle sizes differ: %d vs %d", len(first), len(second))
	}
	for k := range first {
		if first[k] != second[k] {
			t.Errorf("output %d: repeated Split returned a different handle", k)
		}
	}
}

func TestActivateSetsAddressCode(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	if err := outs[3].Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() {
		t.Error("expected A0 and A1 asserted for code 3")
	}
	if rec.Pin("A2").Asserted() {
		t.Error("expected A2 deasserted for code 3")
	}
	if !rec.Pin("G1").Asserted() {
		t.Error("expected G1 asserted")
	}
}

func TestActivateAddressesBeforeEnable(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	if err := outs[5].Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	want := []linetest.Write{
		{Seq: 0, Pin: "A0", Op: line.OpActivate},
		{Seq: 1, Pin: "A1", Op: line.OpDeactivate},
		{Seq: 2, Pin: "A2", Op: line.OpActivate},
		{Seq: 3, Pin: "G1", Op: line.OpActivate},
	}
	got := rec.Writes()
	if len(got) != len(want) {
		t.Fatalf("expected %d writes, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("write %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMutualExclusion(t *testing.T) {
	s, _ := newBench(demux.Config{})
	outs := s.Split()

	for _, k := range []int{2, 7, 0} {
		if err := outs[k].Activate(); err != nil {
			t.Fatalf("Activate(%d) failed: %v", k, err)
		}

		active := 0
		for j, o := range outs {
			if o.IsActive() {
				active++
				if j != k {
					t.Errorf("output %d active, want only %d", j, k)
				}
			}
		}
		if active != 1 {
			t.Errorf("%d outputs active after Activate(%d), want 1", active, k)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	if err := outs[6].Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !outs[6].IsActive() {
		t.Fatal("expected output 6 active")
	}

	if err := outs[6].Deactivate(); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if outs[6].IsActive() {
		t.Error("expected output 6 inactive")
	}
	if rec.Pin("G1").Asserted() {
		t.Error("expected G1 deasserted")
	}
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection")
	}

	// The selector is reusable after a full cycle.
	if err := outs[6].Activate(); err != nil {
		t.Fatalf("re-Activate failed: %v", err)
	}
	if !outs[6].IsActive() {
		t.Error("expected output 6 active again")
	}
}

func TestDeactivateWhileInactiveTouchesNothing(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	t.Run("WhileDisabled", func(t *testing.T) {
		if err := outs[4].Deactivate(); err != nil {
			t.Fatalf("Deactivate failed: %v", err)
		}
		if rec.WriteCount() != 0 {
			t.Errorf("expected 0 writes, got %d", rec.WriteCount())
		}
	})

	t.Run("WhileAnotherActive", func(t *testing.T) {
		if err := outs[2].Activate(); err != nil {
			t.Fatalf("Activate failed: %v", err)
		}
		before := rec.WriteCount()

		if err := outs[4].Deactivate(); err != nil {
			t.Fatalf("Deactivate failed: %v", err)
		}
		if rec.WriteCount() != before {
			t.Error("deactivating an inactive output must not write")
		}
		if !outs[2].IsActive() {
			t.Error("active output must stay active")
		}
	})
}

func TestDeactivateKeepsAddress(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	if err := outs[3].Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	before := rec.WriteCount()

	if err := outs[3].Deactivate(); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if got := rec.WriteCount() - before; got != 1 {
		t.Errorf("deactivate performed %d writes, want 1 (enable only)", got)
	}
	if rec.Pin("G1").Asserted() {
		t.Error("expected G1 deasserted")
	}
	// Address lines keep code 3; a disabled chip drives no output.
	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() || rec.Pin("A2").Asserted() {
		t.Error("expected address lines unchanged")
	}
}

func TestSelectionMove(t *testing.T) {
	s, _ := newBench(demux.Config{})
	outs := s.Split()

	if err := outs[3].Activate(); err != nil {
		t.Fatalf("Activate(3) failed: %v", err)
	}
	if err := outs[5].Activate(); err != nil {
		t.Fatalf("Activate(5) while 3 active failed: %v", err)
	}

	if outs[3].IsActive() {
		t.Error("displaced output still reports active")
	}
	if !outs[5].IsActive() {
		t.Error("expected output 5 active")
	}
	if k, ok := s.Selected(); !ok || k != 5 {
		t.Errorf("Selected() = %d, %v; want 5, true", k, ok)
	}
}

func TestActivateFailure(t *testing.T) {
	t.Run("AddressLineFault", func(t *testing.T) {
		s, rec := newBench(demux.Config{})
		outs := s.Split()
		boom := errors.New("bus stuck")
		rec.Pin("A1").FailNext(boom)

		err := outs[3].Activate()
		if err == nil {
			t.Fatal("expected error")
		}

		var ioErr *line.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *line.IOError, got %T", err)
		}
		if ioErr.Line != "A1" || ioErr.Op != line.OpActivate {
			t.Errorf("wrong identification: %+v", ioErr)
		}
		if !errors.Is(err, boom) {
			t.Error("expected the backend cause to be wrapped")
		}

		if rec.Pin("G1").Writes() != 0 {
			t.Error("enable must not be touched after an address fault")
		}
		if _, ok := s.Selected(); ok {
			t.Error("selection must be unchanged after a fault")
		}
	})

	t.Run("EnableFault", func(t *testing.T) {
		s, rec := newBench(demux.Config{})
		outs := s.Split()
		rec.Pin("G1").FailNext(errors.New("bus stuck"))

		err := outs[3].Activate()
		var ioErr *line.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *line.IOError, got %v", err)
		}
		if ioErr.Line != "G1" {
			t.Errorf("wrong line: %q", ioErr.Line)
		}
		if _, ok := s.Selected(); ok {
			t.Error("selection must be unchanged after an enable fault")
		}
	})

	t.Run("KeepsPreviousSelection", func(t *testing.T) {
		s, rec := newBench(demux.Config{})
		outs := s.Split()

		if err := outs[2].Activate(); err != nil {
			t.Fatalf("Activate(2) failed: %v", err)
		}
		rec.Pin("A2").FailNext(errors.New("bus stuck"))

		if err := outs[7].Activate(); err == nil {
			t.Fatal("expected error")
		}

		// The recorded selection still names output 2 even though the
		// chip's address lines were partially rewritten.
		if k, ok := s.Selected(); !ok || k != 2 {
			t.Errorf("Selected() = %d, %v; want 2, true", k, ok)
		}
	})

	t.Run("DeactivateFault", func(t *testing.T) {
		s, rec := newBench(demux.Config{})
		outs := s.Split()

		if err := outs[1].Activate(); err != nil {
			t.Fatalf("Activate failed: %v", err)
		}
		rec.Pin("G1").FailNext(errors.New("bus stuck"))

		err := outs[1].Deactivate()
		var ioErr *line.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("expected *line.IOError, got %v", err)
		}
		if ioErr.Op != line.OpDeactivate {
			t.Errorf("wrong op: %v", ioErr.Op)
		}
		if !outs[1].IsActive() {
			t.Error("selection must be unchanged after a release fault")
		}
	})
}

func TestSelectionScenario(t *testing.T) {
	s, rec := newBench(demux.Config{})
	outs := s.Split()

	// Select output 3: address code (1,1,0), then enable.
	if err := outs[3].Activate(); err != nil {
		t.Fatalf("Activate(3) failed: %v", err)
	}
	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() || rec.Pin("A2").Asserted() {
		t.Error("wrong address code for 3")
	}
	if !rec.Pin("G1").Asserted() {
		t.Error("expected chip enabled")
	}

	// Release output 3: enable drops, address stays.
	if err := outs[3].Deactivate(); err != nil {
		t.Fatalf("Deactivate(3) failed: %v", err)
	}
	if rec.Pin("G1").Asserted() {
		t.Error("expected chip disabled")
	}
	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() || rec.Pin("A2").Asserted() {
		t.Error("address must be unchanged by release")
	}

	// Select output 5: address code (1,0,1), then enable.
	if err := outs[5].Activate(); err != nil {
		t.Fatalf("Activate(5) failed: %v", err)
	}
	if !rec.Pin("A0").Asserted() || rec.Pin("A1").Asserted() || !rec.Pin("A2").Asserted() {
		t.Error("wrong address code for 5")
	}
	if !rec.Pin("G1").Asserted() {
		t.Error("expected chip enabled")
	}
}

func TestAuxGatesOrder(t *testing.T) {
	rec := linetest.NewRecorder()
	addr := []line.Line{rec.Pin("A0"), rec.Pin("A1"), rec.Pin("A2")}
	s := demux.NewSelector(addr, rec.Pin("G1"), demux.Config{
		Aux: []line.Line{rec.Pin("G2A"), rec.Pin("G2B")},
	})
	outs := s.Split()

	if err := outs[0].Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	writes := rec.Writes()
	if len(writes) != 6 {
		t.Fatalf("expected 6 writes, got %d", len(writes))
	}
	order := []string{"A0", "A1", "A2", "G2A", "G2B", "G1"}
	for i, name := range order {
		if writes[i].Pin != name {
			t.Errorf("write %d on %s, want %s", i, writes[i].Pin, name)
		}
	}

	// Release touches only the primary enable.
	if err := outs[0].Deactivate(); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if rec.Pin("G2A").Writes() != 1 || rec.Pin("G2B").Writes() != 1 {
		t.Error("aux gates must not be touched by release")
	}
	if !rec.Pin("G2A").Asserted() {
		t.Error("aux gate state must be unchanged by release")
	}
}

func TestCustomLabels(t *testing.T) {
	rec := linetest.NewRecorder()
	addr := []line.Line{rec.Pin("s0"), rec.Pin("s1")}
	en := rec.Pin("en")
	s := demux.NewSelector(addr, en, demux.Config{
		Labels: demux.Labels{Address: []string{"S0", "S1"}, Enable: "E"},
	})
	outs := s.Split()

	en.FailNext(errors.New("bus stuck"))
	err := outs[1].Activate()

	var ioErr *line.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *line.IOError, got %v", err)
	}
	if ioErr.Line != "E" {
		t.Errorf("expected custom enable label, got %q", ioErr.Line)
	}
}

// captureTracer collects trace events for assertions.
type captureTracer struct {
	mu     sync.Mutex
	events []trace.Event
}

func (c *captureTracer) Log(event trace.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureTracer) all() []trace.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]trace.Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestTraceEvents(t *testing.T) {
	tracer := &captureTracer{}
	s, _ := newBench(demux.Config{DeviceID: "dev-test", Chip: "hc138", Tracer: tracer})
	outs := s.Split()

	if err := outs[3].Activate(); err != nil {
		t.Fatalf("Activate(3) failed: %v", err)
	}
	if err := outs[5].Activate(); err != nil {
		t.Fatalf("Activate(5) failed: %v", err)
	}
	if err := outs[3].Deactivate(); err != nil {
		t.Fatalf("Deactivate(3) failed: %v", err)
	}
	if err := outs[5].Deactivate(); err != nil {
		t.Fatalf("Deactivate(5) failed: %v", err)
	}

	events := tracer.all()
	wantKinds := []trace.Kind{
		// Activate(3): three address writes, enable write, selection.
		trace.KindWrite, trace.KindWrite, trace.KindWrite, trace.KindWrite, trace.KindSelect,
		// Activate(5): same shape, displacing 3.
		trace.KindWrite, trace.KindWrite, trace.KindWrite, trace.KindWrite, trace.KindSelect,
		// Deactivate(3): no-op release.
		trace.KindRelease,
		// Deactivate(5): enable write, release.
		trace.KindWrite, trace.KindRelease,
	}
	if len(events) != len(wantKinds) {
		t.Fatalf("expected %d events, got %d", len(wantKinds), len(events))
	}
	for i, want := range wantKinds {
		if events[i].Kind != want {
			t.Errorf("event %d kind = %v, want %v", i, events[i].Kind, want)
		}
		if events[i].Device != "dev-test" || events[i].Chip != "hc138" {
			t.Errorf("event %d identity = %q/%q", i, events[i].Device, events[i].Chip)
		}
	}

	t.Run("SelectPayloads", func(t *testing.T) {
		first := events[4].Select
		if first == nil || first.Output != 3 || first.Previous != nil {
			t.Errorf("first selection payload: %+v", first)
		}
		second := events[9].Select
		if second == nil || second.Output != 5 {
			t.Fatalf("second selection payload: %+v", second)
		}
		if second.Previous == nil || *second.Previous != 3 {
			t.Errorf("expected displaced output 3, got %v", second.Previous)
		}
	})

	t.Run("ReleasePayloads", func(t *testing.T) {
		noop := events[10].Release
		if noop == nil || noop.Output != 3 || !noop.Noop {
			t.Errorf("no-op release payload: %+v", noop)
		}
		rel := events[12].Release
		if rel == nil || rel.Output != 5 || rel.Noop {
			t.Errorf("release payload: %+v", rel)
		}
	})
}

func TestConcurrentUse(t *testing.T) {
	s, _ := newBench(demux.Config{})
	outs := s.Split()

	var wg sync.WaitGroup
	for k := range outs {
		wg.Add(1)
		go func(o *demux.Output) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if err := o.Activate(); err != nil {
					t.Errorf("Activate: %v", err)
					return
				}
				_ = o.IsActive()
				if err := o.Deactivate(); err != nil {
					t.Errorf("Deactivate: %v", err)
					return
				}
			}
		}(outs[k])
	}
	wg.Wait()

	active := 0
	for _, o := range outs {
		if o.IsActive() {
			active++
		}
	}
	if active > 1 {
		t.Errorf("%d outputs active after concurrent use, want at most 1", active)
	}
}
