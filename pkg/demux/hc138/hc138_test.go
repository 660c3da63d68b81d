package hc138_test

import (
	"errors"
	"testing"

	"github.com/muxkit/muxkit-go/pkg/demux/hc138"
	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/line/linetest"
)

// newChip builds a driver on fake pins named after the chip inputs.
func newChip(cfg hc138.Config) (*hc138.Chip, *linetest.Recorder) {
	rec := linetest.NewRecorder()
	chip := hc138.NewWithConfig(
		rec.Pin("A0"), rec.Pin("A1"), rec.Pin("A2"), rec.Pin("G1"), cfg)
	return chip, rec
}

func TestNewPerformsNoWrites(t *testing.T) {
	_, rec := newChip(hc138.Config{})
	if rec.WriteCount() != 0 {
		t.Errorf("construction performed %d writes, want 0", rec.WriteCount())
	}
}

func TestSplitBundle(t *testing.T) {
	chip, _ := newChip(hc138.Config{})
	y := chip.Split()

	all := y.All()
	if len(all) != hc138.OutputCount {
		t.Fatalf("expected %d handles, got %d", hc138.OutputCount, len(all))
	}
	for k, o := range all {
		if o == nil {
			t.Fatalf("handle %d is nil", k)
		}
		if o.Index() != k {
			t.Errorf("handle %d has index %d", k, o.Index())
		}
	}

	// Named fields and index order agree.
	if y.Y0 != all[0] || y.Y5 != all[5] || y.Y7 != all[7] {
		t.Error("named handles disagree with index order")
	}

	// Split again: same handles.
	again := chip.Split()
	if again.Y3 != y.Y3 {
		t.Error("repeated Split returned a different handle")
	}
}

func TestSelectReleaseSelect(t *testing.T) {
	chip, rec := newChip(hc138.Config{})
	y := chip.Split()

	if err := y.Y3.Activate(); err != nil {
		t.Fatalf("Activate(Y3) failed: %v", err)
	}
	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() || rec.Pin("A2").Asserted() {
		t.Error("wrong address code for Y3")
	}
	if !rec.Pin("G1").Asserted() {
		t.Error("expected G1 asserted")
	}
	if !y.Y3.IsActive() || y.Y4.IsActive() {
		t.Error("expected exactly Y3 active")
	}

	if err := y.Y3.Deactivate(); err != nil {
		t.Fatalf("Deactivate(Y3) failed: %v", err)
	}
	if rec.Pin("G1").Asserted() {
		t.Error("expected G1 released")
	}

	if err := y.Y5.Activate(); err != nil {
		t.Fatalf("Activate(Y5) failed: %v", err)
	}
	if !rec.Pin("A0").Asserted() || rec.Pin("A1").Asserted() || !rec.Pin("A2").Asserted() {
		t.Error("wrong address code for Y5")
	}
	if !y.Y5.IsActive() {
		t.Error("expected Y5 active")
	}
}

func TestComplementaryGates(t *testing.T) {
	rec := linetest.NewRecorder()
	chip := hc138.NewWithConfig(
		rec.Pin("A0"), rec.Pin("A1"), rec.Pin("A2"), rec.Pin("G1"),
		hc138.Config{G2A: rec.Pin("G2A"), G2B: rec.Pin("G2B")})
	y := chip.Split()

	if err := y.Y1.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	writes := rec.Writes()
	order := []string{"A0", "A1", "A2", "G2A", "G2B", "G1"}
	if len(writes) != len(order) {
		t.Fatalf("expected %d writes, got %d", len(order), len(writes))
	}
	for i, name := range order {
		if writes[i].Pin != name {
			t.Errorf("write %d on %s, want %s", i, writes[i].Pin, name)
		}
	}
	if !rec.Pin("G2A").Asserted() || !rec.Pin("G2B").Asserted() {
		t.Error("expected both complementary gates asserted")
	}

	// Release drops G1 only; the complementary gates stay asserted.
	if err := y.Y1.Deactivate(); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if rec.Pin("G1").Asserted() {
		t.Error("expected G1 released")
	}
	if !rec.Pin("G2A").Asserted() || !rec.Pin("G2B").Asserted() {
		t.Error("complementary gates must not be touched by release")
	}
}

func TestGateFaultIdentifiesLine(t *testing.T) {
	rec := linetest.NewRecorder()
	chip := hc138.NewWithConfig(
		rec.Pin("A0"), rec.Pin("A1"), rec.Pin("A2"), rec.Pin("G1"),
		hc138.Config{G2A: rec.Pin("G2A")})
	y := chip.Split()

	rec.Pin("G2A").FailNext(errors.New("bus stuck"))

	err := y.Y6.Activate()
	var ioErr *line.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *line.IOError, got %v", err)
	}
	if ioErr.Line != "G2A" {
		t.Errorf("expected line G2A, got %q", ioErr.Line)
	}
	if rec.Pin("G1").Writes() != 0 {
		t.Error("G1 must not be touched after a gate fault")
	}
	if y.Y6.IsActive() {
		t.Error("no selection after a failed activation")
	}
}

func TestDeviceIdentity(t *testing.T) {
	chip, _ := newChip(hc138.Config{DeviceID: "bench-1"})
	if chip.Selector().ID() != "bench-1" {
		t.Errorf("ID() = %q, want bench-1", chip.Selector().ID())
	}
	if chip.Selector().Chip() != "hc138" {
		t.Errorf("Chip() = %q, want hc138", chip.Selector().Chip())
	}

	other, _ := newChip(hc138.Config{})
	if other.Selector().ID() == "" {
		t.Error("expected a generated device ID")
	}
}
