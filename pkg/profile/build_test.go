package profile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/muxkit/muxkit-go/pkg/line"
	"github.com/muxkit/muxkit-go/pkg/line/linetest"
	"github.com/muxkit/muxkit-go/pkg/profile"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

func benchProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.Parse([]byte(benchYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return p
}

func TestBuildHC138(t *testing.T) {
	p := benchProfile(t)
	rec := linetest.NewRecorder()

	b, err := profile.Build(p, rec, trace.NoopLogger{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if b.Name() != "bench-board" {
		t.Errorf("Name() = %q", b.Name())
	}
	if b.Chip() != profile.ChipHC138 {
		t.Errorf("Chip() = %q", b.Chip())
	}
	if got := len(b.Outputs()); got != 8 {
		t.Fatalf("len(Outputs()) = %d, want 8", got)
	}
	if rec.WriteCount() != 0 {
		t.Errorf("Build performed %d writes, want 0", rec.WriteCount())
	}

	out, err := b.Output(3)
	if err != nil {
		t.Fatalf("Output(3): %v", err)
	}
	if err := out.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	// Roles become pin names in upper case, and the listed g2a gate is
	// driven as part of the activation.
	if !rec.Pin("A0").Asserted() || !rec.Pin("A1").Asserted() {
		t.Error("expected A0 and A1 asserted for code 3")
	}
	if rec.Pin("A2").Asserted() {
		t.Error("expected A2 deasserted for code 3")
	}
	if !rec.Pin("G2A").Asserted() {
		t.Error("expected G2A asserted")
	}
	if !rec.Pin("G1").Asserted() {
		t.Error("expected G1 asserted")
	}
}

func TestBuildHC154(t *testing.T) {
	p, err := profile.Parse([]byte(`
name: wide-board
chip: hc154
backend: sim
lines:
  a0: {pin: 0}
  a1: {pin: 1}
  a2: {pin: 2}
  a3: {pin: 3}
  e0: {pin: 4}
  e1: {pin: 5, active: low}
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rec := linetest.NewRecorder()
	b, err := profile.Build(p, rec, trace.NoopLogger{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := len(b.Outputs()); got != 16 {
		t.Fatalf("len(Outputs()) = %d, want 16", got)
	}

	out, _ := b.Output(15)
	if err := out.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !rec.Pin("E1").Asserted() {
		t.Error("expected E1 asserted")
	}
	if !rec.Pin("E0").Asserted() {
		t.Error("expected E0 asserted")
	}
}

func TestOutputRange(t *testing.T) {
	b, err := profile.Build(benchProfile(t), linetest.NewRecorder(), trace.NoopLogger{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, k := range []int{-1, 8, 100} {
		if _, err := b.Output(k); !errors.Is(err, profile.ErrOutputRange) {
			t.Errorf("Output(%d) error = %v, want ErrOutputRange", k, err)
		}
	}
}

type failSource struct{}

func (failSource) Line(string, uint32, line.Polarity) (line.Line, error) {
	return nil, errors.New("pin reserved")
}

func TestBuildSourceFailure(t *testing.T) {
	_, err := profile.Build(benchProfile(t), failSource{}, trace.NoopLogger{})
	if err == nil {
		t.Fatal("expected error from failing source")
	}
	if !strings.Contains(err.Error(), `"a0"`) {
		t.Errorf("error %q does not name the failing role", err)
	}
}

func TestOpenSim(t *testing.T) {
	p := benchProfile(t)

	b, err := profile.Open(p, trace.NoopLogger{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	out, err := b.Output(0)
	if err != nil {
		t.Fatalf("Output(0): %v", err)
	}
	if err := out.Activate(); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !out.IsActive() {
		t.Error("expected output 0 active")
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
