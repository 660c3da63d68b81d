// Package trace provides structured hardware event capture for muxkit.
//
// This package defines the Logger interface and Event types for recording
// what a chip driver does to its lines: individual line writes, write
// faults, and output select/release transitions. It is separate from
// operational logging (slog) - the trace is a complete machine-readable
// record of hardware activity for debugging and analysis.
//
// # Basic Usage
//
// Drivers accept a Logger in their configuration:
//
//	// For development: print events to console via slog
//	cfg.Tracer = trace.NewSlogAdapter(slog.Default())
//
//	// For bench captures: write to binary file
//	cfg.Tracer, _ = trace.NewFileLogger("capture.mtrace")
//
//	// Both: use MultiLogger
//	cfg.Tracer = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Kinds
//
// Each event carries exactly one payload:
//   - KindWrite: a successful line drive (WriteEvent)
//   - KindFault: a failed line drive (WriteEvent with Error set)
//   - KindSelect: an output became active (SelectEvent)
//   - KindRelease: an output was released (ReleaseEvent)
//
// # File Format
//
// Trace files use CBOR encoding with .mtrace extension. The muxkit-trace
// CLI tool provides viewing, filtering, export and statistics.
package trace
