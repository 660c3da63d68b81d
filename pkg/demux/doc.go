// Package demux implements address-based arbitration for demultiplexer
// chips: several mutually exclusive outputs driven through a small set of
// shared address and enable lines.
//
// The core type is Selector. It owns the chip's lines and the single
// mutable fact about the chip: which output, if any, is currently
// addressed and enabled. Output handles obtained from Split share one
// selector, so at most one output is ever active no matter which handle
// is used.
//
// # Activation
//
// Activating output K writes the binary code of K to the address lines
// (least significant bit to A0), asserts any auxiliary enable gates, then
// asserts the primary enable. The address is always complete before the
// chip is enabled, so no other output glitches active during selection.
// Activating one output while another is active is allowed and simply
// moves the selection; the previous output goes inactive as a consequence
// of the address change.
//
// Deactivating an output that is not the active one is a no-op and
// touches no lines. Deactivating the active output releases the primary
// enable only; the address lines keep their values.
//
// # Failures
//
// Line writes are single attempts. The first failed write aborts the
// operation and is returned as a *line.IOError naming the line and the
// attempted operation. The recorded selection keeps its pre-call value,
// but the chip itself may be left partially addressed; with the enable
// deasserted the safe recovery is simply to retry or to deactivate.
//
// # Concurrency
//
// A selector serializes all hardware access with an internal mutex, so
// handles may be used from multiple goroutines. Note that IsActive only
// reports a snapshot; another goroutine may move the selection at any
// time.
//
// # Chip packages
//
// Concrete chips wrap a Selector and fix the bundle type returned by
// Split: pkg/demux/hc138 (eight outputs) and pkg/demux/hc154 (sixteen).
// Output handles satisfy line.Line, so a chip output can drive a
// downstream chip's enable gate when decoders are cascaded.
package demux
