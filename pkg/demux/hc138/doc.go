// Package hc138 drives 74HC138-class 3-to-8 line decoder/demultiplexers.
//
// The chip has three address inputs (A0..A2), one enable gate driven by
// this driver (G1) and two optional complementary gates (G2A, G2B). At
// most one of the eight outputs Y0..Y7 is active at a time; which one is
// decided by the address code while the chip is enabled.
//
// # Usage
//
//	chip := hc138.New(a0, a1, a2, g1)
//	y := chip.Split()
//
//	if err := y.Y3.Activate(); err != nil {
//	    // err names the failed line and operation
//	}
//	defer y.Y3.Deactivate()
//
// Split hands out one handle per output; all handles share the chip's
// arbitration state, so activating Y5 while Y3 is active simply moves
// the selection. Construction performs no hardware writes.
//
// On a real 74HC138 the enable gates and outputs are mixed polarity
// (G1 active-high, G2A/G2B and Y0..Y7 active-low). Lines are logical in
// muxkit; build each line with the matching line.Polarity in its backend
// and the driver stays polarity-free.
package hc138
