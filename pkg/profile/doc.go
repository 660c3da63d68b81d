// Package profile loads board profiles: YAML files that describe which
// demultiplexer chip is wired to which pins on which backend, so tools
// can bring a board up without hardcoding the wiring.
//
// A profile names the chip (hc138, hc154), the line backend (sim, rpio,
// cdev, serial) and the pin each chip input sits on, keyed by the part's
// input name in lower case:
//
//	name: bench-board
//	chip: hc138
//	backend: cdev
//	chardev:
//	  chip: gpiochip0
//	lines:
//	  a0: {pin: 17}
//	  a1: {pin: 27}
//	  a2: {pin: 22}
//	  g1: {pin: 23}
//	  g2a: {pin: 24, active: low}
//
// Optional enable gates (g2a, g2b on the hc138; e1 on the hc154) are
// driven only when the profile lists them; leave them out when they are
// strapped in hardware. Per-line polarity follows line.ParsePolarity and
// defaults to active-high.
//
// Open builds the profile on its configured backend and returns a Board
// that owns the backend resources. Build does the same on a caller-made
// LineSource, which is how tests run profiles against linetest.Recorder.
package profile
