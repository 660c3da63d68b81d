// Package line defines the digital output line contract shared by all
// muxkit chip drivers and backends.
//
// A Line is logical: Activate drives it to its asserted state, Deactivate
// to its deasserted state. The mapping to electrical levels is fixed by the
// adapter that created the line (see Polarity), never by the chip driver
// consuming it. Chip drivers in pkg/demux consume Lines; backends in
// pkg/line/gpio, pkg/line/serialline and pkg/line/linetest produce them.
//
// # Errors
//
// Chip drivers wrap failed writes in IOError, naming the chip input that
// failed (for example "A1" or "G1") and the attempted operation. Use
// errors.As to recover it:
//
//	var ioErr *line.IOError
//	if errors.As(err, &ioErr) {
//	    fmt.Printf("input %s failed during %s\n", ioErr.Line, ioErr.Op)
//	}
//
// Writes are single attempts. Nothing at this layer retries, times out or
// degrades; callers own any recovery policy.
package line
