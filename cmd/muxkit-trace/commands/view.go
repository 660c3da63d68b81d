// Package commands implements the muxkit-trace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muxkit/muxkit-go/pkg/trace"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Kind   *trace.Kind
	Device string
	Chip   string
	Line   string
	Output *uint8
}

// toTraceFilter converts the view filter to a reader filter.
func (f ViewFilter) toTraceFilter() trace.Filter {
	return trace.Filter{
		Device: f.Device,
		Chip:   f.Chip,
		Kind:   f.Kind,
		Line:   f.Line,
		Output: f.Output,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event trace.Event) {
	// Header line: timestamp [dev:id] KIND chip
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	dev := shortenDeviceID(event.Device)

	chip := event.Chip
	if chip == "" {
		chip = "-"
	}

	fmt.Fprintf(w, "%s [dev:%s] %-7s %s\n", ts, dev, event.Kind.String(), chip)

	// Kind-specific details
	switch {
	case event.Write != nil:
		formatWriteDetails(w, event.Write)
	case event.Select != nil:
		formatSelectDetails(w, event.Select)
	case event.Release != nil:
		formatReleaseDetails(w, event.Release)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenDeviceID returns the first 8 characters of the device ID.
func shortenDeviceID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatWriteDetails writes line drive details.
func formatWriteDetails(w io.Writer, we *trace.WriteEvent) {
	fmt.Fprintf(w, "  Line: %s\n", we.Line)
	fmt.Fprintf(w, "  Op: %s\n", we.Op.String())
	if we.Error != "" {
		fmt.Fprintf(w, "  Error: %s\n", we.Error)
	}
}

// formatSelectDetails writes selection details.
func formatSelectDetails(w io.Writer, se *trace.SelectEvent) {
	fmt.Fprintf(w, "  Output: %d\n", se.Output)
	if se.Previous != nil {
		fmt.Fprintf(w, "  Displaced: %d\n", *se.Previous)
	}
}

// formatReleaseDetails writes release details.
func formatReleaseDetails(w io.Writer, re *trace.ReleaseEvent) {
	fmt.Fprintf(w, "  Output: %d\n", re.Output)
	if re.Noop {
		fmt.Fprintf(w, "  Noop: output was not active\n")
	}
}

// filterEvents returns events matching the filter criteria.
func filterEvents(events []trace.Event, filter ViewFilter) []trace.Event {
	var result []trace.Event
	for _, e := range events {
		if filter.Kind != nil && e.Kind != *filter.Kind {
			continue
		}
		if filter.Device != "" && e.Device != filter.Device {
			continue
		}
		if filter.Chip != "" && e.Chip != filter.Chip {
			continue
		}
		if filter.Line != "" && (e.Write == nil || e.Write.Line != filter.Line) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseKindFlag parses an event kind from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (trace.Kind, error) {
	return parseKind(s)
}

// parseKind parses an event kind string (case-insensitive).
func parseKind(s string) (trace.Kind, error) {
	switch strings.ToLower(s) {
	case "write":
		return trace.KindWrite, nil
	case "fault":
		return trace.KindFault, nil
	case "select":
		return trace.KindSelect, nil
	case "release":
		return trace.KindRelease, nil
	default:
		return 0, fmt.Errorf("invalid kind: %s (must be write, fault, select, or release)", s)
	}
}

// ParseOutputFlag parses an output index from a command-line flag.
func ParseOutputFlag(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid output index: %s", s)
	}
	return uint8(v), nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := trace.NewFilteredReader(path, filter.toTraceFilter())
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
