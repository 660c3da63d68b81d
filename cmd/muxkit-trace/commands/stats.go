package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/muxkit/muxkit-go/pkg/trace"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[trace.Kind]int
	Devices      map[string]*DeviceStats
	Faults       int
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// DeviceStats holds statistics for a single device.
type DeviceStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	Chip         string
	WritesByLine map[string]int
	Selections   map[uint8]int
	Faults       int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := trace.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByKind: make(map[trace.Kind]int),
		Devices:      make(map[string]*DeviceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track device stats
		dev, ok := stats.Devices[event.Device]
		if !ok {
			dev = &DeviceStats{
				FirstSeen:    event.Timestamp,
				LastSeen:     event.Timestamp,
				WritesByLine: make(map[string]int),
				Selections:   make(map[uint8]int),
			}
			stats.Devices[event.Device] = dev
		}
		dev.Events++
		if event.Timestamp.After(dev.LastSeen) {
			dev.LastSeen = event.Timestamp
		}
		if event.Chip != "" && dev.Chip == "" {
			dev.Chip = event.Chip
		}

		if event.Write != nil {
			dev.WritesByLine[event.Write.Line]++
		}
		if event.Select != nil {
			dev.Selections[event.Select.Output]++
		}

		// Count faults
		if event.Kind == trace.KindFault {
			stats.Faults++
			dev.Faults++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Hardware Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by kind
	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range []trace.Kind{trace.KindWrite, trace.KindFault, trace.KindSelect, trace.KindRelease} {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-9s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Devices
	fmt.Fprintf(w, "Devices: %d\n", len(stats.Devices))
	if len(stats.Devices) > 0 {
		// Sort by first seen time
		type devInfo struct {
			id    string
			stats *DeviceStats
		}
		devs := make([]devInfo, 0, len(stats.Devices))
		for id, ds := range stats.Devices {
			devs = append(devs, devInfo{id, ds})
		}
		sort.Slice(devs, func(i, j int) bool {
			return devs[i].stats.FirstSeen.Before(devs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, d := range devs {
			duration := d.stats.LastSeen.Sub(d.stats.FirstSeen).Round(time.Millisecond)
			shortID := d.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			chip := d.stats.Chip
			if chip == "" {
				chip = "unknown chip"
			}
			fmt.Fprintf(w, "  [%s] %s, %d events, duration %s\n", shortID, chip, d.stats.Events, duration)
			if len(d.stats.WritesByLine) > 0 {
				fmt.Fprintf(w, "           Writes: %s\n", formatLineCounts(d.stats.WritesByLine))
			}
			if len(d.stats.Selections) > 0 {
				fmt.Fprintf(w, "           Selections: %s\n", formatOutputCounts(d.stats.Selections))
			}
			if d.stats.Faults > 0 {
				fmt.Fprintf(w, "           Faults: %d\n", d.stats.Faults)
			}
		}
	}

	// Faults
	if stats.Faults > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Faults: %d\n", stats.Faults)
	}
}

// formatLineCounts renders per-line write counts sorted by label.
func formatLineCounts(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := ""
	for i, l := range labels {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", l, counts[l])
	}
	return out
}

// formatOutputCounts renders per-output selection counts sorted by index.
func formatOutputCounts(counts map[uint8]int) string {
	outputs := make([]int, 0, len(counts))
	for o := range counts {
		outputs = append(outputs, int(o))
	}
	sort.Ints(outputs)

	out := ""
	for i, o := range outputs {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("Y%d=%d", o, counts[uint8(o)])
	}
	return out
}
