// Command muxkit-trace is a tool for viewing and analyzing hardware trace
// files.
//
// Trace files are created by passing a trace.FileLogger to a chip driver,
// for example with the muxkit-shell -trace flag.
//
// Usage:
//
//	muxkit-trace <command> [flags] <file.mtrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	muxkit-trace view board.mtrace
//
//	# View only faults
//	muxkit-trace view -kind fault board.mtrace
//
//	# View only drives of the enable line
//	muxkit-trace view -line G1 board.mtrace
//
//	# Export to JSONL
//	muxkit-trace export -format jsonl board.mtrace
//
//	# Keep one device's events and save to a new file
//	muxkit-trace filter -device bench-board -o bench.mtrace board.mtrace
//
//	# Show statistics
//	muxkit-trace stats board.mtrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/muxkit/muxkit-go/cmd/muxkit-trace/commands"
)

const usage = `muxkit-trace - Hardware Trace Analyzer

Usage:
  muxkit-trace <command> [flags] <file.mtrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "muxkit-trace <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `muxkit-trace view - View trace file in human-readable format

Usage:
  muxkit-trace view [flags] <file.mtrace>

Flags:
`)
		fs.PrintDefaults()
	}

	kind := fs.String("kind", "", "Filter by event kind (write, fault, select, release)")
	device := fs.String("device", "", "Filter by device ID")
	chip := fs.String("chip", "", "Filter by chip model (hc138, hc154)")
	lineLabel := fs.String("line", "", "Filter write/fault events by line label (A0, G1, ...)")
	output := fs.String("output", "", "Filter select/release events by output index")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	filter := commands.ViewFilter{
		Device: *device,
		Chip:   *chip,
		Line:   *lineLabel,
	}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Kind = &k
	}

	if *output != "" {
		o, err := commands.ParseOutputFlag(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Output = &o
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `muxkit-trace export - Export trace file to JSON or CSV format

Usage:
  muxkit-trace export [flags] <file.mtrace>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `muxkit-trace filter - Filter trace file and write to new file

Usage:
  muxkit-trace filter [flags] <file.mtrace>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	device := fs.String("device", "", "Filter by device ID")
	chip := fs.String("chip", "", "Filter by chip model")
	kind := fs.String("kind", "", "Filter by event kind (write, fault, select, release)")
	lineLabel := fs.String("line", "", "Filter write/fault events by line label")
	outIndex := fs.String("output", "", "Filter select/release events by output index")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	opts := commands.FilterOptions{
		Output:    *output,
		Device:    *device,
		Chip:      *chip,
		Kind:      *kind,
		Line:      *lineLabel,
		OutIndex:  *outIndex,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	}

	if err := commands.RunFilter(path, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `muxkit-trace stats - Show statistics about the trace file

Usage:
  muxkit-trace stats <file.mtrace>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
