// Command muxkit-shell is an interactive bench tool for demultiplexer
// boards.
//
// The shell loads a board profile, opens the profile's line backend and
// drops into a readline prompt where outputs can be switched by hand.
// Hardware writes can be captured to a trace file for later analysis
// with muxkit-trace, or echoed to the console while experimenting.
//
// Usage:
//
//	muxkit-shell -profile <file> [flags]
//
// Flags:
//
//	-profile string    Board profile YAML path (required)
//	-trace string      Write hardware trace events to this file
//	-echo              Echo hardware writes to the console
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Drive a simulated hc138 board
//	muxkit-shell -profile profiles/bench-sim.yaml
//
//	# Drive a real board over GPIO, capturing a trace
//	muxkit-shell -profile profiles/bench-rpio.yaml -trace bench.mtrace
//
//	# Watch every line write while debugging wiring
//	muxkit-shell -profile profiles/bench-cdev.yaml -echo
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dikkadev/prettyslog"

	"github.com/muxkit/muxkit-go/cmd/muxkit-shell/interactive"
	"github.com/muxkit/muxkit-go/pkg/profile"
	"github.com/muxkit/muxkit-go/pkg/trace"
)

// Config holds the shell configuration.
type Config struct {
	ProfileFile string
	TraceFile   string
	Echo        bool
	LogLevel    string
}

var config Config

func init() {
	flag.StringVar(&config.ProfileFile, "profile", "", "Board profile YAML path (required)")
	flag.StringVar(&config.TraceFile, "trace", "", "Write hardware trace events to this file")
	flag.BoolVar(&config.Echo, "echo", false, "Echo hardware writes to the console")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	setupLogging(config.LogLevel)

	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	prof, err := profile.Load(config.ProfileFile)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	// Assemble the trace pipeline before opening the board; the chip
	// driver takes its tracer at construction.
	var sinks []trace.Logger
	if config.TraceFile != "" {
		fl, err := trace.NewFileLogger(config.TraceFile)
		if err != nil {
			log.Fatalf("Failed to open trace file: %v", err)
		}
		defer fl.Close()
		sinks = append(sinks, fl)
	}
	if config.Echo {
		// The echo plane gets its own debug-level handler so -echo
		// works without also lowering the operational log level.
		echo := slog.New(prettyslog.NewPrettyslogHandler("hw",
			prettyslog.WithLevel(slog.LevelDebug),
		))
		sinks = append(sinks, trace.NewSlogAdapter(echo))
	}

	board, err := profile.Open(prof, buildTracer(sinks))
	if err != nil {
		log.Fatalf("Failed to open board: %v", err)
	}
	defer board.Close()

	slog.Info("board ready",
		"profile", board.Name(),
		"chip", board.Chip(),
		"backend", prof.Backend,
		"outputs", len(board.Outputs()))

	sh, err := interactive.New(board)
	if err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C is handled by readline; SIGTERM ends the command loop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	sh.Run(ctx, cancel)
}

func setupLogging(level string) {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	slog.SetDefault(slog.New(prettyslog.NewPrettyslogHandler("muxkit",
		prettyslog.WithLevel(lvl),
	)))
}

func validateConfig() error {
	if config.ProfileFile == "" {
		return fmt.Errorf("no profile given (use -profile)")
	}
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		return fmt.Errorf("unknown log level: %s", config.LogLevel)
	}
	return nil
}

// buildTracer collapses the configured sinks into a single logger.
func buildTracer(sinks []trace.Logger) trace.Logger {
	switch len(sinks) {
	case 0:
		return trace.NoopLogger{}
	case 1:
		return sinks[0]
	default:
		return trace.NewMultiLogger(sinks...)
	}
}
