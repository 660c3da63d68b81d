package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see hardware activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("device", event.Device),
		slog.String("kind", event.Kind.String()),
	}

	if event.Chip != "" {
		attrs = append(attrs, slog.String("chip", event.Chip))
	}

	// Add kind-specific attributes
	switch {
	case event.Write != nil:
		attrs = append(attrs,
			slog.String("line", event.Write.Line),
			slog.String("op", event.Write.Op.String()),
		)
		if event.Write.Error != "" {
			attrs = append(attrs, slog.String("error", event.Write.Error))
		}
	case event.Select != nil:
		attrs = append(attrs, slog.Uint64("output", uint64(event.Select.Output)))
		if event.Select.Previous != nil {
			attrs = append(attrs, slog.Uint64("previous", uint64(*event.Select.Previous)))
		}
	case event.Release != nil:
		attrs = append(attrs,
			slog.Uint64("output", uint64(event.Release.Output)),
			slog.Bool("noop", event.Release.Noop),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "hardware", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
