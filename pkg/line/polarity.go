package line

import (
	"errors"
	"fmt"
	"strings"
)

// Polarity errors.
var (
	ErrUnknownPolarity = errors.New("unknown polarity")
)

// Polarity declares which electrical level a line treats as asserted.
//
// Chip drivers work in logical terms only. An active-low input (such as a
// 74HC138 G2A gate) is expressed by constructing its line with ActiveLow,
// not by inverting writes in the driver.
type Polarity uint8

const (
	// ActiveHigh asserts the line by driving it high.
	ActiveHigh Polarity = 0
	// ActiveLow asserts the line by driving it low.
	ActiveLow Polarity = 1
)

// String returns the polarity name.
func (p Polarity) String() string {
	switch p {
	case ActiveHigh:
		return "ACTIVE_HIGH"
	case ActiveLow:
		return "ACTIVE_LOW"
	default:
		return "UNKNOWN"
	}
}

// Level maps a logical state to the electrical level for this polarity.
func (p Polarity) Level(asserted bool) bool {
	if p == ActiveLow {
		return !asserted
	}
	return asserted
}

// ParsePolarity parses a polarity name as used in board profiles.
// Accepted values are "active-high", "high", "active-low" and "low";
// the empty string defaults to ActiveHigh.
func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(s) {
	case "", "active-high", "high":
		return ActiveHigh, nil
	case "active-low", "low":
		return ActiveLow, nil
	default:
		return ActiveHigh, fmt.Errorf("%w: %q", ErrUnknownPolarity, s)
	}
}
