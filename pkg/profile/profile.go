package profile

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/muxkit/muxkit-go/pkg/line"
)

// Validation errors. Wrapped with the offending value; test with errors.Is.
var (
	ErrUnknownChip    = errors.New("unknown chip")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrMissingLine    = errors.New("missing line")
	ErrUnknownRole    = errors.New("unknown line role")
)

// Chips a profile can name.
const (
	ChipHC138 = "hc138"
	ChipHC154 = "hc154"
)

// Backends a profile can name.
const (
	// BackendSim mints fake pins from a linetest.Recorder.
	BackendSim = "sim"
	// BackendRpio drives Raspberry Pi pins through /dev/gpiomem.
	BackendRpio = "rpio"
	// BackendChardev drives lines through the Linux GPIO character device.
	BackendChardev = "cdev"
	// BackendSerial drives lines on a remote bridge over a serial port.
	BackendSerial = "serial"
)

// Profile describes one board: the chip, the backend that produces its
// lines, and the pin each chip input sits on.
type Profile struct {
	// Name identifies the board. Used as the chip's trace device ID.
	Name string `yaml:"name"`

	// Chip is the driver to build: hc138 or hc154.
	Chip string `yaml:"chip"`

	// Backend mints the lines: sim, rpio, cdev or serial.
	Backend string `yaml:"backend"`

	// Lines maps chip input roles to pins. Roles are the part's input
	// names in lower case: a0..a2 and g1 (plus optional g2a, g2b) for
	// the hc138; a0..a3 and e0 (plus optional e1) for the hc154.
	Lines map[string]LineSpec `yaml:"lines"`

	// Serial configures the serial backend.
	Serial SerialConfig `yaml:"serial"`

	// Chardev configures the cdev backend.
	Chardev ChardevConfig `yaml:"chardev"`
}

// LineSpec places one chip input on a pin.
type LineSpec struct {
	// Pin is backend-specific: a BCM number for rpio, a chip offset for
	// cdev, a bridge line ID for serial. The sim backend ignores it.
	Pin uint32 `yaml:"pin"`

	// Active is the electrical polarity, "high" or "low". Empty means
	// active-high.
	Active string `yaml:"active"`
}

// Polarity returns the line's polarity as declared by Active.
func (s LineSpec) Polarity() (line.Polarity, error) {
	return line.ParsePolarity(s.Active)
}

// SerialConfig locates the line bridge for the serial backend.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ChardevConfig locates the GPIO character device for the cdev backend.
type ChardevConfig struct {
	Chip string `yaml:"chip"`
}

// chipRoles lists each chip's required and optional input roles.
var chipRoles = map[string]struct {
	required []string
	optional []string
}{
	ChipHC138: {
		required: []string{"a0", "a1", "a2", "g1"},
		optional: []string{"g2a", "g2b"},
	},
	ChipHC154: {
		required: []string{"a0", "a1", "a2", "a3", "e0"},
		optional: []string{"e1"},
	},
}

// Parse parses a profile from YAML, applies defaults and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func (p *Profile) applyDefaults() {
	if p.Serial.Baud == 0 {
		p.Serial.Baud = 115200
	}
	if p.Chardev.Chip == "" {
		p.Chardev.Chip = "gpiochip0"
	}
}

// Validate checks the profile for a known chip and backend, a complete
// set of required lines, no roles the chip does not have, and parseable
// polarities. Profiles built in code should call this before Build.
func (p *Profile) Validate() error {
	roles, ok := chipRoles[p.Chip]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChip, p.Chip)
	}

	switch p.Backend {
	case BackendSim, BackendRpio, BackendChardev, BackendSerial:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, p.Backend)
	}

	for _, role := range roles.required {
		if _, ok := p.Lines[role]; !ok {
			return fmt.Errorf("%w: %s needs %q", ErrMissingLine, p.Chip, role)
		}
	}
	for role, spec := range p.Lines {
		if !slices.Contains(roles.required, role) && !slices.Contains(roles.optional, role) {
			return fmt.Errorf("%w: %s has no input %q", ErrUnknownRole, p.Chip, role)
		}
		if _, err := spec.Polarity(); err != nil {
			return fmt.Errorf("line %q: %w", role, err)
		}
	}

	if p.Backend == BackendSerial && p.Serial.Port == "" {
		return fmt.Errorf("serial backend needs a port")
	}
	return nil
}

// Roles returns the profile's roles in chip pin order, required first,
// then whichever optional roles the profile lists.
func (p *Profile) Roles() []string {
	roles, ok := chipRoles[p.Chip]
	if !ok {
		return nil
	}
	out := slices.Clone(roles.required)
	for _, role := range roles.optional {
		if _, ok := p.Lines[role]; ok {
			out = append(out, role)
		}
	}
	return out
}
