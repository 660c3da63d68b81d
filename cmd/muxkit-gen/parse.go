package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawChipDef represents a chip definition loaded from YAML.
type RawChipDef struct {
	Name         string `yaml:"name"`         // "HC138"
	Package      string `yaml:"package"`      // Go package name, "hc138"
	Description  string `yaml:"description"`  // "3-to-8 line decoder/demultiplexer"
	AddressWidth int    `yaml:"addressWidth"` // number of address inputs
	OutputPrefix string `yaml:"outputPrefix"` // output pin prefix, "Y"
}

// OutputCount returns the number of outputs the chip decodes to.
func (d *RawChipDef) OutputCount() int {
	return 1 << d.AddressWidth
}

// ParseChipDef parses a chip definition from YAML bytes.
func ParseChipDef(data []byte) (*RawChipDef, error) {
	var def RawChipDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing chip def: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("chip definition missing name")
	}
	if def.Package == "" {
		return nil, fmt.Errorf("chip definition missing package")
	}
	if def.AddressWidth < 1 || def.AddressWidth > 8 {
		return nil, fmt.Errorf("chip %s: addressWidth must be 1-8, got %d", def.Name, def.AddressWidth)
	}
	if def.OutputPrefix == "" {
		def.OutputPrefix = "Y"
	}
	return &def, nil
}

// LoadChipDef loads and parses a chip definition from a file.
func LoadChipDef(path string) (*RawChipDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseChipDef(data)
}
