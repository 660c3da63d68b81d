package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

func main() {
	chipPath := flag.String("chip", "", "Path to a single chip definition YAML")
	dir := flag.String("dir", "", "Directory tree to scan for chip.yaml definitions")
	output := flag.String("output", "", "Output path for -chip (default: outputs_gen.go next to the definition)")
	flag.Parse()

	if *chipPath == "" && *dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: muxkit-gen -chip <file> [-output <path>] | -dir <tree>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*chipPath, *dir, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(chipPath, dir, output string) error {
	if chipPath != "" {
		out := output
		if out == "" {
			out = filepath.Join(filepath.Dir(chipPath), "outputs_gen.go")
		}
		return generateOne(chipPath, out)
	}

	found := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "chip.yaml" {
			return nil
		}
		found++
		return generateOne(path, filepath.Join(filepath.Dir(path), "outputs_gen.go"))
	})
	if err != nil {
		return err
	}
	if found == 0 {
		return fmt.Errorf("no chip.yaml definitions under %s", dir)
	}
	return nil
}

func generateOne(defPath, outPath string) error {
	def, err := LoadChipDef(defPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", defPath, err)
	}

	code, err := GenerateOutputs(def)
	if err != nil {
		return fmt.Errorf("generating %s: %w", def.Name, err)
	}

	if err := writeFormatted(outPath, code); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("  generated %s\n", outPath)
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
