// Package main provides the brickscope CLI: it samples weighted part/color
// distributions into reproducible dataset run manifests, prints expected
// breakdowns, and validates persisted distribution files.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/brickscope/brickscope/internal/generator"
	"github.com/brickscope/brickscope/internal/platform/config"
	"github.com/brickscope/brickscope/internal/platform/otel"
	"github.com/brickscope/brickscope/internal/schema"
)

func main() {
	genCfg, err := generator.DefaultConfig()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	var (
		preset       string
		listPresets  bool
		validatePath string
		expected     bool
	)

	flag.StringVar(&genCfg.CatalogPath, "catalog", genCfg.CatalogPath, "catalog database path (empty = built-in presets)")
	flag.StringVar(&genCfg.OutputDir, "out", genCfg.OutputDir, "directory for run manifests")
	flag.StringVar(&genCfg.ConfigPath, "config", "", "generate from a saved distribution config file")
	flag.StringVar(&preset, "preset", string(generator.PresetTraining), "generation preset (smoke, training, stress)")
	flag.IntVar(&genCfg.Pieces, "pieces", 0, "piece count override (0 = use preset default)")
	flag.Int64Var(&genCfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	flag.BoolVar(&genCfg.Compress, "zstd", false, "compress the run manifest with zstd")
	flag.BoolVar(&genCfg.Verbose, "v", false, "verbose output")
	flag.BoolVar(&listPresets, "list-presets", false, "list available presets")
	flag.StringVar(&validatePath, "validate", "", "schema-validate a distribution or config file and exit")
	flag.BoolVar(&expected, "expected", false, "print the expected part/color breakdown instead of generating")

	flag.Parse()

	if listPresets {
		fmt.Println("Available presets:")
		for _, p := range generator.Presets() {
			pieces, _ := p.Pieces()
			fmt.Printf("  %-9s - %d pieces\n", p, pieces)
		}
		return
	}

	if validatePath != "" {
		if err := validateFile(validatePath); err != nil {
			config.Exitf("Error: %v", err)
		}
		fmt.Printf("%s is valid\n", validatePath)
		return
	}

	genCfg.Preset = generator.Preset(preset)
	if _, ok := genCfg.Preset.Pieces(); !ok {
		config.Exitf("Error: unknown preset %q (valid: smoke, training, stress)", preset)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	shutdown, err := otel.Setup(ctx, "brickscope")
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	gen, err := generator.New(genCfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer gen.Close()

	if expected {
		parts, colors, err := gen.ExpectedCounts(ctx)
		if err != nil {
			config.Exitf("Error: %v", err)
		}
		printCounts("Parts", parts)
		printCounts("Colors", colors)
		return
	}

	m, path, err := gen.Run(ctx)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	fmt.Printf("run %s: %d pairs -> %s\n", m.RunID, len(m.Pairs), path)
}

// validateFile schema-validates a persisted file, inferring the shape from
// its top-level keys: config files carry parts/colors, distribution files
// carry items.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var probe struct {
		Parts *json.RawMessage `json:"parts"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if probe.Parts != nil {
		return schema.ValidateConfig(data)
	}
	return schema.ValidateDistribution(data)
}

func printCounts(label string, counts map[string]int) {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("%s:\n", label)
	for _, id := range ids {
		fmt.Printf("  %-8s %d\n", id, counts[id])
	}
}
