// Package generator orchestrates dataset generation runs: it assembles part
// and color distributions, samples the configured number of pieces, and
// persists a run manifest.
package generator

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/brickscope/brickscope/internal/catalog"
	catalogsqlite "github.com/brickscope/brickscope/internal/catalog/sqlite"
	"github.com/brickscope/brickscope/internal/distribution"
	"github.com/brickscope/brickscope/internal/manifest"
	"github.com/brickscope/brickscope/internal/platform/config"
	"github.com/brickscope/brickscope/internal/random"
)

const tracerName = "brickscope/generator"

// Config holds configuration for the generator.
type Config struct {
	// CatalogPath points at the SQLite catalog database. Empty means the
	// built-in preset distributions are used.
	CatalogPath string `env:"BRICKSCOPE_CATALOG_PATH"`

	// OutputDir is where run manifests are written.
	OutputDir string `env:"BRICKSCOPE_OUTPUT_DIR" envDefault:"data/runs"`

	// ConfigPath points at a saved distribution config file. When set it
	// takes precedence over the catalog and presets.
	ConfigPath string

	Preset   Preset
	Pieces   int // Override the preset's piece count (0 = use preset default)
	Seed     int64
	Compress bool
	Verbose  bool
}

// DefaultConfig returns a Config populated from the environment with the
// training preset selected.
func DefaultConfig() (Config, error) {
	cfg := Config{Preset: PresetTraining}
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Generator runs dataset generation against a catalog or a saved config.
type Generator struct {
	cfg   Config
	store catalog.Store
}

// New creates a generator, opening the SQLite catalog when one is
// configured.
func New(cfg Config) (*Generator, error) {
	g := &Generator{cfg: cfg}
	if cfg.CatalogPath != "" && cfg.ConfigPath == "" {
		store, err := catalogsqlite.Open(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		g.store = store
	}
	return g, nil
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	if g.store != nil {
		return g.store.Close()
	}
	return nil
}

// Run executes one generation: it samples (part, color) pairs per the
// configured distributions and writes a run manifest. It returns the
// manifest and the path it was written to.
func (g *Generator) Run(ctx context.Context) (manifest.Manifest, string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "generator.run")
	defer span.End()

	dcfg, err := g.distributionConfig(ctx)
	if err != nil {
		return manifest.Manifest{}, "", err
	}

	span.SetAttributes(
		attribute.Int("brickscope.pieces", dcfg.TotalPieces),
		attribute.Int("brickscope.parts", dcfg.Parts.Len()),
		attribute.Int("brickscope.colors", dcfg.Colors.Len()),
	)
	if dcfg.Seed != nil {
		span.SetAttributes(attribute.Int64("brickscope.seed", *dcfg.Seed))
	}

	if g.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Sampling %d pieces from %d parts and %d colors\n",
			dcfg.TotalPieces, dcfg.Parts.Len(), dcfg.Colors.Len())
	}

	pairs := dcfg.GeneratePairs()

	m := manifest.New(
		dcfg.Seed,
		dcfg.TotalPieces,
		pairs,
		dcfg.Parts.ExpectedCounts(dcfg.TotalPieces),
		dcfg.Colors.ExpectedCounts(dcfg.TotalPieces),
	)
	span.SetAttributes(attribute.String("brickscope.run_id", m.RunID))
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		m.TraceID = sc.TraceID().String()
	}

	path, err := manifest.Write(g.cfg.OutputDir, m, g.cfg.Compress)
	if err != nil {
		return manifest.Manifest{}, "", fmt.Errorf("write manifest: %w", err)
	}

	if g.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Run %s complete: %d pairs -> %s\n", m.RunID, len(m.Pairs), path)
	}
	return m, path, nil
}

// ExpectedCounts returns the expected per-part and per-color breakdown for
// the configured piece count without generating anything.
func (g *Generator) ExpectedCounts(ctx context.Context) (parts, colors map[string]int, err error) {
	dcfg, err := g.distributionConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	return dcfg.Parts.ExpectedCounts(dcfg.TotalPieces),
		dcfg.Colors.ExpectedCounts(dcfg.TotalPieces),
		nil
}

// distributionConfig resolves the distributions and scalar parameters for a
// run, in precedence order: saved config file, SQLite catalog, built-in
// presets. Flag-level piece/seed overrides apply in every mode.
func (g *Generator) distributionConfig(ctx context.Context) (*distribution.Config, error) {
	var dcfg *distribution.Config

	switch {
	case g.cfg.ConfigPath != "":
		loaded, err := distribution.LoadConfig(g.cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		dcfg = loaded
	case g.store != nil:
		parts, err := g.store.Parts(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog parts: %w", err)
		}
		colors, err := g.store.Colors(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog colors: %w", err)
		}
		dcfg = distribution.NewConfig()
		dcfg.Parts = catalog.Distribution(parts)
		dcfg.Colors = catalog.Distribution(colors)
	default:
		dcfg = distribution.NewConfig()
		dcfg.Parts = catalog.CommonParts()
		dcfg.Colors = catalog.CommonColors()
	}

	if dcfg.Parts.Len() == 0 {
		return nil, fmt.Errorf("no parts available to sample")
	}
	if dcfg.Colors.Len() == 0 {
		return nil, fmt.Errorf("no colors available to sample")
	}

	if g.cfg.Pieces > 0 {
		dcfg.TotalPieces = g.cfg.Pieces
	} else if g.cfg.ConfigPath == "" {
		pieces, ok := g.cfg.Preset.Pieces()
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", g.cfg.Preset)
		}
		dcfg.TotalPieces = pieces
	}

	if g.cfg.Seed != 0 {
		seed := g.cfg.Seed
		dcfg.Seed = &seed
	} else if dcfg.Seed == nil {
		// Seed every run so manifests stay reproducible.
		seed := random.Seed()
		dcfg.Seed = &seed
		if g.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "Using seed: %d\n", seed)
		}
	}

	return dcfg, nil
}
