package generator

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/brickscope/brickscope/internal/catalog"
	catalogsqlite "github.com/brickscope/brickscope/internal/catalog/sqlite"
	"github.com/brickscope/brickscope/internal/distribution"
	"github.com/brickscope/brickscope/internal/manifest"
)

func TestPresetPieces(t *testing.T) {
	tcs := []struct {
		preset Preset
		want   int
	}{
		{PresetSmoke, 25},
		{PresetTraining, 500},
		{PresetStress, 5000},
	}
	for _, tc := range tcs {
		got, ok := tc.preset.Pieces()
		if !ok {
			t.Fatalf("preset %q not recognized", tc.preset)
		}
		if got != tc.want {
			t.Fatalf("preset %q pieces = %d, want %d", tc.preset, got, tc.want)
		}
	}

	if _, ok := Preset("bogus").Pieces(); ok {
		t.Fatal("expected unknown preset to be rejected")
	}
}

func TestRunWithBuiltinPresets(t *testing.T) {
	out := t.TempDir()
	gen, err := New(Config{
		OutputDir: out,
		Preset:    PresetSmoke,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	m, path, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Pairs) != 25 {
		t.Fatalf("pairs = %d, want 25", len(m.Pairs))
	}
	if m.Seed == nil || *m.Seed != 42 {
		t.Fatalf("seed = %v, want 42", m.Seed)
	}

	got, err := manifest.Read(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Fatalf("manifest round trip = %+v, want %+v", got, m)
	}
}

// TestRunDeterministicWithSeed ensures two generators with the same seed
// produce identical pair sequences.
func TestRunDeterministicWithSeed(t *testing.T) {
	runOnce := func() []distribution.Pair {
		gen, err := New(Config{
			OutputDir: t.TempDir(),
			Preset:    PresetSmoke,
			Seed:      7,
		})
		if err != nil {
			t.Fatalf("new generator: %v", err)
		}
		defer gen.Close()

		m, _, err := gen.Run(context.Background())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return m.Pairs
	}

	if !reflect.DeepEqual(runOnce(), runOnce()) {
		t.Fatal("expected identical pairs for the same seed")
	}
}

func TestRunUnseededGetsRandomSeed(t *testing.T) {
	gen, err := New(Config{
		OutputDir: t.TempDir(),
		Preset:    PresetSmoke,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	m, _, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.Seed == nil {
		t.Fatal("expected run to record its seed")
	}
}

func TestRunFromCatalog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalogsqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	ctx := context.Background()
	if err := store.PutPart(ctx, catalog.Entry{ID: "3001", Name: "Brick 2x4", Weight: 1}); err != nil {
		t.Fatalf("put part: %v", err)
	}
	if err := store.PutColor(ctx, catalog.Entry{ID: "4", Name: "Red", Weight: 1}); err != nil {
		t.Fatalf("put color: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close catalog: %v", err)
	}

	gen, err := New(Config{
		CatalogPath: dbPath,
		OutputDir:   t.TempDir(),
		Preset:      PresetSmoke,
		Seed:        1,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	m, _, err := gen.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, pair := range m.Pairs {
		if pair.PartID != "3001" || pair.ColorID != "4" {
			t.Fatalf("pair = %+v, want {3001 4}", pair)
		}
	}
}

func TestRunFromCatalogFailsWithoutParts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	store, err := catalogsqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close catalog: %v", err)
	}

	gen, err := New(Config{
		CatalogPath: dbPath,
		OutputDir:   t.TempDir(),
		Preset:      PresetSmoke,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	if _, _, err := gen.Run(context.Background()); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestRunFromConfigFile(t *testing.T) {
	cfg := distribution.NewConfig()
	cfg.Parts.AddItem("3001", "Brick 2x4", 1.0)
	cfg.Colors.AddItem("4", "Red", 1.0)
	cfg.TotalPieces = 9
	seed := int64(3)
	cfg.Seed = &seed

	path := filepath.Join(t.TempDir(), "config.json")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save config: %v", err)
	}

	gen, err := New(Config{
		ConfigPath: path,
		OutputDir:  t.TempDir(),
		Preset:     PresetTraining,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	m, _, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(m.Pairs) != 9 {
		t.Fatalf("pairs = %d, want 9 from config file", len(m.Pairs))
	}
	if m.Seed == nil || *m.Seed != 3 {
		t.Fatalf("seed = %v, want 3 from config file", m.Seed)
	}
}

func TestExpectedCounts(t *testing.T) {
	gen, err := New(Config{
		OutputDir: t.TempDir(),
		Preset:    PresetSmoke,
		Pieces:    100,
	})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	defer gen.Close()

	parts, colors, err := gen.ExpectedCounts(context.Background())
	if err != nil {
		t.Fatalf("expected counts: %v", err)
	}
	if len(parts) == 0 || len(colors) == 0 {
		t.Fatal("expected non-empty breakdowns for built-in presets")
	}
	if _, ok := parts["3001"]; !ok {
		t.Fatal("expected built-in part 3001 in breakdown")
	}
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	t.Setenv("BRICKSCOPE_CATALOG_PATH", "/tmp/cat.db")
	t.Setenv("BRICKSCOPE_OUTPUT_DIR", "/tmp/out")

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	if cfg.CatalogPath != "/tmp/cat.db" {
		t.Fatalf("catalog path = %q, want /tmp/cat.db", cfg.CatalogPath)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("output dir = %q, want /tmp/out", cfg.OutputDir)
	}
	if cfg.Preset != PresetTraining {
		t.Fatalf("preset = %q, want training", cfg.Preset)
	}
}
