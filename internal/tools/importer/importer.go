// Package importer loads part and color catalogs from YAML files into the
// SQLite catalog store.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brickscope/brickscope/internal/catalog"
	catalogsqlite "github.com/brickscope/brickscope/internal/catalog/sqlite"
)

// Config holds configuration for the catalog importer.
type Config struct {
	File   string
	DBPath string
	DryRun bool
}

// ParseConfig parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: filepath.Join("data", "catalog.db"),
	}

	fs.StringVar(&cfg.File, "file", "", "YAML catalog file to import")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.File) == "" {
		return Config{}, errors.New("file is required")
	}

	return cfg, nil
}

// catalogFile is the YAML shape of an importable catalog.
type catalogFile struct {
	Parts  []entrySpec `yaml:"parts"`
	Colors []entrySpec `yaml:"colors"`
}

type entrySpec struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Weight *float64 `yaml:"weight"`
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	file := strings.TrimSpace(cfg.File)
	if file == "" {
		return errors.New("file is required")
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse catalog file: %w", err)
	}

	parts, err := toEntries("parts", parsed.Parts)
	if err != nil {
		return err
	}
	colors, err := toEntries("colors", parsed.Colors)
	if err != nil {
		return err
	}
	if len(parts) == 0 && len(colors) == 0 {
		return errors.New("catalog file has no parts or colors")
	}

	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d part(s), %d color(s)\n", len(parts), len(colors))
		return err
	}

	store, err := catalogsqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()

	for _, entry := range parts {
		if err := store.PutPart(ctx, entry); err != nil {
			return fmt.Errorf("import part %s: %w", entry.ID, err)
		}
	}
	for _, entry := range colors {
		if err := store.PutColor(ctx, entry); err != nil {
			return fmt.Errorf("import color %s: %w", entry.ID, err)
		}
	}

	_, err = fmt.Fprintf(out, "imported %d part(s), %d color(s) into %s\n", len(parts), len(colors), cfg.DBPath)
	return err
}

// toEntries validates the entry specs from one section. Missing weights
// default to 1.0 and negative weights are clamped to 0, mirroring the
// distribution engine's permissive policy.
func toEntries(section string, specs []entrySpec) ([]catalog.Entry, error) {
	entries := make([]catalog.Entry, 0, len(specs))
	for i, spec := range specs {
		id := strings.TrimSpace(spec.ID)
		name := strings.TrimSpace(spec.Name)
		if id == "" {
			return nil, fmt.Errorf("%s[%d]: id is required", section, i)
		}
		if name == "" {
			return nil, fmt.Errorf("%s[%d] (%s): name is required", section, i, id)
		}
		weight := 1.0
		if spec.Weight != nil {
			weight = *spec.Weight
		}
		if weight < 0 {
			weight = 0
		}
		entries = append(entries, catalog.Entry{ID: id, Name: name, Weight: weight})
	}
	return entries, nil
}
