// Package manifest persists the record of one dataset generation run.
//
// A manifest captures everything needed to reproduce or audit a run: the
// seed, the piece count, the sampled (part, color) pairs, and the expected
// per-item breakdown at the time of generation.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/brickscope/brickscope/internal/distribution"
)

// Manifest describes one generation run.
type Manifest struct {
	RunID     string `json:"run_id"`
	CreatedAt string `json:"created_at"`

	// TraceID correlates the manifest with the tracing backend when the
	// run executed inside an active span. Empty otherwise.
	TraceID string `json:"trace_id,omitempty"`

	Seed           *int64              `json:"seed"`
	TotalPieces    int                 `json:"total_pieces"`
	Pairs          []distribution.Pair `json:"pairs"`
	ExpectedParts  map[string]int      `json:"expected_parts,omitempty"`
	ExpectedColors map[string]int      `json:"expected_colors,omitempty"`
}

// New creates a manifest with a fresh run ID and the current UTC timestamp.
func New(seed *int64, totalPieces int, pairs []distribution.Pair, expectedParts, expectedColors map[string]int) Manifest {
	return Manifest{
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now().UTC().Format(time.RFC3339Nano),
		Seed:           seed,
		TotalPieces:    totalPieces,
		Pairs:          pairs,
		ExpectedParts:  expectedParts,
		ExpectedColors: expectedColors,
	}
}

// Write persists the manifest under `dir/run_<id>/manifest.json`, or
// `manifest.json.zst` when compress is set. It returns the written path.
func Write(dir string, m Manifest, compress bool) (string, error) {
	if strings.TrimSpace(m.RunID) == "" {
		return "", fmt.Errorf("manifest run id is required")
	}

	runDir := filepath.Join(dir, "run_"+m.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}

	if !compress {
		path := filepath.Join(runDir, "manifest.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write manifest: %w", err)
		}
		return path, nil
	}

	path := filepath.Join(runDir, "manifest.json.zst")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create manifest: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return "", fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return "", fmt.Errorf("write compressed manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("flush compressed manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close manifest: %w", err)
	}
	return path, nil
}

// Read loads a manifest written by Write, transparently decompressing
// .zst files.
func Read(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Manifest{}, fmt.Errorf("create zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
