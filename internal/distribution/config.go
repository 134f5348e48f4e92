package distribution

import (
	"encoding/json"
	"os"
)

// DefaultTotalPieces is the piece count used when a persisted config omits
// the total_pieces field.
const DefaultTotalPieces = 100

// Pair couples one sampled part with one sampled color.
type Pair struct {
	PartID  string `json:"part_id"`
	ColorID string `json:"color_id"`
}

// Config pairs a part distribution and a color distribution with a total
// draw count and an optional master seed, describing one synthetic dataset.
type Config struct {
	Parts       *Weighted
	Colors      *Weighted
	TotalPieces int
	Seed        *int64
}

// NewConfig creates a config with empty distributions and the default piece
// count.
func NewConfig() *Config {
	return &Config{
		Parts:       New(),
		Colors:      New(),
		TotalPieces: DefaultTotalPieces,
	}
}

// GeneratePairs samples TotalPieces parts and TotalPieces colors and zips
// them positionally into (part, color) pairs.
//
// Parts are drawn with Seed and colors with Seed+1, so the two draws are
// decorrelated yet both reproducible from the one master seed. A nil Seed
// leaves both draws unseeded. The pairing is purely positional: part i and
// color i share nothing beyond their ordinal position. When either
// distribution is empty the shorter side truncates the zip and the result
// is empty.
func (c *Config) GeneratePairs() []Pair {
	parts := c.Parts.Sample(c.TotalPieces, c.Seed)

	var colorSeed *int64
	if c.Seed != nil {
		offset := *c.Seed + 1
		colorSeed = &offset
	}
	colors := c.Colors.Sample(c.TotalPieces, colorSeed)

	n := len(parts)
	if len(colors) < n {
		n = len(colors)
	}
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		pairs[i] = Pair{PartID: parts[i].ID, ColorID: colors[i].ID}
	}
	return pairs
}

// MarshalJSON encodes the config with its two child distributions nested
// under parts and colors.
func (c *Config) MarshalJSON() ([]byte, error) {
	parts := c.Parts
	if parts == nil {
		parts = New()
	}
	colors := c.Colors
	if colors == nil {
		colors = New()
	}
	return json.Marshal(struct {
		Parts       *Weighted `json:"parts"`
		Colors      *Weighted `json:"colors"`
		TotalPieces int       `json:"total_pieces"`
		Seed        *int64    `json:"seed"`
	}{Parts: parts, Colors: colors, TotalPieces: c.TotalPieces, Seed: c.Seed})
}

// UnmarshalJSON decodes a config payload. The parts and colors keys are
// required; total_pieces defaults to DefaultTotalPieces and seed to nil.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parts       *Weighted `json:"parts"`
		Colors      *Weighted `json:"colors"`
		TotalPieces *int      `json:"total_pieces"`
		Seed        *int64    `json:"seed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Parts == nil {
		return &MissingFieldError{Field: "parts"}
	}
	if raw.Colors == nil {
		return &MissingFieldError{Field: "colors"}
	}
	total := DefaultTotalPieces
	if raw.TotalPieces != nil {
		total = *raw.TotalPieces
	}
	c.Parts = raw.Parts
	c.Colors = raw.Colors
	c.TotalPieces = total
	c.Seed = raw.Seed
	return nil
}

// Save writes the config to path as indented UTF-8 JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadConfig reads a config from a JSON file written by Save. Failures are
// reported as a FileError wrapping the underlying cause.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return &c, nil
}
