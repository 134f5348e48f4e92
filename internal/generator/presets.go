package generator

// Preset defines a named piece-count profile for dataset generation.
type Preset string

const (
	// PresetSmoke generates a handful of pieces for quick pipeline checks.
	PresetSmoke Preset = "smoke"

	// PresetTraining generates a typical training-scene piece count.
	PresetTraining Preset = "training"

	// PresetStress generates a large scene for throughput testing.
	PresetStress Preset = "stress"
)

// Presets lists the valid presets in display order.
func Presets() []Preset {
	return []Preset{PresetSmoke, PresetTraining, PresetStress}
}

// Pieces returns the default piece count for a preset, or false when the
// preset is unknown.
func (p Preset) Pieces() (int, bool) {
	switch p {
	case PresetSmoke:
		return 25, true
	case PresetTraining:
		return 500, true
	case PresetStress:
		return 5000, true
	default:
		return 0, false
	}
}
