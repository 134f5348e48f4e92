package catalog

import "github.com/brickscope/brickscope/internal/distribution"

// CommonParts returns the built-in distribution of common bricks and plates,
// used when no catalog database is configured.
func CommonParts() *distribution.Weighted {
	w := distribution.New()

	// Bricks carry higher weights than plates.
	w.AddItem("3001", "Brick 2x4", 1.0)
	w.AddItem("3002", "Brick 2x3", 0.8)
	w.AddItem("3003", "Brick 2x2", 0.9)
	w.AddItem("3004", "Brick 1x2", 1.0)
	w.AddItem("3005", "Brick 1x1", 0.7)

	w.AddItem("3021", "Plate 2x3", 0.6)
	w.AddItem("3022", "Plate 2x2", 0.7)
	w.AddItem("3023", "Plate 1x2", 0.8)
	w.AddItem("3024", "Plate 1x1", 0.5)

	return w
}

// CommonColors returns the built-in distribution of common LDraw colors.
func CommonColors() *distribution.Weighted {
	w := distribution.New()

	// Primary colors carry higher weights than neutrals.
	w.AddItem("4", "Red", 1.0)
	w.AddItem("1", "Blue", 1.0)
	w.AddItem("2", "Green", 0.8)
	w.AddItem("14", "Yellow", 0.9)

	w.AddItem("0", "Black", 0.7)
	w.AddItem("15", "White", 0.7)
	w.AddItem("72", "Dark Gray", 0.5)

	return w
}
