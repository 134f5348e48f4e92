package random

import "testing"

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("new seed: %v", err)
	}
}

// TestSeedVaries draws several seeds and ensures they are not all equal; a
// collision across every draw would indicate a broken entropy source.
func TestSeedVaries(t *testing.T) {
	first := Seed()
	for i := 0; i < 4; i++ {
		if Seed() != first {
			return
		}
	}
	t.Fatal("expected varying seeds")
}
