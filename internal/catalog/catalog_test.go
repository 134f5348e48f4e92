package catalog

import "testing"

func TestCommonPartsIsSampleable(t *testing.T) {
	w := CommonParts()
	if w.Len() == 0 {
		t.Fatal("expected built-in parts")
	}
	normalized := w.NormalizedWeights()
	if len(normalized) != w.Len() {
		t.Fatalf("normalized len = %d, want %d", len(normalized), w.Len())
	}
	sum := 0.0
	for _, weight := range normalized {
		sum += weight
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Fatalf("normalized sum = %v, want 1", sum)
	}
}

func TestCommonColorsIsSampleable(t *testing.T) {
	w := CommonColors()
	if w.Len() == 0 {
		t.Fatal("expected built-in colors")
	}
	if len(w.NormalizedWeights()) != w.Len() {
		t.Fatal("expected positive total weight")
	}
}

func TestDistributionPreservesOrderAndClamps(t *testing.T) {
	entries := []Entry{
		{ID: "3001", Name: "Brick 2x4", Weight: 1.0},
		{ID: "3003", Name: "Brick 2x2", Weight: -0.5},
	}

	w := Distribution(entries)
	items := w.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != "3001" || items[1].ID != "3003" {
		t.Fatalf("order = [%s %s], want [3001 3003]", items[0].ID, items[1].ID)
	}
	if items[1].Weight != 0 {
		t.Fatalf("clamped weight = %v, want 0", items[1].Weight)
	}
}
