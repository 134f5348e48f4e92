package distribution

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"sort"

	"github.com/brickscope/brickscope/internal/random"
)

// Weighted is an ordered collection of items sampled with replacement by
// relative weight. Insertion order is preserved for serialization stability.
//
// Sampling holds no shared state: every Sample call constructs its own
// generator, so distinct Weighted values are safe to use from different
// goroutines without external locking.
type Weighted struct {
	items []Item
}

// New creates a distribution from the given items. Item weights are clamped
// to be non-negative.
func New(items ...Item) *Weighted {
	clamped := make([]Item, len(items))
	for i, item := range items {
		clamped[i] = NewItem(item.ID, item.Name, item.Weight)
	}
	return &Weighted{items: clamped}
}

// Items returns a copy of the items in insertion order.
func (w *Weighted) Items() []Item {
	if w == nil {
		return nil
	}
	out := make([]Item, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of items, counting duplicates.
func (w *Weighted) Len() int {
	if w == nil {
		return 0
	}
	return len(w.items)
}

// AddItem appends a new item. No duplicate check is performed.
func (w *Weighted) AddItem(id, name string, weight float64) {
	w.items = append(w.items, NewItem(id, name, weight))
}

// RemoveItem removes every item whose ID matches.
func (w *Weighted) RemoveItem(id string) {
	kept := w.items[:0]
	for _, item := range w.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	w.items = kept
}

// Item returns the first item whose ID matches.
func (w *Weighted) Item(id string) (Item, bool) {
	for _, item := range w.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// SetWeight updates the weight of the first item whose ID matches, clamping
// negative values to 0. It is a no-op when the ID is absent.
func (w *Weighted) SetWeight(id string, weight float64) {
	for i := range w.items {
		if w.items[i].ID == id {
			w.items[i].Weight = clampWeight(weight)
			return
		}
	}
}

// NormalizedWeights returns each item's weight divided by the weight total,
// in item order. It returns an empty slice when the distribution is empty or
// every weight is 0; Sample treats that as the signal to draw uniformly.
func (w *Weighted) NormalizedWeights() []float64 {
	if w == nil || len(w.items) == 0 {
		return nil
	}
	total := 0.0
	for _, item := range w.items {
		total += item.Weight
	}
	if total == 0 {
		return nil
	}
	normalized := make([]float64, len(w.items))
	for i, item := range w.items {
		normalized[i] = item.Weight / total
	}
	return normalized
}

// Sample draws count items with replacement.
//
// # Determinism
//
// When seed is non-nil the draw uses a private generator seeded from it, so
// the same distribution and seed always produce the same sequence. When seed
// is nil the generator is seeded from crypto/rand and the draw is not
// reproducible.
//
// # Degenerate distributions
//
// An empty distribution returns an empty result regardless of count. A
// distribution whose weights are all 0 is still usable: the draw falls back
// to uniform selection over the items, ignoring weights.
func (w *Weighted) Sample(count int, seed *int64) []Item {
	if w == nil || len(w.items) == 0 || count <= 0 {
		return nil
	}

	rng := newRNG(seed)
	out := make([]Item, count)

	normalized := w.NormalizedWeights()
	if len(normalized) == 0 {
		for i := range out {
			out[i] = w.items[rng.Intn(len(w.items))]
		}
		return out
	}

	// Prefix sums over the normalized weights; each draw bisects with a
	// uniform variate. The search wants the first prefix strictly greater
	// than the variate so zero-weight items are never selected.
	prefix := make([]float64, len(normalized))
	sum := 0.0
	for i, weight := range normalized {
		sum += weight
		prefix[i] = sum
	}

	for i := range out {
		v := rng.Float64()
		idx := sort.Search(len(prefix), func(j int) bool { return prefix[j] > v })
		if idx == len(prefix) {
			// Floating slop can leave the final prefix below 1.
			idx = len(prefix) - 1
		}
		out[i] = w.items[idx]
	}
	return out
}

// ExpectedCounts returns the rounded expected number of draws per item ID
// for the given total, using round-half-to-even. It is a display estimate
// only: the rounded counts are not reconciled and may not sum to total, so
// it must not be used as an allocation mechanism. The result is empty when
// the weight total is 0.
func (w *Weighted) ExpectedCounts(total int) map[string]int {
	normalized := w.NormalizedWeights()
	counts := map[string]int{}
	for i, weight := range normalized {
		counts[w.items[i].ID] = int(math.RoundToEven(weight * float64(total)))
	}
	return counts
}

// MarshalJSON encodes the distribution as {"items": [...]}.
func (w *Weighted) MarshalJSON() ([]byte, error) {
	items := w.items
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(struct {
		Items []Item `json:"items"`
	}{Items: items})
}

// UnmarshalJSON decodes a distribution payload. The items key is required.
func (w *Weighted) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items *[]Item `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Items == nil {
		return &MissingFieldError{Field: "items"}
	}
	w.items = *raw.Items
	return nil
}

// Save writes the distribution to path as indented UTF-8 JSON.
func (w *Weighted) Save(path string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a distribution from a JSON file written by Save. Failures are
// reported as a FileError wrapping the underlying cause.
func Load(path string) (*Weighted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	var w Weighted
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return &w, nil
}

func newRNG(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(random.Seed()))
}
