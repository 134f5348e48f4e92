// Package catalog defines the part and color catalog that supplies weighted
// entries to the distribution engine.
//
// A catalog stores (id, name, weight) triples for LDraw parts and colors.
// Implementations of the Store interface (e.g., using SQLite) can be found
// in subpackages.
package catalog

import (
	"context"
	"errors"

	"github.com/brickscope/brickscope/internal/distribution"
)

// ErrNotFound indicates a requested catalog entry is missing.
var ErrNotFound = errors.New("catalog entry not found")

// Entry is one catalog row: a part or color with its sampling weight.
type Entry struct {
	ID     string
	Name   string
	Weight float64
}

// Store persists catalog entries.
type Store interface {
	PutPart(ctx context.Context, entry Entry) error
	PutColor(ctx context.Context, entry Entry) error
	Part(ctx context.Context, id string) (Entry, error)
	Color(ctx context.Context, id string) (Entry, error)
	Parts(ctx context.Context) ([]Entry, error)
	Colors(ctx context.Context) ([]Entry, error)
	Close() error
}

// Distribution converts catalog entries into a weighted distribution,
// preserving entry order.
func Distribution(entries []Entry) *distribution.Weighted {
	w := distribution.New()
	for _, entry := range entries {
		w.AddItem(entry.ID, entry.Name, entry.Weight)
	}
	return w
}
