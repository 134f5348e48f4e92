// Package distribution implements weighted random sampling of parts and
// colors for synthetic brick-scene dataset generation.
package distribution

import "encoding/json"

// Item is one candidate value in a weighted distribution.
//
// IDs are lookup keys but uniqueness is not enforced: callers may append
// duplicate IDs, and the lookup operations on Weighted document how
// duplicates are resolved.
type Item struct {
	ID     string
	Name   string
	Weight float64
}

// NewItem creates an item with the weight clamped to be non-negative.
// Negative weights are silently clamped to 0 rather than rejected so that
// upstream editors can never produce an invalid item.
func NewItem(id, name string, weight float64) Item {
	return Item{ID: id, Name: name, Weight: clampWeight(weight)}
}

func clampWeight(weight float64) float64 {
	if weight < 0 {
		return 0
	}
	return weight
}

// MarshalJSON encodes the item as {"id": ..., "name": ..., "weight": ...}.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	}{ID: i.ID, Name: i.Name, Weight: i.Weight})
}

// UnmarshalJSON decodes an item payload. The id and name keys are required;
// weight defaults to 1.0 so files persisted before the weight field existed
// continue to load.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     *string  `json:"id"`
		Name   *string  `json:"name"`
		Weight *float64 `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == nil {
		return &MissingFieldError{Field: "id"}
	}
	if raw.Name == nil {
		return &MissingFieldError{Field: "name"}
	}
	weight := 1.0
	if raw.Weight != nil {
		weight = *raw.Weight
	}
	*i = NewItem(*raw.ID, *raw.Name, weight)
	return nil
}
