package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidPatch = errors.New("update body must be a JSON object matching the resource fields")

// Merge overlays the top-level keys of patch onto item. Keys absent from the
// patch keep their current values and an "id" key is ignored.
func Merge[T any](item T, patch []byte) (T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil || fields == nil {
		return item, ErrInvalidPatch
	}
	delete(fields, "id")

	current, err := json.Marshal(item)
	if err != nil {
		return item, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(current, &merged); err != nil {
		return item, err
	}
	for key, value := range fields {
		merged[key] = value
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return item, err
	}
	var result T
	if err := json.Unmarshal(out, &result); err != nil {
		return item, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	return result, nil
}
