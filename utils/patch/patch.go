// Package patch distinguishes JSON fields that were omitted from fields sent as null
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is one optional member of a partial update body.
// Set is true when the key was present; Null is true when its value was null.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Ptr returns nil for an explicit null, otherwise a pointer to the value
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Of builds a present, non-null field
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}
