// Package patch models partial updates of nullable columns.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field distinguishes an absent JSON member from an explicit null.
//
//	{}                  -> Set=false
//	{"x": null}         -> Set=true, Null=true
//	{"x": 5}            -> Set=true, Value=5
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns the column value: nil for null, a pointer to Value otherwise.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Apply stores the column value under column in updates when the field was sent.
func (f Field[T]) Apply(updates map[string]any, column string) {
	if !f.Set {
		return
	}
	if f.Null {
		updates[column] = nil
		return
	}
	updates[column] = f.Value
}
