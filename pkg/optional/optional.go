// Package optional provides a tri-state JSON field: absent, explicit null, or
// a concrete value. Partial-update payloads need the distinction because null
// is dropped during merge while a value overwrites.
package optional

import "encoding/json"

// Optional wraps a field that may be absent from a JSON document, present as
// null, or present with a value. The zero value means absent.
type Optional[T any] struct {
	present bool
	null    bool
	value   T
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{present: true, value: v}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// Present reports whether the field appeared in the document at all.
func (o Optional[T]) Present() bool {
	return o.present
}

// IsNull reports whether the field appeared as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the value and true only when the field was present with a
// non-null value.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// UnmarshalJSON is only invoked for present fields, so decoding marks the
// Optional present and distinguishes null from a value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		o.null = true
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON renders null for absent or null states.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
