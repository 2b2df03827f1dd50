package models

import "encoding/json"

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// Absent fields are left untouched by partial updates; explicit null
// overwrites nullable columns.
type Optional[T any] struct {
	Value T
	Set   bool // field was present in the JSON document
	Valid bool // field held a non-null value
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true, Valid: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is invoked only for fields present in the document, so
// Set is always true here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// Arg renders the optional as a SQL argument: the value when valid,
// NULL when explicitly null.
func (o Optional[T]) Arg() any {
	if !o.Valid {
		return nil
	}
	return o.Value
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Set || !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
