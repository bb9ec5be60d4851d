package shared

import "encoding/json"

// Optional distinguishes an absent JSON field from an explicit null. Set is true
// whenever the key was present in the payload.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns nil when absent or null, otherwise a pointer to the value
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Present reports whether the field carries a non-null value
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
