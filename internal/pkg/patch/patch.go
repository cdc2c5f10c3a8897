package patch

import "encoding/json"

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Field is a patch value for a nullable column: unset, set to null, or set to a value.
type Field[T any] struct {
	set   bool
	value *T
}

func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: &v}
}

func Null[T any]() Field[T] {
	return Field[T]{set: true}
}

// FromPtr sets the field to v, or to null when v is nil.
func FromPtr[T any](v *T) Field[T] {
	if v == nil {
		return Null[T]()
	}
	return Set(*v)
}

func (f Field[T]) IsSet() bool { return f.set }

func (f Field[T]) Value() *T { return f.value }

// Or returns the patched value when set, current otherwise.
func (f Field[T]) Or(current *T) *T {
	if !f.set {
		return current
	}
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// UnmarshalJSON marks the field as set; a JSON null sets it to null.
// Fields absent from the document keep their zero value and stay unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if string(data) == "null" {
		f.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = &v
	return nil
}
