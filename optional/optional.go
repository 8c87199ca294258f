// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package optional provides a value type which may or may not be present.
package optional

import "fmt"

// Value represents a value of type T which is either absent or present.
// The zero Value is absent.
type Value[T any] struct {
	v   T
	set bool
}

// Of returns a present Value holding v.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// None returns an absent Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// NonZero returns an absent Value if v is the zero value
// for its type, otherwise a present Value holding v.
func NonZero[T comparable](v T) Value[T] {
	var zero T
	if v == zero {
		return None[T]()
	}
	return Of(v)
}

// Get returns the underlying value and whether or not it is present.
func (v Value[T]) Get() (T, bool) {
	return v.v, v.set
}

// IsPresent reports whether or not the value is present.
func (v Value[T]) IsPresent() bool {
	return v.set
}

// OrElse returns the underlying value if present, otherwise def.
func (v Value[T]) OrElse(def T) T {
	if !v.set {
		return def
	}
	return v.v
}

// String implements the [fmt.Stringer] interface.
func (v Value[T]) String() string {
	if !v.set {
		return "absent"
	}
	return fmt.Sprintf("present(%v)", v.v)
}
