// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package binding provides handles to collaborators which may resolve
// to zero or one instances.
//
// A nil [Point] represents a binding which is absent entirely. A non-nil
// [Point] may still be unsatisfied, meaning no provider exists for it, or
// satisfied and yet provide an absent value.
package binding

import (
	"fmt"
	"sync"

	"github.com/z5labs/serverboot/optional"
)

// Point is a handle which may resolve to zero or one instances of T.
type Point[T any] interface {
	// Satisfied reports whether a provider for T exists.
	Satisfied() bool

	// Get returns the provided value. It is always absent
	// for unsatisfied Points.
	Get() optional.Value[T]
}

type unsatisfied[T any] struct{}

func (unsatisfied[T]) Satisfied() bool { return false }

func (unsatisfied[T]) Get() optional.Value[T] { return optional.None[T]() }

func (unsatisfied[T]) String() string { return "unsatisfied" }

// Unsatisfied returns a Point with no provider.
func Unsatisfied[T any]() Point[T] {
	return unsatisfied[T]{}
}

type value[T any] struct {
	v optional.Value[T]
}

func (value[T]) Satisfied() bool { return true }

func (p value[T]) Get() optional.Value[T] { return p.v }

func (p value[T]) String() string { return fmt.Sprintf("satisfied(%s)", p.v) }

// Of returns a satisfied Point which always provides v.
func Of[T any](v T) Point[T] {
	return value[T]{v: optional.Of(v)}
}

// FromOptional returns a satisfied Point which provides v. The
// provided value is absent when v is absent.
func FromOptional[T any](v optional.Value[T]) Point[T] {
	return value[T]{v: v}
}

type provider[T any] struct {
	once sync.Once
	f    func() optional.Value[T]
	v    optional.Value[T]
}

func (*provider[T]) Satisfied() bool { return true }

func (p *provider[T]) Get() optional.Value[T] {
	p.once.Do(func() {
		p.v = p.f()
	})
	return p.v
}

// Provider returns a satisfied Point whose value is lazily computed
// by f. f is called at most once.
func Provider[T any](f func() optional.Value[T]) Point[T] {
	return &provider[T]{f: f}
}

// IsSatisfied reports whether p is non-nil and satisfied.
func IsSatisfied[T any](p Point[T]) bool {
	return p != nil && p.Satisfied()
}
