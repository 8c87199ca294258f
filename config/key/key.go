// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package key provides types for strongly typed keys in key value pairs.
package key

import (
	"strings"
)

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Chain represents nested keys.
type Chain []Keyer

// Key implements the [Keyer] interface.
func (k Chain) Key() string {
	ss := make([]string, len(k))
	for i, kk := range k {
		ss[i] = kk.Key()
	}
	return strings.Join(ss, ".")
}

// Name represents a single key. Name can be used other keys.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Path splits a dotted path, e.g. "tls.certFile", into a Chain.
func Path(p string) Chain {
	parts := strings.Split(p, ".")
	chain := make(Chain, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		chain = append(chain, Name(part))
	}
	return chain
}
