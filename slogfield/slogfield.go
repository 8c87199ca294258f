// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package slogfield provides typed constructors for the log attributes
// emitted while bootstrapping and running a server.
package slogfield

import (
	"fmt"
	"log/slog"
	"time"
)

// Any returns an slog.Attr for the supplied value.
func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Bool returns an slog.Attr for a bool.
func Bool(key string, value bool) slog.Attr {
	return slog.Bool(key, value)
}

// Duration returns an slog.Attr for a time.Duration.
func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

// Error returns an slog.Attr for a error.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// String returns an slog.Attr for a string.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Int returns an slog.Attr for a int.
func Int(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Uint returns an slog.Attr for a uint.
func Uint(key string, n uint) slog.Attr {
	return slog.Uint64(key, uint64(n))
}

// Uint32 returns an slog.Attr for a uint32.
func Uint32(key string, n uint32) slog.Attr {
	return slog.Uint64(key, uint64(n))
}

// Stringer returns an slog.Attr for the string form of s.
// A nil s is rendered as "<nil>".
func Stringer(key string, s fmt.Stringer) slog.Attr {
	if s == nil {
		return slog.String(key, "<nil>")
	}
	return slog.String(key, s.String())
}

// Operation returns the slog.Attr used to tag entry and exit traces.
func Operation(name string) slog.Attr {
	return slog.String("operation", name)
}
