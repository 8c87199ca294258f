// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package noop provides implementations which discard everything.
package noop

import (
	"context"
	"log/slog"
)

// LogHandler is the default slog.Handler for every component
// which accepts a log handler option.
type LogHandler struct{}

func (LogHandler) Enabled(_ context.Context, _ slog.Level) bool  { return false }
func (LogHandler) Handle(_ context.Context, _ slog.Record) error { return nil }
func (h LogHandler) WithAttrs(_ []slog.Attr) slog.Handler        { return h }
func (h LogHandler) WithGroup(_ string) slog.Handler             { return h }

// Logger returns a *slog.Logger backed by LogHandler.
func Logger() *slog.Logger {
	return slog.New(LogHandler{})
}
