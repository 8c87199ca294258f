// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides hooks which run before and after a server runs.
package lifecycle

import (
	"context"
	"errors"
)

// Hook represents functionality that needs to be performed
// at a specific "time" relative to a server running.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MultiHook returns a [Hook] that's the logical concatenation
// of the provided [Hook]s. They're applied sequentially and
// every [Hook] runs even if an earlier one fails.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

// Context collects the [Hook]s to run around a server.
type Context struct {
	preRuns  multiHook
	postRuns multiHook
}

// PreRun returns the [Hook] to execute once configuration is
// read and before the server is bootstrapped.
func (c *Context) PreRun() Hook {
	return c.preRuns
}

// OnPreRun registers hook to be executed by [Context.PreRun].
func (c *Context) OnPreRun(hook Hook) {
	c.preRuns = append(c.preRuns, hook)
}

// PostRun returns the [Hook] to execute after the server stops,
// regardless of whether it failed.
func (c *Context) PostRun() Hook {
	return c.postRuns
}

// OnPostRun registers hook to be executed by [Context.PostRun].
func (c *Context) OnPostRun(hook Hook) {
	c.postRuns = append(c.postRuns, hook)
}

type key struct{}

var contextKey = &key{}

// NewContext returns a new [context.Context] containing the lifecycle [Context].
func NewContext(parent context.Context, c *Context) context.Context {
	return context.WithValue(parent, contextKey, c)
}

// FromContext tries to extract a lifecycle [Context] from the given [context.Context].
func FromContext(ctx context.Context) (*Context, bool) {
	lc, ok := ctx.Value(contextKey).(*Context)
	return lc, ok
}
