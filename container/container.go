// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package container adapts an application descriptor into a request
// dispatching http.Handler.
package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/z5labs/serverboot/binding"
	"github.com/z5labs/serverboot/internal/noop"
	"github.com/z5labs/serverboot/optional"
	"github.com/z5labs/serverboot/slogfield"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Endpoint is a single route of an Application.
type Endpoint struct {
	// Pattern is a http.ServeMux pattern relative to the
	// context path the Application is mounted at.
	Pattern string
	Handler http.Handler
}

// Application describes the endpoints of a user supplied application.
type Application interface {
	Endpoints() []Endpoint
}

// MountPathDeclarer is implemented by Applications which declare the
// context path they should be mounted at.
type MountPathDeclarer interface {
	DeclaredMountPath() optional.Value[string]
}

// Unwrapper is implemented by Applications which wrap another Application.
type Unwrapper interface {
	Unwrap() Application
}

// Container is a http.Handler dispatching requests to the
// endpoints of an Application.
type Container struct {
	app Application
	mux *http.ServeMux
}

// New builds a Container for app. Every endpoint is tagged with
// its pattern for tracing.
func New(app Application) *Container {
	mux := http.NewServeMux()
	if app != nil {
		for _, e := range app.Endpoints() {
			mux.Handle(e.Pattern, otelhttp.WithRouteTag(e.Pattern, e.Handler))
		}
	}
	return &Container{
		app: app,
		mux: mux,
	}
}

// Configuration returns the Application the Container was built from.
func (c *Container) Configuration() Application {
	return c.app
}

// ServeHTTP implements the http.Handler interface.
func (c *Container) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mux.ServeHTTP(w, r)
}

// String implements the fmt.Stringer interface.
func (c *Container) String() string {
	return fmt.Sprintf("container(%T)", c.app)
}

type options struct {
	logHandler slog.Handler
}

// Option configures Resolve.
type Option func(*options)

// LogHandler sets the slog.Handler used by Resolve.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// Resolve builds a Container from the Application provided by app.
//
// The result is absent, and no error occurs, if app is nil, unsatisfied
// or provides an absent Application.
func Resolve(ctx context.Context, app binding.Point[Application], opts ...Option) optional.Value[*Container] {
	o := &options{
		logHandler: noop.LogHandler{},
	}
	for _, opt := range opts {
		opt(o)
	}
	log := slog.New(o.logHandler)

	log.DebugContext(ctx, "entry", slogfield.Operation("resolve_container"), slogfield.Any("application", app))
	result := resolve(ctx, log, app)
	log.DebugContext(ctx, "exit", slogfield.Operation("resolve_container"), slogfield.Stringer("container", result))
	return result
}

func resolve(ctx context.Context, log *slog.Logger, app binding.Point[Application]) optional.Value[*Container] {
	if !binding.IsSatisfied(app) {
		return optional.None[*Container]()
	}

	a, ok := app.Get().Get()
	if !ok || a == nil {
		log.WarnContext(ctx, "application binding is satisfied but provided no application")
		return optional.None[*Container]()
	}

	c := New(a)
	log.InfoContext(ctx, "created container", slogfield.Stringer("container", c))
	return optional.Of(c)
}
