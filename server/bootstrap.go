// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/z5labs/serverboot/binding"
	"github.com/z5labs/serverboot/container"
	"github.com/z5labs/serverboot/health"
	"github.com/z5labs/serverboot/internal/noop"
	"github.com/z5labs/serverboot/optional"
	"github.com/z5labs/serverboot/slogfield"
)

const rootPath = "/"

type options struct {
	logHandler        slog.Handler
	readiness         *health.Readiness
	liveness          *health.Liveness
	http2Only         bool
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderBytes    int
}

// Option configures the Server built by Bootstrap.
type Option func(*options)

// LogHandler
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// Readiness
func Readiness(r *health.Readiness) Option {
	return func(o *options) {
		o.readiness = r
	}
}

// Liveness
func Liveness(l *health.Liveness) Option {
	return func(o *options) {
		o.liveness = l
	}
}

// Http2Only restricts the Server to HTTP/2 requests. Any other
// request is rejected with 505.
func Http2Only() Option {
	return func(o *options) {
		o.http2Only = true
	}
}

// ReadTimeout sets the maximum duration for reading an entire request.
// The default is 5 seconds.
func ReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// ReadHeaderTimeout sets the maximum duration for reading request headers.
// The default is 2 seconds.
func ReadHeaderTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readHeaderTimeout = d
	}
}

// WriteTimeout sets the maximum duration before timing out writes of
// the response. The default is 10 seconds.
func WriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// IdleTimeout sets the maximum duration to wait for the next request
// on a keep-alive connection. The default is 120 seconds.
func IdleTimeout(d time.Duration) Option {
	return func(o *options) {
		o.idleTimeout = d
	}
}

// MaxHeaderBytes sets the maximum size of request headers.
// The default is 1 MiB.
func MaxHeaderBytes(n int) Option {
	return func(o *options) {
		o.maxHeaderBytes = n
	}
}

// ResolveContextPath returns the path an application should be mounted at.
//
// A present, non-empty explicit path always wins. Otherwise, the mount
// path declared by the container's application, or any application it
// wraps, is used. Without either the root path "/" is returned.
func ResolveContextPath(explicit optional.Value[string], c optional.Value[*container.Container]) string {
	if p, ok := explicit.Get(); ok && p != "" {
		return p
	}

	ctr, ok := c.Get()
	if !ok || ctr == nil {
		return rootPath
	}

	p, ok := container.FindMountPath(ctr.Configuration()).Get()
	if !ok || p == "" {
		return rootPath
	}
	return p
}

// ResolveTLSConfigurator returns the TLSConfigurator provided by b,
// if and only if secure is set.
func ResolveTLSConfigurator(secure bool, b binding.Point[TLSConfigurator]) optional.Value[TLSConfigurator] {
	if !secure || !binding.IsSatisfied(b) {
		return optional.None[TLSConfigurator]()
	}
	return b.Get()
}

// Bootstrap constructs a Server from cfg and the provided container
// and TLS configurator bindings.
//
// No Server is constructed, and no error is returned, when the container
// binding is nil or unsatisfied. A ConfigurationError is returned when
// cfg does not form a valid BindURI.
func Bootstrap(
	ctx context.Context,
	cfg Config,
	c binding.Point[*container.Container],
	t binding.Point[TLSConfigurator],
	opts ...Option,
) (optional.Value[*Server], error) {
	o := &options{
		logHandler:        noop.LogHandler{},
		readiness:         &health.Readiness{},
		liveness:          &health.Liveness{},
		readTimeout:       5 * time.Second,
		readHeaderTimeout: 2 * time.Second,
		writeTimeout:      10 * time.Second,
		idleTimeout:       120 * time.Second,
		maxHeaderBytes:    1 << 20,
	}
	for _, opt := range opts {
		opt(o)
	}
	log := slog.New(o.logHandler)

	log.DebugContext(ctx, "entry", slogfield.Operation("bootstrap"))
	s, err := bootstrap(ctx, log, o, cfg, c, t)
	log.DebugContext(ctx, "exit", slogfield.Operation("bootstrap"), slogfield.Stringer("server", s), slogfield.Error(err))
	return s, err
}

func bootstrap(
	ctx context.Context,
	log *slog.Logger,
	o *options,
	cfg Config,
	c binding.Point[*container.Container],
	t binding.Point[TLSConfigurator],
) (optional.Value[*Server], error) {
	if !binding.IsSatisfied(c) {
		return optional.None[*Server](), nil
	}

	ctr := c.Get()
	if !ctr.IsPresent() {
		log.WarnContext(ctx, "no container present")
	}

	contextPath := ResolveContextPath(optional.NonZero(cfg.ContextPath), ctr)
	uri, err := NewBindURI(cfg.Host, cfg.Port, contextPath)
	if err != nil {
		log.ErrorContext(
			ctx,
			"failed to resolve bind uri",
			slogfield.String("host", cfg.Host),
			slogfield.Uint("port", cfg.Port),
			slogfield.String("context_path", contextPath),
			slogfield.Error(err),
		)
		return optional.None[*Server](), err
	}

	tlsc := ResolveTLSConfigurator(cfg.Secure, t)
	if cfg.Secure && !tlsc.IsPresent() {
		log.WarnContext(ctx, "secure server has no tls configurator")
	}

	s := &Server{
		uri:       uri,
		container: ctr,
		secure:    cfg.Secure,
		tls:       tlsc,
		http2Only: o.http2Only || cfg.Http2Only,
		log:       log,
		listen:    net.Listen,
		started:   &health.Started{},
		liveness:  o.liveness,
		readiness: o.readiness,
		httpServer: httpServerConfig{
			readTimeout:       o.readTimeout,
			readHeaderTimeout: o.readHeaderTimeout,
			writeTimeout:      o.writeTimeout,
			idleTimeout:       o.idleTimeout,
			maxHeaderBytes:    o.maxHeaderBytes,
		},
	}
	log.InfoContext(
		ctx,
		"created server",
		slogfield.Stringer("uri", uri),
		slogfield.Bool("secure", cfg.Secure),
		slogfield.Stringer("container", ctr),
	)
	return optional.Of(s), nil
}
