// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package server resolves the bind address and security settings of a
// HTTP server and runs it around an application container.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/z5labs/serverboot/container"
	"github.com/z5labs/serverboot/health"
	"github.com/z5labs/serverboot/internal/httpvalidate"
	"github.com/z5labs/serverboot/optional"
	"github.com/z5labs/serverboot/slogfield"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

// MissingTLSConfiguratorError is returned by Run for a secure Server
// which has no TLSConfigurator.
type MissingTLSConfiguratorError struct {
	URI BindURI
}

// Error implements the builtin error interface.
func (e MissingTLSConfiguratorError) Error() string {
	return fmt.Sprintf("secure server at %s has no tls configurator", e.URI)
}

type httpServerConfig struct {
	readTimeout       time.Duration
	readHeaderTimeout time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	maxHeaderBytes    int
}

// Server is a HTTP server bound to a BindURI. Servers are only
// constructed by Bootstrap.
type Server struct {
	uri       BindURI
	container optional.Value[*container.Container]
	secure    bool
	tls       optional.Value[TLSConfigurator]
	http2Only bool

	log    *slog.Logger
	listen func(string, string) (net.Listener, error)

	httpServer httpServerConfig

	started   *health.Started
	liveness  *health.Liveness
	readiness *health.Readiness
}

// URI
func (s *Server) URI() BindURI {
	return s.uri
}

// Secure reports whether the Server serves TLS.
func (s *Server) Secure() bool {
	return s.secure
}

// Container returns the container the Server dispatches to.
func (s *Server) Container() optional.Value[*container.Container] {
	return s.container
}

// TLSConfigurator
func (s *Server) TLSConfigurator() optional.Value[TLSConfigurator] {
	return s.tls
}

// String implements the fmt.Stringer interface.
func (s *Server) String() string {
	return fmt.Sprintf("server(uri=%s, secure=%t)", s.uri, s.secure)
}

// Run serves HTTP until ctx is cancelled. A cancelled ctx is not
// considered an error.
func (s *Server) Run(ctx context.Context) error {
	var tlsConfig *tls.Config
	if s.secure {
		tlsc, ok := s.tls.Get()
		if !ok {
			err := MissingTLSConfiguratorError{URI: s.uri}
			s.log.ErrorContext(ctx, "unable to serve tls", slogfield.Error(err))
			return err
		}

		cfg, err := tlsc.ConfigureTLS(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to configure tls", slogfield.Error(err))
			return err
		}
		tlsConfig = cfg
	}

	ls, err := s.listen("tcp", s.uri.Authority())
	if err != nil {
		s.log.ErrorContext(ctx, "failed to listen for connections", slogfield.Error(err))
		return err
	}
	if tlsConfig != nil {
		tlsConfig.NextProtos = append([]string{"h2"}, tlsConfig.NextProtos...)
		if s.http2Only {
			tlsConfig.NextProtos = []string{"h2"}
		}
		ls = tls.NewListener(ls, tlsConfig)
	}

	hs := &http.Server{
		Handler: otelhttp.NewHandler(
			s.handler(),
			"server",
			otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
		),
		ReadTimeout:       s.httpServer.readTimeout,
		ReadHeaderTimeout: s.httpServer.readHeaderTimeout,
		WriteTimeout:      s.httpServer.writeTimeout,
		IdleTimeout:       s.httpServer.idleTimeout,
		MaxHeaderBytes:    s.httpServer.maxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer s.log.Info("shut down server")

		s.readiness.NotReady()
		s.log.Info("shutting down server")
		return hs.Shutdown(ctx)
	})
	g.Go(func() error {
		s.started.Started()
		s.liveness.Alive()
		s.readiness.Ready()
		s.log.Info("started server", slogfield.String("addr", ls.Addr().String()), slogfield.Stringer("uri", s.uri))
		return hs.Serve(ls)
	})

	err = g.Wait()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	s.log.Error("server encountered unexpected error", slogfield.Error(err))
	return err
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	registerEndpoint(mux, "/health/startup", httpvalidate.Request(s.started, httpvalidate.ForMethods(http.MethodGet)))
	registerEndpoint(mux, "/health/liveness", httpvalidate.Request(s.liveness, httpvalidate.ForMethods(http.MethodGet)))
	registerEndpoint(mux, "/health/readiness", httpvalidate.Request(s.readiness, httpvalidate.ForMethods(http.MethodGet)))

	var app http.Handler = http.NotFoundHandler()
	if c, ok := s.container.Get(); ok && c != nil {
		app = c
	}
	if s.http2Only {
		app = httpvalidate.Request(app, httpvalidate.MinProto(2, 0))
	}

	path := strings.TrimSuffix(s.uri.Path(), "/")
	if path == "" {
		mux.Handle(rootPath, app)
		return mux
	}
	mux.Handle(path+"/", http.StripPrefix(path, app))
	return mux
}

func registerEndpoint(mux *http.ServeMux, path string, h http.Handler) {
	mux.Handle(
		path,
		otelhttp.WithRouteTag(path, h),
	)
}
