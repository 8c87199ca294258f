// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package health provides the health metrics a server reports on its
// startup, liveness and readiness endpoints.
package health

import (
	"context"
	"net/http"
	"sync"
)

// Metric represents anything that can report its health status.
type Metric interface {
	Healthy(context.Context) bool
}

// Binary represents a health.Metric that is either healthy or not.
// The default value is represents a healthy state.
type Binary struct {
	mu        sync.Mutex
	unhealthy bool
}

// Toggle toggles the state of Binary.
func (m *Binary) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unhealthy = !m.unhealthy
}

// Healthy implements the Metric interface.
func (m *Binary) Healthy(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.unhealthy
}

// flag is a Metric which starts out unhealthy.
type flag struct {
	mu      sync.Mutex
	healthy bool
}

func (f *flag) set(healthy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthy = healthy
}

func (f *flag) Healthy(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthy
}

// Started reports whether a server has begun accepting connections.
// The zero value has not started.
type Started struct {
	flag
}

// Started marks the server as started.
func (s *Started) Started() {
	s.set(true)
}

// ServeHTTP implements the http.Handler interface.
func (s *Started) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serve(w, r, s)
}

// Liveness reports whether a server is alive. The zero value is not alive.
type Liveness struct {
	flag
}

// Alive marks the server as alive.
func (l *Liveness) Alive() {
	l.set(true)
}

// Dead marks the server as no longer alive.
func (l *Liveness) Dead() {
	l.set(false)
}

// ServeHTTP implements the http.Handler interface.
func (l *Liveness) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serve(w, r, l)
}

// Readiness reports whether a server is ready to handle requests.
// The zero value is not ready.
type Readiness struct {
	flag
}

// Ready marks the server as ready.
func (r *Readiness) Ready() {
	r.set(true)
}

// NotReady marks the server as not ready.
func (r *Readiness) NotReady() {
	r.set(false)
}

// ServeHTTP implements the http.Handler interface.
func (r *Readiness) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	serve(w, req, r)
}

// NewHandler wraps a health.Metric into an http.Handler.
//
// If m.Healthy returns true, then HTTP status code 200 is
// returned, else, HTTP status code 503 is returned.
func NewHandler(m Metric) http.Handler {
	if h, ok := m.(http.Handler); ok {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serve(w, r, m)
	})
}

func serve(w http.ResponseWriter, r *http.Request, m Metric) {
	if m.Healthy(r.Context()) {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
}

// AndMetric represents multiple Metrics all and'd together.
type AndMetric struct {
	metrics []Metric
}

// And returns a Metric where all the underlying Metrics healthy
// states are joined together via the logical and (&&) operator.
func And(metrics ...Metric) AndMetric {
	return AndMetric{
		metrics: metrics,
	}
}

// Healthy implements the Metric interface.
func (m AndMetric) Healthy(ctx context.Context) bool {
	for _, metric := range m.metrics {
		if !metric.Healthy(ctx) {
			return false
		}
	}
	return true
}
