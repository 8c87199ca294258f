// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelconfig builds the OpenTelemetry tracer provider a server
// reports its spans to.
package otelconfig

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names a span exporter.
type Exporter string

const (
	ExporterNone   Exporter = "none"
	ExporterStdout Exporter = "stdout"
	ExporterOTLP   Exporter = "otlp"
	ExporterGCP    Exporter = "gcp"
)

// Config selects and configures an Initializer.
type Config struct {
	Exporter    Exporter `config:"exporter"`
	ServiceName string   `config:"serviceName"`

	OTLP struct {
		Target string `config:"target"`
	} `config:"otlp"`

	GCP struct {
		ProjectId string `config:"projectId"`
	} `config:"gcp"`
}

// UnknownExporterError
type UnknownExporterError struct {
	Exporter Exporter
}

// Error implements the builtin error interface.
func (e UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown otel exporter: %q", e.Exporter)
}

// FromConfig returns the Initializer selected by cfg.Exporter.
// An empty exporter selects Noop.
func FromConfig(cfg Config) (Initializer, error) {
	switch cfg.Exporter {
	case "", ExporterNone:
		return Noop, nil
	case ExporterStdout:
		return Local(ServiceName(cfg.ServiceName)), nil
	case ExporterOTLP:
		return OTLP(ServiceName(cfg.ServiceName), OTLPTarget(cfg.OTLP.Target)), nil
	case ExporterGCP:
		return GoogleCloud(ServiceName(cfg.ServiceName), GoogleCloudProjectId(cfg.GCP.ProjectId)), nil
	default:
		return nil, UnknownExporterError{Exporter: cfg.Exporter}
	}
}

// Common
type Common struct {
	ServiceName string
}

// CommonOption applies to every Initializer.
type CommonOption interface {
	GoogleCloudOption
	LocalOption
	OTLPOption
}

type commonOptionFunc func(*Common)

func (f commonOptionFunc) ApplyGCP(cfg *GoogleCloudConfig) {
	f(&cfg.Common)
}

func (f commonOptionFunc) ApplyOTLP(cfg *OTLPConfig) {
	f(&cfg.Common)
}

func (f commonOptionFunc) ApplyLocal(cfg *LocalConfig) {
	f(&cfg.Common)
}

// ServiceName
func ServiceName(name string) CommonOption {
	return commonOptionFunc(func(c *Common) {
		c.ServiceName = name
	})
}

// Initializer creates a trace.TracerProvider.
type Initializer interface {
	Init(context.Context) (trace.TracerProvider, error)
}

// Noop returns a tracer provider which records nothing.
var Noop = noopInitializer{}

type noopInitializer struct{}

func (noopInitializer) Init(ctx context.Context) (trace.TracerProvider, error) {
	return noop.NewTracerProvider(), nil
}

// LocalConfig
type LocalConfig struct {
	Common

	Out io.Writer
}

// LocalOption
type LocalOption interface {
	ApplyLocal(*LocalConfig)
}

type localOptionFunc func(*LocalConfig)

func (f localOptionFunc) ApplyLocal(cfg *LocalConfig) {
	f(cfg)
}

// LocalWriter sets where spans are written. The default is os.Stdout.
func LocalWriter(w io.Writer) LocalOption {
	return localOptionFunc(func(lc *LocalConfig) {
		lc.Out = w
	})
}

// Local returns an Initializer which writes spans as JSON.
func Local(opts ...LocalOption) Initializer {
	cfg := LocalConfig{
		Out: os.Stdout,
	}
	for _, opt := range opts {
		opt.ApplyLocal(&cfg)
	}
	return cfg
}

// Init implements the Initializer interface.
func (cfg LocalConfig) Init(ctx context.Context) (trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Out),
	)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg.Common)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, nil
}

func newResource(ctx context.Context, c Common) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(c.ServiceName),
		),
	)
}
