// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package lifecycle

import (
	"context"

	"github.com/z5labs/serverboot/otelconfig"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// ManageOTel registers hooks with lc which install the tracer
// provider built by f before a server runs and shut it down after.
func ManageOTel(lc *Context, f func(context.Context) (otelconfig.Initializer, error)) {
	lc.OnPreRun(HookFunc(func(ctx context.Context) error {
		initer, err := f(ctx)
		if err != nil {
			return err
		}
		tp, err := initer.Init(ctx)
		if err != nil {
			return err
		}
		otel.SetTracerProvider(tp)
		// need to set this so traces can propagate
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
		return nil
	}))

	lc.OnPostRun(HookFunc(func(ctx context.Context) error {
		tp := otel.GetTracerProvider()
		stp, ok := tp.(interface {
			Shutdown(context.Context) error
		})
		if !ok {
			return nil
		}
		return stp.Shutdown(ctx)
	}))
}
