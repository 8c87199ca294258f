// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"

	"github.com/z5labs/serverboot/config/key"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
//
// Only variables starting with the configured prefix are applied.
// The prefix is stripped and a double underscore separates nested
// keys, e.g. SERVERBOOT_TLS__CERTFILE sets tls.certfile.
type Env struct {
	prefix  string
	environ func() []string
}

// EnvOption configures an Env source.
type EnvOption func(*Env)

// EnvPrefix sets the required environment variable name prefix.
func EnvPrefix(prefix string) EnvOption {
	return func(e *Env) {
		e.prefix = prefix
	}
}

// FromEnv returns a Source which will apply its config
// from the environment variables available to the
// current process.
func FromEnv(opts ...EnvOption) Env {
	e := Env{
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Apply implements the Source interface.
func (src Env) Apply(store Store) error {
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, src.prefix)
		if !ok || name == "" {
			continue
		}

		var chain key.Chain
		for _, part := range strings.Split(name, "__") {
			chain = append(chain, key.Name(part))
		}
		err := store.Set(chain, v)
		if err != nil {
			return err
		}
	}
	return nil
}
