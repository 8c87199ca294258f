// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"github.com/z5labs/serverboot/config/key"

	"github.com/spf13/viper"
)

// Viper represents a Source backed by a [viper.Viper] instance.
type Viper struct {
	v *viper.Viper
}

// FromViper returns a Source which applies every key explicitly set on v,
// e.g. changed command line flags or bound environment variables. Flag
// defaults are never applied so they cannot override earlier sources.
func FromViper(v *viper.Viper) Viper {
	return Viper{v: v}
}

// Apply implements the Source interface.
func (src Viper) Apply(store Store) error {
	for _, k := range src.v.AllKeys() {
		if !src.v.IsSet(k) {
			continue
		}
		err := store.Set(key.Path(k), src.v.Get(k))
		if err != nil {
			return err
		}
	}
	return nil
}
