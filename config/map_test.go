// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/z5labs/serverboot/config/key"

	"github.com/stretchr/testify/assert"
)

func TestMap_Apply(t *testing.T) {
	t.Run("will properly construct key.Chain for", func(t *testing.T) {
		testCases := []struct {
			Name string
			M    Map
			Keys []string
		}{
			{
				Name: "single top level key",
				M:    Map{"host": "0.0.0.0"},
				Keys: []string{"host"},
			},
			{
				Name: "multiple nested keys",
				M: Map{
					"tls": map[string]any{
						"certFile": "server.crt",
						"keyFile":  "server.key",
					},
				},
				Keys: []string{"tls.certFile", "tls.keyFile"},
			},
			{
				Name: "nested Map values",
				M: Map{
					"otel": Map{
						"otlp": Map{"target": "localhost:4317"},
					},
				},
				Keys: []string{"otel.otlp.target"},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				var keys []string
				store := storeFunc(func(k key.Keyer, v any) error {
					keys = append(keys, k.Key())
					return nil
				})

				err := testCase.M.Apply(store)
				if !assert.Nil(t, err) {
					return
				}
				slices.Sort(keys)
				assert.Equal(t, testCase.Keys, keys)
			})
		}
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the store fails to set a nested key", func(t *testing.T) {
			storeErr := errors.New("failed to set")
			store := storeFunc(func(k key.Keyer, v any) error {
				if strings.Contains(k.Key(), ".") {
					return storeErr
				}
				return nil
			})

			err := Map{"tls": map[string]any{"certFile": "x"}}.Apply(store)
			assert.ErrorIs(t, err, storeErr)
		})
	})
}
