// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain_Key(t *testing.T) {
	testCases := []struct {
		Name  string
		Chain Chain
		Key   string
	}{
		{Name: "empty chain", Chain: Chain{}, Key: ""},
		{Name: "single key", Chain: Chain{Name("host")}, Key: "host"},
		{Name: "nested keys", Chain: Chain{Name("tls"), Name("certFile")}, Key: "tls.certFile"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert.Equal(t, testCase.Key, testCase.Chain.Key())
		})
	}
}

func TestPath(t *testing.T) {
	t.Run("will split on dots", func(t *testing.T) {
		assert.Equal(t, Chain{Name("otel"), Name("otlp"), Name("target")}, Path("otel.otlp.target"))
	})

	t.Run("will skip empty segments", func(t *testing.T) {
		assert.Equal(t, Chain{Name("tls"), Name("keyFile")}, Path(".tls..keyFile"))
	})
}
