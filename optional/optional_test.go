// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Get(t *testing.T) {
	t.Run("will report absent", func(t *testing.T) {
		t.Run("if the zero Value is used", func(t *testing.T) {
			var v Value[string]
			_, ok := v.Get()
			assert.False(t, ok)
			assert.False(t, v.IsPresent())
		})

		t.Run("if None is used", func(t *testing.T) {
			v := None[int]()
			_, ok := v.Get()
			assert.False(t, ok)
		})
	})

	t.Run("will report present", func(t *testing.T) {
		t.Run("if Of is used even with a zero value", func(t *testing.T) {
			v := Of("")
			s, ok := v.Get()
			assert.True(t, ok)
			assert.Equal(t, "", s)
		})
	})
}

func TestNonZero(t *testing.T) {
	testCases := []struct {
		Name    string
		In      string
		Present bool
	}{
		{Name: "empty string is absent", In: "", Present: false},
		{Name: "non-empty string is present", In: "/api", Present: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			v := NonZero(testCase.In)
			assert.Equal(t, testCase.Present, v.IsPresent())
		})
	}
}

func TestValue_OrElse(t *testing.T) {
	t.Run("will return the default", func(t *testing.T) {
		t.Run("if the value is absent", func(t *testing.T) {
			assert.Equal(t, "/", None[string]().OrElse("/"))
		})
	})

	t.Run("will return the value", func(t *testing.T) {
		t.Run("if the value is present", func(t *testing.T) {
			assert.Equal(t, "/v2", Of("/v2").OrElse("/"))
		})
	})
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "absent", None[int]().String())
	assert.Equal(t, "present(8080)", Of(8080).String())
}
