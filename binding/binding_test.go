// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package binding

import (
	"testing"

	"github.com/z5labs/serverboot/optional"

	"github.com/stretchr/testify/assert"
)

func TestIsSatisfied(t *testing.T) {
	testCases := []struct {
		Name      string
		Point     Point[int]
		Satisfied bool
	}{
		{Name: "nil point", Point: nil, Satisfied: false},
		{Name: "unsatisfied point", Point: Unsatisfied[int](), Satisfied: false},
		{Name: "point of value", Point: Of(1), Satisfied: true},
		{Name: "point of absent value", Point: FromOptional(optional.None[int]()), Satisfied: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert.Equal(t, testCase.Satisfied, IsSatisfied(testCase.Point))
		})
	}
}

func TestUnsatisfied_Get(t *testing.T) {
	t.Run("will always return an absent value", func(t *testing.T) {
		p := Unsatisfied[string]()
		assert.False(t, p.Get().IsPresent())
	})
}

func TestProvider_Get(t *testing.T) {
	t.Run("will only call the provider func once", func(t *testing.T) {
		calls := 0
		p := Provider(func() optional.Value[int] {
			calls++
			return optional.Of(42)
		})

		for i := 0; i < 3; i++ {
			v, ok := p.Get().Get()
			if !assert.True(t, ok) {
				return
			}
			if !assert.Equal(t, 42, v) {
				return
			}
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("will be satisfied even if the value is absent", func(t *testing.T) {
		p := Provider(optional.None[int])
		assert.True(t, p.Satisfied())
		assert.False(t, p.Get().IsPresent())
	})
}
