// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	t.Run("will update the error ref value", func(t *testing.T) {
		t.Run("if a panic is recovered from and the ref is nil", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("hello world")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.NotEmpty(t, perr.Error()) {
				return
			}
			if !assert.Nil(t, perr.Unwrap()) {
				return
			}
			assert.Equal(t, "hello world", perr.Value)
		})

		t.Run("if a panic is recovered from and the ref is non-nil", func(t *testing.T) {
			funcErr := errors.New("error value")
			panicErr := errors.New("panic error")
			f := func() (err error) {
				defer Recover(&err)
				err = funcErr
				panic(panicErr)
			}

			err := f()

			if !assert.ErrorIs(t, err, funcErr) {
				return
			}
			assert.ErrorIs(t, err, panicErr)
		})
	})

	t.Run("will not update the error ref value", func(t *testing.T) {
		t.Run("if there is no panic", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			assert.Nil(t, f())
		})
	})
}

type closeFunc func() error

func (f closeFunc) Close() error {
	return f()
}

func TestClose(t *testing.T) {
	t.Run("will set a CloseError", func(t *testing.T) {
		t.Run("if the closer fails and the ref is nil", func(t *testing.T) {
			closeErr := errors.New("failed to close")
			f := func() (err error) {
				defer Close(&err, closeFunc(func() error { return closeErr }))
				return nil
			}

			err := f()

			var cerr CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			assert.ErrorIs(t, cerr, closeErr)
		})

		t.Run("if the closer fails and the ref is non-nil", func(t *testing.T) {
			funcErr := errors.New("func error")
			closeErr := errors.New("failed to close")
			f := func() (err error) {
				defer Close(&err, closeFunc(func() error { return closeErr }))
				return funcErr
			}

			err := f()

			if !assert.ErrorIs(t, err, funcErr) {
				return
			}
			assert.ErrorIs(t, err, closeErr)
		})
	})

	t.Run("will do nothing", func(t *testing.T) {
		t.Run("if the value is not a closer", func(t *testing.T) {
			f := func() (err error) {
				defer Close(&err, 1)
				return nil
			}

			assert.Nil(t, f())
		})
	})
}
