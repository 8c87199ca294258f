// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package httpvalidate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestForMethods(t *testing.T) {
	t.Run("will return 405", func(t *testing.T) {
		t.Run("if the method is not allowed", func(t *testing.T) {
			h := Request(ok, ForMethods(http.MethodGet, http.MethodHead))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/health/readiness", nil)
			h.ServeHTTP(w, r)

			resp := w.Result()
			if !assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode) {
				return
			}
			assert.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
		})
	})

	t.Run("will call the wrapped handler", func(t *testing.T) {
		t.Run("if the method is allowed", func(t *testing.T) {
			h := Request(ok, ForMethods(http.MethodGet))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)
			h.ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Result().StatusCode)
		})
	})
}

func TestMinProto(t *testing.T) {
	t.Run("will return 505", func(t *testing.T) {
		t.Run("if the protocol version is too low", func(t *testing.T) {
			h := Request(ok, MinProto(2, 0))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			h.ServeHTTP(w, r)

			assert.Equal(t, http.StatusHTTPVersionNotSupported, w.Result().StatusCode)
		})
	})
}
