// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/z5labs/serverboot/binding"
	"github.com/z5labs/serverboot/optional"

	"github.com/stretchr/testify/assert"
)

func hello(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "hello")
}

func TestResolve(t *testing.T) {
	t.Run("will return an absent container", func(t *testing.T) {
		t.Run("if the application binding is nil", func(t *testing.T) {
			c := Resolve(context.Background(), nil)
			assert.False(t, c.IsPresent())
		})

		t.Run("if the application binding is unsatisfied", func(t *testing.T) {
			c := Resolve(context.Background(), binding.Unsatisfied[Application]())
			assert.False(t, c.IsPresent())
		})

		t.Run("if the application binding provides an absent value", func(t *testing.T) {
			var buf strings.Builder
			h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

			app := binding.FromOptional(optional.None[Application]())
			c := Resolve(context.Background(), app, LogHandler(h))
			assert.False(t, c.IsPresent())
			assert.Contains(t, buf.String(), "provided no application")
		})

		t.Run("if the application binding provides a nil application", func(t *testing.T) {
			app := binding.Of[Application](nil)
			c := Resolve(context.Background(), app)
			assert.False(t, c.IsPresent())
		})
	})

	t.Run("will return a container", func(t *testing.T) {
		t.Run("if the application binding provides an application", func(t *testing.T) {
			app := Endpoints{HandleFunc("/hello", hello)}

			c, ok := Resolve(context.Background(), binding.Of[Application](app)).Get()
			if !assert.True(t, ok) {
				return
			}
			es := c.Configuration().Endpoints()
			if !assert.Len(t, es, 1) {
				return
			}
			assert.Equal(t, "/hello", es[0].Pattern)
		})
	})
}

func TestContainer_ServeHTTP(t *testing.T) {
	t.Run("will dispatch to the matching endpoint", func(t *testing.T) {
		c := New(Endpoints{HandleFunc("/hello", hello)})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/hello", nil)
		c.ServeHTTP(w, r)

		resp := w.Result()
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "hello", string(b))
	})

	t.Run("will return not found", func(t *testing.T) {
		t.Run("if no endpoint matches", func(t *testing.T) {
			c := New(Endpoints{HandleFunc("/hello", hello)})

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/goodbye", nil)
			c.ServeHTTP(w, r)
			assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
		})

		t.Run("if the application is nil", func(t *testing.T) {
			c := New(nil)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			c.ServeHTTP(w, r)
			assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
		})
	})
}

// embeddedEndpoints aliases Endpoints so embedding it promotes the
// Endpoints method instead of creating a field named Endpoints.
type embeddedEndpoints = Endpoints

type declared struct {
	embeddedEndpoints

	path optional.Value[string]
}

func (d declared) DeclaredMountPath() optional.Value[string] {
	return d.path
}

type cyclic struct {
	embeddedEndpoints
}

func (c *cyclic) Unwrap() Application {
	return c
}

func TestFindMountPath(t *testing.T) {
	testCases := []struct {
		Name    string
		App     Application
		Path    string
		Present bool
	}{
		{
			Name:    "nil application",
			App:     nil,
			Present: false,
		},
		{
			Name:    "application without declaration",
			App:     Endpoints{},
			Present: false,
		},
		{
			Name:    "mounted application",
			App:     Mount("/v2", Endpoints{}),
			Path:    "/v2",
			Present: true,
		},
		{
			Name:    "declaration found through one wrapper",
			App:     NewResourceConfig(Mount("/v2", Endpoints{})),
			Path:    "/v2",
			Present: true,
		},
		{
			Name:    "declaration found through nested wrappers",
			App:     NewResourceConfig(NewResourceConfig(Mount("/v3", Endpoints{}))),
			Path:    "/v3",
			Present: true,
		},
		{
			Name:    "outermost declaration wins",
			App:     Mount("/outer", NewResourceConfig(Mount("/inner", Endpoints{}))),
			Path:    "/outer",
			Present: true,
		},
		{
			Name:    "empty declaration is still a declaration",
			App:     NewResourceConfig(Mount("", Endpoints{})),
			Path:    "",
			Present: true,
		},
		{
			Name:    "absent declaration continues the search",
			App:     declared{path: optional.None[string]()},
			Present: false,
		},
		{
			Name:    "wrapper without inner application",
			App:     NewResourceConfig(nil),
			Present: false,
		},
		{
			Name:    "cyclic wrapper",
			App:     &cyclic{},
			Present: false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			p, ok := FindMountPath(testCase.App).Get()
			if !assert.Equal(t, testCase.Present, ok) {
				return
			}
			assert.Equal(t, testCase.Path, p)
		})
	}
}

func TestResourceConfig_Endpoints(t *testing.T) {
	t.Run("will include the wrapped endpoints before its own", func(t *testing.T) {
		rc := NewResourceConfig(Endpoints{HandleFunc("/a", hello)}, HandleFunc("/b", hello))
		rc.Register(HandleFunc("/c", hello))

		var patterns []string
		for _, e := range rc.Endpoints() {
			patterns = append(patterns, e.Pattern)
		}
		assert.Equal(t, []string{"/a", "/b", "/c"}, patterns)
	})
}
