// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package container

import (
	"net/http"

	"github.com/z5labs/serverboot/optional"
)

// maxUnwrapDepth bounds FindMountPath for cyclic wrapper chains.
const maxUnwrapDepth = 32

// Endpoints is an Application consisting of a fixed set of endpoints.
type Endpoints []Endpoint

// Endpoints implements the Application interface.
func (es Endpoints) Endpoints() []Endpoint {
	return es
}

// HandleFunc returns an Endpoint for the given handler func.
func HandleFunc(pattern string, f func(http.ResponseWriter, *http.Request)) Endpoint {
	return Endpoint{
		Pattern: pattern,
		Handler: http.HandlerFunc(f),
	}
}

type mounted struct {
	Application

	path string
}

func (m mounted) DeclaredMountPath() optional.Value[string] {
	return optional.Of(m.path)
}

// Mount returns an Application which declares that app should be
// mounted at path.
func Mount(path string, app Application) Application {
	return mounted{
		Application: app,
		path:        path,
	}
}

// ResourceConfig wraps an Application with additional endpoints.
type ResourceConfig struct {
	app       Application
	endpoints []Endpoint
}

// NewResourceConfig returns a ResourceConfig wrapping app.
func NewResourceConfig(app Application, endpoints ...Endpoint) *ResourceConfig {
	return &ResourceConfig{
		app:       app,
		endpoints: endpoints,
	}
}

// Register adds more endpoints to the ResourceConfig.
func (rc *ResourceConfig) Register(endpoints ...Endpoint) *ResourceConfig {
	rc.endpoints = append(rc.endpoints, endpoints...)
	return rc
}

// Endpoints implements the Application interface.
func (rc *ResourceConfig) Endpoints() []Endpoint {
	var es []Endpoint
	if rc.app != nil {
		es = append(es, rc.app.Endpoints()...)
	}
	return append(es, rc.endpoints...)
}

// Unwrap implements the Unwrapper interface.
func (rc *ResourceConfig) Unwrap() Application {
	return rc.app
}

// FindMountPath searches app, and any Applications it wraps, for the
// first declared mount path. The search stops at the first declaration,
// even an empty one, or once no further Application is wrapped.
func FindMountPath(app Application) optional.Value[string] {
	for i := 0; app != nil && i < maxUnwrapDepth; i++ {
		if d, ok := app.(MountPathDeclarer); ok {
			p := d.DeclaredMountPath()
			if p.IsPresent() {
				return p
			}
		}

		u, ok := app.(Unwrapper)
		if !ok {
			break
		}
		app = u.Unwrap()
	}
	return optional.None[string]()
}
