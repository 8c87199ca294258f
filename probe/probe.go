// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package probe checks the health endpoints of a running server.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Kind names a health endpoint.
type Kind string

const (
	Startup   Kind = "startup"
	Liveness  Kind = "liveness"
	Readiness Kind = "readiness"
)

// UnknownKindError
type UnknownKindError struct {
	Kind Kind
}

// Error implements the builtin error interface.
func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown health endpoint: %q", e.Kind)
}

// UnhealthyError is returned when a health endpoint does not respond with 200.
type UnhealthyError struct {
	URL        string
	StatusCode int
}

// Error implements the builtin error interface.
func (e UnhealthyError) Error() string {
	return fmt.Sprintf("%s responded with status code: %d", e.URL, e.StatusCode)
}

// URL returns the health endpoint of kind for a server reachable at base.
func URL(base string, kind Kind) (string, error) {
	switch kind {
	case Startup, Liveness, Readiness:
	default:
		return "", UnknownKindError{Kind: kind}
	}
	return url.JoinPath(base, "health", string(kind))
}

// Check sends a GET request to target and reports an UnhealthyError
// for any response other than 200.
func Check(ctx context.Context, client *http.Client, target string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return UnhealthyError{
			URL:        target,
			StatusCode: resp.StatusCode,
		}
	}
	return nil
}
