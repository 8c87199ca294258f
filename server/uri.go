// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Scheme is the placeholder scheme of every BindURI. Only the
// authority and path of a BindURI are meaningful.
const Scheme = "ignored"

const maxPort = 65535

// ConfigurationError is returned when the configured host, port and
// context path do not form a valid BindURI.
type ConfigurationError struct {
	Cause error
}

// Error implements the builtin error interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid server configuration: %s", e.Cause)
}

// Unwrap allows ConfigurationError to be used with errors.Is and errors.As.
func (e ConfigurationError) Unwrap() error {
	return e.Cause
}

// PortOutOfRangeError
type PortOutOfRangeError struct {
	Port uint
}

// Error implements the builtin error interface.
func (e PortOutOfRangeError) Error() string {
	return fmt.Sprintf("port out of range: %d", e.Port)
}

// InvalidContextPathError is returned for a context path which is not
// absolute or would carry a query or fragment.
type InvalidContextPathError struct {
	Path string
}

// Error implements the builtin error interface.
func (e InvalidContextPathError) Error() string {
	return fmt.Sprintf("invalid context path: %q", e.Path)
}

// BindURI is the effective address a Server listens on and the path
// its application is mounted at.
//
// BindURI values are comparable. The same host, port and path always
// produce equal BindURIs.
type BindURI struct {
	host string
	port uint
	path string
}

// NewBindURI validates host, port and path as the authority and path
// of an absolute URI. Any failure is returned as a ConfigurationError.
func NewBindURI(host string, port uint, path string) (BindURI, error) {
	if port > maxPort {
		return BindURI{}, ConfigurationError{Cause: PortOutOfRangeError{Port: port}}
	}
	if !strings.HasPrefix(path, "/") {
		return BindURI{}, ConfigurationError{Cause: InvalidContextPathError{Path: path}}
	}

	b := BindURI{
		host: host,
		port: port,
		path: path,
	}
	u, err := url.Parse(b.String())
	if err != nil {
		return BindURI{}, ConfigurationError{Cause: err}
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return BindURI{}, ConfigurationError{Cause: InvalidContextPathError{Path: path}}
	}
	return b, nil
}

// Host
func (b BindURI) Host() string {
	return b.host
}

// Port
func (b BindURI) Port() uint {
	return b.port
}

// Path returns the context path.
func (b BindURI) Path() string {
	return b.path
}

// Authority returns the host and port joined for use as a listen address.
func (b BindURI) Authority() string {
	return net.JoinHostPort(b.host, strconv.FormatUint(uint64(b.port), 10))
}

// URL returns b as a *url.URL.
func (b BindURI) URL() *url.URL {
	// NewBindURI already guarantees b.String() parses.
	u, _ := url.Parse(b.String())
	return u
}

// String implements the fmt.Stringer interface.
func (b BindURI) String() string {
	return Scheme + "://" + b.Authority() + b.path
}
