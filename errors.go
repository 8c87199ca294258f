// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package serverboot

import "fmt"

// ConfigReadError
type ConfigReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read config source(s): %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigReadError) Unwrap() error {
	return e.Cause
}

// ConfigUnmarshalError
type ConfigUnmarshalError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigUnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal config: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigUnmarshalError) Unwrap() error {
	return e.Cause
}

// HookError is returned when a lifecycle hook fails.
type HookError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e HookError) Error() string {
	return fmt.Sprintf("lifecycle hook failed: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e HookError) Unwrap() error {
	return e.Cause
}

// BootstrapError
type BootstrapError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e BootstrapError) Error() string {
	return fmt.Sprintf("failed to bootstrap server: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e BootstrapError) Unwrap() error {
	return e.Cause
}

// RunError
type RunError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e RunError) Error() string {
	return fmt.Sprintf("failed to run server: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e RunError) Unwrap() error {
	return e.Cause
}

// ProbeError is returned by the probe command for an unhealthy server.
type ProbeError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ProbeError) Error() string {
	return fmt.Sprintf("probe failed: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ProbeError) Unwrap() error {
	return e.Cause
}
