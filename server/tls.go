// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

import (
	"context"
	"crypto/tls"
	"fmt"
)

// TLSConfigurator provides the TLS settings of a secure Server.
type TLSConfigurator interface {
	ConfigureTLS(context.Context) (*tls.Config, error)
}

// TLSConfiguratorFunc is a func implementation of TLSConfigurator.
type TLSConfiguratorFunc func(context.Context) (*tls.Config, error)

// ConfigureTLS implements the TLSConfigurator interface.
func (f TLSConfiguratorFunc) ConfigureTLS(ctx context.Context) (*tls.Config, error) {
	return f(ctx)
}

// StaticTLS returns a TLSConfigurator which always provides a clone of cfg.
func StaticTLS(cfg *tls.Config) TLSConfigurator {
	return TLSConfiguratorFunc(func(ctx context.Context) (*tls.Config, error) {
		return cfg.Clone(), nil
	})
}

// LoadKeyPairError
type LoadKeyPairError struct {
	CertFile string
	KeyFile  string
	Cause    error
}

// Error implements the builtin error interface.
func (e LoadKeyPairError) Error() string {
	return fmt.Sprintf("failed to load key pair from %s and %s: %s", e.CertFile, e.KeyFile, e.Cause)
}

// Unwrap allows LoadKeyPairError to be used with errors.Is and errors.As.
func (e LoadKeyPairError) Unwrap() error {
	return e.Cause
}

// KeyPairFiles returns a TLSConfigurator which loads a PEM encoded
// certificate and private key each time it is asked for a config.
func KeyPairFiles(certFile, keyFile string) TLSConfigurator {
	return TLSConfiguratorFunc(func(ctx context.Context) (*tls.Config, error) {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, LoadKeyPairError{
				CertFile: certFile,
				KeyFile:  keyFile,
				Cause:    err,
			}
		}
		return &tls.Config{
			Certificates: []tls.Certificate{cert},
		}, nil
	})
}
