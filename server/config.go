// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package server

const (
	// DefaultHost is the host a Server binds to when none is configured.
	DefaultHost = "0.0.0.0"

	// DefaultPort is the port a Server binds to when none is configured.
	DefaultPort uint = 8080
)

// TLSConfig names the key pair files used by KeyPairFiles.
type TLSConfig struct {
	CertFile string `config:"certFile"`
	KeyFile  string `config:"keyFile"`
}

// Config holds the values Bootstrap resolves a Server from.
type Config struct {
	Host string `config:"host"`
	Port uint   `config:"port"`

	// ContextPath is the path the application is mounted at. An
	// empty ContextPath is treated as not configured.
	ContextPath string `config:"contextPath"`

	Secure    bool      `config:"secure"`
	Http2Only bool      `config:"http2Only"`
	TLS       TLSConfig `config:"tls"`
}

// DefaultConfig returns the Config used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Host: DefaultHost,
		Port: DefaultPort,
	}
}
