// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package serverboot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/serverboot/config"
	"github.com/z5labs/serverboot/config/configtmpl"
	"github.com/z5labs/serverboot/otelconfig"
	"github.com/z5labs/serverboot/otelslog"
	"github.com/z5labs/serverboot/server"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the serve command.
const EnvPrefix = "SERVERBOOT"

// LogConfig
type LogConfig struct {
	Level  slog.Level `config:"level"`
	Format string     `config:"format"`
}

// Config is everything the serve command is configured with.
type Config struct {
	Server server.Config     `config:",squash"`
	OTel   otelconfig.Config `config:"otel"`
	Log    LogConfig         `config:"log"`
}

// envKeys are read from the environment even if no flag exists for them.
var envKeys = []string{
	"host",
	"port",
	"contextPath",
	"secure",
	"http2Only",
	"tls.certFile",
	"tls.keyFile",
	"otel.exporter",
	"otel.serviceName",
	"otel.otlp.target",
	"otel.gcp.projectId",
	"log.level",
	"log.format",
}

func defaultConfig() config.Map {
	return config.Map{
		"host":   server.DefaultHost,
		"port":   server.DefaultPort,
		"secure": false,
		"otel": config.Map{
			"exporter": string(otelconfig.ExporterNone),
		},
		"log": config.Map{
			"level":  slog.LevelInfo.String(),
			"format": "json",
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		// BindEnv only fails without a key.
		_ = v.BindEnv(k)
	}
	return v
}

func (a *App) readConfig(v *viper.Viper, file string) (Config, error) {
	srcs := []config.Source{defaultConfig()}
	srcs = append(srcs, a.defaults...)
	if file != "" {
		srcs = append(srcs, config.FromFile(os.DirFS(filepath.Dir(file)), filepath.Base(file), configtmpl.Funcs()...))
	}
	srcs = append(srcs, a.srcs...)
	srcs = append(srcs, config.FromViper(v))

	m, err := config.Read(srcs...)
	if err != nil {
		return Config{}, ConfigReadError{Cause: err}
	}

	var cfg Config
	err = m.Unmarshal(&cfg)
	if err != nil {
		return Config{}, ConfigUnmarshalError{Cause: err}
	}
	return cfg, nil
}

// UnknownLogFormatError
type UnknownLogFormatError struct {
	Format string
}

// Error implements the builtin error interface.
func (e UnknownLogFormatError) Error() string {
	return fmt.Sprintf("unknown log format: %q", e.Format)
}

func newLogHandler(w io.Writer, cfg LogConfig) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     cfg.Level,
	}

	var h slog.Handler
	switch cfg.Format {
	case "", "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, UnknownLogFormatError{Format: cfg.Format}
	}
	return otelslog.NewHandler(h), nil
}
