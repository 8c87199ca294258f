// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package serverboot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/z5labs/serverboot/binding"
	"github.com/z5labs/serverboot/config"
	"github.com/z5labs/serverboot/container"
	"github.com/z5labs/serverboot/internal/try"
	"github.com/z5labs/serverboot/lifecycle"
	"github.com/z5labs/serverboot/optional"
	"github.com/z5labs/serverboot/otelconfig"
	"github.com/z5labs/serverboot/probe"
	"github.com/z5labs/serverboot/server"
	"github.com/z5labs/serverboot/slogfield"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option are used to configure an App.
type Option func(*App)

// Name configures the name of the command.
func Name(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// Application binds the application the server dispatches requests to.
// Without one the serve command does not construct a server.
func Application(p binding.Point[container.Application]) Option {
	return func(a *App) {
		a.app = p
	}
}

// TLS binds the TLSConfigurator of a secure server. By default, one is
// only bound if both tls.certFile and tls.keyFile are configured.
func TLS(p binding.Point[server.TLSConfigurator]) Option {
	return func(a *App) {
		a.tls = p
	}
}

// Defaults registers config values which override the built in defaults
// but are overridden by the config file, environment variables and flags.
func Defaults(m config.Map) Option {
	return func(a *App) {
		a.defaults = append(a.defaults, m)
	}
}

// ConfigSource registers an additional config source. It overrides the
// config file and is overridden by environment variables and flags.
func ConfigSource(src config.Source) Option {
	return func(a *App) {
		a.srcs = append(a.srcs, src)
	}
}

// LogOutput sets where logs are written. The default is os.Stderr.
func LogOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// ServerOptions are applied when bootstrapping the server.
func ServerOptions(opts ...server.Option) Option {
	return func(a *App) {
		a.serverOpts = append(a.serverOpts, opts...)
	}
}

// Hooks allows you to register lifecycle hooks.
func Hooks(fs ...func(*lifecycle.Context)) Option {
	return func(a *App) {
		a.hooks = append(a.hooks, fs...)
	}
}

// App is the command line entry point of a server.
type App struct {
	name       string
	app        binding.Point[container.Application]
	tls        binding.Point[server.TLSConfigurator]
	defaults   []config.Source
	srcs       []config.Source
	out        io.Writer
	serverOpts []server.Option
	hooks      []func(*lifecycle.Context)
}

// New returns a fully initialized App.
func New(opts ...Option) *App {
	var name string
	if len(os.Args) > 0 {
		name = os.Args[0]
	}
	a := &App{
		name: name,
		out:  os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the command given by args. It also handles listening
// for interrupts from the underlying OS and terminates the server
// when one is received.
func (a *App) Run(args ...string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return a.RunContext(ctx, args...)
}

// RunContext is the same as Run except that the server stops
// once ctx is cancelled, instead of on an interrupt.
func (a *App) RunContext(ctx context.Context, args ...string) error {
	cmd := a.buildCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func (a *App) buildCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           a.name,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.AddCommand(a.serveCmd(), a.probeCmd())
	return root
}

var serveFlags = map[string]string{
	"host":         "host",
	"port":         "port",
	"contextPath":  "context-path",
	"secure":       "secure",
	"http2Only":    "http2-only",
	"tls.certFile": "tls-cert-file",
	"tls.keyFile":  "tls-key-file",
	"log.level":    "log-level",
	"log.format":   "log-format",
}

func (a *App) serveCmd() *cobra.Command {
	v := newViper()
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap and run the server",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			return a.serve(cmd.Context(), v, configFile)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configFile, "config", "", "YAML or JSON config file")
	fs.String("host", server.DefaultHost, "Host to listen on")
	fs.Uint("port", server.DefaultPort, "Port to listen on")
	fs.String("context-path", "", "Path to mount the application at")
	fs.Bool("secure", false, "Serve TLS")
	fs.Bool("http2-only", false, "Reject requests which are not HTTP/2")
	fs.String("tls-cert-file", "", "PEM encoded certificate file")
	fs.String("tls-key-file", "", "PEM encoded private key file")
	fs.String("log-level", slog.LevelInfo.String(), "Minimum log level")
	fs.String("log-format", "json", "Log format, json or text")
	bindFlags(v, fs, serveFlags)

	return cmd
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet, flags map[string]string) {
	for k, name := range flags {
		// BindPFlag only fails for a nil flag.
		_ = v.BindPFlag(k, fs.Lookup(name))
	}
}

func (a *App) serve(ctx context.Context, v *viper.Viper, configFile string) (err error) {
	cfg, err := a.readConfig(v, configFile)
	if err != nil {
		return err
	}

	h, err := newLogHandler(a.out, cfg.Log)
	if err != nil {
		return ConfigUnmarshalError{Cause: err}
	}
	log := slog.New(h)
	log.DebugContext(
		ctx,
		"read config",
		slogfield.String("host", cfg.Server.Host),
		slogfield.Uint("port", cfg.Server.Port),
		slogfield.Bool("secure", cfg.Server.Secure),
		slogfield.String("otel_exporter", string(cfg.OTel.Exporter)),
	)

	lc := &lifecycle.Context{}
	lifecycle.ManageOTel(lc, func(ctx context.Context) (otelconfig.Initializer, error) {
		return otelconfig.FromConfig(cfg.OTel)
	})
	for _, f := range a.hooks {
		f(lc)
	}
	ctx = lifecycle.NewContext(ctx, lc)

	err = lc.PreRun().Run(ctx)
	if err != nil {
		return HookError{Cause: err}
	}
	defer func() {
		postErr := lc.PostRun().Run(context.Background())
		if postErr != nil {
			err = errors.Join(err, HookError{Cause: postErr})
		}
	}()

	s, err := server.Bootstrap(
		ctx,
		cfg.Server,
		a.containerBinding(ctx, h),
		a.tlsBinding(cfg.Server),
		append([]server.Option{server.LogHandler(h)}, a.serverOpts...)...,
	)
	if err != nil {
		return BootstrapError{Cause: err}
	}

	srv, ok := s.Get()
	if !ok {
		log.InfoContext(ctx, "no application bound")
		return nil
	}

	err = srv.Run(ctx)
	if err != nil {
		return RunError{Cause: err}
	}
	return nil
}

func (a *App) containerBinding(ctx context.Context, h slog.Handler) binding.Point[*container.Container] {
	if !binding.IsSatisfied(a.app) {
		return binding.Unsatisfied[*container.Container]()
	}
	return binding.Provider(func() optional.Value[*container.Container] {
		return container.Resolve(ctx, a.app, container.LogHandler(h))
	})
}

func (a *App) tlsBinding(cfg server.Config) binding.Point[server.TLSConfigurator] {
	if a.tls != nil {
		return a.tls
	}
	if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
		return binding.Unsatisfied[server.TLSConfigurator]()
	}
	return binding.Of(server.KeyPairFiles(cfg.TLS.CertFile, cfg.TLS.KeyFile))
}

func (a *App) probeCmd() *cobra.Command {
	var (
		baseURL string
		kind    string
		retries int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check the health of a running server",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer try.Recover(&err)

			logger := zap.New(zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(a.out),
				zap.InfoLevel,
			))
			defer logger.Sync()

			target, err := probe.URL(baseURL, probe.Kind(kind))
			if err != nil {
				return ProbeError{Cause: err}
			}

			client := probe.NewClient(
				probe.Logger(logger),
				probe.Timeout(timeout),
				probe.MaxRetries(retries),
			)
			err = probe.Check(cmd.Context(), client, target)
			if err != nil {
				logger.Error("server is unhealthy", zap.String("url", target), zap.Error(err))
				return ProbeError{Cause: err}
			}
			logger.Info("server is healthy", zap.String("url", target))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&baseURL, "url", "http://127.0.0.1:8080", "Base URL of the server")
	fs.StringVar(&kind, "kind", string(probe.Readiness), "Health endpoint to check: startup, liveness or readiness")
	fs.IntVar(&retries, "retries", 2, "Number of times a failed probe is retried")
	fs.DurationVar(&timeout, "timeout", 2*time.Second, "Timeout of a single probe attempt")

	return cmd
}
