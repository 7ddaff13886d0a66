// Package app provides the application context and dependency management
// for the racepatch CLI: configuration, logging and the wiring between the
// plugin loader and the reconciler.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/racepatch/internal/appcontext"
	"github.com/agentstation/racepatch/internal/plugins"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// App represents the racepatch application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from env and config files
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Settings returns the patch settings from the merged configuration.
func (a *App) Settings() appcontext.Settings {
	return appcontext.Settings{
		DataDir:        a.config.DataDir,
		LoadOrderFile:  a.config.LoadOrder,
		OutputDir:      a.config.PatchDir(),
		PatchName:      a.config.PatchName,
		HeightSource:   a.config.HeightSource,
		SkeletonSource: a.config.SkeletonSource,
		Multiplier:     a.config.HeightChangeMultiplier,
		DryRun:         a.config.DryRun,
		ExactDiff:      a.config.ExactDiff,
	}
}

// LoadOrder loads the plugins of the configured data directory.
func (a *App) LoadOrder(ctx context.Context) (*loadorder.LoadOrder, error) {
	ctx = logging.WithLogger(ctx, a.logger)
	return plugins.LoadDir(ctx, a.config.DataDir, a.config.LoadOrder)
}

// Reconciler builds a reconciler from the configured sources and multiplier.
func (a *App) Reconciler() (reconciler.Reconciler, error) {
	return reconciler.New(
		reconciler.WithHeightSource(a.config.HeightSource),
		reconciler.WithSkeletonSource(a.config.SkeletonSource),
		reconciler.WithHeightChangeMultiplier(a.config.HeightChangeMultiplier),
		reconciler.WithDryRun(a.config.DryRun),
		reconciler.WithExactDiff(a.config.ExactDiff),
	)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
