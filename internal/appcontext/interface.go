// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// Settings is the resolved patch configuration a command runs with.
type Settings struct {
	DataDir        string
	LoadOrderFile  string
	OutputDir      string
	PatchName      string
	HeightSource   string
	SkeletonSource string
	Multiplier     float64
	DryRun         bool
	ExactDiff      bool
}

// Interface defines the application context interface that commands need.
// The App struct from cmd/racepatch/app implements it.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Settings returns the patch configuration after flags, env and config
	// file have been merged.
	Settings() Settings

	// LoadOrder reads the data directory and load order file named by
	// Settings. Each call reloads from disk.
	LoadOrder(ctx context.Context) (*loadorder.LoadOrder, error)

	// Reconciler builds a reconciler configured from Settings.
	Reconciler() (reconciler.Reconciler, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// NoColor reports whether colored output was turned off by --no-color
	// or NO_COLOR.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
