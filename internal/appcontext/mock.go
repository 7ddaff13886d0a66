package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	SettingsFunc     func() Settings
	LoadOrderFunc    func(context.Context) (*loadorder.LoadOrder, error)
	ReconcilerFunc   func() (reconciler.Reconciler, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Settings returns settings using the mock function or the defaults.
func (m *Mock) Settings() Settings {
	if m.SettingsFunc != nil {
		return m.SettingsFunc()
	}
	return Settings{
		PatchName:      constants.DefaultPatchName,
		HeightSource:   constants.DefaultHeightSource,
		SkeletonSource: constants.DefaultSkeletonSource,
		Multiplier:     constants.DefaultHeightChangeMultiplier,
	}
}

// LoadOrder returns a load order using the mock function or an empty one.
func (m *Mock) LoadOrder(ctx context.Context) (*loadorder.LoadOrder, error) {
	if m.LoadOrderFunc != nil {
		return m.LoadOrderFunc(ctx)
	}
	return loadorder.New(), nil
}

// Reconciler returns a reconciler using the mock function or one built
// from Settings.
func (m *Mock) Reconciler() (reconciler.Reconciler, error) {
	if m.ReconcilerFunc != nil {
		return m.ReconcilerFunc()
	}
	s := m.Settings()
	return reconciler.New(
		reconciler.WithHeightSource(s.HeightSource),
		reconciler.WithSkeletonSource(s.SkeletonSource),
		reconciler.WithHeightChangeMultiplier(s.Multiplier),
		reconciler.WithDryRun(s.DryRun),
		reconciler.WithExactDiff(s.ExactDiff),
	)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor returns the mock function's answer, or false.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return false
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
