package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/racepatch/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "plugin",
			ID:       "Heights_of_Skyrim.esp",
		}
		assert.Equal(t, "plugin with ID Heights_of_Skyrim.esp not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("plugin", "test.esp")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestPreconditionError(t *testing.T) {
	t.Run("message names the plugin", func(t *testing.T) {
		err := pkgerrors.NewPreconditionError("Heights_of_Skyrim.esp", "is not in the load order")
		assert.Equal(t, "plugin Heights_of_Skyrim.esp is not in the load order", err.Error())
	})

	t.Run("is precondition", func(t *testing.T) {
		err := fmt.Errorf("check: %w", pkgerrors.NewPreconditionError("a.esp", "is disabled"))
		assert.True(t, pkgerrors.IsPrecondition(err))
		assert.False(t, pkgerrors.IsNotFound(err))

		var pe *pkgerrors.PreconditionError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "a.esp", pe.Plugin)
	})
}

func TestMissingOverrideError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := pkgerrors.NewMissingOverrideError("race", "013746:Skyrim.esm", "skeletons.esp")
		assert.Contains(t, err.Error(), "race 013746:Skyrim.esm")
		assert.Contains(t, err.Error(), "skeletons.esp")
	})

	t.Run("without source", func(t *testing.T) {
		err := &pkgerrors.MissingOverrideError{RecordType: "character", FormKey: "000007:Skyrim.esm"}
		assert.Equal(t, "no winning override for character 000007:Skyrim.esm", err.Error())
	})

	t.Run("is not found and missing override", func(t *testing.T) {
		err := fmt.Errorf("reconcile: %w", pkgerrors.NewMissingOverrideError("race", "1:a.esp", ""))
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsMissingOverride(err))
		assert.False(t, pkgerrors.IsMissingOverride(pkgerrors.NewNotFoundError("plugin", "a.esp")))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "height_source",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field height_source: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("x", nil))
		err := pkgerrors.WrapValidation("form_key", errors.New("bad hex"))
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Contains(t, err.Error(), "bad hex")
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("no such file")
	err := pkgerrors.NewConfigError("patch", "no output directory configured", base)
	assert.Contains(t, err.Error(), "patch")
	assert.Contains(t, err.Error(), "no output directory configured")
	assert.Equal(t, base, err.Unwrap())

	bare := &pkgerrors.ConfigError{Message: "broken"}
	assert.Equal(t, "configuration error: broken", bare.Error())
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "plugins.txt", File: "plugins.txt", Line: 3, Message: "empty name"}
		assert.Equal(t, "parse error in plugins.txt at plugins.txt:3: empty name", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("unexpected key")
		err := pkgerrors.WrapParse("yaml", "a.esp.yaml", base)
		var pe *pkgerrors.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "yaml", pe.Format)
		assert.ErrorIs(t, err, base)
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/patch.esp.yaml", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/patch.esp.yaml")
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		err := pkgerrors.WrapIO("read", "plugins.txt", errors.New("permission denied"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "read", ioErr.Operation)
		assert.Equal(t, "plugins.txt", ioErr.Path)
	})
}

func TestResourceError(t *testing.T) {
	err := pkgerrors.WrapResource("load", "plugin", "a.esp", pkgerrors.ErrAlreadyExists)
	resErr, ok := err.(*pkgerrors.ResourceError)
	require.True(t, ok)
	assert.Equal(t, "failed to load plugin a.esp: already exists", resErr.Error())
	assert.True(t, pkgerrors.IsAlreadyExists(err))

	noID := pkgerrors.NewResourceError("save", "patch", "", errors.New("boom"))
	assert.Equal(t, "failed to save patch: boom", noID.Error())
}

func TestWrapCanceled(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapCanceled("reconcile", nil))

	err := pkgerrors.WrapCanceled("reconcile races", context.Canceled)
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
}
