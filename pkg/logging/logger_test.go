package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/racepatch/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Err(errors.New("boom")).Msg("failed")

	output := buf.String()
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warning message")
	assert.Contains(t, output, `"error":"boom"`)
	assert.NotContains(t, output, "debug message")
}

func TestConfiguredLevels(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	tests := []struct {
		name    string
		level   string
		want    []string
		notWant []string
	}{
		{name: "debug", level: "debug", want: []string{`"level":"debug"`, `"level":"info"`}},
		{name: "error only", level: "error", want: []string{`"level":"error"`}, notWant: []string{`"level":"info"`}},
		{name: "invalid falls back to info", level: "loud", want: []string{`"level":"info"`}, notWant: []string{`"level":"debug"`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tc.level, Format: "json", Output: "discard"})
			logger = logger.Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			for _, w := range tc.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, nw := range tc.notWant {
				assert.NotContains(t, buf.String(), nw)
			}
		})
	}
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("race patched")
	tl.Logger.Info().Msg("character patched")

	tl.AssertCount(t, 2)
	tl.AssertNotContains(t, "skipped")
	assert.True(t, tl.ContainsAny("skipped", "race patched"))
	assert.True(t, strings.HasPrefix(tl.Lines()[0], "{"))

	tl.Clear()
	assert.Equal(t, 0, tl.Count())
}
