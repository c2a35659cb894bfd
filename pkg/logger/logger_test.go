package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/screener/pkg/config"
)

func newBuffered(t *testing.T, level, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	log := NewWithWriter(&config.Config{Env: "test", LogLevel: level, LogFormat: format}, &buf)
	return log, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"debug", "info", "warn", "error"}},
		{"info", []string{"info", "warn", "error"}},
		{"error", []string{"error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, buf := newBuffered(t, tt.level, "json")

			log.Debug("rates loaded from cache")
			log.Info("dispatching predefined screeners")
			log.Warn("redis unavailable")
			log.Error("screening failed")

			var levels []string
			for _, entry := range decodeLines(t, buf) {
				levels = append(levels, entry["level"].(string))
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestNewWithWriter_ServiceFields(t *testing.T) {
	log, buf := newBuffered(t, "info", "json")

	log.Infof("Loaded %d predefined screeners", 3)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "screener", entries[0]["service"])
	assert.Equal(t, "test", entries[0]["env"])
	assert.Equal(t, "Loaded 3 predefined screeners", entries[0]["message"])
	assert.Contains(t, entries[0], "time")
}

func TestLogger_RunScopedFields(t *testing.T) {
	log, buf := newBuffered(t, "info", "json")

	runLog := log.WithFields(map[string]interface{}{
		"run_id": "7d1c",
		"mode":   "equity",
	})
	runLog.WithError(errors.New("cannot convert USD to ARS")).
		WithField("outcome", "fallback").
		Warn("Screening failed, using fallback responder")
	log.Info("Screening run finished")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "7d1c", entries[0]["run_id"])
	assert.Equal(t, "equity", entries[0]["mode"])
	assert.Equal(t, "fallback", entries[0]["outcome"])
	assert.Equal(t, "cannot convert USD to ARS", entries[0]["error"])

	// Derived loggers do not leak fields into the parent
	assert.NotContains(t, entries[1], "run_id")
	assert.NotContains(t, entries[1], "error")
}

func TestNewWithWriter_ConsoleFormat(t *testing.T) {
	log, buf := newBuffered(t, "info", "console")

	log.WithField("screener", "day_gainers").Info("Screen submitted")

	out := buf.String()
	assert.Contains(t, out, "Screen submitted")
	assert.Contains(t, out, "day_gainers")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "console output should not be JSON")
}

func TestNop(t *testing.T) {
	log := Nop()

	assert.NotPanics(t, func() {
		log.WithField("job", "morning_gainers").Info("discarded")
		log.WithError(errors.New("boom")).Errorf("discarded %d", 1)
	})
	assert.Equal(t, zerolog.Disabled, log.Zerolog().GetLevel())
}
