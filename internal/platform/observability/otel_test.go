package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestInstruments_NilSafe(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestTraceExporter(t *testing.T) {
	assert.Equal(t, ExporterOTLP, TraceExporter(""))
	assert.Equal(t, ExporterOTLP, TraceExporter("jaeger"))
	assert.Equal(t, ExporterStdout, TraceExporter(" STDOUT "))
	assert.Equal(t, ExporterNone, TraceExporter("none"))
}

func TestNewLogger_Formats(t *testing.T) {
	var jsonOut bytes.Buffer
	NewLogger(&jsonOut, "debug", "").Debug("donation recorded", "donationId", 7)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(jsonOut.Bytes(), &entry))
	assert.Equal(t, "donation recorded", entry["msg"])
	assert.Equal(t, float64(7), entry["donationId"])

	var textOut bytes.Buffer
	logger := NewLogger(&textOut, "warn", "text")
	logger.Info("skipped")
	logger.Warn("store slow")
	assert.NotContains(t, textOut.String(), "skipped")
	assert.Contains(t, textOut.String(), "msg=\"store slow\"")
}

func TestInit_NoExporter(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("LOG_FORMAT", "text")

	instruments, shutdown, err := Init(context.Background(), "pawsitive-test")
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(context.Background())) }()

	assert.NotNil(t, instruments.Logger)
	_, span := instruments.Tracer("test").Start(context.Background(), "noop")
	span.End()
}
