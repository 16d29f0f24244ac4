package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReportErrorUsesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var buf bytes.Buffer

	reportError(zap.New(core), &buf, errors.New("no wallpapers matched"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "no wallpapers matched", entry.Message)
	assert.Empty(t, buf.String(), "stderr fallback must stay silent when the logger exists")
}

func TestReportErrorWithoutLogger(t *testing.T) {
	var buf bytes.Buffer
	reportError(nil, &buf, errors.New("invalid --color value"))
	assert.Equal(t, "Error: invalid --color value\n", buf.String())
}

func TestNewLoggerRejectsUnknownColorMode(t *testing.T) {
	_, err := newLogger("sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sometimes")
}

func TestEnableColor(t *testing.T) {
	assert.True(t, enableColor("always"))
	assert.False(t, enableColor("never"))

	t.Setenv("TERM", "dumb")
	assert.False(t, enableColor("auto"))
}
