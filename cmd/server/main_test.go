package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)
	logger.Info().Msg("listening")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "listening", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewLoggerDevelopmentEmitsConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("development", &buf)
	logger.Info().Msg("listening")

	assert.False(t, json.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), "listening")
}
