package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_TagsRun(t *testing.T) {
	out := &bytes.Buffer{}
	logger := New(Options{Level: "debug", Output: out, RunID: "run-1"})

	logger.Debug("cherry-picked", "commit", "abc")

	assert.Contains(t, out.String(), "run=run-1")
	assert.Contains(t, out.String(), "commit=abc")
	assert.Contains(t, out.String(), "cherry-picked")
}

func TestNew_RespectsLevel(t *testing.T) {
	out := &bytes.Buffer{}
	logger := New(Options{Level: "warn", Output: out})

	logger.Info("hidden")
	assert.Empty(t, out.String())
	logger.Warn("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("chatty"))
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
