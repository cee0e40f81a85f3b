package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	child := l.With("component", "secrets")
	child.Info(context.Background(), "stored provider key", "provider", "gemini")

	out := buf.String()
	assert.Contains(t, out, "component=secrets")
	assert.Contains(t, out, "provider=gemini")
	assert.Contains(t, out, "stored provider key")
}

func TestNewDefault_LevelFiltering(t *testing.T) {
	// NewDefault writes to stderr; level mapping is what we can check here.
	l := NewDefault("warn")
	assert.NotNil(t, l)
	l.Debug(context.Background(), "suppressed")
}
