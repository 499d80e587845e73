package netlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	assert.Empty(t, buf.String())

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "[WARN] warn message")

	l.Error("error message", "key", "value")
	assert.Contains(t, buf.String(), "[ERROR] error message key=value")
}

func TestDefaultConfigLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	l := New(cfg)

	l.Debug("hidden")
	l.Info("visible")
	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "visible"))
}
