package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	assert.True(t, New("debug").Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New("warn").Core().Enabled(zapcore.InfoLevel))
	assert.True(t, New("warn").Core().Enabled(zapcore.WarnLevel))
	// unknown levels fall back to info
	assert.False(t, New("loud").Core().Enabled(zapcore.DebugLevel))
	assert.True(t, New("loud").Core().Enabled(zapcore.InfoLevel))
}
