package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromFallsBackToRoot(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := Root()
	SetRoot(zap.New(core))
	defer SetRoot(previous)

	From(context.Background()).Info("root message")
	assert.Equal(t, 1, logs.FilterMessage("root message").Len())
}

func TestSubFromNamesLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := Context(context.Background(), zap.New(core))

	log, ctx := SubFrom(ctx, "web")
	log.Info("first")
	From(ctx).Info("second")

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "web", entries[0].LoggerName)
		assert.Equal(t, "web", entries[1].LoggerName)
	}
}

func TestSetRootNilInstallsNop(t *testing.T) {
	previous := Root()
	defer SetRoot(previous)

	SetRoot(nil)
	assert.NotNil(t, Root())
	assert.NotPanics(t, func() { Root().Info("dropped") })
}

func TestNewLevels(t *testing.T) {
	assert.True(t, New(true).Core().Enabled(zapcore.DebugLevel))
	assert.False(t, New(false).Core().Enabled(zapcore.DebugLevel))
}
