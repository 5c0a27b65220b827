package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	logger, err := New("debug", "development")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("WARN", "production")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud", "development")
	assert.Error(t, err)
}

func TestFromAddsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithOwner(WithRequestID(context.Background(), "rid-1"), "u1")
	From(ctx, base).Info("saved")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "rid-1", fields["request.id"])
	assert.Equal(t, "u1", fields["owner.id"])
}

func TestFromWithoutFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	From(context.Background(), base).Info("plain")
	assert.Empty(t, logs.All()[0].ContextMap())

	assert.NotNil(t, From(context.Background(), nil))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}
