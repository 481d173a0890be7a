package slogexpect

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/logexpect/expect"
)

func TestHandler_DeliversBareMessage(t *testing.T) {
	layer := expect.NewLayer()
	logger := slog.New(New(layer, nil))

	a := layer.Matches("two")
	assert.False(t, a.Value())

	logger.Info("one")
	assert.False(t, a.Value())

	logger.Info("two")
	assert.True(t, a.Value())

	logger.Info("three")
	assert.True(t, a.Value())
}

func TestHandler_AppendsRecordAttrs(t *testing.T) {
	layer := expect.NewLayer()
	logger := slog.New(New(layer, nil))

	a := layer.Matches("request served method=GET status=200")
	logger.Info("request served", "method", "GET", "status", 200)
	a.Assert(t)
}

func TestHandler_WithAttrsAndGroups(t *testing.T) {
	layer := expect.NewLayer()
	logger := slog.New(New(layer, nil)).
		With("service", "api").
		WithGroup("req")

	a := layer.Matches("handled service=api req.path=/health")
	logger.Info("handled", "path", "/health")
	a.Assert(t)
}

func TestHandler_PatternAcrossAttrs(t *testing.T) {
	layer := expect.NewLayer()
	logger := slog.New(New(layer, nil))

	a, err := layer.MatchesPattern(`shutdown .*reason=signal`)
	require.NoError(t, err)

	logger.Warn("shutdown requested", "reason", "signal")
	a.Assert(t)
}

func TestHandler_ForwardsToInnerHandler(t *testing.T) {
	layer := expect.NewLayer()
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(New(layer, inner))

	a := layer.Matches("forwarded")
	logger.Info("forwarded")

	assert.True(t, a.Value())
	assert.Contains(t, buf.String(), "forwarded")
}

func TestHandler_ObservesRecordsTheInnerHandlerDrops(t *testing.T) {
	layer := expect.NewLayer()
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	logger := slog.New(New(layer, inner))

	a := layer.Matches("debug detail")
	logger.Debug("debug detail")

	assert.True(t, a.Value(), "assertion delivery must not depend on the inner handler's level")
	assert.Empty(t, buf.String(), "inner handler below level must stay silent")
}

func TestHandler_DeliveryOrderMatchesLogOrder(t *testing.T) {
	layer := expect.NewLayer()
	logger := slog.New(New(layer, nil))

	logger.Info("early")
	late := layer.Matches("early")
	assert.False(t, late.Value(), "expectation declared after the record must not see it")
}
