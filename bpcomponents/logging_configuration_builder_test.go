package bpcomponents

import (
	"testing"

	"github.com/baseplane/go-client-sdk/internal/sharedtest"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicLoggingContext() subsystems.ClientContext {
	return sharedtest.NewSimpleTestContext(sharedtest.TestAPIKey)
}

func TestLoggingDefaults(t *testing.T) {
	c, err := Logging().Build(basicLoggingContext())
	require.NoError(t, err)
	assert.False(t, c.LogRequestErrors)
	assert.Equal(t, ldlog.NewDefaultLoggers(), c.Loggers)
}

func TestLoggingBuildHandlesNilBuilder(t *testing.T) {
	var b *LoggingConfigurationBuilder
	c, err := b.Build(basicLoggingContext())
	require.NoError(t, err)
	assert.Equal(t, ldlog.NewDefaultLoggers(), c.Loggers)
}

func TestLoggingLogRequestErrors(t *testing.T) {
	c, err := Logging().LogRequestErrors(true).Build(basicLoggingContext())
	require.NoError(t, err)
	assert.True(t, c.LogRequestErrors)
}

func TestLoggingLoggers(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	c, err := Logging().Loggers(mockLog.Loggers).Build(basicLoggingContext())
	require.NoError(t, err)
	c.Loggers.Info("hello")
	mockLog.AssertMessageMatch(t, true, ldlog.Info, "hello")
}

func TestLoggingMinLevel(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	c, err := Logging().Loggers(mockLog.Loggers).MinLevel(ldlog.Warn).Build(basicLoggingContext())
	require.NoError(t, err)
	c.Loggers.Info("suppressed")
	c.Loggers.Warn("shown")
	mockLog.AssertMessageMatch(t, false, ldlog.Info, "suppressed")
	mockLog.AssertMessageMatch(t, true, ldlog.Warn, "shown")
}

func TestNoLogging(t *testing.T) {
	c, err := NoLogging().Build(basicLoggingContext())
	require.NoError(t, err)
	assert.Equal(t, ldlog.NewDisabledLoggers(), c.Loggers)
}
