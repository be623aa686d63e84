package bpcomponents

import (
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// LoggingConfigurationBuilder contains methods for configuring the SDK's logging behavior.
//
// If you want to set non-default values for any of these properties, create a builder with
// bpcomponents.Logging(), change its properties with the LoggingConfigurationBuilder methods, and
// store it in the Logging field of bpclient.Config:
//
//	config := bpclient.Config{
//	    Logging: bpcomponents.Logging().MinLevel(ldlog.Warn),
//	}
type LoggingConfigurationBuilder struct {
	inited bool
	config subsystems.LoggingConfiguration
}

// Logging returns a configuration builder for the SDK's logging configuration.
//
// The default configuration has logging enabled with default settings. If you want to set
// non-default values for any of these properties, create a builder with bpcomponents.Logging(),
// change its properties with the LoggingConfigurationBuilder methods, and store it in
// Config.Logging.
func Logging() *LoggingConfigurationBuilder {
	return &LoggingConfigurationBuilder{}
}

func (b *LoggingConfigurationBuilder) checkValid() bool {
	if b == nil {
		return false
	}
	if !b.inited {
		b.config = subsystems.LoggingConfiguration{Loggers: ldlog.NewDefaultLoggers()}
		b.inited = true
	}
	return true
}

// LogRequestErrors sets whether the SDK should log a warning message whenever a data API request
// fails. By default, these messages are not logged, although you can detect such errors
// programmatically from the error returned by the request.
func (b *LoggingConfigurationBuilder) LogRequestErrors(logRequestErrors bool) *LoggingConfigurationBuilder {
	if b.checkValid() {
		b.config.LogRequestErrors = logRequestErrors
	}
	return b
}

// Loggers specifies an instance of ldlog.Loggers to use for SDK logging. The ldlog package
// contains methods for customizing the destination and level filtering of log output.
func (b *LoggingConfigurationBuilder) Loggers(loggers ldlog.Loggers) *LoggingConfigurationBuilder {
	if b.checkValid() {
		b.config.Loggers = loggers
	}
	return b
}

// MinLevel specifies the minimum level for log output, where ldlog.Debug is the lowest and
// ldlog.Error is the highest. Log messages at a level lower than this will be suppressed. The
// default is ldlog.Info.
//
// This is equivalent to creating an ldlog.Loggers instance, calling SetMinLevel() on it, and then
// passing it to LoggingConfigurationBuilder.Loggers().
func (b *LoggingConfigurationBuilder) MinLevel(level ldlog.LogLevel) *LoggingConfigurationBuilder {
	if b.checkValid() {
		b.config.Loggers.SetMinLevel(level)
	}
	return b
}

// Build is called internally by the SDK.
func (b *LoggingConfigurationBuilder) Build(clientContext subsystems.ClientContext) (subsystems.LoggingConfiguration, error) {
	if !b.checkValid() {
		defaults := Logging()
		defaults.checkValid()
		return defaults.config, nil
	}
	return b.config, nil
}

// NoLogging returns a configuration object that disables logging.
//
//	config := bpclient.Config{
//	    Logging: bpcomponents.NoLogging(),
//	}
func NoLogging() subsystems.ComponentConfigurer[subsystems.LoggingConfiguration] {
	return noLoggingConfigurationFactory{}
}

type noLoggingConfigurationFactory struct{}

func (f noLoggingConfigurationFactory) Build(clientContext subsystems.ClientContext) (subsystems.LoggingConfiguration, error) {
	return subsystems.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()}, nil
}
