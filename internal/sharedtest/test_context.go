package sharedtest

import (
	"github.com/baseplane/go-client-sdk/subsystems"
)

// TestAPIKey is an arbitrary public API key for use in test configurations.
const TestAPIKey = "anon-key-123"

// TestProjectURL is an arbitrary project URL for use in test configurations.
const TestProjectURL = "https://myproject.example.com"

// NewSimpleTestContext returns a basic implementation of subsystems.ClientContext for use in
// test code.
func NewSimpleTestContext(apiKey string) subsystems.BasicClientContext {
	return NewTestContext(apiKey, TestProjectURL, nil, nil)
}

// NewTestContext returns a basic implementation of subsystems.ClientContext for use in test
// code. We can't use internal.ClientContextImpl for this because of circular references.
func NewTestContext(
	apiKey string,
	projectURL string,
	optHTTPConfig *subsystems.HTTPConfiguration,
	optLoggingConfig *subsystems.LoggingConfiguration,
) subsystems.BasicClientContext {
	ret := subsystems.BasicClientContext{APIKey: apiKey, ProjectURL: projectURL}
	if optHTTPConfig != nil {
		ret.HTTP = *optHTTPConfig
	}
	if optLoggingConfig != nil {
		ret.Logging = *optLoggingConfig
	} else {
		ret.Logging = TestLoggingConfig()
	}
	return ret
}

// TestLoggingConfig returns a LoggingConfiguration corresponding to NewTestLoggers().
func TestLoggingConfig() subsystems.LoggingConfiguration {
	return subsystems.LoggingConfiguration{Loggers: NewTestLoggers()}
}
