package testhelpers

import (
	"github.com/baseplane/go-client-sdk/bpcomponents"
	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/subsystems"
)

// SimpleClientContext is a reference implementation of subsystems.ClientContext for test code.
//
// The SDK uses the ClientContext interface to pass its configuration to subcomponents. Its
// standard implementation also contains other information that is only relevant to built-in SDK
// code. SimpleClientContext may be useful for external code to test a custom component.
type SimpleClientContext struct {
	apiKey     string
	projectURL string
	http       *subsystems.HTTPConfiguration
	logging    *subsystems.LoggingConfiguration
}

// NewSimpleClientContext creates a SimpleClientContext instance, with the SDK's default HTTP and
// logging configurations.
func NewSimpleClientContext(apiKey, projectURL string) SimpleClientContext {
	return SimpleClientContext{apiKey: apiKey, projectURL: projectURL}
}

// WithHTTP returns a new SimpleClientContext based on the original one, but adding the specified
// HTTP configuration.
func (s SimpleClientContext) WithHTTP(
	httpConfig subsystems.ComponentConfigurer[subsystems.HTTPConfiguration],
) SimpleClientContext {
	ret := s
	c, _ := httpConfig.Build(ret.basic())
	ret.http = &c
	return ret
}

// WithLogging returns a new SimpleClientContext based on the original one, but adding the
// specified logging configuration.
func (s SimpleClientContext) WithLogging(
	loggingConfig subsystems.ComponentConfigurer[subsystems.LoggingConfiguration],
) SimpleClientContext {
	ret := s
	c, _ := loggingConfig.Build(ret.basic())
	ret.logging = &c
	return ret
}

func (s SimpleClientContext) basic() subsystems.BasicClientContext {
	return subsystems.BasicClientContext{APIKey: s.apiKey, ProjectURL: s.projectURL}
}

func (s SimpleClientContext) GetAPIKey() string { return s.apiKey } //nolint:revive

func (s SimpleClientContext) GetProjectURL() string { return s.projectURL } //nolint:revive

func (s SimpleClientContext) GetApplicationInfo() interfaces.ApplicationInfo { //nolint:revive
	return interfaces.ApplicationInfo{}
}

func (s SimpleClientContext) GetHTTP() subsystems.HTTPConfiguration { //nolint:revive
	if s.http != nil {
		return *s.http
	}
	c, _ := bpcomponents.HTTPConfiguration().Build(s.basic())
	return c
}

func (s SimpleClientContext) GetLogging() subsystems.LoggingConfiguration { //nolint:revive
	if s.logging != nil {
		return *s.logging
	}
	c, _ := bpcomponents.Logging().Build(s.basic())
	return c
}

func (s SimpleClientContext) GetServiceEndpoints() interfaces.ServiceEndpoints { //nolint:revive
	return interfaces.ServiceEndpoints{}
}

func (s SimpleClientContext) GetChangeSink() subsystems.ChangeSink { return nil } //nolint:revive
