package subsystems

import (
	"net/http"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// HTTPConfiguration encapsulates top-level HTTP configuration that applies to all SDK components.
//
// The SDK uses this configuration for every request it makes to the Baseplane services. See
// bpcomponents.HTTPConfigurationBuilder for the settings it is built from.
type HTTPConfiguration struct {
	// DefaultHeaders are the headers that should be added to all HTTP requests from SDK components
	// to Baseplane services, based on the current SDK configuration. This includes the apikey and
	// Authorization headers carrying the project's public API key. The map is never modified once
	// created.
	DefaultHeaders http.Header

	// CreateHTTPClient is a function that returns a new HTTP client instance based on the SDK
	// configuration.
	//
	// The SDK will ensure that this field is non-nil before passing it to any component.
	CreateHTTPClient func() *http.Client
}

// LoggingConfiguration encapsulates the SDK's general logging configuration.
//
// See bpcomponents.LoggingConfigurationBuilder for more details on these properties.
type LoggingConfiguration struct {
	// Loggers is the configured ldlog.Loggers instance for general SDK logging.
	Loggers ldlog.Loggers

	// LogRequestErrors is true if the SDK should log a warning for every failed request to the
	// data API, in addition to returning the error to the caller.
	LogRequestErrors bool
}
