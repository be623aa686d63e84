package bpclient

import (
	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/subsystems"
)

// Config exposes advanced configuration options for the Baseplane client.
//
// All of these settings are optional, so an empty Config struct is always valid. See the
// description of each field for the default behavior if it is not set.
//
// Some of the Config fields are factories for subcomponents of the SDK. The types of these
// fields are the generic interface subsystems.ComponentConfigurer; the actual implementation
// types, which have methods for configuring that subcomponent, are normally provided by
// corresponding functions in the bpcomponents package. For instance, to set the HTTP field to
// a configuration in which requests time out after 4 seconds:
//
//	var config bpclient.Config
//	config.HTTP = bpcomponents.HTTPConfiguration().ConnectTimeout(4 * time.Second)
//
// The interfaces are defined separately from the built-in component implementations so that you
// could also define your own implementation, for custom SDK integrations.
type Config struct {
	// Provides configuration of the SDK's network connection behavior.
	//
	// If nil, the default is bpcomponents.HTTPConfiguration(); see that method for an explanation
	// of how to further configure these options.
	//
	//	// example: set connection timeout to 8 seconds and use a proxy server
	//	config.HTTP = bpcomponents.HTTPConfiguration().ConnectTimeout(8 * time.Second).ProxyURL(myProxyURL)
	HTTP subsystems.ComponentConfigurer[subsystems.HTTPConfiguration]

	// Provides configuration of the SDK's logging behavior.
	//
	// If nil, the default is bpcomponents.Logging(); see that method for an explanation of how to
	// further configure logging behavior. The other option is bpcomponents.NoLogging().
	//
	//	// example: enable logging only for Warn level and above
	//	// (note: ldlog is github.com/launchdarkly/go-sdk-common/v3/ldlog)
	//	config.Logging = bpcomponents.Logging().MinLevel(ldlog.Warn)
	Logging subsystems.ComponentConfigurer[subsystems.LoggingConfiguration]

	// Provides configuration of custom service base URIs.
	//
	// Set this field only if you want to specify non-default values for any of the URIs. You may
	// set individual values such as REST, or use the helper method bpcomponents.ProjectEndpoints().
	//
	// The default behavior, if you do not set any of these values, is that the SDK will derive
	// each service URI from the project URL using the platform's standard paths. The main use
	// case for changing these values is routing requests through a gateway or a local
	// development stack:
	//
	//	config := bpclient.Config{
	//	    ServiceEndpoints: bpcomponents.ProjectEndpoints("http://localhost:54321"),
	//	}
	//
	// You may also set the base URIs to a test fixture that simulates the service endpoints,
	// although the SDK will still append the expected URI paths for each service.
	ServiceEndpoints interfaces.ServiceEndpoints

	// Provides configuration of application metadata. See interfaces.ApplicationInfo.
	//
	// Application metadata is reported to the service for analytics purposes, but does not affect
	// the behavior of any SDK operation.
	ApplicationInfo interfaces.ApplicationInfo
}
