package subsystems

import (
	"net/http"

	"github.com/baseplane/go-client-sdk/interfaces"
)

// ClientContext provides context information from the client when creating other components.
//
// This is passed as a parameter to the Build method of ComponentConfigurer implementations.
// The actual implementation type may contain other properties that are only relevant to the
// built-in SDK components and are therefore not part of the public interface; this allows the
// SDK to add its own context information as needed without disturbing the public API. For test
// purposes you may use the simple struct type BasicClientContext.
type ClientContext interface {
	// GetAPIKey returns the configured public API key for the project.
	GetAPIKey() string

	// GetProjectURL returns the configured base URL for the project.
	GetProjectURL() string

	// GetApplicationInfo returns the configuration for application metadata.
	GetApplicationInfo() interfaces.ApplicationInfo

	// GetHTTP returns the configured HTTPConfiguration.
	GetHTTP() HTTPConfiguration

	// GetLogging returns the configured LoggingConfiguration.
	GetLogging() LoggingConfiguration

	// GetServiceEndpoints returns the configuration for service URIs.
	GetServiceEndpoints() interfaces.ServiceEndpoints

	// GetChangeSink returns the component that ChangeSource implementations use to deliver
	// events and status updates to the SDK.
	//
	// This component is only available when the SDK is creating a ChangeSource. Otherwise the
	// method returns nil.
	GetChangeSink() ChangeSink
}

// BasicClientContext is the basic implementation of the ClientContext interface, not including any
// private fields that the SDK may use for implementation details.
type BasicClientContext struct {
	APIKey           string
	ProjectURL       string
	ApplicationInfo  interfaces.ApplicationInfo
	HTTP             HTTPConfiguration
	Logging          LoggingConfiguration
	ServiceEndpoints interfaces.ServiceEndpoints
	ChangeSink       ChangeSink
}

func (b BasicClientContext) GetAPIKey() string { return b.APIKey } //nolint:revive

func (b BasicClientContext) GetProjectURL() string { return b.ProjectURL } //nolint:revive

func (b BasicClientContext) GetApplicationInfo() interfaces.ApplicationInfo { return b.ApplicationInfo } //nolint:revive

func (b BasicClientContext) GetHTTP() HTTPConfiguration { //nolint:revive
	ret := b.HTTP
	if ret.CreateHTTPClient == nil {
		ret.CreateHTTPClient = func() *http.Client {
			client := *http.DefaultClient
			return &client
		}
	}
	return ret
}

func (b BasicClientContext) GetLogging() LoggingConfiguration { return b.Logging } //nolint:revive

func (b BasicClientContext) GetServiceEndpoints() interfaces.ServiceEndpoints { //nolint:revive
	return b.ServiceEndpoints
}

func (b BasicClientContext) GetChangeSink() ChangeSink { return b.ChangeSink } //nolint:revive
