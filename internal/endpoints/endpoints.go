// Package endpoints contains internal helpers for computing service URIs.
package endpoints

import (
	"strings"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// ServiceType is used internally to denote which endpoint a URI is for.
type ServiceType int

const (
	RESTService     ServiceType = iota //nolint:revive // internal constant
	RealtimeService ServiceType = iota //nolint:revive // internal constant
	AuthService     ServiceType = iota //nolint:revive // internal constant
)

// Standard URI paths of each service under a project's base URL.
const (
	restPath     = "/rest/v1"
	realtimePath = "/realtime/v1"
	authPath     = "/auth/v1"
)

func (s ServiceType) String() string {
	switch s {
	case RESTService:
		return "REST"
	case RealtimeService:
		return "Realtime"
	case AuthService:
		return "Auth"
	default:
		return "???"
	}
}

func anyCustom(serviceEndpoints interfaces.ServiceEndpoints) bool {
	return serviceEndpoints.REST != "" || serviceEndpoints.Realtime != "" ||
		serviceEndpoints.Auth != ""
}

func getCustom(serviceEndpoints interfaces.ServiceEndpoints, serviceType ServiceType) string {
	switch serviceType {
	case RESTService:
		return serviceEndpoints.REST
	case RealtimeService:
		return serviceEndpoints.Realtime
	case AuthService:
		return serviceEndpoints.Auth
	default:
		return ""
	}
}

// DefaultBaseURI returns the default base URI for the given kind of endpoint, derived from the
// project's base URL.
func DefaultBaseURI(projectURL string, serviceType ServiceType) string {
	base := strings.TrimSuffix(projectURL, "/")
	switch serviceType {
	case RESTService:
		return base + restPath
	case RealtimeService:
		return base + realtimePath
	case AuthService:
		return base + authPath
	default:
		return ""
	}
}

// IsCustom returns true if the service endpoint has been overridden with a non-default value.
func IsCustom(serviceEndpoints interfaces.ServiceEndpoints, serviceType ServiceType) bool {
	return getCustom(serviceEndpoints, serviceType) != ""
}

// SelectBaseURI is a helper for getting either a custom or a default URI for the given kind of
// endpoint.
func SelectBaseURI(
	projectURL string,
	serviceEndpoints interfaces.ServiceEndpoints,
	serviceType ServiceType,
	loggers ldlog.Loggers,
) string {
	configuredBaseURI := ""
	if anyCustom(serviceEndpoints) {
		configuredBaseURI = getCustom(serviceEndpoints, serviceType)
		if configuredBaseURI == "" {
			loggers.Errorf(
				"You have set custom ServiceEndpoints without specifying the %s base URI; connections may not work properly",
				serviceType,
			)
			configuredBaseURI = DefaultBaseURI(projectURL, serviceType)
		}
	} else {
		configuredBaseURI = DefaultBaseURI(projectURL, serviceType)
	}
	return strings.TrimRight(configuredBaseURI, "/")
}

// AddPath concatenates a subpath to a URL in a way that will not cause a double slash.
func AddPath(baseURI string, path string) string {
	return strings.TrimSuffix(baseURI, "/") + "/" + strings.TrimPrefix(path, "/")
}
