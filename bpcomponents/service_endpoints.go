package bpcomponents

import "github.com/baseplane/go-client-sdk/interfaces"

// ProjectEndpoints specifies a single base URI for all Baseplane services, telling the SDK to
// reach every service through that host using the standard URI paths.
//
// This is useful when requests are routed through a gateway or a local development stack rather
// than the hosted platform. Store the returned value in the ServiceEndpoints field of your SDK
// configuration. For example:
//
//	gatewayURI := "http://localhost:54321"
//	config := bpclient.Config{
//	    ServiceEndpoints: bpcomponents.ProjectEndpoints(gatewayURI),
//	}
//
// Note that this is not the same as an HTTP proxy, which would be set with
// bpcomponents.HTTPConfiguration().ProxyURL().
func ProjectEndpoints(baseURI string) interfaces.ServiceEndpoints {
	return interfaces.ServiceEndpoints{
		REST:     baseURI + "/rest/v1",
		Realtime: baseURI + "/realtime/v1",
		Auth:     baseURI + "/auth/v1",
	}
}

// ProjectEndpointsWithoutRealtime is like ProjectEndpoints, but leaves the realtime endpoint at
// its default so that change subscriptions still connect directly to the hosted platform. Use
// this when a gateway does not support long-lived streaming connections.
func ProjectEndpointsWithoutRealtime(baseURI string) interfaces.ServiceEndpoints {
	return interfaces.ServiceEndpoints{
		REST: baseURI + "/rest/v1",
		Auth: baseURI + "/auth/v1",
	}
}
