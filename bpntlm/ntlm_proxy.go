// Package bpntlm allows you to configure the SDK to connect through a proxy server that uses
// NTLM authentication.
//
// The standard mechanism for specifying a proxy in the SDK configuration,
// bpcomponents.HTTPConfigurationBuilder.ProxyURL, does not support NTLM. Use this package's
// NewNTLMProxyHTTPClientFactory with HTTPConfigurationBuilder.HTTPClientFactory instead:
//
//	clientFactory, err := bpntlm.NewNTLMProxyHTTPClientFactory("http://my-proxy.com",
//	    "username", "password", "domain")
//	if err != nil {
//	    // invalid proxy parameters
//	}
//	config := bpclient.Config{
//	    HTTP: bpcomponents.HTTPConfiguration().HTTPClientFactory(clientFactory),
//	}
package bpntlm

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/baseplane/go-client-sdk/bphttp"
)

// NewNTLMProxyHTTPClientFactory returns a factory function for creating an HTTP client that
// connects through a proxy server that uses NTLM authentication.
//
// The username, password, and domain parameters are the proxy credentials; domain may be empty.
// You may also specify any number of the transport options from the bphttp package, such as
// bphttp.CACertOption if the proxy requires a self-signed certificate.
//
// The parameters are validated immediately, so that an invalid proxy configuration is detected
// here rather than on the first request.
func NewNTLMProxyHTTPClientFactory(
	proxyURL, username, password, domain string,
	options ...bphttp.TransportOption,
) (func() *http.Client, error) {
	if proxyURL == "" || username == "" || password == "" {
		return nil, errors.New("proxy URL, username, and password are required")
	}
	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}
	allOpts := []bphttp.TransportOption{
		bphttp.ProxyOption(*parsedProxyURL),
		bphttp.NTLMProxyAuthOption(username, password, domain),
	}
	allOpts = append(allOpts, options...)
	// Create a transport just to make sure the options are valid before we get any farther
	if _, _, err := bphttp.NewHTTPTransport(allOpts...); err != nil {
		return nil, err
	}
	return func() *http.Client {
		client := http.Client{}
		if transport, _, err := bphttp.NewHTTPTransport(allOpts...); err == nil {
			client.Transport = transport
		}
		return &client
	}, nil
}
