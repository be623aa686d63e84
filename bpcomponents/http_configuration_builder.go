package bpcomponents

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/baseplane/go-client-sdk/bphttp"
	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/subsystems"
)

// DefaultConnectTimeout is the HTTP connection timeout that is used if
// HTTPConfigurationBuilder.ConnectTimeout is not set.
const DefaultConnectTimeout = 3 * time.Second

const sdkName = "BaseplaneGoClient"

var validTagKeyOrValueRegex = regexp.MustCompile(`^[\w.-]*$`)

// HTTPConfigurationBuilder contains methods for configuring the SDK's networking behavior.
//
// If you want to set non-default values for any of these properties, create a builder with
// bpcomponents.HTTPConfiguration(), change its properties with the HTTPConfigurationBuilder
// methods, and store it in the HTTP field of bpclient.Config:
//
//	config := bpclient.Config{
//	    HTTP: bpcomponents.HTTPConfiguration().ConnectTimeout(3 * time.Second),
//	}
type HTTPConfigurationBuilder struct {
	inited            bool
	connectTimeout    time.Duration
	customHeaders     map[string]string
	proxyURL          string
	ntlmAuthParams    *ntlmAuthParams
	caCertOptions     []bphttp.TransportOption
	httpClientFactory func() *http.Client
	wrapperIdentifier string
}

type ntlmAuthParams struct {
	username string
	password string
	domain   string
}

// HTTPConfiguration returns a configuration builder for the SDK's networking configuration.
//
// The default configuration specifies a connection timeout of DefaultConnectTimeout and no proxy.
func HTTPConfiguration() *HTTPConfigurationBuilder {
	return &HTTPConfigurationBuilder{}
}

func (b *HTTPConfigurationBuilder) checkValid() bool {
	if b == nil {
		return false
	}
	if !b.inited {
		b.connectTimeout = DefaultConnectTimeout
		b.customHeaders = make(map[string]string)
		b.inited = true
	}
	return true
}

// CACert specifies a CA certificate to be added to the trusted root CA list for HTTPS requests,
// in PEM format.
func (b *HTTPConfigurationBuilder) CACert(certData []byte) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.caCertOptions = append(b.caCertOptions, bphttp.CACertOption(certData))
	}
	return b
}

// CACertFile specifies a CA certificate to be added to the trusted root CA list for HTTPS
// requests, reading the certificate data in PEM format from the specified file.
func (b *HTTPConfigurationBuilder) CACertFile(filePath string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.caCertOptions = append(b.caCertOptions, bphttp.CACertFileOption(filePath))
	}
	return b
}

// ConnectTimeout sets the maximum time to wait for a TCP connection.
func (b *HTTPConfigurationBuilder) ConnectTimeout(connectTimeout time.Duration) *HTTPConfigurationBuilder {
	if b.checkValid() {
		if connectTimeout <= 0 {
			b.connectTimeout = DefaultConnectTimeout
		} else {
			b.connectTimeout = connectTimeout
		}
	}
	return b
}

// Header specifies a custom HTTP header that should be added to all requests. Overwriting one of
// the headers that the SDK sets itself, such as apikey, is not prevented but may cause requests
// to be rejected by the service.
func (b *HTTPConfigurationBuilder) Header(key string, value string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.customHeaders[key] = value
	}
	return b
}

// HTTPClientFactory specifies a function for creating each HTTP client instance that is used by
// the SDK. If you use this option, the SDK's other HTTP configuration properties are ignored.
//
// This is meant for unusual cases where an application must fully control the HTTP behavior.
func (b *HTTPConfigurationBuilder) HTTPClientFactory(httpClientFactory func() *http.Client) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.httpClientFactory = httpClientFactory
	}
	return b
}

// NTLMProxyAuth specifies the username, password, and optional NTLM domain for proxy
// authentication. It must be used together with ProxyURL.
func (b *HTTPConfigurationBuilder) NTLMProxyAuth(username, password, domain string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.ntlmAuthParams = &ntlmAuthParams{username: username, password: password, domain: domain}
	}
	return b
}

// ProxyURL specifies a proxy URL to be used for all requests, overriding any setting of the
// HTTP_PROXY, HTTPS_PROXY, or NO_PROXY environment variables.
func (b *HTTPConfigurationBuilder) ProxyURL(proxyURL string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		b.proxyURL = proxyURL
	}
	return b
}

// Wrapper allows a library that uses this SDK to identify itself in request headers, as distinct
// from an application using the SDK directly.
func (b *HTTPConfigurationBuilder) Wrapper(wrapperName, wrapperVersion string) *HTTPConfigurationBuilder {
	if b.checkValid() {
		if wrapperName == "" {
			b.wrapperIdentifier = ""
		} else if wrapperVersion == "" {
			b.wrapperIdentifier = wrapperName
		} else {
			b.wrapperIdentifier = wrapperName + "/" + wrapperVersion
		}
	}
	return b
}

// Build is called internally by the SDK.
func (b *HTTPConfigurationBuilder) Build(clientContext subsystems.ClientContext) (subsystems.HTTPConfiguration, error) {
	if !b.checkValid() {
		defaults := HTTPConfiguration()
		defaults.checkValid()
		return defaults.Build(clientContext)
	}

	headers := make(http.Header)
	headers.Set("apikey", clientContext.GetAPIKey())
	headers.Set("Authorization", "Bearer "+clientContext.GetAPIKey())
	headers.Set("User-Agent", sdkName+"/"+internal.SDKVersion)
	if b.wrapperIdentifier != "" {
		headers.Set("X-Baseplane-Wrapper", b.wrapperIdentifier)
	}
	if tagsHeader := buildTagsHeader(clientContext); tagsHeader != "" {
		headers.Set("X-Baseplane-Tags", tagsHeader)
	}
	for key, value := range b.customHeaders {
		headers.Set(key, value)
	}

	transportOpts := append([]bphttp.TransportOption(nil), b.caCertOptions...)
	transportOpts = append(transportOpts, bphttp.ConnectTimeoutOption(b.connectTimeout))

	if b.proxyURL != "" {
		u, err := url.Parse(b.proxyURL)
		if err != nil {
			return subsystems.HTTPConfiguration{}, fmt.Errorf("invalid proxy URL %q: %w", b.proxyURL, err)
		}
		transportOpts = append(transportOpts, bphttp.ProxyOption(*u))
	}
	if b.ntlmAuthParams != nil {
		if b.proxyURL == "" {
			return subsystems.HTTPConfiguration{}, fmt.Errorf("cannot specify NTLM proxy auth without a proxy URL")
		}
		transportOpts = append(transportOpts,
			bphttp.NTLMProxyAuthOption(b.ntlmAuthParams.username, b.ntlmAuthParams.password, b.ntlmAuthParams.domain))
	}

	clientFactory := b.httpClientFactory
	if clientFactory == nil {
		// Validate the transport options now so that a configuration error surfaces at client
		// construction rather than on the first request.
		if _, _, err := bphttp.NewHTTPTransport(transportOpts...); err != nil {
			return subsystems.HTTPConfiguration{}, err
		}
		connectTimeout := b.connectTimeout
		clientFactory = func() *http.Client {
			client := http.Client{Timeout: connectTimeout}
			if transport, _, err := bphttp.NewHTTPTransport(transportOpts...); err == nil {
				client.Transport = transport
			}
			return &client
		}
	}

	return subsystems.HTTPConfiguration{
		DefaultHeaders:   headers,
		CreateHTTPClient: clientFactory,
	}, nil
}

func buildTagsHeader(clientContext subsystems.ClientContext) string {
	appInfo := clientContext.GetApplicationInfo()
	tags := map[string]string{
		"application-id":      appInfo.ApplicationID,
		"application-version": appInfo.ApplicationVersion,
	}
	keys := make([]string, 0, len(tags))
	for key, value := range tags {
		if value == "" || !validTagKeyOrValueRegex.MatchString(value) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"/"+tags[key])
	}
	return strings.Join(pairs, " ")
}
