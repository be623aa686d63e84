// Package bphttp provides helpers for configuring the SDK's low-level HTTP behavior.
//
// Applications normally will not need to use this package directly; the settings in
// bpcomponents.HTTPConfigurationBuilder cover the same options at a higher level.
package bphttp

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	ntlm "github.com/launchdarkly/go-ntlm-proxy-auth"
)

const defaultConnectTimeout = 10 * time.Second

// TransportOption is the interface for optional configuration parameters that can be passed to
// NewHTTPTransport.
type TransportOption interface {
	apply(opts *transportExtraOptions) error
}

type transportExtraOptions struct {
	caCerts        *x509.CertPool
	connectTimeout time.Duration
	proxyURL       *url.URL
	ntlmAuth       *ntlmAuthOptions
}

type ntlmAuthOptions struct {
	username string
	password string
	domain   string
}

type connectTimeoutOption struct {
	timeout time.Duration
}

func (o connectTimeoutOption) apply(opts *transportExtraOptions) error {
	opts.connectTimeout = o.timeout
	return nil
}

// ConnectTimeoutOption specifies the maximum time to wait for a TCP connection, when used with
// NewHTTPTransport.
func ConnectTimeoutOption(timeout time.Duration) TransportOption {
	return connectTimeoutOption{timeout: timeout}
}

type caCertOption struct {
	certData []byte
}

func (o caCertOption) apply(opts *transportExtraOptions) error {
	if opts.caCerts == nil {
		var err error
		opts.caCerts, err = x509.SystemCertPool() // this returns a *copy* of the existing CA certs
		if err != nil {
			opts.caCerts = x509.NewCertPool()
		}
	}
	if !opts.caCerts.AppendCertsFromPEM(o.certData) {
		return errors.New("Invalid CA certificate data")
	}
	return nil
}

// CACertOption specifies a CA certificate to be added to the trusted root CA list for HTTPS
// requests, when used with NewHTTPTransport.
func CACertOption(certData []byte) TransportOption {
	return caCertOption{certData: certData}
}

type caCertFileOption struct {
	filePath string
}

func (o caCertFileOption) apply(opts *transportExtraOptions) error {
	bytes, err := os.ReadFile(o.filePath)
	if err != nil {
		return fmt.Errorf("Can't read CA certificate file %s", o.filePath)
	}
	return caCertOption{certData: bytes}.apply(opts)
}

// CACertFileOption specifies a CA certificate to be added to the trusted root CA list for HTTPS
// requests, when used with NewHTTPTransport. It reads the certificate data in PEM format from
// the specified file.
func CACertFileOption(filePath string) TransportOption {
	return caCertFileOption{filePath: filePath}
}

type proxyOption struct {
	url url.URL
}

func (o proxyOption) apply(opts *transportExtraOptions) error {
	u := o.url
	opts.proxyURL = &u
	return nil
}

// ProxyOption specifies a proxy URL to be used for all requests, when used with NewHTTPTransport,
// overriding any setting of the HTTP_PROXY, HTTPS_PROXY, or NO_PROXY environment variables.
func ProxyOption(url url.URL) TransportOption {
	return proxyOption{url: url}
}

type ntlmProxyAuthOption struct {
	username string
	password string
	domain   string
}

func (o ntlmProxyAuthOption) apply(opts *transportExtraOptions) error {
	opts.ntlmAuth = &ntlmAuthOptions{username: o.username, password: o.password, domain: o.domain}
	return nil
}

// NTLMProxyAuthOption specifies the username, password, and optional NTLM domain for proxy
// authentication, when used with NewHTTPTransport. It must be used together with ProxyOption.
func NTLMProxyAuthOption(username, password, domain string) TransportOption {
	return ntlmProxyAuthOption{username: username, password: password, domain: domain}
}

// NewHTTPTransport creates a customized http.Transport struct using the specified options. It
// returns both the Transport and the associated net.Dialer.
func NewHTTPTransport(options ...TransportOption) (*http.Transport, *net.Dialer, error) {
	extraOptions := transportExtraOptions{
		connectTimeout: defaultConnectTimeout,
	}
	for _, o := range options {
		if err := o.apply(&extraOptions); err != nil {
			return nil, nil, err
		}
	}
	dialer := &net.Dialer{
		Timeout:   extraOptions.connectTimeout,
		KeepAlive: 1 * time.Minute, // see newDefaultTransport
	}
	transport := newDefaultTransport()
	transport.DialContext = dialer.DialContext
	if extraOptions.caCerts != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: extraOptions.caCerts} //nolint:gosec // not setting TLS version
	}
	if extraOptions.proxyURL != nil {
		transport.Proxy = http.ProxyURL(extraOptions.proxyURL)
	}
	if extraOptions.ntlmAuth != nil {
		if extraOptions.proxyURL == nil {
			return nil, nil, errors.New("cannot specify NTLM proxy auth parameters without a proxy URL")
		}
		// The NTLM proxy handshake happens at the connection level, so instead of setting
		// transport.Proxy we replace the transport's dialer.
		dialWithNTLM := ntlm.NewNTLMProxyDialContext(dialer, *extraOptions.proxyURL,
			extraOptions.ntlmAuth.username, extraOptions.ntlmAuth.password, extraOptions.ntlmAuth.domain,
			transport.TLSClientConfig)
		transport.Proxy = nil
		transport.DialContext = dialWithNTLM
	}
	return transport, dialer, nil
}

func newDefaultTransport() *http.Transport {
	// The settings here are the same as Go's http.DefaultTransport, which we do not want to
	// use directly because components should not share connection pools.
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
