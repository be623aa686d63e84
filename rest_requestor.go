package bpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/internal/endpoints"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"golang.org/x/exp/maps"
)

// restRequestor is the internal implementation of making requests to the REST data API.
type restRequestor struct {
	httpClient       *http.Client
	baseURI          string
	headers          http.Header
	loggers          ldlog.Loggers
	logRequestErrors bool
}

func newRESTRequestor(clientContext subsystems.ClientContext) *restRequestor {
	loggers := clientContext.GetLogging().Loggers
	return &restRequestor{
		httpClient: clientContext.GetHTTP().CreateHTTPClient(),
		baseURI: endpoints.SelectBaseURI(
			clientContext.GetProjectURL(),
			clientContext.GetServiceEndpoints(),
			endpoints.RESTService,
			loggers,
		),
		headers:          clientContext.GetHTTP().DefaultHeaders,
		loggers:          loggers,
		logRequestErrors: clientContext.GetLogging().LogRequestErrors,
	}
}

func (r *restRequestor) request(
	ctx context.Context,
	method string,
	resource string,
	params url.Values,
	extraHeaders http.Header,
	body []byte,
) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoints.AddPath(r.baseURI, resource), bodyReader)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	if r.headers != nil {
		req.Header = maps.Clone(r.headers)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range extraHeaders {
		req.Header[key] = values
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		apiErr := internal.NewAPIError(resp.StatusCode, respBody)
		if r.logRequestErrors {
			r.loggers.Warnf("Request to %s failed: %s", req.URL.Path, apiErr)
		}
		return nil, apiErr
	}
	return respBody, nil
}

// withHeaders returns a copy of the requestor that sends different default headers, for derived
// client handles. The HTTP client and its connection pool are shared.
func (r *restRequestor) withHeaders(headers http.Header) *restRequestor {
	ret := *r
	ret.headers = headers
	return &ret
}
