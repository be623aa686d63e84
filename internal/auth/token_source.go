// Package auth contains the internal client for the Baseplane auth service's token endpoint.
package auth

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/internal/endpoints"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"golang.org/x/exp/maps"
	"golang.org/x/sync/singleflight"
)

const tokenPath = "token"

// TokenSource exchanges user credentials for sessions at the auth service's token endpoint.
//
// Concurrent refresh requests for the same refresh token are coalesced into a single request,
// since refresh tokens are single-use and issuing the same token twice would invalidate the
// second caller's session.
type TokenSource struct {
	httpClient   *http.Client
	baseURI      string
	headers      http.Header
	loggers      ldlog.Loggers
	refreshGroup singleflight.Group
}

// NewTokenSource creates a TokenSource based on the client's configuration.
func NewTokenSource(clientContext subsystems.ClientContext) *TokenSource {
	loggers := clientContext.GetLogging().Loggers
	return &TokenSource{
		httpClient: clientContext.GetHTTP().CreateHTTPClient(),
		baseURI: endpoints.SelectBaseURI(
			clientContext.GetProjectURL(),
			clientContext.GetServiceEndpoints(),
			endpoints.AuthService,
			loggers,
		),
		headers: clientContext.GetHTTP().DefaultHeaders,
		loggers: loggers,
	}
}

// SignInWithPassword performs a password-grant token request and returns the resulting session.
func (t *TokenSource) SignInWithPassword(ctx context.Context, email, password string) (interfaces.Session, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("email").String(email)
	obj.Name("password").String(password)
	obj.End()
	if err := w.Error(); err != nil {
		return interfaces.Session{}, err
	}
	return t.requestToken(ctx, "password", w.Bytes())
}

// Refresh exchanges a refresh token for a new session. Calls with the same refresh token that
// overlap in time share a single request and result.
func (t *TokenSource) Refresh(ctx context.Context, refreshToken string) (interfaces.Session, error) {
	result, err, _ := t.refreshGroup.Do(refreshToken, func() (interface{}, error) {
		w := jwriter.NewWriter()
		obj := w.Object()
		obj.Name("refresh_token").String(refreshToken)
		obj.End()
		if err := w.Error(); err != nil {
			return interfaces.Session{}, err
		}
		return t.requestToken(ctx, "refresh_token", w.Bytes())
	})
	if err != nil {
		return interfaces.Session{}, err
	}
	return result.(interfaces.Session), nil
}

func (t *TokenSource) requestToken(ctx context.Context, grantType string, body []byte) (interfaces.Session, error) {
	uri := endpoints.AddPath(t.baseURI, tokenPath) + "?grant_type=" + grantType
	req, err := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewReader(body))
	if err != nil {
		return interfaces.Session{}, err
	}
	if t.headers != nil {
		req.Header = maps.Clone(t.headers)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return interfaces.Session{}, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return interfaces.Session{}, err
	}
	if resp.StatusCode/100 != 2 {
		apiErr := internal.NewAPIError(resp.StatusCode, respBody)
		t.loggers.Errorf("Token request failed: %s", apiErr)
		return interfaces.Session{}, apiErr
	}
	return parseSession(respBody)
}

func parseSession(data []byte) (interfaces.Session, error) {
	var session interfaces.Session
	r := jreader.NewReader(data)
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "access_token":
			session.AccessToken = r.String()
		case "token_type":
			session.TokenType = r.String()
		case "expires_in":
			session.ExpiresIn = r.Int()
		case "refresh_token":
			session.RefreshToken = r.String()
		}
	}
	return session, r.Error()
}
