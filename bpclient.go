package bpclient

import (
	"context"
	"sync"

	"github.com/baseplane/go-client-sdk/bpcomponents"
	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/internal/auth"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"golang.org/x/exp/maps"
)

// Client is a client for one Baseplane project. Use MakeClient or MakeCustomClient to create one.
//
// A Client is safe for concurrent use by multiple goroutines, and an application normally creates
// a single Client per project and shares it. Creating a Client performs no network I/O; the first
// connection to the service happens when the first operation is executed, so constructing a
// client with an unreachable project URL does not fail until a request is made.
//
// Applications should call Close when the client is no longer needed, to shut down any active
// change subscriptions.
type Client struct {
	project       ProjectConfig
	context       *internal.ClientContextImpl
	loggers       ldlog.Loggers
	rest          *restRequestor
	tokens        *auth.TokenSource
	subscriptions []*ChangesSubscription
	lock          sync.Mutex
	closeOnce     sync.Once
}

// Client must satisfy its own capability interface.
var _ DataClient = (*Client)(nil)

// MakeClient creates a new client for the project described by the given configuration, with
// default options. To specify non-default options such as networking or logging behavior, use
// MakeCustomClient instead.
//
// The configuration is validated first: if the project URL or API key is missing or malformed,
// MakeClient returns a ConfigError and no client. Otherwise the returned client is ready for
// use immediately; no connection to the service is made during construction.
//
//	project, err := bpclient.ProjectConfigFromEnvironment()
//	if err != nil { ... }
//	client, err := bpclient.MakeClient(project)
func MakeClient(project ProjectConfig) (*Client, error) {
	return MakeCustomClient(project, Config{})
}

// MakeCustomClient creates a new client for a project with a custom configuration.
//
// The config parameter is a Config struct whose zero value is a valid default configuration; set
// only the fields you want to change, using the builders in the bpcomponents package:
//
//	config := bpclient.Config{
//	    Logging: bpcomponents.Logging().MinLevel(ldlog.Warn),
//	    HTTP:    bpcomponents.HTTPConfiguration().ConnectTimeout(5 * time.Second),
//	}
//	client, err := bpclient.MakeCustomClient(project, config)
//
// Like MakeClient, this validates the project configuration and builds the client's components,
// but performs no network I/O.
func MakeCustomClient(project ProjectConfig, config Config) (*Client, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}

	clientContext, err := newClientContextFromConfig(project, config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		project: project,
		context: clientContext,
		loggers: clientContext.GetLogging().Loggers,
		rest:    newRESTRequestor(clientContext),
		tokens:  auth.NewTokenSource(clientContext),
	}
	client.loggers.Infof("Starting Baseplane client %s", Version)
	return client, nil
}

// From starts a query against a table in the project's database.
//
// The returned Query is a builder; nothing is sent to the service until one of its Execute
// methods is called. See Query for the available operations, filters, and modifiers.
func (c *Client) From(table string) *Query {
	return newQuery(c, table)
}

// SubscribeChanges opens a subscription to row change events from the project's database.
//
// Passing nil for the configurer subscribes to all tables in the "public" schema with default
// options; pass bpcomponents.StreamingChanges() with its builder methods to narrow the
// subscription or tune its reconnection behavior.
//
// The subscription connects asynchronously. SubscribeChanges returns as soon as the subscription
// has been set up; use ChangesSubscription.WaitForReady if you need to block until the stream is
// established. Events are delivered on the channel returned by ChangesSubscription.Events.
//
// Each subscription holds its own connection to the realtime service. Subscriptions are closed
// individually with ChangesSubscription.Close, or all at once when the client is closed.
func (c *Client) SubscribeChanges(
	configurer subsystems.ComponentConfigurer[subsystems.ChangeSource],
) (*ChangesSubscription, error) {
	if configurer == nil {
		configurer = bpcomponents.StreamingChanges()
	}

	sub := newChangesSubscription()
	contextCopy := c.context.BasicClientContext
	contextCopy.ChangeSink = &changesSinkImpl{sub: sub, loggers: c.loggers}

	source, err := configurer.Build(&internal.ClientContextImpl{BasicClientContext: contextCopy})
	if err != nil {
		return nil, err
	}
	sub.source = source

	c.lock.Lock()
	c.subscriptions = append(c.subscriptions, sub)
	c.lock.Unlock()

	source.Start(sub.ready)
	return sub, nil
}

// SignInWithPassword exchanges a user's email and password for a session at the project's auth
// service. Pass the returned session's access token to WithToken to make subsequent requests as
// that user.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (interfaces.Session, error) {
	return c.tokens.SignInWithPassword(ctx, email, password)
}

// RefreshSession exchanges a refresh token for a new session. Overlapping calls with the same
// refresh token are coalesced into a single request, since refresh tokens are single-use.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (interfaces.Session, error) {
	return c.tokens.Refresh(ctx, refreshToken)
}

// WithToken returns a derived client handle whose requests authenticate as a signed-in user,
// using the given access token in place of the project's public API key.
//
// The derived handle shares the parent's HTTP connection pool but is otherwise independent:
// queries and subscriptions created from it carry the user's token, and closing it does not
// affect the parent. The parent client continues to use the public key.
func (c *Client) WithToken(accessToken string) *Client {
	headers := maps.Clone(c.context.GetHTTP().DefaultHeaders)
	if headers == nil {
		headers = make(map[string][]string)
	}
	headers["Authorization"] = []string{"Bearer " + accessToken}

	contextCopy := c.context.BasicClientContext
	httpConfig := contextCopy.HTTP
	httpConfig.DefaultHeaders = headers
	contextCopy.HTTP = httpConfig

	return &Client{
		project: c.project,
		context: &internal.ClientContextImpl{BasicClientContext: contextCopy},
		loggers: c.loggers,
		rest:    c.rest.withHeaders(headers),
		tokens:  c.tokens,
	}
}

// Close shuts down the client, closing any change subscriptions that are still active. It is
// safe to call more than once. Requests that are in flight on other goroutines are not
// interrupted.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.lock.Lock()
		subs := c.subscriptions
		c.subscriptions = nil
		c.lock.Unlock()
		for _, sub := range subs {
			_ = sub.Close()
		}
		c.loggers.Info("Closed Baseplane client")
	})
	return nil
}
