package bpclient

import (
	"context"
	"io"

	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/subsystems"
)

// DataClient defines the capabilities of the SDK client that most applications use.
//
// Application code that needs to be testable against a mock backend should depend on this
// interface rather than on the concrete *Client type. The SDK's own *Client is guaranteed to
// implement DataClient.
//
// We do not recommend that applications provide their own implementation of *Client's full
// method set; the interface deliberately covers only the operations that are meaningful to
// substitute in tests.
type DataClient interface {
	io.Closer

	// From starts a query against a table in the project's database. See Query.
	From(table string) *Query

	// SubscribeChanges opens a subscription to row change events. See Client.SubscribeChanges.
	SubscribeChanges(configurer subsystems.ComponentConfigurer[subsystems.ChangeSource]) (*ChangesSubscription, error)

	// SignInWithPassword exchanges a user's email and password for a session.
	SignInWithPassword(ctx context.Context, email, password string) (interfaces.Session, error)

	// RefreshSession exchanges a refresh token for a new session.
	RefreshSession(ctx context.Context, refreshToken string) (interfaces.Session, error)

	// WithToken returns a derived client handle that authenticates as a signed-in user.
	WithToken(accessToken string) *Client
}
