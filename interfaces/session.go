package interfaces

// Session describes a set of credentials issued by the auth service for a signed-in user.
//
// The access token can be attached to a client handle with Client.WithToken, so that
// subsequent data API requests are evaluated against the user's row-level permissions
// rather than the anonymous role.
type Session struct {
	// AccessToken is the bearer token for the signed-in user.
	AccessToken string

	// TokenType is the token scheme, normally "bearer".
	TokenType string

	// ExpiresIn is the lifetime of the access token in seconds.
	ExpiresIn int

	// RefreshToken is an opaque token that can be exchanged for a new session once the
	// access token has expired.
	RefreshToken string
}
