package internal

import (
	"github.com/baseplane/go-client-sdk/subsystems"
)

// ClientContextImpl is the SDK's standard implementation of subsystems.ClientContext.
type ClientContextImpl struct {
	subsystems.BasicClientContext
}
