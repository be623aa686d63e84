package subsystems

import (
	"io"

	"github.com/baseplane/go-client-sdk/interfaces"
)

// ChangeSource describes the interface for an object that receives row change events from
// the Baseplane realtime service.
//
// The built-in implementations are the SSE-based streaming source created by
// bpcomponents.StreamingChanges() and the local-development file source in the bpfiledata
// package. Applications normally do not interact with this interface directly; the client's
// SubscribeChanges method manages the lifecycle of the source.
type ChangeSource interface {
	io.Closer

	// IsInitialized returns true if the source has successfully established its feed at least once.
	IsInitialized() bool

	// Start tells the source to begin delivering events to the ChangeSink it was created with.
	//
	// The source should close the closeWhenReady channel once it has either established its feed
	// or permanently failed (for instance, due to an invalid API key). Start is called at most
	// once per source.
	Start(closeWhenReady chan<- struct{})
}

// ChangeSink is the interface through which a ChangeSource delivers events and status
// information to the SDK.
//
// The SDK provides the implementation; component code should not implement this interface.
type ChangeSink interface {
	// Record delivers a single change event. Implementations must be safe for concurrent use.
	Record(event interfaces.ChangeEvent)

	// UpdateStatus informs the SDK of a change in the source's condition. If the new state is
	// the same as the previous state, only the error information is updated.
	UpdateStatus(newState interfaces.ChangeSourceState, newError interfaces.ChangeSourceErrorInfo)
}
