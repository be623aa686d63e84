package bpcomponents

import (
	"errors"
	"time"

	"github.com/baseplane/go-client-sdk/internal/endpoints"
	"github.com/baseplane/go-client-sdk/internal/realtime"
	"github.com/baseplane/go-client-sdk/subsystems"
)

// DefaultInitialReconnectDelay is the default value for
// StreamingChangesBuilder.InitialReconnectDelay.
const DefaultInitialReconnectDelay = time.Second

// StreamingChangesBuilder provides methods for configuring the streaming change subscription.
//
// See SubscribeChanges for the default behavior, which you can change with this builder's
// methods. These methods are designed to be used by chaining. For example:
//
//	sub, err := client.SubscribeChanges(bpcomponents.StreamingChanges().Table("orders"))
type StreamingChangesBuilder struct {
	schema                string
	table                 string
	initialReconnectDelay time.Duration
}

// StreamingChanges returns a configurable builder for the streaming change subscription.
//
// By default, the subscription delivers changes for all tables in the "public" schema.
func StreamingChanges() *StreamingChangesBuilder {
	return &StreamingChangesBuilder{
		schema:                "public",
		initialReconnectDelay: DefaultInitialReconnectDelay,
	}
}

// Schema sets the database schema whose changes should be delivered.
func (b *StreamingChangesBuilder) Schema(schema string) *StreamingChangesBuilder {
	b.schema = schema
	return b
}

// Table restricts the subscription to changes on a single table. An empty value, which is the
// default, delivers changes for all tables in the schema.
func (b *StreamingChangesBuilder) Table(table string) *StreamingChangesBuilder {
	b.table = table
	return b
}

// InitialReconnectDelay sets the initial reconnect delay for the subscription.
//
// The delay for subsequent reconnections increases exponentially from this value up to a
// maximum, with jitter. A value that is zero or negative resets to the default.
func (b *StreamingChangesBuilder) InitialReconnectDelay(delay time.Duration) *StreamingChangesBuilder {
	if delay <= 0 {
		b.initialReconnectDelay = DefaultInitialReconnectDelay
	} else {
		b.initialReconnectDelay = delay
	}
	return b
}

// Build is called internally by the SDK.
func (b *StreamingChangesBuilder) Build(clientContext subsystems.ClientContext) (subsystems.ChangeSource, error) {
	sink := clientContext.GetChangeSink()
	if sink == nil {
		return nil, errors.New("StreamingChanges can only be used within a change subscription")
	}
	cfg := realtime.StreamConfig{
		URI: endpoints.SelectBaseURI(
			clientContext.GetProjectURL(),
			clientContext.GetServiceEndpoints(),
			endpoints.RealtimeService,
			clientContext.GetLogging().Loggers,
		),
		Schema:                b.schema,
		Table:                 b.table,
		InitialReconnectDelay: b.initialReconnectDelay,
	}
	return realtime.NewStreamProcessor(clientContext, sink, cfg), nil
}
