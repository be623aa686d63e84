package realtime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/internal/sharedtest"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-test-helpers/v3/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const briefDelay = 10 * time.Millisecond

type statusUpdate struct {
	state     interfaces.ChangeSourceState
	errorInfo interfaces.ChangeSourceErrorInfo
}

type mockSink struct {
	events   chan interfaces.ChangeEvent
	statuses chan statusUpdate
}

func newMockSink() *mockSink {
	return &mockSink{
		events:   make(chan interfaces.ChangeEvent, 100),
		statuses: make(chan statusUpdate, 100),
	}
}

func (m *mockSink) Record(event interfaces.ChangeEvent) {
	m.events <- event
}

func (m *mockSink) UpdateStatus(state interfaces.ChangeSourceState, errorInfo interfaces.ChangeSourceErrorInfo) {
	m.statuses <- statusUpdate{state, errorInfo}
}

func (m *mockSink) requireEvent(t *testing.T) interfaces.ChangeEvent {
	select {
	case event := <-m.events:
		return event
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for a change event")
		return interfaces.ChangeEvent{}
	}
}

func (m *mockSink) requireStatus(t *testing.T, state interfaces.ChangeSourceState) statusUpdate {
	deadline := time.After(time.Second)
	for {
		select {
		case status := <-m.statuses:
			if status.state == state {
				return status
			}
		case <-deadline:
			require.FailNowf(t, "timed out", "timed out waiting for state %s", state)
			return statusUpdate{}
		}
	}
}

func withStreamProcessor(
	t *testing.T,
	handler http.Handler,
	cfgMod func(*StreamConfig),
	action func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}),
) {
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		sink := newMockSink()
		cfg := StreamConfig{URI: server.URL, Schema: "public", InitialReconnectDelay: briefDelay}
		if cfgMod != nil {
			cfgMod(&cfg)
		}
		sp := NewStreamProcessor(sharedtest.NewSimpleTestContext(sharedtest.TestAPIKey), sink, cfg)
		defer sp.Close()

		closeWhenReady := make(chan struct{})
		sp.Start(closeWhenReady)
		action(sp, sink, closeWhenReady)
	})
}

func waitForReady(t *testing.T, closeWhenReady chan struct{}) {
	select {
	case <-closeWhenReady:
	case <-time.After(time.Second):
		require.FailNow(t, "timed out waiting for stream to start")
	}
}

func TestStreamProcessorRequestHasConfiguredParameters(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()
	handler, requestsCh := httphelpers.RecordingHandler(streamHandler)

	withStreamProcessor(t, handler,
		func(cfg *StreamConfig) { cfg.Table = "orders" },
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			r := <-requestsCh
			assert.Equal(t, "/changes", r.Request.URL.Path)
			assert.Equal(t, "public", r.Request.URL.Query().Get("schema"))
			assert.Equal(t, "orders", r.Request.URL.Query().Get("table"))
		})
}

func TestStreamProcessorBecomesInitializedOnReadyEvent(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()

	withStreamProcessor(t, streamHandler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			assert.False(t, sp.IsInitialized())
			stream.Enqueue(httphelpers.SSEEvent{Event: "ready", Data: "{}"})
			waitForReady(t, closeWhenReady)
			assert.True(t, sp.IsInitialized())
		})
}

func TestStreamProcessorDeliversChangeEvents(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()

	withStreamProcessor(t, streamHandler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			stream.Enqueue(httphelpers.SSEEvent{
				Event: "insert",
				Data:  `{"table": "orders", "record": {"id": 3}}`,
			})
			waitForReady(t, closeWhenReady)

			event := sink.requireEvent(t)
			assert.Equal(t, interfaces.ChangeActionInsert, event.Action)
			assert.Equal(t, "orders", event.Table)
			assert.Equal(t, 3, event.Record.GetByKey("id").IntValue())
			sink.requireStatus(t, interfaces.ChangeSourceStateValid)
		})
}

func TestStreamProcessorRestartsOnMalformedEvent(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()
	handler, requestsCh := httphelpers.RecordingHandler(streamHandler)

	withStreamProcessor(t, handler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			<-requestsCh
			stream.Enqueue(httphelpers.SSEEvent{Event: "insert", Data: `{"table": "orders"`})

			status := sink.requireStatus(t, interfaces.ChangeSourceStateInterrupted)
			assert.Equal(t, interfaces.ChangeSourceErrorKindInvalidData, status.errorInfo.Kind)

			// The stream should reconnect after the restart
			select {
			case <-requestsCh:
			case <-time.After(time.Second):
				require.FailNow(t, "timed out waiting for stream restart")
			}
		})
}

func TestStreamProcessorRetriesAfterRecoverableHTTPError(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()
	handler := httphelpers.SequentialHandler(httphelpers.HandlerWithStatus(503), streamHandler)

	withStreamProcessor(t, handler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			status := sink.requireStatus(t, interfaces.ChangeSourceStateInterrupted)
			assert.Equal(t, interfaces.ChangeSourceErrorKindErrorResponse, status.errorInfo.Kind)
			assert.Equal(t, 503, status.errorInfo.StatusCode)

			stream.Enqueue(httphelpers.SSEEvent{Event: "ready", Data: "{}"})
			waitForReady(t, closeWhenReady)
			assert.True(t, sp.IsInitialized())
		})
}

func TestStreamProcessorGivesUpOnUnrecoverableHTTPError(t *testing.T) {
	handler := httphelpers.HandlerWithStatus(401)

	withStreamProcessor(t, handler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			waitForReady(t, closeWhenReady)
			assert.False(t, sp.IsInitialized())

			status := sink.requireStatus(t, interfaces.ChangeSourceStateOff)
			assert.Equal(t, interfaces.ChangeSourceErrorKindErrorResponse, status.errorInfo.Kind)
			assert.Equal(t, 401, status.errorInfo.StatusCode)
		})
}

func TestStreamProcessorCloseReportsOffState(t *testing.T) {
	streamHandler, stream := httphelpers.SSEHandler(nil)
	defer stream.Close()

	withStreamProcessor(t, streamHandler, nil,
		func(sp *StreamProcessor, sink *mockSink, closeWhenReady chan struct{}) {
			stream.Enqueue(httphelpers.SSEEvent{Event: "ready", Data: "{}"})
			waitForReady(t, closeWhenReady)

			require.NoError(t, sp.Close())
			sink.requireStatus(t, interfaces.ChangeSourceStateOff)

			// Close is idempotent
			require.NoError(t, sp.Close())
		})
}
