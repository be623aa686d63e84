// Package realtime contains the internal implementation of the SSE-based change subscription.
package realtime

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/internal"
	"github.com/baseplane/go-client-sdk/internal/endpoints"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	es "github.com/launchdarkly/eventsource"

	"golang.org/x/exp/maps"
)

// Implementation of the streaming change source, not including the lower-level SSE implementation
// which is in the eventsource package.
//
// Error handling works as follows:
// 1. If any event is malformed, we must assume the stream is broken and we may have missed
// changes. Report an INTERRUPTED state with an error kind of INVALID_DATA, and restart the stream.
// 2. If we receive an unrecoverable error like HTTP 401, we close the stream and don't retry, and
// report an OFF state. Any other HTTP error or network error causes a retry with backoff, with a
// state of INTERRUPTED.
// 3. We close the channel passed to Start to tell the subscription logic that initialization has
// either succeeded (the service acknowledged the subscription) or permanently failed (we got a
// 401, etc.). Otherwise, the caller's wait may time out but we will still be retrying in the
// background, and if we succeed then the caller can detect that by calling IsInitialized.

const (
	readyEvent               = "ready"
	insertEvent              = "insert"
	updateEvent              = "update"
	deleteEvent              = "delete"
	streamReadTimeout        = 5 * time.Minute // the service sends a heartbeat comment every 3 minutes
	streamMaxRetryDelay      = 30 * time.Second
	streamRetryResetInterval = 60 * time.Second
	streamJitterRatio        = 0.5
	defaultStreamRetryDelay  = 1 * time.Second

	streamingErrorContext     = "in stream connection"
	streamingWillRetryMessage = "will retry"
)

// StreamConfig describes the configuration for a streaming change source. It is exported so that
// it can be used in the StreamingChangesBuilder.
type StreamConfig struct {
	URI                   string
	Schema                string
	Table                 string
	InitialReconnectDelay time.Duration
}

// StreamProcessor is the internal implementation of the streaming change source.
//
// This type is exported from internal so that the StreamingChangesBuilder tests can verify its
// configuration. All other code outside of this package should interact with it only via the
// ChangeSource interface.
type StreamProcessor struct {
	cfg           StreamConfig
	sink          subsystems.ChangeSink
	client        *http.Client
	headers       http.Header
	loggers       ldlog.Loggers
	isInitialized internal.AtomicBoolean
	halt          chan struct{}
	readyOnce     sync.Once
	closeOnce     sync.Once
}

// NewStreamProcessor creates the internal implementation of the streaming change source.
func NewStreamProcessor(
	context subsystems.ClientContext,
	sink subsystems.ChangeSink,
	cfg StreamConfig,
) *StreamProcessor {
	sp := &StreamProcessor{
		cfg:     cfg,
		sink:    sink,
		headers: context.GetHTTP().DefaultHeaders,
		loggers: context.GetLogging().Loggers,
		halt:    make(chan struct{}),
	}
	sp.client = context.GetHTTP().CreateHTTPClient()
	// Client.Timeout isn't just a connect timeout, it will break the connection if a full response
	// isn't received within that time (which, with the stream, it never will be), so we must make
	// sure it's zero and not the usual configured default. What we do want is a *connection*
	// timeout, which is a property of the transport's Dialer.
	sp.client.Timeout = 0

	return sp
}

//nolint:revive // no doc comment for standard method
func (sp *StreamProcessor) IsInitialized() bool {
	return sp.isInitialized.Get()
}

//nolint:revive // no doc comment for standard method
func (sp *StreamProcessor) Start(closeWhenReady chan<- struct{}) {
	sp.loggers.Info("Starting streaming change subscription")
	go sp.subscribe(closeWhenReady)
}

func (sp *StreamProcessor) consumeStream(stream *es.Stream, closeWhenReady chan<- struct{}) {
	// Consume remaining Events and Errors so we can garbage collect
	defer func() {
		for range stream.Events {
		}
		if stream.Errors != nil {
			for range stream.Errors {
			}
		}
	}()

	for {
		select {
		case event, ok := <-stream.Events:
			if !ok {
				// stream.Events is only closed if the EventSource has been closed. However, that
				// only happens when we have received from sp.halt, in which case we return
				// immediately after calling stream.Close(), terminating the for loop-- so we
				// should not actually reach this point. Still, in case the channel is somehow
				// closed unexpectedly, we do want to terminate the loop.
				return
			}

			shouldRestart := false

			switch event.Event() {
			case readyEvent:
				sp.setInitializedAndNotifyClient(closeWhenReady)

			case insertEvent, updateEvent, deleteEvent:
				change, err := parseChangeEvent(event.Event(), []byte(event.Data()))
				if err != nil {
					sp.loggers.Errorf(
						"Received streaming \"%s\" event with malformed JSON data (%s); will restart stream",
						event.Event(),
						err,
					)
					sp.sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted, interfaces.ChangeSourceErrorInfo{
						Kind:    interfaces.ChangeSourceErrorKindInvalidData,
						Message: err.Error(),
						Time:    time.Now(),
					})
					shouldRestart = true // scenario 1 in error handling comments at top of file
					break
				}
				// The first change also implies the subscription is established, in case the
				// service did not send an explicit ready event.
				sp.setInitializedAndNotifyClient(closeWhenReady)
				sp.sink.Record(change)
				sp.sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})

			default:
				sp.loggers.Infof("Unexpected event found in stream: %s", event.Event())
			}

			if shouldRestart {
				stream.Restart()
			}

		case <-sp.halt:
			stream.Close()
			return
		}
	}
}

func (sp *StreamProcessor) subscribe(closeWhenReady chan<- struct{}) {
	req, reqErr := http.NewRequest("GET", endpoints.AddPath(sp.cfg.URI, "changes"), nil)
	if reqErr != nil {
		sp.loggers.Errorf(
			"Unable to create a stream request; this is not a network problem, most likely a bad base URI: %s",
			reqErr,
		)
		sp.sink.UpdateStatus(interfaces.ChangeSourceStateOff, interfaces.ChangeSourceErrorInfo{
			Kind:    interfaces.ChangeSourceErrorKindUnknown,
			Message: reqErr.Error(),
			Time:    time.Now(),
		})
		close(closeWhenReady)
		return
	}
	params := url.Values{}
	if sp.cfg.Schema != "" {
		params.Set("schema", sp.cfg.Schema)
	}
	if sp.cfg.Table != "" {
		params.Set("table", sp.cfg.Table)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}
	if sp.headers != nil {
		req.Header = maps.Clone(sp.headers)
	}
	sp.loggers.Info("Connecting to change stream")

	initialRetryDelay := sp.cfg.InitialReconnectDelay
	if initialRetryDelay <= 0 {
		initialRetryDelay = defaultStreamRetryDelay
	}

	errorHandler := func(err error) es.StreamErrorHandlerResult {
		if se, ok := err.(es.SubscriptionError); ok {
			errorInfo := interfaces.ChangeSourceErrorInfo{
				Kind:       interfaces.ChangeSourceErrorKindErrorResponse,
				StatusCode: se.Code,
				Time:       time.Now(),
			}
			recoverable := internal.CheckIfErrorIsRecoverableAndLog(
				sp.loggers,
				internal.HTTPErrorDescription(se.Code),
				streamingErrorContext,
				se.Code,
				streamingWillRetryMessage,
			)
			if recoverable {
				sp.sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted, errorInfo)
				return es.StreamErrorHandlerResult{CloseNow: false}
			}
			sp.sink.UpdateStatus(interfaces.ChangeSourceStateOff, errorInfo)
			sp.readyOnce.Do(func() { close(closeWhenReady) })
			return es.StreamErrorHandlerResult{CloseNow: true}
		}

		internal.CheckIfErrorIsRecoverableAndLog(
			sp.loggers,
			err.Error(),
			streamingErrorContext,
			0,
			streamingWillRetryMessage,
		)
		sp.sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted, interfaces.ChangeSourceErrorInfo{
			Kind:    interfaces.ChangeSourceErrorKindNetworkError,
			Message: err.Error(),
			Time:    time.Now(),
		})
		return es.StreamErrorHandlerResult{CloseNow: false}
	}

	stream, err := es.SubscribeWithRequestAndOptions(req,
		es.StreamOptionHTTPClient(sp.client),
		es.StreamOptionReadTimeout(streamReadTimeout),
		es.StreamOptionInitialRetry(initialRetryDelay),
		es.StreamOptionUseBackoff(streamMaxRetryDelay),
		es.StreamOptionUseJitter(streamJitterRatio),
		es.StreamOptionRetryResetInterval(streamRetryResetInterval),
		es.StreamOptionErrorHandler(errorHandler),
		es.StreamOptionCanRetryFirstConnection(-1),
		es.StreamOptionLogger(sp.loggers.ForLevel(ldlog.Info)),
	)

	if err != nil {
		sp.readyOnce.Do(func() { close(closeWhenReady) })
		return
	}

	sp.consumeStream(stream, closeWhenReady)
}

func (sp *StreamProcessor) setInitializedAndNotifyClient(closeWhenReady chan<- struct{}) {
	wasAlreadyInitialized := sp.isInitialized.GetAndSet(true)
	if !wasAlreadyInitialized {
		sp.loggers.Info("Streaming change subscription is active")
	}
	sp.readyOnce.Do(func() {
		close(closeWhenReady)
	})
}

//nolint:revive // no doc comment for standard method
func (sp *StreamProcessor) Close() error {
	sp.closeOnce.Do(func() {
		close(sp.halt)
		sp.sink.UpdateStatus(interfaces.ChangeSourceStateOff, interfaces.ChangeSourceErrorInfo{})
	})
	return nil
}

// GetBaseURI returns the configured base URI, for testing.
func (sp *StreamProcessor) GetBaseURI() string {
	return sp.cfg.URI
}

// GetInitialReconnectDelay returns the configured reconnect delay, for testing.
func (sp *StreamProcessor) GetInitialReconnectDelay() time.Duration {
	return sp.cfg.InitialReconnectDelay
}

// GetSchema returns the configured schema filter, for testing.
func (sp *StreamProcessor) GetSchema() string {
	return sp.cfg.Schema
}

// GetTable returns the configured table filter, for testing.
func (sp *StreamProcessor) GetTable() string {
	return sp.cfg.Table
}
