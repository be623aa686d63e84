package bpfilewatch

import (
	"os"
	"testing"
	"time"

	"github.com/baseplane/go-client-sdk/bpfiledata"
	"github.com/baseplane/go-client-sdk/interfaces"
	"github.com/baseplane/go-client-sdk/internal/sharedtest"
	"github.com/baseplane/go-client-sdk/subsystems"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSink struct {
	events chan interfaces.ChangeEvent
}

func newCapturingSink() *capturingSink {
	return &capturingSink{events: make(chan interfaces.ChangeEvent, 100)}
}

func (c *capturingSink) Record(event interfaces.ChangeEvent) {
	c.events <- event
}

func (c *capturingSink) UpdateStatus(interfaces.ChangeSourceState, interfaces.ChangeSourceErrorInfo) {
}

func (c *capturingSink) requireEventMatching(
	t *testing.T,
	timeout time.Duration,
	test func(interfaces.ChangeEvent) bool,
) interfaces.ChangeEvent {
	deadline := time.After(timeout)
	for {
		select {
		case event := <-c.events:
			if test(event) {
				return event
			}
		case <-deadline:
			require.FailNow(t, "did not see expected change event")
			return interfaces.ChangeEvent{}
		}
	}
}

func makeTempFile(t *testing.T, initialText string) string {
	f, err := os.CreateTemp("", "file-watch-test")
	require.NoError(t, err)
	_, _ = f.WriteString(initialText)
	require.NoError(t, f.Close())
	return f.Name()
}

func replaceFileContents(t *testing.T, filename string, text string) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	require.NoError(t, err)
	_, _ = f.WriteString(text)
	require.NoError(t, f.Sync())
	_ = f.Close()
}

func makeWatchedSource(t *testing.T, sink subsystems.ChangeSink, filename string) subsystems.ChangeSource {
	context := sharedtest.NewSimpleTestContext(sharedtest.TestAPIKey)
	context.ChangeSink = sink
	source, err := bpfiledata.ChangeSource().
		FilePaths(filename).
		Reloader(WatchFiles).
		Build(context)
	require.NoError(t, err)
	return source
}

func TestWatchedFileDeliversChangesAfterRewrite(t *testing.T) {
	filename := makeTempFile(t, `{"tables": {"orders": [{"id": 1, "status": "open"}]}}`)
	defer os.Remove(filename)

	sink := newCapturingSink()
	source := makeWatchedSource(t, sink, filename)
	defer source.Close()

	closeWhenReady := make(chan struct{})
	source.Start(closeWhenReady)
	<-closeWhenReady
	assert.True(t, source.IsInitialized())

	sink.requireEventMatching(t, time.Second, func(event interfaces.ChangeEvent) bool {
		return event.Action == interfaces.ChangeActionInsert &&
			event.Record.GetByKey("id").IntValue() == 1
	})

	replaceFileContents(t, filename, `{"tables": {"orders": [{"id": 1, "status": "shipped"}]}}`)

	event := sink.requireEventMatching(t, time.Second*2, func(event interfaces.ChangeEvent) bool {
		return event.Action == interfaces.ChangeActionUpdate
	})
	assert.Equal(t, "shipped", event.Record.GetByKey("status").StringValue())
	assert.Equal(t, "open", event.OldRecord.GetByKey("status").StringValue())

	replaceFileContents(t, filename, `{"tables": {"orders": []}}`)

	event = sink.requireEventMatching(t, time.Second*2, func(event interfaces.ChangeEvent) bool {
		return event.Action == interfaces.ChangeActionDelete
	})
	assert.Equal(t, 1, event.OldRecord.GetByKey("id").IntValue())
}

// File need not exist when the source is started
func TestWatchedFileMayBeCreatedAfterStart(t *testing.T) {
	filename := makeTempFile(t, "")
	require.NoError(t, os.Remove(filename))
	defer os.Remove(filename)

	sink := newCapturingSink()
	source := makeWatchedSource(t, sink, filename)
	defer source.Close()

	closeWhenReady := make(chan struct{})
	source.Start(closeWhenReady)

	time.Sleep(time.Second)
	replaceFileContents(t, filename, `{"tables": {"orders": [{"id": 1}]}}`)

	select {
	case <-closeWhenReady:
	case <-time.After(time.Second * 3):
		require.FailNow(t, "timed out waiting for the source to become ready")
	}
	assert.True(t, source.IsInitialized())

	sink.requireEventMatching(t, time.Second, func(event interfaces.ChangeEvent) bool {
		return event.Action == interfaces.ChangeActionInsert
	})
}
