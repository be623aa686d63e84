package bpclient

import (
	"testing"
	"time"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"

	"github.com/stretchr/testify/assert"
)

func TestChangesSinkUpdateStatusTransitionsState(t *testing.T) {
	sub := newChangesSubscription()
	sink := &changesSinkImpl{sub: sub, loggers: ldlog.NewDisabledLoggers()}

	assert.Equal(t, interfaces.ChangeSourceStateInitializing, sub.Status().State)
	originalTime := sub.Status().StateSince

	sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})
	status := sub.Status()
	assert.Equal(t, interfaces.ChangeSourceStateValid, status.State)
	assert.False(t, status.StateSince.Before(originalTime))

	errorInfo := interfaces.ChangeSourceErrorInfo{
		Kind:       interfaces.ChangeSourceErrorKindErrorResponse,
		StatusCode: 503,
		Time:       time.Now(),
	}
	sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted, errorInfo)
	status = sub.Status()
	assert.Equal(t, interfaces.ChangeSourceStateInterrupted, status.State)
	assert.Equal(t, errorInfo, status.LastError)
}

func TestChangesSinkUpdateStatusKeepsLastErrorOnRecovery(t *testing.T) {
	sub := newChangesSubscription()
	sink := &changesSinkImpl{sub: sub, loggers: ldlog.NewDisabledLoggers()}

	errorInfo := interfaces.ChangeSourceErrorInfo{Kind: interfaces.ChangeSourceErrorKindNetworkError}
	sink.UpdateStatus(interfaces.ChangeSourceStateInterrupted, errorInfo)
	sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})

	status := sub.Status()
	assert.Equal(t, interfaces.ChangeSourceStateValid, status.State)
	assert.Equal(t, errorInfo, status.LastError)
}

func TestChangesSinkUpdateStatusWithSameStateDoesNotResetTime(t *testing.T) {
	sub := newChangesSubscription()
	sink := &changesSinkImpl{sub: sub, loggers: ldlog.NewDisabledLoggers()}

	sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})
	since := sub.Status().StateSince

	time.Sleep(time.Millisecond * 5)
	sink.UpdateStatus(interfaces.ChangeSourceStateValid, interfaces.ChangeSourceErrorInfo{})
	assert.Equal(t, since, sub.Status().StateSince)
}

func TestChangesSinkDropsEventsWhenBufferIsFull(t *testing.T) {
	mockLog := ldlogtest.NewMockLog()
	sub := newChangesSubscription()
	sink := &changesSinkImpl{sub: sub, loggers: mockLog.Loggers}

	for i := 0; i < changeEventBufferCapacity+2; i++ {
		sink.Record(interfaces.ChangeEvent{Table: "orders"})
	}

	assert.Len(t, sub.events, changeEventBufferCapacity)
	mockLog.AssertMessageMatch(t, true, ldlog.Warn, "events are being dropped")
	// The warning is only logged once
	assert.Len(t, mockLog.GetOutput(ldlog.Warn), 1)
}

func TestWaitForReadyTimesOut(t *testing.T) {
	sub := newChangesSubscription()
	assert.False(t, sub.WaitForReady(time.Millisecond*10))
}
