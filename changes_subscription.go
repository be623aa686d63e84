package bpclient

import (
	"sync"
	"time"

	"github.com/baseplane/go-client-sdk/interfaces"
)

// Capacity of the event channel for a subscription. If the application does not drain events
// fast enough, further events are dropped with a warning rather than stalling the stream.
const changeEventBufferCapacity = 1000

// ChangesSubscription is an active subscription to row change events, created with
// Client.SubscribeChanges.
//
// Events are delivered on the channel returned by Events. The subscription reconnects
// automatically after recoverable errors; its current condition is available from Status.
type ChangesSubscription struct {
	source      closerStarter
	events      chan interfaces.ChangeEvent
	ready       chan struct{}
	lock        sync.Mutex
	status      interfaces.ChangeSourceStatus
	lostEvents  bool
	closeOnce   sync.Once
}

type closerStarter interface {
	IsInitialized() bool
	Start(closeWhenReady chan<- struct{})
	Close() error
}

func newChangesSubscription() *ChangesSubscription {
	return &ChangesSubscription{
		events: make(chan interfaces.ChangeEvent, changeEventBufferCapacity),
		ready:  make(chan struct{}),
		status: interfaces.ChangeSourceStatus{
			State:      interfaces.ChangeSourceStateInitializing,
			StateSince: time.Now(),
		},
	}
}

// Events returns the channel on which change events are delivered. The channel is never closed;
// use Status to observe the subscription shutting down.
func (s *ChangesSubscription) Events() <-chan interfaces.ChangeEvent {
	return s.events
}

// Status returns the current condition of the subscription.
func (s *ChangesSubscription) Status() interfaces.ChangeSourceStatus {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.status
}

// WaitForReady blocks until the subscription has either been established or permanently failed,
// up to the given timeout. It returns true if the subscription was successfully established.
func (s *ChangesSubscription) WaitForReady(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.ready:
		return s.source.IsInitialized()
	case <-timer.C:
		return false
	}
}

// Close permanently shuts down the subscription. It is safe to call more than once.
func (s *ChangesSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.source.Close()
	})
	return err
}

// changesSinkImpl is the SDK's implementation of subsystems.ChangeSink, delivering events from
// a change source to the subscription that owns it.
type changesSinkImpl struct {
	sub     *ChangesSubscription
	loggers interface {
		Warnf(format string, args ...interface{})
	}
}

func (c *changesSinkImpl) Record(event interfaces.ChangeEvent) {
	select {
	case c.sub.events <- event:
	default:
		c.sub.lock.Lock()
		alreadyWarned := c.sub.lostEvents
		c.sub.lostEvents = true
		c.sub.lock.Unlock()
		if !alreadyWarned {
			c.loggers.Warnf(
				"Change events are being dropped because the application is not consuming them; subsequent drops will not be logged",
			)
		}
	}
}

func (c *changesSinkImpl) UpdateStatus(
	newState interfaces.ChangeSourceState,
	newError interfaces.ChangeSourceErrorInfo,
) {
	c.sub.lock.Lock()
	defer c.sub.lock.Unlock()
	if newError.Kind != "" {
		c.sub.status.LastError = newError
	}
	if newState != c.sub.status.State {
		c.sub.status.State = newState
		c.sub.status.StateSince = time.Now()
	}
}
