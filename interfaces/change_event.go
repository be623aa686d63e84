package interfaces

import (
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldtime"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// ChangeAction identifies the kind of row change described by a ChangeEvent.
type ChangeAction string

const (
	// ChangeActionInsert indicates that a row was inserted.
	ChangeActionInsert ChangeAction = "insert"

	// ChangeActionUpdate indicates that a row was updated.
	ChangeActionUpdate ChangeAction = "update"

	// ChangeActionDelete indicates that a row was deleted.
	ChangeActionDelete ChangeAction = "delete"
)

// ChangeEvent describes a single row change delivered by the realtime change feed.
//
// Record and OldRecord are dynamically-typed JSON values since the SDK does not know the
// schema of your tables. For a delete, Record is null and OldRecord holds the deleted row
// (or as much of it as the service's replica identity setting exposes).
type ChangeEvent struct {
	// Schema is the database schema containing the changed table.
	Schema string

	// Table is the name of the changed table.
	Table string

	// Action is the kind of change.
	Action ChangeAction

	// Record is the new row content, if any.
	Record ldvalue.Value

	// OldRecord is the previous row content, if any.
	OldRecord ldvalue.Value

	// CommitTime is the time at which the change was committed, in Unix milliseconds.
	CommitTime ldtime.UnixMillisecondTime
}

// ChangeSourceState is a description of the overall condition of a change subscription.
type ChangeSourceState string

const (
	// ChangeSourceStateInitializing means the subscription has not yet received its first
	// event or acknowledgement from the service.
	ChangeSourceStateInitializing ChangeSourceState = "INITIALIZING"

	// ChangeSourceStateValid means the subscription is connected and receiving events.
	ChangeSourceStateValid ChangeSourceState = "VALID"

	// ChangeSourceStateInterrupted means the subscription encountered an error that it will
	// attempt to recover from; events may have been missed while in this state.
	ChangeSourceStateInterrupted ChangeSourceState = "INTERRUPTED"

	// ChangeSourceStateOff means the subscription has been permanently shut down, either
	// because it was closed or because it encountered an unrecoverable error such as an
	// invalid API key.
	ChangeSourceStateOff ChangeSourceState = "OFF"
)

// ChangeSourceErrorKind is a description of the category of an error reported in
// ChangeSourceErrorInfo.
type ChangeSourceErrorKind string

const (
	// ChangeSourceErrorKindUnknown indicates an unexpected error such as an invalid service URI.
	ChangeSourceErrorKindUnknown ChangeSourceErrorKind = "UNKNOWN"

	// ChangeSourceErrorKindNetworkError represents a network-level error such as a connection
	// failure or read timeout.
	ChangeSourceErrorKindNetworkError ChangeSourceErrorKind = "NETWORK_ERROR"

	// ChangeSourceErrorKindErrorResponse means the service returned an HTTP error status.
	ChangeSourceErrorKindErrorResponse ChangeSourceErrorKind = "ERROR_RESPONSE"

	// ChangeSourceErrorKindInvalidData means the service returned an event that could not
	// be parsed.
	ChangeSourceErrorKindInvalidData ChangeSourceErrorKind = "INVALID_DATA"
)

// ChangeSourceErrorInfo describes the last error encountered by a change subscription.
type ChangeSourceErrorInfo struct {
	// Kind is the general category of the error.
	Kind ChangeSourceErrorKind

	// StatusCode is the HTTP status, if Kind is ChangeSourceErrorKindErrorResponse.
	StatusCode int

	// Message is any additional human-readable information relevant to the error.
	Message string

	// Time is the time the error occurred.
	Time time.Time
}

// ChangeSourceStatus combines the state of a change subscription with information about the
// most recent error, if any.
type ChangeSourceStatus struct {
	// State is the basic state of the subscription.
	State ChangeSourceState

	// StateSince is the time that the state most recently changed.
	StateSince time.Time

	// LastError describes the last error encountered, if any. This field does not reset to an
	// empty value when the subscription recovers.
	LastError ChangeSourceErrorInfo
}
