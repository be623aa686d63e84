// Package testhelpers contains types and functions that may be useful in testing SDK
// functionality or custom components.
//
// The APIs in this package are supported as part of the SDK.
package testhelpers

// Implementation note: the types and functions in this package are mainly meant for external use,
// but may be useful in SDK tests. Anything that is *only* for SDK tests should be in
// internal/sharedtest instead.
