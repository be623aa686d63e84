// Package interfaces contains types that are part of the public API, but are not needed for
// basic use of the SDK.
//
// Types in this package include public configuration types referenced in the SDK's Config
// struct, the error and session types returned by Baseplane services, and the event types
// delivered by the realtime change feed. Component implementations are in the bpcomponents
// package; the plumbing interfaces that custom components implement are in the subsystems
// package.
package interfaces
