// Package sharedtest contains types and functions used by SDK unit tests in multiple packages.
//
// Application code should not use this package. In a future version, it may be moved or removed.
package sharedtest
