// Package bpcomponents provides the standard implementations and configuration builders for the
// pluggable components of the SDK.
//
// Some configuration builders in this package are returned by functions whose names match a field
// in bpclient.Config, such as HTTPConfiguration() for Config.HTTP. Storing the builder in the
// corresponding field, after changing any desired settings, causes the SDK to use the
// configuration it describes.
package bpcomponents
