// Package subsystems contains interfaces for implementation components of the SDK.
//
// Most applications will not need to refer to these types. You will use them if you are creating
// a plug-in component, such as a custom change source, or if you use advanced SDK features.
package subsystems
