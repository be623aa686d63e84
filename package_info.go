// Package bpclient is the main package for the Baseplane client SDK.
//
// A Client is created from a ProjectConfig, which identifies a Baseplane project by its public
// base URL and public API key:
//
//	project := bpclient.ProjectConfig{URL: "https://myproject.baseplane.io", Key: "public-anon-key"}
//	client, err := bpclient.MakeClient(project)
//
// The returned handle provides access to the project's REST data API, the realtime change feed,
// and the auth service. Constructing a client performs no network I/O; connections are made
// lazily when the first operation executes.
//
// Advanced configuration is done through the Config struct and the builders in the bpcomponents
// package. Public supporting types are in the interfaces package; the plumbing interfaces for
// custom components are in the subsystems package.
package bpclient
