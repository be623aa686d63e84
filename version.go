package bpclient

import "github.com/baseplane/go-client-sdk/internal"

// Version is the SDK version string.
const Version = internal.SDKVersion
