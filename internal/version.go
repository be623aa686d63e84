package internal

// SDKVersion is the current version string of the SDK, as reported in the User-Agent header.
// This must be updated manually when releasing.
const SDKVersion = "1.0.0"
