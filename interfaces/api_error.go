package interfaces

import "fmt"

// APIError describes an error response from a Baseplane service endpoint.
//
// Any SDK operation that makes a request to the service may return an error of this type if
// the response had a non-2xx status. Use errors.As to inspect the status and the structured
// error fields that the service includes in its JSON error body.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the human-readable error description from the service, if any.
	Message string

	// Code is the service's short error code, such as a PostgreSQL error code for data API
	// requests, if any.
	Code string

	// Details contains any additional detail text from the service.
	Details string

	// Hint contains the service's suggestion for resolving the error, if any.
	Hint string
}

// Error returns a string representation of the error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Message)
}
