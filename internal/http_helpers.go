package internal

import (
	"fmt"
	"strings"

	"github.com/baseplane/go-client-sdk/interfaces"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// IsHTTPErrorRecoverable tests whether an HTTP error status represents a condition that might
// resolve on its own if we retry, or at least should not make us permanently stop sending
// requests.
func IsHTTPErrorRecoverable(statusCode int) bool {
	if statusCode >= 400 && statusCode < 500 {
		switch statusCode {
		case 400: // bad request
			return true
		case 408: // request timeout
			return true
		case 429: // too many requests
			return true
		default:
			return false // all other 4xx errors are unrecoverable
		}
	}
	return true
}

// HTTPErrorDescription returns a human-readable description of an HTTP error status.
func HTTPErrorDescription(statusCode int) string {
	message := ""
	if statusCode == 401 || statusCode == 403 {
		message = " (invalid API key)"
	}
	return fmt.Sprintf("HTTP error %d%s", statusCode, message)
}

// CheckIfErrorIsRecoverableAndLog logs an HTTP error or network error at the appropriate level
// and determines whether it is recoverable (as defined by IsHTTPErrorRecoverable).
func CheckIfErrorIsRecoverableAndLog(
	loggers ldlog.Loggers,
	errorDesc, errorContext string,
	statusCode int,
	recoverableMessage string,
) bool {
	if statusCode > 0 && !IsHTTPErrorRecoverable(statusCode) {
		loggers.Errorf("Error %s (giving up permanently): %s", errorContext, errorDesc)
		return false
	}
	loggers.Warnf("Error %s (%s): %s", errorContext, recoverableMessage, errorDesc)
	return true
}

// NewAPIError builds an APIError from an error response, parsing the structured fields out of
// the service's JSON error body if there is one. A non-JSON body is used verbatim as the message.
func NewAPIError(statusCode int, body []byte) *interfaces.APIError {
	e := &interfaces.APIError{StatusCode: statusCode}
	if len(body) == 0 {
		return e
	}
	r := jreader.NewReader(body)
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "message":
			e.Message = r.String()
		case "code":
			e.Code = r.String()
		case "details":
			e.Details = r.String()
		case "hint":
			e.Hint = r.String()
		}
	}
	if r.Error() != nil {
		// The service does not guarantee a JSON body for every error status.
		e.Message = strings.TrimSpace(string(body))
		e.Code, e.Details, e.Hint = "", "", ""
	}
	return e
}
