package nasa

import (
	"errors"
	"fmt"
)

// ErrorKind classifies adapter failures so callers can pick distinct
// user-facing text per kind. A zero-length result with a nil error is the
// "no results" outcome and is never reported through an Error.
type ErrorKind string

const (
	KindMissingCredential     ErrorKind = "missing_credential"
	KindInvalidParams         ErrorKind = "invalid_params"
	KindInvalidRange          ErrorKind = "invalid_range"
	KindTransport             ErrorKind = "transport"
	KindUpstream              ErrorKind = "upstream"
	KindMalformedEnvelope     ErrorKind = "malformed_envelope"
	KindPartialFailure        ErrorKind = "partial_failure"
	KindResolutionUnavailable ErrorKind = "resolution_unavailable"
)

// Error is the classified failure type shared by all source adapters.
type Error struct {
	Kind       ErrorKind
	Source     string
	Message    string
	StatusCode int    // set for KindTransport
	Succeeded  string // set for KindPartialFailure: the half that worked
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("%s: upstream returned status %d: %s", e.Source, e.StatusCode, e.Message)
	case KindPartialFailure:
		return fmt.Sprintf("%s: partial failure (%s succeeded): %s", e.Source, e.Succeeded, e.Message)
	default:
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Message)
	}
}

// KindOf extracts the classification from err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func newError(kind ErrorKind, source, message string) *Error {
	return &Error{Kind: kind, Source: source, Message: message}
}

func missingCredential(source string) *Error {
	return newError(KindMissingCredential, source, "api key is required")
}

func invalidParams(source, format string, args ...any) *Error {
	return newError(KindInvalidParams, source, fmt.Sprintf(format, args...))
}

func invalidRange(source, format string, args ...any) *Error {
	return newError(KindInvalidRange, source, fmt.Sprintf(format, args...))
}

func transportError(source string, status int, body []byte) *Error {
	e := newError(KindTransport, source, responseSnippet(body))
	e.StatusCode = status
	return e
}

func upstreamError(source, message string) *Error {
	return newError(KindUpstream, source, message)
}

func malformedEnvelope(source, format string, args ...any) *Error {
	return newError(KindMalformedEnvelope, source, fmt.Sprintf(format, args...))
}
