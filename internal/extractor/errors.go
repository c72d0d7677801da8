package extractor

import "errors"

// Failure kinds form a small closed set so callers can tell "not
// available" from "timed out" from "malformed" without parsing text.
var (
	// ErrUnavailable covers private, blocked or missing content.
	ErrUnavailable = errors.New("extractor: content unavailable")
	// ErrTimeout means the service did not answer within the budget.
	ErrTimeout = errors.New("extractor: request timed out")
	// ErrMalformed means the service answered with an unparseable body.
	ErrMalformed = errors.New("extractor: malformed response")
	// ErrNoStream means no stream reference exists for the requested format.
	ErrNoStream = errors.New("extractor: no stream for requested format")
)
