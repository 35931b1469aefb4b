package http

import "errors"

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
	// ErrServerError indicates a 5xx response that was treated as retryable.
	ErrServerError = errors.New("server error")
)
