package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
)

// maxDrainBytes limits how much of a discarded response body is read
// before closing it so the connection can be reused.
const maxDrainBytes = 64 * 1024

// RetryTransport is a custom http.RoundTripper that retries transient failures.
// A request is retried when the connection fails or the server responds with
// a 5xx status. Responses below 500 are returned immediately, client errors
// included. The final 5xx response is returned as-is so the caller can inspect
// the status; only connection-level failures surface as errors.
type RetryTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxAttempts is the total number of attempts per request.
	maxAttempts int
	// baseBackoff is the backoff before the first retry; it doubles on each subsequent retry.
	baseBackoff time.Duration
	// sleep waits between attempts. Overridable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryTransport creates and returns a new instance of RetryTransport.
// If maxAttempts or baseBackoff are not positive, they default to
// DefaultRetryAttempts and DefaultRetryBackoff.
func NewRetryTransport(next http.RoundTripper, maxAttempts int, baseBackoff time.Duration) http.RoundTripper {
	if maxAttempts <= 0 {
		maxAttempts = DefaultRetryAttempts
	}

	if baseBackoff <= 0 {
		baseBackoff = DefaultRetryBackoff
	}

	return &RetryTransport{
		next:        next,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		sleep:       sleepWithContext,
	}
}

// RoundTrip executes a single logical HTTP transaction with bounded retries
// and exponential backoff. It implements the http.RoundTripper interface.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx := req.Context()

	// A consumed body can only be replayed through GetBody.
	canRetry := req.Body == nil || req.GetBody != nil

	var lastErr error

	for attempt := 0; attempt < t.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := t.baseBackoff << (attempt - 1)

			logger.Debugf(ctx, "Retrying %s %s in %s (attempt %d of %d)",
				req.Method, req.URL.String(), backoff, attempt+1, t.maxAttempts)

			if err := t.sleep(ctx, backoff); err != nil {
				return nil, err
			}

			if err := rewindRequestBody(req); err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
		}

		response, err := t.next.RoundTrip(req)
		if err != nil {
			lastErr = err

			if !canRetry {
				return nil, err
			}

			continue
		}

		// Client errors are deliberate responses, not transient failures.
		if response.StatusCode < http.StatusInternalServerError {
			return response, nil
		}

		// The last 5xx response is handed to the caller unchanged.
		if attempt == t.maxAttempts-1 || !canRetry {
			return response, nil
		}

		lastErr = fmt.Errorf("%w: %d", ErrServerError, response.StatusCode)

		drainAndClose(response.Body)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", t.maxAttempts, lastErr)
}

// rewindRequestBody restores the request body from GetBody before a retry.
func rewindRequestBody(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}

	body, err := req.GetBody()
	if err != nil {
		return err
	}

	req.Body = body

	return nil
}

// drainAndClose reads a bounded amount of the body and closes it
// so the underlying connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))

	body.Close() //nolint:errcheck,gosec // Error on close is not critical here.
}

// sleepWithContext blocks for the given duration or until the context is done.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
