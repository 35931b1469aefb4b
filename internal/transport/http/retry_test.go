package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResult is a single scripted outcome for fakeRoundTripper.
type fakeResult struct {
	status int
	err    error
}

// fakeRoundTripper replays a scripted sequence of responses and errors.
type fakeRoundTripper struct {
	t       *testing.T
	calls   int
	results []fakeResult
}

func (f *fakeRoundTripper) RoundTrip(_ *http.Request) (*http.Response, error) {
	require.Less(f.t, f.calls, len(f.results), "more attempts than scripted results")

	result := f.results[f.calls]
	f.calls++

	if result.err != nil {
		return nil, result.err
	}

	return &http.Response{
		StatusCode: result.status,
		Body:       io.NopCloser(strings.NewReader("response body")),
		Header:     http.Header{},
	}, nil
}

// newRetryTransportForTest builds a RetryTransport with a recording sleep function.
func newRetryTransportForTest(
	t *testing.T,
	results []fakeResult,
	maxAttempts int,
	baseBackoff time.Duration,
) (*RetryTransport, *fakeRoundTripper, *[]time.Duration) {
	t.Helper()

	fake := &fakeRoundTripper{results: results, t: t}

	transport, ok := NewRetryTransport(fake, maxAttempts, baseBackoff).(*RetryTransport)
	require.True(t, ok)

	var sleeps []time.Duration

	transport.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	return transport, fake, &sleeps
}

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com/", http.NoBody)
	require.NoError(t, err)

	return req
}

// TestRetryTransport_ServerErrorsThenSuccess verifies that a run of 5xx
// responses is retried with exponential backoff until a success arrives.
func TestRetryTransport_ServerErrorsThenSuccess(t *testing.T) {
	t.Parallel()

	baseBackoff := 10 * time.Millisecond
	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{status: http.StatusInternalServerError},
		{status: http.StatusBadGateway},
		{status: http.StatusOK},
	}, 3, baseBackoff)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, []time.Duration{baseBackoff, 2 * baseBackoff}, *sleeps)

	resp.Body.Close()
}

// TestRetryTransport_ClientErrorNotRetried verifies that 4xx responses
// are returned immediately without any retries.
func TestRetryTransport_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{status: http.StatusNotFound},
	}, 5, time.Millisecond)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, fake.calls)
	assert.Empty(t, *sleeps)

	resp.Body.Close()
}

// TestRetryTransport_ConnectionErrorsExhausted verifies that the transport
// surfaces an error after exactly maxAttempts connection failures.
func TestRetryTransport_ConnectionErrorsExhausted(t *testing.T) {
	t.Parallel()

	connErr := errors.New("connect: connection refused")
	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{err: connErr},
		{err: connErr},
		{err: connErr},
	}, 3, time.Millisecond)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.Error(t, err)
	require.ErrorIs(t, err, connErr)
	assert.Nil(t, resp)
	assert.Equal(t, 3, fake.calls)
	assert.Len(t, *sleeps, 2)
}

// TestRetryTransport_LastServerErrorReturnedAsIs verifies the asymmetry:
// connection errors propagate as errors, but a final 5xx response is
// returned to the caller unchanged.
func TestRetryTransport_LastServerErrorReturnedAsIs(t *testing.T) {
	t.Parallel()

	baseBackoff := 5 * time.Millisecond
	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{status: http.StatusInternalServerError},
		{status: http.StatusInternalServerError},
		{status: http.StatusInternalServerError},
	}, 3, baseBackoff)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 3, fake.calls)
	assert.Equal(t, []time.Duration{baseBackoff, 2 * baseBackoff}, *sleeps)

	resp.Body.Close()
}

// TestRetryTransport_SuccessFirstAttempt verifies the happy path performs
// a single attempt and no sleeps.
func TestRetryTransport_SuccessFirstAttempt(t *testing.T) {
	t.Parallel()

	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{status: http.StatusOK},
	}, 3, time.Millisecond)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, fake.calls)
	assert.Empty(t, *sleeps)

	resp.Body.Close()
}

// TestRetryTransport_ConnectionErrorThenSuccess verifies recovery from a
// transient connection failure.
func TestRetryTransport_ConnectionErrorThenSuccess(t *testing.T) {
	t.Parallel()

	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{err: errors.New("read: connection reset by peer")},
		{status: http.StatusOK},
	}, 3, time.Millisecond)

	resp, err := transport.RoundTrip(newTestRequest(t))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, fake.calls)
	assert.Len(t, *sleeps, 1)

	resp.Body.Close()
}

// TestRetryTransport_NonRewindableBodyNotRetried verifies that a request
// whose body cannot be replayed is never retried.
func TestRetryTransport_NonRewindableBodyNotRetried(t *testing.T) {
	t.Parallel()

	transport, fake, sleeps := newRetryTransportForTest(t, []fakeResult{
		{status: http.StatusInternalServerError},
	}, 3, time.Millisecond)

	req := newTestRequest(t)
	req.Body = io.NopCloser(strings.NewReader("one-shot body"))
	req.GetBody = nil

	resp, err := transport.RoundTrip(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, fake.calls)
	assert.Empty(t, *sleeps)

	resp.Body.Close()
}

// TestRetryTransport_ContextCancelledDuringBackoff verifies that backoff
// waits are interrupted by context cancellation.
func TestRetryTransport_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	fake := &fakeRoundTripper{
		results: []fakeResult{{status: http.StatusInternalServerError}},
		t:       t,
	}

	transport, ok := NewRetryTransport(fake, 3, time.Minute).(*RetryTransport)
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())

	transport.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com/", http.NoBody)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)

	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
	assert.Equal(t, 1, fake.calls)
}

// TestRetryTransport_NilRequest verifies nil request handling.
func TestRetryTransport_NilRequest(t *testing.T) {
	t.Parallel()

	transport := NewRetryTransport(&fakeRoundTripper{t: t}, 3, time.Millisecond)

	resp, err := transport.RoundTrip(nil)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestNewRetryTransport_Defaults verifies defaulting of invalid settings.
func TestNewRetryTransport_Defaults(t *testing.T) {
	t.Parallel()

	transport, ok := NewRetryTransport(&fakeRoundTripper{t: t}, 0, 0).(*RetryTransport)
	require.True(t, ok)

	assert.Equal(t, DefaultRetryAttempts, transport.maxAttempts)
	assert.Equal(t, DefaultRetryBackoff, transport.baseBackoff)
}
