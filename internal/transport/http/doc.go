// Package http provides custom HTTP transport utilities, including bounded
// retry with exponential backoff, request/response logging,
// and User-Agent header injection.
// The decorators compose into the send path of the run's single HTTP client.
package http
