package http

import "time"

const (
	// DefaultTimeout is the default overall timeout for a single HTTP call.
	DefaultTimeout = 20 * time.Second

	// DefaultConnectTimeout is the default timeout for establishing a connection,
	// including the proxy tunnel handshake.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultRetryAttempts is the default maximum number of attempts per request.
	DefaultRetryAttempts = 3

	// DefaultRetryBackoff is the default base backoff duration between attempts.
	DefaultRetryBackoff = 1 * time.Second

	// DefaultUserAgent is the default User-Agent string used for HTTP requests.
	// It mimics a common browser User-Agent to avoid being blocked by servers.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:140.0) Gecko/20100101 Firefox/140.0"
)
