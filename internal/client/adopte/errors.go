package adopte

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrRefreshTokenNotFound indicates the refresh token marker is absent from the login response.
	ErrRefreshTokenNotFound = errors.New("refresh token not found in login response")
	// ErrMalformedTokenResponse indicates the token exchange response lacks the expected data[0].id path.
	ErrMalformedTokenResponse = errors.New("malformed token exchange response")
)
