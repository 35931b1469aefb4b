package adopte

import "strings"

const (
	// refreshTokenMarker precedes the token value in the login response HTML.
	refreshTokenMarker = `apiRefreshToken = "`
	// refreshTokenDelimiter terminates the token value.
	refreshTokenDelimiter = `",`
)

// ExtractRefreshToken scans a login response body for the embedded refresh
// token. The token is the text between the marker and the next `",` delimiter.
// It returns ErrRefreshTokenNotFound when the marker or the delimiter is
// absent, or when the value between them is empty.
func ExtractRefreshToken(body string) (string, error) {
	start := strings.Index(body, refreshTokenMarker)
	if start < 0 {
		return "", ErrRefreshTokenNotFound
	}

	rest := body[start+len(refreshTokenMarker):]

	end := strings.Index(rest, refreshTokenDelimiter)
	if end <= 0 {
		return "", ErrRefreshTokenNotFound
	}

	return rest[:end], nil
}
