package adopte

// LoginResult holds the outcome of the login call.
type LoginResult struct {
	// RefreshToken is the short-lived credential extracted from the login response body.
	RefreshToken string
	// StatusCode is the HTTP status of the login call.
	StatusCode int
}

// AuthTokenResult holds the outcome of the token exchange call.
type AuthTokenResult struct {
	// AuthToken is the bearer identifier returned by the exchange endpoint.
	AuthToken string
	// StatusCode is the HTTP status of the exchange call.
	StatusCode int
}

// BoostResult holds the outcome of the optional boost call.
type BoostResult struct {
	// StatusCode is the HTTP status of the boost call.
	StatusCode int
	// Body is the raw response body.
	Body string
}

// AuthTokensResponse represents the JSON body of the token exchange endpoint.
type AuthTokensResponse struct {
	// Data holds the returned token entries; the first entry carries the auth token.
	Data []*AuthTokenEntry `json:"data"`
}

// AuthTokenEntry is a single entry of the token exchange response.
type AuthTokenEntry struct {
	// ID is the bearer auth token identifier.
	ID string `json:"id"`
}
