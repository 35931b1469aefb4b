package adopte

const (
	// loginURI is the URI path for the login form endpoint on the web application host.
	loginURI = "auth/login"
	// authTokensURI is the URI path for the token exchange endpoint on the API host.
	authTokensURI = "authtokens"
	// boostURI is the URI path for the boost endpoint on the API host.
	boostURI = "boost"
)

const (
	// credentialTypeRefreshToken is the credential type the exchange endpoint
	// expects when the submitted credential is a refresh token.
	credentialTypeRefreshToken = "2"

	// platformHeaderValue identifies the web client to the API.
	platformHeaderValue = "web"

	// acceptHeaderValue mirrors what the web client sends.
	acceptHeaderValue = "application/json, text/plain, */*"
)

// maxResponseBodySize bounds how much of a response body is read into memory.
const maxResponseBodySize = 4 * 1024 * 1024 // 4 MB
