// Package adopte provides the HTTP client for the Adopte web application
// and its API. It owns the run's single proxy-bound http.Client, the login
// POST with refresh token extraction, the refresh-token-for-auth-token
// exchange, and the optional boost call.
package adopte
