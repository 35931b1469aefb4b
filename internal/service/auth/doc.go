// Package auth orchestrates a single authentication run against Adopte.
//
// A run obtains a refresh token from the login page, either through a real
// browser (go-rod) or a direct login POST, exchanges it for a bearer auth
// token, optionally calls the boost endpoint, and assembles one immutable
// run result record.
package auth
