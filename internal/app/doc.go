// Package app provides the main application logic for the authentication run.
// It initializes the necessary components, such as the Adopte client, login
// strategy, and result writer, and orchestrates the run from login to report.
package app
