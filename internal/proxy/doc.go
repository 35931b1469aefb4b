// Package proxy models the provisioned residential proxy endpoint and
// builds the tunnel URL shared by the HTTP client and the browser launcher.
package proxy
