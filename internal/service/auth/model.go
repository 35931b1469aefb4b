package auth

// RunResult is the single output record of an authentication run.
// It is assembled once at the end of the run and never mutated afterwards.
type RunResult struct {
	// RunID uniquely identifies the run.
	RunID string `json:"runId" yaml:"runId"`
	// Success reports whether every required step completed.
	Success bool `json:"success" yaml:"success"`
	// APIRefreshToken is the short-lived token captured from the login response.
	APIRefreshToken string `json:"apiRefreshToken" yaml:"apiRefreshToken"`
	// AuthToken is the bearer identifier returned by the exchange endpoint.
	AuthToken string `json:"authToken" yaml:"authToken"`
	// AuthTokensStatus is the HTTP status of the token exchange call.
	AuthTokensStatus int `json:"authtokensStatus" yaml:"authtokensStatus"`
	// BoostStatus is the HTTP status of the optional boost call, when it was made.
	BoostStatus int `json:"boostStatus,omitempty" yaml:"boostStatus,omitempty"`
	// BoostBody is the raw body of the optional boost call, when it was made.
	BoostBody string `json:"boostBody,omitempty" yaml:"boostBody,omitempty"`
}
