package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider supplies the User-Agent string for outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns the User-Agent string to send.
	GetUserAgent() string
}

// SimpleUserAgentProvider returns a fixed User-Agent string chosen at
// construction time. It is the only provider the application needs: the
// whole run impersonates a single browser.
type SimpleUserAgentProvider struct {
	userAgent string
}

// NewSimpleUserAgentProvider creates a provider returning the given string.
func NewSimpleUserAgentProvider(userAgent string) UserAgentProvider {
	return &SimpleUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns the fixed User-Agent string.
func (p *SimpleUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
