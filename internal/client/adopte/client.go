package adopte

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/proxy"
	http_transport "github.com/yfe404/actor-adopte-get-auth-token/internal/transport/http"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/utils"
)

// Client defines the interface for interacting with the Adopte web application and API.
type Client interface {
	// Login submits credentials to the login endpoint and extracts the refresh token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// CreateAuthToken exchanges the refresh token for a bearer auth token.
	CreateAuthToken(ctx context.Context, refreshToken string) (*AuthTokenResult, error)
	// GetBoost calls the boost endpoint with the bearer auth token.
	GetBoost(ctx context.Context, authToken string) (*BoostResult, error)
	// Close releases the client's connections at the end of the run.
	Close()
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// appBaseURL is the base URL of the web application host.
	appBaseURL string
	// apiBaseURL is the base URL of the API host.
	apiBaseURL string
	// httpClient is the proxy-bound HTTP client for making requests.
	httpClient *http.Client
}

// NewClient creates and returns a new instance of ClientImpl.
// It builds the run's single HTTP client: all traffic is tunneled through the
// configured proxy, and the send path is decorated with retry, debug logging,
// and User-Agent injection.
func NewClient(cfg *config.Config) (Client, error) {
	// Create a cookie jar so the login session survives across calls.
	cookies, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	appBaseURL, err := url.Parse(cfg.AppBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid app base URL: %w", err)
	}

	apiBaseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	baseTransport, err := newBaseTransport(cfg)
	if err != nil {
		return nil, err
	}

	// Decorator chain: UA injection → retry → per-attempt debug logging → network.
	transport := http_transport.NewUserAgentInjector(
		http_transport.NewRetryTransport(
			http_transport.NewLogTransport(baseTransport, cfg.ParsedMaxLogLength),
			int(cfg.RetryAttemptsCount),
			cfg.ParsedRetryBackoff,
		),
		utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent))

	httpClient := &http.Client{
		Transport: transport,
		Jar:       cookies,
		Timeout:   cfg.ParsedRequestTimeout,
	}

	return &ClientImpl{
		cfg:        cfg,
		appBaseURL: appBaseURL.String(),
		apiBaseURL: apiBaseURL.String(),
		httpClient: httpClient,
	}, nil
}

// newBaseTransport builds the raw network transport,
// routed through the proxy tunnel when one is configured.
func newBaseTransport(cfg *config.Config) (*http.Transport, error) {
	dialer := &net.Dialer{Timeout: cfg.ParsedConnectTimeout}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: cfg.ParsedConnectTimeout,
		ForceAttemptHTTP2:   true,
	}

	if !cfg.IsProxyEnabled() {
		return transport, nil
	}

	endpoint := &proxy.Endpoint{
		Hostname: cfg.Proxy.Hostname,
		Port:     cfg.Proxy.Port,
		Username: cfg.Proxy.Username,
		Password: cfg.Proxy.Password,
	}

	tunnelURL, err := endpoint.URL()
	if err != nil {
		return nil, fmt.Errorf("failed to build proxy tunnel URL: %w", err)
	}

	transport.Proxy = http.ProxyURL(tunnelURL)

	return transport, nil
}

// Login submits credentials to the login endpoint as a form POST and extracts
// the refresh token embedded in the response HTML. A non-2xx status is a hard
// failure before any extraction is attempted.
func (c *ClientImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	form.Set("remember", "true")

	route, err := url.JoinPath(c.appBaseURL, loginURI)
	if err != nil {
		return nil, err
	}

	body, statusCode, err := c.postForm(ctx, route, form)
	if err != nil {
		return nil, err
	}

	if !isSuccessStatus(statusCode) {
		return nil, fmt.Errorf("login: %w: %d", ErrUnexpectedHTTPStatus, statusCode)
	}

	refreshToken, err := ExtractRefreshToken(body)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Refresh token extracted (%d characters)", len(refreshToken))

	return &LoginResult{
		RefreshToken: refreshToken,
		StatusCode:   statusCode,
	}, nil
}

// CreateAuthToken exchanges the refresh token for a bearer auth token.
// The exchange endpoint returns {"data":[{"id":"<token>", ...}, ...]}.
func (c *ClientImpl) CreateAuthToken(ctx context.Context, refreshToken string) (*AuthTokenResult, error) {
	form := url.Values{}
	form.Set("credentials", refreshToken)
	form.Set("type", credentialTypeRefreshToken)

	route, err := url.JoinPath(c.apiBaseURL, authTokensURI)
	if err != nil {
		return nil, err
	}

	body, statusCode, err := c.postForm(ctx, route, form)
	if err != nil {
		return nil, err
	}

	if !isSuccessStatus(statusCode) {
		return &AuthTokenResult{StatusCode: statusCode},
			fmt.Errorf("token exchange: %w: %d", ErrUnexpectedHTTPStatus, statusCode)
	}

	var parsed AuthTokensResponse
	if err = json.Unmarshal([]byte(body), &parsed); err != nil {
		return &AuthTokenResult{StatusCode: statusCode},
			fmt.Errorf("%w: %w", ErrMalformedTokenResponse, err)
	}

	if len(parsed.Data) == 0 || parsed.Data[0] == nil || parsed.Data[0].ID == "" {
		return &AuthTokenResult{StatusCode: statusCode},
			fmt.Errorf("%w: data[0].id is absent", ErrMalformedTokenResponse)
	}

	return &AuthTokenResult{
		AuthToken:  parsed.Data[0].ID,
		StatusCode: statusCode,
	}, nil
}

// GetBoost calls the boost endpoint with the bearer auth token.
// Any received status is recorded rather than treated as an error;
// only transport-level failures are returned.
func (c *ClientImpl) GetBoost(ctx context.Context, authToken string) (*BoostResult, error) {
	route, err := url.JoinPath(c.apiBaseURL, boostURI)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, route, http.NoBody)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Accept", acceptHeaderValue)
	request.Header.Set("X-Platform", platformHeaderValue)
	request.Header.Set("Authorization", "Bearer "+authToken)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBodySize))
	if err != nil {
		return nil, err
	}

	return &BoostResult{
		StatusCode: response.StatusCode,
		Body:       string(body),
	}, nil
}

// Close releases idle connections held by the HTTP client.
func (c *ClientImpl) Close() {
	c.httpClient.CloseIdleConnections()
}

// postForm sends a form-encoded POST and returns the response body and status.
func (c *ClientImpl) postForm(ctx context.Context, route string, form url.Values) (string, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, route, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}

	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", acceptHeaderValue)
	request.Header.Set("X-Platform", platformHeaderValue)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", 0, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBodySize))
	if err != nil {
		return "", response.StatusCode, err
	}

	return string(body), response.StatusCode, nil
}

// isSuccessStatus reports whether the status code is in the 2xx range.
func isSuccessStatus(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}
