package auth

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/client/adopte"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
)

// TokenSource produces a refresh token from the configured credentials.
// The browser and HTTP login strategies both implement it.
type TokenSource interface {
	// ObtainRefreshToken logs in and returns the extracted refresh token.
	ObtainRefreshToken(ctx context.Context) (string, error)
}

// Service runs the authentication flow end to end.
type Service interface {
	// Run executes login, token exchange, and the optional boost call,
	// returning the assembled run result.
	Run(ctx context.Context) (*RunResult, error)
}

// ServiceImpl implements the Service interface.
type ServiceImpl struct {
	cfg         *config.Config
	client      adopte.Client
	tokenSource TokenSource
}

// NewService creates a new authentication run service.
func NewService(cfg *config.Config, client adopte.Client, tokenSource TokenSource) *ServiceImpl {
	return &ServiceImpl{
		cfg:         cfg,
		client:      client,
		tokenSource: tokenSource,
	}
}

// NewTokenSource creates the token source matching the configured strategy.
// The configuration is validated beforehand, so an unknown strategy is a
// programming error.
func NewTokenSource(cfg *config.Config, client adopte.Client) (TokenSource, error) {
	switch cfg.Strategy {
	case config.StrategyBrowser:
		return NewBrowserTokenSource(cfg), nil
	case config.StrategyHTTP:
		return NewHTTPTokenSource(cfg, client), nil
	default:
		return nil, fmt.Errorf("%w: got '%s'", config.ErrInvalidStrategy, cfg.Strategy)
	}
}

// Run executes the authentication flow: login, token exchange, optional boost.
// Failures of the required steps abort the run; a boost failure is only logged
// and recorded as absent in the result.
func (s *ServiceImpl) Run(ctx context.Context) (*RunResult, error) {
	logger.Infof(ctx, "Starting authentication run (strategy: %s)", s.cfg.Strategy)

	refreshToken, err := s.tokenSource.ObtainRefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	logger.Info(ctx, "Refresh token captured")

	tokenResult, err := s.client.CreateAuthToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	logger.Info(ctx, "Auth token obtained")

	result := &RunResult{
		RunID:            uuid.NewString(),
		Success:          true,
		APIRefreshToken:  refreshToken,
		AuthToken:        tokenResult.AuthToken,
		AuthTokensStatus: tokenResult.StatusCode,
	}

	// Best effort: the boost call never fails the run.
	boostResult, err := s.client.GetBoost(ctx, tokenResult.AuthToken)
	if err != nil {
		logger.Warnf(ctx, "Boost call failed (ignored): %v", err)

		return result, nil
	}

	logger.Infof(ctx, "Boost call returned status %d", boostResult.StatusCode)

	result.BoostStatus = boostResult.StatusCode
	result.BoostBody = boostResult.Body

	return result, nil
}

// HTTPTokenSource obtains the refresh token with a direct login POST,
// scraping the token out of the response HTML.
type HTTPTokenSource struct {
	cfg    *config.Config
	client adopte.Client
}

// NewHTTPTokenSource creates the HTTP login strategy.
func NewHTTPTokenSource(cfg *config.Config, client adopte.Client) *HTTPTokenSource {
	return &HTTPTokenSource{
		cfg:    cfg,
		client: client,
	}
}

// ObtainRefreshToken submits the login form over HTTP and returns the
// extracted refresh token.
func (s *HTTPTokenSource) ObtainRefreshToken(ctx context.Context) (string, error) {
	result, err := s.client.Login(ctx, s.cfg.Email, s.cfg.Password)
	if err != nil {
		return "", err
	}

	logger.Debugf(ctx, "Login call returned status %d", result.StatusCode)

	return result.RefreshToken, nil
}
