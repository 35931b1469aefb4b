package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/config"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
	"github.com/yfe404/actor-adopte-get-auth-token/internal/proxy"
)

const (
	// browserSlowMotionDelay is the delay between browser actions for visibility during debugging.
	browserSlowMotionDelay = 200 * time.Millisecond

	// navigationTimeout bounds the initial page load.
	// The residential proxy can be slow, so this is generous.
	navigationTimeout = 60 * time.Second

	// elementWaitTimeout bounds the wait for login form elements to appear.
	elementWaitTimeout = 20 * time.Second

	// loginButtonSelector is the CSS selector for the button that reveals the login form.
	loginButtonSelector = "#btn-display-login"

	// emailInputSelector is the CSS selector for the email field of the login form.
	emailInputSelector = "#mail"

	// passwordInputSelector is the CSS selector for the password field of the login form.
	passwordInputSelector = "#password"

	// refreshTokenReadyJS is the predicate polled until the page script
	// publishes the refresh token on the window object.
	refreshTokenReadyJS = `() => typeof window.apiRefreshToken === "string" && window.apiRefreshToken.length > 0`

	// refreshTokenReadJS reads the published refresh token.
	refreshTokenReadJS = `() => window.apiRefreshToken`

	// browserCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	browserCleanupDelay = 500 * time.Millisecond
)

var (
	// ErrNavigationFailed is returned when the login page cannot be loaded.
	ErrNavigationFailed = errors.New("navigation to login page failed")

	// ErrRefreshTokenTimeout is returned when the refresh token never appears after login.
	ErrRefreshTokenTimeout = errors.New("timed out waiting for refresh token")
)

// BrowserTokenSource obtains the refresh token by driving a real browser
// through the proxy tunnel: it submits the login form and reads the token
// the page script publishes on the window object.
type BrowserTokenSource struct {
	cfg     *config.Config
	browser *rod.Browser
	page    *rod.Page
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string
}

// NewBrowserTokenSource creates the browser login strategy.
func NewBrowserTokenSource(cfg *config.Config) *BrowserTokenSource {
	return &BrowserTokenSource{
		cfg: cfg,
	}
}

// ObtainRefreshToken launches the browser, performs the login, and waits for
// the page to publish the refresh token. The browser and its temporary
// profile are released regardless of outcome.
func (s *BrowserTokenSource) ObtainRefreshToken(ctx context.Context) (string, error) {
	logger.Info(ctx, "Starting browser-based login")

	if err := s.initBrowser(ctx); err != nil {
		return "", fmt.Errorf("failed to initialize browser: %w", err)
	}

	defer s.cleanup(ctx)

	if err := s.openLoginForm(ctx); err != nil {
		return "", err
	}

	if err := s.submitCredentials(ctx); err != nil {
		return "", err
	}

	token, err := s.waitForRefreshToken(ctx)
	if err != nil {
		return "", err
	}

	logger.Info(ctx, "Refresh token captured from browser")

	return token, nil
}

// initBrowser launches Chrome/Chromium and opens a stealth page.
func (s *BrowserTokenSource) initBrowser(ctx context.Context) error {
	logger.Debug(ctx, "Initializing browser")

	// A fresh temporary profile avoids session persistence between runs
	// and keeps the browser fingerprint clean.
	tempDir, err := os.MkdirTemp("", "adopte-auth-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary user data directory: %w", err)
	}

	s.tempDir = tempDir

	browserLauncher := launcher.New().
		Headless(s.cfg.Headless).
		UserDataDir(tempDir).
		Set("disable-gpu")

	// Use system Chrome when available, otherwise a Chromium download.
	if chromePath, exists := launcher.LookPath(); exists {
		logger.Debugf(ctx, "Using system Chrome installation at: %s", chromePath)

		browserLauncher = browserLauncher.Bin(chromePath)
	}

	if s.cfg.IsProxyEnabled() {
		endpoint := &proxy.Endpoint{
			Hostname: s.cfg.Proxy.Hostname,
			Port:     s.cfg.Proxy.Port,
		}

		logger.Debugf(ctx, "Routing browser traffic through proxy %s", endpoint.HostPort())

		browserLauncher = browserLauncher.Proxy(endpoint.HostPort())
	}

	controlURL, err := browserLauncher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Debugf(ctx, "Browser launched at: %s", controlURL)

	browserInstance := rod.New().ControlURL(controlURL)

	if logger.IsDebugLevel() {
		browserInstance = browserInstance.
			Trace(true).
			SlowMotion(browserSlowMotionDelay)
	}

	if err = browserInstance.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	s.browser = browserInstance

	// The launcher only knows the proxy address; credentials are answered
	// through the CDP auth challenge.
	if s.cfg.IsProxyEnabled() && s.cfg.Proxy.Username != "" {
		go func() {
			_ = s.browser.HandleAuth(s.cfg.Proxy.Username, s.cfg.Proxy.Password)()
		}()
	}

	page, err := stealth.Page(s.browser)
	if err != nil {
		return fmt.Errorf("failed to create stealth page: %w", err)
	}

	s.page = page

	logger.Debug(ctx, "Browser initialized successfully with stealth mode")

	return nil
}

// openLoginForm navigates to the application and reveals the login form.
func (s *BrowserTokenSource) openLoginForm(ctx context.Context) error {
	logger.Debugf(ctx, "Navigating to %s", s.cfg.AppBaseURL)

	if err := s.page.Timeout(navigationTimeout).Navigate(s.cfg.AppBaseURL); err != nil {
		return fmt.Errorf("%w: %w", ErrNavigationFailed, err)
	}

	if err := s.page.Timeout(navigationTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %w", ErrNavigationFailed, err)
	}

	loginButton, err := s.page.Timeout(elementWaitTimeout).Element(loginButtonSelector)
	if err != nil {
		return fmt.Errorf("login button not found: %w", err)
	}

	if err = loginButton.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click login button: %w", err)
	}

	return nil
}

// submitCredentials fills the login form and submits it.
func (s *BrowserTokenSource) submitCredentials(ctx context.Context) error {
	emailInput, err := s.page.Timeout(elementWaitTimeout).Element(emailInputSelector)
	if err != nil {
		return fmt.Errorf("email field not found: %w", err)
	}

	if err = emailInput.Input(s.cfg.Email); err != nil {
		return fmt.Errorf("failed to fill email field: %w", err)
	}

	passwordInput, err := s.page.Timeout(elementWaitTimeout).Element(passwordInputSelector)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}

	if err = passwordInput.Input(s.cfg.Password); err != nil {
		return fmt.Errorf("failed to fill password field: %w", err)
	}

	if err = passwordInput.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	logger.Info(ctx, "Submitted login form, waiting for refresh token...")

	return nil
}

// waitForRefreshToken waits for the page script to publish the refresh token
// and reads it. No string parsing is involved.
func (s *BrowserTokenSource) waitForRefreshToken(_ context.Context) (string, error) {
	err := s.page.Timeout(s.cfg.ParsedLoginWaitTimeout).Wait(rod.Eval(refreshTokenReadyJS))
	if err != nil {
		return "", fmt.Errorf("%w after %v: %w", ErrRefreshTokenTimeout, s.cfg.ParsedLoginWaitTimeout, err)
	}

	eval, err := s.page.Eval(refreshTokenReadJS)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}

	return eval.Value.Str(), nil
}

// cleanup closes the browser and cleans up resources.
func (s *BrowserTokenSource) cleanup(ctx context.Context) {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			logger.Debugf(ctx, "Browser close error (expected): %v", err)
		}
	}

	if s.tempDir != "" {
		// Give Chrome a moment to release file locks.
		time.Sleep(browserCleanupDelay)

		if err := os.RemoveAll(s.tempDir); err != nil {
			logger.Debugf(ctx, "Could not clean up temp directory %s: %v", s.tempDir, err)
		}
	}
}
