package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/yfe404/actor-adopte-get-auth-token/internal/logger"
)

// ProxyConfig holds the provisioned proxy tunnel credentials.
// When Hostname is empty, the run connects directly.
type ProxyConfig struct {
	// Hostname is the proxy server hostname.
	Hostname string `mapstructure:"hostname"`
	// Port is the proxy server port.
	Port int `mapstructure:"port"`
	// Username is the proxy username.
	Username string `mapstructure:"username"`
	// Password is the proxy password.
	Password string `mapstructure:"password"`
}

// Config holds all configuration settings.
type Config struct {
	// Email is the account email used for login.
	Email string `mapstructure:"email"`
	// Password is the account password used for login.
	Password string `mapstructure:"password"`
	// Strategy selects how the refresh token is obtained: "http" or "browser".
	Strategy string `mapstructure:"strategy"`
	// Headless controls browser visibility for the browser strategy.
	Headless bool `mapstructure:"headless"`
	// OutputPath is the file the run result record is written to.
	// Empty means standard output.
	OutputPath string `mapstructure:"output_path"`
	// OutputFormat is the encoding of the run result record: "json" or "yaml".
	OutputFormat string `mapstructure:"output_format"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// Proxy holds the proxy tunnel settings.
	Proxy ProxyConfig `mapstructure:"proxy"`
	// RetryAttemptsCount is the maximum number of attempts per HTTP call.
	RetryAttemptsCount int64 `mapstructure:"retry_attempts_count"`
	// RetryBackoff is the base backoff duration before the first retry (e.g., "1s").
	RetryBackoff string `mapstructure:"retry_backoff"`
	// ConnectTimeout bounds connection establishment, proxy tunnel included (e.g., "10s").
	ConnectTimeout string `mapstructure:"connect_timeout"`
	// RequestTimeout bounds a whole HTTP call (e.g., "20s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// LoginWaitTimeout bounds the wait for the refresh token to appear
	// after the login form is submitted (e.g., "45s").
	LoginWaitTimeout string `mapstructure:"login_wait_timeout"`
	// MaxLogLength is the maximum size of HTTP dumps in debug logs (e.g., "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// AppBaseURL is the base URL of the consumer web application (set automatically).
	AppBaseURL string
	// APIBaseURL is the base URL of the consumer API (set automatically).
	APIBaseURL string
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRetryBackoff is the parsed base backoff duration.
	ParsedRetryBackoff time.Duration
	// ParsedConnectTimeout is the parsed connection timeout.
	ParsedConnectTimeout time.Duration
	// ParsedRequestTimeout is the parsed overall request timeout.
	ParsedRequestTimeout time.Duration
	// ParsedLoginWaitTimeout is the parsed refresh token wait timeout.
	ParsedLoginWaitTimeout time.Duration
	// ParsedMaxLogLength is the parsed HTTP dump size limit in bytes.
	ParsedMaxLogLength uint64
}

const (
	// AppBaseURL is the base URL of the Adopte web application.
	AppBaseURL = "https://www.adopte.app"

	// APIBaseURL is the base URL of the Adopte API.
	APIBaseURL = "https://api.adopte.app/api/v4"

	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".adopte-auth.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) for HTTP dumps in debug logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// StrategyHTTP obtains the refresh token with a direct login POST.
	StrategyHTTP = "http"
	// StrategyBrowser obtains the refresh token through a real browser.
	StrategyBrowser = "browser"

	// OutputFormatJSON writes the run result as JSON.
	OutputFormatJSON = "json"
	// OutputFormatYAML writes the run result as YAML.
	OutputFormatYAML = "yaml"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyEmail indicates that the account email is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")
	// ErrEmptyPassword indicates that the account password is missing.
	ErrEmptyPassword = errors.New("password cannot be empty")
	// ErrInvalidStrategy indicates an unknown login strategy.
	ErrInvalidStrategy = errors.New("strategy must be 'http' or 'browser'")
	// ErrInvalidOutputFormat indicates an unknown output format.
	ErrInvalidOutputFormat = errors.New("output format must be 'json' or 'yaml'")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidRetryAttempts indicates that the retry attempts count is invalid.
	ErrInvalidRetryAttempts = errors.New("retry attempts count must be a positive integer")
	// ErrInvalidRetryBackoff indicates that the retry backoff duration is invalid.
	ErrInvalidRetryBackoff = errors.New("retry_backoff must be positive")
	// ErrInvalidConnectTimeout indicates that the connect timeout is invalid.
	ErrInvalidConnectTimeout = errors.New("connect_timeout must be positive")
	// ErrInvalidRequestTimeout indicates that the request timeout is invalid.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrInvalidLoginWaitTimeout indicates that the login wait timeout is invalid.
	ErrInvalidLoginWaitTimeout = errors.New("login_wait_timeout must be positive")
	// ErrProxyHostRequired indicates proxy settings without a hostname.
	ErrProxyHostRequired = errors.New("proxy hostname is required when other proxy settings are set")
	// ErrProxyCredentialsIncomplete indicates a proxy username without a password or vice versa.
	ErrProxyCredentialsIncomplete = errors.New("proxy username and password must be set together")
)

// LoadConfig loads configuration settings from a YAML file.
// The file is optional when its name was not given explicitly:
// all required inputs can come from command-line flags.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	setDefaults()

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("strategy", StrategyHTTP)
	viper.SetDefault("headless", true)
	viper.SetDefault("output_format", OutputFormatJSON)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("retry_attempts_count", 3)
	viper.SetDefault("retry_backoff", "1s")
	viper.SetDefault("connect_timeout", "10s")
	viper.SetDefault("request_timeout", "20s")
	viper.SetDefault("login_wait_timeout", "45s")
	viper.SetDefault("max_log_length", "1MB")
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:funlen,gocognit,cyclop // Validation functions naturally have high complexity and length due to sequential checks.
func ValidateConfig(cfg *Config) error {
	cfg.Email = strings.TrimSpace(cfg.Email)
	if cfg.Email == "" {
		return ErrEmptyEmail
	}

	if strings.TrimSpace(cfg.Password) == "" {
		return ErrEmptyPassword
	}

	if cfg.Strategy != StrategyHTTP && cfg.Strategy != StrategyBrowser {
		return fmt.Errorf("%w: got '%s'", ErrInvalidStrategy, cfg.Strategy)
	}

	if cfg.OutputFormat != OutputFormatJSON && cfg.OutputFormat != OutputFormatYAML {
		return fmt.Errorf("%w: got '%s'", ErrInvalidOutputFormat, cfg.OutputFormat)
	}

	// Base URLs are fixed in production; tests point them at local servers.
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = AppBaseURL
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = APIBaseURL
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	if err := validateProxyConfig(&cfg.Proxy); err != nil {
		return err
	}

	if cfg.RetryAttemptsCount <= 0 {
		return ErrInvalidRetryAttempts
	}

	var err error

	cfg.ParsedRetryBackoff, err = time.ParseDuration(cfg.RetryBackoff)
	if err != nil {
		return fmt.Errorf("failed to parse retry backoff: %w", err)
	}

	if cfg.ParsedRetryBackoff <= 0 {
		return ErrInvalidRetryBackoff
	}

	cfg.ParsedConnectTimeout, err = time.ParseDuration(cfg.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse connect timeout: %w", err)
	}

	if cfg.ParsedConnectTimeout <= 0 {
		return ErrInvalidConnectTimeout
	}

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	cfg.ParsedLoginWaitTimeout, err = time.ParseDuration(cfg.LoginWaitTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse login wait timeout: %w", err)
	}

	if cfg.ParsedLoginWaitTimeout <= 0 {
		return ErrInvalidLoginWaitTimeout
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength != "" && maxLogLength != "0" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	return nil
}

// validateProxyConfig checks proxy settings consistency.
// An entirely empty proxy section disables the tunnel.
func validateProxyConfig(proxyCfg *ProxyConfig) error {
	if proxyCfg.Hostname == "" {
		if proxyCfg.Port != 0 || proxyCfg.Username != "" || proxyCfg.Password != "" {
			return ErrProxyHostRequired
		}

		return nil
	}

	if (proxyCfg.Username == "") != (proxyCfg.Password == "") {
		return ErrProxyCredentialsIncomplete
	}

	return nil
}

// IsProxyEnabled reports whether a proxy tunnel is configured.
func (c *Config) IsProxyEnabled() bool {
	return c.Proxy.Hostname != ""
}
