package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/jonwraymond/studentops/apiclient"
	"github.com/jonwraymond/studentops/auth"
	"github.com/jonwraymond/studentops/observe"
)

// Defaults.
const (
	DefaultAPIURL         = "http://api:5000"
	DefaultUsername       = "toto"
	DefaultPassword       = "python"
	DefaultVersion        = "2.0.0"
	DefaultTitle          = "POZOS Student Management System"
	DefaultPort           = 8080
	DefaultRequestTimeout = 10 * time.Second
	DefaultProbeTimeout   = 5 * time.Second
	DefaultLogLevel       = "info"
	ServiceName           = "studentops"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete studentops configuration. It is built once by
// Load and passed to the components that need it.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig describes the front-end process.
type AppConfig struct {
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
	Port    int    `mapstructure:"port"`
	Debug   bool   `mapstructure:"debug"`
}

// APIConfig locates and authenticates against the student API.
type APIConfig struct {
	URL          string        `mapstructure:"url"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	MaxInFlight  int           `mapstructure:"max_in_flight"`
}

// AuthConfig protects the front-end's JSON routes. Empty disables it.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TelemetryConfig selects OpenTelemetry exporters.
type TelemetryConfig struct {
	TracesExporter  string  `mapstructure:"traces_exporter"`
	MetricsExporter string  `mapstructure:"metrics_exporter"`
	SamplePct       float64 `mapstructure:"sample_pct"`
}

// SecretsConfig configures secret reference resolution.
type SecretsConfig struct {
	// Dir is prepended to relative secretref:file references.
	Dir string `mapstructure:"dir"`
}

// Validate reports every invalid field joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.API.URL == "" {
		errs = append(errs, errors.New("api.url is required"))
	} else if u, err := url.Parse(c.API.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.url %q must be an absolute http(s) URL", c.API.URL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}
	if c.API.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("api.probe_timeout must be positive, got %s", c.API.ProbeTimeout))
	}
	if c.API.MaxInFlight < 0 {
		errs = append(errs, fmt.Errorf("api.max_in_flight must not be negative, got %d", c.API.MaxInFlight))
	}
	if c.App.Port < 1 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port %d out of range", c.App.Port))
	}
	if !slices.Contains(observe.ValidLogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if c.Auth.Username != "" && c.Auth.Password == "" {
		errs = append(errs, errors.New("auth.password is required when auth.username is set"))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// LogLevel returns the effective log level; debug mode forces "debug".
func (c *Config) LogLevel() string {
	if c.App.Debug {
		return "debug"
	}
	return c.Log.Level
}

// Credentials returns the student API credentials, or nil when no
// username is configured.
func (c *Config) Credentials() *apiclient.Credentials {
	if c.API.Username == "" {
		return nil
	}
	return &apiclient.Credentials{Username: c.API.Username, Password: c.API.Password}
}

// ClientConfig returns the API client settings.
func (c *Config) ClientConfig() apiclient.ClientConfig {
	return apiclient.ClientConfig{
		BaseURL:     c.API.URL,
		Credentials: c.Credentials(),
		Timeout:     c.API.Timeout,
	}
}

// ObserveConfig returns the telemetry settings. An exporter named "none"
// disables its signal.
func (c *Config) ObserveConfig() observe.Config {
	return observe.Config{
		ServiceName: ServiceName,
		Version:     c.App.Version,
		Tracing: observe.TracingConfig{
			Enabled:   c.Telemetry.TracesExporter != "" && c.Telemetry.TracesExporter != "none",
			Exporter:  c.Telemetry.TracesExporter,
			SamplePct: c.Telemetry.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.Telemetry.MetricsExporter != "" && c.Telemetry.MetricsExporter != "none",
			Exporter: c.Telemetry.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel(),
		},
	}
}

// AuthSettings returns the inbound authentication settings.
func (c *Config) AuthSettings() auth.Config {
	return auth.Config{
		JWTSecret:   c.Auth.JWTSecret,
		JWTIssuer:   c.Auth.JWTIssuer,
		JWTAudience: c.Auth.JWTAudience,
		Username:    c.Auth.Username,
		Password:    c.Auth.Password,
	}
}
