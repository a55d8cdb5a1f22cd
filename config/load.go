package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonwraymond/studentops/secret"
)

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string][]string{
	"app.title":                  {"APP_TITLE"},
	"app.version":                {"APP_VERSION"},
	"app.port":                   {"PORT"},
	"app.debug":                  {"DEBUG"},
	"api.url":                    {"API_URL"},
	"api.username":               {"API_USERNAME"},
	"api.password":               {"API_PASSWORD"},
	"api.timeout":                {"API_TIMEOUT"},
	"api.probe_timeout":          {"PROBE_TIMEOUT"},
	"api.max_in_flight":          {"API_MAX_IN_FLIGHT"},
	"auth.jwt_secret":            {"FRONTEND_JWT_SECRET"},
	"auth.jwt_issuer":            {"FRONTEND_JWT_ISSUER"},
	"auth.jwt_audience":          {"FRONTEND_JWT_AUDIENCE"},
	"auth.username":              {"FRONTEND_USERNAME"},
	"auth.password":              {"FRONTEND_PASSWORD"},
	"log.level":                  {"LOG_LEVEL"},
	"telemetry.traces_exporter":  {"OTEL_TRACES_EXPORTER"},
	"telemetry.metrics_exporter": {"OTEL_METRICS_EXPORTER"},
	"telemetry.sample_pct":       {"OTEL_TRACES_SAMPLE_PCT"},
	"secrets.dir":                {"SECRETS_DIR"},
}

// Load builds the configuration. path names an optional YAML file; when
// empty, studentops.yaml is looked up in . and ./config and may be absent.
func Load(ctx context.Context, path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("studentops")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", configName(path), err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := resolveSecrets(ctx, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env when present and ENV_FILE when set. Variables
// already in the environment are never overwritten.
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("config: load .env: %w", err)
		}
	}
	if f := os.Getenv("ENV_FILE"); f != "" {
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.title", DefaultTitle)
	v.SetDefault("app.version", DefaultVersion)
	v.SetDefault("app.port", DefaultPort)
	v.SetDefault("app.debug", false)

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.username", DefaultUsername)
	v.SetDefault("api.password", DefaultPassword)
	v.SetDefault("api.timeout", DefaultRequestTimeout)
	v.SetDefault("api.probe_timeout", DefaultProbeTimeout)
	v.SetDefault("api.max_in_flight", 32)

	v.SetDefault("log.level", DefaultLogLevel)

	v.SetDefault("telemetry.traces_exporter", "none")
	v.SetDefault("telemetry.metrics_exporter", "prometheus")
	v.SetDefault("telemetry.sample_pct", 1.0)
}

// resolveSecrets expands ${VAR} and secretref values in credential fields.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	reg := secret.NewRegistry()
	if err := secret.RegisterBuiltins(reg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	resolver, err := secret.NewResolverFromRegistry(reg, true, map[string]map[string]any{
		"file": {"dir": cfg.Secrets.Dir},
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer resolver.Close()

	err = resolver.ResolveAll(ctx, map[string]*string{
		"api.username":    &cfg.API.Username,
		"api.password":    &cfg.API.Password,
		"auth.jwt_secret": &cfg.Auth.JWTSecret,
		"auth.username":   &cfg.Auth.Username,
		"auth.password":   &cfg.Auth.Password,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func configName(path string) string {
	if path == "" {
		return "studentops.yaml"
	}
	return path
}
