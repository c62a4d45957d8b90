package config

import (
	"net/url"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/queuedesk/queuedesk-go/internal/errors"
)

// Environment identifies which QueueDesk deployment the client talks to.
//
// The environment is resolved once at startup and passed explicitly to
// whatever needs it; nothing reads process environment variables at call
// time.
type Environment string

const (
	// EnvLocal is the local development environment. No auth headers are
	// attached to requests in local.
	EnvLocal Environment = "local"
	// EnvStaging is the shared pre-production environment.
	EnvStaging Environment = "staging"
	// EnvProduction is the production environment. Plaintext endpoints are
	// rejected at construction time.
	EnvProduction Environment = "production"
)

// ParseEnvironment normalizes an environment name.
// "prod" and "production" map to EnvProduction, "local" and "dev" to
// EnvLocal, anything else to EnvStaging.
func ParseEnvironment(s string) Environment {
	switch s {
	case "local", "dev", "development":
		return EnvLocal
	case "prod", "production":
		return EnvProduction
	default:
		return EnvStaging
	}
}

// IsLocal reports whether this is the local development environment
func (e Environment) IsLocal() bool {
	return e == EnvLocal
}

// IsProduction reports whether this is the production environment
func (e Environment) IsProduction() bool {
	return e == EnvProduction
}

// Endpoints holds the base URLs for the three backend surfaces plus the
// identity provider.
type Endpoints struct {
	// Command is the write-side (command) API
	Command string `yaml:"command" validate:"required,url"`
	// Events is the append-only event store API (best-effort history)
	Events string `yaml:"events" validate:"required,url"`
	// Query is the read-model (query) API
	Query string `yaml:"query" validate:"required,url"`
	// Identity is the identity provider (login, refresh, sign-out)
	Identity string `yaml:"identity" validate:"required,url"`
}

// Config is the complete client configuration
type Config struct {
	Environment Environment `yaml:"environment"`
	Endpoints   Endpoints   `yaml:"endpoints"`

	// RequestTimeout applies to every request on every transport client
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultRequestTimeout is the fixed per-request timeout for all clients
const DefaultRequestTimeout = 30 * time.Second

// UnmarshalYAML implements yaml.Unmarshaler so request_timeout accepts Go
// duration strings ("15s", "1m30s") and the environment name is normalized
// on load.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Environment    string    `yaml:"environment"`
		Endpoints      Endpoints `yaml:"endpoints"`
		RequestTimeout string    `yaml:"request_timeout"`
		LogLevel       string    `yaml:"log_level"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.Environment != "" {
		c.Environment = ParseEnvironment(raw.Environment)
	}
	c.Endpoints = raw.Endpoints
	if raw.LogLevel != "" {
		c.LogLevel = raw.LogLevel
	}
	if raw.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfigUnmarshal, "invalid request_timeout", err)
		}
		c.RequestTimeout = d
	}

	return nil
}

// Default returns a configuration with defaults applied
func Default() *Config {
	return &Config{
		Environment:    EnvStaging,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file, applies environment variable overrides,
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigUnmarshal, "failed to parse config file", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides lets QUEUEDESK_* variables override file values.
// This runs once during Load, never at request time.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("QUEUEDESK_ENV"); v != "" {
		c.Environment = ParseEnvironment(v)
	}
	if v := os.Getenv("QUEUEDESK_COMMAND_URL"); v != "" {
		c.Endpoints.Command = v
	}
	if v := os.Getenv("QUEUEDESK_EVENTS_URL"); v != "" {
		c.Endpoints.Events = v
	}
	if v := os.Getenv("QUEUEDESK_QUERY_URL"); v != "" {
		c.Endpoints.Query = v
	}
	if v := os.Getenv("QUEUEDESK_IDENTITY_URL"); v != "" {
		c.Endpoints.Identity = v
	}
	if v := os.Getenv("QUEUEDESK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks structural validity and the production transport guard
func (c *Config) Validate() error {
	if c.Environment == "" {
		c.Environment = EnvStaging
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid configuration", err)
	}

	for name, endpoint := range map[string]string{
		"command":  c.Endpoints.Command,
		"events":   c.Endpoints.Events,
		"query":    c.Endpoints.Query,
		"identity": c.Endpoints.Identity,
	} {
		if err := CheckTransport(c.Environment, name, endpoint); err != nil {
			return err
		}
	}

	return nil
}

// CheckTransport rejects plaintext endpoints in production.
// localhost is exempt so production builds remain debuggable against a
// local backend.
func CheckTransport(env Environment, name, endpoint string) error {
	if !env.IsProduction() {
		return nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid endpoint URL", err).
			WithContext("endpoint", name)
	}

	if u.Scheme == "http" && u.Hostname() != "localhost" && u.Hostname() != "127.0.0.1" {
		return errors.NewInsecureEndpointError(name, endpoint)
	}

	return nil
}
