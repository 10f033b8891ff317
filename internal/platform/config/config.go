package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names accepted for the scenario model.
const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderOffline = "offline"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `yaml:"addr"`
	Environment    string        `yaml:"environment"`
	JWTSigningKey  string        `yaml:"jwt_signing_key"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Scenario       Scenario      `yaml:"scenario"`
	Sessions       Sessions      `yaml:"sessions"`
	RateLimit      RateLimit     `yaml:"rate_limit"`
}

// RateLimit caps per-client requests to the endpoints that start sessions or
// call the scenario model. Zero disables a limit.
type RateLimit struct {
	SessionsPerWindow   int           `yaml:"sessions_per_window"`
	ModelCallsPerWindow int           `yaml:"model_calls_per_window"`
	Window              time.Duration `yaml:"window"`
	TrustedProxies      []string      `yaml:"trusted_proxies"`
}

// Sessions configures idle session reclamation.
type Sessions struct {
	IdleTTL         time.Duration `yaml:"idle_ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// Scenario configures the scenario and reply model.
type Scenario struct {
	Provider     string        `yaml:"provider"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	GeminiModel  string        `yaml:"gemini_model"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
	OpenAIModel  string        `yaml:"openai_model"`
	Timeout      time.Duration `yaml:"timeout"`
	Seed         int64         `yaml:"seed"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Server {
	return Server{
		Addr:           ":8080",
		Environment:    "dev",
		JWTSigningKey:  "dev-secret-key-change-in-production",
		TokenTTL:       12 * time.Hour,
		RequestTimeout: 10 * time.Second,
		Scenario: Scenario{
			Provider:    ProviderOffline,
			GeminiModel: "gemini-2.5-flash",
			OpenAIModel: "gpt-4o-mini",
			Timeout:     30 * time.Second,
		},
		Sessions: Sessions{
			IdleTTL:         2 * time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
		RateLimit: RateLimit{
			SessionsPerWindow:   10,
			ModelCallsPerWindow: 30,
			Window:              time.Minute,
		},
	}
}

// FromEnv builds the configuration: defaults, then the YAML file named by
// GOVOS_CONFIG (if any), then individual environment variables.
func FromEnv() (Server, error) {
	cfg := Defaults()

	if path := os.Getenv("GOVOS_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Server{}, err
		}
	}

	setString(&cfg.Addr, "GOVOS_ADDR")
	setString(&cfg.Environment, "GOVOS_ENV")
	setString(&cfg.JWTSigningKey, "JWT_SIGNING_KEY")
	setDuration(&cfg.TokenTTL, "TOKEN_TTL")
	setDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")

	setString(&cfg.Scenario.Provider, "SCENARIO_PROVIDER")
	setString(&cfg.Scenario.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.Scenario.GeminiModel, "GEMINI_MODEL")
	setString(&cfg.Scenario.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.Scenario.OpenAIModel, "OPENAI_MODEL")
	setDuration(&cfg.Scenario.Timeout, "SCENARIO_TIMEOUT")
	setDuration(&cfg.Sessions.IdleTTL, "SESSION_IDLE_TTL")
	setDuration(&cfg.Sessions.CleanupInterval, "SESSION_CLEANUP_INTERVAL")
	setInt(&cfg.RateLimit.SessionsPerWindow, "RATE_LIMIT_SESSIONS")
	setInt(&cfg.RateLimit.ModelCallsPerWindow, "RATE_LIMIT_MODEL_CALLS")
	setDuration(&cfg.RateLimit.Window, "RATE_LIMIT_WINDOW")
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		cfg.RateLimit.TrustedProxies = strings.Split(v, ",")
	}
	if v := os.Getenv("SCENARIO_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Scenario.Seed = seed
		}
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (s Server) Validate() error {
	switch s.Scenario.Provider {
	case ProviderOffline:
	case ProviderGemini:
		if s.Scenario.GeminiAPIKey == "" {
			return fmt.Errorf("scenario provider %q requires GEMINI_API_KEY", s.Scenario.Provider)
		}
	case ProviderOpenAI:
		if s.Scenario.OpenAIAPIKey == "" {
			return fmt.Errorf("scenario provider %q requires OPENAI_API_KEY", s.Scenario.Provider)
		}
	default:
		return fmt.Errorf("unknown scenario provider %q", s.Scenario.Provider)
	}
	if s.Scenario.Timeout <= 0 {
		return fmt.Errorf("scenario timeout must be positive")
	}
	if s.Sessions.IdleTTL <= 0 || s.Sessions.CleanupInterval <= 0 {
		return fmt.Errorf("session idle ttl and cleanup interval must be positive")
	}
	if s.RateLimit.SessionsPerWindow < 0 || s.RateLimit.ModelCallsPerWindow < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if (s.RateLimit.SessionsPerWindow > 0 || s.RateLimit.ModelCallsPerWindow > 0) && s.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if _, err := s.RateLimit.Proxies(); err != nil {
		return err
	}
	return nil
}

// Proxies parses the trusted proxy CIDRs.
func (r RateLimit) Proxies() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(r.TrustedProxies))
	for _, raw := range r.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		out = append(out, prefix)
	}
	return out, nil
}

func loadFile(path string, cfg *Server) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
