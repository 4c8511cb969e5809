package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failed requirement.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// requirements lists the fields that must be set per environment.
var requirements = map[Environment][]string{
	Development: {"db_host", "db_name"},
	Test:        {"db_host", "db_name"},
	CI:          {"db_host", "db_name", "db_password", "jwt_secret"},
	Production:  {"db_host", "db_name", "db_user", "db_password", "jwt_secret", "ai_api_key"},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	fields := map[string]string{
		"db_host":     cfg.DBHost,
		"db_name":     cfg.DBName,
		"db_user":     cfg.DBUser,
		"db_password": cfg.DBPassword,
		"jwt_secret":  cfg.JWTSecret,
		"ai_api_key":  cfg.AIAPIKey(),
	}

	var errs ValidationErrors
	for _, name := range requirements[cfg.Environment] {
		if fields[name] == "" {
			errs = append(errs, ValidationError{Field: name, Message: "is required in " + string(cfg.Environment)})
		}
	}

	switch cfg.AIProvider {
	case "gemini", "deepseek":
	default:
		errs = append(errs, ValidationError{Field: "ai_provider", Message: fmt.Sprintf("unsupported provider %q", cfg.AIProvider)})
	}

	if cfg.AICacheTTL < 0 || cfg.QueryCacheTTL < 0 {
		errs = append(errs, ValidationError{Field: "cache_ttl", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AIAPIKey returns the key of the selected AI provider.
func (c *Config) AIAPIKey() string {
	if c.AIProvider == "deepseek" {
		return c.DeepSeekAPIKey
	}
	return c.GeminiAPIKey
}
