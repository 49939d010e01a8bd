package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration and reports every problem found
func ValidateConfig(cfg *Config) error {
	var errs []error

	u, err := url.Parse(cfg.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{Field: "backend.url", Message: "must be an absolute http(s) URL"})
	}
	if cfg.Backend.Timeout <= 0 {
		errs = append(errs, ValidationError{Field: "backend.timeout", Message: "must be positive"})
	}
	if cfg.Server.Port == "" {
		errs = append(errs, ValidationError{Field: "server.port", Message: "is required"})
	}
	if cfg.Session.CookieName == "" {
		errs = append(errs, ValidationError{Field: "session.cookie_name", Message: "is required"})
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, ValidationError{Field: "session.ttl", Message: "must be positive"})
	}
	if cfg.Env == Production && cfg.Session.Secret == "" {
		errs = append(errs, ValidationError{Field: "session.secret", Message: "session_secret secret is required in production"})
	}
	if cfg.UI.ToastTTL <= 0 {
		errs = append(errs, ValidationError{Field: "ui.toast_ttl", Message: "must be positive"})
	}

	return errors.Join(errs...)
}
