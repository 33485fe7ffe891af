package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

// MinJWTSecretLength is the minimum required length for JWT secret (256 bits for HS256)
const MinJWTSecretLength = 32

// Validate checks the whole configuration and returns the first problem.
func Validate(cfg *Config) *errors.AppError {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("server.port %d is out of range", cfg.Server.Port))
	}
	if strings.TrimSpace(cfg.Content.PagesDir) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "content.pages_dir cannot be empty")
	}
	if strings.TrimSpace(cfg.Content.PackagesDir) == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "content.packages_dir cannot be empty")
	}
	if cfg.Content.LoadConcurrency < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "content.load_concurrency cannot be negative")
	}
	for _, step := range cfg.Content.LabelPath {
		if strings.TrimSpace(step) == "" {
			return errors.New(errors.ErrCodeConfigInvalid, "content.label_path cannot contain empty steps")
		}
	}
	if cfg.Sessions.RetentionDays < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "sessions.retention_days cannot be negative")
	}
	if _, err := parseLogLevel(cfg.Logging.Level); err != nil {
		return errors.New(errors.ErrCodeConfigInvalid, err.Error())
	}
	if cfg.Telemetry.Prometheus.Enabled && cfg.Telemetry.Prometheus.Port < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "telemetry.prometheus.port cannot be negative")
	}
	return ValidateAdminConfig(cfg.Admin)
}

func parseLogLevel(level string) (string, error) {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error", "fatal":
		return level, nil
	}
	return "", fmt.Errorf("logging.level %q is not one of debug, info, warn, error, fatal", level)
}

// PasswordRequirements defines the password complexity requirements
type PasswordRequirements struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigit     bool
	RequireSpecial   bool
	SpecialChars     string
}

// DefaultPasswordRequirements returns the default password complexity requirements
func DefaultPasswordRequirements() PasswordRequirements {
	return PasswordRequirements{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigit:     true,
		RequireSpecial:   true,
		SpecialChars:     "!@#$%^&*()_+-=[]{}|;:,.<>?",
	}
}

// ValidatePassword checks password against req and lists every unmet rule.
func ValidatePassword(password string, req PasswordRequirements) error {
	var failures []string

	if len(password) < req.MinLength {
		failures = append(failures, fmt.Sprintf("at least %d characters", req.MinLength))
	}
	if req.RequireUppercase && !containsFunc(password, unicode.IsUpper) {
		failures = append(failures, "at least one uppercase letter (A-Z)")
	}
	if req.RequireLowercase && !containsFunc(password, unicode.IsLower) {
		failures = append(failures, "at least one lowercase letter (a-z)")
	}
	if req.RequireDigit && !containsFunc(password, unicode.IsDigit) {
		failures = append(failures, "at least one digit (0-9)")
	}
	if req.RequireSpecial && !strings.ContainsAny(password, req.SpecialChars) {
		failures = append(failures, fmt.Sprintf("at least one special character (%s)", req.SpecialChars))
	}

	if len(failures) > 0 {
		return fmt.Errorf("password must contain: %s", strings.Join(failures, ", "))
	}
	return nil
}

func containsFunc(s string, f func(rune) bool) bool {
	return strings.IndexFunc(s, f) >= 0
}

// ValidateAdminConfig validates the admin section when the admin API is on.
func ValidateAdminConfig(cfg *AdminConfig) *errors.AppError {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Username) == "" {
		return errors.New(errors.ErrCodeAdminCredentialsEmpty,
			"admin username cannot be empty when the admin API is enabled")
	}
	if !IsValidBcryptHash(cfg.PasswordHash) {
		return errors.New(errors.ErrCodeAdminCredentialsEmpty,
			"admin password_hash must be a bcrypt hash when the admin API is enabled")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New(errors.ErrCodeJWTSecretInvalid,
			"jwt_secret cannot be empty when the admin API is enabled")
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return errors.New(errors.ErrCodeJWTSecretInvalid,
			fmt.Sprintf("jwt_secret must be at least %d characters long for security (HS256 requires 256 bits)", MinJWTSecretLength))
	}
	return nil
}

// IsValidBcryptHash checks the $2a$/$2b$/$2y$ prefix and length of a bcrypt hash
func IsValidBcryptHash(hash string) bool {
	if len(hash) < 60 {
		return false
	}
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

// FormatPasswordRequirements returns a human-readable description of password requirements
func FormatPasswordRequirements() string {
	req := DefaultPasswordRequirements()
	requirements := []string{fmt.Sprintf("- At least %d characters long", req.MinLength)}
	if req.RequireUppercase {
		requirements = append(requirements, "- Contains at least one uppercase letter (A-Z)")
	}
	if req.RequireLowercase {
		requirements = append(requirements, "- Contains at least one lowercase letter (a-z)")
	}
	if req.RequireDigit {
		requirements = append(requirements, "- Contains at least one digit (0-9)")
	}
	if req.RequireSpecial {
		requirements = append(requirements, fmt.Sprintf("- Contains at least one special character (%s)", req.SpecialChars))
	}
	return strings.Join(requirements, "\n")
}
