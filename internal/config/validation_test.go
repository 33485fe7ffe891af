package config

import (
	"strings"
	"testing"

	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

const testHash = "$2a$10$YtJ6lCmNwS7g9IpuaR7nPOE/M/3.G6VdMBm7eJdLpSfnLdG/CvxMq"

func TestValidatePassword(t *testing.T) {
	req := DefaultPasswordRequirements()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password with all requirements", "MyP@ssw0rd!", false},
		{"valid password with minimum length", "Ab1!abcd", false},
		{"too short", "Ab1!abc", true},
		{"missing uppercase", "myp@ssw0rd!", true},
		{"missing lowercase", "MYP@SSW0RD!", true},
		{"missing digit", "MyP@ssword!", true},
		{"missing special character", "MyPassw0rd1", true},
		{"empty password", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAdminConfig(t *testing.T) {
	secret := "12345678901234567890123456789012"

	tests := []struct {
		name     string
		cfg      *AdminConfig
		wantCode errors.ErrorCode
	}{
		{name: "nil config", cfg: nil},
		{name: "disabled admin", cfg: &AdminConfig{Enabled: false}},
		{
			name: "valid admin config",
			cfg:  &AdminConfig{Enabled: true, Username: "admin", PasswordHash: testHash, JWTSecret: secret},
		},
		{
			name:     "whitespace username",
			cfg:      &AdminConfig{Enabled: true, Username: "  ", PasswordHash: testHash, JWTSecret: secret},
			wantCode: errors.ErrCodeAdminCredentialsEmpty,
		},
		{
			name:     "password hash is not bcrypt",
			cfg:      &AdminConfig{Enabled: true, Username: "admin", PasswordHash: "plain", JWTSecret: secret},
			wantCode: errors.ErrCodeAdminCredentialsEmpty,
		},
		{
			name:     "empty jwt secret",
			cfg:      &AdminConfig{Enabled: true, Username: "admin", PasswordHash: testHash},
			wantCode: errors.ErrCodeJWTSecretInvalid,
		},
		{
			name:     "jwt secret too short",
			cfg:      &AdminConfig{Enabled: true, Username: "admin", PasswordHash: testHash, JWTSecret: "short-secret"},
			wantCode: errors.ErrCodeJWTSecretInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminConfig(tt.cfg)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateAdminConfig() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Code != tt.wantCode {
				t.Errorf("ValidateAdminConfig() = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"empty pages dir", func(c *Config) { c.Content.PagesDir = " " }, "pages_dir"},
		{"empty packages dir", func(c *Config) { c.Content.PackagesDir = "" }, "packages_dir"},
		{"negative concurrency", func(c *Config) { c.Content.LoadConcurrency = -1 }, "load_concurrency"},
		{"empty label path step", func(c *Config) { c.Content.LabelPath = []string{"switch", ""} }, "label_path"},
		{"negative retention", func(c *Config) { c.Sessions.RetentionDays = -3 }, "retention_days"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"admin enabled without secret", func(c *Config) {
			c.Admin.Enabled = true
			c.Admin.PasswordHash = testHash
		}, "jwt_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Message, tt.want) {
				t.Errorf("Validate() = %v, want message containing %q", err, tt.want)
			}
		})
	}
}

func TestIsValidBcryptHash(t *testing.T) {
	if !IsValidBcryptHash(testHash) {
		t.Error("expected test hash to be valid")
	}
	if IsValidBcryptHash("$2a$10$short") {
		t.Error("short hash should be invalid")
	}
	if IsValidBcryptHash("$1$" + strings.Repeat("x", 60)) {
		t.Error("md5 crypt hash should be invalid")
	}
}

func TestFormatPasswordRequirements(t *testing.T) {
	result := FormatPasswordRequirements()
	for _, part := range []string{"8 characters", "uppercase", "lowercase", "digit", "special character"} {
		if !strings.Contains(result, part) {
			t.Errorf("FormatPasswordRequirements() should contain %q", part)
		}
	}
}
