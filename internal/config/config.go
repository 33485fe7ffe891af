// Package config loads the YAML configuration file, expands ${VAR} references
// and applies ST_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skilltreedocs/skilltreedocs/consts"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
	"github.com/skilltreedocs/skilltreedocs/pkg/logger"
	"github.com/skilltreedocs/skilltreedocs/pkg/telemetry"
)

// DefaultConfigPath is where serve and check look for the configuration.
const DefaultConfigPath = "config/skilltreedocs.yaml"

const (
	defaultPagesDir       = "./pages"
	defaultPackagesDir    = "./packages"
	defaultStaticDir      = "./static"
	defaultDBPath         = "./data/skilltreedocs.db"
	defaultRetentionDays  = 90
	defaultTokenExpiry    = 24
	defaultOTLPEndpoint   = "localhost:4317"
	defaultPrometheusPort = 9090
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Content   ContentConfig    `yaml:"content"`
	Database  DatabaseConfig   `yaml:"database"`
	Admin     *AdminConfig     `yaml:"admin"`
	Sessions  SessionsConfig   `yaml:"sessions"`
	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Debug       bool     `yaml:"debug"`
	CORSOrigins []string `yaml:"cors_origins"` // Allowed CORS origins whitelist
}

// ContentConfig locates the Markdown pages, the package diagrams and the
// static assets.
type ContentConfig struct {
	PagesDir    string `yaml:"pages_dir"`
	PackagesDir string `yaml:"packages_dir"`
	StaticDir   string `yaml:"static_dir"`
	PagePattern string `yaml:"page_pattern"` // glob relative to pages_dir
	TabPattern  string `yaml:"tab_pattern"`  // glob relative to each package
	// LoadConcurrency bounds parallel file processing; 0 means one per CPU.
	LoadConcurrency int `yaml:"load_concurrency"`
	// LabelPath overrides the element chain from a shape's sibling to its label.
	LabelPath []string `yaml:"label_path"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AdminConfig holds admin API configuration
type AdminConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Username        string `yaml:"username"`
	PasswordHash    string `yaml:"password_hash"` // bcrypt hash
	JWTSecret       string `yaml:"jwt_secret"`
	TokenExpiration int    `yaml:"expiry_hours"`
}

// SessionsConfig controls how long idle user sessions are kept.
type SessionsConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Content: ContentConfig{
			PagesDir:    defaultPagesDir,
			PackagesDir: defaultPackagesDir,
			StaticDir:   defaultStaticDir,
			PagePattern: "*.md",
			TabPattern:  "*.svg",
		},
		Database: DatabaseConfig{
			Path: defaultDBPath,
		},
		Admin: &AdminConfig{
			Enabled:         false,
			Username:        "admin",
			TokenExpiration: defaultTokenExpiry,
		},
		Sessions: SessionsConfig{
			RetentionDays: defaultRetentionDays,
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
		},
		Telemetry: telemetry.Config{
			ServiceName: consts.ServiceName,
			OTLP: telemetry.OTLPConfig{
				Endpoint: defaultOTLPEndpoint,
				Insecure: true,
			},
			Prometheus: telemetry.PrometheusConfig{
				Port: defaultPrometheusPort,
			},
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeConfigNotFound,
				fmt.Sprintf("config file %s not found", path), err)
		}
		return nil, errors.Wrap(errors.ErrCodeConfigParse, "failed to read config file", err)
	}

	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// (plus environment overrides) otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if !Exists(path) {
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return Load(path)
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default}. Bare $VAR is left alone
// so bcrypt hashes survive.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := strings.SplitN(match[2:len(match)-1], ":-", 2)
		if value := os.Getenv(parts[0]); value != "" {
			return value
		}
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	})
}

// applyEnvOverrides applies ST_* environment variables:
//   - ST_SERVER_HOST, ST_SERVER_PORT, ST_SERVER_DEBUG
//   - ST_PAGES_DIR, ST_PACKAGES_DIR, ST_STATIC_DIR
//   - ST_DATABASE_PATH
//   - ST_ADMIN_ENABLED, ST_ADMIN_USERNAME, ST_ADMIN_PASSWORD_HASH, ST_ADMIN_JWT_SECRET
//   - ST_SESSION_RETENTION_DAYS
//   - ST_LOG_LEVEL, ST_LOG_FORMAT, ST_LOG_FILE
//   - ST_TELEMETRY_ENABLED, ST_OTLP_ENABLED, ST_OTLP_ENDPOINT, ST_PROMETHEUS_ENABLED, ST_PROMETHEUS_PORT
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Host, "ST_SERVER_HOST")
	setInt(&cfg.Server.Port, "ST_SERVER_PORT")
	setBool(&cfg.Server.Debug, "ST_SERVER_DEBUG")

	setString(&cfg.Content.PagesDir, "ST_PAGES_DIR")
	setString(&cfg.Content.PackagesDir, "ST_PACKAGES_DIR")
	setString(&cfg.Content.StaticDir, "ST_STATIC_DIR")

	setString(&cfg.Database.Path, "ST_DATABASE_PATH")

	if cfg.Admin == nil {
		cfg.Admin = &AdminConfig{TokenExpiration: defaultTokenExpiry}
	}
	setBool(&cfg.Admin.Enabled, "ST_ADMIN_ENABLED")
	setString(&cfg.Admin.Username, "ST_ADMIN_USERNAME")
	setString(&cfg.Admin.PasswordHash, "ST_ADMIN_PASSWORD_HASH")
	setString(&cfg.Admin.JWTSecret, "ST_ADMIN_JWT_SECRET")

	setInt(&cfg.Sessions.RetentionDays, "ST_SESSION_RETENTION_DAYS")

	setString(&cfg.Logging.Level, "ST_LOG_LEVEL")
	setString(&cfg.Logging.Format, "ST_LOG_FORMAT")
	setString(&cfg.Logging.File, "ST_LOG_FILE")

	setBool(&cfg.Telemetry.Enabled, "ST_TELEMETRY_ENABLED")
	setBool(&cfg.Telemetry.OTLP.Enabled, "ST_OTLP_ENABLED")
	setString(&cfg.Telemetry.OTLP.Endpoint, "ST_OTLP_ENDPOINT")
	setBool(&cfg.Telemetry.Prometheus.Enabled, "ST_PROMETHEUS_ENABLED")
	setInt(&cfg.Telemetry.Prometheus.Port, "ST_PROMETHEUS_PORT")
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

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = parseBool(v)
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Write marshals cfg to path with a header comment.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configHeader+string(data)), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

const configHeader = `# Skill Tree Docs configuration
#
# Values may reference environment variables as ${VAR} or ${VAR:-default}.
# ST_* environment variables override the file, e.g. ST_SERVER_PORT, ST_PAGES_DIR,
# ST_DATABASE_PATH, ST_ADMIN_JWT_SECRET, ST_LOG_LEVEL.

`
