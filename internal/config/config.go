package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL            = "http://localhost:8080"
	DefaultNotificationDuration = 3 * time.Second

	EnvServerURL   = "KRB_SERVER_URL"
	EnvKubeService = "KRB_KUBE_SERVICE"
)

var DefaultProdPatterns = []string{"prod", "production", "prd", "live"}

// AppConfig holds all configuration for krb-tui.
type AppConfig struct {
	Server        ServerConfig       `yaml:"server"`
	Notifications NotificationConfig `yaml:"notifications"`
	ProdPatterns  []string           `yaml:"prod_patterns"`
	Log           LogConfig          `yaml:"log"`
}

// ServerConfig says how to reach the recycle-bin backend.
// When KubeService is set the backend is reached through the API server
// service proxy and URL is ignored.
type ServerConfig struct {
	URL            string        `yaml:"url"`
	KubeService    string        `yaml:"kube_service"` // <namespace>/<service>:<port>
	Kubeconfig     string        `yaml:"kubeconfig"`
	RequestTimeout time.Duration `yaml:"request_timeout"` // 0 = wait forever
}

// NotificationConfig holds toast settings.
type NotificationConfig struct {
	Duration time.Duration `yaml:"duration"`
}

// LogConfig holds log sink settings. An empty File discards logs.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			URL: DefaultServerURL,
		},
		Notifications: NotificationConfig{
			Duration: DefaultNotificationDuration,
		},
		ProdPatterns: DefaultProdPatterns,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns ~/.config/krb-tui.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "krb-tui"), nil
}

// LoadConfig loads from the default path ~/.config/krb-tui/config.yaml.
func LoadConfig() (*AppConfig, error) {
	dir, err := Dir()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadConfigFrom(filepath.Join(dir, "config.yaml"))
}

// LoadConfigFrom loads config from a specific file path.
// Returns defaults if the file does not exist.
func LoadConfigFrom(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Apply defaults for zero values
	if len(cfg.ProdPatterns) == 0 {
		cfg.ProdPatterns = DefaultProdPatterns
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = DefaultServerURL
	}
	if cfg.Notifications.Duration <= 0 {
		cfg.Notifications.Duration = DefaultNotificationDuration
	}
	if cfg.Server.RequestTimeout < 0 {
		cfg.Server.RequestTimeout = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// ApplyEnv overrides server settings from the environment.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvServerURL)); v != "" {
		c.Server.URL = v
	}
	if v := strings.TrimSpace(getenv(EnvKubeService)); v != "" {
		c.Server.KubeService = v
	}
}

// IsProdNamespace checks if a namespace name matches production patterns.
// Matching is done by segment (split on -._) to avoid false positives
// like "product-api" matching "prod".
func IsProdNamespace(namespace string, patterns []string) bool {
	if len(patterns) == 0 {
		patterns = DefaultProdPatterns
	}
	segments := splitSegments(strings.ToLower(namespace))

	for _, p := range patterns {
		p = strings.ToLower(p)
		for _, seg := range segments {
			if seg == p {
				return true
			}
		}
	}
	return false
}

// AnyProdNamespace reports whether any of namespaces is a production namespace.
func AnyProdNamespace(namespaces []string, patterns []string) bool {
	for _, ns := range namespaces {
		if IsProdNamespace(ns, patterns) {
			return true
		}
	}
	return false
}

// splitSegments splits a namespace name on common separators.
func splitSegments(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '.' || r == '_'
	})
}
