// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the OS keychain.
// Every key can be overridden from the environment with the BRANDLENS_ prefix,
// e.g. BRANDLENS_BASE_URL.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"brandlens/cli/internal/xdg"

	"github.com/spf13/viper"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL        string        `json:"base_url" mapstructure:"base_url"`
	LogLevel       string        `json:"log_level" mapstructure:"log_level"`
	RequestTimeout time.Duration `json:"request_timeout" mapstructure:"request_timeout"`
	Routes         RouteConfig   `json:"routes" mapstructure:"routes"`
}

// RouteConfig names the fixed destinations the navigation guard redirects to.
type RouteConfig struct {
	Landing         string `json:"landing_path" mapstructure:"landing_path"`
	Login           string `json:"login_path" mapstructure:"login_path"`
	OnboardingEntry string `json:"onboarding_entry" mapstructure:"onboarding_entry"`
}

const fileName = "config.json"

// Defaults returns the configuration used when no file or env override exists.
func Defaults() Config {
	return Config{
		BaseURL:        "https://app.brandlens.io",
		LogLevel:       "info",
		RequestTimeout: 10 * time.Second,
		Routes: RouteConfig{
			Landing:         "/overview",
			Login:           "/login",
			OnboardingEntry: "/onboarding/brand",
		},
	}
}

// Load reads configuration from the XDG config dir; a missing file yields defaults
// with env overrides applied.
func Load() (Config, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(dir)
}

// LoadFrom reads config.json from dir. It exists separately from Load so tests can
// point it at a temp dir.
func LoadFrom(dir string) (Config, error) {
	d := Defaults()
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("routes.landing_path", d.Routes.Landing)
	v.SetDefault("routes.login_path", d.Routes.Login)
	v.SetDefault("routes.onboarding_entry", d.Routes.OnboardingEntry)

	v.SetEnvPrefix("brandlens")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The file is optional; everything has a default or an env var.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return d, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return d, err
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return err
	}
	return SaveTo(dir, c)
}

// SaveTo writes config.json into dir.
func SaveTo(dir string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fileName), b, 0o600)
}
