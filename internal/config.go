package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/penna/internal/transport"
	"github.com/starford/penna/internal/ui"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	API   APIConfig         `yaml:"api"`
	UI    UIConfig          `yaml:"ui"`
	Serve ServeConfig       `yaml:"serve"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.UI.Validate(); err != nil {
		return err
	}
	return c.Serve.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// APIConfig points the client at the remote notes service.
//
// Timeout of zero leaves the HTTP transport's default behavior in place; the
// client itself never retries or cancels.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the API configuration.
func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	Theme string `yaml:"theme"`
}

// Validate validates the UI configuration.
func (c *UIConfig) Validate() error {
	// Normalise empty theme to light.
	if c.Theme == "" {
		c.Theme = ui.ThemeLight
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required, validation.In(ui.ThemeLight, ui.ThemeDark, ui.ThemeMono)),
	)
}

// ServeConfig holds settings for the bundled development server.
type ServeConfig struct {
	Port       int    `yaml:"port"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Address returns the listen address for the development server.
func (c *ServeConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the serve configuration.
func (c *ServeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.SQLitePath, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		API: APIConfig{
			BaseURL: transport.DefaultBaseURL,
		},
		UI: UIConfig{
			Theme: ui.ThemeLight,
		},
		Serve: ServeConfig{
			Port:       3001,
			SQLitePath: "./penna.db",
		},
	}
}
