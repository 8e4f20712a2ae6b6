package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/pasarela/internal/export"
	"github.com/starford/pasarela/internal/source"
	"github.com/starford/pasarela/internal/sse"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Source SourceConfig      `yaml:"source"`
	Assets AssetsConfig      `yaml:"assets"`
	Events EventsConfig      `yaml:"events"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := c.Assets.Validate(); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	return c.Events.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SourceConfig locates the site configuration and catalog resources. Each
// reference is either an http(s) URL or a path inside DataDir.
type SourceConfig struct {
	DataDir string        `yaml:"data_dir"`
	Config  string        `yaml:"config"`
	Catalog string        `yaml:"catalog"`
	Watch   bool          `yaml:"watch"`
	Timeout time.Duration `yaml:"timeout"`
}

// Local reports whether any resource is read from the data directory.
func (c *SourceConfig) Local() bool {
	return !source.IsURL(c.Config) || !source.IsURL(c.Catalog)
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Config, validation.Required),
		validation.Field(&c.Catalog, validation.Required),
		validation.Field(&c.DataDir, validation.When(c.Local(), validation.Required.Error("is required for local resources"))),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// AssetsConfig controls image staging and bundling. Brand names the image
// archive; when blank the site's brand name is used.
type AssetsConfig struct {
	Dir   string `yaml:"dir"`
	Brand string `yaml:"brand"`
}

// Validate validates the assets configuration.
func (c *AssetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// EventsConfig holds live event settings.
type EventsConfig struct {
	Throttle time.Duration `yaml:"throttle"`
}

// Validate validates the events configuration.
func (c *EventsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Throttle, validation.Min(time.Duration(0))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Source: SourceConfig{
			DataDir: "./data",
			Config:  "config.json",
			Catalog: "products.json",
			Watch:   true,
			Timeout: 10 * time.Second,
		},
		Assets: AssetsConfig{
			Dir:   export.DefaultAssetDir,
			Brand: "pasarela",
		},
		Events: EventsConfig{
			Throttle: sse.DefaultThrottle,
		},
	}
}
