// Package config loads service configuration from COMPOSER_* environment
// variables and user presentation preferences from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"resume-composer/internal/export/raster"
	"resume-composer/internal/render"
)

// Store kinds.
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds the configuration for the composer service.
// Environment variables are parsed from the COMPOSER_ prefix, e.g.
// COMPOSER_PORT, COMPOSER_STORE.
type Config struct {
	Port        int    `envconfig:"PORT" default:"3000"`
	Store       string `envconfig:"STORE" default:"file"`
	DataDir     string `envconfig:"DATA_DIR" default:"resume-data"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	// Chrome used for PDF export; empty means look it up on the system.
	ChromePath    string        `envconfig:"CHROME_PATH" default:""`
	OutputDir     string        `envconfig:"OUTPUT_DIR" default:"resume-data/generated"`
	RasterScale   float64       `envconfig:"RASTER_SCALE" default:"2"`
	ExportTimeout time.Duration `envconfig:"EXPORT_TIMEOUT" default:"60s"`

	DefaultTemplate string `envconfig:"DEFAULT_TEMPLATE" default:"classic"`
	DefaultFont     string `envconfig:"DEFAULT_FONT" default:"sans"`
	PrimaryColor    string `envconfig:"PRIMARY_COLOR" default:"#2563eb"`
	SecondaryColor  string `envconfig:"SECONDARY_COLOR" default:"#64748b"`
}

// New creates a Config from the environment.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COMPOSER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults validates the store kind and raster scale.
func (c *Config) ResolveDefaults() error {
	switch c.Store {
	case "":
		c.Store = StoreFile
	case StoreFile, StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported STORE: %s", c.Store)
	}
	if c.RasterScale < raster.MinScale {
		return fmt.Errorf("RASTER_SCALE must be at least %g, got %g", raster.MinScale, c.RasterScale)
	}
	if c.ExportTimeout <= 0 {
		return fmt.Errorf("EXPORT_TIMEOUT must be positive, got %s", c.ExportTimeout)
	}
	return nil
}

// Presentation returns the configured defaults as a presentation.
func (c *Config) Presentation() render.Presentation {
	return Settings{
		Template:       c.DefaultTemplate,
		Font:           c.DefaultFont,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
	}.Over(render.DefaultPresentation)
}

// Settings are presentation preferences. Empty fields mean "keep".
type Settings struct {
	Template       string `toml:"template"`
	Font           string `toml:"font"`
	PrimaryColor   string `toml:"primary_color"`
	SecondaryColor string `toml:"secondary_color"`
}

// LoadSettings reads a TOML settings file. A missing file yields empty
// settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path as TOML.
func (s Settings) Save(path string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Merge returns s with every non-empty field of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	if o.Template != "" {
		s.Template = o.Template
	}
	if o.Font != "" {
		s.Font = o.Font
	}
	if o.PrimaryColor != "" {
		s.PrimaryColor = o.PrimaryColor
	}
	if o.SecondaryColor != "" {
		s.SecondaryColor = o.SecondaryColor
	}
	return s
}

// Over applies s on top of base. Unknown template and font tokens are kept
// as given; the engine falls back for them. Unusable colors are replaced.
func (s Settings) Over(base render.Presentation) render.Presentation {
	p := base
	if s.Template != "" {
		p.Template = render.TemplateID(s.Template)
	}
	if s.Font != "" {
		p.Font = render.Font(s.Font)
	}
	if s.PrimaryColor != "" {
		p.Theme.Primary = s.PrimaryColor
	}
	if s.SecondaryColor != "" {
		p.Theme.Secondary = s.SecondaryColor
	}
	p.Theme = p.Theme.Normalize()
	return p
}
