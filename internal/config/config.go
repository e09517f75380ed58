package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/penwyp/go-eld-log/internal/core/grid"
	"github.com/penwyp/go-eld-log/internal/core/model"
	"github.com/penwyp/go-eld-log/internal/data/cache"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Geometry      GeometryConfig    `mapstructure:"geometry"`
	Labels        LabelsConfig      `mapstructure:"labels"`
	Palette       map[string]string `mapstructure:"palette"`
	StatusAliases map[string]string `mapstructure:"status_aliases"`
	Render        RenderConfig      `mapstructure:"render"`
	Logging       LoggingConfig     `mapstructure:"logging"`
}

// GeometryConfig defines the sheet layout in canvas units
type GeometryConfig struct {
	CanvasWidth  float64 `mapstructure:"canvas_width"`
	CanvasHeight float64 `mapstructure:"canvas_height"`
	MarginLeft   float64 `mapstructure:"margin_left"`
	MarginTop    float64 `mapstructure:"margin_top"`
	GridWidth    float64 `mapstructure:"grid_width"`
	GridHeight   float64 `mapstructure:"grid_height"`
	BarPadding   float64 `mapstructure:"bar_padding"`
}

// LabelsConfig defines axis label settings
type LabelsConfig struct {
	PeriodEvery int `mapstructure:"period_every"`
}

// RenderConfig defines batch rendering settings
type RenderConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	CacheSize   int `mapstructure:"cache_size"`
}

// LoggingConfig defines log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// DefaultPath returns ~/.go-eld-log/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".go-eld-log", "config.yaml")
}

// Load loads configuration from file and environment variables. A missing
// file is not an error; defaults and environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ELDLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	g := grid.DefaultGeometry()
	v.SetDefault("geometry.canvas_width", g.CanvasWidth)
	v.SetDefault("geometry.canvas_height", g.CanvasHeight)
	v.SetDefault("geometry.margin_left", g.MarginLeft)
	v.SetDefault("geometry.margin_top", g.MarginTop)
	v.SetDefault("geometry.grid_width", g.GridWidth)
	v.SetDefault("geometry.grid_height", g.GridHeight)
	v.SetDefault("geometry.bar_padding", g.BarPadding)

	v.SetDefault("labels.period_every", grid.DefaultOptions().PeriodLabelEvery)

	v.SetDefault("palette", grid.DefaultPalette())
	v.SetDefault("status_aliases", map[string]string{})

	v.SetDefault("render.concurrency", runtime.NumCPU())
	v.SetDefault("render.cache_size", cache.DefaultSize)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
}

// validate validates the configuration
func validate(cfg *Config) error {
	if err := cfg.GridGeometry().Validate(); err != nil {
		return err
	}
	if cfg.Labels.PeriodEvery < 0 {
		return fmt.Errorf("labels.period_every must not be negative: %d", cfg.Labels.PeriodEvery)
	}
	if cfg.Render.Concurrency <= 0 {
		cfg.Render.Concurrency = runtime.NumCPU()
	}
	if cfg.Render.CacheSize < 0 {
		return fmt.Errorf("render.cache_size must not be negative: %d", cfg.Render.CacheSize)
	}
	// Map keys come back lowercased from viper; fold targets the same way.
	aliases := make(map[string]string, len(cfg.StatusAliases))
	for from, to := range cfg.StatusAliases {
		to = strings.ToLower(strings.TrimSpace(to))
		if !model.ParseCategory(to).IsKnown() {
			return fmt.Errorf("status alias %q maps to unknown status %q", from, to)
		}
		aliases[strings.ToLower(strings.TrimSpace(from))] = to
	}
	cfg.StatusAliases = aliases
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported logging format: %s", cfg.Logging.Format)
	}
	return nil
}

// GridGeometry converts the geometry section into renderer units.
func (c *Config) GridGeometry() grid.Geometry {
	return grid.Geometry{
		CanvasWidth:  c.Geometry.CanvasWidth,
		CanvasHeight: c.Geometry.CanvasHeight,
		MarginLeft:   c.Geometry.MarginLeft,
		MarginTop:    c.Geometry.MarginTop,
		GridWidth:    c.Geometry.GridWidth,
		GridHeight:   c.Geometry.GridHeight,
		BarPadding:   c.Geometry.BarPadding,
	}
}

// RenderOptions builds renderer options. Palette entries override the
// default colours key by key.
func (c *Config) RenderOptions() grid.Options {
	opts := grid.DefaultOptions()
	opts.PeriodLabelEvery = c.Labels.PeriodEvery
	for key, color := range c.Palette {
		opts.Theme.Palette[strings.ToLower(key)] = color
	}
	return opts
}
