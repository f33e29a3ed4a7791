// Package config loads a11y-overlay settings from defaults, an optional
// config file and A11Y_OVERLAY_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
)

// EnvPrefix prefixes every environment override, e.g.
// A11Y_OVERLAY_LAYOUT_BADGE_SIZE=32.
const EnvPrefix = "A11Y_OVERLAY"

// Config is the full configuration.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout" json:"layout"`
	Render RenderConfig `mapstructure:"render" json:"render"`
	OCR    OCRConfig    `mapstructure:"ocr" json:"ocr"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
}

// LayoutConfig configures the overlay layout engine.
type LayoutConfig struct {
	Filter           string  `mapstructure:"filter" json:"filter"`
	Cluster          string  `mapstructure:"cluster" json:"cluster"`
	BadgeSize        int     `mapstructure:"badge_size" json:"badge_size"`
	BadgeMargin      int     `mapstructure:"badge_margin" json:"badge_margin"`
	MinRenderSize    int     `mapstructure:"min_render_size" json:"min_render_size"`
	AreaOverlapRatio float64 `mapstructure:"area_overlap_ratio" json:"area_overlap_ratio"`
	MinDrawableSize  int     `mapstructure:"min_drawable_size" json:"min_drawable_size"`
}

// RenderConfig configures screenshot rendering.
type RenderConfig struct {
	RenderBase  int `mapstructure:"render_base" json:"render_base"`
	Zoom        int `mapstructure:"zoom" json:"zoom"`
	CropPadding int `mapstructure:"crop_padding" json:"crop_padding"`
}

// OCRConfig configures text extraction.
type OCRConfig struct {
	Language string `mapstructure:"language" json:"language"`
}

// LogConfig configures logging.
type LogConfig struct {
	Debug bool `mapstructure:"debug" json:"debug"`
}

// Error reports an invalid configuration field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// Default returns the built-in configuration.
func Default() *Config {
	g := layout.DefaultGeometry()
	return &Config{
		Layout: LayoutConfig{
			Filter:           string(layout.FilterAll),
			Cluster:          string(layout.ClusterSingleHop),
			BadgeSize:        g.BadgeSize,
			BadgeMargin:      g.BadgeMargin,
			MinRenderSize:    g.MinRenderSize,
			AreaOverlapRatio: g.AreaOverlapRatio,
			MinDrawableSize:  g.MinDrawableSize,
		},
		Render: RenderConfig{
			RenderBase:  layout.DefaultRenderBase,
			Zoom:        100,
			CropPadding: 16,
		},
		OCR: OCRConfig{
			Language: "eng",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("layout.filter", d.Layout.Filter)
	v.SetDefault("layout.cluster", d.Layout.Cluster)
	v.SetDefault("layout.badge_size", d.Layout.BadgeSize)
	v.SetDefault("layout.badge_margin", d.Layout.BadgeMargin)
	v.SetDefault("layout.min_render_size", d.Layout.MinRenderSize)
	v.SetDefault("layout.area_overlap_ratio", d.Layout.AreaOverlapRatio)
	v.SetDefault("layout.min_drawable_size", d.Layout.MinDrawableSize)
	v.SetDefault("render.render_base", d.Render.RenderBase)
	v.SetDefault("render.zoom", d.Render.Zoom)
	v.SetDefault("render.crop_padding", d.Render.CropPadding)
	v.SetDefault("ocr.language", d.OCR.Language)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads the configuration. When path is empty, a file named
// a11y-overlay.{yaml,json,toml} in the working directory is used if present.
// A missing default file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("a11y-overlay")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := layout.ParseFilter(c.Layout.Filter); err != nil {
		return &Error{Field: "layout.filter", Message: err.Error()}
	}
	if _, err := layout.ParseClusterMode(c.Layout.Cluster); err != nil {
		return &Error{Field: "layout.cluster", Message: err.Error()}
	}
	if c.Layout.BadgeSize <= 0 {
		return &Error{Field: "layout.badge_size", Message: "must be positive"}
	}
	if c.Layout.BadgeMargin < 0 {
		return &Error{Field: "layout.badge_margin", Message: "must not be negative"}
	}
	if c.Layout.MinRenderSize < 0 {
		return &Error{Field: "layout.min_render_size", Message: "must not be negative"}
	}
	if c.Layout.AreaOverlapRatio <= 0 || c.Layout.AreaOverlapRatio > 1 {
		return &Error{Field: "layout.area_overlap_ratio", Message: "must be in (0, 1]"}
	}
	if c.Layout.MinDrawableSize < 0 {
		return &Error{Field: "layout.min_drawable_size", Message: "must not be negative"}
	}
	if c.Render.Zoom < 25 || c.Render.Zoom > 300 {
		return &Error{Field: "render.zoom", Message: "must be between 25 and 300"}
	}
	if c.Render.CropPadding < 0 {
		return &Error{Field: "render.crop_padding", Message: "must not be negative"}
	}
	if c.OCR.Language == "" {
		return &Error{Field: "ocr.language", Message: "must not be empty"}
	}
	return nil
}

// Geometry returns the layout geometry described by c.
func (c *Config) Geometry() layout.Geometry {
	return layout.Geometry{
		BadgeSize:        c.Layout.BadgeSize,
		BadgeMargin:      c.Layout.BadgeMargin,
		MinRenderSize:    c.Layout.MinRenderSize,
		AreaOverlapRatio: c.Layout.AreaOverlapRatio,
		MinDrawableSize:  c.Layout.MinDrawableSize,
	}
}

// LayoutOptions returns engine options for c. Call Validate first; invalid
// filter or cluster values fall back to their defaults here.
func (c *Config) LayoutOptions() layout.Options {
	filter, err := layout.ParseFilter(c.Layout.Filter)
	if err != nil {
		filter = layout.FilterAll
	}
	mode, err := layout.ParseClusterMode(c.Layout.Cluster)
	if err != nil {
		mode = layout.ClusterSingleHop
	}
	return layout.Options{
		Filter:     filter,
		Geometry:   c.Geometry(),
		Clustering: mode,
	}
}
