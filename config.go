package doodle

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/esimov/doodle/imop"
	"github.com/esimov/doodle/utils"
)

// Default configuration values.
const (
	DefaultCanvasWidth  = 1400
	DefaultCanvasHeight = 500
	DefaultStrokeColor  = "#000000"
	DefaultStrokeWidth  = 2.0
	DefaultBorderColor  = "#1e88e5"
	DefaultMarkerRadius = 4.0
	DefaultExportName   = "canvas.png"
	DefaultJPEGQuality  = 95
)

// Config holds the canvas configuration.
type Config struct {
	Canvas    CanvasConfig    `toml:"canvas"`
	Primary   PlacementConfig `toml:"primary"`
	Stroke    StrokeConfig    `toml:"stroke"`
	Polygon   PolygonConfig   `toml:"polygon"`
	Secondary SecondaryConfig `toml:"secondary"`
	Export    ExportConfig    `toml:"export"`
}

// CanvasConfig sets the drawing surface size. An empty background is transparent.
type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// PlacementConfig is the fixed placement of the primary image.
type PlacementConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// StrokeConfig is the initial shared shape style.
type StrokeConfig struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// PolygonConfig styles the polygon border and its vertex markers.
type PolygonConfig struct {
	BorderColor  string  `toml:"border_color"`
	BorderWidth  float64 `toml:"border_width"`
	MarkerRadius float64 `toml:"marker_radius"`
}

// SecondaryConfig sets the optional blend mode of the clipped secondary image.
type SecondaryConfig struct {
	Blend string `toml:"blend"`
}

// ExportConfig holds the raster export options.
type ExportConfig struct {
	Name    string `toml:"name"`
	Quality int    `toml:"quality"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:  DefaultCanvasWidth,
			Height: DefaultCanvasHeight,
		},
		Primary: PlacementConfig{X: 50, Y: 50, Width: 500, Height: 500},
		Stroke: StrokeConfig{
			Color: DefaultStrokeColor,
			Width: DefaultStrokeWidth,
		},
		Polygon: PolygonConfig{
			BorderColor:  DefaultBorderColor,
			BorderWidth:  DefaultStrokeWidth,
			MarkerRadius: DefaultMarkerRadius,
		},
		Export: ExportConfig{
			Name:    DefaultExportName,
			Quality: DefaultJPEGQuality,
		},
	}
}

// LoadConfig reads a TOML configuration file on top of the defaults.
// Unknown keys are reported as errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes a TOML document on top of the defaults and validates it.
func ParseConfig(doc string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("parse config: unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		add("canvas", "invalid size %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Background != "" {
		if _, err := utils.HexToRGBA(c.Canvas.Background); err != nil {
			add("canvas.background", "%v", err)
		}
	}
	if c.Primary.Width <= 0 || c.Primary.Height <= 0 {
		add("primary", "invalid size %gx%g", c.Primary.Width, c.Primary.Height)
	}
	if _, err := utils.HexToRGBA(c.Stroke.Color); err != nil {
		add("stroke.color", "%v", err)
	}
	if c.Stroke.Width <= 0 {
		add("stroke.width", "must be positive, got %g", c.Stroke.Width)
	}
	if _, err := utils.HexToRGBA(c.Polygon.BorderColor); err != nil {
		add("polygon.border_color", "%v", err)
	}
	if c.Polygon.BorderWidth <= 0 {
		add("polygon.border_width", "must be positive, got %g", c.Polygon.BorderWidth)
	}
	if c.Polygon.MarkerRadius < 0 {
		add("polygon.marker_radius", "must not be negative, got %g", c.Polygon.MarkerRadius)
	}
	if c.Secondary.Blend != "" && !utils.Contains(imop.BlendModes, c.Secondary.Blend) {
		add("secondary.blend", "unsupported blend mode %q", c.Secondary.Blend)
	}
	if _, err := FormatFromPath(c.Export.Name); err != nil {
		add("export.name", "%v", err)
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		add("export.quality", "must be in the 1..100 range, got %d", c.Export.Quality)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// background returns the canvas background, transparent when unset.
func (c *Config) background() color.NRGBA {
	col, err := utils.HexToRGBA(c.Canvas.Background)
	if err != nil {
		return color.NRGBA{}
	}
	return col
}

func (c *Config) strokeColor() color.NRGBA {
	col, err := utils.HexToRGBA(c.Stroke.Color)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return col
}

func (c *Config) borderColor() color.NRGBA {
	col, err := utils.HexToRGBA(c.Polygon.BorderColor)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return col
}
