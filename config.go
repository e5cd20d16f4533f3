package ctplot

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the styling of a figure that is fixed at creation. Sizes of
// the figure are in inches, line widths and font sizes in points.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	Grid           bool    `toml:"grid"`
	MinorGridWidth float64 `toml:"minor_grid_width"`
	MajorGridWidth float64 `toml:"major_grid_width"`
	MinorGridColor string  `toml:"minor_grid_color"`
	MajorGridColor string  `toml:"major_grid_color"`

	XTickLabelSize float64 `toml:"xtick_label_size"`
	YTickLabelSize float64 `toml:"ytick_label_size"`
	XLabelSize     float64 `toml:"xlabel_size"`
	YLabelSize     float64 `toml:"ylabel_size"`
	XOffsetSize    float64 `toml:"xoffset_size"`
	YOffsetSize    float64 `toml:"yoffset_size"`

	// DPI is the resolution of raster output.
	DPI float64 `toml:"dpi"`
}

// DefaultConfig is the configuration used when none is given.
var DefaultConfig = Config{
	Width:  7.5,
	Height: 4.5,

	Grid:           true,
	MinorGridWidth: 0.8,
	MajorGridWidth: 1.0,
	MinorGridColor: "#EEEEEE",
	MajorGridColor: "#DDDDDD",

	XTickLabelSize: 17.5,
	YTickLabelSize: 17.5,
	XLabelSize:     20.0,
	YLabelSize:     20.0,
	XOffsetSize:    17.5,
	YOffsetSize:    17.5,

	DPI: 100.0,
}

// Validate returns an error for non-positive sizes and malformed colors.
func (cfg *Config) Validate() error {
	sizes := []struct {
		name string
		v    float64
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"minor grid width", cfg.MinorGridWidth},
		{"major grid width", cfg.MajorGridWidth},
		{"x tick label size", cfg.XTickLabelSize},
		{"y tick label size", cfg.YTickLabelSize},
		{"x label size", cfg.XLabelSize},
		{"y label size", cfg.YLabelSize},
		{"x offset size", cfg.XOffsetSize},
		{"y offset size", cfg.YOffsetSize},
		{"dpi", cfg.DPI},
	}
	for _, size := range sizes {
		if !(0.0 < size.v) || math.IsInf(size.v, 0) {
			return fmt.Errorf("%s must be positive: %v", size.name, size.v)
		}
	}
	if _, err := ParseColor(cfg.MinorGridColor); err != nil {
		return fmt.Errorf("minor grid color: %w", err)
	}
	if _, err := ParseColor(cfg.MajorGridColor); err != nil {
		return fmt.Errorf("major grid color: %w", err)
	}
	return nil
}

// LoadConfig reads a TOML configuration. Missing keys keep the value of
// DefaultConfig and unknown keys are an error.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a TOML configuration file, see LoadConfig.
func LoadConfigFile(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadConfig(f)
}
