package ctplot

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Transparent is the fully transparent color.
var Transparent = color.NRGBA{}

// cycleColors is the default property cycle, addressed as "C0" to "C9".
var cycleColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// shortColors are the single letter color names.
var shortColors = map[string]color.NRGBA{
	"b": {0, 0, 255, 255},
	"g": {0, 128, 0, 255},
	"r": {255, 0, 0, 255},
	"c": {0, 191, 191, 255},
	"m": {191, 0, 191, 255},
	"y": {191, 191, 0, 255},
	"k": {0, 0, 0, 255},
	"w": {255, 255, 255, 255},
}

var (
	hexColorRe  = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColorRe  = regexp.MustCompile(`^rgb\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*\)$`)
	rgbaColorRe = regexp.MustCompile(`^rgba\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*[0-9.]+\s*\)$`)
)

// ParseColor parses a color specification. Accepted are hexadecimal colors
// (#rgb, #rrggbb, #rrggbbaa), CSS rgb() and rgba() functions, basic CSS color
// names, the single letters b, g, r, c, m, y, k and w, the cycle colors C0 to
// C9, a gray level between 0 and 1 given as a number, and "none".
func ParseColor(s string) (color.Color, error) {
	spec := strings.TrimSpace(s)
	lower := strings.ToLower(spec)
	switch {
	case spec == "":
		return nil, fmt.Errorf("empty color specification")
	case lower == "none" || lower == "transparent":
		return Transparent, nil
	case hexColorRe.MatchString(spec):
		c := nrgba(drawing.ColorFromHex(spec))
		if len(spec) == 9 {
			a, _ := strconv.ParseUint(spec[7:9], 16, 8)
			c.A = uint8(a)
		}
		return c, nil
	case rgbColorRe.MatchString(lower):
		return nrgba(drawing.ColorFromRGB(lower)), nil
	case rgbaColorRe.MatchString(lower):
		return nrgba(drawing.ColorFromRGBA(lower)), nil
	}
	if c, ok := shortColors[spec]; ok {
		return c, nil
	}
	if len(spec) == 2 && (spec[0] == 'C' || spec[0] == 'c') && '0' <= spec[1] && spec[1] <= '9' {
		return ParseColor(cycleColors[spec[1]-'0'])
	}
	if v, err := strconv.ParseFloat(spec, 64); err == nil {
		if v < 0.0 || 1.0 < v || math.IsNaN(v) {
			return nil, fmt.Errorf("gray level must be between 0 and 1: %v", s)
		}
		g := uint8(v*255.0 + 0.5)
		return color.NRGBA{g, g, g, 255}, nil
	}
	if c := drawing.ColorFromKnown(lower); !c.IsZero() {
		return nrgba(c), nil
	}
	return nil, fmt.Errorf("invalid color specification: %q", s)
}

// MustParseColor parses a color specification and panics on error.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func nrgba(c drawing.Color) color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, c.A}
}

// withAlpha multiplies the opacity of a color by alpha in [0,1].
func withAlpha(col color.Color, alpha float64) color.Color {
	if col == nil {
		return nil
	}
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	c.A = uint8(float64(c.A)*math.Max(0.0, math.Min(1.0, alpha)) + 0.5)
	return c
}

// ColorHex formats a color as #rrggbb, or #rrggbbaa when not opaque.
func ColorHex(col color.Color) string {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
