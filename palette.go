package ctplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
)

// PaletteOptions modify a palette after it is generated.
type PaletteOptions struct {
	// Desat scales the saturation of every color, in (0,1]. Zero leaves colors unchanged.
	Desat float64
}

// ColorFunc maps t∈[0,1] to a color.
type ColorFunc func(float64) color.Color

var qualitativePalettes = map[string][]string{
	"deep":       {"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3", "#937860", "#DA8BC3", "#8C8C8C", "#CCB974", "#64B5CD"},
	"muted":      {"#4878D0", "#EE854A", "#6ACC64", "#D65F5F", "#956CB4", "#8C613C", "#DC7EC0", "#797979", "#D5BB67", "#82C6E2"},
	"pastel":     {"#A1C9F4", "#FFB482", "#8DE5A1", "#FF9F9B", "#D0BBFF", "#DEBB9B", "#FAB0E4", "#CFCFCF", "#FFFEA3", "#B9F2F0"},
	"bright":     {"#023EFF", "#FF7C00", "#1AC938", "#E8000B", "#8B2BE2", "#9F4800", "#F14CC1", "#A3A3A3", "#FFC400", "#00D7FF"},
	"dark":       {"#001C7F", "#B1400D", "#12711C", "#8C0800", "#591E71", "#592F0D", "#A23582", "#3C3C3C", "#B8850A", "#006374"},
	"colorblind": {"#0173B2", "#DE8F05", "#029E73", "#D55E00", "#CC78BC", "#CA9161", "#FBAFE4", "#949494", "#ECE133", "#56B4E9"},
	"tab10":      cycleColors,
}

// colormapStops are evenly spaced samples of perceptually uniform colormaps.
var colormapStops = map[string][]string{
	"viridis": {"#440154", "#482878", "#3E4A89", "#31688E", "#26828E", "#1F9E89", "#35B779", "#6DCD59", "#B4DE2C", "#FDE725"},
	"magma":   {"#000004", "#180F3D", "#440F76", "#721F81", "#9E2F7F", "#CD4071", "#F1605D", "#FD9668", "#FEC98D", "#FCFDBF"},
	"inferno": {"#000004", "#1B0C41", "#4A0C6B", "#781C6D", "#A52C60", "#CF4446", "#ED6925", "#FB9B06", "#F7D13D", "#FCFFA4"},
	"plasma":  {"#0D0887", "#47039F", "#7301A8", "#9C179E", "#BD3786", "#D8576B", "#ED7953", "#FA9E3B", "#FDC926", "#F0F921"},
	"cividis": {"#00224E", "#123570", "#3B496C", "#575D6D", "#707173", "#8A8779", "#A69D75", "#C4B56C", "#E4CF5B", "#FEE838"},
}

var colorMaps = map[string]func() palette.ColorMap{
	"coolwarm":           func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"kindlmann":          moreland.Kindlmann,
	"extended-kindlmann": moreland.ExtendedKindlmann,
	"blackbody":          moreland.BlackBody,
	"extended-blackbody": moreland.ExtendedBlackBody,
}

// PaletteNames returns the names accepted by ColorPalette, without the
// ColorBrewer names and without the "_r" suffixes.
func PaletteNames() []string {
	names := []string{"hls", "husl", "gonum", "gonum-dark", "gochart"}
	for name := range qualitativePalettes {
		names = append(names, name)
	}
	for name := range colormapStops {
		names = append(names, name)
	}
	for name := range colorMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorPalette returns n colors from the named palette. Qualitative palettes
// cycle when n exceeds their length, continuous colormaps are sampled at n
// evenly spaced interior points. A "_r" suffix reverses the palette.
func ColorPalette(name string, n int, opts *PaletteOptions) ([]color.Color, error) {
	if n <= 0 {
		return nil, fmt.Errorf("palette length must be positive: %d", n)
	}

	reverse := false
	if strings.HasSuffix(name, "_r") {
		name = strings.TrimSuffix(name, "_r")
		reverse = true
	}

	colors, err := paletteColors(name, n)
	if err != nil {
		return nil, err
	}
	if reverse {
		for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
			colors[i], colors[j] = colors[j], colors[i]
		}
	}
	if opts != nil && opts.Desat != 0.0 {
		if opts.Desat < 0.0 || 1.0 < opts.Desat {
			return nil, fmt.Errorf("desaturation must be in (0,1]: %v", opts.Desat)
		}
		for i, col := range colors {
			colors[i] = desaturate(col, opts.Desat)
		}
	}
	return colors, nil
}

func paletteColors(name string, n int) ([]color.Color, error) {
	switch name {
	case "hls":
		return hlsPalette(n, 0.01, 0.6, 0.65), nil
	case "husl":
		return huslPalette(n, 0.01, 0.9, 0.65), nil
	case "gonum":
		return cycle(plotutil.SoftColors, n), nil
	case "gonum-dark":
		return cycle(plotutil.DarkColors, n), nil
	case "gochart":
		colors := make([]color.Color, len(chart.DefaultAlternateColors))
		for i, c := range chart.DefaultAlternateColors {
			colors[i] = nrgba(c)
		}
		return cycle(colors, n), nil
	}

	if specs, ok := qualitativePalettes[name]; ok {
		colors := make([]color.Color, len(specs))
		for i, spec := range specs {
			colors[i] = MustParseColor(spec)
		}
		return cycle(colors, n), nil
	} else if specs, ok := colormapStops[name]; ok {
		stops := make([]color.Color, len(specs))
		for i, spec := range specs {
			stops[i] = MustParseColor(spec)
		}
		return sample(LabGradient(stops), n), nil
	} else if cm, ok := colorMaps[name]; ok {
		m := cm()
		m.SetMin(0.0)
		m.SetMax(1.0)
		return sample(func(t float64) color.Color {
			col, err := m.At(t)
			if err != nil {
				return Transparent
			}
			return col
		}, n), nil
	}
	return brewerPalette(name, n)
}

// brewerPalette looks up a ColorBrewer palette. Qualitative palettes cycle
// through their largest variant, other palettes are interpolated from it.
func brewerPalette(name string, n int) ([]color.Color, error) {
	if q, ok := brewer.QualitativePalettes[name]; ok {
		return cycle(largest(q), n), nil
	}

	var stops []color.Color
	if s, ok := brewer.SequentialPalettes[name]; ok {
		stops = largest(s)
	} else if d, ok := brewer.DivergingPalettes[name]; ok {
		stops = largest(d)
	} else {
		return nil, fmt.Errorf("unknown palette: %s", name)
	}
	return sample(LabGradient(stops), n), nil
}

func largest[P palette.Palette](m map[int]P) []color.Color {
	size := 0
	for s := range m {
		if size < s {
			size = s
		}
	}
	return m[size].Colors()
}

func cycle(colors []color.Color, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

// sample evaluates f at n interior points of [0,1], leaving out both ends.
func sample(f ColorFunc, n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = f(float64(i+1) / float64(n+1))
	}
	return out
}

// LabGradient returns a gradient through evenly spaced stops, interpolated in
// the CIE L*a*b* color space.
func LabGradient(stops []color.Color) ColorFunc {
	if len(stops) == 0 {
		return func(float64) color.Color { return Transparent }
	}
	cs := make([]colorful.Color, len(stops))
	for i, stop := range stops {
		cs[i], _ = colorful.MakeColor(stop)
	}
	return func(t float64) color.Color {
		if len(cs) == 1 || t <= 0.0 {
			return opaque(cs[0])
		} else if 1.0 <= t {
			return opaque(cs[len(cs)-1])
		}
		x := t * float64(len(cs)-1)
		i := int(x)
		return opaque(cs[i].BlendLab(cs[i+1], x-float64(i)).Clamped())
	}
}

func hlsPalette(n int, h, l, s float64) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		hue := math.Mod(float64(i)/float64(n)+h, 1.0)
		out[i] = opaque(colorful.Hsl(hue*360.0, s, l).Clamped())
	}
	return out
}

func huslPalette(n int, h, s, l float64) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		hue := math.Mod(float64(i)/float64(n)+h, 1.0)
		out[i] = opaque(colorful.HSLuv(hue*359.0, s, l).Clamped())
	}
	return out
}

func desaturate(col color.Color, prop float64) color.Color {
	c, ok := colorful.MakeColor(col)
	if !ok {
		return col
	}
	h, s, l := c.Hsl()
	if s *= prop; s < 1e-6 {
		v := uint8(math.Round(255.0 * math.Min(math.Max(l, 0.0), 1.0)))
		return color.NRGBA{v, v, v, 255}
	}
	return opaque(colorful.Hsl(h, s, l).Clamped())
}

func opaque(c colorful.Color) color.Color {
	r, g, b := c.RGB255()
	return color.NRGBA{r, g, b, 255}
}
