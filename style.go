package ctplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style holds the options of scatter, line and error bar marks. The zero
// value gives the defaults of each mark type.
type Style struct {
	Label string // legend label, empty leaves the mark out of automatic legends
	Color string // color specification, empty takes the next color of the cycle

	// Alpha is the opacity in (0,1], zero means opaque.
	Alpha float64

	Marker     string  // o . s ^ v < > D d p h * + x or none
	MarkerSize float64 // marker diameter in points
	Hollow     bool    // draw outlined markers instead of filled ones

	LineStyle string  // - -- : -. or none
	LineWidth float64 // in points

	XErr, YErr []float64 // symmetric errors per point, error bars only
	CapSize    float64   // error bar cap width in points

	// Extra holds less common options: ecolor, elinewidth, capsize,
	// drawstyle (default, steps-pre, steps-mid, steps-post) and fillcolor.
	Extra map[string]any
}

// TextStyle holds the options of free text.
type TextStyle struct {
	VA       string  // center, top, bottom or baseline
	HA       string  // center, left or right
	FontSize float64 // in points
	Color    string
	Rotation float64 // counter-clockwise in degrees

	// Extra holds less common options: alpha, fontweight (normal, bold) and
	// fontstyle (normal, italic).
	Extra map[string]any
}

// LegendStyle holds the options of legends. The zero value gives a single
// column legend centered on its anchor without a frame.
type LegendStyle struct {
	Loc        string  // anchor location of the legend box, see Legend
	NCol       int     // number of columns
	FrameAlpha float64 // frame opacity in [0,1]
	FontSize   float64 // in points
	Title      string

	// Extra holds less common options in units of the font size unless noted:
	// edgecolor, facecolor (colors), borderpad, labelspacing, handlelength,
	// handletextpad, columnspacing and title_fontsize (points).
	Extra map[string]any
}

const (
	defaultMarkerSize = 6.0
	defaultLineWidth  = 1.5
	defaultFontSize   = 20.0
)

// dashPatterns are given in units of the line width.
var dashPatterns = map[string][]float64{
	"-":  nil,
	"--": {3.7, 1.6},
	"-.": {6.4, 1.6, 1.0, 1.6},
	":":  {1.0, 1.65},
}

// markStyle is a resolved Style.
type markStyle struct {
	line  draw.LineStyle  // zero width disables the line
	glyph draw.GlyphStyle // nil shape disables the marker
	step  plotter.StepKind
	fill  color.Color

	errLine  draw.LineStyle
	capWidth vg.Length
}

// resolve turns a Style into concrete drawing styles. The cycle color is
// only consumed when no color is given.
func (s *Style) resolve(next func() color.Color, defMarker, defLineStyle string) (markStyle, error) {
	if s == nil {
		s = &Style{}
	}

	var col color.Color
	if s.Color != "" {
		var err error
		if col, err = ParseColor(s.Color); err != nil {
			return markStyle{}, err
		}
	} else {
		col = next()
	}
	if s.Alpha != 0.0 {
		if s.Alpha < 0.0 || 1.0 < s.Alpha {
			return markStyle{}, fmt.Errorf("alpha must be in [0,1]: %v", s.Alpha)
		}
		col = withAlpha(col, s.Alpha)
	}

	marker := s.Marker
	if marker == "" {
		marker = defMarker
	}
	shape, err := markerGlyph(marker, !s.Hollow)
	if err != nil {
		return markStyle{}, err
	}
	size := s.MarkerSize
	if size < 0.0 {
		return markStyle{}, fmt.Errorf("marker size must be positive: %v", size)
	} else if size == 0.0 {
		size = defaultMarkerSize
	}

	lineStyle := s.LineStyle
	if lineStyle == "" {
		lineStyle = defLineStyle
	}
	width := s.LineWidth
	if width < 0.0 {
		return markStyle{}, fmt.Errorf("line width must be positive: %v", width)
	} else if width == 0.0 {
		width = defaultLineWidth
	}
	line, err := lineStyleOf(lineStyle, width, col)
	if err != nil {
		return markStyle{}, err
	}

	if s.CapSize < 0.0 {
		return markStyle{}, fmt.Errorf("cap size must be positive: %v", s.CapSize)
	}
	ms := markStyle{
		line: line,
		glyph: draw.GlyphStyle{
			Color:  col,
			Radius: vg.Points(size / 2.0),
			Shape:  shape,
		},
		errLine:  draw.LineStyle{Color: col, Width: vg.Points(width)},
		capWidth: vg.Points(s.CapSize),
	}
	if err := ms.applyExtra(s.Extra); err != nil {
		return markStyle{}, err
	}
	return ms, nil
}

func (ms *markStyle) applyExtra(extra map[string]any) error {
	for _, key := range sortedKeys(extra) {
		val := extra[key]
		switch key {
		case "ecolor":
			col, err := extraColor(key, val)
			if err != nil {
				return err
			}
			ms.errLine.Color = col
		case "elinewidth":
			w, err := extraFloat(key, val)
			if err != nil {
				return err
			} else if w < 0.0 {
				return fmt.Errorf("%s must be positive: %v", key, w)
			}
			ms.errLine.Width = vg.Points(w)
		case "capsize":
			w, err := extraFloat(key, val)
			if err != nil {
				return err
			} else if w < 0.0 {
				return fmt.Errorf("%s must be positive: %v", key, w)
			}
			ms.capWidth = vg.Points(w)
		case "drawstyle":
			s, err := extraString(key, val)
			if err != nil {
				return err
			}
			switch s {
			case "default":
				ms.step = plotter.NoStep
			case "steps", "steps-pre":
				ms.step = plotter.PreStep
			case "steps-mid":
				ms.step = plotter.MidStep
			case "steps-post":
				ms.step = plotter.PostStep
			default:
				return fmt.Errorf("unknown drawstyle: %s", s)
			}
		case "fillcolor":
			col, err := extraColor(key, val)
			if err != nil {
				return err
			}
			ms.fill = col
		default:
			return fmt.Errorf("unknown option: %s", key)
		}
	}
	return nil
}

// lineStyleOf returns the line style for a line style code, a zero width
// line for "none".
func lineStyleOf(code string, width float64, col color.Color) (draw.LineStyle, error) {
	switch code {
	case "none", "None", " ":
		return draw.LineStyle{}, nil
	}
	pattern, ok := dashPatterns[code]
	if !ok {
		return draw.LineStyle{}, fmt.Errorf("unknown line style: %q", code)
	}
	var dashes []vg.Length
	if pattern != nil {
		dashes = make([]vg.Length, len(pattern))
		for i, d := range pattern {
			dashes[i] = vg.Points(d * width)
		}
	}
	return draw.LineStyle{
		Color:  col,
		Width:  vg.Points(width),
		Dashes: dashes,
	}, nil
}

// textAlign maps alignment names to gonum alignments. Gonum aligns the
// bottom of text on its baseline, so bottom alignment also reports that the
// text must be raised by the font descent.
func textAlign(va, ha string) (xalign, yalign float64, raise bool, err error) {
	switch ha {
	case "", "center":
		xalign = -0.5
	case "left":
		xalign = 0.0
	case "right":
		xalign = -1.0
	default:
		return 0.0, 0.0, false, fmt.Errorf("unknown horizontal alignment: %s", ha)
	}
	switch va {
	case "", "center":
		yalign = -0.5
	case "top":
		yalign = -1.0
	case "bottom":
		raise = true
	case "baseline":
	default:
		return 0.0, 0.0, false, fmt.Errorf("unknown vertical alignment: %s", va)
	}
	return xalign, yalign, raise, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func extraFloat(key string, val any) (float64, error) {
	var f float64
	switch v := val.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0.0, fmt.Errorf("%s must be a number: %v", key, val)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0, fmt.Errorf("%s must be finite: %v", key, val)
	}
	return f, nil
}

func extraString(key string, val any) (string, error) {
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string: %v", key, val)
	}
	return strings.TrimSpace(s), nil
}

func extraColor(key string, val any) (color.Color, error) {
	switch v := val.(type) {
	case color.Color:
		return v, nil
	case string:
		col, err := ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return col, nil
	}
	return nil, fmt.Errorf("%s must be a color: %v", key, val)
}
