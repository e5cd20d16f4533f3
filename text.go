package ctplot

import (
	"fmt"
	"image/color"
	"math"

	stdfnt "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Text is a text artist placed at region-relative coordinates.
type Text struct {
	X, Y  float64
	Text  string
	Style text.Style

	raise bool // align the bottom of the descent instead of the baseline
}

func newText(x, y float64, s string, style *TextStyle, hdlr text.Handler) (*Text, error) {
	if style == nil {
		style = &TextStyle{}
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return nil, fmt.Errorf("text position must be finite: (%v,%v)", x, y)
	}
	xalign, yalign, raise, err := textAlign(style.VA, style.HA)
	if err != nil {
		return nil, err
	}

	size := style.FontSize
	if size < 0.0 {
		return nil, fmt.Errorf("font size must be positive: %v", size)
	} else if size == 0.0 {
		size = defaultFontSize
	}

	var col color.Color = color.Black
	if style.Color != "" {
		if col, err = ParseColor(style.Color); err != nil {
			return nil, err
		}
	}

	fnt := font.From(DefaultFont, vg.Points(size))
	for _, key := range sortedKeys(style.Extra) {
		val := style.Extra[key]
		switch key {
		case "alpha":
			alpha, err := extraFloat(key, val)
			if err != nil {
				return nil, err
			} else if alpha < 0.0 || 1.0 < alpha {
				return nil, fmt.Errorf("alpha must be in [0,1]: %v", alpha)
			}
			col = withAlpha(col, alpha)
		case "fontweight":
			s, err := extraString(key, val)
			if err != nil {
				return nil, err
			}
			switch s {
			case "normal":
				fnt.Weight = stdfnt.WeightNormal
			case "bold":
				fnt.Weight = stdfnt.WeightBold
			default:
				return nil, fmt.Errorf("unknown font weight: %s", s)
			}
		case "fontstyle":
			s, err := extraString(key, val)
			if err != nil {
				return nil, err
			}
			switch s {
			case "normal":
				fnt.Style = stdfnt.StyleNormal
			case "italic", "oblique":
				fnt.Style = stdfnt.StyleItalic
			default:
				return nil, fmt.Errorf("unknown font style: %s", s)
			}
		default:
			return nil, fmt.Errorf("unknown option: %s", key)
		}
	}

	return &Text{
		X:    x,
		Y:    y,
		Text: s,
		Style: text.Style{
			Color:    col,
			Font:     fnt,
			Rotation: style.Rotation * math.Pi / 180.0,
			XAlign:   text.XAlignment(xalign),
			YAlign:   text.YAlignment(yalign),
			Handler:  hdlr,
		},
		raise: raise,
	}, nil
}

// Plot implements the plot.Plotter interface. The canvas is the data area of
// the region.
func (t *Text) Plot(c draw.Canvas, _ *plot.Plot) {
	pt := vg.Point{X: c.X(t.X), Y: c.Y(t.Y)}
	if t.raise {
		pt.Y += t.Style.FontExtents().Descent
	}
	c.FillText(t.Style, pt, t.Text)
}
