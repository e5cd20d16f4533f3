package ctplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// polygonGlyph draws a regular polygon or star inscribed in the glyph radius.
type polygonGlyph struct {
	n      int     // number of corners
	rot    float64 // rotation of the first corner from the positive y-axis in radians
	inner  float64 // inner radius ratio for stars, zero for polygons
	aspect float64 // horizontal scale, zero means one
	filled bool
	edge   vg.Length
}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	aspect := g.aspect
	if aspect == 0.0 {
		aspect = 1.0
	}
	n := g.n
	if g.inner != 0.0 {
		n *= 2
	}

	p := make(vg.Path, 0, n+1)
	for i := 0; i < n; i++ {
		r := sty.Radius
		if g.inner != 0.0 && i%2 == 1 {
			r *= vg.Length(g.inner)
		}
		sin, cos := math.Sincos(g.rot + 2.0*math.Pi*float64(i)/float64(n))
		corner := vg.Point{X: pt.X - r*vg.Length(sin*aspect), Y: pt.Y + r*vg.Length(cos)}
		if i == 0 {
			p.Move(corner)
		} else {
			p.Line(corner)
		}
	}
	p.Close()

	if g.filled {
		c.Fill(p)
		return
	}
	width := g.edge
	if width == 0 {
		width = vg.Points(0.5)
	}
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: width})
	c.Stroke(p)
}

// dotGlyph is a small filled circle.
type dotGlyph struct{}

// DrawGlyph implements the draw.GlyphDrawer interface.
func (dotGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	sty.Radius /= 2
	draw.CircleGlyph{}.DrawGlyph(c, sty, pt)
}

// markerGlyph returns the glyph drawer for a marker code. A nil drawer means
// no marker.
func markerGlyph(marker string, filled bool) (draw.GlyphDrawer, error) {
	switch marker {
	case "", "none", "None", " ":
		return nil, nil
	case "o":
		if filled {
			return draw.CircleGlyph{}, nil
		}
		return draw.RingGlyph{}, nil
	case ".":
		return dotGlyph{}, nil
	case "s":
		if filled {
			return draw.BoxGlyph{}, nil
		}
		return draw.SquareGlyph{}, nil
	case "^":
		if filled {
			return draw.PyramidGlyph{}, nil
		}
		return draw.TriangleGlyph{}, nil
	case "v":
		return polygonGlyph{n: 3, rot: math.Pi, filled: filled}, nil
	case "<":
		return polygonGlyph{n: 3, rot: math.Pi / 2.0, filled: filled}, nil
	case ">":
		return polygonGlyph{n: 3, rot: -math.Pi / 2.0, filled: filled}, nil
	case "D":
		return polygonGlyph{n: 4, filled: filled}, nil
	case "d":
		return polygonGlyph{n: 4, aspect: 0.6, filled: filled}, nil
	case "p":
		return polygonGlyph{n: 5, filled: filled}, nil
	case "h":
		return polygonGlyph{n: 6, filled: filled}, nil
	case "*":
		return polygonGlyph{n: 5, inner: 0.4, filled: filled}, nil
	case "+":
		return draw.PlusGlyph{}, nil
	case "x":
		return draw.CrossGlyph{}, nil
	}
	return nil, fmt.Errorf("unknown marker: %q", marker)
}
