package ctplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// gridLines draws vertical and horizontal lines at either the minor or the
// major ticks of both axes.
type gridLines struct {
	minor bool
	style draw.LineStyle
}

// Plot implements the plot.Plotter interface.
func (g *gridLines) Plot(c draw.Canvas, p *plot.Plot) {
	if g.style.Color == nil || g.style.Width <= 0 {
		return
	}
	trX, trY := p.Transforms(&c)
	for _, tick := range axisTicks(&p.X) {
		if tick.IsMinor() != g.minor {
			continue
		}
		if x := trX(tick.Value); c.ContainsX(x) {
			c.StrokeLine2(g.style, x, c.Min.Y, x, c.Max.Y)
		}
	}
	for _, tick := range axisTicks(&p.Y) {
		if tick.IsMinor() != g.minor {
			continue
		}
		if y := trY(tick.Value); c.ContainsY(y) {
			c.StrokeLine2(g.style, c.Min.X, y, c.Max.X, y)
		}
	}
}

// axisTicks returns the ticks of an axis including the minor ticks.
func axisTicks(a *plot.Axis) []plot.Tick {
	if t, ok := a.Tick.Marker.(*tickMarker); ok {
		return t.allTicks(a.Min, a.Max)
	}
	return a.Tick.Marker.Ticks(a.Min, a.Max)
}
