package ctplot

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrorBar is a data series with optional error bars in x and y, a
// connecting line and markers. Any of the parts may be absent.
type ErrorBar struct {
	Line   *plotter.Line
	Points *plotter.Scatter
	XBars  *plotter.XErrorBars
	YBars  *plotter.YErrorBars
}

type xyErrors struct {
	plotter.XYs
	plotter.XErrors
	plotter.YErrors
}

func newErrorBar(xys plotter.XYs, xerr, yerr []float64, ms markStyle) (*ErrorBar, error) {
	e := &ErrorBar{}
	if ms.line.Width != 0 {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		line.LineStyle = ms.line
		line.StepStyle = ms.step
		line.FillColor = ms.fill
		e.Line = line
	}
	if ms.glyph.Shape != nil {
		points, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		points.GlyphStyle = ms.glyph
		e.Points = points
	}

	data := xyErrors{XYs: xys}
	if xerr != nil {
		data.XErrors = plotter.XErrors(symmetricErrors(xerr))
		bars, err := plotter.NewXErrorBars(data)
		if err != nil {
			return nil, err
		}
		bars.LineStyle = ms.errLine
		bars.CapWidth = ms.capWidth
		e.XBars = bars
	}
	if yerr != nil {
		data.YErrors = plotter.YErrors(symmetricErrors(yerr))
		bars, err := plotter.NewYErrorBars(data)
		if err != nil {
			return nil, err
		}
		bars.LineStyle = ms.errLine
		bars.CapWidth = ms.capWidth
		e.YBars = bars
	}
	return e, nil
}

func symmetricErrors(errs []float64) plotter.Errors {
	out := make(plotter.Errors, len(errs))
	for i, err := range errs {
		out[i].Low = math.Abs(err)
		out[i].High = math.Abs(err)
	}
	return out
}

// Plot implements the plot.Plotter interface. Error bars are drawn below the
// line and the markers.
func (e *ErrorBar) Plot(c draw.Canvas, p *plot.Plot) {
	if e.XBars != nil {
		e.XBars.Plot(c, p)
	}
	if e.YBars != nil {
		e.YBars.Plot(c, p)
	}
	if e.Line != nil {
		e.Line.Plot(c, p)
	}
	if e.Points != nil {
		e.Points.Plot(c, p)
	}
}

// DataRange implements the plot.DataRanger interface.
func (e *ErrorBar) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, r := range e.rangers() {
		x0, x1, y0, y1 := r.DataRange()
		xmin, xmax = math.Min(xmin, x0), math.Max(xmax, x1)
		ymin, ymax = math.Min(ymin, y0), math.Max(ymax, y1)
	}
	return
}

func (e *ErrorBar) rangers() []plot.DataRanger {
	var rs []plot.DataRanger
	if e.XBars != nil {
		rs = append(rs, e.XBars)
	}
	if e.YBars != nil {
		rs = append(rs, e.YBars)
	}
	if e.Line != nil {
		rs = append(rs, e.Line)
	}
	if e.Points != nil {
		rs = append(rs, e.Points)
	}
	return rs
}

// GlyphBoxes implements the plot.GlyphBoxer interface.
func (e *ErrorBar) GlyphBoxes(p *plot.Plot) []plot.GlyphBox {
	var boxes []plot.GlyphBox
	if e.XBars != nil {
		boxes = append(boxes, e.XBars.GlyphBoxes(p)...)
	}
	if e.YBars != nil {
		boxes = append(boxes, e.YBars.GlyphBoxes(p)...)
	}
	if e.Points != nil {
		boxes = append(boxes, e.Points.GlyphBoxes(p)...)
	}
	return boxes
}

// Thumbnail implements the plot.Thumbnailer interface.
func (e *ErrorBar) Thumbnail(c *draw.Canvas) {
	center := c.Center()
	if e.XBars != nil {
		w := (c.Max.X - c.Min.X) / 4
		c.StrokeLine2(e.XBars.LineStyle, center.X-w, center.Y, center.X+w, center.Y)
		e.drawCap(c, e.XBars.LineStyle, e.XBars.CapWidth, center.X-w, center.Y, true)
		e.drawCap(c, e.XBars.LineStyle, e.XBars.CapWidth, center.X+w, center.Y, true)
	}
	if e.YBars != nil {
		h := (c.Max.Y - c.Min.Y) / 2
		c.StrokeLine2(e.YBars.LineStyle, center.X, center.Y-h, center.X, center.Y+h)
		e.drawCap(c, e.YBars.LineStyle, e.YBars.CapWidth, center.X, center.Y-h, false)
		e.drawCap(c, e.YBars.LineStyle, e.YBars.CapWidth, center.X, center.Y+h, false)
	}
	if e.Line != nil {
		c.StrokeLine2(e.Line.LineStyle, c.Min.X, center.Y, c.Max.X, center.Y)
	}
	if e.Points != nil {
		e.Points.Thumbnail(c)
	}
}

func (e *ErrorBar) drawCap(c *draw.Canvas, sty draw.LineStyle, width, x, y vg.Length, vertical bool) {
	if width == 0 {
		return
	} else if vertical {
		c.StrokeLine2(sty, x, y-width/2, x, y+width/2)
		return
	}
	c.StrokeLine2(sty, x-width/2, y, x+width/2, y)
}
