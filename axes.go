package ctplot

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// baseFontSize is the size of tick labels, axis labels and offset texts
// until a figure is decorated.
const baseFontSize = 10.0

// margin is the fraction of the data range added on both sides of an axis
// whose limits are not fixed.
const margin = 0.05

// Axes is the single plotting region of a figure. It holds the marks, texts
// and legends in the order they were added and draws them on top of the
// axes and grid lines.
type Axes struct {
	plot    *plot.Plot
	handler text.Handler
	tex     bool

	xticks, yticks       *tickMarker
	minorGrid, majorGrid *gridLines

	elements []plot.Plotter
	labelled []legendEntry
	texts    []*Text
	legends  []*Legend // all legend children in creation order
	legend   *Legend   // current legend
	overlays []*Legend

	xlim, ylim   *[2]float64
	xoffs, yoffs text.Style

	cycle int
}

func newAxes(hdlr text.Handler, tex bool) *Axes {
	p := plot.New()
	p.BackgroundColor = nil
	p.TextHandler = hdlr
	p.Title.TextStyle.Handler = hdlr
	p.Legend.TextStyle.Handler = hdlr

	a := &Axes{
		plot:    p,
		handler: hdlr,
		tex:     tex,
		xticks:  newTickMarker(tex),
		yticks:  newTickMarker(tex),
	}
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Padding = 0
		axis.Label.TextStyle.Handler = hdlr
		axis.Label.TextStyle.Font = font.From(DefaultFont, baseFontSize)
		axis.Tick.Label.Handler = hdlr
		axis.Tick.Label.Font = font.From(DefaultFont, baseFontSize)
	}
	p.X.Tick.Marker = a.xticks
	p.Y.Tick.Marker = a.yticks

	a.xoffs = text.Style{
		Color:   color.Black,
		Font:    font.From(DefaultFont, baseFontSize),
		XAlign:  text.XLeft,
		YAlign:  text.YTop,
		Handler: hdlr,
	}
	a.yoffs = a.xoffs
	a.yoffs.YAlign = text.YBottom
	return a
}

// setGrid adds the minor and major grid lines and turns minor ticks on.
func (a *Axes) setGrid(minor, major draw.LineStyle) {
	a.minorGrid = &gridLines{minor: true, style: minor}
	a.majorGrid = &gridLines{minor: false, style: major}
	a.plot.Add(a.minorGrid, a.majorGrid)
	a.SetMinorTicks(true)
}

// SetMinorTicks turns the minor tick marks on or off.
func (a *Axes) SetMinorTicks(on bool) {
	a.xticks.minor = on
	a.yticks.minor = on
}

// MinorTicks reports whether minor tick marks are drawn.
func (a *Axes) MinorTicks() bool {
	return a.xticks.minor && a.yticks.minor
}

// Grid reports whether the minor and the major grid lines are present.
func (a *Axes) Grid() (minor, major bool) {
	return a.minorGrid != nil, a.majorGrid != nil
}

// Plot returns the underlying gonum plot.
func (a *Axes) Plot() *plot.Plot {
	return a.plot
}

// nextColor returns the next color of the property cycle.
func (a *Axes) nextColor() color.Color {
	col := MustParseColor(cycleColors[a.cycle%len(cycleColors)])
	a.cycle++
	return col
}

// Add adds a data element. Elements with a label and a thumbnail show up
// in automatic legends.
func (a *Axes) Add(element plot.Plotter, label string) {
	a.plot.Add(element)
	a.elements = append(a.elements, element)
	if thumb, ok := element.(plot.Thumbnailer); ok && label != "" && label[0] != '_' {
		a.labelled = append(a.labelled, legendEntry{label: label, handle: thumb})
	}
}

// Elements returns the data elements in insertion order.
func (a *Axes) Elements() []plot.Plotter {
	return a.elements
}

// AddText adds a text artist.
func (a *Axes) AddText(t *Text) {
	a.texts = append(a.texts, t)
}

// Texts returns the text artists in insertion order.
func (a *Axes) Texts() []*Text {
	return a.texts
}

// addLegend makes the legend a child of the region. The first legend takes
// the current legend slot, later legends are only drawn when attached as
// overlay artists.
func (a *Axes) addLegend(l *Legend) {
	a.legends = append(a.legends, l)
	if a.legend == nil {
		a.legend = l
	}
}

// AddArtist attaches a legend as an overlay artist so that it is drawn next
// to the current legend.
func (a *Axes) AddArtist(l *Legend) {
	for _, o := range a.overlays {
		if o == l {
			return
		}
	}
	l.overlay = true
	a.overlays = append(a.overlays, l)
}

// Legends returns all legend children in creation order.
func (a *Axes) Legends() []*Legend {
	return a.legends
}

// Legend returns the current legend, or nil.
func (a *Axes) Legend() *Legend {
	return a.legend
}

// Overlays returns the legends attached as overlay artists.
func (a *Axes) Overlays() []*Legend {
	return a.overlays
}

// SetXLim fixes the range of the x-axis.
func (a *Axes) SetXLim(min, max float64) {
	a.xlim = &[2]float64{min, max}
}

// SetYLim fixes the range of the y-axis.
func (a *Axes) SetYLim(min, max float64) {
	a.ylim = &[2]float64{min, max}
}

// XLim returns the range of the x-axis as it is drawn.
func (a *Axes) XLim() (float64, float64) {
	return axisRange(a.plot.X, a.xlim)
}

// YLim returns the range of the y-axis as it is drawn.
func (a *Axes) YLim() (float64, float64) {
	return axisRange(a.plot.Y, a.ylim)
}

// axisRange returns the fixed limits or the data range widened by the
// margins, with the degenerate cases handled the way gonum does.
func axisRange(axis plot.Axis, lim *[2]float64) (float64, float64) {
	if lim != nil {
		min, max := lim[0], lim[1]
		if max < min {
			min, max = max, min
		}
		if min == max {
			min--
			max++
		}
		return min, max
	}

	min, max := axis.Min, axis.Max
	if math.IsInf(min, 0) {
		min = 0.0
	}
	if math.IsInf(max, 0) {
		max = 0.0
	}
	if max < min {
		min, max = max, min
	}
	if min == max {
		return min - 1.0, max + 1.0
	}
	d := (max - min) * margin
	return min - d, max + d
}

// Draw draws the region onto the canvas. Grid lines and data elements are
// drawn in insertion order on top of the axes, followed by texts, the
// current legend, the overlay legends and the offset texts.
func (a *Axes) Draw(c draw.Canvas) {
	x, y := a.plot.X, a.plot.Y
	defer func() {
		a.plot.X.Min, a.plot.X.Max = x.Min, x.Max
		a.plot.Y.Min, a.plot.Y.Max = y.Min, y.Max
	}()
	a.plot.X.Min, a.plot.X.Max = a.XLim()
	a.plot.Y.Min, a.plot.Y.Max = a.YLim()

	a.xticks.Ticks(a.plot.X.Min, a.plot.X.Max)
	a.yticks.Ticks(a.plot.Y.Min, a.plot.Y.Max)
	xoffs, yoffs := a.xticks.offsetText(), a.yticks.offsetText()
	if yoffs != "" {
		c.Max.Y -= a.yoffs.Rectangle(yoffs).Size().Y + a.yoffs.Font.Size/2
	}
	if xoffs != "" {
		c.Max.X -= a.xoffs.Rectangle(xoffs).Size().X + a.xoffs.Font.Size/2
	}

	a.plot.Draw(c)
	dc := a.plot.DataCanvas(c)
	for _, t := range a.texts {
		t.Plot(dc, a.plot)
	}
	if a.legend != nil {
		a.legend.Plot(dc, a.plot)
	}
	for _, l := range a.overlays {
		if l != a.legend {
			l.Plot(dc, a.plot)
		}
	}

	if yoffs != "" {
		pad := a.yoffs.Font.Size / 4
		c.FillText(a.yoffs, vg.Point{X: dc.Min.X, Y: dc.Max.Y + pad}, yoffs)
	}
	if xoffs != "" {
		pad := a.xoffs.Font.Size / 4
		c.FillText(a.xoffs, vg.Point{X: dc.Max.X + pad, Y: dc.Min.Y - pad}, xoffs)
	}
}
