package ctplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrClosed is returned when a figure is used after its output step.
var ErrClosed = errors.New("figure is closed")

// Figure is a canvas with a single plotting region and styling fixed at
// creation. A Figure is not safe for concurrent use. After Output or Close
// every method returns ErrClosed.
type Figure struct {
	cfg    Config
	canvas *canvas.Canvas
	axes   *Axes
}

// New returns a new figure, a nil config selects DefaultConfig. The text
// engine chosen by Setup at the time of the call is used for all text.
func New(cfg *Config) (*Figure, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hdlr, err := textHandler()
	if err != nil {
		return nil, err
	}
	setupMu.Lock()
	tex := textEngine == TeX
	setupMu.Unlock()

	f := &Figure{
		cfg:    *cfg,
		canvas: canvas.New(cfg.Width*mmPerIn, cfg.Height*mmPerIn),
		axes:   newAxes(hdlr, tex),
	}
	if cfg.Grid {
		minor := draw.LineStyle{
			Color:  MustParseColor(cfg.MinorGridColor),
			Width:  vg.Points(cfg.MinorGridWidth),
			Dashes: []vg.Length{vg.Points(cfg.MinorGridWidth), vg.Points(1.65 * cfg.MinorGridWidth)},
		}
		major := draw.LineStyle{
			Color: MustParseColor(cfg.MajorGridColor),
			Width: vg.Points(cfg.MajorGridWidth),
		}
		f.axes.setGrid(minor, major)
	}
	return f, nil
}

// Config returns the configuration of the figure.
func (f *Figure) Config() Config {
	return f.cfg
}

// Axes returns the plotting region.
func (f *Figure) Axes() *Axes {
	return f.axes
}

// Closed reports whether the figure has been released.
func (f *Figure) Closed() bool {
	return f.canvas == nil
}

// ColorPalette returns n colors of the named palette, see the package
// function ColorPalette.
func (f *Figure) ColorPalette(name string, n int, opts *PaletteOptions) ([]color.Color, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	return ColorPalette(name, n, opts)
}

func xys(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x and y must be the same length: %d != %d", len(x), len(y))
	}
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts, nil
}

// Scatter draws markers at the points, by default filled circles.
func (f *Figure) Scatter(x, y []float64, style *Style) (*plotter.Scatter, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	pts, err := xys(x, y)
	if err != nil {
		return nil, err
	}
	ms, err := style.resolve(f.axes.nextColor, "o", "none")
	if err != nil {
		return nil, err
	}
	if ms.glyph.Shape == nil {
		return nil, fmt.Errorf("scatter needs a marker")
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = ms.glyph
	f.axes.Add(s, style.label())
	return s, nil
}

// Line draws a line through the points, by default solid without markers.
func (f *Figure) Line(x, y []float64, style *Style) (*Line, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	pts, err := xys(x, y)
	if err != nil {
		return nil, err
	}
	ms, err := style.resolve(f.axes.nextColor, "none", "-")
	if err != nil {
		return nil, err
	}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle = ms.line
	l.StepStyle = ms.step
	l.FillColor = ms.fill
	line := &Line{Line: l}
	if ms.glyph.Shape != nil {
		if line.Points, err = plotter.NewScatter(pts); err != nil {
			return nil, err
		}
		line.Points.GlyphStyle = ms.glyph
	}
	f.axes.Add(line, style.label())
	return line, nil
}

// Line is a line with optional markers at its points.
type Line struct {
	*plotter.Line
	Points *plotter.Scatter
}

// Plot implements the plot.Plotter interface.
func (l *Line) Plot(c draw.Canvas, p *plot.Plot) {
	l.Line.Plot(c, p)
	if l.Points != nil {
		l.Points.Plot(c, p)
	}
}

// GlyphBoxes implements the plot.GlyphBoxer interface.
func (l *Line) GlyphBoxes(p *plot.Plot) []plot.GlyphBox {
	if l.Points == nil {
		return nil
	}
	return l.Points.GlyphBoxes(p)
}

// Thumbnail implements the plot.Thumbnailer interface.
func (l *Line) Thumbnail(c *draw.Canvas) {
	l.Line.Thumbnail(c)
	if l.Points != nil {
		l.Points.Thumbnail(c)
	}
}

// ErrorBar draws points with symmetric error bars given by Style.XErr and
// Style.YErr, connected by a solid line unless the line style is "none".
func (f *Figure) ErrorBar(x, y []float64, style *Style) (*ErrorBar, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	pts, err := xys(x, y)
	if err != nil {
		return nil, err
	}
	var xerr, yerr []float64
	if style != nil {
		xerr, yerr = style.XErr, style.YErr
	}
	if xerr != nil && len(xerr) != len(x) {
		return nil, fmt.Errorf("x errors must be the same length as x: %d != %d", len(xerr), len(x))
	} else if yerr != nil && len(yerr) != len(y) {
		return nil, fmt.Errorf("y errors must be the same length as y: %d != %d", len(yerr), len(y))
	}
	ms, err := style.resolve(f.axes.nextColor, "none", "-")
	if err != nil {
		return nil, err
	}

	e, err := newErrorBar(pts, xerr, yerr, ms)
	if err != nil {
		return nil, err
	}
	f.axes.Add(e, style.label())
	return e, nil
}

func (s *Style) label() string {
	if s == nil {
		return ""
	}
	return s.Label
}

// Text places text at region-relative coordinates, where (0,0) and (1,1) are
// the corners of the plotting region. By default the text is centered on the
// position with a font size of 20 points.
func (f *Figure) Text(x, y float64, s string, style *TextStyle) error {
	if f.Closed() {
		return ErrClosed
	}
	t, err := newText(x, y, s, style, f.axes.handler)
	if err != nil {
		return err
	}
	f.axes.AddText(t)
	return nil
}

// Legend adds a legend of all labelled elements anchored at region-relative
// coordinates (x,y). By default the legend is centered on the anchor, has a
// single column, no frame and a font size of 20 points.
func (f *Figure) Legend(x, y float64, style *LegendStyle) (*Legend, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	l, err := newLegend(x, y, style, f.axes.handler, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range f.axes.labelled {
		l.Add(e.label, e.handle)
	}
	f.addLegend(l)
	return l, nil
}

// SpecialLegend adds a legend with explicit handles and labels. A Tuple
// handle groups several marks under one label. A nil handler map selects a
// new DefaultHandlerMap.
func (f *Figure) SpecialLegend(x, y float64, handles []plot.Thumbnailer, labels []string, hm HandlerMap, style *LegendStyle) (*Legend, error) {
	if f.Closed() {
		return nil, ErrClosed
	} else if len(handles) != len(labels) {
		return nil, fmt.Errorf("handles and labels must be the same length: %d != %d", len(handles), len(labels))
	}
	l, err := newLegend(x, y, style, f.axes.handler, hm)
	if err != nil {
		return nil, err
	}
	for i, handle := range handles {
		if handle == nil {
			return nil, fmt.Errorf("legend handle %d is nil", i)
		}
		l.Add(labels[i], handle)
	}
	f.addLegend(l)
	return l, nil
}

// addLegend adds the legend to the region and attaches it as an overlay
// artist when the region holds more than one legend afterwards, so that
// earlier legends stay visible.
func (f *Figure) addLegend(l *Legend) {
	f.axes.addLegend(l)
	if 1 < len(f.axes.Legends()) {
		f.axes.AddArtist(l)
	}
}

// DecorateOption sets axis limits or labels, see Decorate.
type DecorateOption func(*Axes, *Config) error

// XLim fixes the range of the x-axis.
func XLim(min, max float64) DecorateOption {
	return func(a *Axes, _ *Config) error {
		if err := checkLim(min, max); err != nil {
			return fmt.Errorf("x limits: %w", err)
		}
		a.SetXLim(min, max)
		return nil
	}
}

// YLim fixes the range of the y-axis.
func YLim(min, max float64) DecorateOption {
	return func(a *Axes, _ *Config) error {
		if err := checkLim(min, max); err != nil {
			return fmt.Errorf("y limits: %w", err)
		}
		a.SetYLim(min, max)
		return nil
	}
}

func checkLim(min, max float64) error {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return fmt.Errorf("must be finite: (%v,%v)", min, max)
	}
	return nil
}

// XLabel sets the label of the x-axis in the configured x label size.
func XLabel(s string) DecorateOption {
	return func(a *Axes, cfg *Config) error {
		a.plot.X.Label.Text = s
		a.plot.X.Label.TextStyle.Font.Size = vg.Points(cfg.XLabelSize)
		return nil
	}
}

// YLabel sets the label of the y-axis in the configured y label size.
func YLabel(s string) DecorateOption {
	return func(a *Axes, cfg *Config) error {
		a.plot.Y.Label.Text = s
		a.plot.Y.Label.TextStyle.Font.Size = vg.Points(cfg.YLabelSize)
		return nil
	}
}

// Decorate applies the options and then always sets the tick label and
// offset text font sizes of both axes to the configured sizes.
func (f *Figure) Decorate(opts ...DecorateOption) error {
	if f.Closed() {
		return ErrClosed
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		} else if err := opt(f.axes, &f.cfg); err != nil {
			return err
		}
	}

	a := f.axes
	a.plot.X.Tick.Label.Font.Size = vg.Points(f.cfg.XTickLabelSize)
	a.plot.Y.Tick.Label.Font.Size = vg.Points(f.cfg.YTickLabelSize)
	a.xoffs.Font.Size = vg.Points(f.cfg.XOffsetSize)
	a.yoffs.Font.Size = vg.Points(f.cfg.YOffsetSize)
	return nil
}
