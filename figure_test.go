package ctplot

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/test"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"
)

func newTestFigure(t *testing.T, cfg *Config) *Figure {
	t.Helper()
	fig, err := New(cfg)
	test.Error(t, err)
	return fig
}

// drawnStrings renders the region onto a recorder and returns all strings
// that were drawn.
func drawnStrings(fig *Figure) []string {
	rec := &recorder.Canvas{}
	fig.Axes().Draw(draw.NewCanvas(rec, 7.5*vg.Inch, 4.5*vg.Inch))
	var strs []string
	for _, a := range rec.Actions {
		if fs, ok := a.(*recorder.FillString); ok {
			strs = append(strs, fs.String)
		}
	}
	return strs
}

func contains(strs []string, s string) bool {
	for _, str := range strs {
		if str == s {
			return true
		}
	}
	return false
}

func TestNewGrid(t *testing.T) {
	fig := newTestFigure(t, nil)
	minor, major := fig.Axes().Grid()
	test.That(t, minor, "minor grid")
	test.That(t, major, "major grid")
	test.That(t, fig.Axes().MinorTicks(), "minor ticks")
	test.That(t, !fig.Closed())

	cfg := DefaultConfig
	cfg.Grid = false
	fig = newTestFigure(t, &cfg)
	minor, major = fig.Axes().Grid()
	test.That(t, !minor, "minor grid")
	test.That(t, !major, "major grid")
	test.That(t, !fig.Axes().MinorTicks(), "minor ticks")
}

func TestNewInvalidConfig(t *testing.T) {
	var tts = []func(*Config){
		func(cfg *Config) { cfg.Width = 0.0 },
		func(cfg *Config) { cfg.Height = -1.0 },
		func(cfg *Config) { cfg.MinorGridColor = "notacolor" },
		func(cfg *Config) { cfg.XTickLabelSize = 0.0 },
		func(cfg *Config) { cfg.DPI = 0.0 },
	}
	for i, modify := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			cfg := DefaultConfig
			modify(&cfg)
			_, err := New(&cfg)
			test.That(t, err != nil)
		})
	}
}

func TestFigureMarks(t *testing.T) {
	fig := newTestFigure(t, nil)
	x := []float64{0.0, 1.0, 2.0, 3.0}
	y := []float64{1.0, 4.0, 9.0, 16.0}

	s, err := fig.Scatter(x, y, nil)
	test.Error(t, err)
	test.That(t, s != nil)
	test.T(t, len(fig.Axes().Elements()), 1)

	l, err := fig.Line(x, y, &Style{Marker: "s", LineStyle: "--"})
	test.Error(t, err)
	test.That(t, l != nil && l.Points != nil)
	test.T(t, len(fig.Axes().Elements()), 2)

	e, err := fig.ErrorBar(x, y, &Style{YErr: []float64{0.1, 0.2, 0.3, 0.4}, CapSize: 3.0})
	test.Error(t, err)
	test.That(t, e != nil && e.Line != nil && e.YBars != nil && e.XBars == nil)
	test.T(t, len(fig.Axes().Elements()), 3)

	elems := fig.Axes().Elements()
	test.T(t, elems[0], plot.Plotter(s))
	test.T(t, elems[1], plot.Plotter(l))
	test.T(t, elems[2], plot.Plotter(e))

	// default cycle colors in order
	test.String(t, ColorHex(s.GlyphStyle.Color), "#1f77b4")
	test.String(t, ColorHex(l.LineStyle.Color), "#ff7f0e")
	test.String(t, ColorHex(e.Line.LineStyle.Color), "#2ca02c")
}

func TestFigureMarkErrors(t *testing.T) {
	fig := newTestFigure(t, nil)
	x := []float64{0.0, 1.0}
	var tts = []struct {
		call func() error
		err  string
	}{
		{func() error { _, err := fig.Scatter(x, []float64{1.0}, nil); return err }, "same length"},
		{func() error { _, err := fig.Scatter(x, x, &Style{Marker: "none"}); return err }, "needs a marker"},
		{func() error { _, err := fig.Line(x, x, &Style{LineStyle: "~"}); return err }, "unknown line style"},
		{func() error { _, err := fig.Line(x, x, &Style{Color: "chartreuse-ish"}); return err }, "invalid color"},
		{func() error { _, err := fig.Line(x, x, &Style{Extra: map[string]any{"foo": 1}}); return err }, "unknown option: foo"},
		{func() error { _, err := fig.ErrorBar(x, x, &Style{XErr: []float64{1.0}}); return err }, "x errors"},
		{func() error { _, err := fig.ErrorBar(x, x, &Style{YErr: []float64{1.0, 2.0, 3.0}}); return err }, "y errors"},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			err := tt.call()
			test.That(t, err != nil, "expected error")
			test.That(t, strings.Contains(err.Error(), tt.err), err.Error())
		})
	}
	test.T(t, len(fig.Axes().Elements()), 0)
}

func TestFigureLegend(t *testing.T) {
	fig := newTestFigure(t, nil)
	x := []float64{0.0, 1.0, 2.0}
	_, err := fig.Line(x, x, &Style{Label: "first"})
	test.Error(t, err)
	_, err = fig.Scatter(x, x, &Style{Label: "_hidden"})
	test.Error(t, err)

	l1, err := fig.Legend(0.98, 0.98, &LegendStyle{Loc: "upper right"})
	test.Error(t, err)
	test.T(t, len(fig.Axes().Legends()), 1)
	test.T(t, l1.Labels(), []string{"first"})
	test.That(t, !l1.Overlay())
	test.T(t, fig.Axes().Legend(), l1)
	test.T(t, len(fig.Axes().Overlays()), 0)

	_, err = fig.ErrorBar(x, x, &Style{Label: "second", YErr: x})
	test.Error(t, err)
	l2, err := fig.Legend(0.02, 0.02, &LegendStyle{Loc: "lower left", FrameAlpha: 0.8})
	test.Error(t, err)
	test.T(t, len(fig.Axes().Legends()), 2)
	test.T(t, l2.Labels(), []string{"first", "second"})
	test.That(t, !l1.Overlay())
	test.That(t, l2.Overlay())
	test.T(t, fig.Axes().Legend(), l1)
	test.T(t, fig.Axes().Overlays(), []*Legend{l2})

	// both legends are drawn
	l1.Title = "one"
	l2.Title = "two"
	strs := drawnStrings(fig)
	test.That(t, contains(strs, "one"), "first legend drawn")
	test.That(t, contains(strs, "two"), "second legend drawn")
	test.That(t, contains(strs, "second"))
}

func TestFigureSpecialLegend(t *testing.T) {
	fig := newTestFigure(t, nil)
	x := []float64{0.0, 1.0, 2.0}
	a, err := fig.Scatter(x, x, nil)
	test.Error(t, err)
	b, err := fig.Line(x, x, nil)
	test.Error(t, err)

	_, err = fig.SpecialLegend(0.5, 0.5, []plot.Thumbnailer{a}, []string{"a", "b"}, nil, nil)
	test.That(t, err != nil, "length mismatch")
	_, err = fig.SpecialLegend(0.5, 0.5, []plot.Thumbnailer{a, nil}, []string{"a", "b"}, nil, nil)
	test.That(t, err != nil, "nil handle")
	test.T(t, len(fig.Axes().Legends()), 0)

	l1, err := fig.SpecialLegend(0.5, 0.5, []plot.Thumbnailer{Tuple{a, b}}, []string{"ab"}, nil, &LegendStyle{Title: "pairs"})
	test.Error(t, err)
	test.T(t, l1.Len(), 1)
	test.That(t, !l1.Overlay())
	_, ok := l1.HandlerMap.Handler(Tuple{a, b}).(*TupleHandler)
	test.That(t, ok, "default tuple handler")

	l2, err := fig.SpecialLegend(0.1, 0.1, []plot.Thumbnailer{a, b}, []string{"a", "b"}, HandlerMap{}, &LegendStyle{Loc: "lower left"})
	test.Error(t, err)
	test.That(t, l2.Overlay())
	test.T(t, len(fig.Axes().Legends()), 2)

	strs := drawnStrings(fig)
	test.That(t, contains(strs, "pairs"))
	test.That(t, contains(strs, "ab"))
	test.That(t, contains(strs, "a"))
	test.That(t, contains(strs, "b"))
}

func TestFigureText(t *testing.T) {
	fig := newTestFigure(t, nil)
	test.Error(t, fig.Text(0.5, 0.9, "note", &TextStyle{VA: "top", HA: "left", Color: "r"}))
	test.T(t, len(fig.Axes().Texts()), 1)
	test.Float(t, fig.Axes().Texts()[0].Style.Font.Size.Points(), defaultFontSize)
	test.That(t, contains(drawnStrings(fig), "note"))

	test.That(t, fig.Text(0.5, 0.5, "x", &TextStyle{VA: "middle"}) != nil)
	test.That(t, fig.Text(0.5, 0.5, "x", &TextStyle{Extra: map[string]any{"fontweight": "heavy"}}) != nil)
	test.T(t, len(fig.Axes().Texts()), 1)
}

func TestFigureDecorate(t *testing.T) {
	fig := newTestFigure(t, nil)
	a := fig.Axes()
	test.Float(t, a.Plot().X.Tick.Label.Font.Size.Points(), baseFontSize)
	test.Float(t, a.yoffs.Font.Size.Points(), baseFontSize)

	test.Error(t, fig.Decorate(XLim(0.0, 10.0), YLim(-1.0, 1.0), YLabel("y")))
	test.Error(t, fig.Decorate(XLabel("x")))

	xmin, xmax := a.XLim()
	test.Float(t, xmin, 0.0)
	test.Float(t, xmax, 10.0)
	ymin, ymax := a.YLim()
	test.Float(t, ymin, -1.0)
	test.Float(t, ymax, 1.0)
	test.String(t, a.Plot().X.Label.Text, "x")
	test.String(t, a.Plot().Y.Label.Text, "y")
	test.Float(t, a.Plot().X.Label.TextStyle.Font.Size.Points(), DefaultConfig.XLabelSize)
	test.Float(t, a.Plot().Y.Label.TextStyle.Font.Size.Points(), DefaultConfig.YLabelSize)

	// sizes are re-applied on every call
	a.Plot().X.Tick.Label.Font.Size = vg.Points(3.0)
	a.Plot().Y.Tick.Label.Font.Size = vg.Points(3.0)
	a.xoffs.Font.Size = vg.Points(3.0)
	test.Error(t, fig.Decorate())
	test.Float(t, a.Plot().X.Tick.Label.Font.Size.Points(), DefaultConfig.XTickLabelSize)
	test.Float(t, a.Plot().Y.Tick.Label.Font.Size.Points(), DefaultConfig.YTickLabelSize)
	test.Float(t, a.xoffs.Font.Size.Points(), DefaultConfig.XOffsetSize)
	test.Float(t, a.yoffs.Font.Size.Points(), DefaultConfig.YOffsetSize)
	test.String(t, a.Plot().X.Label.Text, "x")

	test.That(t, fig.Decorate(XLabel("z"), XLim(0.0, math.Inf(1))) != nil)
}

func TestFigureDataLimits(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 10.0}, []float64{5.0, 5.0}, nil)
	test.Error(t, err)

	xmin, xmax := fig.Axes().XLim()
	test.Float(t, xmin, -0.5)
	test.Float(t, xmax, 10.5)
	ymin, ymax := fig.Axes().YLim()
	test.Float(t, ymin, 4.0)
	test.Float(t, ymax, 6.0)

	fig.Axes().SetXLim(3.0, 1.0)
	xmin, xmax = fig.Axes().XLim()
	test.Float(t, xmin, 1.0)
	test.Float(t, xmax, 3.0)
}

func TestFigureOffsetText(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 1.0}, []float64{0.0, 3e7}, nil)
	test.Error(t, err)
	test.That(t, contains(drawnStrings(fig), "1e7"))
}

func TestFigureOutput(t *testing.T) {
	dir := t.TempDir()
	var tts = []string{"fig.svg", "fig.svgz", "fig.pdf", "fig.png", "fig.jpg", "fig.tex"}
	for i, name := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			fig := newTestFigure(t, nil)
			_, err := fig.Line([]float64{0.0, 1.0, 2.0}, []float64{0.0, 1.0, 4.0}, &Style{Label: "data"})
			test.Error(t, err)
			_, err = fig.Legend(0.9, 0.9, nil)
			test.Error(t, err)
			test.Error(t, fig.Decorate(XLabel("x"), YLabel("y")))

			filename := filepath.Join(dir, name)
			test.Error(t, fig.Output(true, false, filename))
			info, err := os.Stat(filename)
			test.Error(t, err)
			test.That(t, 0 < info.Size(), "empty file")
			test.That(t, fig.Closed())
		})
	}
}

func TestTightFit(t *testing.T) {
	c := canvas.New(100.0, 80.0)
	ctx := canvas.NewContext(c)
	ctx.DrawPath(30.0, 40.0, canvas.Rectangle(20.0, 10.0))

	out := tightFit(c)
	test.Float(t, out.W, 20.0+2.0*tightPad)
	test.Float(t, out.H, 10.0+2.0*tightPad)
}

func TestFigureOutputCropped(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 1.0, 2.0}, []float64{0.0, 1.0, 4.0}, nil)
	test.Error(t, err)

	c, err := fig.render()
	test.Error(t, err)
	test.That(t, 2.0*tightPad < c.W && 2.0*tightPad < c.H, "no content")

	filename := filepath.Join(t.TempDir(), "fig.png")
	test.Error(t, fig.Output(true, false, filename))
	r, err := os.Open(filename)
	test.Error(t, err)
	defer r.Close()
	cfg, _, err := image.DecodeConfig(r)
	test.Error(t, err)
	dpmm := fig.cfg.DPI / mmPerIn
	test.FloatDiff(t, float64(cfg.Width), c.W*dpmm, 1.0)
	test.FloatDiff(t, float64(cfg.Height), c.H*dpmm, 1.0)
}

func TestFigureOutputWriteError(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 1.0}, []float64{0.0, 1.0}, nil)
	test.Error(t, err)

	filename := filepath.Join(t.TempDir(), "fig.xyz")
	test.That(t, fig.Output(true, false, filename) != nil)
	_, err = os.Stat(filename)
	test.That(t, os.IsNotExist(err), "file left behind")
	test.That(t, fig.Closed())
}

func TestFigureOutputNothing(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Scatter([]float64{1.0}, []float64{1.0}, nil)
	test.Error(t, err)
	test.Error(t, fig.Output(false, false, ""))
	test.That(t, fig.Closed())
}

func TestFigureOutputEmptyFilename(t *testing.T) {
	fig := newTestFigure(t, nil)
	test.That(t, fig.Output(true, false, "") != nil)
	test.That(t, fig.Closed())
}

func TestFigureShow(t *testing.T) {
	var opened string
	open := openFile
	openFile = func(name string) error {
		opened = name
		return nil
	}
	defer func() { openFile = open }()

	fig := newTestFigure(t, nil)
	_, err := fig.Scatter([]float64{0.0, 1.0}, []float64{0.0, 1.0}, nil)
	test.Error(t, err)
	test.Error(t, fig.Output(false, true, ""))
	test.That(t, opened != "", "nothing opened")
	defer os.Remove(opened)

	b, err := os.ReadFile(opened)
	test.Error(t, err)
	test.That(t, bytes.Contains(b, []byte("<svg")))
	test.That(t, fig.Closed())
}

func TestFigureWriteSVG(t *testing.T) {
	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 1.0}, []float64{0.0, 1.0}, nil)
	test.Error(t, err)

	buf := &bytes.Buffer{}
	test.Error(t, fig.WriteSVG(buf))
	test.That(t, bytes.HasPrefix(buf.Bytes(), []byte("<svg")))
	test.That(t, !fig.Closed())
	test.Error(t, fig.Close())
}

func TestFigureClosed(t *testing.T) {
	fig := newTestFigure(t, nil)
	test.Error(t, fig.Close())
	test.T(t, fig.Close(), ErrClosed)

	x := []float64{0.0}
	_, err := fig.Scatter(x, x, nil)
	test.T(t, err, ErrClosed)
	_, err = fig.Line(x, x, nil)
	test.T(t, err, ErrClosed)
	_, err = fig.ErrorBar(x, x, nil)
	test.T(t, err, ErrClosed)
	_, err = fig.Legend(0.5, 0.5, nil)
	test.T(t, err, ErrClosed)
	_, err = fig.SpecialLegend(0.5, 0.5, nil, nil, nil, nil)
	test.T(t, err, ErrClosed)
	_, err = fig.ColorPalette("deep", 3, nil)
	test.T(t, err, ErrClosed)
	test.T(t, fig.Text(0.5, 0.5, "x", nil), ErrClosed)
	test.T(t, fig.Decorate(), ErrClosed)
	test.T(t, fig.WriteSVG(&bytes.Buffer{}), ErrClosed)
	test.T(t, fig.Output(true, false, filepath.Join(t.TempDir(), "fig.svg")), ErrClosed)
}

func TestSetupTeX(t *testing.T) {
	test.Error(t, Setup(TeX))
	defer Setup(PlainText)

	fig := newTestFigure(t, nil)
	_, err := fig.Line([]float64{0.0, 1.0}, []float64{0.0, 2e-5}, &Style{Label: "$x$"})
	test.Error(t, err)
	_, err = fig.Legend(0.5, 0.5, nil)
	test.Error(t, err)
	test.Error(t, fig.Decorate(XLabel("$t$ (s)")))
	test.String(t, fig.Axes().yticks.offsetText(), "")
	fig.Axes().Draw(draw.NewCanvas(&recorder.Canvas{}, 7.5*vg.Inch, 4.5*vg.Inch))
	test.String(t, fig.Axes().yticks.offsetText(), "\u00d71e-5")
	test.Error(t, fig.WriteSVG(&bytes.Buffer{}))

	// large values are factored out as well
	fig = newTestFigure(t, nil)
	_, err = fig.Line([]float64{0.0, 1.0}, []float64{0.0, 2e6}, nil)
	test.Error(t, err)
	test.That(t, contains(drawnStrings(fig), "\u00d71e6"))
	test.Error(t, fig.WriteSVG(&bytes.Buffer{}))

	test.That(t, Setup(TextEngine(5)) != nil)
}
