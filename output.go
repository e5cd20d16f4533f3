package ctplot

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/canvas/renderers/svg"
	"gonum.org/v1/plot/vg/draw"
)

// tightPad is the margin around the drawn content in millimeters.
const tightPad = 0.1 * mmPerIn

// openFile opens files for the show step, replaced in tests.
var openFile = browser.OpenFile

// render draws the region onto a new canvas of the figure size, crops it to
// the drawn content plus a margin and puts it on a white background.
func (f *Figure) render() (*canvas.Canvas, error) {
	c := canvas.New(f.canvas.W, f.canvas.H)
	vc := newVGCanvas(c)
	f.axes.Draw(draw.New(vc))
	if err := vc.Err(); err != nil {
		return nil, fmt.Errorf("could not draw text: %w", err)
	}
	return tightFit(c), nil
}

// tightFit crops c to its content plus tightPad on each side and returns it
// on a white background.
func tightFit(c *canvas.Canvas) *canvas.Canvas {
	c.Fit(tightPad)

	out := canvas.New(c.W, c.H)
	ctx := canvas.NewContext(out)
	ctx.SetFillColor(color.White)
	ctx.DrawPath(0.0, 0.0, canvas.Rectangle(c.W, c.H))
	c.RenderTo(out)
	return out
}

// writeOptions returns the writer options that the format of filename
// accepts.
func (f *Figure) writeOptions(filename string) []any {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff":
		return []any{canvas.DPMM(f.cfg.DPI / mmPerIn)}
	case ".svg":
		svgOpts := svg.DefaultOptions
		return []any{&svgOpts}
	}
	return nil
}

// Output writes the figure to filename if save is set, with the format given
// by the file extension (.svg, .svgz, .pdf, .tex, .pgf, .png, .jpg, .gif or
// .tif), and opens it in the system viewer if show is set. The figure is
// closed afterwards in all cases.
func (f *Figure) Output(save, show bool, filename string) error {
	if f.Closed() {
		return ErrClosed
	}
	defer f.Close()
	if !save && !show {
		return nil
	}

	c, err := f.render()
	if err != nil {
		return err
	}
	if save {
		if filename == "" {
			return fmt.Errorf("empty filename")
		}
		if err := renderers.Write(filename, c, f.writeOptions(filename)...); err != nil {
			os.Remove(filename)
			return fmt.Errorf("could not write %s: %w", filename, err)
		}
	}
	if show {
		return showCanvas(c)
	}
	return nil
}

// showCanvas writes the canvas to a temporary SVG file and opens it.
func showCanvas(c *canvas.Canvas) error {
	tmp, err := os.CreateTemp("", "ctplot-*.svg")
	if err != nil {
		return err
	}
	if err := writeSVG(tmp, c); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return openFile(tmp.Name())
}

func writeSVG(w io.Writer, c *canvas.Canvas) error {
	r := svg.New(w, c.W, c.H, nil)
	c.RenderTo(r)
	return r.Close()
}

// WriteSVG renders the figure as SVG to w without closing it.
func (f *Figure) WriteSVG(w io.Writer) error {
	if f.Closed() {
		return ErrClosed
	}
	c, err := f.render()
	if err != nil {
		return err
	}
	return writeSVG(w, c)
}

// Close releases the canvas without writing anything. Closing a closed
// figure returns ErrClosed.
func (f *Figure) Close() error {
	if f.Closed() {
		return ErrClosed
	}
	f.canvas = nil
	f.axes = nil
	return nil
}
