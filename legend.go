package ctplot

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LegendHandler draws the handle of a legend entry into its handle box.
type LegendHandler interface {
	DrawHandle(c *draw.Canvas, handle plot.Thumbnailer, fontSize vg.Length, hm HandlerMap)
}

// HandlerMap selects a legend handler by the dynamic type of a handle.
// Handles without an entry draw their own thumbnail.
type HandlerMap map[reflect.Type]LegendHandler

// DefaultHandlerMap returns a new handler map that draws Tuple handles side
// by side. Every call returns a fresh map.
func DefaultHandlerMap() HandlerMap {
	return HandlerMap{
		reflect.TypeOf(Tuple(nil)): &TupleHandler{Pad: 0.4},
	}
}

// Handler returns the handler for the handle.
func (hm HandlerMap) Handler(handle plot.Thumbnailer) LegendHandler {
	if h, ok := hm[reflect.TypeOf(handle)]; ok && h != nil {
		return h
	}
	return thumbnailHandler{}
}

type thumbnailHandler struct{}

func (thumbnailHandler) DrawHandle(c *draw.Canvas, handle plot.Thumbnailer, _ vg.Length, _ HandlerMap) {
	handle.Thumbnail(c)
}

// Tuple groups several handles under a single legend label. Without a
// handler the handles are drawn on top of each other.
type Tuple []plot.Thumbnailer

// Thumbnail implements the plot.Thumbnailer interface.
func (t Tuple) Thumbnail(c *draw.Canvas) {
	for _, handle := range t {
		handle.Thumbnail(c)
	}
}

// TupleHandler draws the handles of a Tuple next to each other by dividing
// the handle box into equal parts.
type TupleHandler struct {
	NDivide int     // number of divisions, zero uses one per handle
	Pad     float64 // space between divisions in units of the font size
}

// DrawHandle implements the LegendHandler interface.
func (h *TupleHandler) DrawHandle(c *draw.Canvas, handle plot.Thumbnailer, fontSize vg.Length, hm HandlerMap) {
	tuple, ok := handle.(Tuple)
	if !ok {
		handle.Thumbnail(c)
		return
	} else if len(tuple) == 0 {
		return
	}

	n := h.NDivide
	if n <= 0 {
		n = len(tuple)
	}
	pad := vg.Length(h.Pad) * fontSize
	width := (c.Max.X - c.Min.X - pad*vg.Length(n-1)) / vg.Length(n)
	if width <= 0 {
		width = (c.Max.X - c.Min.X) / vg.Length(n)
		pad = 0
	}
	for i, sub := range tuple {
		x := c.Min.X + vg.Length(i%n)*(width+pad)
		box := &draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: x, Y: c.Min.Y},
				Max: vg.Point{X: x + width, Y: c.Max.Y},
			},
		}
		hm.Handler(sub).DrawHandle(box, sub, fontSize, hm)
	}
}

type legendEntry struct {
	label  string
	handle plot.Thumbnailer
}

// Legend is a legend box anchored at a point in region-relative coordinates.
// Loc names the point of the box that is placed on the anchor: "center",
// "upper left", "upper center", "upper right", "center left",
// "center right", "lower left", "lower center", "lower right", "right"
// (same as "center right") or "best" (same as "upper right").
type Legend struct {
	X, Y float64
	Loc  string
	NCol int

	Title      string
	TextStyle  text.Style
	TitleStyle text.Style

	FaceColor, EdgeColor color.Color // nil disables the frame fill or edge
	EdgeWidth            vg.Length

	// spacing in units of the font size
	BorderPad, LabelSpacing, HandleLength, HandleTextPad, ColumnSpacing float64

	HandlerMap HandlerMap

	entries []legendEntry
	overlay bool
}

var legendLocs = map[string][2]float64{
	"best":         {1.0, 1.0},
	"upper right":  {1.0, 1.0},
	"upper left":   {0.0, 1.0},
	"lower left":   {0.0, 0.0},
	"lower right":  {1.0, 0.0},
	"right":        {1.0, 0.5},
	"center left":  {0.0, 0.5},
	"center right": {1.0, 0.5},
	"lower center": {0.5, 0.0},
	"upper center": {0.5, 1.0},
	"center":       {0.5, 0.5},
}

// newLegend builds a legend anchored at (x,y), a nil handler map selects
// DefaultHandlerMap.
func newLegend(x, y float64, style *LegendStyle, hdlr text.Handler, hm HandlerMap) (*Legend, error) {
	if style == nil {
		style = &LegendStyle{}
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return nil, fmt.Errorf("legend anchor must be finite: (%v,%v)", x, y)
	}

	loc := strings.ToLower(strings.TrimSpace(style.Loc))
	if loc == "" {
		loc = "center"
	} else if _, ok := legendLocs[loc]; !ok {
		return nil, fmt.Errorf("unknown legend location: %q", style.Loc)
	}

	ncol := style.NCol
	if ncol < 0 {
		return nil, fmt.Errorf("legend columns must be positive: %d", ncol)
	} else if ncol == 0 {
		ncol = 1
	}

	if style.FrameAlpha < 0.0 || 1.0 < style.FrameAlpha {
		return nil, fmt.Errorf("frame alpha must be in [0,1]: %v", style.FrameAlpha)
	}

	size := style.FontSize
	if size < 0.0 {
		return nil, fmt.Errorf("font size must be positive: %v", size)
	} else if size == 0.0 {
		size = defaultFontSize
	}

	if hm == nil {
		hm = DefaultHandlerMap()
	}
	l := &Legend{
		X:    x,
		Y:    y,
		Loc:  loc,
		NCol: ncol,

		Title: style.Title,
		TextStyle: text.Style{
			Color:   color.Black,
			Font:    font.From(DefaultFont, vg.Points(size)),
			XAlign:  text.XLeft,
			YAlign:  text.YCenter,
			Handler: hdlr,
		},
		TitleStyle: text.Style{
			Color:   color.Black,
			Font:    font.From(DefaultFont, vg.Points(size)),
			XAlign:  text.XCenter,
			YAlign:  text.YTop,
			Handler: hdlr,
		},

		FaceColor: withAlpha(color.White, style.FrameAlpha),
		EdgeColor: withAlpha(MustParseColor("#cccccc"), style.FrameAlpha),
		EdgeWidth: vg.Points(1.0),

		BorderPad:     0.4,
		LabelSpacing:  0.5,
		HandleLength:  2.0,
		HandleTextPad: 0.8,
		ColumnSpacing: 2.0,

		HandlerMap: hm,
	}
	if err := l.applyExtra(style.Extra, style.FrameAlpha); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Legend) applyExtra(extra map[string]any, alpha float64) error {
	for _, key := range sortedKeys(extra) {
		val := extra[key]
		switch key {
		case "edgecolor", "facecolor":
			col, err := extraColor(key, val)
			if err != nil {
				return err
			}
			if key == "edgecolor" {
				l.EdgeColor = withAlpha(col, alpha)
			} else {
				l.FaceColor = withAlpha(col, alpha)
			}
		case "borderpad", "labelspacing", "handlelength", "handletextpad", "columnspacing":
			v, err := extraFloat(key, val)
			if err != nil {
				return err
			} else if v < 0.0 {
				return fmt.Errorf("%s must be positive: %v", key, v)
			}
			switch key {
			case "borderpad":
				l.BorderPad = v
			case "labelspacing":
				l.LabelSpacing = v
			case "handlelength":
				l.HandleLength = v
			case "handletextpad":
				l.HandleTextPad = v
			case "columnspacing":
				l.ColumnSpacing = v
			}
		case "title_fontsize":
			v, err := extraFloat(key, val)
			if err != nil {
				return err
			} else if v <= 0.0 {
				return fmt.Errorf("%s must be positive: %v", key, v)
			}
			l.TitleStyle.Font.Size = vg.Points(v)
		default:
			return fmt.Errorf("unknown option: %s", key)
		}
	}
	return nil
}

// Add appends an entry to the legend.
func (l *Legend) Add(label string, handle plot.Thumbnailer) {
	l.entries = append(l.entries, legendEntry{label: label, handle: handle})
}

// Len returns the number of entries.
func (l *Legend) Len() int {
	return len(l.entries)
}

// Labels returns the entry labels in order.
func (l *Legend) Labels() []string {
	labels := make([]string, len(l.entries))
	for i, e := range l.entries {
		labels[i] = e.label
	}
	return labels
}

// Overlay reports whether the legend was attached to its region as an
// overlay artist.
func (l *Legend) Overlay() bool {
	return l.overlay
}

// rows returns the number of rows with entries filled column by column.
func (l *Legend) rows() int {
	ncol := l.NCol
	if ncol < 1 {
		ncol = 1
	}
	return (len(l.entries) + ncol - 1) / ncol
}

// layout computes the column widths, the row height and the size of the
// legend box.
func (l *Legend) layout() (cols []vg.Length, rowHeight, width, height vg.Length) {
	em := l.TextStyle.Font.Size
	rowHeight = l.TextStyle.FontExtents().Height
	nrows := l.rows()
	if 0 < nrows {
		ncol := (len(l.entries) + nrows - 1) / nrows
		cols = make([]vg.Length, ncol)
		for i, e := range l.entries {
			w := l.TextStyle.Width(e.label)
			if cols[i/nrows] < w {
				cols[i/nrows] = w
			}
			if h := l.TextStyle.Height(e.label); rowHeight < h {
				rowHeight = h
			}
		}
		for i := range cols {
			cols[i] += vg.Length(l.HandleLength+l.HandleTextPad) * em
			width += cols[i]
			if i != 0 {
				width += vg.Length(l.ColumnSpacing) * em
			}
		}
		height = vg.Length(nrows)*rowHeight + vg.Length(nrows-1)*vg.Length(l.LabelSpacing)*em
	}
	if l.Title != "" {
		width = vg.Length(math.Max(float64(width), float64(l.TitleStyle.Width(l.Title))))
		height += l.TitleStyle.Height(l.Title)
		if 0 < nrows {
			height += vg.Length(l.LabelSpacing) * em
		}
	}
	width += 2.0 * vg.Length(l.BorderPad) * em
	height += 2.0 * vg.Length(l.BorderPad) * em
	return
}

// Rectangle returns the legend box within the region canvas.
func (l *Legend) Rectangle(c draw.Canvas) vg.Rectangle {
	_, _, width, height := l.layout()
	frac := legendLocs[l.Loc]
	min := vg.Point{
		X: c.X(l.X) - vg.Length(frac[0])*width,
		Y: c.Y(l.Y) - vg.Length(frac[1])*height,
	}
	return vg.Rectangle{Min: min, Max: vg.Point{X: min.X + width, Y: min.Y + height}}
}

// Plot implements the plot.Plotter interface. The canvas is the data area of
// the region.
func (l *Legend) Plot(c draw.Canvas, _ *plot.Plot) {
	if len(l.entries) == 0 && l.Title == "" {
		return
	}

	cols, rowHeight, _, _ := l.layout()
	rect := l.Rectangle(c)
	// the frame may lie outside the region and is not clipped
	if l.FaceColor != nil && !isTransparent(l.FaceColor) {
		c.SetColor(l.FaceColor)
		c.Fill(rect.Path())
	}
	if l.EdgeColor != nil && !isTransparent(l.EdgeColor) && 0 < l.EdgeWidth {
		c.SetLineStyle(draw.LineStyle{Color: l.EdgeColor, Width: l.EdgeWidth})
		c.Stroke(rect.Path())
	}

	em := l.TextStyle.Font.Size
	pad := vg.Length(l.BorderPad) * em
	top := rect.Max.Y - pad
	if l.Title != "" {
		c.FillText(l.TitleStyle, vg.Point{X: (rect.Min.X + rect.Max.X) / 2, Y: top}, l.Title)
		top -= l.TitleStyle.Height(l.Title) + vg.Length(l.LabelSpacing)*em
	}

	nrows := l.rows()
	handleLength := vg.Length(l.HandleLength) * em
	x := rect.Min.X + pad
	for col, colWidth := range cols {
		y := top
		for row := 0; row < nrows; row++ {
			i := col*nrows + row
			if len(l.entries) <= i {
				break
			}
			e := l.entries[i]
			handleBox := &draw.Canvas{
				Canvas: c.Canvas,
				Rectangle: vg.Rectangle{
					Min: vg.Point{X: x, Y: y - rowHeight},
					Max: vg.Point{X: x + handleLength, Y: y},
				},
			}
			if e.handle != nil {
				l.HandlerMap.Handler(e.handle).DrawHandle(handleBox, e.handle, em, l.HandlerMap)
			}
			textX := x + handleLength + vg.Length(l.HandleTextPad)*em
			c.FillText(l.TextStyle, vg.Point{X: textX, Y: y - rowHeight/2}, e.label)
			y -= rowHeight + vg.Length(l.LabelSpacing)*em
		}
		x += colWidth + vg.Length(l.ColumnSpacing)*em
	}
}

func isTransparent(col color.Color) bool {
	_, _, _, a := col.RGBA()
	return a == 0
}
