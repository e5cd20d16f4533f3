package ctplot

import (
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

const (
	mmPerPt = 25.4 / 72.0
	ptPerMm = 72.0 / 25.4
	mmPerIn = 25.4
)

// vgCanvas implements gonum's vg.Canvas on top of a canvas.Context, so that
// plots are laid out by gonum and rendered by any of the canvas renderers.
type vgCanvas struct {
	ctx      *canvas.Context
	families map[*opentype.Font]*canvas.FontFamily
	err      error
}

func newVGCanvas(r canvas.Renderer) *vgCanvas {
	return &vgCanvas{
		ctx:      canvas.NewContext(r),
		families: map[*opentype.Font]*canvas.FontFamily{},
	}
}

// Err returns the first error encountered while drawing text.
func (r *vgCanvas) Err() error {
	return r.err
}

// Size returns the width and height of the canvas.
func (r *vgCanvas) Size() (vg.Length, vg.Length) {
	width, height := r.ctx.Size()
	return vg.Length(width * ptPerMm), vg.Length(height * ptPerMm)
}

// SetLineWidth sets the width of stroked paths.
func (r *vgCanvas) SetLineWidth(length vg.Length) {
	r.ctx.SetStrokeWidth(float64(length * mmPerPt))
}

// SetLineDash sets the dash pattern for lines.
func (r *vgCanvas) SetLineDash(pattern []vg.Length, offset vg.Length) {
	array := make([]float64, 0, len(pattern))
	for _, dash := range pattern {
		array = append(array, float64(dash*mmPerPt))
	}
	r.ctx.SetDashes(float64(offset*mmPerPt), array...)
}

// SetColor sets the fill and stroke color, nil is black.
func (r *vgCanvas) SetColor(col color.Color) {
	if col == nil {
		col = color.Black
	}
	r.ctx.SetFillColor(col)
	r.ctx.SetStrokeColor(col)
}

// Rotate rotates the coordinate system by rad radians.
func (r *vgCanvas) Rotate(rad float64) {
	r.ctx.Rotate(rad * 180.0 / math.Pi)
}

// Translate translates the coordinate system.
func (r *vgCanvas) Translate(pt vg.Point) {
	r.ctx.Translate(float64(pt.X*mmPerPt), float64(pt.Y*mmPerPt))
}

// Scale scales the coordinate system.
func (r *vgCanvas) Scale(x, y float64) {
	r.ctx.Scale(x, y)
}

// Push saves the drawing state.
func (r *vgCanvas) Push() {
	r.ctx.Push()
}

// Pop restores the drawing state saved by the last Push.
func (r *vgCanvas) Pop() {
	r.ctx.Pop()
}

func (r *vgCanvas) addPath(path vg.Path) {
	for _, comp := range path {
		switch comp.Type {
		case vg.MoveComp:
			r.ctx.MoveTo(float64(comp.Pos.X*mmPerPt), float64(comp.Pos.Y*mmPerPt))
		case vg.LineComp:
			r.ctx.LineTo(float64(comp.Pos.X*mmPerPt), float64(comp.Pos.Y*mmPerPt))
		case vg.ArcComp:
			rad := float64(comp.Radius * mmPerPt)
			theta0 := comp.Start * 180.0 / math.Pi
			theta1 := (comp.Start + comp.Angle) * 180.0 / math.Pi
			r.ctx.Arc(rad, rad, 0.0, theta0, theta1)
		case vg.CurveComp:
			switch len(comp.Control) {
			case 1:
				r.ctx.QuadTo(float64(comp.Control[0].X*mmPerPt), float64(comp.Control[0].Y*mmPerPt), float64(comp.Pos.X*mmPerPt), float64(comp.Pos.Y*mmPerPt))
			case 2:
				r.ctx.CubeTo(float64(comp.Control[0].X*mmPerPt), float64(comp.Control[0].Y*mmPerPt), float64(comp.Control[1].X*mmPerPt), float64(comp.Control[1].Y*mmPerPt), float64(comp.Pos.X*mmPerPt), float64(comp.Pos.Y*mmPerPt))
			default:
				r.ctx.LineTo(float64(comp.Pos.X*mmPerPt), float64(comp.Pos.Y*mmPerPt))
			}
		case vg.CloseComp:
			r.ctx.Close()
		}
	}
}

// Stroke strokes the given path.
func (r *vgCanvas) Stroke(path vg.Path) {
	r.addPath(path)
	r.ctx.Stroke()
}

// Fill fills the given path.
func (r *vgCanvas) Fill(path vg.Path) {
	r.addPath(path)
	r.ctx.Fill()
}

// FillString draws text with its baseline starting at pt.
func (r *vgCanvas) FillString(f font.Face, pt vg.Point, text string) {
	if f.Font.Size == 0 || text == "" {
		return
	}

	family := r.families[f.Face]
	if family == nil {
		family = canvas.NewFontFamily(f.Name())
		if err := family.LoadFont(fontFile(f), 0, canvas.FontRegular); err != nil {
			if r.err == nil {
				r.err = err
			}
			return
		}
		r.families[f.Face] = family
	}

	face := family.Face(f.Font.Size.Points(), r.ctx.Style.Fill.Color, canvas.FontRegular, canvas.FontNormal)
	r.ctx.DrawText(float64(pt.X*mmPerPt), float64(pt.Y*mmPerPt), canvas.NewTextLine(face, text, canvas.Left))
}

// DrawImage draws the image scaled to fit the rectangle.
func (r *vgCanvas) DrawImage(rect vg.Rectangle, img image.Image) {
	size := img.Bounds().Size()
	if size.Eq(image.Point{}) {
		return
	}

	x, y := float64(rect.Min.X*mmPerPt), float64(rect.Min.Y*mmPerPt)
	w, h := float64(rect.Max.X*mmPerPt)-x, float64(rect.Max.Y*mmPerPt)-y

	coord := r.ctx.CoordView().Dot(canvas.Point{X: x, Y: y})
	m := r.ctx.View().Translate(coord.X, coord.Y).Scale(w/float64(size.X), h/float64(size.Y))
	r.ctx.RenderImage(img, m)
}
