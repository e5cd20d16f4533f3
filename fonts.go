package ctplot

import (
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	stdfnt "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"
)

// Typeface is the typeface used for all figure text.
const Typeface font.Typeface = "LatinModern"

// DefaultFont is the font descriptor used for figure text, sizes are set per use.
var DefaultFont = font.Font{
	Typeface: Typeface,
	Variant:  "Serif",
}

type fontData struct {
	font font.Font
	ttf  []byte
}

var fontFiles = []fontData{
	{font.Font{Typeface: Typeface, Variant: "Serif"}, lmroman10regular.TTF},
	{font.Font{Typeface: Typeface, Variant: "Serif", Style: stdfnt.StyleItalic}, lmroman10italic.TTF},
	{font.Font{Typeface: Typeface, Variant: "Serif", Weight: stdfnt.WeightBold}, lmroman10bold.TTF},
	{font.Font{Typeface: Typeface, Variant: "Serif", Style: stdfnt.StyleItalic, Weight: stdfnt.WeightBold}, lmroman10bolditalic.TTF},
}

var (
	fontsOnce sync.Once
	fontCache *font.Cache
	fontBytes map[*opentype.Font][]byte
	fontErr   error
)

// loadFonts parses the Latin Modern faces once. The gonum cache provides text
// metrics for layout while the raw font files are handed to the canvas when
// text is drawn, so both sides agree on glyph widths.
func loadFonts() (*font.Cache, error) {
	fontsOnce.Do(func() {
		coll := make(font.Collection, 0, len(fontFiles))
		fontBytes = make(map[*opentype.Font][]byte, len(fontFiles))
		for _, f := range fontFiles {
			face, err := opentype.Parse(f.ttf)
			if err != nil {
				fontErr = fmt.Errorf("could not parse font %s: %w", f.font.Name(), err)
				return
			}
			coll = append(coll, font.Face{Font: f.font, Face: face})
			fontBytes[face] = f.ttf
		}
		fontCache = font.NewCache(coll)
	})
	return fontCache, fontErr
}

// fontFile returns the font file backing a parsed face. The TeX engine hands
// out the italic and bold faces under the regular descriptor, so faces are
// matched by identity and not by name.
func fontFile(f font.Face) []byte {
	if b, ok := fontBytes[f.Face]; ok {
		return b
	}
	return lmroman10regular.TTF
}
