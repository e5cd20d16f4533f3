// Package ctplot draws publication style figures with a single set of axes.
//
// A Figure fixes its styling (size, grid lines and font sizes) at creation,
// forwards drawing calls to gonum.org/v1/plot and renders the result onto a
// github.com/tdewolff/canvas canvas when the figure is written out.
//
//	fig, err := ctplot.New(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fig.Line(xs, ys, &ctplot.Style{Label: "data"})
//	fig.Legend(0.8, 0.8, nil)
//	fig.Decorate(ctplot.XLabel("$t$ (s)"), ctplot.YLabel("$x$ (m)"))
//	err = fig.Output(true, false, "figure.pdf")
package ctplot

import (
	"fmt"
	"sync"

	"gonum.org/v1/plot/text"
)

// TextEngine selects how figure text is parsed and laid out.
type TextEngine int

// See TextEngine.
const (
	PlainText TextEngine = iota
	TeX
)

func (e TextEngine) String() string {
	switch e {
	case PlainText:
		return "plain"
	case TeX:
		return "tex"
	}
	return fmt.Sprintf("TextEngine(%d)", int(e))
}

var (
	setupMu    sync.Mutex
	textEngine = PlainText
)

// Setup selects the text engine for all figures created afterwards. It is
// meant to be called once by the host program before any figure is made;
// nothing is configured implicitly when the package is imported.
func Setup(engine TextEngine) error {
	if engine != PlainText && engine != TeX {
		return fmt.Errorf("unknown text engine: %v", engine)
	}
	if _, err := loadFonts(); err != nil {
		return err
	}
	setupMu.Lock()
	textEngine = engine
	setupMu.Unlock()
	return nil
}

// textHandler returns the handler for the currently selected text engine.
func textHandler() (text.Handler, error) {
	cache, err := loadFonts()
	if err != nil {
		return nil, err
	}
	setupMu.Lock()
	engine := textEngine
	setupMu.Unlock()
	if engine == TeX {
		return text.Latex{Fonts: cache}, nil
	}
	return text.Plain{Fonts: cache}, nil
}
