package ctplot

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// tickMarker wraps a ticker, hiding minor ticks unless they are turned on
// and factoring out a common power of ten from the labels of very large or
// very small values. The factor is drawn separately as the offset text.
type tickMarker struct {
	base  plot.Ticker
	minor bool
	tex   bool

	exp int // power of ten of the last computed ticks, zero for none
}

func newTickMarker(tex bool) *tickMarker {
	return &tickMarker{
		base: plot.DefaultTicks{},
		tex:  tex,
	}
}

// Ticks implements the plot.Ticker interface.
func (t *tickMarker) Ticks(min, max float64) []plot.Tick {
	all := t.base.Ticks(min, max)
	ticks := make([]plot.Tick, 0, len(all))
	maxAbs := 0.0
	for _, tick := range all {
		if tick.IsMinor() {
			if t.minor {
				ticks = append(ticks, tick)
			}
			continue
		}
		maxAbs = math.Max(maxAbs, math.Abs(tick.Value))
		ticks = append(ticks, tick)
	}

	t.exp = offsetExponent(maxAbs)
	if t.exp != 0 {
		scale := math.Pow10(-t.exp)
		for i, tick := range ticks {
			if !tick.IsMinor() {
				ticks[i].Label = formatTick(tick.Value * scale)
			}
		}
	}
	return ticks
}

// allTicks returns both minor and major ticks regardless of the minor flag.
func (t *tickMarker) allTicks(min, max float64) []plot.Tick {
	return t.base.Ticks(min, max)
}

// offsetText returns the text for the factored out power of ten, or an
// empty string when labels are not scaled. The TeX handler has no
// superscripts, so the factor is kept outside math mode.
func (t *tickMarker) offsetText() string {
	if t.exp == 0 {
		return ""
	} else if t.tex {
		return fmt.Sprintf("\u00d71e%d", t.exp)
	}
	return fmt.Sprintf("1e%d", t.exp)
}

// offsetExponent returns the power of ten to factor out of tick labels when
// the largest tick magnitude is at least 1e6 or below 1e-4.
func offsetExponent(maxAbs float64) int {
	if maxAbs == 0.0 || math.IsInf(maxAbs, 0) || math.IsNaN(maxAbs) {
		return 0
	} else if 1e-4 <= maxAbs && maxAbs < 1e6 {
		return 0
	}
	return int(math.Floor(math.Log10(maxAbs)))
}

// formatTick formats a scaled tick value without floating point noise.
func formatTick(v float64) string {
	v, _ = strconv.ParseFloat(strconv.FormatFloat(v, 'g', 10, 64), 64)
	if v == 0.0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
