package ctplot

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func hexes(colors []color.Color) []string {
	out := make([]string, len(colors))
	for i, col := range colors {
		out[i] = ColorHex(col)
	}
	return out
}

func TestColorPalette(t *testing.T) {
	var tts = []struct {
		name   string
		n      int
		colors []string
	}{
		{"deep", 3, []string{"#4c72b0", "#dd8452", "#55a868"}},
		{"deep_r", 3, []string{"#55a868", "#dd8452", "#4c72b0"}},
		{"tab10", 12, []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf", "#1f77b4", "#ff7f0e"}},
		{"colorblind", 1, []string{"#0173b2"}},
	}
	for _, tt := range tts {
		t.Run(fmt.Sprint(tt.name, tt.n), func(t *testing.T) {
			colors, err := ColorPalette(tt.name, tt.n, nil)
			test.Error(t, err)
			test.T(t, hexes(colors), tt.colors)
		})
	}
}

func TestColorPaletteLength(t *testing.T) {
	names := append(PaletteNames(), "Set1", "Blues", "RdBu", "viridis_r", "Dark2_r")
	for _, name := range names {
		for _, n := range []int{1, 5, 17} {
			t.Run(fmt.Sprint(name, n), func(t *testing.T) {
				colors, err := ColorPalette(name, n, nil)
				test.Error(t, err)
				test.T(t, len(colors), n)
				for _, col := range colors {
					test.That(t, col != nil)
					_, err := ParseColor(ColorHex(col))
					test.Error(t, err)
				}

				again, err := ColorPalette(name, n, nil)
				test.Error(t, err)
				test.T(t, hexes(again), hexes(colors), "deterministic")
			})
		}
	}
}

func TestColorPaletteReverse(t *testing.T) {
	colors, err := ColorPalette("viridis", 6, nil)
	test.Error(t, err)
	reversed, err := ColorPalette("viridis_r", 6, nil)
	test.Error(t, err)
	for i := range colors {
		test.String(t, ColorHex(reversed[i]), ColorHex(colors[len(colors)-1-i]))
	}
}

func TestColorPaletteDesat(t *testing.T) {
	orig, err := ColorPalette("bright", 4, nil)
	test.Error(t, err)
	colors, err := ColorPalette("bright", 4, &PaletteOptions{Desat: 1.0})
	test.Error(t, err)
	for i, col := range colors {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		o := color.NRGBAModel.Convert(orig[i]).(color.NRGBA)
		test.FloatDiff(t, float64(c.R), float64(o.R), 1.0)
		test.FloatDiff(t, float64(c.G), float64(o.G), 1.0)
		test.FloatDiff(t, float64(c.B), float64(o.B), 1.0)
	}

	gray, err := ColorPalette("bright", 4, &PaletteOptions{Desat: 1e-9})
	test.Error(t, err)
	for _, col := range gray {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		test.That(t, c.R == c.G && c.G == c.B, ColorHex(col))
	}
}

func TestColorPaletteErrors(t *testing.T) {
	var tts = []struct {
		name string
		n    int
		opts *PaletteOptions
	}{
		{"deep", 0, nil},
		{"deep", -3, nil},
		{"nosuchpalette", 3, nil},
		{"_r", 3, nil},
		{"deep", 3, &PaletteOptions{Desat: 1.5}},
		{"deep", 3, &PaletteOptions{Desat: -0.5}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ColorPalette(tt.name, tt.n, tt.opts)
			test.That(t, err != nil)
		})
	}
}

func TestLabGradient(t *testing.T) {
	f := LabGradient([]color.Color{color.Black, color.White})
	test.String(t, ColorHex(f(0.0)), "#000000")
	test.String(t, ColorHex(f(1.0)), "#ffffff")
	test.String(t, ColorHex(f(-1.0)), "#000000")

	mid := color.NRGBAModel.Convert(f(0.5)).(color.NRGBA)
	test.That(t, mid.R == mid.G && mid.G == mid.B)
	test.That(t, 64 < mid.R && mid.R < 192)

	test.T(t, LabGradient(nil)(0.5), color.Color(Transparent))
}
