package ctplot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	test.Error(t, err)
	test.T(t, *cfg, DefaultConfig)

	cfg, err = LoadConfig(strings.NewReader(`
width = 5.0
grid = false
major_grid_color = "k"
xtick_label_size = 12
`))
	test.Error(t, err)
	test.Float(t, cfg.Width, 5.0)
	test.Float(t, cfg.Height, DefaultConfig.Height)
	test.That(t, !cfg.Grid)
	test.String(t, cfg.MajorGridColor, "k")
	test.Float(t, cfg.XTickLabelSize, 12.0)
	test.Float(t, cfg.YTickLabelSize, DefaultConfig.YTickLabelSize)
}

func TestLoadConfigErrors(t *testing.T) {
	var tts = []string{
		`width = "wide"`,
		`colour = "red"`,
		`height = -1.0`,
		`minor_grid_color = "bogus"`,
		`dpi = 0`,
		`width = `,
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt))
			test.That(t, err != nil, tt)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "ctplot.toml")
	test.Error(t, os.WriteFile(filename, []byte("height = 3.0\n"), 0644))
	cfg, err := LoadConfigFile(filename)
	test.Error(t, err)
	test.Float(t, cfg.Height, 3.0)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	test.That(t, err != nil)
}

func TestDefaultConfigUnchanged(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader("width = 1.0"))
	test.Error(t, err)
	cfg.Height = 1.0
	test.Float(t, DefaultConfig.Width, 7.5)
	test.Float(t, DefaultConfig.Height, 4.5)
}
