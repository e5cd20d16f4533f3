package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ctplot/ctplot"
	"github.com/tdewolff/argp"
)

type Plot struct {
	Output  string `short:"o" default:"plot.svg" desc:"Output filename, the format is given by the extension"`
	Kind    string `short:"k" default:"line" desc:"Kind of plot: line, scatter or errorbar"`
	XLabel  string `desc:"Label of the x-axis"`
	YLabel  string `desc:"Label of the y-axis"`
	Palette string `short:"p" default:"deep" desc:"Color palette of the series"`
	Config  string `short:"c" desc:"TOML file with the figure configuration"`
	TeX     bool   `desc:"Typeset text with TeX"`
	Show    bool   `desc:"Open the figure in the system viewer"`
	Input   string `index:"0" desc:"Input CSV file, the first column holds x"`
}

func main() {
	log.SetFlags(0)
	root := argp.NewCmd(&Plot{}, "Plot columns of a CSV file")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Plot) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	engine := ctplot.PlainText
	if cmd.TeX {
		engine = ctplot.TeX
	}
	if err := ctplot.Setup(engine); err != nil {
		return err
	}

	var cfg *ctplot.Config
	if cmd.Config != "" {
		var err error
		if cfg, err = ctplot.LoadConfigFile(cmd.Config); err != nil {
			return err
		}
	}

	f, err := os.Open(cmd.Input)
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := readTable(f)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Input, err)
	}

	fig, err := ctplot.New(cfg)
	if err != nil {
		return err
	}
	if err := plotTable(fig, table, cmd.Kind, cmd.Palette); err != nil {
		fig.Close()
		return err
	}
	if err := fig.Decorate(ctplot.XLabel(cmd.XLabel), ctplot.YLabel(cmd.YLabel)); err != nil {
		fig.Close()
		return err
	}
	if err := fig.Output(cmd.Output != "", cmd.Show, cmd.Output); err != nil {
		return err
	}
	if cmd.Output != "" {
		log.Printf("wrote %s\n", cmd.Output)
	}
	return nil
}
