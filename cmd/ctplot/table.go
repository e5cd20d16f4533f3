package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctplot/ctplot"
)

// table holds the columns of a CSV file. The first column is x.
type table struct {
	names   []string
	columns [][]float64
}

// readTable reads numeric CSV data. A first row that is not numeric is taken
// as the header with the series names.
func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	} else if len(records) == 0 {
		return nil, fmt.Errorf("no data")
	}

	ncols := len(records[0])
	if ncols < 2 {
		return nil, fmt.Errorf("need at least two columns")
	}

	t := &table{
		names:   make([]string, ncols),
		columns: make([][]float64, ncols),
	}
	if !isNumeric(records[0]) {
		for i, name := range records[0] {
			t.names[i] = strings.TrimSpace(name)
		}
		records = records[1:]
	}
	for i, record := range records {
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+1, j+1, err)
			}
			t.columns[j] = append(t.columns[j], v)
		}
	}
	return t, nil
}

func isNumeric(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}
	return true
}

// plotTable draws every column after the first against the first. For error
// bars the columns alternate between values and their errors.
func plotTable(fig *ctplot.Figure, t *table, kind, palette string) error {
	step := 1
	if kind == "errorbar" {
		step = 2
		if len(t.columns)%2 != 1 {
			return fmt.Errorf("errorbar needs pairs of value and error columns")
		}
	}
	nseries := (len(t.columns) - 1) / step
	colors, err := ctplot.ColorPalette(palette, nseries, nil)
	if err != nil {
		return err
	}

	x := t.columns[0]
	labelled := false
	for i := 0; i < nseries; i++ {
		j := 1 + i*step
		style := &ctplot.Style{
			Label: t.names[j],
			Color: ctplot.ColorHex(colors[i]),
		}
		labelled = labelled || style.Label != ""
		switch kind {
		case "line":
			_, err = fig.Line(x, t.columns[j], style)
		case "scatter":
			_, err = fig.Scatter(x, t.columns[j], style)
		case "errorbar":
			style.YErr = t.columns[j+1]
			style.Marker = "o"
			style.CapSize = 3.0
			_, err = fig.ErrorBar(x, t.columns[j], style)
		default:
			return fmt.Errorf("unknown kind: %s", kind)
		}
		if err != nil {
			return err
		}
	}
	if labelled {
		_, err = fig.Legend(0.98, 0.98, &ctplot.LegendStyle{
			Loc:        "upper right",
			FrameAlpha: 0.8,
			FontSize:   14.0,
		})
	}
	return err
}
