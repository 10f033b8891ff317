package session

import (
	"strings"

	"govos/internal/document"
	dErrors "govos/pkg/domain-errors"
	gstrings "govos/pkg/string"
	"govos/pkg/validation"
)

// Grid dimensions of the spreadsheet app.
const (
	GridRows = 15
	GridCols = 5
)

// Grid is the spreadsheet's cell contents, row-major.
type Grid [GridRows][GridCols]string

// Cell addresses one spreadsheet cell.
type Cell struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// Set writes one cell.
func (g *Grid) Set(c Cell) error {
	if c.Row < 0 || c.Row >= GridRows || c.Col < 0 || c.Col >= GridCols {
		return dErrors.Newf(dErrors.CodeValidation, "cell (%d,%d) is outside the %dx%d grid", c.Row, c.Col, GridRows, GridCols)
	}
	if err := validation.CheckStringLength("value", c.Value, validation.MaxExcelCellLength); err != nil {
		return err
	}
	g[c.Row][c.Col] = c.Value
	return nil
}

// Rows returns the grid as slices for rendering.
func (g *Grid) Rows() [][]string {
	out := make([][]string, GridRows)
	for i := range g {
		out[i] = append([]string(nil), g[i][:]...)
	}
	return out
}

// Matched counts the expected pairs found in the grid. A pair is found when
// some row, joined and stripped of whitespace, contains both values stripped
// of whitespace.
func (g *Grid) Matched(expected []document.ExcelRow) int {
	rows := make([]string, GridRows)
	for i := range g {
		rows[i] = gstrings.RemoveSpace(strings.Join(g[i][:], " "))
	}

	found := 0
	for _, pair := range expected {
		a, b := gstrings.RemoveSpace(pair.ColA), gstrings.RemoveSpace(pair.ColB)
		for _, row := range rows {
			if strings.Contains(row, a) && strings.Contains(row, b) {
				found++
				break
			}
		}
	}
	return found
}
