package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govos/internal/document"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/validation"
)

func TestGridSet(t *testing.T) {
	var g Grid

	require.NoError(t, g.Set(Cell{Row: GridRows - 1, Col: GridCols - 1, Value: "끝"}))
	assert.Equal(t, "끝", g.Rows()[GridRows-1][GridCols-1])

	for _, c := range []Cell{{Row: -1}, {Row: GridRows}, {Col: -1}, {Col: GridCols}} {
		assert.True(t, dErrors.HasCode(g.Set(c), dErrors.CodeValidation), "cell %+v", c)
	}

	err := g.Set(Cell{Value: strings.Repeat("x", validation.MaxExcelCellLength+1)})
	assert.Error(t, err)
}

func TestGridMatched(t *testing.T) {
	expected := []document.ExcelRow{
		{ColA: "총무과", ColB: "02-100-2000"},
		{ColA: "민원 실", ColB: "02-100-3000"},
	}

	tests := []struct {
		name  string
		cells []Cell
		want  int
	}{
		{"empty grid", nil, 0},
		{"both pairs on their own rows", []Cell{
			{Row: 2, Col: 0, Value: "총무과"}, {Row: 2, Col: 1, Value: "02-100-2000"},
			{Row: 7, Col: 3, Value: "민원실"}, {Row: 7, Col: 4, Value: "02-100-3000"},
		}, 2},
		{"spacing is ignored", []Cell{
			{Row: 0, Col: 0, Value: " 총 무 과 "}, {Row: 0, Col: 2, Value: "02-100-2000"},
		}, 1},
		{"pair split across rows", []Cell{
			{Row: 0, Col: 0, Value: "총무과"}, {Row: 1, Col: 1, Value: "02-100-2000"},
		}, 0},
		{"values inside a single cell", []Cell{
			{Row: 4, Col: 0, Value: "총무과 02-100-2000"},
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Grid
			for _, c := range tt.cells {
				require.NoError(t, g.Set(c))
			}
			assert.Equal(t, tt.want, g.Matched(expected))
		})
	}
}
