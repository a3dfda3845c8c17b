package cmd

import (
	"fmt"
	"io"
	"strings"
)

type Table struct {
	ColumnWidths map[int]int
	Rows         [][]string
	Styled       bool
}

func NewTable() *Table {
	return &Table{
		ColumnWidths: map[int]int{},
		Rows:         [][]string{},
	}
}

func (t *Table) AddRow(row []string) {
	t.updateColumnWidths(row)
	t.Rows = append(t.Rows, row)
}

// Print writes the table with the first row as a header. Cells are only
// wrapped in terminal escape codes when Styled is set.
func (t *Table) Print(w io.Writer) {
	for rownum, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cellStyle := plain
			if rownum == 0 {
				cellStyle = italic
			}
			if rownum > 0 && i == 0 {
				cellStyle = bold
			}

			pad := strings.Repeat(" ", t.ColumnWidths[i]-len(cell))
			cells[i] = t.format(cellStyle, cell) + pad
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// Private

type style string

const (
	plain  style = ""
	bold   style = "1;34"
	italic style = "3;94"
)

func (t *Table) format(s style, value string) string {
	if !t.Styled || s == plain {
		return value
	}
	return "\033[" + string(s) + "m" + value + "\033[0m"
}

func (t *Table) updateColumnWidths(row []string) {
	for i, cell := range row {
		if len(cell) > t.ColumnWidths[i] {
			t.ColumnWidths[i] = len(cell)
		}
	}
}
