package groupby

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// alignment controls column text alignment.
type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var rounded = borderChars{
	topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
	horizontal: "─", vertical: "│",
	topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
	cross: "┼",
}

// valueColumn holds non-row elements of a table.
const valueColumn = "<value>"

type grid struct {
	header []string
	rows   [][]string
	aligns []alignment
}

func writeTable(w io.Writer, v Value) error {
	var g grid
	switch v.Kind() {
	case KindRow:
		g = rowGrid(v.row)
	case KindTable:
		g = tableGrid(v.table)
	default:
		_, err := fmt.Fprintln(w, v.String())
		return err
	}
	if len(g.rows) == 0 {
		return nil
	}
	numCols := colCount(g.header, g.rows)
	widths := computeWidths(numCols, g.header, g.rows)
	return renderBorderedTable(w, g.header, g.rows, widths, extendAligns(g.aligns, numCols))
}

// rowGrid lays a row out as one name/value line per column.
func rowGrid(r *Row) grid {
	var g grid
	for _, c := range r.cols {
		g.rows = append(g.rows, []string{c.Name, c.Value.String()})
	}
	return g
}

// tableGrid uses the union of the row columns, in first-seen order, as the
// header and prepends a row number column.
func tableGrid(elems []Value) grid {
	var names []string
	pos := make(map[string]int)
	numeric := make(map[string]bool)
	addName := func(name string) {
		if _, ok := pos[name]; !ok {
			pos[name] = len(names)
			names = append(names, name)
			numeric[name] = true
		}
	}
	for _, e := range elems {
		if r, ok := e.AsRow(); ok {
			for _, c := range r.cols {
				addName(c.Name)
				numeric[c.Name] = numeric[c.Name] && isNumeric(c.Value)
			}
			continue
		}
		addName(valueColumn)
		numeric[valueColumn] = numeric[valueColumn] && isNumeric(e)
	}

	g := grid{header: append([]string{"#"}, names...)}
	g.aligns = make([]alignment, len(g.header))
	g.aligns[0] = alignRight
	for i, name := range names {
		if numeric[name] {
			g.aligns[i+1] = alignRight
		}
	}
	for i, e := range elems {
		cells := make([]string, len(g.header))
		cells[0] = strconv.Itoa(i)
		if r, ok := e.AsRow(); ok {
			for _, c := range r.cols {
				cells[pos[c.Name]+1] = c.Value.String()
			}
		} else {
			cells[pos[valueColumn]+1] = e.String()
		}
		g.rows = append(g.rows, cells)
	}
	return g
}

func isNumeric(v Value) bool {
	k := v.Kind()
	return k == KindInt || k == KindFloat
}

func colCount(header []string, rows [][]string) int {
	n := len(header)
	for _, row := range rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func computeWidths(numCols int, header []string, rows [][]string) []int {
	widths := make([]int, numCols)
	for i, h := range header {
		if w := runewidth.StringWidth(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func extendAligns(aligns []alignment, numCols int) []alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]alignment, numCols)
	copy(extended, aligns)
	return extended
}

func renderBorderedTable(w io.Writer, header []string, rows [][]string, widths []int, aligns []alignment) error {
	bc := rounded
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if len(header) > 0 {
		if err := drawBorderedRow(w, header, widths, aligns, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(alignCell(cell, width, aligns[i]))
		sb.WriteString(" ")
		if i < len(widths)-1 {
			sb.WriteString(vert)
		}
	}
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case alignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}
