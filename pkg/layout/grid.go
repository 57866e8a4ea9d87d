package layout

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Label marks where a node's value was written into a Grid.
type Label struct {
	Slot  int
	Row   int
	Col   int
	Width int
	Text  string
}

// Grid is a character rendering of a Result computed with cell options.
type Grid struct {
	Rows   [][]rune
	Labels []Label
}

// Rasterize draws r into a rune grid: one row per y unit, node values
// centered on their x, and edges as '/', '\' or '|' on the rows between a
// parent and its child. Columns are shifted right if anything would land
// left of column 0.
func Rasterize(r Result) Grid {
	if r.Empty() {
		return Grid{}
	}

	type cell struct{ row, col int }
	pos := make([]cell, len(r.Nodes))
	labels := make([]Label, len(r.Nodes))
	minCol, maxCol, maxRow := math.MaxInt, 0, 0
	for i, n := range r.Nodes {
		text := strconv.Itoa(n.Value)
		w := runewidth.StringWidth(text)
		c := cell{row: int(math.Round(n.Y)), col: int(math.Round(n.X))}
		pos[i] = c
		labels[i] = Label{Slot: n.Slot, Row: c.row, Col: c.col - w/2, Width: w, Text: text}
		minCol = min(minCol, labels[i].Col, c.col)
		maxCol = max(maxCol, labels[i].Col+w, c.col+1)
		maxRow = max(maxRow, c.row)
	}

	shift := 0
	if minCol < 0 {
		shift = -minCol
	}
	width := maxCol + shift
	rows := make([][]rune, maxRow+1)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}

	for _, e := range r.Edges {
		from, to := pos[e.From], pos[e.To]
		dy := to.row - from.row
		for k := 1; k < dy; k++ {
			col := from.col + (to.col-from.col)*k/dy + shift
			ch := '|'
			switch {
			case to.col < from.col:
				ch = '/'
			case to.col > from.col:
				ch = '\\'
			}
			rows[from.row+k][col] = ch
		}
	}

	for i := range labels {
		labels[i].Col += shift
		l := labels[i]
		col := l.Col
		for _, ch := range l.Text {
			rows[l.Row][col] = ch
			col += runewidth.RuneWidth(ch)
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Row != labels[j].Row {
			return labels[i].Row < labels[j].Row
		}
		return labels[i].Col < labels[j].Col
	})
	return Grid{Rows: rows, Labels: labels}
}

// Width is the number of columns in the widest row.
func (g Grid) Width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Lines returns the rows with trailing spaces trimmed.
func (g Grid) Lines() []string {
	lines := make([]string, len(g.Rows))
	for i, row := range g.Rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// String joins Lines with newlines.
func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// Render joins the rows, passing every node label through style so callers
// can color a highlighted slot. A nil style renders plain text.
func (g Grid) Render(style func(slot int, text string) string) string {
	if style == nil {
		return g.String()
	}
	var sb strings.Builder
	li := 0
	for r, row := range g.Rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		col := 0
		for li < len(g.Labels) && g.Labels[li].Row == r {
			l := g.Labels[li]
			li++
			if l.Col < col {
				// overlapping labels; the later one was drawn over the earlier
				continue
			}
			sb.WriteString(string(row[col:l.Col]))
			sb.WriteString(style(l.Slot, l.Text))
			col = l.Col + len([]rune(l.Text))
		}
		sb.WriteString(strings.TrimRight(string(row[col:]), " "))
	}
	return sb.String()
}
