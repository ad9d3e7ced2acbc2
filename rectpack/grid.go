package rectpack

import "math"

// VariableGrid lays out N fixed-position cells in row-major order
// (index = row*columns + col: each row is filled left to right before
// wrapping to the next) where every cell shares the grid's cell height but columns
// may have different widths: a column's width is the maximum cell width
// among every cell that falls in that column as the index wraps around.
//
// This is the wide-atlas grid from spec §4.2: columns = ceil(sqrt(N)),
// rows = ceil(N/columns), column X position is the cumulative sum of each
// column's maximum cell width, row Y position is row*cellHeight.
type VariableGrid struct {
	columns      int
	rows         int
	cellHeight   int
	columnWidths []int
	columnX      []int // cumulative X offset of each column, length columns+1
}

// NewVariableGrid builds a grid for the given per-cell widths (one entry
// per character, in the same order cells will be indexed) and a single
// shared cell height.
func NewVariableGrid(cellWidths []int, cellHeight int) *VariableGrid {
	n := len(cellWidths)
	columns := ceilSqrt(n)
	rows := ceilDiv(n, columns)

	colWidths := make([]int, columns)
	for i, w := range cellWidths {
		col := i % columns
		if w > colWidths[col] {
			colWidths[col] = w
		}
	}

	colX := make([]int, columns+1)
	for c := 0; c < columns; c++ {
		colX[c+1] = colX[c] + colWidths[c]
	}

	return &VariableGrid{
		columns:      columns,
		rows:         rows,
		cellHeight:   cellHeight,
		columnWidths: colWidths,
		columnX:      colX,
	}
}

// Columns and Rows return the grid dimensions.
func (g *VariableGrid) Columns() int { return g.columns }
func (g *VariableGrid) Rows() int    { return g.rows }

// ColumnWidth returns the maximum cell width assigned to column col.
func (g *VariableGrid) ColumnWidth(col int) int { return g.columnWidths[col] }

// CellOrigin returns the top-left pixel position of the cell at the given
// linear index. The cell's own width is whatever the caller passed in at
// construction; ColumnWidth(col) may be wider if the column holds other,
// wider cells.
func (g *VariableGrid) CellOrigin(index int) (x, y int) {
	col := index % g.columns
	row := index / g.columns
	return g.columnX[col], row * g.cellHeight
}

// TotalWidth is the sum of every column's width: the wide atlas image
// width (spec §6).
func (g *VariableGrid) TotalWidth() int {
	return g.columnX[g.columns]
}

// TotalHeight is rows*cellHeight: the wide atlas image height (spec §6).
func (g *VariableGrid) TotalHeight() int {
	return g.rows * g.cellHeight
}

func ceilSqrt(n int) int {
	if n <= 0 {
		return 1
	}
	r := int(math.Ceil(math.Sqrt(float64(n))))
	if r < 1 {
		r = 1
	}
	return r
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
