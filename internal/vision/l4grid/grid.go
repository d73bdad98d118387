package l4grid

import (
	"fmt"
	"image"
	"math"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// MaxNodes bounds the number of rows and columns so node indices fit the
// 16-bit lookup table.
const MaxNodes = math.MaxInt16

// cell is one entry of the coordinate lookup table.
type cell struct {
	row, col uint16
	loc      Location
}

// Grid is a reduced representation of a represented matrix of size
// width×height. Each node stands for a gridStep×gridStep neighbourhood of
// matrix positions. The grid keeps one focused node, moved with Focus.
type Grid struct {
	repW, repH int
	reduction  float64
	step       int
	rows, cols int

	// lookup maps y*repW+x to its node. It is built once and never
	// mutated, so clones share it.
	lookup []cell

	focus Node
}

// NewGrid builds a grid over a width×height matrix. reductionFactor must
// lie in (0, 1); the grid step is round(1/reductionFactor) and the grid
// has height/step+1 rows and width/step+1 columns.
func NewGrid(width, height int, reductionFactor float64) (*Grid, error) {
	g := &Grid{}
	if err := g.init(width, height, reductionFactor); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) init(width, height int, reductionFactor float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid size %dx%d: %w", width, height, l1math.ErrInvalidArgument)
	}
	if !(reductionFactor > 0 && reductionFactor < 1) {
		return fmt.Errorf("reduction factor %v outside (0, 1): %w", reductionFactor, l1math.ErrInvalidArgument)
	}
	step := int(math.Round(1 / reductionFactor))
	rows, cols := height/step+1, width/step+1
	if rows > MaxNodes || cols > MaxNodes {
		return fmt.Errorf("grid of %dx%d nodes exceeds %d: %w", cols, rows, MaxNodes, l1math.ErrInvalidArgument)
	}

	*g = Grid{
		repW:      width,
		repH:      height,
		reduction: reductionFactor,
		step:      step,
		rows:      rows,
		cols:      cols,
	}
	g.defineMapping()
	g.focus = newNode(0, 0, classify(0, 0, rows, cols))
	diagf("grid %dx%d rf=%.3f step=%d nodes=%dx%d", width, height, reductionFactor, step, cols, rows)
	return nil
}

// defineMapping fills the lookup table. Positions are rounded to the
// nearest node and clamped to the last row and column.
func (g *Grid) defineMapping() {
	colOf := make([]uint16, g.repW)
	for x := range colOf {
		colOf[x] = uint16(min(g.cols-1, int(math.Round(float64(x)/float64(g.step)))))
	}
	g.lookup = make([]cell, g.repW*g.repH)
	for y := 0; y < g.repH; y++ {
		row := min(g.rows-1, int(math.Round(float64(y)/float64(g.step))))
		base := y * g.repW
		for x, col := range colOf {
			g.lookup[base+x] = cell{
				row: uint16(row),
				col: col,
				loc: classify(row, int(col), g.rows, g.cols),
			}
		}
	}
}

// RepresentedWidth returns the width of the represented matrix.
func (g *Grid) RepresentedWidth() int { return g.repW }

// RepresentedHeight returns the height of the represented matrix.
func (g *Grid) RepresentedHeight() int { return g.repH }

// ReductionFactor returns the factor the grid was built with.
func (g *Grid) ReductionFactor() float64 { return g.reduction }

// Step returns the number of matrix positions per node along each axis.
func (g *Grid) Step() int { return g.step }

// Rows returns the number of node rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of node columns.
func (g *Grid) Cols() int { return g.cols }

// Bounds returns the node-space rectangle covering the whole grid.
func (g *Grid) Bounds() image.Rectangle { return image.Rect(0, 0, g.cols, g.rows) }

// Node returns the focused node.
func (g *Grid) Node() Node { return g.focus }

// NodeAt returns the node representing matrix position (x, y) without
// moving the focus.
func (g *Grid) NodeAt(x, y int) (Node, error) {
	c, err := g.lookupCell(x, y)
	if err != nil {
		return Node{}, err
	}
	return newNode(int(c.row), int(c.col), c.loc), nil
}

func (g *Grid) lookupCell(x, y int) (cell, error) {
	if x < 0 || y < 0 || x >= g.repW || y >= g.repH {
		return cell{}, fmt.Errorf("position (%d,%d) outside %dx%d: %w", x, y, g.repW, g.repH, l1math.ErrInvalidArgument)
	}
	return g.lookup[y*g.repW+x], nil
}

// Focus moves the focus to the node representing matrix position (x, y).
// It reports whether the focused node changed. A position outside the
// matrix leaves the focus untouched and returns ErrInvalidArgument.
func (g *Grid) Focus(x, y int) (changed bool, err error) {
	c, err := g.lookupCell(x, y)
	if err != nil {
		return false, err
	}
	return g.focus.set(int(c.row), int(c.col), c.loc), nil
}

// FocusNode moves the focus directly to node (row, col).
func (g *Grid) FocusNode(row, col int) (changed bool, err error) {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return false, fmt.Errorf("node (%d,%d) outside %dx%d grid: %w", row, col, g.cols, g.rows, l1math.ErrInvalidArgument)
	}
	return g.focus.set(row, col, classify(row, col, g.rows, g.cols)), nil
}

// GridWindow converts a window in matrix coordinates to node coordinates.
// The window is clipped to the matrix and its bottom right corner is
// limited to (width-1, height-1) before both corners are mapped.
func (g *Grid) GridWindow(window image.Rectangle) (image.Rectangle, error) {
	r := window.Intersect(image.Rect(0, 0, g.repW, g.repH))
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("window %v outside %dx%d: %w", window, g.repW, g.repH, l1math.ErrInvalidArgument)
	}
	br := image.Pt(min(r.Max.X, g.repW-1), min(r.Max.Y, g.repH-1))
	c1 := g.lookup[r.Min.Y*g.repW+r.Min.X]
	c2 := g.lookup[br.Y*g.repW+br.X]
	return image.Rect(int(c1.col), int(c1.row), int(c2.col), int(c2.row)), nil
}

// index returns the flat offset of node (row, col).
func (g *Grid) index(row, col int) int { return row*g.cols + col }

// focusIndex returns the flat offset of the focused node.
func (g *Grid) focusIndex() int { return g.index(g.focus.row, g.focus.col) }

// SameShape reports whether o represents the same matrix with the same
// node layout. Only grids of the same shape can be merged.
func (g *Grid) SameShape(o *Grid) bool {
	return g.repW == o.repW && g.repH == o.repH && g.rows == o.rows && g.cols == o.cols
}

func (g *Grid) checkShape(op string, o *Grid) error {
	if g.SameShape(o) {
		return nil
	}
	opsf("%s rejected: %dx%d nodes over %dx%d vs %dx%d nodes over %dx%d",
		op, g.cols, g.rows, g.repW, g.repH, o.cols, o.rows, o.repW, o.repH)
	return fmt.Errorf("%s %dx%d grid with %dx%d grid: %w", op, g.cols, g.rows, o.cols, o.rows, l1math.ErrSizeMismatch)
}

// Clone returns a copy of the grid. The immutable lookup table is shared.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

func (g *Grid) String() string {
	return fmt.Sprintf("grid{%dx%d rf=%g nodes=%dx%d}", g.repW, g.repH, g.reduction, g.cols, g.rows)
}
