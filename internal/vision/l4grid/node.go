package l4grid

import (
	"fmt"
	"image"
)

// Location classifies a node by its position in the grid.
type Location uint8

const (
	Internal Location = iota
	North             // top border
	South             // bottom border
	East              // right border
	West              // left border
	NorthEast         // top right corner
	NorthWest         // top left corner
	SouthEast         // bottom right corner
	SouthWest         // bottom left corner
)

var locationNames = [...]string{"internal", "N", "S", "E", "W", "NE", "NW", "SE", "SW"}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("Location(%d)", uint8(l))
}

// neighbourhoods holds the window around a node, relative to the node,
// for each location. Edge nodes lose the side that lies outside the grid
// and corner nodes lose two sides.
var neighbourhoods = [...]image.Rectangle{
	Internal:  image.Rect(-1, -1, 2, 2),
	North:     image.Rect(-1, 0, 2, 2),
	South:     image.Rect(-1, -1, 2, 1),
	East:      image.Rect(-1, -1, 1, 2),
	West:      image.Rect(0, -1, 2, 2),
	NorthEast: image.Rect(-1, 0, 1, 2),
	NorthWest: image.Rect(0, 0, 2, 2),
	SouthEast: image.Rect(-1, -1, 1, 1),
	SouthWest: image.Rect(0, -1, 2, 1),
}

// classify returns the location of (row, col) in a rows×cols grid.
func classify(row, col, rows, cols int) Location {
	top, bottom := row == 0, row == rows-1
	left, right := col == 0, col == cols-1
	switch {
	case top && left:
		return NorthWest
	case top && right:
		return NorthEast
	case bottom && left:
		return SouthWest
	case bottom && right:
		return SouthEast
	case top:
		return North
	case bottom:
		return South
	case left:
		return West
	case right:
		return East
	default:
		return Internal
	}
}

// Node is a grid cell with its location tag and neighbourhood window.
type Node struct {
	row, col int
	location Location
	window   image.Rectangle // neighbourhood in node coordinates
}

func newNode(row, col int, loc Location) Node {
	return Node{row: row, col: col, location: loc, window: neighbourhoods[loc].Add(image.Pt(col, row))}
}

// set moves the node and recomputes its window. It reports whether the
// position changed; the location only changes with the position.
func (n *Node) set(row, col int, loc Location) bool {
	if n.row == row && n.col == col {
		return false
	}
	*n = newNode(row, col, loc)
	return true
}

// Row returns the node row.
func (n Node) Row() int { return n.row }

// Col returns the node column.
func (n Node) Col() int { return n.col }

// Location returns the node location tag.
func (n Node) Location() Location { return n.location }

// Neighbourhood returns the window of the node and its existing
// neighbours in node coordinates: 3×3 inside the grid, 3×2 or 2×3 on an
// edge, 2×2 in a corner.
func (n Node) Neighbourhood() image.Rectangle { return n.window }

func (n Node) String() string {
	return fmt.Sprintf("node(%d,%d %s)", n.row, n.col, n.location)
}
