// Package l4grid owns Layer 4 (Grids) of the vision data model.
//
// Responsibilities: quantising full-resolution image coordinates onto a
// reduced node grid, classifying nodes by their position (interior, edge
// or corner) to derive neighbourhood windows, counting samples per node,
// and keeping per-node running colour means with local and global
// count-weighted aggregation.
// Key types: Node, Grid, SampleGrid, ColorGrid.
//
// Dependency rule: L4 may depend on L1 (l1math) and L3 (l3mask).
//
// Node-space rectangles use x for the column and y for the row. Grids are
// single-owner values; none of the types here are safe for concurrent
// mutation.
package l4grid
