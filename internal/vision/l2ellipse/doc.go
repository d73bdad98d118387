// Package l2ellipse owns Layer 2 (Shape) of the vision data model.
//
// Responsibilities: the covariance ellipse of a 2D point distribution,
// its derived main axes, and the weighted merge of two ellipses.
// Key types: Ellipse, Axes.
//
// Dependency rule: L2 may depend on L1 (l1math) only.
//
// Image coordinates are used throughout: x grows to the right and y grows
// downward, so a positive angle is counter clockwise on screen.
package l2ellipse
