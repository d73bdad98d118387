// Package l3mask owns Layer 3 (Regions) of the vision data model.
//
// Responsibilities: single-channel pixel masks located by a window in the
// outer image frame, their set algebra (union, intersection, logical and),
// binarisation, level curves, and the moment-based ellipse of a mask.
// Key types: Mask. Window helpers: OverlapArea, OverlapFraction, Separation.
//
// Dependency rule: L3 may depend on L1 (l1math) and L2 (l2ellipse).
//
// Windows are image.Rectangle values in outer-frame pixel coordinates; a
// mask buffer always has exactly the size of its window.
package l3mask
