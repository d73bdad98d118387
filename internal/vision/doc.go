// Package vision is the root of the layered vision data model:
//
//	l1math    primitives: vectors, running means, colour, error kinds
//	l2ellipse covariance ellipses and their weighted merge
//	l3mask    pixel masks, set algebra and moment extraction
//	l4grid    coordinate grids, sample counts, per-node colour means
//	l5blobs   blobs and bodies with their merge cascade
//
// A layer may only import the layers below it. This package configures
// the logging streams of every layer at once.
package vision
