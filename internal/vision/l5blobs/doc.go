// Package l5blobs owns Layer 5 (Composites) of the vision data model.
//
// Responsibilities: detection summaries built from the lower layers and
// their merge cascade. Each richer type embeds the simpler one and
// defines its own Merge that first delegates to the embedded merge and
// then merges its extra state:
//
//	Blob      ellipse + mass + shape factor
//	ColorBlob Blob + RGB (HSV derived)
//	Body      ColorBlob + Mask (blob derived from the mask)
//	ColorBody Body + ColorGrid (RGB equals the grid's global colour)
//
// Key types: Blob, ColorBlob, Body, ColorBody, Summary.
// Capabilities: Shaped, HasColor, HasMask, HasSamples.
//
// Dependency rule: L5 may depend on L1-L4.
//
// Callers that need to keep an operand intact merge into a clone:
//
//	merged := a.Clone()
//	err := merged.Merge(b)
package l5blobs
