package l5blobs

import (
	"github.com/google/uuid"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l2ellipse"
	"github.com/banshee-data/blobstats/internal/vision/l3mask"
	"github.com/banshee-data/blobstats/internal/vision/l4grid"
)

// Shaped is implemented by every composite.
type Shaped interface {
	ID() uuid.UUID
	Ellipse() l2ellipse.Ellipse
	Mass() int
	ShapeFactor() float64
}

// HasColor is implemented by composites carrying a scalar colour.
type HasColor interface {
	RGB() l1math.Vec3f
	HSV() l1math.Vec3f
}

// HasMask is implemented by composites carrying a pixel mask.
type HasMask interface {
	Mask() *l3mask.Mask
}

// HasSamples is implemented by composites carrying a colour grid.
type HasSamples interface {
	Grid() *l4grid.ColorGrid
}

var (
	_ Shaped     = (*Blob)(nil)
	_ HasColor   = (*ColorBlob)(nil)
	_ HasMask    = (*Body)(nil)
	_ HasSamples = (*ColorBody)(nil)
)
