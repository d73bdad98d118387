package l5blobs

import (
	"fmt"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l2ellipse"
	"github.com/banshee-data/blobstats/internal/vision/l3mask"
)

// Mask pixel values used by bodies.
const (
	BodyValue   = 255
	BorderValue = 1
)

// Body is a ColorBlob backed by a pixel mask. Setting the mask
// recomputes ellipse, mass and shape factor from it.
type Body struct {
	ColorBlob

	mask *l3mask.Mask
}

// NewBody builds a body from a copy of mask with colour rgb.
func NewBody(mask *l3mask.Mask, rgb l1math.Vec3f) (*Body, error) {
	b := &Body{ColorBlob: *NewColorBlob(l2ellipse.Ellipse{}, 0, rgb)}
	if err := b.SetMask(mask); err != nil {
		return nil, err
	}
	return b, nil
}

// Mask returns the body mask. It is owned by the body; use SetMask to
// replace it.
func (b *Body) Mask() *l3mask.Mask { return b.mask }

// SetMask replaces the mask with a copy of m and recomputes the blob.
func (b *Body) SetMask(m *l3mask.Mask) error {
	if !m.IsValid() {
		return fmt.Errorf("body mask: %w", l1math.ErrInvalidArgument)
	}
	b.mask = m.Clone()
	b.Resync()
	return nil
}

// Resync recomputes ellipse, mass and shape factor from the mask.
func (b *Body) Resync() {
	b.Blob.Set(b.mask.Ellipse(), b.mask.Mass())
}

// Set exists so the geometry of a body cannot drift from its mask: the
// arguments are ignored and the blob is recomputed from the mask. Use
// SetMask to change the shape.
func (b *Body) Set(_ l2ellipse.Ellipse, mass int) {
	opsf("body set ignored (mass=%d): geometry follows the mask", mass)
	b.Resync()
}

// checkMerge rejects operands with an invalid mask. Once it passes, the
// mask union in merge cannot fail.
func (b *Body) checkMerge(o *Body) error {
	if !b.mask.IsValid() || !o.mask.IsValid() {
		opsf("body merge rejected: invalid mask (receiver=%t other=%t)", b.mask.IsValid(), o.mask.IsValid())
		return fmt.Errorf("body merge with invalid mask: %w", l1math.ErrInvalidArgument)
	}
	return nil
}

// Merge folds o into b: the coloured blobs are merged and the masks are
// ORed. The merged ellipse is exact when the two masks are disjoint; call
// Resync to recompute it from the merged mask otherwise. Bodies with an
// invalid mask are rejected and neither body is modified.
func (b *Body) Merge(o *Body) error {
	if err := b.checkMerge(o); err != nil {
		return err
	}
	return b.merge(o)
}

func (b *Body) merge(o *Body) error {
	if err := b.mask.Merge(o.mask); err != nil {
		return fmt.Errorf("body merge: %w", err)
	}
	b.ColorBlob.Merge(&o.ColorBlob)
	return nil
}

// Overlap returns the number of pixels present in both masks.
func (b *Body) Overlap(o *Body) int {
	m := b.mask.Clone()
	if err := m.Intersect(o.mask); err != nil {
		return 0
	}
	return m.Mass()
}

// BorderMask returns the level curve of the mask at BorderValue.
func (b *Body) BorderMask() (*l3mask.Mask, error) {
	return b.mask.LevelCurve(BorderValue)
}

// Clear resets the blob and drops the mask.
func (b *Body) Clear() {
	b.ColorBlob.Clear()
	b.mask.Clear()
}

// Clone returns a deep copy of the body, mask pixels included.
func (b *Body) Clone() *Body {
	return &Body{ColorBlob: *b.ColorBlob.Clone(), mask: b.mask.Clone()}
}

func (b *Body) String() string {
	return fmt.Sprintf("body{%s %s}", b.mask, b.ColorBlob.String())
}
