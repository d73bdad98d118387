package l5blobs

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/blobstats/internal/vision/l2ellipse"
)

// Blob is an ellipse with the mass (pixel count) it summarises.
type Blob struct {
	id          uuid.UUID
	ellipse     l2ellipse.Ellipse
	mass        int
	shapeFactor float64
}

// NewBlob returns a blob with a fresh identity. A negative mass is
// treated as zero.
func NewBlob(e l2ellipse.Ellipse, mass int) *Blob {
	b := &Blob{id: uuid.New()}
	b.Set(e, mass)
	return b
}

// ID returns the blob identity. Clones keep it and a merge keeps the
// receiver's.
func (b *Blob) ID() uuid.UUID { return b.id }

// Ellipse returns the blob ellipse.
func (b *Blob) Ellipse() l2ellipse.Ellipse { return b.ellipse }

// Mass returns the blob mass.
func (b *Blob) Mass() int { return b.mass }

// ShapeFactor returns the ellipse width/height ratio.
func (b *Blob) ShapeFactor() float64 { return b.shapeFactor }

// Set replaces the ellipse and mass.
func (b *Blob) Set(e l2ellipse.Ellipse, mass int) {
	b.ellipse = e
	b.mass = max(0, mass)
	b.shapeFactor = e.ShapeFactor()
}

// Merge folds o into b, weighting each ellipse by its mass fraction. It
// is a no-op when both masses are zero.
func (b *Blob) Merge(o *Blob) {
	total := b.mass + o.mass
	if total == 0 {
		return
	}
	w1 := float64(b.mass) / float64(total)
	w2 := float64(o.mass) / float64(total)
	tracef("blob merge %s+%s w=(%.3f,%.3f)", b.id, o.id, w1, w2)
	b.Set(b.ellipse.Merge(o.ellipse, w1, w2), total)
}

// Clear resets geometry and mass, keeping the identity.
func (b *Blob) Clear() {
	b.Set(l2ellipse.Ellipse{}, 0)
}

// Clone returns a copy of the blob.
func (b *Blob) Clone() *Blob {
	c := *b
	return &c
}

func (b *Blob) String() string {
	return fmt.Sprintf("blob{mass=%d shape=%.2f %v}", b.mass, b.shapeFactor, b.ellipse)
}
