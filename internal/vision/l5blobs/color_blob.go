package l5blobs

import (
	"fmt"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l2ellipse"
)

// ColorBlob is a Blob with a mean RGB colour. The HSV colour is derived
// from RGB on every change.
type ColorBlob struct {
	Blob

	rgb l1math.Vec3f
	hsv l1math.Vec3f
}

// NewColorBlob returns a coloured blob with a fresh identity.
func NewColorBlob(e l2ellipse.Ellipse, mass int, rgb l1math.Vec3f) *ColorBlob {
	c := &ColorBlob{Blob: *NewBlob(e, mass)}
	c.SetRGB(rgb)
	return c
}

// RGB returns the blob colour.
func (c *ColorBlob) RGB() l1math.Vec3f { return c.rgb }

// HSV returns the blob colour in HSV.
func (c *ColorBlob) HSV() l1math.Vec3f { return c.hsv }

// SetRGB replaces the colour.
func (c *ColorBlob) SetRGB(rgb l1math.Vec3f) {
	c.rgb = rgb
	c.hsv = l1math.RGBToHSV(rgb)
}

// Merge folds o into c: the blobs are merged and the colours are blended
// weighted by the masses the two blobs had before merging.
func (c *ColorBlob) Merge(o *ColorBlob) {
	m1, m2 := float64(c.mass), float64(o.mass)
	c.Blob.Merge(&o.Blob)
	c.SetRGB(l1math.Blend(c.rgb, o.rgb, m1, m2))
}

// Clear resets geometry, mass and colour.
func (c *ColorBlob) Clear() {
	c.Blob.Clear()
	c.SetRGB(l1math.Vec3f{})
}

// Clone returns a copy of the coloured blob.
func (c *ColorBlob) Clone() *ColorBlob {
	cp := *c
	return &cp
}

func (c *ColorBlob) String() string {
	return fmt.Sprintf("colorBlob{rgb=%v %s}", c.rgb.Round(), c.Blob.String())
}
