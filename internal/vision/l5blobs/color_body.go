package l5blobs

import (
	"fmt"
	"image"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l3mask"
	"github.com/banshee-data/blobstats/internal/vision/l4grid"
)

// ColorBody is a Body with a ColorGrid holding its spatial colour
// distribution. Its RGB colour is always the grid's global colour.
type ColorBody struct {
	Body

	grid *l4grid.ColorGrid
}

// NewColorBody builds a colour body from copies of mask and grid.
func NewColorBody(mask *l3mask.Mask, grid *l4grid.ColorGrid) (*ColorBody, error) {
	if grid == nil {
		return nil, fmt.Errorf("color body without grid: %w", l1math.ErrInvalidArgument)
	}
	body, err := NewBody(mask, l1math.Vec3f{})
	if err != nil {
		return nil, err
	}
	c := &ColorBody{Body: *body, grid: grid.Clone()}
	c.updateColor()
	return c, nil
}

// SampleColorBody builds a colour body from mask, sampling img through
// the mask into a new colour grid over img's bounds.
func SampleColorBody(img image.Image, mask *l3mask.Mask, reductionFactor float64) (*ColorBody, error) {
	b := img.Bounds()
	if b.Min != (image.Point{}) {
		return nil, fmt.Errorf("image bounds %v do not start at the origin: %w", b, l1math.ErrInvalidArgument)
	}
	grid, err := l4grid.NewColorGrid(b.Dx(), b.Dy(), reductionFactor)
	if err != nil {
		return nil, err
	}
	if err := grid.AddMaskedSamples(img, mask); err != nil {
		return nil, err
	}
	return NewColorBody(mask, grid)
}

// Grid returns the colour grid. It is owned by the body.
func (c *ColorBody) Grid() *l4grid.ColorGrid { return c.grid }

// updateColor sets RGB to the grid's global colour. A grid without
// samples leaves the colour untouched.
func (c *ColorBody) updateColor() {
	if rgb, ok := c.grid.GlobalColor(); ok {
		c.ColorBlob.SetRGB(rgb)
	}
}

// SetRGB keeps the colour tied to the grid: the argument is ignored and
// the colour is recomputed from the grid's global colour.
func (c *ColorBody) SetRGB(rgb l1math.Vec3f) {
	opsf("color body set rgb %v ignored: colour follows the grid", rgb.Round())
	c.updateColor()
}

// SetMask replaces the mask and recomputes the blob; the colour stays the
// grid's global colour.
func (c *ColorBody) SetMask(m *l3mask.Mask) error {
	if err := c.Body.SetMask(m); err != nil {
		return err
	}
	c.updateColor()
	return nil
}

// Resync recomputes the blob from the mask and the colour from the grid.
func (c *ColorBody) Resync() {
	c.Body.Resync()
	c.updateColor()
}

// Merge folds o into c: bodies first, then colour grids, then the colour
// is recomputed from the merged grid. Operands with an invalid mask or
// grids of a different shape are rejected before anything is modified.
func (c *ColorBody) Merge(o *ColorBody) error {
	if err := c.checkMerge(&o.Body); err != nil {
		return err
	}
	if !c.grid.SameShape(&o.grid.Grid) {
		opsf("color body merge rejected: grid %v vs %v", c.grid, o.grid)
		return fmt.Errorf("color body merge of %v with %v: %w", c.grid, o.grid, l1math.ErrSizeMismatch)
	}
	if err := c.Body.merge(&o.Body); err != nil {
		return err
	}
	if err := c.grid.Merge(o.grid); err != nil {
		return err
	}
	c.updateColor()
	diagf("color body merge %s mass=%d rgb=%v", c.id, c.mass, c.rgb.Round())
	return nil
}

// Clear resets the body and the grid.
func (c *ColorBody) Clear() {
	c.Body.Clear()
	c.grid.Clear()
}

// Clone returns a deep copy: mask pixels, grid counts and colours.
func (c *ColorBody) Clone() *ColorBody {
	return &ColorBody{Body: *c.Body.Clone(), grid: c.grid.Clone()}
}

func (c *ColorBody) String() string {
	return fmt.Sprintf("colorBody{%s %s}", c.grid, c.Body.String())
}
