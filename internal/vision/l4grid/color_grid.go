package l4grid

import (
	"fmt"
	"image"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l3mask"
)

// ColorGrid is a SampleGrid that keeps a running mean RGB colour per
// node. A node colour is only meaningful where its count is positive.
type ColorGrid struct {
	SampleGrid

	colors []l1math.Vec3f // row-major, rows*cols
}

// NewColorGrid builds an empty colour grid; see NewGrid for the
// arguments.
func NewColorGrid(width, height int, reductionFactor float64) (*ColorGrid, error) {
	c := &ColorGrid{}
	if err := c.SampleGrid.init(width, height, reductionFactor); err != nil {
		return nil, err
	}
	c.colors = make([]l1math.Vec3f, c.rows*c.cols)
	return c, nil
}

// AddColorSample folds rgb into the focused node's running mean and
// counts the sample.
func (c *ColorGrid) AddColorSample(rgb l1math.Vec3f) {
	i := c.focusIndex()
	n := addSaturating(c.counts[i], 1)
	c.colors[i] = l1math.UpdateMean(c.colors[i], rgb, n)
	c.AddSample()
}

// FocusColor returns the mean colour of the focused node.
func (c *ColorGrid) FocusColor() l1math.Vec3f { return c.colors[c.focusIndex()] }

// ColorAt returns the mean colour of node (row, col). ok is false when the
// node is outside the grid or has no samples.
func (c *ColorGrid) ColorAt(row, col int) (rgb l1math.Vec3f, ok bool) {
	if c.SamplesAt(row, col) == 0 {
		return l1math.Vec3f{}, false
	}
	return c.colors[c.index(row, col)], true
}

// LocalColor returns the count-weighted mean colour over the focused
// node's neighbourhood. ok is false when no neighbour has samples.
func (c *ColorGrid) LocalColor() (l1math.Vec3f, bool) {
	return c.weightedColor(c.focus.Neighbourhood().Intersect(c.Bounds()))
}

// GlobalColor returns the count-weighted mean colour over the sampled
// window. ok is false before the first sample.
func (c *ColorGrid) GlobalColor() (l1math.Vec3f, bool) {
	return c.weightedColor(c.sampled)
}

// weightedColor computes Σ(colour·count)/Σ(count) over node rectangle r.
// Nodes without samples carry zero weight.
func (c *ColorGrid) weightedColor(r image.Rectangle) (l1math.Vec3f, bool) {
	n := r.Dx() * r.Dy()
	if n <= 0 {
		return l1math.Vec3f{}, false
	}
	values := make([]l1math.Vec3f, 0, n)
	weights := make([]float64, 0, n)
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			i := c.index(row, col)
			values = append(values, c.colors[i])
			weights = append(weights, float64(c.counts[i]))
		}
	}
	return l1math.WeightedMean3(values, weights)
}

// Merge merges o into c. Counts are summed as in SampleGrid.Merge. Node
// colours are combined per node: where both grids hold samples the
// colours are averaged weighted by their pre-merge counts, and where only
// one grid does its colour is kept. Grids of a different shape are
// rejected with ErrSizeMismatch and neither grid is modified.
func (c *ColorGrid) Merge(o *ColorGrid) error {
	if err := c.checkShape("color merge", &o.Grid); err != nil {
		return err
	}
	r := o.sampled
	overlap := 0
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			i := c.index(row, col)
			n1, n2 := c.counts[i], o.counts[i]
			switch {
			case n2 == 0:
			case n1 == 0:
				c.colors[i] = o.colors[i]
			default:
				c.colors[i] = l1math.Blend(c.colors[i], o.colors[i], float64(n1), float64(n2))
				overlap++
			}
		}
	}
	diagf("color merge: %d overlapping nodes", overlap)
	c.mergeCounts(&o.SampleGrid)
	return nil
}

// Clear zeroes every count and colour and empties the sampled window.
func (c *ColorGrid) Clear() {
	c.SampleGrid.Clear()
	clear(c.colors)
}

// Clone returns a deep copy of the colour grid.
func (c *ColorGrid) Clone() *ColorGrid {
	return &ColorGrid{
		SampleGrid: *c.SampleGrid.Clone(),
		colors:     append([]l1math.Vec3f(nil), c.colors...),
	}
}

func (c *ColorGrid) String() string {
	return fmt.Sprintf("colorGrid{%s sampled=%v}", c.Grid.String(), c.sampled)
}

// AddMaskedSamples adds one colour sample from img for every non-zero
// pixel of m. The mask window must lie inside the represented matrix.
func (c *ColorGrid) AddMaskedSamples(img image.Image, m *l3mask.Mask) error {
	if !m.IsValid() {
		return fmt.Errorf("sample through invalid mask: %w", l1math.ErrInvalidArgument)
	}
	w := m.Window()
	if !w.In(image.Rect(0, 0, c.repW, c.repH)) {
		return fmt.Errorf("mask window %v outside %dx%d: %w", w, c.repW, c.repH, l1math.ErrInvalidArgument)
	}
	if !w.In(img.Bounds()) {
		return fmt.Errorf("mask window %v outside image bounds %v: %w", w, img.Bounds(), l1math.ErrInvalidArgument)
	}
	n := 0
	for y := w.Min.Y; y < w.Max.Y; y++ {
		for x := w.Min.X; x < w.Max.X; x++ {
			if m.At(x, y) == 0 {
				continue
			}
			if _, err := c.Focus(x, y); err != nil {
				return err
			}
			r, g, b, _ := img.At(x, y).RGBA()
			c.AddColorSample(l1math.Vec3f{float64(r >> 8), float64(g >> 8), float64(b >> 8)})
			n++
		}
	}
	diagf("masked sampling over %v: %d samples", w, n)
	return nil
}
