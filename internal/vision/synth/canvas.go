// Package synth draws synthetic block scenes: an n×n arrangement of equal
// rectangular blocks on a single-channel canvas. Tools and tests use it to
// produce masks whose mass and moments are known in advance.
package synth

import (
	"fmt"
	"image"
	"image/color"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// DefaultGranularity is the block arrangement used when none is given.
const DefaultGranularity = 2

// BlockCanvas is a single-channel canvas divided into granularity ×
// granularity blocks of equal size.
type BlockCanvas struct {
	img         *image.Gray
	granularity int
	blockW      int
	blockH      int
	value       uint8
	drawn       image.Rectangle
}

// NewBlockCanvas creates a w×h black canvas. A granularity that does not
// fit inside the canvas falls back to 1.
func NewBlockCanvas(w, h, granularity int) (*BlockCanvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d: %w", w, h, l1math.ErrInvalidArgument)
	}
	if granularity <= 0 || granularity >= w || granularity >= h {
		granularity = 1
	}
	return &BlockCanvas{
		img:         image.NewGray(image.Rect(0, 0, w, h)),
		granularity: granularity,
		blockW:      w / granularity,
		blockH:      h / granularity,
		value:       255,
	}, nil
}

// Granularity returns the number of blocks per side.
func (c *BlockCanvas) Granularity() int { return c.granularity }

// Image returns the canvas. The image is shared, not copied.
func (c *BlockCanvas) Image() *image.Gray { return c.img }

// DrawnWindow returns the bounding rectangle of every block filled since
// the last Clear, or the empty rectangle.
func (c *BlockCanvas) DrawnWindow() image.Rectangle { return c.drawn }

// SetValue sets the pixel value used by subsequent fills.
func (c *BlockCanvas) SetValue(v uint8) { c.value = v }

// BlockWindow returns the rectangle covered by the block at (row, col).
func (c *BlockCanvas) BlockWindow(row, col int) (image.Rectangle, error) {
	if row < 0 || col < 0 || row >= c.granularity || col >= c.granularity {
		return image.Rectangle{}, fmt.Errorf("block (%d,%d) outside %dx%d arrangement: %w",
			row, col, c.granularity, c.granularity, l1math.ErrInvalidArgument)
	}
	x, y := col*c.blockW, row*c.blockH
	return image.Rect(x, y, x+c.blockW, y+c.blockH), nil
}

// FillBlock paints the block at (row, col).
func (c *BlockCanvas) FillBlock(row, col int) error {
	r, err := c.BlockWindow(row, col)
	if err != nil {
		return err
	}
	fill := color.Gray{Y: c.value}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.img.SetGray(x, y, fill)
		}
	}
	c.drawn = c.drawn.Union(r)
	return nil
}

// FillTop paints the first row of blocks.
func (c *BlockCanvas) FillTop() { c.fillRow(0) }

// FillBottom paints the last row of blocks.
func (c *BlockCanvas) FillBottom() { c.fillRow(c.granularity - 1) }

// FillLeft paints the first column of blocks.
func (c *BlockCanvas) FillLeft() { c.fillCol(0) }

// FillRight paints the last column of blocks.
func (c *BlockCanvas) FillRight() { c.fillCol(c.granularity - 1) }

// FillTopLeft paints the top left corner block.
func (c *BlockCanvas) FillTopLeft() { _ = c.FillBlock(0, 0) }

// FillTopRight paints the top right corner block.
func (c *BlockCanvas) FillTopRight() { _ = c.FillBlock(0, c.granularity-1) }

// FillBottomLeft paints the bottom left corner block.
func (c *BlockCanvas) FillBottomLeft() { _ = c.FillBlock(c.granularity-1, 0) }

// FillBottomRight paints the bottom right corner block.
func (c *BlockCanvas) FillBottomRight() { _ = c.FillBlock(c.granularity-1, c.granularity-1) }

func (c *BlockCanvas) fillRow(row int) {
	for col := 0; col < c.granularity; col++ {
		_ = c.FillBlock(row, col)
	}
}

func (c *BlockCanvas) fillCol(col int) {
	for row := 0; row < c.granularity; row++ {
		_ = c.FillBlock(row, col)
	}
}

// Clear blanks the canvas and resets the drawn window.
func (c *BlockCanvas) Clear() {
	clear(c.img.Pix)
	c.drawn = image.Rectangle{}
}
