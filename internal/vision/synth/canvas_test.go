package synth

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/blobstats/internal/testutil"
	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

func TestNewBlockCanvas(t *testing.T) {
	t.Parallel()

	c, err := NewBlockCanvas(200, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Granularity())
	assert.Equal(t, image.Rect(0, 0, 200, 100), c.Image().Bounds())
	assert.True(t, c.DrawnWindow().Empty())

	c, err = NewBlockCanvas(10, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Granularity(), "oversized granularity falls back to 1")

	_, err = NewBlockCanvas(0, 10, 2)
	assert.True(t, errors.Is(err, l1math.ErrInvalidArgument))
}

func TestFillBlock(t *testing.T) {
	t.Parallel()

	c, err := NewBlockCanvas(200, 100, 3)
	require.NoError(t, err)

	require.NoError(t, c.FillBlock(1, 1))
	assert.Equal(t, 66*33, testutil.CountNonZero(c.Image()))
	assert.Equal(t, image.Rect(66, 33, 132, 66), c.DrawnWindow())
	assert.Equal(t, uint8(255), c.Image().GrayAt(66, 33).Y)
	assert.Equal(t, uint8(0), c.Image().GrayAt(65, 33).Y)

	err = c.FillBlock(3, 0)
	assert.True(t, errors.Is(err, l1math.ErrInvalidArgument))
}

func TestFillEdges(t *testing.T) {
	t.Parallel()

	c, err := NewBlockCanvas(90, 90, 3)
	require.NoError(t, err)

	c.FillTop()
	assert.Equal(t, image.Rect(0, 0, 90, 30), c.DrawnWindow())
	c.FillBottomRight()
	assert.Equal(t, image.Rect(0, 0, 90, 90), c.DrawnWindow())
	assert.Equal(t, 4*30*30, testutil.CountNonZero(c.Image()))

	c.Clear()
	assert.Zero(t, testutil.CountNonZero(c.Image()))
	assert.True(t, c.DrawnWindow().Empty())

	c.SetValue(7)
	c.FillLeft()
	c.FillRight()
	c.FillBottom()
	c.FillTopLeft()
	c.FillTopRight()
	c.FillBottomLeft()
	assert.Equal(t, 7*30*30, testutil.CountNonZero(c.Image()))
	assert.Equal(t, uint8(7), c.Image().GrayAt(0, 0).Y)
}
