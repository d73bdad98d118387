package l3mask

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlap(t *testing.T) {
	t.Parallel()

	a := image.Rect(0, 0, 10, 10)
	b := image.Rect(5, 5, 25, 15)

	assert.Equal(t, 25, OverlapArea(a, b))
	assert.InDelta(t, 0.25, OverlapFraction(a, b), 1e-12)
	assert.InDelta(t, 25.0/200, OverlapFraction(b, a), 1e-12)
	assert.Zero(t, OverlapFraction(image.Rectangle{}, a))
	assert.Zero(t, OverlapArea(a, image.Rect(20, 20, 30, 30)))
}

func TestSeparation(t *testing.T) {
	t.Parallel()

	a := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name string
		b    image.Rectangle
		want float64
	}{
		{"overlapping", image.Rect(5, 5, 15, 15), 0},
		{"below", image.Rect(2, 14, 8, 20), 4},
		{"above", image.Rect(2, -20, 8, -3), 3},
		{"right", image.Rect(17, 2, 20, 8), 7},
		{"diagonal", image.Rect(13, 14, 20, 20), 5},
		{"touching", image.Rect(10, 0, 20, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Separation(a, tt.b), 1e-12)
			assert.InDelta(t, tt.want, Separation(tt.b, a), 1e-12)
		})
	}
}
