package l3mask

import (
	"image"
	"math"
)

// OverlapArea returns the area of the intersection of a and b.
func OverlapArea(a, b image.Rectangle) int {
	in := a.Intersect(b)
	return in.Dx() * in.Dy()
}

// OverlapFraction returns the fraction of a covered by b, or 0 when a is
// empty.
func OverlapFraction(a, b image.Rectangle) float64 {
	if a.Empty() {
		return 0
	}
	return float64(OverlapArea(a, b)) / float64(a.Dx()*a.Dy())
}

// Separation returns the minimum distance between two windows: zero when
// they overlap, the gap along one axis when their projections on the
// other axis overlap, and the distance between the nearest corners
// otherwise.
func Separation(a, b image.Rectangle) float64 {
	if a.Overlaps(b) {
		return 0
	}
	dx := max(0, b.Min.X-a.Max.X, a.Min.X-b.Max.X)
	dy := max(0, b.Min.Y-a.Max.Y, a.Min.Y-b.Max.Y)
	return math.Hypot(float64(dx), float64(dy))
}
