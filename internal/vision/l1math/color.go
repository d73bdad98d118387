package l1math

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Named RGB colours in the [0, 255] range.
var (
	Black = Vec3i{0, 0, 0}
	White = Vec3i{255, 255, 255}
	Grey  = Vec3i{128, 128, 128}
	Red   = Vec3i{255, 0, 0}
	Green = Vec3i{0, 255, 0}
	Blue  = Vec3i{0, 0, 255}
)

// HSV scale used throughout the vision layers: hue in degrees [0, 360),
// saturation and value in [0, 255] so they share the RGB sample range.
const (
	SatRange = 256
	ValRange = 256
)

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// RGBToHSV converts an RGB colour in [0, 255] to HSV.
func RGBToHSV(rgb Vec3f) Vec3f {
	c := colorful.Color{R: clamp255(rgb[0]) / 255, G: clamp255(rgb[1]) / 255, B: clamp255(rgb[2]) / 255}
	h, s, v := c.Hsv()
	if h >= 360 {
		h -= 360
	}
	return Vec3f{h, s * 255, v * 255}
}

// HSVToRGB converts an HSV colour (hue in degrees, S and V in [0, 255])
// back to RGB in [0, 255].
func HSVToRGB(hsv Vec3f) Vec3f {
	h := math.Mod(hsv[0], 360)
	if h < 0 {
		h += 360
	}
	c := colorful.Hsv(h, clamp255(hsv[1])/255, clamp255(hsv[2])/255).Clamped()
	return Vec3f{c.R * 255, c.G * 255, c.B * 255}
}

// CyclicHueDifference returns a-b wrapped into [-180, 180].
func CyclicHueDifference(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}

// Discriminance selects how strict HSV colour comparison is.
type Discriminance int

const (
	// DiscriminanceHigh separates colours that differ slightly.
	DiscriminanceHigh Discriminance = iota
	// DiscriminanceLow tolerates larger hue, saturation and value drift.
	DiscriminanceLow
)

func (d Discriminance) String() string {
	switch d {
	case DiscriminanceHigh:
		return "high"
	case DiscriminanceLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParseDiscriminance maps "high" or "low" to a Discriminance.
func ParseDiscriminance(s string) (Discriminance, bool) {
	switch s {
	case "high":
		return DiscriminanceHigh, true
	case "low":
		return DiscriminanceLow, true
	default:
		return DiscriminanceHigh, false
	}
}

const (
	satGrey        = 50   // below this saturation every colour reads as grey
	valDark        = 50   // below this value every colour reads as black
	minSatDisc     = 25.0 // smallest discriminable saturation difference
	minValDisc     = 25.0 // smallest discriminable value difference
	correctionSpan = 50.0

	// DefaultSameColorDistance is the largest HSV distance at which two
	// colours are still the same colour.
	DefaultSameColorDistance = 1.0
)

// HSVComparator computes a Mahalanobis-style distance between HSV colours
// with null cross-covariances. Hue differences are damped for greyish and
// dark colours, and saturation differences for dark colours, because those
// components carry little information there.
type HSVComparator struct {
	level        Discriminance
	hueDisc      float64
	satTolerance float64
	valTolerance float64
	greyFactor   [SatRange]float64
	darkFactor   [ValRange]float64
}

// NewHSVComparator builds a comparator for the given discriminance level.
func NewHSVComparator(level Discriminance) *HSVComparator {
	c := &HSVComparator{level: level}
	switch level {
	case DiscriminanceLow:
		c.hueDisc, c.satTolerance, c.valTolerance = 20, 0.5, 0.5
	default:
		c.level = DiscriminanceHigh
		c.hueDisc, c.satTolerance, c.valTolerance = 10, 0.25, 0.25
	}
	for i := range c.greyFactor {
		c.greyFactor[i] = correctionFactor(i, satGrey)
	}
	for i := range c.darkFactor {
		c.darkFactor[i] = correctionFactor(i, valDark)
	}
	return c
}

func correctionFactor(i, floor int) float64 {
	if i < floor {
		return 0
	}
	return math.Min(1, float64(i-floor)/correctionSpan)
}

// Level returns the comparator's discriminance level.
func (c *HSVComparator) Level() Discriminance { return c.level }

func tableIndex(v float64, size int) int {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// Distance returns the HSV distance between two colours.
func (c *HSVComparator) Distance(hsv1, hsv2 Vec3f) float64 {
	minSat := math.Min(hsv1[1], hsv2[1])
	minVal := math.Min(hsv1[2], hsv2[2])
	kGrey := c.greyFactor[tableIndex(minSat, SatRange)]
	kDark := c.darkFactor[tableIndex(minVal, ValRange)]

	satDisc := math.Max(math.Max(hsv1[1], hsv2[1])*c.satTolerance, minSatDisc)
	valDisc := math.Max(math.Max(hsv1[2], hsv2[2])*c.valTolerance, minValDisc)

	dHue := kGrey * kDark * CyclicHueDifference(hsv1[0], hsv2[0]) / c.hueDisc
	dSat := kDark * (hsv1[1] - hsv2[1]) / satDisc
	dVal := (hsv1[2] - hsv2[2]) / valDisc
	return math.Sqrt(dHue*dHue + dSat*dSat + dVal*dVal)
}

// SameColor reports whether the two colours are within maxDistance.
func (c *HSVComparator) SameColor(hsv1, hsv2 Vec3f, maxDistance float64) bool {
	return c.Distance(hsv1, hsv2) <= maxDistance
}
