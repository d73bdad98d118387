package l1math

import (
	"fmt"
	"math"
)

// Vec2f is a 2D point or displacement with float precision.
type Vec2f struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2f) Add(o Vec2f) Vec2f { return Vec2f{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2f) Sub(o Vec2f) Vec2f { return Vec2f{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2f) Scale(k float64) Vec2f { return Vec2f{v.X * k, v.Y * k} }

// Norm returns the Euclidean length of v.
func (v Vec2f) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Round returns v rounded to the nearest integer coordinates.
func (v Vec2f) Round() (int, int) {
	return int(math.Round(v.X)), int(math.Round(v.Y))
}

func (v Vec2f) String() string { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }

// Vec3f is a 3-component float tuple. It holds RGB or HSV colours and
// the (xx, yy, xy) covariance triple.
type Vec3f [3]float64

// Add returns v + o.
func (v Vec3f) Add(o Vec3f) Vec3f { return Vec3f{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v - o.
func (v Vec3f) Sub(o Vec3f) Vec3f { return Vec3f{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Scale returns v * k.
func (v Vec3f) Scale(k float64) Vec3f { return Vec3f{v[0] * k, v[1] * k, v[2] * k} }

// Round converts v to the nearest integer tuple.
func (v Vec3f) Round() Vec3i {
	return Vec3i{int(math.Round(v[0])), int(math.Round(v[1])), int(math.Round(v[2]))}
}

// ApproxEqual reports whether every component of v is within tol of o.
func (v Vec3f) ApproxEqual(o Vec3f, tol float64) bool {
	for i := range v {
		if math.Abs(v[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

func (v Vec3f) String() string { return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2]) }

// Vec3i is a 3-component integer tuple, typically an 8-bit RGB sample.
type Vec3i [3]int

// Float converts v to a Vec3f.
func (v Vec3i) Float() Vec3f { return Vec3f{float64(v[0]), float64(v[1]), float64(v[2])} }

func (v Vec3i) String() string { return fmt.Sprintf("(%d, %d, %d)", v[0], v[1], v[2]) }
