package l2ellipse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// ShapeFactorSentinel is returned by ShapeFactor when the ellipse has no
// minor axis.
const ShapeFactorSentinel = 1000.0

// Ellipse is a centroid plus the (xx, yy, xy) covariance of the points it
// summarises. Width, height and angle are derived from the covariance and
// kept in sync by every mutating method, so construct values with New.
type Ellipse struct {
	center l1math.Vec2f
	cov    l1math.Vec3f

	width  float64 // main axis radial size
	height float64 // secondary axis radial size
	angle  float64 // main axis orientation in degrees, [-90, 90]
}

// New returns an ellipse with the given centre and covariance.
func New(center l1math.Vec2f, cov l1math.Vec3f) Ellipse {
	e := Ellipse{center: center}
	e.SetCovariance(cov)
	return e
}

// Center returns the centroid.
func (e Ellipse) Center() l1math.Vec2f { return e.center }

// Point returns the centroid rounded to pixel coordinates.
func (e Ellipse) Point() (x, y int) { return e.center.Round() }

// Covariance returns (xx, yy, xy).
func (e Ellipse) Covariance() l1math.Vec3f { return e.cov }

// Width returns the main axis radial size.
func (e Ellipse) Width() float64 { return e.width }

// Height returns the secondary axis radial size.
func (e Ellipse) Height() float64 { return e.height }

// Angle returns the main axis orientation in degrees within [-90, 90].
func (e Ellipse) Angle() float64 { return e.angle }

// SetCenter moves the ellipse without touching its covariance.
func (e *Ellipse) SetCenter(c l1math.Vec2f) { e.center = c }

// SetCovariance replaces the covariance and recomputes the main axes.
func (e *Ellipse) SetCovariance(cov l1math.Vec3f) {
	e.cov = cov
	e.updateMainAxes()
}

func (e *Ellipse) updateMainAxes() {
	xx, yy, xy := e.cov[0], e.cov[1], e.cov[2]
	a := xx - yy
	b := 2 * xy
	h := math.Hypot(a, b)

	e.width = math.Sqrt(math.Max(0, xx+yy+h) / 2)
	if aux := xx + yy - h; aux > 0 {
		e.height = math.Sqrt(aux / 2)
	} else {
		e.height = 0
	}
	// y is negated because the image y axis points down.
	e.angle = math.Atan2(-b, a) / 2 * 180 / math.Pi
}

// ShapeFactor returns width/height, or ShapeFactorSentinel when the
// height is zero.
func (e Ellipse) ShapeFactor() float64 {
	if e.height == 0 {
		return ShapeFactorSentinel
	}
	return e.width / e.height
}

// IsDegenerate reports whether the ellipse has no minor axis.
func (e Ellipse) IsDegenerate() bool { return e.height == 0 }

// Clear resets the ellipse to the zero state.
func (e *Ellipse) Clear() { *e = Ellipse{} }

// Merge returns the ellipse of the union of both point sets, given the
// fraction of the union each one represents. Weights are normally
// mass fractions that sum to 1.
//
//	centre = w1·p1 + w2·p2
//	cov    = w1·C1 + w2·C2 + w1·w2·(dx², dy², dx·dy)
func (e Ellipse) Merge(o Ellipse, w1, w2 float64) Ellipse {
	d := e.center.Sub(o.center)
	w12 := w1 * w2
	center := e.center.Scale(w1).Add(o.center.Scale(w2))
	cov := e.cov.Scale(w1).Add(o.cov.Scale(w2)).Add(l1math.Vec3f{d.X * d.X, d.Y * d.Y, d.X * d.Y}.Scale(w12))
	return New(center, cov)
}

func (e Ellipse) symDense() *mat.SymDense {
	return mat.NewSymDense(2, []float64{e.cov[0], e.cov[2], e.cov[2], e.cov[1]})
}

// Axes holds the principal directions of an ellipse as unit vectors,
// with the variance along each.
type Axes struct {
	Major, Minor       l1math.Vec2f
	MajorVar, MinorVar float64
}

// PrincipalAxes returns the eigen decomposition of the covariance.
func (e Ellipse) PrincipalAxes() (Axes, error) {
	var es mat.EigenSym
	if ok := es.Factorize(e.symDense(), true); !ok {
		return Axes{}, fmt.Errorf("eigen decomposition of %v: %w", e.cov, l1math.ErrDegenerate)
	}
	values := es.Values(nil) // ascending
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	return Axes{
		Major:    l1math.Vec2f{X: vecs.At(0, 1), Y: vecs.At(1, 1)},
		Minor:    l1math.Vec2f{X: vecs.At(0, 0), Y: vecs.At(1, 0)},
		MajorVar: math.Max(0, values[1]),
		MinorVar: math.Max(0, values[0]),
	}, nil
}

// MahalanobisSqr returns the squared Mahalanobis distance from p to the
// ellipse centre. It fails with ErrDegenerate when the covariance is not
// positive definite.
func (e Ellipse) MahalanobisSqr(p l1math.Vec2f) (float64, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(e.symDense()); !ok {
		return 0, fmt.Errorf("covariance %v is not positive definite: %w", e.cov, l1math.ErrDegenerate)
	}
	x := mat.NewVecDense(2, []float64{p.X, p.Y})
	mu := mat.NewVecDense(2, []float64{e.center.X, e.center.Y})
	d := stat.Mahalanobis(x, mu, &chol)
	return d * d, nil
}

func (e Ellipse) String() string {
	return fmt.Sprintf("ellipse{centre=%v cov=%v w=%.3f h=%.3f angle=%.2f}",
		e.center, e.cov, e.width, e.height, e.angle)
}
