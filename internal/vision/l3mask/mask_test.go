package l3mask

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/synth"
)

// blockMask draws the given blocks of a granularity×granularity canvas
// and returns the full-canvas mask.
func blockMask(t *testing.T, w, h, granularity int, blocks ...image.Point) *Mask {
	t.Helper()
	c, err := synth.NewBlockCanvas(w, h, granularity)
	require.NoError(t, err)
	for _, b := range blocks {
		require.NoError(t, c.FillBlock(b.Y, b.X))
	}
	m, err := FromGray(c.Image())
	require.NoError(t, err)
	return m
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	gray := image.NewGray(image.Rect(0, 0, 10, 10))

	tests := []struct {
		name   string
		img    image.Image
		window image.Rectangle
	}{
		{"colour image", image.NewRGBA(image.Rect(0, 0, 10, 10)), image.Rect(0, 0, 5, 5)},
		{"empty image", image.NewGray(image.Rectangle{}), image.Rectangle{}},
		{"window outside", gray, image.Rect(5, 5, 11, 8)},
		{"nil gray", (*image.Gray)(nil), image.Rect(0, 0, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.img, tt.window)
			require.Error(t, err)
			assert.True(t, errors.Is(err, l1math.ErrInvalidArgument))
			require.NotNil(t, m)
			assert.False(t, m.IsValid())
			assert.Zero(t, m.Mass())
			assert.True(t, m.Window().Empty())
		})
	}
}

func TestSet_FailureInvalidatesMask(t *testing.T) {
	t.Parallel()

	m := blockMask(t, 30, 30, 3, image.Pt(0, 0))
	require.True(t, m.IsValid())

	err := m.Set(image.NewRGBA(image.Rect(0, 0, 4, 4)), image.Rect(0, 0, 2, 2))
	require.Error(t, err)
	assert.False(t, m.IsValid())
	assert.Equal(t, "mask{invalid}", m.String())
}

func TestNew_CropsAndCopies(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 10, 10))
	src.SetGray(3, 4, color.Gray{Y: 200})

	m, err := New(src, image.Rect(2, 3, 6, 8))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(2, 3, 6, 8), m.Window())
	assert.Equal(t, uint8(200), m.At(3, 4))
	assert.Equal(t, uint8(0), m.At(0, 0), "outside window")

	src.SetGray(3, 4, color.Gray{Y: 0})
	assert.Equal(t, uint8(200), m.At(3, 4), "mask must not alias its source")
	assert.Equal(t, "mask{window=(2,3,4,5)}", m.String())
}

func TestMass(t *testing.T) {
	t.Parallel()

	m := blockMask(t, 200, 100, 3, image.Pt(1, 1))
	assert.Equal(t, 2178, m.Mass())

	var invalid Mask
	assert.Zero(t, invalid.Mass())
}

func TestEllipse(t *testing.T) {
	t.Parallel()

	// A 3-pixel horizontal run at y=5, x=10..12.
	src := image.NewGray(image.Rect(0, 0, 20, 20))
	for x := 10; x <= 12; x++ {
		src.SetGray(x, 5, color.Gray{Y: 255})
	}
	m, err := New(src, image.Rect(8, 4, 16, 8))
	require.NoError(t, err)

	e := m.Ellipse()
	assert.InDelta(t, 11.0, e.Center().X, 1e-12)
	assert.InDelta(t, 5.0, e.Center().Y, 1e-12)
	assert.True(t, e.Covariance().ApproxEqual(l1math.Vec3f{2.0 / 3, 0, 0}, 1e-12), "got %v", e.Covariance())
	assert.True(t, e.IsDegenerate())
}

func TestEllipse_EmptyMask(t *testing.T) {
	t.Parallel()

	m := blockMask(t, 30, 30, 3)
	e := m.Ellipse()
	assert.Zero(t, e.Width())
	assert.Zero(t, e.Center().X)
}

func TestMerge_DisjointMassAdditivity(t *testing.T) {
	t.Parallel()

	a := blockMask(t, 200, 100, 3, image.Pt(0, 0))
	b := blockMask(t, 200, 100, 3, image.Pt(2, 2))
	a1, err := New(a.Gray(), image.Rect(0, 0, 66, 33))
	require.NoError(t, err)
	b1, err := New(b.Gray(), image.Rect(132, 66, 198, 99))
	require.NoError(t, err)

	massA, massB := a1.Mass(), b1.Mass()
	require.NoError(t, a1.Merge(b1))
	assert.Equal(t, massA+massB, a1.Mass())
	assert.Equal(t, image.Rect(0, 0, 198, 99), a1.Window())
	assert.Equal(t, 66*33, b1.Mass(), "argument untouched")
}

func TestMerge_EllipseMatchesMergedEllipse(t *testing.T) {
	t.Parallel()

	a := blockMask(t, 200, 100, 3, image.Pt(0, 0))
	b := blockMask(t, 200, 100, 3, image.Pt(1, 2))
	ea, eb := a.Ellipse(), b.Ellipse()
	ma, mb := float64(a.Mass()), float64(b.Mass())

	merged := ea.Merge(eb, ma/(ma+mb), mb/(ma+mb))
	require.NoError(t, a.Merge(b))
	direct := a.Ellipse()

	assert.InDelta(t, direct.Center().X, merged.Center().X, 1e-9)
	assert.InDelta(t, direct.Center().Y, merged.Center().Y, 1e-9)
	assert.True(t, direct.Covariance().ApproxEqual(merged.Covariance(), 1e-6),
		"direct %v merged %v", direct.Covariance(), merged.Covariance())
}

func TestMerge_EllipseWithArbitraryWeights(t *testing.T) {
	t.Parallel()

	// unequal masses: one block against two
	a := blockMask(t, 200, 100, 3, image.Pt(0, 0))
	b := blockMask(t, 200, 100, 3, image.Pt(1, 1), image.Pt(2, 2))
	require.Equal(t, 2*a.Mass(), b.Mass())
	ea, eb := a.Ellipse(), b.Ellipse()

	union := a.Clone()
	require.NoError(t, union.Merge(b))
	direct := union.Ellipse()

	tests := []struct {
		name   string
		w1, w2 float64
	}{
		{"equal halves", 0.5, 0.5},
		{"sum above one", 0.9, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ea.Merge(eb, tt.w1, tt.w2)

			// still a well formed ellipse
			assert.GreaterOrEqual(t, e.Width(), e.Height())
			assert.GreaterOrEqual(t, e.Height(), 0.0)
			assert.GreaterOrEqual(t, e.Angle(), -90.0)
			assert.LessOrEqual(t, e.Angle(), 90.0)

			// but not the ellipse of the merged pixels
			assert.Greater(t, math.Abs(e.Center().X-direct.Center().X), 1.0,
				"merged %v direct %v", e.Center(), direct.Center())
			assert.False(t, direct.Covariance().ApproxEqual(e.Covariance(), 1e-6))
		})
	}
}

func TestClear_NilMask(t *testing.T) {
	t.Parallel()

	var m *Mask
	assert.NotPanics(t, func() { m.Clear() })
	assert.False(t, m.IsValid())
}

func TestIntersect_Containment(t *testing.T) {
	t.Parallel()

	big := blockMask(t, 90, 90, 3, image.Pt(0, 0), image.Pt(1, 0), image.Pt(0, 1), image.Pt(1, 1))
	small := blockMask(t, 90, 90, 3, image.Pt(1, 1))
	small2, err := New(small.Gray(), image.Rect(30, 30, 60, 60))
	require.NoError(t, err)

	require.NoError(t, big.Intersect(small2))
	assert.Equal(t, small2.Mass(), big.Mass())
	assert.Equal(t, image.Rect(30, 30, 60, 60), big.Window())
}

func TestIntersect_Disjoint(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	a, err := New(src, image.Rect(0, 0, 3, 3))
	require.NoError(t, err)
	b, err := New(src, image.Rect(5, 5, 8, 8))
	require.NoError(t, err)

	require.NoError(t, a.Intersect(b))
	assert.True(t, a.IsValid())
	assert.Zero(t, a.Mass())
	assert.True(t, a.Window().Empty())
}

func TestAnd_UnionSized(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	a, err := New(src, image.Rect(0, 0, 6, 6))
	require.NoError(t, err)
	b, err := New(src, image.Rect(4, 4, 10, 10))
	require.NoError(t, err)

	require.NoError(t, a.And(b))
	assert.Equal(t, image.Rect(0, 0, 10, 10), a.Window())
	assert.Equal(t, 4, a.Mass())
	assert.Equal(t, uint8(255), a.At(5, 5))
	assert.Equal(t, uint8(0), a.At(0, 0))
}

func TestSetAlgebra_InvalidOperand(t *testing.T) {
	t.Parallel()

	a := blockMask(t, 30, 30, 3, image.Pt(0, 0))
	before := a.Gray()
	invalid := &Mask{}

	for name, op := range map[string]func(*Mask) error{
		"merge":     a.Merge,
		"intersect": a.Intersect,
		"and":       a.And,
	} {
		err := op(invalid)
		assert.True(t, errors.Is(err, l1math.ErrInvalidArgument), name)
	}
	if diff := cmp.Diff(before.Pix, a.Gray().Pix); diff != "" {
		t.Errorf("receiver mutated by rejected operation (-want +got):\n%s", diff)
	}

	assert.Error(t, invalid.Merge(a))
	assert.False(t, invalid.IsValid())
}

func TestBinarize(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(src.Pix, []uint8{0, 100, 101, 255})
	m, err := FromGray(src)
	require.NoError(t, err)

	require.NoError(t, m.Binarize(100))
	if diff := cmp.Diff([]uint8{0, 0, 255, 255}, m.Gray().Pix); diff != "" {
		t.Errorf("Binarize mismatch (-want +got):\n%s", diff)
	}

	assert.Error(t, (&Mask{}).Binarize(1))
}

func TestLevelCurve(t *testing.T) {
	t.Parallel()

	src := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(src.Pix, []uint8{0, 1, 255, 1})
	m, err := FromGray(src)
	require.NoError(t, err)

	curve, err := m.LevelCurve(1)
	require.NoError(t, err)
	if diff := cmp.Diff([]uint8{0, 255, 0, 255}, curve.Gray().Pix); diff != "" {
		t.Errorf("LevelCurve mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, m.Window(), curve.Window())
	assert.Equal(t, uint8(1), m.At(1, 0), "source untouched")

	_, err = (&Mask{}).LevelCurve(1)
	assert.Error(t, err)
}

func TestClone_DeepCopy(t *testing.T) {
	t.Parallel()

	m := blockMask(t, 30, 30, 3, image.Pt(1, 1))
	c := m.Clone()
	require.NoError(t, c.Binarize(255))
	assert.Zero(t, c.Mass())
	assert.Equal(t, 100, m.Mass())

	g := m.Gray()
	g.Pix[0] = 9
	assert.Equal(t, uint8(0), m.At(0, 0))

	c.Clear()
	assert.False(t, c.IsValid())
	assert.True(t, m.IsValid())
	assert.False(t, (&Mask{}).Clone().IsValid())
}
