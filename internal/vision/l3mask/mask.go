package l3mask

import (
	"fmt"
	"image"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
	"github.com/banshee-data/blobstats/internal/vision/l2ellipse"
)

// Mask is an 8-bit single-channel region located by its window in the
// outer image frame. Pixels are non-zero where the region is present.
// The zero value is an invalid, empty mask.
type Mask struct {
	gray *image.Gray // Rect equals the window
}

// New crops img to window and deep-copies the result. On error the
// returned mask is non-nil, invalid and empty.
func New(img image.Image, window image.Rectangle) (*Mask, error) {
	m := &Mask{}
	if err := m.Set(img, window); err != nil {
		return m, err
	}
	return m, nil
}

// FromGray builds a mask covering the whole of g.
func FromGray(g *image.Gray) (*Mask, error) {
	if g == nil {
		return &Mask{}, fmt.Errorf("nil image: %w", l1math.ErrInvalidArgument)
	}
	return New(g, g.Bounds())
}

// Set replaces the mask with a deep copy of img cropped to window. img
// must be a non-empty *image.Gray whose bounds contain window; otherwise
// the mask is left invalid and empty.
func (m *Mask) Set(img image.Image, window image.Rectangle) error {
	m.gray = nil
	g, ok := img.(*image.Gray)
	if !ok || g == nil {
		return fmt.Errorf("mask source %T is not single channel: %w", img, l1math.ErrInvalidArgument)
	}
	if g.Bounds().Empty() {
		return fmt.Errorf("empty mask source: %w", l1math.ErrInvalidArgument)
	}
	if !window.In(g.Bounds()) {
		return fmt.Errorf("window %v outside source bounds %v: %w", window, g.Bounds(), l1math.ErrInvalidArgument)
	}
	m.gray = copyGray(g, window)
	tracef("set window=%v", window)
	return nil
}

// copyGray returns a new image of size r holding the pixels of src in r.
func copyGray(src *image.Gray, r image.Rectangle) *image.Gray {
	dst := image.NewGray(r)
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		so := src.PixOffset(r.Min.X, y)
		do := dst.PixOffset(r.Min.X, y)
		copy(dst.Pix[do:do+w], src.Pix[so:so+w])
	}
	return dst
}

// IsValid reports whether the mask holds a pixel buffer.
func (m *Mask) IsValid() bool { return m != nil && m.gray != nil }

// Window returns the mask location in the outer frame, or the empty
// rectangle for an invalid mask.
func (m *Mask) Window() image.Rectangle {
	if !m.IsValid() {
		return image.Rectangle{}
	}
	return m.gray.Rect
}

// At returns the pixel at outer-frame coordinates (x, y), or 0 outside
// the window.
func (m *Mask) At(x, y int) uint8 {
	if !m.IsValid() || !(image.Point{X: x, Y: y}).In(m.gray.Rect) {
		return 0
	}
	return m.gray.Pix[m.gray.PixOffset(x, y)]
}

// Gray returns a deep copy of the mask pixels, or nil when invalid.
func (m *Mask) Gray() *image.Gray {
	if !m.IsValid() {
		return nil
	}
	return copyGray(m.gray, m.gray.Rect)
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	if !m.IsValid() {
		return &Mask{}
	}
	return &Mask{gray: copyGray(m.gray, m.gray.Rect)}
}

// Clear drops the pixel buffer, leaving the mask invalid and empty. It is
// a no-op on a nil mask.
func (m *Mask) Clear() {
	if m != nil {
		m.gray = nil
	}
}

// Mass returns the number of non-zero pixels.
func (m *Mask) Mass() int {
	if !m.IsValid() {
		return 0
	}
	n := 0
	for _, p := range m.gray.Pix {
		if p != 0 {
			n++
		}
	}
	return n
}

// Ellipse returns the covariance ellipse of the non-zero pixels, located
// in the outer frame. An empty or invalid mask yields the zero ellipse.
func (m *Mask) Ellipse() l2ellipse.Ellipse {
	if !m.IsValid() {
		return l2ellipse.Ellipse{}
	}
	var m00, m10, m01, m20, m11, m02 int64
	r := m.gray.Rect
	w, h := r.Dx(), r.Dy()
	for y := 0; y < h; y++ {
		row := m.gray.Pix[y*m.gray.Stride : y*m.gray.Stride+w]
		for x, p := range row {
			if p == 0 {
				continue
			}
			xi, yi := int64(x), int64(y)
			m00++
			m10 += xi
			m01 += yi
			m20 += xi * xi
			m11 += xi * yi
			m02 += yi * yi
		}
	}
	if m00 == 0 {
		return l2ellipse.Ellipse{}
	}

	n := float64(m00)
	xo := float64(m10) / n
	yo := float64(m01) / n
	mu20 := float64(m20) - xo*float64(m10)
	mu02 := float64(m02) - yo*float64(m01)
	mu11 := float64(m11) - xo*float64(m01)

	return l2ellipse.New(
		l1math.Vec2f{X: xo + float64(r.Min.X), Y: yo + float64(r.Min.Y)},
		l1math.Vec3f{mu20 / n, mu02 / n, mu11 / n},
	)
}

func checkOperands(op string, m, o *Mask) error {
	if !m.IsValid() || !o.IsValid() {
		opsf("%s rejected: invalid operand (receiver=%t other=%t)", op, m.IsValid(), o.IsValid())
		return fmt.Errorf("%s with invalid mask: %w", op, l1math.ErrInvalidArgument)
	}
	return nil
}

// Merge ORs o into m. The result covers the union of both windows.
func (m *Mask) Merge(o *Mask) error {
	if err := checkOperands("merge", m, o); err != nil {
		return err
	}
	union := m.gray.Rect.Union(o.gray.Rect)
	out := image.NewGray(union)
	blit(out, m.gray, func(_, s uint8) uint8 { return s })
	blit(out, o.gray, func(d, s uint8) uint8 { return d | s })
	diagf("merge %v + %v -> %v", m.gray.Rect, o.gray.Rect, union)
	m.gray = out
	return nil
}

// Intersect ANDs m with o. The result is cropped to the intersection of
// both windows, which may be empty.
func (m *Mask) Intersect(o *Mask) error {
	if err := checkOperands("intersect", m, o); err != nil {
		return err
	}
	in := m.gray.Rect.Intersect(o.gray.Rect)
	out := image.NewGray(in)
	andInto(out, m.gray, o.gray, in)
	diagf("intersect %v * %v -> %v", m.gray.Rect, o.gray.Rect, in)
	m.gray = out
	return nil
}

// And ANDs m with o into a buffer sized to the union of both windows.
func (m *Mask) And(o *Mask) error {
	if err := checkOperands("and", m, o); err != nil {
		return err
	}
	union := m.gray.Rect.Union(o.gray.Rect)
	out := image.NewGray(union)
	andInto(out, m.gray, o.gray, m.gray.Rect.Intersect(o.gray.Rect))
	m.gray = out
	return nil
}

// blit combines src into dst over src's window.
func blit(dst, src *image.Gray, op func(d, s uint8) uint8) {
	r := src.Rect
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		do := dst.PixOffset(r.Min.X, y)
		so := src.PixOffset(r.Min.X, y)
		drow := dst.Pix[do : do+w]
		for i, s := range src.Pix[so : so+w] {
			drow[i] = op(drow[i], s)
		}
	}
}

func andInto(dst, a, b *image.Gray, r image.Rectangle) {
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		do := dst.PixOffset(r.Min.X, y)
		ao := a.PixOffset(r.Min.X, y)
		bo := b.PixOffset(r.Min.X, y)
		for i := 0; i < w; i++ {
			dst.Pix[do+i] = a.Pix[ao+i] & b.Pix[bo+i]
		}
	}
}

// Binarize sets pixels above threshold to 255 and all others to 0.
func (m *Mask) Binarize(threshold uint8) error {
	if !m.IsValid() {
		return fmt.Errorf("binarize invalid mask: %w", l1math.ErrInvalidArgument)
	}
	for i, p := range m.gray.Pix {
		if p > threshold {
			m.gray.Pix[i] = 255
		} else {
			m.gray.Pix[i] = 0
		}
	}
	return nil
}

// LevelCurve returns a new mask, with the same window, that is 255 where
// m equals value and 0 elsewhere.
func (m *Mask) LevelCurve(value uint8) (*Mask, error) {
	if !m.IsValid() {
		return &Mask{}, fmt.Errorf("level curve of invalid mask: %w", l1math.ErrInvalidArgument)
	}
	out := image.NewGray(m.gray.Rect)
	for i, p := range m.gray.Pix {
		if p == value {
			out.Pix[i] = 255
		}
	}
	return &Mask{gray: out}, nil
}

func (m *Mask) String() string {
	if !m.IsValid() {
		return "mask{invalid}"
	}
	r := m.gray.Rect
	return fmt.Sprintf("mask{window=(%d,%d,%d,%d)}", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}
