package l4grid

import (
	"fmt"
	"image"
	"math"

	"github.com/banshee-data/blobstats/internal/vision/l3mask"
)

// SampleGrid is a Grid that counts samples per node and tracks the
// sampled window, the node-space bounding rectangle of every node that
// has received a sample.
type SampleGrid struct {
	Grid

	counts  []uint32 // row-major, rows*cols
	sampled image.Rectangle
}

// NewSampleGrid builds an empty sample grid; see NewGrid for the
// arguments.
func NewSampleGrid(width, height int, reductionFactor float64) (*SampleGrid, error) {
	s := &SampleGrid{}
	if err := s.init(width, height, reductionFactor); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SampleGrid) init(width, height int, reductionFactor float64) error {
	if err := s.Grid.init(width, height, reductionFactor); err != nil {
		return err
	}
	s.counts = make([]uint32, s.rows*s.cols)
	s.sampled = image.Rectangle{}
	return nil
}

// addSaturating returns a+b clamped to math.MaxUint32.
func addSaturating(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

// AddSample counts one sample on the focused node. Counters saturate at
// math.MaxUint32.
func (s *SampleGrid) AddSample() {
	i := s.focusIndex()
	s.counts[i] = addSaturating(s.counts[i], 1)
	s.sampled = s.sampled.Union(image.Rect(s.focus.col, s.focus.row, s.focus.col+1, s.focus.row+1))
	tracef("sample %v count=%d", s.focus, s.counts[i])
}

// Samples returns the count of the focused node.
func (s *SampleGrid) Samples() uint32 { return s.counts[s.focusIndex()] }

// SamplesAt returns the count of node (row, col), or 0 outside the grid.
func (s *SampleGrid) SamplesAt(row, col int) uint32 {
	if row < 0 || col < 0 || row >= s.rows || col >= s.cols {
		return 0
	}
	return s.counts[s.index(row, col)]
}

// TotalSamples returns the sum of all node counts.
func (s *SampleGrid) TotalSamples() uint64 {
	var total uint64
	for _, c := range s.counts {
		total += uint64(c)
	}
	return total
}

// SampledWindow returns the node-space bounding rectangle of sampled
// nodes. It is empty until the first sample.
func (s *SampleGrid) SampledWindow() image.Rectangle { return s.sampled }

// Merge adds the counts of o into s and extends the sampled window to the
// union of both. Grids of a different shape are rejected with
// ErrSizeMismatch and neither grid is modified.
func (s *SampleGrid) Merge(o *SampleGrid) error {
	if err := s.checkShape("sample merge", &o.Grid); err != nil {
		return err
	}
	s.mergeCounts(o)
	return nil
}

func (s *SampleGrid) mergeCounts(o *SampleGrid) {
	r := o.sampled
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			i := s.index(row, col)
			s.counts[i] = addSaturating(s.counts[i], o.counts[i])
		}
	}
	diagf("sample merge window %v + %v", s.sampled, o.sampled)
	s.sampled = s.sampled.Union(o.sampled)
}

// SamplesMask returns a node-space mask of the sampled window that is 255
// on nodes with at least one sample and 0 elsewhere. Before any sample the
// mask is valid and empty.
func (s *SampleGrid) SamplesMask() (*l3mask.Mask, error) {
	img := image.NewGray(s.Bounds())
	r := s.sampled
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			if s.counts[s.index(row, col)] > 0 {
				img.Pix[img.PixOffset(col, row)] = 255
			}
		}
	}
	m, err := l3mask.New(img, r)
	if err != nil {
		return m, fmt.Errorf("samples mask: %w", err)
	}
	return m, nil
}

// Clear zeroes every count and empties the sampled window. The focus is
// kept.
func (s *SampleGrid) Clear() {
	clear(s.counts)
	s.sampled = image.Rectangle{}
}

// Clone returns a deep copy of the sample grid.
func (s *SampleGrid) Clone() *SampleGrid {
	c := *s
	c.counts = append([]uint32(nil), s.counts...)
	return &c
}

func (s *SampleGrid) String() string {
	return fmt.Sprintf("sampleGrid{%s sampled=%v}", s.Grid.String(), s.sampled)
}
