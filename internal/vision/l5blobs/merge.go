package l5blobs

import (
	"fmt"

	"github.com/banshee-data/blobstats/internal/vision/l1math"
)

// MergeBodies merges bodies into a clone of the first one. The inputs are
// not modified.
func MergeBodies(bodies []*Body) (*Body, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("merge of no bodies: %w", l1math.ErrInvalidArgument)
	}
	acc := bodies[0].Clone()
	for i, b := range bodies[1:] {
		if err := acc.Merge(b); err != nil {
			return nil, fmt.Errorf("body %d: %w", i+1, err)
		}
	}
	return acc, nil
}

// MergeColorBodies merges bodies into a clone of the first one. The
// inputs are not modified.
func MergeColorBodies(bodies []*ColorBody) (*ColorBody, error) {
	if len(bodies) == 0 {
		return nil, fmt.Errorf("merge of no color bodies: %w", l1math.ErrInvalidArgument)
	}
	acc := bodies[0].Clone()
	for i, b := range bodies[1:] {
		if err := acc.Merge(b); err != nil {
			return nil, fmt.Errorf("color body %d: %w", i+1, err)
		}
	}
	return acc, nil
}

// SimilarColor reports whether a and b are within maxDistance of each
// other according to cmp.
func SimilarColor(a, b HasColor, cmp *l1math.HSVComparator, maxDistance float64) bool {
	return cmp.SameColor(a.HSV(), b.HSV(), maxDistance)
}
