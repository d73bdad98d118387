package l1math

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// UpdateMean folds sample into a running mean whose post-update sample
// count is n: mean + (sample - mean) / n. A zero n returns mean unchanged.
func UpdateMean(mean, sample Vec3f, n uint32) Vec3f {
	if n == 0 {
		return mean
	}
	alpha := 1.0 / float64(n)
	return mean.Add(sample.Sub(mean).Scale(alpha))
}

// Average3 is an incremental running mean of 3-component samples.
// The zero value is an empty average.
type Average3 struct {
	Mean Vec3f
	N    uint32
}

// Add returns the average updated with one more sample.
func (a Average3) Add(sample Vec3f) Average3 {
	n := a.N
	if n < ^uint32(0) {
		n++
	}
	return Average3{Mean: UpdateMean(a.Mean, sample, n), N: n}
}

// Combine returns the average of the union of both sample sets.
func (a Average3) Combine(o Average3) Average3 {
	total := uint64(a.N) + uint64(o.N)
	if total == 0 {
		return Average3{}
	}
	if total > uint64(^uint32(0)) {
		total = uint64(^uint32(0))
	}
	return Average3{
		Mean: Blend(a.Mean, o.Mean, float64(a.N), float64(o.N)),
		N:    uint32(total),
	}
}

// Blend returns (a*wa + b*wb) / (wa + wb). When the total weight is not
// positive, a is returned unchanged.
func Blend(a, b Vec3f, wa, wb float64) Vec3f {
	total := wa + wb
	if total <= 0 {
		return a
	}
	out := make([]float64, 3)
	floats.ScaleTo(out, wa/total, a[:])
	floats.AddScaled(out, wb/total, b[:])
	return Vec3f{out[0], out[1], out[2]}
}

// WeightedMean3 returns the weighted mean of values, channel by channel:
// Σ(v_i·w_i) / Σ(w_i). Zero-weight entries contribute nothing. ok is
// false when the slices differ in length or the total weight is zero.
func WeightedMean3(values []Vec3f, weights []float64) (mean Vec3f, ok bool) {
	if len(values) != len(weights) || len(values) == 0 {
		return Vec3f{}, false
	}
	if floats.Sum(weights) <= 0 {
		return Vec3f{}, false
	}
	channel := make([]float64, len(values))
	for c := 0; c < 3; c++ {
		for i, v := range values {
			channel[i] = v[c]
		}
		mean[c] = stat.Mean(channel, weights)
	}
	return mean, true
}
