// Package rng provides the single seeded random source threaded through a
// planner. Keeping it as an explicit, per-planner value rather than a
// process-wide generator is what makes two solve() calls with the same seed,
// start states, and validity predicate produce identical motion sequences.
package rng

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source draws uniform, boolean, Gaussian, and half-normal samples for a
// single planner instance. It is not safe for concurrent use; callers that
// fan out (GAIK's population evaluation) should give each worker its own
// Source seeded independently.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed. The same seed always produces the
// same stream of draws.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value drawn uniformly from [lo, hi).
func (s *Source) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Uniform01 returns a value drawn uniformly from [0, 1).
func (s *Source) Uniform01() float64 {
	return s.r.Float64()
}

// UniformInt returns an integer drawn uniformly from [lo, hi], inclusive of
// both ends.
func (s *Source) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo+1)
}

// UniformBool returns true or false with equal probability.
func (s *Source) UniformBool() bool {
	return s.r.Float64() <= 0.5
}

// Gaussian draws from a normal distribution with the given mean and standard
// deviation, using gonum's ziggurat-based sampler.
func (s *Source) Gaussian(mean, stddev float64) float64 {
	d := distuv.Normal{Mu: mean, Sigma: stddev, Src: s.r}
	return d.Rand()
}

// BoundedGaussian resamples Gaussian(mean, stddev) until the draw lands
// within maxStddev standard deviations of mean.
func (s *Source) BoundedGaussian(mean, stddev, maxStddev float64) float64 {
	maxDev := maxStddev * stddev
	for {
		v := s.Gaussian(mean, stddev)
		if v-mean <= maxDev && mean-v <= maxDev {
			return v
		}
	}
}

// HalfNormal draws from a folded normal distribution centered so that values
// near rMax are most likely, folding samples above the mean back down. This
// is used to bias motion selection within a cell toward recently added
// (higher-indexed) motions without a hard cutoff.
func (s *Source) HalfNormal(rMin, rMax, focus float64) float64 {
	mean := rMax - rMin
	v := s.Gaussian(mean, mean/focus)
	if v > mean {
		v = 2*mean - v
	}
	r := rMin
	if v >= 0 {
		r = v + rMin
	}
	if r > rMax {
		return rMax
	}
	return r
}

// HalfNormalInt is HalfNormal quantized to an integer in [rMin, rMax].
func (s *Source) HalfNormalInt(rMin, rMax int, focus float64) int {
	return int(s.HalfNormal(float64(rMin), float64(rMax)+(1.0-1e-9), focus))
}

// DefaultFocus is the focus value the original implementation used whenever
// none was specified explicitly.
const DefaultFocus = 3.0
