package motionplan

import "go.viam.com/motionlib/motionplan/rng"

// StateSampler draws configurations from a configuration space. EST and
// KPIECE1 use it to draw Gaussian extension targets around a selected
// motion; their goal-biased targets come from the goal's own
// SampleNearGoal instead.
type StateSampler struct {
	components []StateComponent
	rng        *rng.Source
}

// NewStateSampler builds a sampler over components, drawing from src.
func NewStateSampler(components []StateComponent, src *rng.Source) *StateSampler {
	return &StateSampler{components: components, rng: src}
}

// SampleUniform writes a uniformly random configuration within bounds into
// out, which must already be the correct length.
func (s *StateSampler) SampleUniform(out State) {
	for i, comp := range s.components {
		out[i] = s.rng.Uniform(comp.MinValue, comp.MaxValue)
	}
}

// SampleUniformNear writes a configuration within distance of near into out,
// clamped to bounds. Each component is perturbed independently by up to
// +/-distance.
func (s *StateSampler) SampleUniformNear(out, near State, distance float64) {
	for i, comp := range s.components {
		v := near[i] + s.rng.Uniform(-distance, distance)
		if comp.Type != WrappingAngle {
			if v < comp.MinValue {
				v = comp.MinValue
			}
			if v > comp.MaxValue {
				v = comp.MaxValue
			}
		}
		out[i] = v
	}
}

// SampleGaussianRange writes a configuration into out drawn from a Gaussian
// centered on mean, with each component's standard deviation given
// independently by ranges, clamped to bounds. EST and KPIECE1 use this to
// sample a new target near the motion they selected to expand from.
func (s *StateSampler) SampleGaussianRange(out, mean State, ranges []float64) {
	for i, comp := range s.components {
		v := s.rng.Gaussian(mean[i], ranges[i])
		if comp.Type != WrappingAngle {
			if v < comp.MinValue {
				v = comp.MinValue
			}
			if v > comp.MaxValue {
				v = comp.MaxValue
			}
		}
		out[i] = v
	}
}

// SampleGaussian writes a configuration into out drawn from a Gaussian
// centered on mean with the given per-run standard deviation, clamped to
// bounds.
func (s *StateSampler) SampleGaussian(out, mean State, stddev float64) {
	for i, comp := range s.components {
		v := s.rng.Gaussian(mean[i], stddev)
		if comp.Type != WrappingAngle {
			if v < comp.MinValue {
				v = comp.MinValue
			}
			if v > comp.MaxValue {
				v = comp.MaxValue
			}
		}
		out[i] = v
	}
}
