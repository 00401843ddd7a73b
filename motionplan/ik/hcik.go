package ik

import "go.viam.com/motionlib/motionplan/rng"

// HCIK is a single-solution hill climber: starting from a seed
// configuration, it repeatedly samples a local Gaussian perturbation,
// keeps it only if it is both valid and a strict improvement on distance,
// and gives up once MaxStagnantSteps consecutive samples fail to improve.
type HCIK struct {
	Bounds          []Bound
	Valid           ValidFunc
	Distance        DistanceFunc
	Rng             *rng.Source
	MaxStagnantSteps int
}

// NewHCIK builds a hill climber over the given bounds and collaborators.
func NewHCIK(bounds []Bound, valid ValidFunc, distance DistanceFunc, src *rng.Source) *HCIK {
	return &HCIK{
		Bounds:           bounds,
		Valid:            valid,
		Distance:         distance,
		Rng:              src,
		MaxStagnantSteps: 20,
	}
}

// Improve attempts to find a configuration closer to the goal than seed,
// within improveValue of it (the per-component perturbation standard
// deviation), writing the best configuration found into out and returning
// true if it strictly improved on seed's distance. On failure to improve,
// out is left untouched.
func (h *HCIK) Improve(seed []float64, improveValue float64, out []float64) bool {
	current := clonef(seed)
	currentDist := h.Distance(current)
	improved := false

	candidate := make([]float64, len(seed))
	stagnant := 0
	for stagnant < h.MaxStagnantSteps {
		for i, b := range h.Bounds {
			candidate[i] = clamp(current[i]+h.Rng.Gaussian(0, improveValue), b)
		}
		if !h.Valid(candidate) {
			stagnant++
			continue
		}
		d := h.Distance(candidate)
		if d < currentDist {
			copy(current, candidate)
			currentDist = d
			improved = true
			stagnant = 0
			if currentDist == 0 {
				break
			}
			continue
		}
		stagnant++
	}

	if improved {
		copy(out, current)
	}
	return improved
}
