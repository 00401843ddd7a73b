// Package ik provides the goal-synthesis helpers a tree planner reaches for
// when its goal is an implicit region rather than a concrete configuration:
// a genetic-algorithm search (GAIK) that explores broadly, and a hill-climb
// (HCIK) that locally refines a single candidate. Both work in terms of
// plain []float64 vectors rather than motionplan.State, so this package has
// no dependency on the planner package that consumes it.
package ik

import "go.viam.com/motionlib/motionplan/rng"

// Bound is the inclusive [Min, Max] range a single configuration component
// may take.
type Bound struct {
	Min float64
	Max float64
}

func clamp(v float64, b Bound) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// DistanceFunc measures how far a configuration is from satisfying a goal;
// zero means satisfied.
type DistanceFunc func(state []float64) float64

// ValidFunc reports whether a configuration is otherwise acceptable
// (collision-free, within joint limits not already covered by Bound, etc).
type ValidFunc func(state []float64) bool

func clonef(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func sampleUniform(src *rng.Source, bounds []Bound, out []float64) {
	for i, b := range bounds {
		out[i] = src.Uniform(b.Min, b.Max)
	}
}
