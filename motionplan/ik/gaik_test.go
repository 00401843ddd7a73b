package ik

import (
	"context"
	"math"
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/motionlib/logging"
)

func targetDistance(target []float64) DistanceFunc {
	return func(s []float64) float64 {
		sum := 0.0
		for i := range s {
			d := s[i] - target[i]
			sum += d * d
		}
		return math.Sqrt(sum)
	}
}

func TestGAIKFindsCandidateNearTarget(t *testing.T) {
	bounds := []Bound{{Min: -10, Max: 10}, {Min: -10, Max: 10}}
	target := []float64{3, -4}

	options := DefaultGAIKOptions()
	options.SatisfiedAt = 0.05
	options.PopulationSize = 30

	g := NewGAIK(bounds, func([]float64) bool { return true }, targetDistance(target), options, logging.NewDebugLogger("gaik_test"), 42)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := make([]float64, 2)
	satisfied, err := g.Run(ctx, out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, satisfied, test.ShouldBeTrue)
	test.That(t, targetDistance(target)(out), test.ShouldBeLessThan, 0.1)
}

func TestGAIKRejectsInvalidRegion(t *testing.T) {
	bounds := []Bound{{Min: -10, Max: 10}}
	target := []float64{0}

	options := DefaultGAIKOptions()
	options.PopulationSize = 20
	options.SatisfiedAt = 1e-9

	// Only the far half of the space is valid, so the search must never
	// report satisfaction at the (invalid) global optimum near zero.
	valid := func(s []float64) bool { return s[0] >= 5 }

	g := NewGAIK(bounds, valid, targetDistance(target), options, logging.NewDebugLogger("gaik_test"), 7)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out := make([]float64, 1)
	_, err := g.Run(ctx, out)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out[0], test.ShouldBeGreaterThanOrEqualTo, 5.0)
}

func TestGAIKHonorsContextCancellation(t *testing.T) {
	bounds := []Bound{{Min: -10, Max: 10}}
	target := []float64{0}
	options := DefaultGAIKOptions()
	options.PopulationSize = 10
	options.SatisfiedAt = -1 // unreachable, forces the loop to run until ctx expires

	g := NewGAIK(bounds, func([]float64) bool { return true }, targetDistance(target), options, logging.NewDebugLogger("gaik_test"), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	out := make([]float64, 1)
	start := time.Now()
	satisfied, err := g.Run(ctx, out)
	elapsed := time.Since(start)

	test.That(t, err, test.ShouldBeNil)
	test.That(t, satisfied, test.ShouldBeFalse)
	test.That(t, elapsed, test.ShouldBeLessThan, time.Second)
}
