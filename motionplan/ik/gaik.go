package ik

import (
	"context"
	"sort"
	"sync"

	"github.com/montanaflynn/stats"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/motionlib/logging"
	"go.viam.com/motionlib/motionplan/rng"
)

// GAIKOptions tunes the genetic search.
type GAIKOptions struct {
	PopulationSize int
	EliteFraction  float64
	MutationScale  float64
	// ConvergenceStddev stops the search early once the population's fitness
	// standard deviation drops below this, since further generations are
	// very unlikely to escape the local neighborhood the population has
	// converged around.
	ConvergenceStddev float64
	SatisfiedAt       float64
}

// DefaultGAIKOptions returns reasonable defaults for a modest-dimensional
// configuration space.
func DefaultGAIKOptions() GAIKOptions {
	return GAIKOptions{
		PopulationSize:    40,
		EliteFraction:     0.2,
		MutationScale:     0.1,
		ConvergenceStddev: 1e-6,
		SatisfiedAt:       1e-6,
	}
}

// GAIK is a simple genetic algorithm that searches for a configuration
// minimizing Distance, subject to Valid. Each generation's fitness
// evaluation runs one goroutine per population member so an expensive
// (e.g. collision-checking) Distance/Valid pair does not serialize the
// search.
type GAIK struct {
	Bounds   []Bound
	Valid    ValidFunc
	Distance DistanceFunc
	Options  GAIKOptions
	Logger   logging.Logger

	rng *rng.Source
}

// NewGAIK builds a genetic-algorithm goal sampler. seed determines the
// entire search's random stream; the parallel fitness evaluation workers
// draw no random numbers.
func NewGAIK(bounds []Bound, valid ValidFunc, distance DistanceFunc, options GAIKOptions, logger logging.Logger, seed int64) *GAIK {
	return &GAIK{
		Bounds:   bounds,
		Valid:    valid,
		Distance: distance,
		Options:  options,
		Logger:   logger,
		rng:      rng.New(seed),
	}
}

type individual struct {
	genes   []float64
	fitness float64
	valid   bool
}

// evaluatePopulation scores every member in parallel, joining worker panics
// into a single combined error rather than letting one bad member's
// Distance/Valid call crash the whole search.
func (g *GAIK) evaluatePopulation(pop []*individual) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs error

	for _, ind := range pop {
		ind := ind
		wg.Add(1)
		utils.PanicCapturingGo(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					errs = multierr.Append(errs, panicToError(r))
					mu.Unlock()
				}
			}()
			ind.valid = g.Valid(ind.genes)
			ind.fitness = g.Distance(ind.genes)
		})
	}
	wg.Wait()
	return errs
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return errUnexpectedPanic{r}
}

type errUnexpectedPanic struct{ v interface{} }

func (e errUnexpectedPanic) Error() string { return "ik: population evaluation panicked" }

// Run searches for a configuration satisfying the goal until ctx is done,
// the population converges, or a member satisfies SatisfiedAt. It writes
// the best configuration found into out and reports whether it is exactly
// satisfied (as opposed to merely the best of an exhausted search).
func (g *GAIK) Run(ctx context.Context, out []float64) (satisfied bool, err error) {
	opts := g.Options
	pop := make([]*individual, opts.PopulationSize)
	for i := range pop {
		genes := make([]float64, len(g.Bounds))
		sampleUniform(g.rng, g.Bounds, genes)
		pop[i] = &individual{genes: genes}
	}

	var best *individual
	for generation := 0; ; generation++ {
		select {
		case <-ctx.Done():
			g.finish(best, out)
			return false, nil
		default:
		}

		if err := g.evaluatePopulation(pop); err != nil {
			return false, err
		}

		sort.Slice(pop, func(i, j int) bool {
			if pop[i].valid != pop[j].valid {
				return pop[i].valid
			}
			return pop[i].fitness < pop[j].fitness
		})
		if best == nil || (pop[0].valid && (!best.valid || pop[0].fitness < best.fitness)) {
			best = pop[0]
		}
		if best.valid && best.fitness <= opts.SatisfiedAt {
			g.finish(best, out)
			return true, nil
		}

		fitnesses := make([]float64, len(pop))
		for i, ind := range pop {
			fitnesses[i] = ind.fitness
		}
		stddev, _ := stats.StandardDeviation(fitnesses)
		if stddev < opts.ConvergenceStddev {
			g.Logger.Debugw("gaik population converged", "generation", generation, "stddev", stddev)
			g.finish(best, out)
			return false, nil
		}

		pop = g.nextGeneration(pop)
	}
}

func (g *GAIK) finish(best *individual, out []float64) {
	if best != nil {
		copy(out, best.genes)
	}
}

func (g *GAIK) nextGeneration(pop []*individual) []*individual {
	n := len(pop)
	eliteCount := int(float64(n) * g.Options.EliteFraction)
	if eliteCount < 1 {
		eliteCount = 1
	}

	next := make([]*individual, 0, n)
	for i := 0; i < eliteCount && i < n; i++ {
		next = append(next, &individual{genes: clonef(pop[i].genes)})
	}

	for len(next) < n {
		parentA := pop[g.rng.UniformInt(0, eliteCount-1)]
		parentB := pop[g.rng.UniformInt(0, n-1)]
		child := g.crossover(parentA.genes, parentB.genes)
		g.mutate(child)
		next = append(next, &individual{genes: child})
	}
	return next
}

func (g *GAIK) crossover(a, b []float64) []float64 {
	child := make([]float64, len(a))
	for i := range child {
		if g.rng.UniformBool() {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

func (g *GAIK) mutate(genes []float64) {
	for i, b := range g.Bounds {
		span := b.Max - b.Min
		genes[i] = clamp(genes[i]+g.rng.Gaussian(0, span*g.Options.MutationScale), b)
	}
}
