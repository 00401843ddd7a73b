package motionplan

import (
	"github.com/go-viper/mapstructure/v2"
)

// PlannerOptions holds the tuning knobs shared or specialized across
// planners. Fields are JSON-tagged so a caller can round-trip a planner
// configuration the same way the rest of the package's request types do, and
// FromMap lets a caller apply a sparse set of overrides (e.g. decoded from a
// config file or an RPC request body) on top of Default without needing a
// dedicated setter per field.
type PlannerOptions struct {
	// Rho scales EST/KPIECE1's extension sampling: each component of a new
	// target is drawn from a Gaussian around the selected motion whose
	// standard deviation is Rho times that component's (MaxValue-MinValue).
	// The sampled target is not capped to a maximum distance. KPIECE1 also
	// uses Rho as HCIK's initial perturbation size when none was set.
	Rho float64 `json:"rho"`

	// GoalBias is the probability that a planner takes its target from the
	// goal's SampleNearGoal instead of the Gaussian sample around the
	// selected motion.
	GoalBias float64 `json:"goal_bias"`

	// MinValidPathPercentage is the minimum fraction of an attempted
	// extension that must be collision-free for the (partial) motion to
	// still be kept, when a planner supports incremental partial credit.
	MinValidPathPercentage float64 `json:"min_valid_path_percentage"`

	// SelectBorderPercentage is the minimum probability with which KPIECE1
	// expands from the top external cell rather than the top internal one;
	// the probability used is max(SelectBorderPercentage, FracExternal()).
	SelectBorderPercentage float64 `json:"select_border_percentage"`

	// GoodScoreFactor multiplies a cell's importance score on a successful
	// extension from it; must be > 1.
	GoodScoreFactor float64 `json:"good_score_factor"`

	// BadScoreFactor multiplies a cell's importance score on a failed
	// extension from it; must be < 1.
	BadScoreFactor float64 `json:"bad_score_factor"`

	// MaxCellsToTry is carried in the options and decoded by FromMap, but
	// neither EST nor KPIECE1 reads it: KPIECE1 examines exactly one grid-B
	// cell per iteration and does not fall back to further cells.
	MaxCellsToTry int `json:"max_cells_to_try"`

	// RandomSeed seeds the planner's RNG stream. Every value, zero
	// included, is used as-is, so two solves with the same seed draw the
	// same random stream.
	RandomSeed int64 `json:"random_seed"`
}

// DefaultPlannerOptions returns the default EST/KPIECE1 tuning. The score
// factors 1.1/0.9 are this package's own choice, not OMPL's constants.
func DefaultPlannerOptions() PlannerOptions {
	return PlannerOptions{
		Rho:                    0.5,
		GoalBias:               0.05,
		MinValidPathPercentage: 0.5,
		SelectBorderPercentage: 0.9,
		GoodScoreFactor:        1.1,
		BadScoreFactor:         0.9,
		MaxCellsToTry:          10,
		RandomSeed:             0,
	}
}

// FromMap applies a sparse set of named overrides onto o, leaving any field
// not present in overrides untouched.
func (o *PlannerOptions) FromMap(overrides map[string]interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           o,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(overrides)
}
