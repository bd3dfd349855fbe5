package edm

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	defaultDegree = 1
	defaultBeta   = 0.008
)

// MultiOptions configure the multiple breakout detectors. At most one of
// Beta and Percent may be set; without either, Beta defaults to 0.008.
type MultiOptions struct {
	MinSize int      `json:"min_size" yaml:"min_size"`
	Degree  int      `json:"degree" yaml:"degree"`
	Beta    *float64 `json:"beta,omitempty" yaml:"beta,omitempty"`
	Percent *float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

func DefaultMultiOptions() MultiOptions {
	return MultiOptions{
		MinSize: defaultMinSize,
		Degree:  defaultDegree,
	}
}

func (o MultiOptions) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(o.MinSize < 2, "min_size must be at least 2")
	catcher.NewWhen(o.Beta != nil && o.Percent != nil, "beta and percent cannot be passed together")
	catcher.NewWhen(o.Degree < 0 || o.Degree > 2, "degree must be 0, 1, or 2")

	return newParameterError(catcher.Resolve())
}

func (o MultiOptions) beta() float64 {
	if o.Beta == nil {
		return defaultBeta
	}
	return *o.Beta
}

// Multi returns the ascending locations of every breakout in series.
func Multi(series []float64, opts MultiOptions) ([]int, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkFinite(series); err != nil {
		return nil, newParameterError(errors.Wrap(err, "invalid series"))
	}

	if len(series) < opts.MinSize {
		return []int{}, nil
	}

	z, ok := normalize(series)
	if !ok {
		return []int{}, nil
	}

	penalty := PenaltyForDegree(opts.Degree)
	if opts.Percent != nil {
		return edmPercent(z, opts.MinSize, *opts.Percent, penalty), nil
	}
	return edmMulti(z, opts.MinSize, opts.beta(), penalty), nil
}
