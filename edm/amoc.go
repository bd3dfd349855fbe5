package edm

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	defaultMinSize = 30
	defaultAlpha   = 2.0
)

// AMOCOptions configure the "at most one change" detectors.
type AMOCOptions struct {
	MinSize int     `json:"min_size" yaml:"min_size"`
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	// Exact selects the median based search; otherwise the interval tree
	// approximation is used.
	Exact bool `json:"exact" yaml:"exact"`
}

func DefaultAMOCOptions() AMOCOptions {
	return AMOCOptions{
		MinSize: defaultMinSize,
		Alpha:   defaultAlpha,
		Exact:   true,
	}
}

func (o AMOCOptions) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(o.MinSize < 2, "min_size must be at least 2")
	catcher.NewWhen(o.Alpha < 0 || o.Alpha > 2, "alpha must be between 0 and 2")

	return newParameterError(catcher.Resolve())
}

// AMOC returns the location of the strongest breakout in series, if there
// is one.
func AMOC(series []float64, opts AMOCOptions) (int, bool, error) {
	index, stat, err := amoc(series, opts)
	if err != nil {
		return 0, false, err
	}
	if stat <= 0 {
		return 0, false, nil
	}
	return index, true, nil
}

func amoc(series []float64, opts AMOCOptions) (int, float64, error) {
	if err := opts.Validate(); err != nil {
		return 0, 0, err
	}
	if err := checkFinite(series); err != nil {
		return 0, 0, newParameterError(errors.Wrap(err, "invalid series"))
	}

	if len(series) < opts.MinSize {
		return 0, 0, nil
	}

	z, ok := normalize(series)
	if !ok {
		return 0, 0, nil
	}

	if opts.Exact {
		index, stat := edmx(z, opts.MinSize)
		return index, stat, nil
	}
	index, stat := edmTail(z, opts.MinSize, opts.Alpha)
	return index, stat, nil
}
