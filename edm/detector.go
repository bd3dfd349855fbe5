package edm

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Mode names one of the detector families.
type Mode string

const (
	ModeAMOC  Mode = "amoc"
	ModeMulti Mode = "multi"
)

const (
	amocExactAlgorithm  = "e_divisive_with_medians_exact"
	amocTailAlgorithm   = "e_divisive_with_medians_tail"
	multiAlgorithm      = "e_divisive_with_medians"
	percentAlgorithm    = "e_divisive_with_medians_percent"
	detectorAlgoVersion = 1
)

// DetectorOptions select and configure a detector, as read from
// configuration files and request bodies.
type DetectorOptions struct {
	Mode  Mode         `json:"mode" yaml:"mode"`
	AMOC  AMOCOptions  `json:"amoc" yaml:"amoc"`
	Multi MultiOptions `json:"multi" yaml:"multi"`
}

func DefaultDetectorOptions() DetectorOptions {
	return DetectorOptions{
		Mode:  ModeMulti,
		AMOC:  DefaultAMOCOptions(),
		Multi: DefaultMultiOptions(),
	}
}

func (o DetectorOptions) Validate() error {
	switch o.Mode {
	case ModeAMOC:
		return o.AMOC.Validate()
	case ModeMulti:
		return o.Multi.Validate()
	default:
		return newParameterError(errors.Errorf("mode must be '%s' or '%s', not '%s'", ModeAMOC, ModeMulti, o.Mode))
	}
}

// Detector returns the configured detector.
func (o DetectorOptions) Detector() (ChangeDetector, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if o.Mode == ModeAMOC {
		return NewAMOCDetector(o.AMOC), nil
	}
	return NewMultiDetector(o.Multi), nil
}

// NewAMOCDetector returns a detector that reports at most one breakout.
func NewAMOCDetector(opts AMOCOptions) ChangeDetector {
	name := amocExactAlgorithm
	if !opts.Exact {
		name = amocTailAlgorithm
	}

	return &amocDetector{
		opts: opts,
		info: AlgorithmInfo{
			Name:    name,
			Version: detectorAlgoVersion,
			Options: []AlgorithmOption{
				{
					Name:  "min_size",
					Value: opts.MinSize,
				},
				{
					Name:  "alpha",
					Value: opts.Alpha,
				},
			},
		},
	}
}

type amocDetector struct {
	opts AMOCOptions
	info AlgorithmInfo
}

func (d *amocDetector) DetectChanges(ctx context.Context, series []float64) ([]ChangePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	index, stat, err := amoc(series, d.opts)
	if err != nil {
		return nil, errors.Wrap(err, "problem detecting breakout")
	}

	grip.Debug(detectionMessage(d.info, len(series), stat > 0))

	if stat <= 0 {
		return []ChangePoint{}, nil
	}
	return []ChangePoint{
		{
			Index:     index,
			Statistic: stat,
			Info:      d.info,
		},
	}, nil
}

// NewMultiDetector returns a detector that reports every breakout found by
// the penalized (or percent threshold) search.
func NewMultiDetector(opts MultiOptions) ChangeDetector {
	info := AlgorithmInfo{
		Name:    multiAlgorithm,
		Version: detectorAlgoVersion,
		Options: []AlgorithmOption{
			{
				Name:  "min_size",
				Value: opts.MinSize,
			},
			{
				Name:  "penalty",
				Value: PenaltyForDegree(opts.Degree).String(),
			},
		},
	}
	if opts.Percent != nil {
		info.Name = percentAlgorithm
		info.Options = append(info.Options, AlgorithmOption{Name: "percent", Value: *opts.Percent})
	} else {
		info.Options = append(info.Options, AlgorithmOption{Name: "beta", Value: opts.beta()})
	}

	return &multiDetector{opts: opts, info: info}
}

type multiDetector struct {
	opts MultiOptions
	info AlgorithmInfo
}

func (d *multiDetector) DetectChanges(ctx context.Context, series []float64) ([]ChangePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	results, err := Multi(series, d.opts)
	if err != nil {
		return nil, errors.Wrap(err, "problem detecting breakouts")
	}

	grip.Debug(detectionMessage(d.info, len(series), len(results) > 0))

	out := make([]ChangePoint, 0, len(results))
	for _, r := range results {
		out = append(out, ChangePoint{
			Index: r,
			Info:  d.info,
		})
	}
	return out, nil
}

func detectionMessage(info AlgorithmInfo, size int, found bool) message.Fields {
	return message.Fields{
		"message":   "completed breakout detection",
		"algorithm": info.Name,
		"version":   info.Version,
		"length":    size,
		"found":     found,
	}
}
