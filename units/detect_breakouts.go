package units

import (
	"context"
	"fmt"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const detectBreakoutsJobName = "detect-breakouts"

type detectBreakoutsJob struct {
	*job.Base  `bson:"metadata" json:"metadata" yaml:"metadata"`
	SeriesName string              `bson:"series_name" json:"series_name" yaml:"series_name"`
	Series     []float64           `bson:"series" json:"series" yaml:"series"`
	Options    edm.DetectorOptions `bson:"options" json:"options" yaml:"options"`
	Results    []edm.ChangePoint   `bson:"results" json:"results" yaml:"results"`
}

func init() {
	registry.AddJobType(detectBreakoutsJobName, func() amboy.Job { return makeDetectBreakoutsJob() })
}

func makeDetectBreakoutsJob() *detectBreakoutsJob {
	j := &detectBreakoutsJob{
		Base: &job.Base{
			JobType: amboy.JobType{
				Name:    detectBreakoutsJobName,
				Version: 1,
			},
		},
	}
	j.SetDependency(dependency.NewAlways())
	return j
}

// NewDetectBreakoutsJob returns a job that runs the detector described by
// opts over a single named series.
func NewDetectBreakoutsJob(name string, series []float64, opts edm.DetectorOptions) amboy.Job {
	j := makeDetectBreakoutsJob()
	j.SetID(fmt.Sprintf("%s.%s.%s", detectBreakoutsJobName, name, utility.RandomString()))
	j.SeriesName = name
	j.Series = series
	j.Options = opts
	return j
}

func (j *detectBreakoutsJob) Run(ctx context.Context) {
	defer j.MarkComplete()

	detector, err := j.Options.Detector()
	if err != nil {
		j.AddError(errors.Wrapf(err, "problem configuring detector for series '%s'", j.SeriesName))
		return
	}

	points, err := detector.DetectChanges(ctx, j.Series)
	if err != nil {
		j.AddError(errors.Wrapf(err, "problem detecting breakouts in series '%s'", j.SeriesName))
		return
	}
	j.Results = points

	grip.Info(message.Fields{
		"message":   "detected breakouts",
		"job":       j.ID(),
		"series":    j.SeriesName,
		"mode":      j.Options.Mode,
		"length":    len(j.Series),
		"breakouts": len(points),
	})
}
