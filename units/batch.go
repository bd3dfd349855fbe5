package units

import (
	"context"
	"time"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/mongodb/amboy"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const batchWaitInterval = 100 * time.Millisecond

// DetectAll runs one detection job per series on q, which must already be
// started, and waits for them to finish. The results are keyed by series
// name. Series that fail are reported together in the returned error and
// left out of the results.
func DetectAll(ctx context.Context, q amboy.Queue, opts edm.DetectorOptions, series map[string][]float64) (map[string][]edm.ChangePoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detector options")
	}

	catcher := grip.NewBasicCatcher()
	ids := make(map[string]string, len(series))
	for name, values := range series {
		j := NewDetectBreakoutsJob(name, values, opts)
		if err := q.Put(ctx, j); err != nil {
			catcher.Wrapf(err, "problem queuing job for series '%s'", name)
			continue
		}
		ids[name] = j.ID()
	}
	if catcher.HasErrors() {
		return nil, catcher.Resolve()
	}

	if !amboy.WaitInterval(ctx, q, batchWaitInterval) {
		return nil, errors.Wrap(ctx.Err(), "waiting for detection jobs")
	}

	out := make(map[string][]edm.ChangePoint, len(ids))
	for name, id := range ids {
		j, ok := q.Get(ctx, id)
		if !ok {
			catcher.Errorf("could not find job for series '%s'", name)
			continue
		}
		if err := j.Error(); err != nil {
			catcher.Add(err)
			continue
		}

		dj, ok := j.(*detectBreakoutsJob)
		if !ok {
			catcher.Errorf("job '%s' has unexpected type '%s'", id, j.Type().Name)
			continue
		}
		out[name] = dj.Results
	}

	grip.Info(message.Fields{
		"message":   "completed breakout detection batch",
		"series":    len(series),
		"succeeded": len(out),
		"mode":      opts.Mode,
	})

	return out, catcher.Resolve()
}
