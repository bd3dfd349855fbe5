package operations

import (
	"context"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/breakout/storage"
	"github.com/evergreen-ci/breakout/units"
	"github.com/evergreen-ci/breakout/util"
	"github.com/mongodb/amboy/queue"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Batch returns the ./breakout batch command, which runs one detector over
// every series in a file using a local job queue.
func Batch() cli.Command {
	return cli.Command{
		Name:  "batch",
		Usage: "detect breakouts in every series of a JSON or YAML mapping of names to series",
		Flags: mergeFlags(addPathFlag(), addOutputFlags(), batchFlags()),
		Before: mergeBeforeFuncs(
			setFlagOrFirstPositional(pathFlagName),
			requireFileExists(pathFlagName),
			requireValidFormat,
		),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf, err := loadConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			opts := conf.Detector
			if c.IsSet(modeFlagName) {
				opts.Mode = edm.Mode(c.String(modeFlagName))
			}
			if c.IsSet(minSizeFlag) {
				opts.AMOC.MinSize = c.Int(minSizeFlag)
				opts.Multi.MinSize = c.Int(minSizeFlag)
			}
			workers := conf.NumWorkers
			if c.IsSet(numWorkersFlag) {
				workers = c.Int(numWorkersFlag)
			}
			if workers < 1 {
				return errors.Errorf("%d is not a valid number of workers", workers)
			}

			fn := c.String(pathFlagName)
			series, err := util.ReadSeriesSet(fn)
			if err != nil {
				return errors.Wrap(err, "problem reading series")
			}

			q := queue.NewLocalLimitedSize(workers, len(series)+1)
			if err = q.Start(ctx); err != nil {
				return errors.Wrap(err, "problem starting queue")
			}

			results, detectErr := units.DetectAll(ctx, q, opts, series)
			if results == nil {
				return errors.Wrapf(detectErr, "problem detecting breakouts in '%s'", fn)
			}
			grip.Warning(message.WrapError(detectErr, message.Fields{
				"message": "some series failed breakout detection",
				"path":    fn,
			}))

			grip.Infof("detected breakouts in %d series from '%s'", len(results), fn)

			if err = writeResult(c, results); err != nil {
				return errors.WithStack(err)
			}

			bucketOpts := conf.Bucket
			if c.IsSet(bucketNameFlag) {
				bucketOpts.Name = c.String(bucketNameFlag)
				bucketOpts.Type = storage.BucketType(c.String(bucketTypeFlag))
			}
			if c.IsSet(bucketPrefixFlag) {
				bucketOpts.Prefix = c.String(bucketPrefixFlag)
			}
			if !bucketOpts.IsZero() {
				bucket, err := bucketOpts.Create(ctx)
				if err != nil {
					return errors.Wrap(err, "problem creating results bucket")
				}
				if err = storage.UploadResults(ctx, bucket, results); err != nil {
					return errors.WithStack(err)
				}
			}

			return errors.Wrapf(detectErr, "problem detecting breakouts in '%s'", fn)
		},
	}
}
