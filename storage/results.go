package storage

import (
	"context"
	"sort"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/pail"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const resultsSuffix = ".json"

// ResultKey returns the bucket key for the change points of the named
// series.
func ResultKey(seriesName string) string {
	return seriesName + resultsSuffix
}

// UploadResults writes one document per series to the bucket. Every series
// is attempted; the returned error aggregates failed uploads.
func UploadResults(ctx context.Context, bucket pail.Bucket, results map[string][]edm.ChangePoint) error {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	catcher := grip.NewBasicCatcher()
	for _, name := range names {
		if ctx.Err() != nil {
			catcher.Add(ctx.Err())
			break
		}

		cps := results[name]
		if cps == nil {
			cps = []edm.ChangePoint{}
		}
		catcher.Add(PutJSON(ctx, bucket, ResultKey(name), cps))
	}

	grip.Info(message.Fields{
		"message": "uploaded breakout results",
		"series":  len(names),
		"failed":  catcher.Len(),
	})

	return errors.Wrap(catcher.Resolve(), "problem uploading breakout results")
}

// DownloadResult reads back the change points stored for the named series.
func DownloadResult(ctx context.Context, bucket pail.Bucket, seriesName string) ([]edm.ChangePoint, error) {
	out := []edm.ChangePoint{}
	if err := GetJSON(ctx, bucket, ResultKey(seriesName), &out); err != nil {
		return nil, err
	}
	return out, nil
}
