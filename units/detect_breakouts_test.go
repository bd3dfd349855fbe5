package units

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/mongodb/amboy/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeLevelSeries() []float64 {
	return []float64{
		3.0, 1.0, 2.0, 3.0, 2.0, 1.0, 1.0, 2.0, 2.0, 3.0,
		6.0, 4.0, 4.0, 5.0, 6.0, 4.0, 4.0, 4.0, 6.0, 5.0,
		9.0, 8.0, 7.0, 9.0, 8.0, 9.0, 9.0, 9.0, 7.0, 9.0,
	}
}

func testDetectorOptions(mode edm.Mode) edm.DetectorOptions {
	opts := edm.DefaultDetectorOptions()
	opts.Mode = mode
	opts.AMOC.MinSize = 5
	opts.Multi.MinSize = 5
	return opts
}

func TestDetectBreakoutsJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Factory", func(t *testing.T) {
		j := NewDetectBreakoutsJob("series", threeLevelSeries(), testDetectorOptions(edm.ModeMulti))
		assert.Equal(t, detectBreakoutsJobName, j.Type().Name)
		assert.True(t, strings.HasPrefix(j.ID(), detectBreakoutsJobName+".series."))

		other := NewDetectBreakoutsJob("series", threeLevelSeries(), testDetectorOptions(edm.ModeMulti))
		assert.NotEqual(t, j.ID(), other.ID())
	})
	t.Run("Multi", func(t *testing.T) {
		j := NewDetectBreakoutsJob("series", threeLevelSeries(), testDetectorOptions(edm.ModeMulti))
		j.Run(ctx)
		assert.True(t, j.Status().Completed)
		require.NoError(t, j.Error())

		dj := j.(*detectBreakoutsJob)
		require.Len(t, dj.Results, 3)
		for idx, expected := range []int{10, 15, 20} {
			assert.Equal(t, expected, dj.Results[idx].Index)
		}
	})
	t.Run("AMOC", func(t *testing.T) {
		j := NewDetectBreakoutsJob("series", threeLevelSeries(), testDetectorOptions(edm.ModeAMOC))
		j.Run(ctx)
		require.NoError(t, j.Error())

		dj := j.(*detectBreakoutsJob)
		require.Len(t, dj.Results, 1)
		assert.Equal(t, 19, dj.Results[0].Index)
	})
	t.Run("InvalidOptions", func(t *testing.T) {
		opts := testDetectorOptions(edm.ModeAMOC)
		opts.AMOC.MinSize = 1
		j := NewDetectBreakoutsJob("bad", threeLevelSeries(), opts)
		j.Run(ctx)
		assert.True(t, j.Status().Completed)
		require.Error(t, j.Error())
		assert.Contains(t, j.Error().Error(), "bad")
		assert.Empty(t, j.(*detectBreakoutsJob).Results)
	})
}

func TestDetectAll(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	t.Run("Succeeds", func(t *testing.T) {
		q := queue.NewLocalLimitedSize(2, 100)
		require.NoError(t, q.Start(ctx))

		step := make([]float64, 20)
		for i := 10; i < 20; i++ {
			step[i] = 1
		}
		series := map[string][]float64{
			"levels": threeLevelSeries(),
			"step":   step,
			"flat":   make([]float64, 40),
			"empty":  {},
		}

		results, err := DetectAll(ctx, q, testDetectorOptions(edm.ModeMulti), series)
		require.NoError(t, err)
		require.Len(t, results, 4)

		require.Len(t, results["levels"], 3)
		require.Len(t, results["step"], 1)
		assert.Equal(t, 10, results["step"][0].Index)
		assert.Empty(t, results["flat"])
		assert.Empty(t, results["empty"])
	})
	t.Run("InvalidSeries", func(t *testing.T) {
		q := queue.NewLocalLimitedSize(2, 100)
		require.NoError(t, q.Start(ctx))

		opts := testDetectorOptions(edm.ModeAMOC)
		series := map[string][]float64{
			"good": threeLevelSeries(),
			"bad":  append(threeLevelSeries(), math.Inf(1)),
		}

		results, err := DetectAll(ctx, q, opts, series)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad")
		require.Len(t, results, 1)
		assert.Equal(t, 19, results["good"][0].Index)
	})
	t.Run("InvalidOptions", func(t *testing.T) {
		q := queue.NewLocalLimitedSize(1, 10)
		require.NoError(t, q.Start(ctx))

		opts := testDetectorOptions("neither")
		results, err := DetectAll(ctx, q, opts, map[string][]float64{"series": threeLevelSeries()})
		require.Error(t, err)
		assert.True(t, edm.IsParameterError(err))
		assert.Nil(t, results)
	})
}
