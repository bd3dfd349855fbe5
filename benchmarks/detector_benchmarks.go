package benchmarks

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/poplar"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const (
	benchmarkSeed   = 20181122
	benchmarkLevels = 4
)

// RunDetectorBenchmark runs a poplar benchmark suite for each of the change
// detectors over synthetic series of increasing length. Reports are
// written under a timestamped directory in outputDir.
func RunDetectorBenchmark(ctx context.Context, outputDir string, seriesSizes []int) error {
	prefix := filepath.Join(
		outputDir,
		fmt.Sprintf("detector_benchmark_report_%d", time.Now().Unix()),
	)
	if err := os.MkdirAll(prefix, os.ModePerm); err != nil {
		return errors.Wrap(err, "problem creating top level directory")
	}

	var combinedReports string
	for _, size := range seriesSizes {
		suitePrefix := filepath.Join(prefix, fmt.Sprintf("%d", size))
		if err := os.Mkdir(suitePrefix, os.ModePerm); err != nil {
			return errors.Wrap(err, "problem creating subdirectory")
		}

		suite := getDetectorBenchmarkSuite(levelSeries(size, benchmarkLevels))
		results, err := suite.Run(ctx, suitePrefix)
		if err != nil {
			combinedReports += fmt.Sprintf("Series Size: %d\n===============\nError:\n%s\n", size, err)
			continue
		}

		combinedReports += fmt.Sprintf("Series Size: %d\n===============\n%s\n", size, results.Report())
		grip.Info(message.Fields{
			"message": "finished detector benchmarks",
			"size":    size,
			"prefix":  suitePrefix,
		})
	}

	f, err := os.Create(filepath.Join(prefix, "results.txt"))
	if err != nil {
		return errors.Wrap(err, "problem creating new file")
	}
	defer f.Close()

	_, err = f.WriteString(combinedReports)
	if err != nil {
		return errors.Wrap(err, "problem writing to file")
	}

	return nil
}

func getDetectorBenchmarkSuite(series []float64) poplar.BenchmarkSuite {
	minSize := len(series) / (4 * benchmarkLevels)
	if minSize < 2 {
		minSize = 2
	}
	percent := 0.1

	return poplar.BenchmarkSuite{
		{
			CaseName: "AMOCExact",
			Bench: getDetectorBenchmark(edm.NewAMOCDetector(edm.AMOCOptions{
				MinSize: minSize, Alpha: 2, Exact: true,
			}), series),
			MinRuntime:       time.Millisecond,
			MaxRuntime:       5 * time.Minute,
			Timeout:          10 * time.Minute,
			IterationTimeout: 5 * time.Minute,
			MinIterations:    1,
			MaxIterations:    5,
			Recorder:         poplar.RecorderPerf,
		},
		{
			CaseName: "AMOCTail",
			Bench: getDetectorBenchmark(edm.NewAMOCDetector(edm.AMOCOptions{
				MinSize: minSize, Alpha: 2,
			}), series),
			MinRuntime:       time.Millisecond,
			MaxRuntime:       5 * time.Minute,
			Timeout:          10 * time.Minute,
			IterationTimeout: 5 * time.Minute,
			MinIterations:    1,
			MaxIterations:    5,
			Recorder:         poplar.RecorderPerf,
		},
		{
			CaseName: "MultiPenalized",
			Bench: getDetectorBenchmark(edm.NewMultiDetector(edm.MultiOptions{
				MinSize: minSize, Degree: 1,
			}), series),
			MinRuntime:       time.Millisecond,
			MaxRuntime:       5 * time.Minute,
			Timeout:          10 * time.Minute,
			IterationTimeout: 5 * time.Minute,
			MinIterations:    1,
			MaxIterations:    5,
			Recorder:         poplar.RecorderPerf,
		},
		{
			CaseName: "MultiPercent",
			Bench: getDetectorBenchmark(edm.NewMultiDetector(edm.MultiOptions{
				MinSize: minSize, Degree: 1, Percent: &percent,
			}), series),
			MinRuntime:       time.Millisecond,
			MaxRuntime:       5 * time.Minute,
			Timeout:          10 * time.Minute,
			IterationTimeout: 5 * time.Minute,
			MinIterations:    1,
			MaxIterations:    5,
			Recorder:         poplar.RecorderPerf,
		},
	}
}

func getDetectorBenchmark(detector edm.ChangeDetector, series []float64) poplar.Benchmark {
	return func(ctx context.Context, r poplar.Recorder, _ int) error {
		r.SetState(0)
		startAt := time.Now()
		r.BeginIteration()
		cps, err := detector.DetectChanges(ctx, series)
		r.EndIteration(time.Since(startAt))
		r.IncOperations(int64(len(series)))
		if err != nil {
			return errors.Wrap(err, "problem detecting changes")
		}

		r.SetState(int64(len(cps)))
		return nil
	}
}

// levelSeries returns n noisy points stepping through the given number of
// levels.
func levelSeries(n, levels int) []float64 {
	rng := rand.New(rand.NewSource(benchmarkSeed))
	series := make([]float64, n)
	width := n / levels
	if width == 0 {
		width = 1
	}
	for i := range series {
		series[i] = float64(3*(i/width)) + rng.Float64()*2
	}
	return series
}
