package main

import (
	"context"

	"github.com/evergreen-ci/breakout/benchmarks"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	grip.Log(level.Info, "running change detector benchmarks...")
	if err := benchmarks.RunDetectorBenchmark(ctx, "build", []int{1e3, 5e3, 1e4}); err != nil {
		grip.Error(err)
	}
}
