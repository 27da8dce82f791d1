package suites

import (
	"fmt"

	"archbench/internal/bench"
	"archbench/internal/boost"
)

const (
	boostSamples  = 20_000
	boostFeatures = 32
)

var sinkProb float32

// addBoostTrainingBenchmarks times end-to-end histogram training. The
// dataset is built outside the timed region so the training kernel
// dominates the sample.
func addBoostTrainingBenchmarks(r *bench.Runner) {
	cfg := boost.DefaultConfig()
	ds := boost.MakeBinaryClassification(boostSamples, boostFeatures, 0)

	name := fmt.Sprintf("boost.train_hist[%dx%d,rounds=%d]", ds.N, ds.D, cfg.Rounds)
	r.BenchFunc(name, func() {
		model := boost.Train(cfg, ds)
		sinkInt = len(model.Trees)
	}, 1)
}

// addBoostInferenceBenchmarks trains once (not timed) and times batch
// prediction on a held-out matrix.
func addBoostInferenceBenchmarks(r *bench.Runner) {
	cfg := boost.DefaultConfig()
	train := boost.MakeBinaryClassification(boostSamples, boostFeatures, 0)
	model := boost.Train(cfg, train)

	test := boost.MakeBinaryClassification(boostSamples, boostFeatures, 1)
	name := fmt.Sprintf("boost.predict_hist[%dx%d,rounds=%d]", test.N, test.D, cfg.Rounds)
	r.BenchFunc(name, func() {
		probs := model.Predict(test.X, test.N, test.D)
		sinkProb = probs[0]
	}, 10)
}
