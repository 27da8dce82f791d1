package boost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	return Config{
		Rounds:       20,
		MaxDepth:     4,
		LearningRate: 0.3,
		Bins:         32,
		Lambda:       1.0,
		MinChildSize: 5,
	}
}

func TestMakeBinaryClassification(t *testing.T) {
	ds := MakeBinaryClassification(100, 8, 0)

	assert.Equal(t, 100, ds.N)
	assert.Equal(t, 8, ds.D)
	assert.Len(t, ds.X, 800)
	assert.Len(t, ds.Y, 100)

	var positives int
	for _, y := range ds.Y {
		require.Contains(t, []float32{0, 1}, y)
		if y == 1 {
			positives++
		}
	}
	// A random hyperplane through near-origin splits roughly in half.
	assert.Greater(t, positives, 10)
	assert.Less(t, positives, 90)

	again := MakeBinaryClassification(100, 8, 0)
	assert.Equal(t, ds.X, again.X)
	assert.Equal(t, ds.Y, again.Y)

	other := MakeBinaryClassification(100, 8, 1)
	assert.NotEqual(t, ds.X, other.X)
}

func TestTrainLearnsTrainingSet(t *testing.T) {
	ds := MakeBinaryClassification(2000, 8, 0)
	model := Train(smallConfig(), ds)

	require.Len(t, model.Trees, 20)

	probs := model.Predict(ds.X, ds.N, ds.D)
	require.Len(t, probs, ds.N)

	correct := 0
	for i, p := range probs {
		require.GreaterOrEqual(t, p, float32(0))
		require.LessOrEqual(t, p, float32(1))
		pred := float32(0)
		if p >= 0.5 {
			pred = 1
		}
		if pred == ds.Y[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(ds.N)
	assert.Greater(t, accuracy, 0.8, "training accuracy %f", accuracy)
}

func TestPredictDeterministic(t *testing.T) {
	ds := MakeBinaryClassification(500, 4, 0)
	model := Train(smallConfig(), ds)

	test := MakeBinaryClassification(50, 4, 1)
	a := model.Predict(test.X, test.N, test.D)
	b := model.Predict(test.X, test.N, test.D)
	assert.Equal(t, a, b)
}

func TestTrainDegenerateLabels(t *testing.T) {
	// All-one labels must not panic and must push probabilities up.
	ds := MakeBinaryClassification(200, 4, 0)
	for i := range ds.Y {
		ds.Y[i] = 1
	}
	model := Train(smallConfig(), ds)
	probs := model.Predict(ds.X, ds.N, ds.D)
	for _, p := range probs {
		assert.Greater(t, p, float32(0.5))
	}
}
