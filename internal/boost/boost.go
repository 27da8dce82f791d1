// Package boost is a small histogram-based gradient boosting implementation
// used as the tree-heavy workload of the boost_train and boost_infer suites.
// It follows the usual hist-method recipe: features are quantized to fixed
// bins once, per-node gradient histograms pick the best split, and leaves
// carry Newton-step values with L2 regularization.
package boost

import (
	"math"
	"math/rand"
)

// Config bounds the training work so a benchmark run stays tractable.
type Config struct {
	Rounds       int
	MaxDepth     int
	LearningRate float64
	Bins         int
	Lambda       float64 // L2 on leaf weights
	MinChildSize int
}

// DefaultConfig mirrors a moderate `hist` training setup.
func DefaultConfig() Config {
	return Config{
		Rounds:       50,
		MaxDepth:     6,
		LearningRate: 0.1,
		Bins:         64,
		Lambda:       1.0,
		MinChildSize: 20,
	}
}

// Dataset is a dense row-major feature matrix with binary labels.
type Dataset struct {
	X []float32
	Y []float32
	N int
	D int
}

// MakeBinaryClassification builds a synthetic linearly-separable-ish
// dataset: labels come from a random hyperplane with a small positive
// offset so the decision boundary is never all-zero.
func MakeBinaryClassification(n, d int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float32, n*d)
	for i := range x {
		x[i] = float32(rng.NormFloat64())
	}
	w := make([]float32, d)
	for i := range w {
		w[i] = float32(rng.NormFloat64())
	}
	y := make([]float32, n)
	for i := 0; i < n; i++ {
		var logit float32 = 0.1
		row := x[i*d : (i+1)*d]
		for j, v := range row {
			logit += v * w[j]
		}
		if logit > 0 {
			y[i] = 1
		}
	}
	return &Dataset{X: x, Y: y, N: n, D: d}
}

type node struct {
	feature int
	bin     uint8
	left    int
	right   int
	leaf    bool
	value   float64
}

// Tree is a depth-limited regression tree over binned features.
type Tree struct {
	nodes []node
}

// Model is an additive ensemble of trees over a constant base score.
type Model struct {
	Base  float64
	Trees []*Tree
	cfg   Config
	// binning thresholds per feature, shared by train and predict
	lo, step []float32
}

type binned struct {
	codes []uint8 // n*d
	n, d  int
}

func (m *Model) binIndex(feature int, v float32) uint8 {
	if m.step[feature] <= 0 {
		return 0
	}
	idx := int((v - m.lo[feature]) / m.step[feature])
	if idx < 0 {
		idx = 0
	}
	if idx > m.cfg.Bins-1 {
		idx = m.cfg.Bins - 1
	}
	return uint8(idx)
}

func (m *Model) binDataset(ds *Dataset) *binned {
	m.lo = make([]float32, ds.D)
	m.step = make([]float32, ds.D)
	for j := 0; j < ds.D; j++ {
		lo, hi := ds.X[j], ds.X[j]
		for i := 1; i < ds.N; i++ {
			v := ds.X[i*ds.D+j]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		m.lo[j] = lo
		m.step[j] = (hi - lo) / float32(m.cfg.Bins)
	}
	b := &binned{codes: make([]uint8, ds.N*ds.D), n: ds.N, d: ds.D}
	for i := 0; i < ds.N; i++ {
		for j := 0; j < ds.D; j++ {
			b.codes[i*ds.D+j] = m.binIndex(j, ds.X[i*ds.D+j])
		}
	}
	return b
}

// Train fits cfg.Rounds trees against the logistic objective.
func Train(cfg Config, ds *Dataset) *Model {
	m := &Model{Base: 0, cfg: cfg}
	b := m.binDataset(ds)

	scores := make([]float64, ds.N)
	grad := make([]float64, ds.N)
	hess := make([]float64, ds.N)
	rows := make([]int32, ds.N)

	for round := 0; round < cfg.Rounds; round++ {
		for i := 0; i < ds.N; i++ {
			p := sigmoid(scores[i])
			grad[i] = p - float64(ds.Y[i])
			hess[i] = p * (1 - p)
			rows[i] = int32(i)
		}
		t := m.growTree(b, rows, grad, hess)
		m.Trees = append(m.Trees, t)
		for i := 0; i < ds.N; i++ {
			scores[i] += cfg.LearningRate * t.predictBinned(b, i)
		}
	}
	return m
}

func (m *Model) growTree(b *binned, rows []int32, grad, hess []float64) *Tree {
	t := &Tree{}
	m.buildNode(t, b, rows, grad, hess, 0)
	return t
}

// buildNode returns the index of the node it appended.
func (m *Model) buildNode(t *Tree, b *binned, rows []int32, grad, hess []float64, depth int) int {
	var gSum, hSum float64
	for _, r := range rows {
		gSum += grad[r]
		hSum += hess[r]
	}

	self := len(t.nodes)
	t.nodes = append(t.nodes, node{})

	if depth >= m.cfg.MaxDepth || len(rows) < 2*m.cfg.MinChildSize {
		t.nodes[self] = leafNode(gSum, hSum, m.cfg.Lambda)
		return self
	}

	feature, bin, gain := m.bestSplit(b, rows, grad, hess, gSum, hSum)
	if gain <= 0 {
		t.nodes[self] = leafNode(gSum, hSum, m.cfg.Lambda)
		return self
	}

	var leftRows, rightRows []int32
	for _, r := range rows {
		if b.codes[int(r)*b.d+feature] <= bin {
			leftRows = append(leftRows, r)
		} else {
			rightRows = append(rightRows, r)
		}
	}
	if len(leftRows) < m.cfg.MinChildSize || len(rightRows) < m.cfg.MinChildSize {
		t.nodes[self] = leafNode(gSum, hSum, m.cfg.Lambda)
		return self
	}

	left := m.buildNode(t, b, leftRows, grad, hess, depth+1)
	right := m.buildNode(t, b, rightRows, grad, hess, depth+1)
	t.nodes[self] = node{feature: feature, bin: bin, left: left, right: right}
	return self
}

func leafNode(gSum, hSum, lambda float64) node {
	return node{leaf: true, value: -gSum / (hSum + lambda)}
}

func (m *Model) bestSplit(b *binned, rows []int32, grad, hess []float64, gTotal, hTotal float64) (int, uint8, float64) {
	bins := m.cfg.Bins
	gHist := make([]float64, bins)
	hHist := make([]float64, bins)

	bestFeature, bestGain := -1, 0.0
	var bestBin uint8
	parentScore := gTotal * gTotal / (hTotal + m.cfg.Lambda)

	for j := 0; j < b.d; j++ {
		for k := 0; k < bins; k++ {
			gHist[k], hHist[k] = 0, 0
		}
		for _, r := range rows {
			k := b.codes[int(r)*b.d+j]
			gHist[k] += grad[r]
			hHist[k] += hess[r]
		}
		var gLeft, hLeft float64
		for k := 0; k < bins-1; k++ {
			gLeft += gHist[k]
			hLeft += hHist[k]
			gRight := gTotal - gLeft
			hRight := hTotal - hLeft
			if hLeft == 0 || hRight == 0 {
				continue
			}
			gain := gLeft*gLeft/(hLeft+m.cfg.Lambda) +
				gRight*gRight/(hRight+m.cfg.Lambda) - parentScore
			if gain > bestGain {
				bestFeature, bestBin, bestGain = j, uint8(k), gain
			}
		}
	}
	return bestFeature, bestBin, bestGain
}

func (t *Tree) predictBinned(b *binned, row int) float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := t.nodes[i]
		if b.codes[row*b.d+n.feature] <= n.bin {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

// Predict returns per-row probabilities for a dense row-major matrix with
// the same feature count the model was trained on.
func (m *Model) Predict(x []float32, n, d int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		row := x[i*d : (i+1)*d]
		score := m.Base
		for _, t := range m.Trees {
			score += m.cfg.LearningRate * t.predictRow(m, row)
		}
		out[i] = float32(sigmoid(score))
	}
	return out
}

func (t *Tree) predictRow(m *Model, row []float32) float64 {
	i := 0
	for !t.nodes[i].leaf {
		n := t.nodes[i]
		if m.binIndex(n.feature, row[n.feature]) <= n.bin {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
