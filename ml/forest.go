package ml

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const KindRandomForest = "random_forest"

const leaf = -1

// Tree is a fitted decision tree in flat array form. Node i is a leaf when
// Left[i] == -1; Value[i] holds its per-class weights.
type Tree struct {
	Left            []int       `json:"children_left"`
	Right           []int       `json:"children_right"`
	Feature         []int       `json:"feature"`
	Threshold       []float64   `json:"threshold"`
	Value           [][]float64 `json:"value"`
	MissingGoToLeft []bool      `json:"missing_go_to_left,omitempty"`
}

func (t *Tree) validate(nFeatures, nClasses int) error {
	n := len(t.Left)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.Right) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays disagree on length %d", n)
	}
	if t.MissingGoToLeft != nil && len(t.MissingGoToLeft) != n {
		return fmt.Errorf("missing_go_to_left has %d entries, want %d", len(t.MissingGoToLeft), n)
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d has %d class weights, want %d", i, len(t.Value[i]), nClasses)
		}
		if t.Left[i] == leaf {
			continue
		}
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return fmt.Errorf("node %d has out of range children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

// leafDistribution walks the tree and returns the normalised class weights.
func (t *Tree) leafDistribution(x []float64) []float64 {
	node := 0
	for t.Left[node] != leaf {
		v := x[t.Feature[node]]
		var goLeft bool
		if math.IsNaN(v) {
			goLeft = t.MissingGoToLeft != nil && t.MissingGoToLeft[node]
		} else {
			goLeft = v <= t.Threshold[node]
		}
		if goLeft {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	dist := append([]float64(nil), t.Value[node]...)
	if s := floats.Sum(dist); s > 0 {
		floats.Scale(1/s, dist)
	}
	return dist
}

// RandomForest averages the leaf distributions of its trees.
type RandomForest struct {
	Kind        string `json:"kind"`
	Version     string `json:"version"`
	ClassLabels []int  `json:"classes"`
	NFeatures   int    `json:"n_features_in"`
	Trees       []Tree `json:"trees"`
}

func decodeRandomForest(data []byte) (*RandomForest, error) {
	var rf RandomForest
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode random forest: %w", err)
	}
	if len(rf.ClassLabels) < 2 {
		return nil, fmt.Errorf("random forest: need at least two classes, got %d", len(rf.ClassLabels))
	}
	if rf.NFeatures <= 0 {
		return nil, fmt.Errorf("random forest: n_features_in must be positive")
	}
	if len(rf.Trees) == 0 {
		return nil, fmt.Errorf("random forest: no trees")
	}
	for i := range rf.Trees {
		if err := rf.Trees[i].validate(rf.NFeatures, len(rf.ClassLabels)); err != nil {
			return nil, fmt.Errorf("random forest tree %d: %w", i, err)
		}
	}
	return &rf, nil
}

func (rf *RandomForest) Classes() []int { return rf.ClassLabels }

func (rf *RandomForest) PredictProba(x []float64) ([]float64, error) {
	if err := checkWidth(x, rf.NFeatures); err != nil {
		return nil, err
	}
	proba := make([]float64, len(rf.ClassLabels))
	for i := range rf.Trees {
		floats.Add(proba, rf.Trees[i].leafDistribution(x))
	}
	floats.Scale(1/float64(len(rf.Trees)), proba)
	return proba, nil
}

func (rf *RandomForest) Predict(x []float64) (int, error) {
	proba, err := rf.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return rf.ClassLabels[floats.MaxIdx(proba)], nil
}
