package ml

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const KindLogisticRegression = "logistic_regression"

// LogisticRegression holds fitted coefficients. A single coefficient row is
// the binary case (sigmoid); k rows with k classes is multinomial (softmax).
type LogisticRegression struct {
	Kind        string      `json:"kind"`
	Version     string      `json:"version"`
	ClassLabels []int       `json:"classes"`
	Coef        [][]float64 `json:"coef"`
	Intercept   []float64   `json:"intercept"`

	weights *mat.Dense
	bias    *mat.VecDense
}

func decodeLogisticRegression(data []byte) (*LogisticRegression, error) {
	var lr LogisticRegression
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil, fmt.Errorf("decode logistic regression: %w", err)
	}
	if err := lr.init(); err != nil {
		return nil, err
	}
	return &lr, nil
}

func (lr *LogisticRegression) init() error {
	rows := len(lr.Coef)
	if rows == 0 || len(lr.Coef[0]) == 0 {
		return fmt.Errorf("logistic regression: empty coefficients")
	}
	if len(lr.Intercept) != rows {
		return fmt.Errorf("logistic regression: %d coefficient rows but %d intercepts", rows, len(lr.Intercept))
	}
	switch {
	case rows == 1 && len(lr.ClassLabels) == 2:
	case rows == len(lr.ClassLabels) && rows > 2:
	default:
		return fmt.Errorf("logistic regression: %d coefficient rows for %d classes", rows, len(lr.ClassLabels))
	}
	cols := len(lr.Coef[0])
	flat := make([]float64, 0, rows*cols)
	for i, row := range lr.Coef {
		if len(row) != cols {
			return fmt.Errorf("logistic regression: coefficient row %d has %d values, want %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	lr.weights = mat.NewDense(rows, cols, flat)
	lr.bias = mat.NewVecDense(rows, append([]float64(nil), lr.Intercept...))
	return nil
}

func (lr *LogisticRegression) Classes() []int { return lr.ClassLabels }

func (lr *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	rows, cols := lr.weights.Dims()
	if err := checkWidth(x, cols); err != nil {
		return nil, err
	}
	var z mat.VecDense
	z.MulVec(lr.weights, mat.NewVecDense(cols, append([]float64(nil), x...)))
	z.AddVec(&z, lr.bias)

	if rows == 1 {
		p := sigmoid(z.AtVec(0))
		return []float64{1 - p, p}, nil
	}
	return softmax(z.RawVector().Data), nil
}

func (lr *LogisticRegression) Predict(x []float64) (int, error) {
	proba, err := lr.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return lr.ClassLabels[floats.MaxIdx(proba)], nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func softmax(z []float64) []float64 {
	out := make([]float64, len(z))
	m := floats.Max(z)
	for i, v := range z {
		out[i] = math.Exp(v - m)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}
