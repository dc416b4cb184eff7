// Package ml evaluates preprocessing pipelines, feature selectors and
// classifiers exported by the training side as JSON parameter documents.
// Nothing here fits a model: every evaluator applies fitted parameters as-is.
package ml

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alx74909/Projet-ATLAS/models"
)

var (
	ErrSchemaMismatch    = errors.New("record does not match pipeline schema")
	ErrDimensionMismatch = errors.New("feature vector has unexpected width")
	ErrUnknownKind       = errors.New("unknown artifact kind")
)

// Pipeline turns a reconciled record into a dense feature vector.
type Pipeline interface {
	Transform(rec models.Record) ([]float64, error)
}

// Selector reduces the pipeline output to the features the model was fit on.
type Selector interface {
	Transform(x []float64) ([]float64, error)
}

// Classifier maps a reduced feature vector to a class label and per-class
// probabilities ordered like Classes().
type Classifier interface {
	Classes() []int
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([]float64, error)
}

// Bundle is the set of artifacts needed to serve one prediction.
type Bundle struct {
	Pipeline   Pipeline
	Selector   Selector
	Classifier Classifier
}

type header struct {
	Kind    string `json:"kind"`
	Version string `json:"version"`
}

func readKind(data []byte) (string, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return "", fmt.Errorf("decode artifact header: %w", err)
	}
	if h.Kind == "" {
		return "", fmt.Errorf("%w: missing kind", ErrUnknownKind)
	}
	return h.Kind, nil
}

func DecodePipeline(data []byte) (Pipeline, error) {
	kind, err := readKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindColumnTransformer:
		ct, err := decodeColumnTransformer(data)
		if err != nil {
			return nil, err
		}
		return ct, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a pipeline", ErrUnknownKind, kind)
	}
}

func DecodeSelector(data []byte) (Selector, error) {
	kind, err := readKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindSupportMask:
		s, err := decodeSupportSelector(data)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a selector", ErrUnknownKind, kind)
	}
}

func DecodeClassifier(data []byte) (Classifier, error) {
	kind, err := readKind(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindLogisticRegression:
		lr, err := decodeLogisticRegression(data)
		if err != nil {
			return nil, err
		}
		return lr, nil
	case KindRandomForest:
		rf, err := decodeRandomForest(data)
		if err != nil {
			return nil, err
		}
		return rf, nil
	default:
		return nil, fmt.Errorf("%w: %q is not a classifier", ErrUnknownKind, kind)
	}
}

// ClassIndex returns the probability column of label, or -1.
func ClassIndex(c Classifier, label int) int {
	for i, cl := range c.Classes() {
		if cl == label {
			return i
		}
	}
	return -1
}

func checkWidth(x []float64, want int) error {
	if len(x) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(x), want)
	}
	return nil
}
