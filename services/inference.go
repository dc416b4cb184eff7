package services

import (
	"fmt"
	"time"

	"github.com/Alx74909/Projet-ATLAS/ml"
	"github.com/Alx74909/Projet-ATLAS/models"
)

// Predictor runs the fitted artifacts in their fixed order.
type Predictor struct {
	pipeline   ml.Pipeline
	selector   ml.Selector
	classifier ml.Classifier
	positive   int
}

func NewPredictor(b *ml.Bundle) (*Predictor, error) {
	pos := ml.ClassIndex(b.Classifier, models.LabelDelayed)
	if pos < 0 {
		return nil, fmt.Errorf("classifier classes %v do not include %d", b.Classifier.Classes(), models.LabelDelayed)
	}
	return &Predictor{
		pipeline:   b.Pipeline,
		selector:   b.Selector,
		classifier: b.Classifier,
		positive:   pos,
	}, nil
}

func (p *Predictor) Predict(rec models.Record) (models.Prediction, error) {
	start := time.Now()
	defer func() {
		inferenceDuration.Observe(time.Since(start).Seconds())
	}()

	transformed, err := p.pipeline.Transform(rec)
	if err != nil {
		predictionsFailed.WithLabelValues("pipeline").Inc()
		return models.Prediction{}, fmt.Errorf("pipeline transform: %w", err)
	}
	reduced, err := p.selector.Transform(transformed)
	if err != nil {
		predictionsFailed.WithLabelValues("selector").Inc()
		return models.Prediction{}, fmt.Errorf("selector transform: %w", err)
	}
	label, err := p.classifier.Predict(reduced)
	if err != nil {
		predictionsFailed.WithLabelValues("classifier").Inc()
		return models.Prediction{}, fmt.Errorf("classifier predict: %w", err)
	}
	proba, err := p.classifier.PredictProba(reduced)
	if err != nil {
		predictionsFailed.WithLabelValues("classifier").Inc()
		return models.Prediction{}, fmt.Errorf("classifier predict_proba: %w", err)
	}
	if p.positive >= len(proba) {
		predictionsFailed.WithLabelValues("classifier").Inc()
		return models.Prediction{}, fmt.Errorf("classifier returned %d probabilities, want index %d", len(proba), p.positive)
	}

	pred := models.Prediction{Label: label, Probability: proba[p.positive]}
	predictionsServed.WithLabelValues(pred.Verdict()).Inc()
	return pred, nil
}

// PredictOrder reconciles the input and predicts in one step.
func (p *Predictor) PredictOrder(in models.OrderInput) (models.Prediction, error) {
	rec, err := Reconcile(in)
	if err != nil {
		predictionsFailed.WithLabelValues("reconcile").Inc()
		return models.Prediction{}, err
	}
	return p.Predict(rec)
}
