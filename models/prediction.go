package models

import (
	"fmt"
	"time"
)

// LabelDelayed is the positive class emitted by the classifier.
const LabelDelayed = 1

type Prediction struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

func (p Prediction) Late() bool { return p.Label == LabelDelayed }

// Confidence is the probability of the predicted branch: p for late, 1-p for
// on time.
func (p Prediction) Confidence() float64 {
	if p.Late() {
		return p.Probability
	}
	return 1 - p.Probability
}

func (p Prediction) Verdict() string {
	if p.Late() {
		return "likely late"
	}
	return "likely on time"
}

func (p Prediction) ConfidencePercent() string {
	return fmt.Sprintf("%.2f%%", p.Confidence()*100)
}

func (p Prediction) Message() string {
	return fmt.Sprintf("Delivery %s (confidence: %s)", p.Verdict(), p.ConfidencePercent())
}

// PredictionResponse is the JSON shape returned by the API.
type PredictionResponse struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
	Late        bool    `json:"late"`
	Confidence  float64 `json:"confidence"`
	Message     string  `json:"message"`
}

func (p Prediction) Response() PredictionResponse {
	return PredictionResponse{
		Label:       p.Label,
		Probability: p.Probability,
		Late:        p.Late(),
		Confidence:  p.Confidence(),
		Message:     p.Message(),
	}
}

// PredictionEvent is broadcast after each served prediction.
type PredictionEvent struct {
	TS           time.Time `json:"ts"`
	Label        int       `json:"label"`
	Probability  float64   `json:"probability"`
	Verdict      string    `json:"verdict"`
	ModelVersion string    `json:"model_version"`
}

func (p Prediction) Event(ts time.Time, modelVersion string) PredictionEvent {
	return PredictionEvent{
		TS:           ts,
		Label:        p.Label,
		Probability:  p.Probability,
		Verdict:      p.Verdict(),
		ModelVersion: modelVersion,
	}
}
