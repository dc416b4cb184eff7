package ml

import (
	"encoding/json"
	"fmt"
)

const KindSupportMask = "support_mask"

// SupportSelector keeps the features whose support flag is set.
type SupportSelector struct {
	Kind    string `json:"kind"`
	Version string `json:"version"`
	Support []bool `json:"support"`

	keep []int
}

func decodeSupportSelector(data []byte) (*SupportSelector, error) {
	var s SupportSelector
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode support selector: %w", err)
	}
	s.init()
	if len(s.keep) == 0 {
		return nil, fmt.Errorf("support selector keeps no features")
	}
	return &s, nil
}

// NewSupportSelector builds a selector from a fitted support mask.
func NewSupportSelector(support []bool) *SupportSelector {
	s := &SupportSelector{Kind: KindSupportMask, Support: support}
	s.init()
	return s
}

func (s *SupportSelector) init() {
	s.keep = s.keep[:0]
	for i, ok := range s.Support {
		if ok {
			s.keep = append(s.keep, i)
		}
	}
}

func (s *SupportSelector) OutputWidth() int { return len(s.keep) }

func (s *SupportSelector) Transform(x []float64) ([]float64, error) {
	if err := checkWidth(x, len(s.Support)); err != nil {
		return nil, err
	}
	out := make([]float64, len(s.keep))
	for i, j := range s.keep {
		out[i] = x[j]
	}
	return out, nil
}
