package ml

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Alx74909/Projet-ATLAS/models"
)

const KindColumnTransformer = "column_transformer"

type InputColumn struct {
	Name  string `json:"name"`
	Dtype string `json:"dtype"`
}

// NumericBlock imputes with the fitted median then standard-scales.
type NumericBlock struct {
	Columns []string  `json:"columns"`
	Medians []float64 `json:"medians"`
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`
}

// CategoricalBlock imputes a constant then one-hot encodes. Categories not
// seen at fit time encode as all zeros.
type CategoricalBlock struct {
	Columns    []string   `json:"columns"`
	FillValue  string     `json:"fill_value"`
	Categories [][]string `json:"categories"`
}

type BooleanBlock struct {
	Columns []string `json:"columns"`
}

// ColumnTransformer mirrors a fitted column-wise preprocessing pipeline.
// Columns not routed to any block are checked against the schema and dropped.
type ColumnTransformer struct {
	Kind         string           `json:"kind"`
	Version      string           `json:"version"`
	InputColumns []InputColumn    `json:"input_columns"`
	Numeric      NumericBlock     `json:"numeric"`
	Categorical  CategoricalBlock `json:"categorical"`
	Boolean      BooleanBlock     `json:"boolean"`

	inputKinds map[string]models.Kind
	catIndex   []map[string]int
}

func decodeColumnTransformer(data []byte) (*ColumnTransformer, error) {
	var ct ColumnTransformer
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("decode column transformer: %w", err)
	}
	if err := ct.init(); err != nil {
		return nil, err
	}
	return &ct, nil
}

func parseDtype(dtype string) (models.Kind, error) {
	switch dtype {
	case "string", "object", "category":
		return models.KindString, nil
	case "number", "float64", "int64":
		return models.KindNumber, nil
	case "bool":
		return models.KindBool, nil
	case "datetime", "datetime64[ns]":
		return models.KindTime, nil
	default:
		return 0, fmt.Errorf("unsupported dtype %q", dtype)
	}
}

func (ct *ColumnTransformer) init() error {
	ct.inputKinds = make(map[string]models.Kind, len(ct.InputColumns))
	for _, c := range ct.InputColumns {
		k, err := parseDtype(c.Dtype)
		if err != nil {
			return fmt.Errorf("column %q: %w", c.Name, err)
		}
		ct.inputKinds[c.Name] = k
	}

	n := len(ct.Numeric.Columns)
	if len(ct.Numeric.Medians) != n || len(ct.Numeric.Means) != n || len(ct.Numeric.Scales) != n {
		return fmt.Errorf("numeric block: %d columns but %d medians, %d means, %d scales",
			n, len(ct.Numeric.Medians), len(ct.Numeric.Means), len(ct.Numeric.Scales))
	}
	if len(ct.Categorical.Categories) != len(ct.Categorical.Columns) {
		return fmt.Errorf("categorical block: %d columns but %d category lists",
			len(ct.Categorical.Columns), len(ct.Categorical.Categories))
	}

	blocks := []struct {
		cols []string
		kind models.Kind
	}{
		{ct.Numeric.Columns, models.KindNumber},
		{ct.Categorical.Columns, models.KindString},
		{ct.Boolean.Columns, models.KindBool},
	}
	for _, b := range blocks {
		for _, col := range b.cols {
			k, ok := ct.inputKinds[col]
			if !ok {
				return fmt.Errorf("block column %q is not an input column", col)
			}
			if k != b.kind {
				return fmt.Errorf("block column %q has dtype %s, want %s", col, k, b.kind)
			}
		}
	}

	// sklearn leaves zero-variance features unscaled.
	for i, s := range ct.Numeric.Scales {
		if s == 0 {
			ct.Numeric.Scales[i] = 1
		}
	}

	ct.catIndex = make([]map[string]int, len(ct.Categorical.Categories))
	for i, cats := range ct.Categorical.Categories {
		idx := make(map[string]int, len(cats))
		for j, c := range cats {
			idx[c] = j
		}
		ct.catIndex[i] = idx
	}
	return nil
}

func (ct *ColumnTransformer) OutputWidth() int {
	w := len(ct.Numeric.Columns) + len(ct.Boolean.Columns)
	for _, cats := range ct.Categorical.Categories {
		w += len(cats)
	}
	return w
}

// Validate checks that rec carries every input column with the fitted dtype.
func (ct *ColumnTransformer) Validate(rec models.Record) error {
	for _, c := range ct.InputColumns {
		v, ok := rec[c.Name]
		if !ok {
			return fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, c.Name)
		}
		if want := ct.inputKinds[c.Name]; v.Kind != want {
			return fmt.Errorf("%w: column %q is %s, want %s", ErrSchemaMismatch, c.Name, v.Kind, want)
		}
	}
	return nil
}

func (ct *ColumnTransformer) Transform(rec models.Record) ([]float64, error) {
	if err := ct.Validate(rec); err != nil {
		return nil, err
	}

	out := make([]float64, 0, ct.OutputWidth())

	num := make([]float64, len(ct.Numeric.Columns))
	for i, col := range ct.Numeric.Columns {
		v := rec[col].Float()
		if math.IsNaN(v) {
			v = ct.Numeric.Medians[i]
		}
		num[i] = v
	}
	floats.Sub(num, ct.Numeric.Means)
	floats.Div(num, ct.Numeric.Scales)
	out = append(out, num...)

	for i, col := range ct.Categorical.Columns {
		v := rec[col]
		s := v.Str
		if v.Missing {
			s = ct.Categorical.FillValue
		}
		onehot := make([]float64, len(ct.Categorical.Categories[i]))
		if j, ok := ct.catIndex[i][s]; ok {
			onehot[j] = 1
		}
		out = append(out, onehot...)
	}

	for _, col := range ct.Boolean.Columns {
		v := rec[col].Float()
		if math.IsNaN(v) {
			v = 0
		}
		out = append(out, v)
	}
	return out, nil
}
