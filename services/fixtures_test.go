package services

import (
	"encoding/json"
	"testing"

	"github.com/Alx74909/Projet-ATLAS/ml"
	"github.com/Alx74909/Projet-ATLAS/models"
)

func dtypeOf(k models.Kind) string {
	switch k {
	case models.KindNumber:
		return "float64"
	case models.KindBool:
		return "bool"
	case models.KindTime:
		return "datetime64[ns]"
	default:
		return "object"
	}
}

// schemaPipeline is fit on the full order schema: every numeric column is
// passed through unscaled, two categoricals are one-hot encoded and the
// weather flag is kept as 0/1.
func schemaPipeline() ml.ColumnTransformer {
	ct := ml.ColumnTransformer{Kind: ml.KindColumnTransformer, Version: "test"}
	for _, c := range models.Schema {
		ct.InputColumns = append(ct.InputColumns, ml.InputColumn{Name: c.Name, Dtype: dtypeOf(c.Kind)})
	}
	for _, name := range models.NumericColumns {
		ct.Numeric.Columns = append(ct.Numeric.Columns, name)
		ct.Numeric.Medians = append(ct.Numeric.Medians, 0)
		ct.Numeric.Means = append(ct.Numeric.Means, 0)
		ct.Numeric.Scales = append(ct.Numeric.Scales, 1)
	}
	ct.Categorical = ml.CategoricalBlock{
		Columns:   []string{models.ColOrderStatus, models.ColWeatherLevel},
		FillValue: models.UnknownCategory,
		Categories: [][]string{
			{"delivered", "not validated", "validated"},
			{models.WeatherLow, models.WeatherHigh, models.WeatherMedium, models.WeatherNone},
		},
	}
	ct.Boolean = ml.BooleanBlock{Columns: []string{models.ColHasWeatherIssue}}
	return ct
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

// artifactFixtures returns pipeline, selector and model documents. The
// selector keeps only the order quantity and the model predicts
// P(late) = sigmoid(quantity - 2.5).
func artifactFixtures(t *testing.T) (pipeline, selector, model []byte) {
	t.Helper()
	ct := schemaPipeline()
	width := len(ct.Numeric.Columns) + len(ct.Boolean.Columns)
	for _, cats := range ct.Categorical.Categories {
		width += len(cats)
	}
	support := make([]bool, width)
	support[0] = true

	pipeline = mustJSON(t, ct)
	selector = mustJSON(t, map[string]any{"kind": ml.KindSupportMask, "support": support})
	model = mustJSON(t, map[string]any{
		"kind":      ml.KindLogisticRegression,
		"classes":   []int{0, 1},
		"coef":      [][]float64{{1}},
		"intercept": []float64{-2.5},
	})
	return pipeline, selector, model
}

func validInput() models.OrderInput {
	return models.OrderInput{
		OrderStatus:     "validated",
		OrderLineStatus: "fully delivered",
		OrderQuantity:   3,
		ProductWeight:   2.5,
		ProductHeight:   10,
		ProductWidth:    20,
		ProductLength:   30,
		ProductCategory: "Electronics",
		ContainerType:   "Box",
		SellerRegion:    "Ile-de-France",
		CustomerRegion:  "Bretagne",
		WeatherLevel:    models.WeatherNone,
		ValidationDate:  "2024-03-15",
	}
}
