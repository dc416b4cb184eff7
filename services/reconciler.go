package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Alx74909/Projet-ATLAS/models"
)

var ErrInvalidDate = errors.New("invalid validation date")

// weekday returns the 0-indexed day of week starting on Monday.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func hasWeatherIssue(level string) bool {
	switch level {
	case models.WeatherLow, models.WeatherMedium, models.WeatherHigh:
		return true
	default:
		return false
	}
}

// Reconcile turns the sparse form input into a record carrying every column
// the preprocessing pipeline was fit on. Unsupplied categoricals become
// "UNKNOWN" and numeric gaps become NaN, never zero.
func Reconcile(in models.OrderInput) (models.Record, error) {
	validated, err := time.Parse(models.DateLayout, in.ValidationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidDate, in.ValidationDate, err)
	}

	rec := models.Record{
		models.ColOrderStatus:     models.String(in.OrderStatus),
		models.ColOrderLineStatus: models.String(in.OrderLineStatus),
		models.ColOrderQuantity:   models.Int(in.OrderQuantity),
		models.ColProductWeight:   models.Number(in.ProductWeight),
		models.ColProductHeight:   models.Number(in.ProductHeight),
		models.ColProductWidth:    models.Number(in.ProductWidth),
		models.ColProductLength:   models.Number(in.ProductLength),
		models.ColProductCategory: models.String(in.ProductCategory),
		models.ColContainerType:   models.String(in.ContainerType),
		models.ColSellerRegion:    models.String(in.SellerRegion),
		models.ColCustomerRegion:  models.String(in.CustomerRegion),
		models.ColWeatherLevel:    models.String(in.WeatherLevel),
		models.ColValidatedDate:   models.Time(validated),
	}

	rec[models.ColOrderMonth] = models.Int(int(validated.Month()))
	rec[models.ColOrderWeekday] = models.Int(weekday(validated))
	rec[models.ColOrderYear] = models.Int(validated.Year())
	rec.Drop(models.ColValidatedDate)

	rec[models.ColHasWeatherIssue] = models.Bool(hasWeatherIssue(in.WeatherLevel))

	fillDefaults(rec)
	coerceNumeric(rec, models.NumericColumns)
	blankToMissing(rec)
	return rec, nil
}

func fillDefaults(rec models.Record) {
	for _, col := range models.Schema {
		if !rec.Has(col.Name) {
			rec[col.Name] = col.Default
		}
	}
}

func coerceNumeric(rec models.Record, columns []string) {
	for _, c := range columns {
		if v, ok := rec[c]; ok {
			rec[c] = v.ToNumber()
		}
	}
}

func blankToMissing(rec models.Record) {
	for k, v := range rec {
		if v.Blank() {
			rec[k] = models.Missing(models.KindString)
		}
	}
}
