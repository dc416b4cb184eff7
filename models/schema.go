package models

// UnknownCategory is the sentinel injected for categorical columns the form
// never collects.
const UnknownCategory = "UNKNOWN"

// Column names shared by the reconciler and the exported pipeline.
const (
	ColOrderStatus     = "Order Status"
	ColOrderLineStatus = "Order Line Status"
	ColOrderQuantity   = "Order Quantity"
	ColProductWeight   = "ProductWeight"
	ColProductHeight   = "ProductHeight"
	ColProductWidth    = "ProductWidth"
	ColProductLength   = "ProductLength"
	ColProductCategory = "ProductCategory"
	ColContainerType   = "ProductContainerType"
	ColSellerRegion    = "SellerRegion"
	ColCustomerRegion  = "CustomerRegion"
	ColWeatherLevel    = "Niveau_intempérie"
	ColValidatedDate   = "Order Validated Date"

	ColOrderMonth      = "OrderMonth"
	ColOrderWeekday    = "OrderWeekday"
	ColOrderYear       = "OrderYear"
	ColHasWeatherIssue = "Has_weather_issue"
)

type Column struct {
	Name    string
	Kind    Kind
	Default Value
}

func categorical(name string) Column {
	return Column{Name: name, Kind: KindString, Default: String(UnknownCategory)}
}

func numeric(name string) Column {
	return Column{Name: name, Kind: KindNumber, Default: NaN()}
}

func date(name string) Column {
	return Column{Name: name, Kind: KindTime, Default: NullTime()}
}

// Schema is the column set the preprocessing pipeline was fit on, in fit order.
var Schema = []Column{
	categorical(ColOrderStatus),
	categorical(ColOrderLineStatus),
	numeric(ColOrderQuantity),
	numeric(ColProductWeight),
	numeric(ColProductHeight),
	numeric(ColProductWidth),
	numeric(ColProductLength),
	categorical(ColProductCategory),
	categorical(ColContainerType),
	categorical(ColSellerRegion),
	categorical(ColCustomerRegion),
	categorical(ColWeatherLevel),
	numeric(ColOrderMonth),
	numeric(ColOrderWeekday),
	numeric(ColOrderYear),
	{Name: ColHasWeatherIssue, Kind: KindBool, Default: Bool(false)},

	// Required by the pipeline, not collected by the form.
	categorical("Order Type"),
	categorical("Payment Method"),
	categorical("Shipping Mode"),
	categorical("Carrier"),
	categorical("Warehouse"),
	categorical("SellerCity"),
	categorical("CustomerCity"),
	categorical("ProductBrand"),
	categorical("Order Priority"),
	numeric("Order Line Amount"),
	numeric("UnitPrice"),
	numeric("ShippingCost"),
	numeric("DiscountRate"),
	numeric("DistanceKm"),
	numeric("Temperature"),
	numeric("Precipitation"),
	numeric("SellerRating"),
	date("Order Date"),
	date("Order Shipped Date"),
	date("Order Promised Date"),
}

// NumericColumns are coerced to numbers after defaults are filled.
var NumericColumns = []string{
	ColOrderQuantity,
	ColProductWeight,
	ColProductHeight,
	ColProductWidth,
	ColProductLength,
	ColOrderMonth,
	ColOrderWeekday,
	ColOrderYear,
	"Order Line Amount",
	"UnitPrice",
	"ShippingCost",
	"DiscountRate",
	"DistanceKm",
	"Temperature",
	"Precipitation",
	"SellerRating",
}

// SchemaColumn looks a column up by name.
func SchemaColumn(name string) (Column, bool) {
	for _, c := range Schema {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
