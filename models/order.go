package models

// Weather severity levels as the pipeline was trained on them.
const (
	WeatherNone   = "Non renseigné"
	WeatherLow    = "Faible"
	WeatherMedium = "Moyenne"
	WeatherHigh   = "Forte"
)

// DateLayout is the calendar date format accepted for the validation date.
const DateLayout = "2006-01-02"

type Option struct {
	Value string
	Label string
}

var (
	OrderStatusOptions = []Option{
		{Value: "validated", Label: "Validated"},
		{Value: "not validated", Label: "Not validated"},
		{Value: "delivered", Label: "Delivered"},
	}
	OrderLineStatusOptions = []Option{
		{Value: "partially delivered", Label: "Partially delivered"},
		{Value: "fully delivered", Label: "Fully delivered"},
	}
	WeatherOptions = []Option{
		{Value: WeatherNone, Label: "None"},
		{Value: WeatherLow, Label: "Low"},
		{Value: WeatherMedium, Label: "Medium"},
		{Value: WeatherHigh, Label: "High"},
	}
)

// OrderInput holds the fields collected from the user, bound from either the
// HTML form or a JSON body.
type OrderInput struct {
	OrderStatus     string  `form:"order_status" json:"order_status" binding:"required,oneof=validated 'not validated' delivered"`
	OrderLineStatus string  `form:"order_line_status" json:"order_line_status" binding:"required,oneof='partially delivered' 'fully delivered'"`
	OrderQuantity   int     `form:"order_quantity" json:"order_quantity" binding:"required,min=1"`
	ProductWeight   float64 `form:"product_weight" json:"product_weight" binding:"gte=0"`
	ProductHeight   float64 `form:"product_height" json:"product_height" binding:"gte=0"`
	ProductWidth    float64 `form:"product_width" json:"product_width" binding:"gte=0"`
	ProductLength   float64 `form:"product_length" json:"product_length" binding:"gte=0"`
	ProductCategory string  `form:"product_category" json:"product_category"`
	ContainerType   string  `form:"container_type" json:"container_type"`
	SellerRegion    string  `form:"seller_region" json:"seller_region"`
	CustomerRegion  string  `form:"customer_region" json:"customer_region"`
	WeatherLevel    string  `form:"weather_level" json:"weather_level" binding:"required,oneof='Non renseigné' Faible Moyenne Forte"`
	ValidationDate  string  `form:"validation_date" json:"validation_date" binding:"required,datetime=2006-01-02"`
}

// DefaultOrderInput is what the form shows before the first submission.
func DefaultOrderInput(today string) OrderInput {
	return OrderInput{
		OrderStatus:     OrderStatusOptions[0].Value,
		OrderLineStatus: OrderLineStatusOptions[0].Value,
		OrderQuantity:   1,
		WeatherLevel:    WeatherNone,
		ValidationDate:  today,
	}
}
