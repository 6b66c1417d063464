package requests

// QuoteRequest request for a delivery quote from the shop
type QuoteRequest struct {
	Address string  `json:"address" binding:"required"` // Destination address
	Weight  float64 `json:"weight,omitempty"`           // Parcel weight in kg, default 1
}

// CreateOrderRequest request to create a delivery for an order
type CreateOrderRequest struct {
	OrderID     string  `json:"order_id" binding:"required"`   // Shop order ID
	FromAddress string  `json:"from_address,omitempty"`        // Defaults to the shop address
	ToAddress   string  `json:"to_address" binding:"required"` // Destination address
	Weight      float64 `json:"weight,omitempty"`              // Parcel weight in kg, default 1
}

// ReverseRequest query for reverse geocoding a shared location
type ReverseRequest struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"required,min=-180,max=180"`
}

// SuggestRequest query for nearest tariff zones
type SuggestRequest struct {
	Address string `form:"address" binding:"required"`
	Limit   int    `form:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}
