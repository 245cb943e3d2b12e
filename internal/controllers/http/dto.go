package http

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// FlexFloat decodes from either a JSON number or a numeric string, the way
// browser forms tend to send measurements. An empty string decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid number %s", s)
		}
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", s)
	}
	*f = FlexFloat(v)
	return nil
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	// Quantity defaults to 1 when omitted.
	Quantity *int `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// OrderItemRequest accepts the cart line shape the storefront sends,
// {product:{id,price}, quantity}, as well as a flat productId. The price is
// ignored; orders are priced from the catalog.
type OrderItemRequest struct {
	Product *struct {
		ID    uint64  `json:"id"`
		Price float64 `json:"price"`
	} `json:"product"`
	ProductID uint64 `json:"productId"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (r OrderItemRequest) productID() uint64 {
	if r.Product != nil && r.Product.ID != 0 {
		return r.Product.ID
	}
	return r.ProductID
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total           float64            `json:"total"`
	ShippingAddress json.RawMessage    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID uint64 `json:"orderId"`
	Message string `json:"message"`
}

type TipsRequest struct {
	Weight         FlexFloat `json:"weight" binding:"required"`
	Height         FlexFloat `json:"height" binding:"required"`
	Age            FlexFloat `json:"age" binding:"required"`
	Gender         string    `json:"gender" binding:"required"`
	Activity       string    `json:"activity" binding:"required"`
	BMI            FlexFloat `json:"bmi" binding:"required"`
	DietPreference string    `json:"dietPreference" binding:"required"`
	Goal           string    `json:"goal" binding:"required"`
}

type CalculateRequest struct {
	Weight FlexFloat `json:"weight" binding:"required"`
	// HeightUnit is cm (default), inches or feet; feet uses Feet and Inches.
	HeightUnit     string    `json:"heightUnit"`
	Height         FlexFloat `json:"height"`
	Feet           FlexFloat `json:"feet"`
	Inches         FlexFloat `json:"inches"`
	Age            FlexFloat `json:"age" binding:"required"`
	Gender         string    `json:"gender" binding:"required"`
	Activity       string    `json:"activity" binding:"required"`
	Goal           string    `json:"goal"`
	DietPreference string    `json:"dietPreference"`
}
