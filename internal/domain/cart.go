package domain

import "time"

// CartItem is one (user, product, quantity) line. The pair is unique.
type CartItem struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:idx_cart_user_product,priority:2;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type CartProduct struct {
	ID            uint64  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
}

type CartLine struct {
	ID       uint64      `json:"id"`
	Product  CartProduct `json:"product"`
	Quantity int         `json:"quantity"`
}

type Cart struct {
	Items []CartLine `json:"items"`
}

// EmptyCart serializes as {"items":[]} rather than null.
func EmptyCart() Cart {
	return Cart{Items: []CartLine{}}
}
