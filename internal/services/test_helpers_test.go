package services

import (
	"time"

	"fitshop/internal/domain"
)

func CreateMockOrder(id, userID uint64, total float64, items ...domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:          id,
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.StatusProcessing,
		CreatedAt:   time.Now(),
		Items:       items,
	}
}

func CreateMockProduct(id uint64, name string, price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Status:        domain.ProductActive,
	}
}

const (
	TestUserID      = uint64(7)
	TestProductID   = uint64(1)
	TestOrderID     = uint64(42)
	TestTotal       = 49.98
	TestProductName = "Whey Protein"
)

func testNewOrder(key string) domain.NewOrder {
	return domain.NewOrder{
		UserID:          TestUserID,
		Lines:           []domain.OrderLine{{ProductID: TestProductID, Quantity: 2}},
		ShippingAddress: `{"city":"Springfield"}`,
		PaymentMethod:   "card",
		IdempotencyKey:  key,
	}
}
