package repository

import (
	"context"

	"fitshop/internal/domain"
)

type OrderRepository interface {
	// CreateOrder runs the whole order transaction: lock and re-price the
	// products, insert header and lines, decrement stock and empty the cart.
	CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, userID uint64, key string) (*domain.Order, error)
	FindByID(ctx context.Context, userID, id uint64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
}
