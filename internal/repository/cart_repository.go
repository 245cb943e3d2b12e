package repository

import (
	"context"

	"fitshop/internal/domain"
)

type CartRepository interface {
	FindProduct(ctx context.Context, productID uint64) (*domain.Product, error)
	// Quantity returns the current quantity of a line, 0 when absent.
	Quantity(ctx context.Context, userID, productID uint64) (int, error)
	AddOrIncrement(ctx context.Context, userID, productID uint64, qty int) error
	// SetQuantity overwrites an existing line; it does not create one.
	SetQuantity(ctx context.Context, userID, productID uint64, qty int) error
	Remove(ctx context.Context, userID, productID uint64) error
	Clear(ctx context.Context, userID uint64) error
	Lines(ctx context.Context, userID uint64) ([]domain.CartLine, error)
}
