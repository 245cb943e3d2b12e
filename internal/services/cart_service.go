package services

import (
	"context"
	"fmt"

	"fitshop/internal/domain"
	"fitshop/internal/repository"
)

type CartService struct {
	repo repository.CartRepository
}

func NewCartService(r repository.CartRepository) *CartService {
	return &CartService{repo: r}
}

func (s *CartService) Get(ctx context.Context, userID uint64) (domain.Cart, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(lines) == 0 {
		return domain.EmptyCart(), nil
	}
	return domain.Cart{Items: lines}, nil
}

// Add puts qty more of a product into the cart. The stock check counts what
// is already in the cart; the authoritative check happens at order time.
func (s *CartService) Add(ctx context.Context, userID, productID uint64, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, fmt.Errorf("quantity must be at least 1: %w", domain.ErrInvalidInput)
	}
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	existing, err := s.repo.Quantity(ctx, userID, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if existing+qty > product.StockQuantity {
		return domain.Cart{}, fmt.Errorf("product %d has %d in stock: %w", productID, product.StockQuantity, domain.ErrInsufficientStock)
	}

	if err := s.repo.AddOrIncrement(ctx, userID, productID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(ctx, userID)
}

// Update overwrites the quantity of an existing line. Updating a line that
// is not in the cart changes nothing.
func (s *CartService) Update(ctx context.Context, userID, productID uint64, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, fmt.Errorf("quantity must be at least 1: %w", domain.ErrInvalidInput)
	}
	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if qty > product.StockQuantity {
		return domain.Cart{}, fmt.Errorf("product %d has %d in stock: %w", productID, product.StockQuantity, domain.ErrInsufficientStock)
	}

	if err := s.repo.SetQuantity(ctx, userID, productID, qty); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint64) (domain.Cart, error) {
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID uint64) (domain.Cart, error) {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return domain.Cart{}, err
	}
	return domain.EmptyCart(), nil
}

func (s *CartService) findProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	p, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", productID, domain.ErrProductNotFound)
	}
	return p, nil
}
