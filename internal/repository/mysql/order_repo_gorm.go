package mysql

import (
	"context"
	"errors"
	"fmt"
	"math"

	"fitshop/internal/domain"
	"fitshop/internal/logging"
	"fitshop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CreateOrder materializes an order in a single transaction. Product rows are
// locked for the duration so the stock check and the decrement see the same
// quantities; the decrement is still conditional on stock_quantity so a row
// can never go negative.
func (r *orderRepo) CreateOrder(ctx context.Context, in domain.NewOrder) (*domain.Order, error) {
	lines := domain.MergeLines(in.Lines)
	if len(lines) == 0 {
		return nil, fmt.Errorf("order has no items: %w", domain.ErrInvalidInput)
	}

	ids := make([]uint64, 0, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %d must be positive: %w", l.ProductID, domain.ErrInvalidInput)
		}
		ids = append(ids, l.ProductID)
	}

	var created *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []domain.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Find(&products).Error; err != nil {
			return fmt.Errorf("lock products: %w", err)
		}
		byID := make(map[uint64]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		items := make([]domain.OrderItem, 0, len(lines))
		var total float64
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return fmt.Errorf("product %d: %w", l.ProductID, domain.ErrProductNotFound)
			}
			if p.StockQuantity < l.Quantity {
				return fmt.Errorf("product %d has %d, requested %d: %w", p.ID, p.StockQuantity, l.Quantity, domain.ErrInsufficientStock)
			}
			items = append(items, domain.OrderItem{
				ProductID: p.ID,
				Quantity:  l.Quantity,
				Price:     p.Price,
			})
			total += p.Price * float64(l.Quantity)
		}

		order := &domain.Order{
			UserID:          in.UserID,
			TotalAmount:     math.Round(total*100) / 100,
			Status:          domain.StatusProcessing,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
		}
		if in.IdempotencyKey != "" {
			key := in.IdempotencyKey
			order.IdempotencyKey = &key
		}
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateOrder
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		for _, l := range lines {
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock_quantity >= ?", l.ProductID, l.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", l.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock for product %d: %w", l.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", l.ProductID, domain.ErrInsufficientStock)
			}
		}

		if err := tx.Where("user_id = ?", in.UserID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		order.Items = items
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Uint64("order_id", created.ID).
		Uint64("user_id", created.UserID).
		Float64("total", created.TotalAmount).
		Int("lines", len(created.Items)).
		Msg("order committed")
	return created, nil
}

func (r *orderRepo) FindByIdempotencyKey(ctx context.Context, userID uint64, key string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order by idempotency key: %w", err)
	}
	return &o, nil
}

// FindByID only returns orders owned by userID.
func (r *orderRepo) FindByID(ctx context.Context, userID, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
