package mysql

import (
	"context"
	"errors"
	"fmt"

	"fitshop/internal/domain"
	"fitshop/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product %d: %w", productID, err)
	}
	return &p, nil
}

func (r *cartRepo) Quantity(ctx context.Context, userID, productID uint64) (int, error) {
	var qty int
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Scan(&qty).Error
	if err != nil {
		return 0, fmt.Errorf("read cart quantity: %w", err)
	}
	return qty, nil
}

// AddOrIncrement is one upsert on the (user_id, product_id) unique index, so
// concurrent adds of the same product accumulate instead of racing.
func (r *cartRepo) AddOrIncrement(ctx context.Context, userID, productID uint64, qty int) error {
	item := domain.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("quantity + ?", qty),
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID uint64, qty int) error {
	err := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", qty).Error
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID uint64) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (r *cartRepo) Clear(ctx context.Context, userID uint64) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

type cartRow struct {
	ID                   uint64
	ProductID            uint64
	Quantity             int
	ProductName          string
	ProductPrice         float64
	ProductOriginalPrice *float64
	ProductImage         *string
	CategoryName         *string
}

const cartViewSQL = `SELECT ci.id, ci.product_id, ci.quantity,
	p.name AS product_name, p.price AS product_price,
	p.original_price AS product_original_price, p.image_url AS product_image,
	c.name AS category_name
FROM cart_items ci
JOIN products p ON ci.product_id = p.id
LEFT JOIN categories c ON p.category_id = c.id
WHERE ci.user_id = ?
ORDER BY ci.id`

func (r *cartRepo) Lines(ctx context.Context, userID uint64) ([]domain.CartLine, error) {
	var rows []cartRow
	if err := r.db.WithContext(ctx).Raw(cartViewSQL, userID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartLine{
			ID: row.ID,
			Product: domain.CartProduct{
				ID:            row.ProductID,
				Name:          row.ProductName,
				Price:         row.ProductPrice,
				OriginalPrice: deref(row.ProductOriginalPrice),
				Image:         deref(row.ProductImage),
				Category:      deref(row.CategoryName),
			},
			Quantity: row.Quantity,
		})
	}
	return lines, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
