package mysql

import (
	"context"
	"fmt"
	"math"
	"time"

	"fitshop/internal/domain"
	"fitshop/internal/repository"

	"gorm.io/gorm"
)

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepo{db: db}
}

type catalogRow struct {
	ID            uint64
	Name          string
	Description   *string
	Price         float64
	OriginalPrice *float64
	ImageURL      *string
	CategoryName  *string
	AverageRating float64
	ReviewCount   int
	StockQuantity int
	CreatedAt     time.Time
}

const catalogSQL = `SELECT p.id, p.name, p.description, p.price, p.original_price, p.image_url,
	p.stock_quantity, p.created_at,
	c.name AS category_name,
	COALESCE(AVG(r.rating), 0) AS average_rating,
	COUNT(r.id) AS review_count
FROM products p
LEFT JOIN categories c ON p.category_id = c.id
LEFT JOIN reviews r ON p.id = r.product_id
WHERE p.status = 'active'
GROUP BY p.id, c.name
ORDER BY p.created_at DESC
LIMIT ?`

func (r *catalogRepo) ListActive(ctx context.Context, limit int) ([]domain.CatalogEntry, error) {
	var rows []catalogRow
	if err := r.db.WithContext(ctx).Raw(catalogSQL, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	out := make([]domain.CatalogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CatalogEntry{
			ID:            row.ID,
			Name:          row.Name,
			Description:   deref(row.Description),
			Price:         row.Price,
			OriginalPrice: deref(row.OriginalPrice),
			Image:         deref(row.ImageURL),
			Category:      deref(row.CategoryName),
			Rating:        math.Round(row.AverageRating*10) / 10,
			ReviewCount:   row.ReviewCount,
			InStock:       row.StockQuantity > 0,
			StockQuantity: row.StockQuantity,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}
