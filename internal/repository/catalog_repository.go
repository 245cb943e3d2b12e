package repository

import (
	"context"

	"fitshop/internal/domain"
)

type CatalogRepository interface {
	ListActive(ctx context.Context, limit int) ([]domain.CatalogEntry, error)
}
