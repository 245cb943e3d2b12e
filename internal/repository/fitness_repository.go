package repository

import (
	"context"

	"fitshop/internal/domain"
)

type FitnessRepository interface {
	Save(ctx context.Context, calc *domain.FitnessCalculation) error
	Recent(ctx context.Context, userID uint64, limit int) ([]domain.FitnessCalculation, error)
}
