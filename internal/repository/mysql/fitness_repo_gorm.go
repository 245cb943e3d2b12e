package mysql

import (
	"context"
	"fmt"

	"fitshop/internal/domain"
	"fitshop/internal/repository"

	"gorm.io/gorm"
)

type fitnessRepo struct {
	db *gorm.DB
}

func NewFitnessRepository(db *gorm.DB) repository.FitnessRepository {
	return &fitnessRepo{db: db}
}

func (r *fitnessRepo) Save(ctx context.Context, calc *domain.FitnessCalculation) error {
	if err := r.db.WithContext(ctx).Create(calc).Error; err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (r *fitnessRepo) Recent(ctx context.Context, userID uint64, limit int) ([]domain.FitnessCalculation, error) {
	var out []domain.FitnessCalculation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return out, nil
}
