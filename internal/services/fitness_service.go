package services

import (
	"context"

	"fitshop/internal/domain"
	"fitshop/internal/fitness"
	"fitshop/internal/logging"
	"fitshop/internal/repository"
)

const historyLimit = 5

type FitnessService struct {
	repo repository.FitnessRepository
}

func NewFitnessService(r repository.FitnessRepository) *FitnessService {
	return &FitnessService{repo: r}
}

// Calculate runs the calculator. With a non-zero userID the result is also
// stored; a storage failure is logged and does not fail the calculation.
func (s *FitnessService) Calculate(ctx context.Context, userID uint64, in fitness.Input) (fitness.Result, error) {
	res, err := fitness.Calculate(in)
	if err != nil {
		return fitness.Result{}, err
	}
	if userID == 0 {
		return res, nil
	}

	calc := &domain.FitnessCalculation{
		UserID:           userID,
		Weight:           in.WeightKg,
		Height:           in.HeightCm,
		Age:              int(in.Age),
		Gender:           in.Gender,
		Activity:         in.Activity,
		Goal:             res.Goal,
		DietPreference:   res.DietPreference,
		BMI:              res.BMI,
		BMICategory:      res.BMICategory,
		DailyCalories:    res.DailyCalories,
		AdjustedCalories: res.AdjustedCalories,
	}
	if err := s.repo.Save(ctx, calc); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Uint64("user_id", userID).Msg("failed to store calculation")
	}
	return res, nil
}

func (s *FitnessService) History(ctx context.Context, userID uint64) ([]domain.FitnessCalculation, error) {
	calcs, err := s.repo.Recent(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	if calcs == nil {
		calcs = []domain.FitnessCalculation{}
	}
	return calcs, nil
}
