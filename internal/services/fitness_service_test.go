package services

import (
	"context"
	"errors"
	"testing"

	"fitshop/internal/domain"
	"fitshop/internal/fitness"
	"fitshop/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testInput = fitness.Input{
	WeightKg: 70,
	HeightCm: 175,
	Age:      30,
	Gender:   fitness.GenderMale,
	Activity: "sedentary",
	Goal:     fitness.GoalMaintain,
}

func TestFitnessService_Calculate(t *testing.T) {
	t.Run("anonymous caller is not stored", func(t *testing.T) {
		repo := new(mocks.MockFitnessRepository)
		res, err := NewFitnessService(repo).Calculate(context.Background(), 0, testInput)
		require.NoError(t, err)
		assert.Equal(t, 2034, res.DailyCalories)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("signed in caller is stored", func(t *testing.T) {
		repo := new(mocks.MockFitnessRepository)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.FitnessCalculation) bool {
			return c.UserID == TestUserID && c.BMI == 22.9 && c.DailyCalories == 2034 && c.BMICategory == "Normal weight"
		})).Return(nil)

		_, err := NewFitnessService(repo).Calculate(context.Background(), TestUserID, testInput)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("storage failure still returns result", func(t *testing.T) {
		repo := new(mocks.MockFitnessRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db gone"))

		res, err := NewFitnessService(repo).Calculate(context.Background(), TestUserID, testInput)
		require.NoError(t, err)
		assert.Equal(t, 22.9, res.BMI)
	})

	t.Run("invalid input", func(t *testing.T) {
		in := testInput
		in.WeightKg = 0
		_, err := NewFitnessService(new(mocks.MockFitnessRepository)).Calculate(context.Background(), TestUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestFitnessService_History(t *testing.T) {
	repo := new(mocks.MockFitnessRepository)
	repo.On("Recent", mock.Anything, TestUserID, 5).Return([]domain.FitnessCalculation{{ID: 1}}, nil)

	calcs, err := NewFitnessService(repo).History(context.Background(), TestUserID)
	require.NoError(t, err)
	assert.Len(t, calcs, 1)
}
