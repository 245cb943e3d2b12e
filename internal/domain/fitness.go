package domain

import "time"

// FitnessCalculation is a stored calculator run for a signed-in user.
type FitnessCalculation struct {
	ID               uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           uint64    `json:"-" gorm:"not null;index:idx_fitness_user_created,priority:1"`
	Weight           float64   `json:"weight" gorm:"type:decimal(6,2)"`
	Height           float64   `json:"height" gorm:"type:decimal(6,2)"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender" gorm:"type:varchar(20)"`
	Activity         string    `json:"activity" gorm:"type:varchar(20)"`
	Goal             string    `json:"goal" gorm:"type:varchar(20)"`
	DietPreference   string    `json:"dietPreference" gorm:"type:varchar(30)"`
	BMI              float64   `json:"bmi" gorm:"type:decimal(5,1)"`
	BMICategory      string    `json:"bmiCategory" gorm:"type:varchar(30)"`
	DailyCalories    int       `json:"dailyCalories"`
	AdjustedCalories int       `json:"adjustedCalories"`
	CreatedAt        time.Time `json:"timestamp" gorm:"autoCreateTime;index:idx_fitness_user_created,priority:2"`
}
