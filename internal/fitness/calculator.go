// Package fitness computes energy expenditure and body metrics from a
// user's measurements.
package fitness

import (
	"fmt"
	"math"

	"fitshop/internal/domain"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"

	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"

	// goalDelta is the daily surplus or deficit applied for gain/lose goals.
	goalDelta = 500
)

// ActivityMultipliers maps an activity level to its TDEE multiplier.
var ActivityMultipliers = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

var activityOrder = []struct {
	key   string
	label string
}{
	{"sedentary", "Sedentary"},
	{"light", "Light"},
	{"moderate", "Moderate"},
	{"active", "Active"},
	{"veryActive", "Very Active"},
}

type Input struct {
	WeightKg       float64
	HeightCm       float64
	Age            float64
	Gender         string
	Activity       string
	Goal           string
	DietPreference string
}

type ActivityCalories struct {
	Activity string `json:"activity"`
	Calories int    `json:"calories"`
}

type Result struct {
	BMR              float64            `json:"bmr"`
	DailyCalories    int                `json:"dailyCalories"`
	AdjustedCalories int                `json:"adjustedCalories"`
	BMI              float64            `json:"bmi"`
	BMICategory      string             `json:"bmiCategory"`
	IdealWeight      float64            `json:"idealWeight"`
	WeightLoss       int                `json:"weightLoss"`
	WeightGain       int                `json:"weightGain"`
	Protein          int                `json:"protein"`
	Carbs            int                `json:"carbs"`
	Fats             int                `json:"fats"`
	ByActivity       []ActivityCalories `json:"byActivity"`
	Goal             string             `json:"goal"`
	DietPreference   string             `json:"dietPreference"`
}

// Calculate runs the full calculator. Weight, height and age must be
// positive and the activity level must be one of ActivityMultipliers.
func Calculate(in Input) (Result, error) {
	if in.WeightKg <= 0 || in.HeightCm <= 0 || in.Age <= 0 {
		return Result{}, fmt.Errorf("weight, height and age must be positive: %w", domain.ErrInvalidInput)
	}
	mult, ok := ActivityMultipliers[in.Activity]
	if !ok {
		return Result{}, fmt.Errorf("unknown activity level %q: %w", in.Activity, domain.ErrInvalidInput)
	}

	bmr := BMR(in.Gender, in.WeightKg, in.HeightCm, in.Age)
	daily := roundInt(bmr * mult)

	adjusted := daily
	switch in.Goal {
	case GoalLose:
		adjusted = daily - goalDelta
	case GoalGain:
		adjusted = daily + goalDelta
	}

	bmi := BMI(in.WeightKg, in.HeightCm)

	byActivity := make([]ActivityCalories, 0, len(activityOrder))
	for _, a := range activityOrder {
		byActivity = append(byActivity, ActivityCalories{
			Activity: a.label,
			Calories: roundInt(bmr * ActivityMultipliers[a.key]),
		})
	}

	return Result{
		BMR:              bmr,
		DailyCalories:    daily,
		AdjustedCalories: adjusted,
		BMI:              bmi,
		BMICategory:      BMICategory(bmi),
		IdealWeight:      IdealWeight(in.Gender, in.HeightCm),
		WeightLoss:       daily - goalDelta,
		WeightGain:       daily + goalDelta,
		Protein:          roundInt(float64(adjusted) * 0.3 / 4),
		Carbs:            roundInt(float64(adjusted) * 0.5 / 4),
		Fats:             roundInt(float64(adjusted) * 0.2 / 9),
		ByActivity:       byActivity,
		Goal:             in.Goal,
		DietPreference:   in.DietPreference,
	}, nil
}

// BMR is the revised Harris-Benedict basal metabolic rate in kcal/day.
// Anything other than "male" uses the female coefficients.
func BMR(gender string, weightKg, heightCm, age float64) float64 {
	if gender == GenderMale {
		return 88.36 + 13.4*weightKg + 4.8*heightCm - 5.7*age
	}
	return 447.6 + 9.2*weightKg + 3.1*heightCm - 4.3*age
}

// BMI rounded to one decimal place.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return round1(weightKg / (m * m))
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func IdealWeight(gender string, heightCm float64) float64 {
	m := heightCm / 100
	target := 21.0
	if gender == GenderMale {
		target = 22.0
	}
	return round1(target * m * m)
}

// HeightToCm converts a height given in cm, inches, or feet+inches.
func HeightToCm(unit string, height, feet, inches float64) (float64, error) {
	switch unit {
	case "", "cm":
		return height, nil
	case "inches":
		return height * 2.54, nil
	case "feet":
		return feet*30.48 + inches*2.54, nil
	default:
		return 0, fmt.Errorf("unknown height unit %q: %w", unit, domain.ErrInvalidInput)
	}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
