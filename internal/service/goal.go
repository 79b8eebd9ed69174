package service

import (
	"fmt"
	"math"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.2,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtremelyActive:  1.9,
}

var goalAdjustments = map[model.GoalType]float64{
	model.GoalLoseWeight:     -500,
	model.GoalMaintainWeight: 0,
	model.GoalGainWeight:     500,
}

// CalculateBMR uses the Mifflin-St Jeor equation.
func CalculateBMR(weightKg, heightCm float64, age int, sex Sex) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("weight and height must be > 0")
	}
	if age < 0 || age > 130 {
		return 0, fmt.Errorf("age %d is out of range", age)
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch sex {
	case SexMale:
		return bmr + 5, nil
	case SexFemale:
		return bmr - 161, nil
	}
	return 0, fmt.Errorf("sex must be male or female")
}

func CalculateTDEE(bmr float64, level model.ActivityLevel) (float64, error) {
	mult, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("activity level %q is not supported", level)
	}
	return math.Round(bmr * mult), nil
}

func RecommendedCalories(tdee float64, goal model.GoalType) (float64, error) {
	adj, ok := goalAdjustments[goal]
	if !ok {
		return 0, fmt.Errorf("goal %q is not supported", goal)
	}
	return tdee + adj, nil
}

// AgeOn returns whole years between birth and on.
func AgeOn(birth, on time.Time) int {
	age := on.Year() - birth.Year()
	if on.Before(birth.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// AdherenceWithin reports whether actual is within ±tolerance of target.
func AdherenceWithin(actual float64, target float64, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}
