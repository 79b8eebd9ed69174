package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
)

const (
	MinDailyCalories = 800
	MaxDailyCalories = 5000

	maxTodoTitleLength       = 200
	maxTodoDescriptionLength = 1000
)

// problems collects validation failures so a single error can report all of them.
type problems []string

func (p *problems) check(err error) {
	if err != nil {
		*p = append(*p, err.Error())
	}
}

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err(entity string) error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Entity: entity, Problems: p}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateNonNegativeFloat(name string, value float64) error {
	if !finite(value) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateOptionalNonNegative(name string, value *float64) error {
	if value == nil {
		return nil
	}
	return validateNonNegativeFloat(name, *value)
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func validateNutrition(p *problems, v model.NutritionVector) {
	p.check(validateNonNegativeFloat("calories", v.Calories))
	p.check(validateOptionalNonNegative("protein", v.Protein))
	p.check(validateOptionalNonNegative("carbs", v.Carbs))
	p.check(validateOptionalNonNegative("fat", v.Fat))
	p.check(validateOptionalNonNegative("fiber", v.Fiber))
	p.check(validateOptionalNonNegative("sugar", v.Sugar))
	p.check(validateOptionalNonNegative("sodium", v.Sodium))
}

func ValidateNutrition(v model.NutritionVector) error {
	var p problems
	validateNutrition(&p, v)
	return p.err("nutrition")
}

func ValidateFood(f model.FoodItem) error {
	var p problems
	if strings.TrimSpace(f.Name) == "" {
		p.addf("name is required")
	}
	if !f.Category.Valid() {
		p.addf("category %q is not supported", f.Category)
	}
	if strings.TrimSpace(f.ServingSize) == "" {
		p.addf("serving size is required")
	}
	if !f.ServingUnit.Valid() {
		p.addf("serving unit %q is not supported", f.ServingUnit)
	}
	validateNutrition(&p, f.Nutrition)
	return p.err("food item")
}

func ValidateEntry(e model.CalorieEntry) error {
	var p problems
	if strings.TrimSpace(e.FoodID) == "" {
		p.addf("food id is required")
	}
	if !finite(e.Quantity) || e.Quantity <= 0 {
		p.addf("quantity must be > 0")
	}
	if !e.MealType.Valid() {
		p.addf("meal type %q is not supported", e.MealType)
	}
	if e.ConsumedAt.IsZero() {
		p.addf("consumed at is required")
	}
	return p.err("calorie entry")
}

func ValidateGoal(g model.CalorieGoal) error {
	var p problems
	if !finite(g.DailyCalories) || g.DailyCalories < MinDailyCalories || g.DailyCalories > MaxDailyCalories {
		p.addf("daily calories must be between %d and %d", MinDailyCalories, MaxDailyCalories)
	}
	p.check(validateOptionalNonNegative("protein", g.Protein))
	p.check(validateOptionalNonNegative("carbs", g.Carbs))
	p.check(validateOptionalNonNegative("fat", g.Fat))
	if !g.ActivityLevel.Valid() {
		p.addf("activity level %q is not supported", g.ActivityLevel)
	}
	if !g.Goal.Valid() {
		p.addf("goal %q is not supported", g.Goal)
	}
	return p.err("calorie goal")
}

func ValidateTodo(t model.TodoItem) error {
	var p problems
	title := strings.TrimSpace(t.Title)
	if title == "" {
		p.addf("Title is required")
	}
	if len([]rune(title)) > maxTodoTitleLength {
		p.addf("Title must be less than %d characters", maxTodoTitleLength)
	}
	if len([]rune(t.Description)) > maxTodoDescriptionLength {
		p.addf("Description must be less than %d characters", maxTodoDescriptionLength)
	}
	if t.Priority != "" && !t.Priority.Valid() {
		p.addf("Priority must be low, medium, or high")
	}
	return p.err("todo")
}
