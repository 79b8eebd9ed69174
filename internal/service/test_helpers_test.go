package service_test

import (
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

var day = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func floatPtr(v float64) *float64 {
	return &v
}

func newFood(id, name string, category model.FoodCategory, kcal float64) model.FoodItem {
	return model.FoodItem{
		ID:          id,
		Name:        name,
		Category:    category,
		ServingSize: "100",
		ServingUnit: model.UnitGram,
		Nutrition:   model.NutritionVector{Calories: kcal, Protein: floatPtr(kcal / 20)},
	}
}

func newEntry(id, foodID string, qty float64, meal model.MealType, consumedAt time.Time) model.CalorieEntry {
	return model.CalorieEntry{ID: id, FoodID: foodID, Quantity: qty, MealType: meal, ConsumedAt: consumedAt}
}
