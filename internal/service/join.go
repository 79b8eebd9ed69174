package service

import (
	"log/slog"

	"github.com/reidsolon/tracker/internal/model"
)

// JoinEntries pairs each entry with its food and scaled nutrition. Entries whose
// food cannot be resolved are dropped with a warning.
func JoinEntries(entries []model.CalorieEntry, foods []model.FoodItem) []model.EntryWithFood {
	byID := indexFoods(foods)
	out := make([]model.EntryWithFood, 0, len(entries))
	for _, e := range entries {
		food, ok := byID[e.FoodID]
		if !ok {
			slog.Warn("food item not found for entry", "entry_id", e.ID, "food_id", e.FoodID)
			continue
		}
		out = append(out, JoinEntry(e, food))
	}
	return out
}

func JoinEntry(e model.CalorieEntry, food model.FoodItem) model.EntryWithFood {
	total := Scale(food.Nutrition, e.Quantity)
	return model.EntryWithFood{
		CalorieEntry:   e,
		Food:           food.Clone(),
		TotalCalories:  total.Calories,
		TotalNutrition: total,
	}
}

// indexFoods keys foods by id. The first food wins on duplicate ids.
func indexFoods(foods []model.FoodItem) map[string]model.FoodItem {
	byID := make(map[string]model.FoodItem, len(foods))
	for _, f := range foods {
		if _, ok := byID[f.ID]; !ok {
			byID[f.ID] = f
		}
	}
	return byID
}
