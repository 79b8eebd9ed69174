// Package seed provides the starter dataset loaded into an empty calorie store.
package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/reidsolon/tracker/internal/model"
)

// Catalog builds the starter dataset. NewID defaults to random UUIDs.
type Catalog struct {
	NewID func() string
}

type foodSpec struct {
	name     string
	category model.FoodCategory
	size     string
	unit     model.ServingUnit
	kcal     float64
	macros   [6]float64 // protein, carbs, fat, fiber, sugar, sodium
}

var starterFoods = []foodSpec{
	{"Apple", model.CategoryFruits, "1", model.UnitPiece, 95, [6]float64{0.5, 25, 0.3, 4, 19, 2}},
	{"Banana", model.CategoryFruits, "1", model.UnitPiece, 105, [6]float64{1.3, 27, 0.4, 3, 21, 1}},
	{"Orange", model.CategoryFruits, "1", model.UnitPiece, 62, [6]float64{1.2, 15, 0.2, 3, 12, 0}},
	{"Broccoli", model.CategoryVegetables, "100", model.UnitGram, 34, [6]float64{2.8, 7, 0.4, 2.6, 1.5, 33}},
	{"Carrots", model.CategoryVegetables, "100", model.UnitGram, 41, [6]float64{0.9, 10, 0.2, 2.8, 4.7, 69}},
	{"Brown Rice", model.CategoryGrains, "100", model.UnitGram, 111, [6]float64{2.6, 23, 0.9, 1.8, 0.4, 5}},
	{"Whole Wheat Bread", model.CategoryGrains, "1", model.UnitSlice, 81, [6]float64{3.6, 14, 1.1, 1.9, 1.4, 144}},
	{"Chicken Breast", model.CategoryProteins, "100", model.UnitGram, 165, [6]float64{31, 0, 3.6, 0, 0, 74}},
	{"Eggs", model.CategoryProteins, "1", model.UnitPiece, 70, [6]float64{6, 0.6, 5, 0, 0.6, 70}},
	{"Greek Yogurt", model.CategoryDairy, "100", model.UnitGram, 59, [6]float64{10, 3.6, 0.4, 0, 3.2, 36}},
	{"Milk (2%)", model.CategoryDairy, "240", model.UnitMilliliter, 122, [6]float64{8, 12, 5, 0, 12, 115}},
	{"Almonds", model.CategorySnacks, "28", model.UnitGram, 161, [6]float64{6, 6, 14, 3.5, 1.2, 0}},
	{"Water", model.CategoryBeverages, "240", model.UnitMilliliter, 0, [6]float64{0, 0, 0, 0, 0, 0}},
	{"Green Tea", model.CategoryBeverages, "240", model.UnitMilliliter, 2, [6]float64{0, 0, 0, 0, 0, 2}},
}

func (c Catalog) id() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

// InitialData returns foods, entries for today and yesterday relative to now,
// and one active goal.
func (c Catalog) InitialData(now time.Time) model.Dataset {
	foods := c.Foods(now)
	return model.Dataset{
		FoodItems:      foods,
		CalorieEntries: c.Entries(foods, now),
		CalorieGoals:   c.Goals(now),
	}
}

func (c Catalog) Foods(now time.Time) []model.FoodItem {
	out := make([]model.FoodItem, 0, len(starterFoods))
	for _, s := range starterFoods {
		out = append(out, model.FoodItem{
			ID:          c.id(),
			Name:        s.name,
			Category:    s.category,
			ServingSize: s.size,
			ServingUnit: s.unit,
			Nutrition: model.NutritionVector{
				Calories: s.kcal,
				Protein:  model.Float(s.macros[0]),
				Carbs:    model.Float(s.macros[1]),
				Fat:      model.Float(s.macros[2]),
				Fiber:    model.Float(s.macros[3]),
				Sugar:    model.Float(s.macros[4]),
				Sodium:   model.Float(s.macros[5]),
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}

type entrySpec struct {
	food     string
	quantity float64
	meal     model.MealType
	at       time.Time
	notes    string
}

func (c Catalog) Entries(foods []model.FoodItem, now time.Time) []model.CalorieEntry {
	if len(foods) == 0 {
		return nil
	}
	yesterday := now.AddDate(0, 0, -1)
	specs := []entrySpec{
		{"Eggs", 2, model.MealBreakfast, atClock(now, 8, 0), "Scrambled with vegetables"},
		{"Whole Wheat Bread", 2, model.MealBreakfast, atClock(now, 8, 0), ""},
		{"Chicken Breast", 1.5, model.MealLunch, atClock(now, 12, 30), ""},
		{"Brown Rice", 1, model.MealLunch, atClock(now, 12, 30), ""},
		{"Broccoli", 1, model.MealLunch, atClock(now, 12, 30), ""},
		{"Apple", 1, model.MealSnack, now.Add(-2 * time.Hour), ""},
		{"Greek Yogurt", 1, model.MealBreakfast, atClock(yesterday, 8, 30), ""},
		{"Banana", 1, model.MealBreakfast, atClock(yesterday, 8, 30), ""},
		{"Almonds", 1, model.MealSnack, atClock(yesterday, 10, 0), ""},
	}

	byName := make(map[string]string, len(foods))
	for _, f := range foods {
		byName[f.Name] = f.ID
	}
	out := make([]model.CalorieEntry, 0, len(specs))
	for i, s := range specs {
		foodID, ok := byName[s.food]
		if !ok {
			foodID = foods[i%len(foods)].ID
		}
		out = append(out, model.CalorieEntry{
			ID:         c.id(),
			FoodID:     foodID,
			Quantity:   s.quantity,
			MealType:   s.meal,
			ConsumedAt: s.at,
			Notes:      s.notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}

func (c Catalog) Goals(now time.Time) []model.CalorieGoal {
	return []model.CalorieGoal{{
		ID:            c.id(),
		DailyCalories: 2000,
		Protein:       model.Float(150),
		Carbs:         model.Float(250),
		Fat:           model.Float(67),
		ActivityLevel: model.ActivityModeratelyActive,
		Goal:          model.GoalMaintainWeight,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}}
}

func atClock(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}
