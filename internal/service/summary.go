package service

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

const DefaultDailyCalorieGoal = 2000

func entriesOnDay(entries []model.CalorieEntry, day time.Time) []model.CalorieEntry {
	out := make([]model.CalorieEntry, 0)
	for _, e := range entries {
		if SameDay(e.ConsumedAt, day) {
			out = append(out, e)
		}
	}
	return out
}

func DailySummary(entries []model.CalorieEntry, foods []model.FoodItem, date time.Time) model.DailySummary {
	joined := JoinEntries(entriesOnDay(entries, date), foods)

	vectors := make([]model.NutritionVector, 0, len(joined))
	var breakdown model.MealBreakdown
	for _, e := range joined {
		vectors = append(vectors, e.TotalNutrition)
		breakdown.Add(e.MealType, e.TotalCalories)
	}
	total := Sum(vectors)

	return model.DailySummary{
		Date:           FormatDate(date),
		TotalCalories:  total.Calories,
		TotalNutrition: total,
		Entries:        SortEntriesByDateTime(joined),
		MealBreakdown:  breakdown,
	}
}

// EntriesInRange joins entries and keeps those consumed within [start, end].
func EntriesInRange(entries []model.CalorieEntry, foods []model.FoodItem, start, end time.Time) []model.EntryWithFood {
	window := make([]model.CalorieEntry, 0)
	for _, e := range entries {
		if inRange(e.ConsumedAt, start, end) {
			window = append(window, e)
		}
	}
	return JoinEntries(window, foods)
}

func EntriesForDate(entries []model.CalorieEntry, foods []model.FoodItem, date time.Time) []model.EntryWithFood {
	start, end := DayRange(date)
	return EntriesInRange(entries, foods, start, end)
}

// ActiveGoal returns the first goal flagged active.
func ActiveGoal(goals []model.CalorieGoal) (model.CalorieGoal, bool) {
	for _, g := range goals {
		if g.IsActive {
			return g, true
		}
	}
	return model.CalorieGoal{}, false
}

func Progress(entries []model.CalorieEntry, foods []model.FoodItem, goals []model.CalorieGoal, date time.Time) model.CalorieProgress {
	var consumed float64
	for _, e := range JoinEntries(entriesOnDay(entries, date), foods) {
		consumed += e.TotalCalories
	}
	goal := float64(DefaultDailyCalorieGoal)
	if g, ok := ActiveGoal(goals); ok && g.DailyCalories > 0 {
		goal = g.DailyCalories
	}
	return CalculateCalorieProgress(consumed, goal)
}

func CalculateCalorieProgress(consumed, goal float64) model.CalorieProgress {
	return model.CalorieProgress{
		Consumed:   consumed,
		Goal:       goal,
		Remaining:  math.Max(0, goal-consumed),
		Percentage: CalculateProgress(consumed, goal),
	}
}

// CalculateProgress returns current/goal as a rounded percentage, or 0 for a zero goal.
func CalculateProgress(current, goal float64) int {
	if goal == 0 {
		return 0
	}
	return int(math.Round(current / goal * 100))
}

// WeeklyAverage divides the calories of the trailing seven days by seven.
func WeeklyAverage(entries []model.CalorieEntry, foods []model.FoodItem, now time.Time) float64 {
	return trailingAverage(entries, foods, now, 7)
}

func MonthlyAverage(entries []model.CalorieEntry, foods []model.FoodItem, now time.Time) float64 {
	return trailingAverage(entries, foods, now, 30)
}

func trailingAverage(entries []model.CalorieEntry, foods []model.FoodItem, now time.Time, days int) float64 {
	var total float64
	for _, e := range EntriesInRange(entries, foods, now.AddDate(0, 0, -days), now) {
		total += e.TotalCalories
	}
	return total / float64(days)
}

// SortEntriesByDateTime orders newest first, breaking ties by meal order.
func SortEntriesByDateTime(entries []model.EntryWithFood) []model.EntryWithFood {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.EntryWithFood) int {
		if c := b.ConsumedAt.Compare(a.ConsumedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.MealType.Ordinal(), b.MealType.Ordinal())
	})
	return out
}

// MealTypeForTime picks a meal by the hour of t.
func MealTypeForTime(t time.Time) model.MealType {
	switch h := t.Hour(); {
	case h >= 6 && h <= 10:
		return model.MealBreakfast
	case h >= 11 && h <= 15:
		return model.MealLunch
	case h >= 16 && h <= 20:
		return model.MealDinner
	}
	return model.MealSnack
}
