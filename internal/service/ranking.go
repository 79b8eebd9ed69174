package service

import (
	"cmp"
	"slices"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

const (
	DefaultMostConsumedLimit    = 10
	DefaultSuggestionLimit      = 5
	DefaultHighCalorieThreshold = 300
	SuggestionWindowDays        = 30
)

type FoodConsumption struct {
	Food          model.FoodItem `json:"food"`
	Count         int            `json:"count"`
	TotalCalories float64        `json:"totalCalories"`
}

// MostConsumedFoods groups entries by food and orders by count descending.
// Ties keep first-seen order. A non-positive limit uses DefaultMostConsumedLimit.
func MostConsumedFoods(entries []model.EntryWithFood, limit int) []FoodConsumption {
	if limit <= 0 {
		limit = DefaultMostConsumedLimit
	}
	index := make(map[string]int)
	out := make([]FoodConsumption, 0)
	for _, e := range entries {
		if i, ok := index[e.FoodID]; ok {
			out[i].Count++
			out[i].TotalCalories += e.TotalCalories
			continue
		}
		index[e.FoodID] = len(out)
		out = append(out, FoodConsumption{Food: e.Food, Count: 1, TotalCalories: e.TotalCalories})
	}
	slices.SortStableFunc(out, func(a, b FoodConsumption) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return truncate(out, limit)
}

// RecentEntries keeps entries consumed since the start of the day `days` days before now.
func RecentEntries(entries []model.EntryWithFood, days int, now time.Time) []model.EntryWithFood {
	cutoff := beginningOfDay(now.AddDate(0, 0, -days))
	out := make([]model.EntryWithFood, 0)
	for _, e := range entries {
		if !e.ConsumedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// FoodSuggestions ranks foods logged in the last SuggestionWindowDays days by
// frequency. Ids that no longer resolve against foods are skipped after the
// limit is applied.
func FoodSuggestions(entries []model.EntryWithFood, foods []model.FoodItem, limit int, now time.Time) []model.FoodItem {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	counts := make(map[string]int)
	ids := make([]string, 0)
	for _, e := range RecentEntries(entries, SuggestionWindowDays, now) {
		if _, ok := counts[e.FoodID]; !ok {
			ids = append(ids, e.FoodID)
		}
		counts[e.FoodID]++
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})

	byID := indexFoods(foods)
	out := make([]model.FoodItem, 0, limit)
	for _, id := range truncate(ids, limit) {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out
}

// HighCalorieEntries keeps entries strictly above threshold.
func HighCalorieEntries(entries []model.EntryWithFood, threshold float64) []model.EntryWithFood {
	out := make([]model.EntryWithFood, 0)
	for _, e := range entries {
		if e.TotalCalories > threshold {
			out = append(out, e)
		}
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
