package service_test

import (
	"testing"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

func rankingFoods() []model.FoodItem {
	return []model.FoodItem{
		newFood("a", "Apple", model.CategoryFruits, 95),
		newFood("b", "Bagel", model.CategoryGrains, 280),
		newFood("c", "Coffee", model.CategoryBeverages, 5),
	}
}

func TestMostConsumedFoodsKeepsFirstSeenOnTies(t *testing.T) {
	t.Parallel()
	joined := service.JoinEntries([]model.CalorieEntry{
		newEntry("1", "a", 1, model.MealSnack, at(9, 0)),
		newEntry("2", "b", 1, model.MealBreakfast, at(8, 0)),
		newEntry("3", "c", 1, model.MealBreakfast, at(8, 0)),
		newEntry("4", "b", 2, model.MealBreakfast, at(8, 0).AddDate(0, 0, -1)),
		newEntry("5", "a", 1, model.MealSnack, at(9, 0).AddDate(0, 0, -1)),
	}, rankingFoods())

	got := service.MostConsumedFoods(joined, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 foods, got %d", len(got))
	}
	if got[0].Food.ID != "a" || got[1].Food.ID != "b" || got[2].Food.ID != "c" {
		t.Fatalf("unexpected order: %s %s %s", got[0].Food.ID, got[1].Food.ID, got[2].Food.ID)
	}
	if got[1].Count != 2 || got[1].TotalCalories != 840 {
		t.Fatalf("unexpected bagel consumption: %+v", got[1])
	}

	if got := service.MostConsumedFoods(joined, 1); len(got) != 1 || got[0].Food.ID != "a" {
		t.Fatalf("expected limit 1 to keep apple, got %+v", got)
	}
}

func TestFoodSuggestionsWindow(t *testing.T) {
	t.Parallel()
	now := at(12, 0)
	joined := service.JoinEntries([]model.CalorieEntry{
		newEntry("old", "a", 1, model.MealSnack, now.AddDate(0, 0, -31)),
		newEntry("edge", "b", 1, model.MealBreakfast, at(6, 0).AddDate(0, 0, -30)),
		newEntry("y1", "c", 1, model.MealBreakfast, now.AddDate(0, 0, -1)),
		newEntry("y2", "c", 1, model.MealBreakfast, now.AddDate(0, 0, -2)),
	}, rankingFoods())

	got := service.FoodSuggestions(joined, rankingFoods(), 0, now)
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("expected [c b], got %+v", got)
	}

	withoutApple := rankingFoods()[1:]
	got = service.FoodSuggestions(joined, withoutApple, 1, now)
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected [c], got %+v", got)
	}
}

func TestFoodSuggestionsSkipsUnresolvedAfterLimit(t *testing.T) {
	t.Parallel()
	now := at(12, 0)
	joined := service.JoinEntries([]model.CalorieEntry{
		newEntry("1", "a", 1, model.MealSnack, now),
		newEntry("2", "a", 1, model.MealSnack, now),
		newEntry("3", "b", 1, model.MealSnack, now),
	}, rankingFoods())

	got := service.FoodSuggestions(joined, rankingFoods()[1:], 1, now)
	if len(got) != 0 {
		t.Fatalf("expected the unresolved top food to be skipped, got %+v", got)
	}
}

func TestHighCalorieEntriesIsStrict(t *testing.T) {
	t.Parallel()
	foods := []model.FoodItem{newFood("x", "X", model.CategoryOther, 100)}
	joined := service.JoinEntries([]model.CalorieEntry{
		newEntry("at", "x", 3, model.MealLunch, at(12, 0)),
		newEntry("over", "x", 3.005, model.MealLunch, at(12, 0)),
		newEntry("under", "x", 1, model.MealLunch, at(12, 0)),
	}, foods)

	got := service.HighCalorieEntries(joined, service.DefaultHighCalorieThreshold)
	if len(got) != 1 || got[0].ID != "over" {
		t.Fatalf("expected only the entry above 300, got %v", entryIDs(got))
	}
}

func TestRecentEntriesCutoffIsStartOfDay(t *testing.T) {
	t.Parallel()
	now := at(18, 0)
	joined := service.JoinEntries([]model.CalorieEntry{
		newEntry("in", "a", 1, model.MealSnack, at(0, 0).AddDate(0, 0, -7)),
		newEntry("out", "a", 1, model.MealSnack, at(23, 59).AddDate(0, 0, -8)),
	}, rankingFoods())

	got := service.RecentEntries(joined, 7, now)
	if len(got) != 1 || got[0].ID != "in" {
		t.Fatalf("expected [in], got %v", entryIDs(got))
	}
}
