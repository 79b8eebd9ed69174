package service_test

import (
	"testing"
	"time"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

func joinedFixture() []model.EntryWithFood {
	yogurt := newFood("yogurt", "Greek Yogurt", model.CategoryDairy, 100)
	yogurt.Brand = "Fage"
	foods := []model.FoodItem{
		yogurt,
		newFood("chicken", "Grilled Chicken", model.CategoryProteins, 250),
		newFood("apple", "Apple", model.CategoryFruits, 95),
	}
	entries := []model.CalorieEntry{
		newEntry("e1", "yogurt", 1, model.MealBreakfast, at(7, 30)),
		newEntry("e2", "chicken", 2, model.MealDinner, at(19, 0)),
		newEntry("e3", "apple", 1, model.MealSnack, at(15, 0)),
		newEntry("e4", "chicken", 1, model.MealLunch, at(12, 0).AddDate(0, 0, 1)),
	}
	entries[2].Notes = "after the gym"
	return service.JoinEntries(entries, foods)
}

func entryIDs(entries []model.EntryWithFood) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSanitizeSearchQuery(t *testing.T) {
	t.Parallel()
	if got := service.SanitizeSearchQuery("  Chicken! (Grilled) "); got != "chicken grilled" {
		t.Fatalf("expected %q, got %q", "chicken grilled", got)
	}
	if got := service.SanitizeSearchQuery("low-fat <script>"); got != "low-fat script" {
		t.Fatalf("expected %q, got %q", "low-fat script", got)
	}
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()
	joined := joinedFixture()

	cases := []struct {
		name   string
		filter service.EntryFilter
		want   []string
	}{
		{"no constraints", service.EntryFilter{}, []string{"e1", "e2", "e3", "e4"}},
		{"meal type", service.EntryFilter{MealType: model.MealDinner}, []string{"e2"}},
		{"category", service.EntryFilter{Category: model.CategoryProteins}, []string{"e2", "e4"}},
		{"search brand", service.EntryFilter{Search: "FAGE"}, []string{"e1"}},
		{"search notes", service.EntryFilter{Search: "gym!"}, []string{"e3"}},
		{"search category", service.EntryFilter{Search: "fruit"}, []string{"e3"}},
		{"min calories", service.EntryFilter{MinCalories: floatPtr(250)}, []string{"e2", "e4"}},
		{"max calories", service.EntryFilter{MaxCalories: floatPtr(100)}, []string{"e1", "e3"}},
		{"date to covers whole day", service.EntryFilter{DateTo: day}, []string{"e1", "e2", "e3"}},
		{"date from", service.EntryFilter{DateFrom: at(12, 0)}, []string{"e2", "e3", "e4"}},
	}
	for _, tc := range cases {
		got := entryIDs(service.FilterEntries(joined, tc.filter))
		if !equalIDs(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestSortEntries(t *testing.T) {
	t.Parallel()
	joined := joinedFixture()

	s, err := service.ParseEntrySort("calories", "")
	if err != nil {
		t.Fatalf("parse sort: %v", err)
	}
	if s.Direction != service.SortDesc {
		t.Fatalf("expected default direction desc, got %s", s.Direction)
	}
	if got := entryIDs(service.SortEntries(joined, s)); !equalIDs(got, []string{"e2", "e4", "e1", "e3"}) {
		t.Fatalf("unexpected calories desc order: %v", got)
	}

	got := entryIDs(service.SortEntries(joined, service.EntrySort{Field: service.SortByName, Direction: service.SortAsc}))
	if !equalIDs(got, []string{"e3", "e1", "e2", "e4"}) {
		t.Fatalf("unexpected name asc order: %v", got)
	}

	got = entryIDs(service.SortEntries(joined, service.EntrySort{Field: service.SortByMealType, Direction: service.SortAsc}))
	if !equalIDs(got, []string{"e1", "e4", "e2", "e3"}) {
		t.Fatalf("unexpected meal type order: %v", got)
	}

	got = entryIDs(service.SortEntries(joined, service.EntrySort{Field: "color"}))
	if !equalIDs(got, []string{"e1", "e2", "e3", "e4"}) {
		t.Fatalf("expected unknown field to keep order, got %v", got)
	}
}

func TestParseEntrySortRejectsUnknown(t *testing.T) {
	t.Parallel()
	if _, err := service.ParseEntrySort("color", "asc"); err == nil {
		t.Fatalf("expected unsupported field error")
	}
	if _, err := service.ParseEntrySort("name", "sideways"); err == nil {
		t.Fatalf("expected unsupported direction error")
	}
}

func TestFilterAndSortDefaultsToNewestFirst(t *testing.T) {
	t.Parallel()
	joined := joinedFixture()
	got := service.FilterAndSort(joined, nil, nil)
	if !equalIDs(entryIDs(got), []string{"e4", "e2", "e3", "e1"}) {
		t.Fatalf("expected newest first, got %v", entryIDs(got))
	}
	if !equalIDs(entryIDs(joined), []string{"e1", "e2", "e3", "e4"}) {
		t.Fatalf("expected input left untouched, got %v", entryIDs(joined))
	}

	same := at(12, 0)
	tied := service.JoinEntries([]model.CalorieEntry{
		newEntry("lunch", "apple", 1, model.MealLunch, same),
		newEntry("breakfast", "apple", 1, model.MealBreakfast, same),
		newEntry("snack", "apple", 1, model.MealSnack, same.Add(2*time.Hour)),
	}, []model.FoodItem{newFood("apple", "Apple", model.CategoryFruits, 95)})
	got = service.FilterAndSort(tied, nil, nil)
	if !equalIDs(entryIDs(got), []string{"snack", "breakfast", "lunch"}) {
		t.Fatalf("expected meal order to break ties, got %v", entryIDs(got))
	}
	got = service.FilterAndSort(joined, &service.EntryFilter{MealType: model.MealSnack}, &service.EntrySort{Field: service.SortByConsumedAt, Direction: service.SortAsc})
	if !equalIDs(entryIDs(got), []string{"e3"}) {
		t.Fatalf("expected [e3], got %v", entryIDs(got))
	}
}

func TestSearchFoods(t *testing.T) {
	t.Parallel()
	foods := []model.FoodItem{
		newFood("a", "Apple", model.CategoryFruits, 95),
		newFood("b", "Brown Rice", model.CategoryGrains, 216),
	}
	if got := service.SearchFoods(foods, "  "); len(got) != 2 {
		t.Fatalf("expected blank query to return all foods, got %d", len(got))
	}
	if got := service.SearchFoods(foods, "rice"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected brown rice, got %+v", got)
	}
	if got := service.SearchFoods(foods, "grain"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("expected category match, got %+v", got)
	}
	if got := service.FoodsByCategory(foods, model.CategoryFruits); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected apple, got %+v", got)
	}
}
