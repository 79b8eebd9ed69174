package service

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

// EntryFilter narrows joined entries. Zero-valued fields impose no constraint.
type EntryFilter struct {
	DateFrom    time.Time
	DateTo      time.Time
	MealType    model.MealType
	Category    model.FoodCategory
	Search      string
	MinCalories *float64
	MaxCalories *float64
}

type SortField string

const (
	SortByConsumedAt SortField = "consumedAt"
	SortByCalories   SortField = "calories"
	SortByName       SortField = "name"
	SortByMealType   SortField = "mealType"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type EntrySort struct {
	Field     SortField
	Direction SortDirection
}

var entryComparators = map[SortField]func(a, b model.EntryWithFood) int{
	SortByConsumedAt: func(a, b model.EntryWithFood) int {
		return a.ConsumedAt.Compare(b.ConsumedAt)
	},
	SortByCalories: func(a, b model.EntryWithFood) int {
		return cmp.Compare(a.TotalCalories, b.TotalCalories)
	},
	SortByName: func(a, b model.EntryWithFood) int {
		return strings.Compare(strings.ToLower(a.Food.Name), strings.ToLower(b.Food.Name))
	},
	SortByMealType: func(a, b model.EntryWithFood) int {
		return cmp.Compare(a.MealType.Ordinal(), b.MealType.Ordinal())
	},
}

func ParseEntrySort(field, direction string) (EntrySort, error) {
	s := EntrySort{Field: SortField(strings.TrimSpace(field)), Direction: SortDirection(normalizeName(direction))}
	if _, ok := entryComparators[s.Field]; !ok {
		return EntrySort{}, fmt.Errorf("unsupported sort field %q", field)
	}
	if s.Direction == "" {
		s.Direction = SortDesc
	}
	if s.Direction != SortAsc && s.Direction != SortDesc {
		return EntrySort{}, fmt.Errorf("sort direction must be asc or desc")
	}
	return s, nil
}

var searchStrip = regexp.MustCompile(`[^\w\s-]`)

// SanitizeSearchQuery trims and lowercases q and strips everything except
// word characters, whitespace and hyphens.
func SanitizeSearchQuery(q string) string {
	return searchStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(q)), "")
}

func FilterEntries(entries []model.EntryWithFood, f EntryFilter) []model.EntryWithFood {
	var dateTo time.Time
	if !f.DateTo.IsZero() {
		dateTo = endOfDay(f.DateTo)
	}
	term := SanitizeSearchQuery(f.Search)

	out := make([]model.EntryWithFood, 0, len(entries))
	for _, e := range entries {
		if !f.DateFrom.IsZero() && e.ConsumedAt.Before(f.DateFrom) {
			continue
		}
		if !dateTo.IsZero() && e.ConsumedAt.After(dateTo) {
			continue
		}
		if f.MealType != "" && e.MealType != f.MealType {
			continue
		}
		if f.Category != "" && e.Food.Category != f.Category {
			continue
		}
		if f.Search != "" && !entryMatches(e, term) {
			continue
		}
		if f.MinCalories != nil && e.TotalCalories < *f.MinCalories {
			continue
		}
		if f.MaxCalories != nil && e.TotalCalories > *f.MaxCalories {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryMatches(e model.EntryWithFood, term string) bool {
	return strings.Contains(strings.ToLower(e.Food.Name), term) ||
		(e.Food.Brand != "" && strings.Contains(strings.ToLower(e.Food.Brand), term)) ||
		strings.Contains(string(e.Food.Category), term) ||
		(e.Notes != "" && strings.Contains(strings.ToLower(e.Notes), term))
}

// SortEntries returns a sorted copy. An unknown field leaves the order unchanged.
func SortEntries(entries []model.EntryWithFood, s EntrySort) []model.EntryWithFood {
	out := slices.Clone(entries)
	compare, ok := entryComparators[s.Field]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.EntryWithFood) int {
		if s.Direction == SortDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

// FilterAndSort applies f then s. A nil filter keeps every entry; a nil sort
// falls back to SortEntriesByDateTime.
func FilterAndSort(entries []model.EntryWithFood, f *EntryFilter, s *EntrySort) []model.EntryWithFood {
	out := entries
	if f != nil {
		out = FilterEntries(out, *f)
	}
	if s != nil {
		return SortEntries(out, *s)
	}
	return SortEntriesByDateTime(out)
}

func EntriesByMealType(entries []model.EntryWithFood, m model.MealType) []model.EntryWithFood {
	return FilterEntries(entries, EntryFilter{MealType: m})
}

func EntriesByCategory(entries []model.EntryWithFood, c model.FoodCategory) []model.EntryWithFood {
	return FilterEntries(entries, EntryFilter{Category: c})
}

// EntriesBetween keeps entries consumed within [start, end].
func EntriesBetween(entries []model.EntryWithFood, start, end time.Time) []model.EntryWithFood {
	out := make([]model.EntryWithFood, 0)
	for _, e := range entries {
		if inRange(e.ConsumedAt, start, end) {
			out = append(out, e)
		}
	}
	return out
}

func SearchFoods(foods []model.FoodItem, query string) []model.FoodItem {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(foods)
	}
	term := SanitizeSearchQuery(query)
	out := make([]model.FoodItem, 0)
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), term) ||
			(f.Brand != "" && strings.Contains(strings.ToLower(f.Brand), term)) ||
			strings.Contains(string(f.Category), term) {
			out = append(out, f)
		}
	}
	return out
}

func FoodsByCategory(foods []model.FoodItem, c model.FoodCategory) []model.FoodItem {
	out := make([]model.FoodItem, 0)
	for _, f := range foods {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}
