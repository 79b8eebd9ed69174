package todo

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
)

const Uncategorized = "Uncategorized"

// Filter narrows the list. Zero-valued fields impose no constraint.
type Filter struct {
	Completed *bool
	Priority  model.Priority
	Category  string
	Search    string
}

type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByPriority  SortField = "priority"
)

type Sort struct {
	Field      SortField
	Descending bool
}

var DefaultSort = Sort{Field: SortByCreatedAt, Descending: true}

var comparators = map[SortField]func(a, b model.TodoItem) int{
	SortByTitle: func(a, b model.TodoItem) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	},
	SortByCreatedAt: func(a, b model.TodoItem) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortByUpdatedAt: func(a, b model.TodoItem) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
	SortByPriority: func(a, b model.TodoItem) int {
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	},
}

func ParseSort(field string, descending bool) (Sort, error) {
	s := Sort{Field: SortField(strings.TrimSpace(field)), Descending: descending}
	if _, ok := comparators[s.Field]; !ok {
		return Sort{}, fmt.Errorf("unsupported sort field %q", field)
	}
	return s, nil
}

func matches(t model.TodoItem, f Filter) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q)
	}
	return true
}

// FilterAndSort returns a filtered, sorted copy of items.
func FilterAndSort(items []model.TodoItem, f Filter, s Sort) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(items))
	for _, t := range items {
		if matches(t, f) {
			out = append(out, t)
		}
	}
	compare, ok := comparators[s.Field]
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.TodoItem) int {
		if s.Descending {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}

func Stats(items []model.TodoItem) model.TodoStats {
	stats := model.TodoStats{
		Total: len(items),
		PriorityStats: map[model.Priority]int{
			model.PriorityLow:    0,
			model.PriorityMedium: 0,
			model.PriorityHigh:   0,
		},
	}
	categories := map[string]bool{}
	for _, t := range items {
		if t.Completed {
			stats.Completed++
		}
		if t.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
		if _, ok := stats.PriorityStats[t.Priority]; ok {
			stats.PriorityStats[t.Priority]++
		}
		if t.Category != "" {
			categories[t.Category] = true
		}
	}
	stats.Pending = stats.Total - stats.Completed
	stats.Categories = len(categories)
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// ByCategory groups items by category, using Uncategorized for items without one.
func ByCategory(items []model.TodoItem) map[string][]model.TodoItem {
	out := map[string][]model.TodoItem{}
	for _, t := range items {
		key := t.Category
		if key == "" {
			key = Uncategorized
		}
		out[key] = append(out[key], t)
	}
	return out
}

// ByPriority groups items by priority. Items without a priority land under "".
func ByPriority(items []model.TodoItem) map[model.Priority][]model.TodoItem {
	out := map[model.Priority][]model.TodoItem{
		model.PriorityLow:    {},
		model.PriorityMedium: {},
		model.PriorityHigh:   {},
	}
	for _, t := range items {
		out[t.Priority] = append(out[t.Priority], t)
	}
	return out
}

func (r *Repository) Filtered(f Filter, s Sort) []model.TodoItem {
	return FilterAndSort(r.todos, f, s)
}

func (r *Repository) Stats() model.TodoStats {
	return Stats(r.todos)
}

func (r *Repository) Search(query string) []model.TodoItem {
	return FilterAndSort(r.todos, Filter{Search: query}, DefaultSort)
}

func (r *Repository) ByCategory() map[string][]model.TodoItem {
	return ByCategory(r.todos)
}

func (r *Repository) ByPriority() map[model.Priority][]model.TodoItem {
	return ByPriority(r.todos)
}

// Categories returns the distinct non-empty categories in sorted order.
func (r *Repository) Categories() []string {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, t := range r.todos {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	slices.Sort(out)
	return out
}
