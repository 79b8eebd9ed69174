package calorie

import (
	"time"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

func (r *Repository) EntriesWithFood() []model.EntryWithFood {
	return service.JoinEntries(r.entries, r.foods)
}

func (r *Repository) DailySummary(date time.Time) model.DailySummary {
	return service.DailySummary(r.entries, r.foods, date)
}

func (r *Repository) TodaySummary() model.DailySummary {
	return r.DailySummary(r.now())
}

func (r *Repository) EntriesForDate(date time.Time) []model.EntryWithFood {
	return service.EntriesForDate(r.entries, r.foods, date)
}

func (r *Repository) EntriesInRange(start, end time.Time) []model.EntryWithFood {
	return service.EntriesInRange(r.entries, r.foods, start, end)
}

func (r *Repository) Progress(date time.Time) model.CalorieProgress {
	return service.Progress(r.entries, r.foods, r.goals, date)
}

func (r *Repository) WeeklyAverage() float64 {
	return service.WeeklyAverage(r.entries, r.foods, r.now())
}

func (r *Repository) MonthlyAverage() float64 {
	return service.MonthlyAverage(r.entries, r.foods, r.now())
}

func (r *Repository) Analytics(from, to time.Time, tolerance float64) (*service.AnalyticsReport, error) {
	return service.AnalyticsRange(r.entries, r.foods, r.goals, from, to, tolerance)
}

// FilterEntries applies filter then sort to every joined entry; nil skips a step.
func (r *Repository) FilterEntries(filter *service.EntryFilter, sort *service.EntrySort) []model.EntryWithFood {
	return service.FilterAndSort(r.EntriesWithFood(), filter, sort)
}

func (r *Repository) SearchEntries(query string) []model.EntryWithFood {
	return service.FilterEntries(r.EntriesWithFood(), service.EntryFilter{Search: query})
}

func (r *Repository) SearchFoods(query string) []model.FoodItem {
	return cloneFoods(service.SearchFoods(r.foods, query))
}

func (r *Repository) FoodsByCategory(c model.FoodCategory) []model.FoodItem {
	return cloneFoods(service.FoodsByCategory(r.foods, c))
}

func (r *Repository) EntriesByMealType(m model.MealType) []model.EntryWithFood {
	return service.EntriesByMealType(r.EntriesWithFood(), m)
}

func (r *Repository) RecentEntries(days int) []model.EntryWithFood {
	return service.RecentEntries(r.EntriesWithFood(), days, r.now())
}

func (r *Repository) MostConsumedFoods(limit int) []service.FoodConsumption {
	return service.MostConsumedFoods(r.EntriesWithFood(), limit)
}

func (r *Repository) FoodSuggestions(limit int) []model.FoodItem {
	return service.FoodSuggestions(r.EntriesWithFood(), cloneFoods(r.foods), limit, r.now())
}

func (r *Repository) HighCalorieEntries(threshold float64) []model.EntryWithFood {
	return service.HighCalorieEntries(r.EntriesWithFood(), threshold)
}

func (r *Repository) CurrentWeekEntries() []model.EntryWithFood {
	start, end := service.WeekRange(r.now())
	return r.EntriesInRange(start, end)
}

func (r *Repository) CurrentMonthEntries() []model.EntryWithFood {
	start, end := service.MonthRange(r.now())
	return r.EntriesInRange(start, end)
}
