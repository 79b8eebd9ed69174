package service

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/reidsolon/tracker/internal/model"
)

type CategoryBreakdown struct {
	Category model.FoodCategory `json:"category"`
	Entries  int                `json:"entries"`
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein_g"`
	Carbs    float64            `json:"carbs_g"`
	Fat      float64            `json:"fat_g"`
}

type DaySummary struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
}

type AnalyticsReport struct {
	FromDate              string              `json:"from_date"`
	ToDate                string              `json:"to_date"`
	TotalCalories         float64             `json:"total_calories"`
	TotalProtein          float64             `json:"total_protein_g"`
	TotalCarbs            float64             `json:"total_carbs_g"`
	TotalFat              float64             `json:"total_fat_g"`
	DaysWithEntries       int                 `json:"days_with_entries"`
	AverageCaloriesPerDay float64             `json:"avg_calories_per_day"`
	AverageProteinPerDay  float64             `json:"avg_protein_per_day"`
	AverageCarbsPerDay    float64             `json:"avg_carbs_per_day"`
	AverageFatPerDay      float64             `json:"avg_fat_per_day"`
	HighestDay            *DaySummary         `json:"highest_day,omitempty"`
	LowestDay             *DaySummary         `json:"lowest_day,omitempty"`
	Adherence             AdherenceSummary    `json:"adherence"`
	ByCategory            []CategoryBreakdown `json:"by_category"`
	Days                  []DaySummary        `json:"days"`
}

type AdherenceSummary struct {
	GoalCalories   float64 `json:"goal_calories"`
	EvaluatedDays  int     `json:"evaluated_days"`
	WithinGoalDays int     `json:"within_goal_days"`
	PercentWithin  float64 `json:"percent_within_goal"`
}

// AnalyticsRange aggregates joined entries per day and per food category
// between the calendar days of from and to, inclusive. Adherence is measured
// against the active goal; macro targets the goal leaves unset are not checked.
func AnalyticsRange(entries []model.CalorieEntry, foods []model.FoodItem, goals []model.CalorieGoal, from, to time.Time, tolerance float64) (*AnalyticsReport, error) {
	if from.After(to) {
		return nil, fmt.Errorf("from date must be <= to date")
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be >= 0")
	}
	from = beginningOfDay(from)
	to = beginningOfDay(to.In(from.Location()))

	report := &AnalyticsReport{
		FromDate: FormatDate(from),
		ToDate:   FormatDate(to),
	}

	joined := EntriesInRange(entries, foods, from, endOfDay(to))
	days := daySummaries(joined, from.Location())
	report.Days = days
	report.DaysWithEntries = len(days)

	for i := range days {
		report.TotalCalories += days[i].Calories
		report.TotalProtein += days[i].Protein
		report.TotalCarbs += days[i].Carbs
		report.TotalFat += days[i].Fat
	}
	if report.DaysWithEntries > 0 {
		div := float64(report.DaysWithEntries)
		report.AverageCaloriesPerDay = report.TotalCalories / div
		report.AverageProteinPerDay = report.TotalProtein / div
		report.AverageCarbsPerDay = report.TotalCarbs / div
		report.AverageFatPerDay = report.TotalFat / div
		report.HighestDay, report.LowestDay = extremeDays(days)
	}

	report.ByCategory = categoryBreakdown(joined)
	if goal, ok := ActiveGoal(goals); ok {
		report.Adherence = calculateAdherence(days, goal, tolerance)
	}
	return report, nil
}

func daySummaries(joined []model.EntryWithFood, loc *time.Location) []DaySummary {
	byDate := make(map[string]*DaySummary)
	for _, e := range joined {
		key := FormatDate(e.ConsumedAt.In(loc))
		d, ok := byDate[key]
		if !ok {
			d = &DaySummary{Date: key}
			byDate[key] = d
		}
		d.Calories += e.TotalCalories
		d.Protein += model.Value(e.TotalNutrition.Protein)
		d.Carbs += model.Value(e.TotalNutrition.Carbs)
		d.Fat += model.Value(e.TotalNutrition.Fat)
	}
	items := make([]DaySummary, 0, len(byDate))
	for _, d := range byDate {
		items = append(items, *d)
	}
	slices.SortFunc(items, func(a, b DaySummary) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return items
}

func categoryBreakdown(joined []model.EntryWithFood) []CategoryBreakdown {
	byCategory := make(map[model.FoodCategory]*CategoryBreakdown)
	for _, e := range joined {
		c, ok := byCategory[e.Food.Category]
		if !ok {
			c = &CategoryBreakdown{Category: e.Food.Category}
			byCategory[e.Food.Category] = c
		}
		c.Entries++
		c.Calories += e.TotalCalories
		c.Protein += model.Value(e.TotalNutrition.Protein)
		c.Carbs += model.Value(e.TotalNutrition.Carbs)
		c.Fat += model.Value(e.TotalNutrition.Fat)
	}
	items := make([]CategoryBreakdown, 0, len(byCategory))
	for _, c := range byCategory {
		items = append(items, *c)
	}
	slices.SortFunc(items, func(a, b CategoryBreakdown) int {
		if c := cmp.Compare(b.Calories, a.Calories); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return items
}

func calculateAdherence(days []DaySummary, goal model.CalorieGoal, tolerance float64) AdherenceSummary {
	out := AdherenceSummary{GoalCalories: goal.DailyCalories}
	for _, d := range days {
		out.EvaluatedDays++
		if d.Calories <= goal.DailyCalories &&
			macroWithin(d.Protein, goal.Protein, tolerance) &&
			macroWithin(d.Carbs, goal.Carbs, tolerance) &&
			macroWithin(d.Fat, goal.Fat, tolerance) {
			out.WithinGoalDays++
		}
	}
	if out.EvaluatedDays > 0 {
		out.PercentWithin = (float64(out.WithinGoalDays) / float64(out.EvaluatedDays)) * 100
	}
	return out
}

func macroWithin(actual float64, target *float64, tolerance float64) bool {
	if target == nil {
		return true
	}
	return AdherenceWithin(actual, *target, tolerance)
}

func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	if len(days) == 0 {
		return nil, nil
	}
	copied := slices.Clone(days)
	slices.SortStableFunc(copied, func(a, b DaySummary) int {
		return cmp.Compare(a.Calories, b.Calories)
	})
	low := copied[0]
	high := copied[len(copied)-1]
	return &high, &low
}
