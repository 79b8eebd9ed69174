package calorie

import (
	"context"
	"errors"

	"github.com/reidsolon/tracker/internal/model"
)

type DoctorReport struct {
	DanglingEntries   int `json:"dangling_entries"`
	DuplicateFoodIDs  int `json:"duplicate_food_ids"`
	DuplicateEntryIDs int `json:"duplicate_entry_ids"`
	ActiveGoals       int `json:"active_goals"`
	RemovedEntries    int `json:"removed_entries,omitempty"`
	DeactivatedGoals  int `json:"deactivated_goals,omitempty"`
}

func (d DoctorReport) Healthy() bool {
	return d.DanglingEntries == 0 && d.DuplicateFoodIDs == 0 && d.DuplicateEntryIDs == 0 && d.ActiveGoals <= 1
}

// Doctor checks the collections for entries pointing at missing foods,
// duplicate ids and more than one active goal. With fix set it drops
// dangling entries and keeps only the most recently updated active goal.
func (r *Repository) Doctor(ctx context.Context, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	foodIDs := make(map[string]int, len(r.foods))
	for _, f := range r.foods {
		foodIDs[f.ID]++
	}
	for _, n := range foodIDs {
		report.DuplicateFoodIDs += n - 1
	}

	entryIDs := make(map[string]int, len(r.entries))
	dangling := make(map[int]bool)
	for i, e := range r.entries {
		entryIDs[e.ID]++
		if foodIDs[e.FoodID] == 0 {
			dangling[i] = true
		}
	}
	report.DanglingEntries = len(dangling)
	for _, n := range entryIDs {
		report.DuplicateEntryIDs += n - 1
	}

	keep := -1
	for i, g := range r.goals {
		if !g.IsActive {
			continue
		}
		report.ActiveGoals++
		if keep < 0 || g.UpdatedAt.After(r.goals[keep].UpdatedAt) {
			keep = i
		}
	}

	if !fix {
		return report, nil
	}

	var errs []error
	if len(dangling) > 0 {
		kept := make([]model.CalorieEntry, 0, len(r.entries)-len(dangling))
		for i, e := range r.entries {
			if !dangling[i] {
				kept = append(kept, e)
			}
		}
		r.entries = kept
		report.RemovedEntries = len(dangling)
		errs = append(errs, r.persistEntries(ctx))
	}
	if report.ActiveGoals > 1 {
		for i := range r.goals {
			if i != keep && r.goals[i].IsActive {
				r.goals[i].IsActive = false
				report.DeactivatedGoals++
			}
		}
		errs = append(errs, r.persistGoals(ctx))
	}
	if report.RemovedEntries > 0 || report.DeactivatedGoals > 0 {
		r.emit(EventReset, "")
	}
	return report, errors.Join(errs...)
}
