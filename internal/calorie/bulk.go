package calorie

import (
	"context"
	"errors"
	"time"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
	"github.com/reidsolon/tracker/internal/store"
)

// QuickAddEntry logs foodID now, picking the meal from the current hour.
func (r *Repository) QuickAddEntry(ctx context.Context, foodID string, quantity float64, notes string) (model.CalorieEntry, error) {
	now := r.now()
	return r.CreateEntry(ctx, CreateEntryInput{
		FoodID:     foodID,
		Quantity:   quantity,
		MealType:   service.MealTypeForTime(now),
		ConsumedAt: now,
		Notes:      notes,
	})
}

// DuplicateEntry copies an entry to at, or to now when at is zero. The meal
// type follows the new time.
func (r *Repository) DuplicateEntry(ctx context.Context, id string, at time.Time) (model.CalorieEntry, error) {
	src, ok := r.Entry(id)
	if !ok {
		return model.CalorieEntry{}, r.fail(&service.NotFoundError{Kind: "calorie entry", ID: id})
	}
	if at.IsZero() {
		at = r.now()
	}
	return r.CreateEntry(ctx, CreateEntryInput{
		UserID:     src.UserID,
		FoodID:     src.FoodID,
		Quantity:   src.Quantity,
		MealType:   service.MealTypeForTime(at),
		ConsumedAt: at,
		Notes:      src.Notes,
	})
}

// CopyYesterdayEntries re-logs yesterday's entries one day later.
func (r *Repository) CopyYesterdayEntries(ctx context.Context) []model.CalorieEntry {
	yesterday := r.now().AddDate(0, 0, -1)
	src := service.EntriesForDate(r.entries, r.foods, yesterday)
	inputs := make([]CreateEntryInput, 0, len(src))
	for _, e := range src {
		inputs = append(inputs, CreateEntryInput{
			UserID:     e.UserID,
			FoodID:     e.FoodID,
			Quantity:   e.Quantity,
			MealType:   e.MealType,
			ConsumedAt: e.ConsumedAt.AddDate(0, 0, 1),
			Notes:      e.Notes,
		})
	}
	return r.AddMultipleEntries(ctx, inputs)
}

// AddMultipleEntries creates each entry independently. Rejected inputs are
// logged and skipped; entries applied in memory but not persisted are
// returned with the rest.
func (r *Repository) AddMultipleEntries(ctx context.Context, inputs []CreateEntryInput) []model.CalorieEntry {
	out := make([]model.CalorieEntry, 0, len(inputs))
	for i, in := range inputs {
		entry, err := r.CreateEntry(ctx, in)
		if err != nil {
			var se *store.Error
			if errors.As(err, &se) {
				r.logger.Warn("entry added but not persisted", "entry_id", entry.ID, "error", err)
				out = append(out, entry)
				continue
			}
			r.logger.Warn("skipping entry", "index", i, "food_id", in.FoodID, "error", err)
			continue
		}
		out = append(out, entry)
	}
	return out
}

// DeleteMultipleEntries deletes each id independently and returns the ids
// that were removed from memory.
func (r *Repository) DeleteMultipleEntries(ctx context.Context, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := r.DeleteEntry(ctx, id); err != nil {
			var se *store.Error
			if errors.As(err, &se) {
				r.logger.Warn("entry deleted but not persisted", "entry_id", id, "error", err)
				out = append(out, id)
				continue
			}
			r.logger.Warn("skipping entry delete", "entry_id", id, "error", err)
			continue
		}
		out = append(out, id)
	}
	return out
}
