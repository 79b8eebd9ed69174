package calorie

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

type CreateEntryInput struct {
	UserID     string
	FoodID     string
	Quantity   float64
	MealType   model.MealType
	ConsumedAt time.Time
	Notes      string
}

type UpdateEntryInput struct {
	UserID     *string
	FoodID     *string
	Quantity   *float64
	MealType   *model.MealType
	ConsumedAt *time.Time
	Notes      *string
}

func (r *Repository) CreateEntry(ctx context.Context, in CreateEntryInput) (model.CalorieEntry, error) {
	now := r.now()
	entry := model.CalorieEntry{
		ID:         r.newID(),
		UserID:     strings.TrimSpace(in.UserID),
		FoodID:     strings.TrimSpace(in.FoodID),
		Quantity:   in.Quantity,
		MealType:   in.MealType,
		ConsumedAt: in.ConsumedAt,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := service.ValidateEntry(entry); err != nil {
		return model.CalorieEntry{}, r.fail(err)
	}
	if r.foodIndex(entry.FoodID) < 0 {
		return model.CalorieEntry{}, r.fail(&service.NotFoundError{Kind: "food item", ID: entry.FoodID})
	}

	r.entries = append(r.entries, entry)
	r.emit(EventEntryCreated, entry.ID)
	return entry, r.persistEntries(ctx)
}

func (r *Repository) UpdateEntry(ctx context.Context, id string, in UpdateEntryInput) (model.CalorieEntry, error) {
	i := r.entryIndex(id)
	if i < 0 {
		return model.CalorieEntry{}, r.fail(&service.NotFoundError{Kind: "calorie entry", ID: id})
	}

	entry := r.entries[i]
	if in.UserID != nil {
		entry.UserID = strings.TrimSpace(*in.UserID)
	}
	if in.FoodID != nil {
		entry.FoodID = strings.TrimSpace(*in.FoodID)
	}
	if in.Quantity != nil {
		entry.Quantity = *in.Quantity
	}
	if in.MealType != nil {
		entry.MealType = *in.MealType
	}
	if in.ConsumedAt != nil {
		entry.ConsumedAt = *in.ConsumedAt
	}
	if in.Notes != nil {
		entry.Notes = strings.TrimSpace(*in.Notes)
	}
	entry.UpdatedAt = r.now()
	if err := service.ValidateEntry(entry); err != nil {
		return model.CalorieEntry{}, r.fail(err)
	}
	if in.FoodID != nil && r.foodIndex(entry.FoodID) < 0 {
		return model.CalorieEntry{}, r.fail(&service.NotFoundError{Kind: "food item", ID: entry.FoodID})
	}

	r.entries[i] = entry
	r.emit(EventEntryUpdated, entry.ID)
	return entry, r.persistEntries(ctx)
}

func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	i := r.entryIndex(id)
	if i < 0 {
		return r.fail(&service.NotFoundError{Kind: "calorie entry", ID: id})
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	r.emit(EventEntryDeleted, id)
	return r.persistEntries(ctx)
}
