package calorie

import (
	"context"
	"fmt"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
)

// BarcodeLookup drafts a food item for a barcode from an external source.
type BarcodeLookup interface {
	LookupBarcode(ctx context.Context, barcode string) (model.FoodItem, error)
}

type LookupResult struct {
	Food      model.FoodItem
	FromStore bool
	Saved     bool
}

// LookupBarcode returns the stored food carrying barcode. Otherwise it asks
// lookup for a draft and, when save is set, creates it in the catalog.
func (r *Repository) LookupBarcode(ctx context.Context, lookup BarcodeLookup, barcode string, save bool) (LookupResult, error) {
	barcode = strings.TrimSpace(barcode)
	if food, ok := r.FoodByBarcode(barcode); ok {
		return LookupResult{Food: food, FromStore: true}, nil
	}
	if lookup == nil {
		return LookupResult{}, fmt.Errorf("no barcode lookup configured")
	}
	draft, err := lookup.LookupBarcode(ctx, barcode)
	if err != nil {
		return LookupResult{}, fmt.Errorf("lookup barcode %s: %w", barcode, err)
	}
	draft.Barcode = barcode
	if !save {
		return LookupResult{Food: draft}, nil
	}

	food, err := r.CreateFood(ctx, CreateFoodInput{
		Name:        draft.Name,
		Brand:       draft.Brand,
		Category:    draft.Category,
		ServingSize: draft.ServingSize,
		ServingUnit: draft.ServingUnit,
		Nutrition:   draft.Nutrition,
		Barcode:     draft.Barcode,
		IsCustom:    draft.IsCustom,
	})
	if food.ID == "" {
		return LookupResult{Food: draft}, err
	}
	return LookupResult{Food: food, Saved: true}, err
}
