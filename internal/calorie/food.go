package calorie

import (
	"context"
	"slices"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

type CreateFoodInput struct {
	Name        string
	Brand       string
	Category    model.FoodCategory
	ServingSize string
	ServingUnit model.ServingUnit
	Nutrition   model.NutritionVector
	Barcode     string
	IsCustom    bool
}

// UpdateFoodInput holds a partial update; nil fields are left unchanged.
type UpdateFoodInput struct {
	Name        *string
	Brand       *string
	Category    *model.FoodCategory
	ServingSize *string
	ServingUnit *model.ServingUnit
	Nutrition   *model.NutritionVector
	Barcode     *string
	IsCustom    *bool
}

func (r *Repository) CreateFood(ctx context.Context, in CreateFoodInput) (model.FoodItem, error) {
	now := r.now()
	food := model.FoodItem{
		ID:          r.newID(),
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Category:    in.Category,
		ServingSize: strings.TrimSpace(in.ServingSize),
		ServingUnit: in.ServingUnit,
		Nutrition:   in.Nutrition.Clone(),
		Barcode:     strings.TrimSpace(in.Barcode),
		IsCustom:    in.IsCustom,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := service.ValidateFood(food); err != nil {
		return model.FoodItem{}, r.fail(err)
	}

	r.foods = append(r.foods, food)
	r.emit(EventFoodCreated, food.ID)
	return food.Clone(), r.persistFoods(ctx)
}

func (r *Repository) UpdateFood(ctx context.Context, id string, in UpdateFoodInput) (model.FoodItem, error) {
	i := r.foodIndex(id)
	if i < 0 {
		return model.FoodItem{}, r.fail(&service.NotFoundError{Kind: "food item", ID: id})
	}

	food := r.foods[i]
	if in.Name != nil {
		food.Name = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		food.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Category != nil {
		food.Category = *in.Category
	}
	if in.ServingSize != nil {
		food.ServingSize = strings.TrimSpace(*in.ServingSize)
	}
	if in.ServingUnit != nil {
		food.ServingUnit = *in.ServingUnit
	}
	if in.Nutrition != nil {
		food.Nutrition = in.Nutrition.Clone()
	}
	if in.Barcode != nil {
		food.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.IsCustom != nil {
		food.IsCustom = *in.IsCustom
	}
	food.UpdatedAt = r.now()
	if err := service.ValidateFood(food); err != nil {
		return model.FoodItem{}, r.fail(err)
	}

	r.foods[i] = food
	r.emit(EventFoodUpdated, food.ID)
	return food.Clone(), r.persistFoods(ctx)
}

// DeleteFood refuses to remove a food that any entry still references.
func (r *Repository) DeleteFood(ctx context.Context, id string) error {
	i := r.foodIndex(id)
	if i < 0 {
		return r.fail(&service.NotFoundError{Kind: "food item", ID: id})
	}
	refs := 0
	for _, e := range r.entries {
		if e.FoodID == id {
			refs++
		}
	}
	if refs > 0 {
		return r.fail(&service.ReferentialIntegrityError{Kind: "food item", ID: id, References: refs})
	}

	r.foods = slices.Delete(r.foods, i, i+1)
	r.emit(EventFoodDeleted, id)
	return r.persistFoods(ctx)
}

// FoodByBarcode returns the first food carrying barcode.
func (r *Repository) FoodByBarcode(barcode string) (model.FoodItem, bool) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return model.FoodItem{}, false
	}
	for _, f := range r.foods {
		if f.Barcode == barcode {
			return f.Clone(), true
		}
	}
	return model.FoodItem{}, false
}
