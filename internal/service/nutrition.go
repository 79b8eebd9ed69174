package service

import (
	"math"
	"strconv"

	"github.com/reidsolon/tracker/internal/model"
)

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Scale multiplies every present field of v by quantity and rounds each to two
// decimals. Absent fields stay absent.
func Scale(v model.NutritionVector, quantity float64) model.NutritionVector {
	return model.NutritionVector{
		Calories: Round2(v.Calories * quantity),
		Protein:  scaleOptional(v.Protein, quantity),
		Carbs:    scaleOptional(v.Carbs, quantity),
		Fat:      scaleOptional(v.Fat, quantity),
		Fiber:    scaleOptional(v.Fiber, quantity),
		Sugar:    scaleOptional(v.Sugar, quantity),
		Sodium:   scaleOptional(v.Sodium, quantity),
	}
}

func scaleOptional(p *float64, quantity float64) *float64 {
	if p == nil {
		return nil
	}
	return model.Float(Round2(*p * quantity))
}

// Sum folds vectors together starting from zero calories. An optional field
// present on only one side keeps that side's value; absent on both stays absent.
func Sum(vectors []model.NutritionVector) model.NutritionVector {
	var total model.NutritionVector
	for _, v := range vectors {
		total = Add(total, v)
	}
	return total
}

func Add(a, b model.NutritionVector) model.NutritionVector {
	return model.NutritionVector{
		Calories: Round2(a.Calories + b.Calories),
		Protein:  mergeOptional(a.Protein, b.Protein),
		Carbs:    mergeOptional(a.Carbs, b.Carbs),
		Fat:      mergeOptional(a.Fat, b.Fat),
		Fiber:    mergeOptional(a.Fiber, b.Fiber),
		Sugar:    mergeOptional(a.Sugar, b.Sugar),
		Sodium:   mergeOptional(a.Sodium, b.Sodium),
	}
}

func mergeOptional(a, b *float64) *float64 {
	switch {
	case a != nil && b != nil:
		return model.Float(Round2(*a + *b))
	case a != nil:
		return model.Float(*a)
	case b != nil:
		return model.Float(*b)
	}
	return nil
}

func RoundToDecimal(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatNutritionValue renders an optional nutrient with its unit, or "-" when unknown.
func FormatNutritionValue(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(Round2(*v), 'f', -1, 64) + unit
}
