package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindVolume unitKind = "volume"
	unitKindCount  unitKind = "count"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[model.ServingUnit]unitDef{
	// mass (base = g)
	model.UnitGram:  {kind: unitKindMass, toBaseUnit: 1},
	model.UnitOunce: {kind: unitKindMass, toBaseUnit: 28.349523125},

	// volume (base = ml)
	model.UnitMilliliter: {kind: unitKindVolume, toBaseUnit: 1},
	model.UnitTeaspoon:   {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	model.UnitTablespoon: {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	model.UnitCup:        {kind: unitKindVolume, toBaseUnit: 236.5882365},

	model.UnitPiece: {kind: unitKindCount, toBaseUnit: 1},
	model.UnitSlice: {kind: unitKindCount, toBaseUnit: 1},
}

// ConvertServingAmount converts between units of the same dimension. Count
// units (piece, slice) only convert to themselves.
func ConvertServingAmount(value float64, from, to model.ServingUnit) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}
	fromDef, ok := resolveUnit(from)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", from)
	}
	toDef, ok := resolveUnit(to)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", to)
	}
	if fromDef.kind != toDef.kind {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)", from, fromDef.kind, to, toDef.kind)
	}
	if fromDef.kind == unitKindCount && normalizeUnit(from) != normalizeUnit(to) {
		return 0, fmt.Errorf("cannot convert %s to %s", from, to)
	}
	return value * fromDef.toBaseUnit / toDef.toBaseUnit, nil
}

// QuantityForAmount expresses amount of unit as a multiple of food's serving.
func QuantityForAmount(food model.FoodItem, amount float64, unit model.ServingUnit) (float64, error) {
	serving, err := strconv.ParseFloat(strings.TrimSpace(food.ServingSize), 64)
	if err != nil || serving <= 0 {
		return 0, fmt.Errorf("serving size %q of %s is not a positive number", food.ServingSize, food.Name)
	}
	inServingUnit, err := ConvertServingAmount(amount, unit, food.ServingUnit)
	if err != nil {
		return 0, err
	}
	return inServingUnit / serving, nil
}

func normalizeUnit(u model.ServingUnit) model.ServingUnit {
	return model.ServingUnit(normalizeName(string(u)))
}

func resolveUnit(unit model.ServingUnit) (unitDef, bool) {
	def, ok := unitTable[normalizeUnit(unit)]
	return def, ok
}
