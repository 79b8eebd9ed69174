package model

import "time"

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists meal types in their canonical ordinal order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Ordinal returns the position of m in MealTypes, or len(MealTypes) when m is unknown.
func (m MealType) Ordinal() int {
	for i, v := range MealTypes {
		if v == m {
			return i
		}
	}
	return len(MealTypes)
}

func (m MealType) Valid() bool {
	return m.Ordinal() < len(MealTypes)
}

type FoodCategory string

const (
	CategoryFruits     FoodCategory = "fruits"
	CategoryVegetables FoodCategory = "vegetables"
	CategoryGrains     FoodCategory = "grains"
	CategoryProteins   FoodCategory = "proteins"
	CategoryDairy      FoodCategory = "dairy"
	CategoryBeverages  FoodCategory = "beverages"
	CategorySnacks     FoodCategory = "snacks"
	CategoryOther      FoodCategory = "other"
)

var FoodCategories = []FoodCategory{
	CategoryFruits, CategoryVegetables, CategoryGrains, CategoryProteins,
	CategoryDairy, CategorySnacks, CategoryBeverages, CategoryOther,
}

func (c FoodCategory) Valid() bool {
	for _, v := range FoodCategories {
		if v == c {
			return true
		}
	}
	return false
}

type ServingUnit string

const (
	UnitGram       ServingUnit = "g"
	UnitOunce      ServingUnit = "oz"
	UnitCup        ServingUnit = "cup"
	UnitTablespoon ServingUnit = "tbsp"
	UnitTeaspoon   ServingUnit = "tsp"
	UnitPiece      ServingUnit = "piece"
	UnitSlice      ServingUnit = "slice"
	UnitMilliliter ServingUnit = "ml"
)

var ServingUnits = []ServingUnit{
	UnitGram, UnitOunce, UnitCup, UnitTablespoon, UnitTeaspoon, UnitPiece, UnitSlice, UnitMilliliter,
}

func (u ServingUnit) Valid() bool {
	for _, v := range ServingUnits {
		if v == u {
			return true
		}
	}
	return false
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly-active"
	ActivityModeratelyActive ActivityLevel = "moderately-active"
	ActivityVeryActive       ActivityLevel = "very-active"
	ActivityExtremelyActive  ActivityLevel = "extremely-active"
)

var ActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive, ActivityExtremelyActive,
}

func (a ActivityLevel) Valid() bool {
	for _, v := range ActivityLevels {
		if v == a {
			return true
		}
	}
	return false
}

type GoalType string

const (
	GoalLoseWeight     GoalType = "lose-weight"
	GoalMaintainWeight GoalType = "maintain-weight"
	GoalGainWeight     GoalType = "gain-weight"
)

var GoalTypes = []GoalType{GoalLoseWeight, GoalMaintainWeight, GoalGainWeight}

func (g GoalType) Valid() bool {
	for _, v := range GoalTypes {
		if v == g {
			return true
		}
	}
	return false
}

// NutritionVector holds nutrient amounts. Calories is always present; a nil
// optional field means the value is unknown, which is distinct from zero.
type NutritionVector struct {
	Calories float64  `json:"calories" yaml:"calories"`
	Protein  *float64 `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty" yaml:"fat,omitempty"`
	Fiber    *float64 `json:"fiber,omitempty" yaml:"fiber,omitempty"`
	Sugar    *float64 `json:"sugar,omitempty" yaml:"sugar,omitempty"`
	Sodium   *float64 `json:"sodium,omitempty" yaml:"sodium,omitempty"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Value returns *p, or 0 when p is nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}

// Clone returns a copy of v that shares no pointers with it.
func (v NutritionVector) Clone() NutritionVector {
	return NutritionVector{
		Calories: v.Calories,
		Protein:  cloneFloat(v.Protein),
		Carbs:    cloneFloat(v.Carbs),
		Fat:      cloneFloat(v.Fat),
		Fiber:    cloneFloat(v.Fiber),
		Sugar:    cloneFloat(v.Sugar),
		Sodium:   cloneFloat(v.Sodium),
	}
}

type FoodItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Brand       string          `json:"brand,omitempty" yaml:"brand,omitempty"`
	Category    FoodCategory    `json:"category" yaml:"category"`
	ServingSize string          `json:"servingSize" yaml:"servingSize"`
	ServingUnit ServingUnit     `json:"servingUnit" yaml:"servingUnit"`
	Nutrition   NutritionVector `json:"nutrition" yaml:"nutrition"`
	Barcode     string          `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	IsCustom    bool            `json:"isCustom" yaml:"isCustom"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" yaml:"updatedAt"`
}

func (f FoodItem) Clone() FoodItem {
	f.Nutrition = f.Nutrition.Clone()
	return f
}

type CalorieEntry struct {
	ID         string    `json:"id" yaml:"id"`
	UserID     string    `json:"userId,omitempty" yaml:"userId,omitempty"`
	FoodID     string    `json:"foodId" yaml:"foodId"`
	Quantity   float64   `json:"quantity" yaml:"quantity"`
	MealType   MealType  `json:"mealType" yaml:"mealType"`
	ConsumedAt time.Time `json:"consumedAt" yaml:"consumedAt"`
	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type CalorieGoal struct {
	ID            string        `json:"id" yaml:"id"`
	UserID        string        `json:"userId,omitempty" yaml:"userId,omitempty"`
	DailyCalories float64       `json:"dailyCalories" yaml:"dailyCalories"`
	Protein       *float64      `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbs         *float64      `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Fat           *float64      `json:"fat,omitempty" yaml:"fat,omitempty"`
	ActivityLevel ActivityLevel `json:"activityLevel" yaml:"activityLevel"`
	Goal          GoalType      `json:"goal" yaml:"goal"`
	IsActive      bool          `json:"isActive" yaml:"isActive"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt" yaml:"updatedAt"`
}

func (g CalorieGoal) Clone() CalorieGoal {
	g.Protein = cloneFloat(g.Protein)
	g.Carbs = cloneFloat(g.Carbs)
	g.Fat = cloneFloat(g.Fat)
	return g
}

// EntryWithFood is a CalorieEntry joined to its FoodItem with nutrition
// scaled by the entry quantity.
type EntryWithFood struct {
	CalorieEntry
	Food           FoodItem        `json:"food"`
	TotalCalories  float64         `json:"totalCalories"`
	TotalNutrition NutritionVector `json:"totalNutrition"`
}

type MealBreakdown struct {
	Breakfast float64 `json:"breakfast"`
	Lunch     float64 `json:"lunch"`
	Dinner    float64 `json:"dinner"`
	Snack     float64 `json:"snack"`
}

func (b *MealBreakdown) Add(m MealType, calories float64) {
	switch m {
	case MealBreakfast:
		b.Breakfast += calories
	case MealLunch:
		b.Lunch += calories
	case MealDinner:
		b.Dinner += calories
	case MealSnack:
		b.Snack += calories
	}
}

func (b MealBreakdown) For(m MealType) float64 {
	switch m {
	case MealBreakfast:
		return b.Breakfast
	case MealLunch:
		return b.Lunch
	case MealDinner:
		return b.Dinner
	case MealSnack:
		return b.Snack
	}
	return 0
}

type DailySummary struct {
	Date           string          `json:"date"`
	TotalCalories  float64         `json:"totalCalories"`
	TotalNutrition NutritionVector `json:"totalNutrition"`
	Entries        []EntryWithFood `json:"entries"`
	MealBreakdown  MealBreakdown   `json:"mealBreakdown"`
}

type CalorieProgress struct {
	Consumed   float64 `json:"consumed"`
	Goal       float64 `json:"goal"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
}

// Dataset is the full calorie domain state.
type Dataset struct {
	FoodItems      []FoodItem     `json:"foodItems"`
	CalorieEntries []CalorieEntry `json:"calorieEntries"`
	CalorieGoals   []CalorieGoal  `json:"calorieGoals"`
}
