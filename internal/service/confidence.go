package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/reidsolon/tracker/internal/model"
)

const DefaultVerifiedMinScore = 0.80

type ConfidenceScore struct {
	Score      float64  `json:"score"`
	IsVerified bool     `json:"isVerified"`
	Reasons    []string `json:"reasons,omitempty"`
}

// ScoreLookupConfidence rates a food drafted from an external lookup. barcode
// is the code that was requested; an empty barcode scores identity by name only.
func ScoreLookupConfidence(food model.FoodItem, barcode string, minScore float64) ConfidenceScore {
	if minScore <= 0 {
		minScore = DefaultVerifiedMinScore
	}
	nutrition := scoreNutritionQuality(food.Nutrition)
	serving := scoreServingQuality(food.ServingSize, food.ServingUnit)
	identity, identityReason := scoreIdentityQuality(food, barcode)

	score := clamp01(0.45*nutrition + 0.25*serving + 0.30*identity)
	return ConfidenceScore{
		Score:      score,
		IsVerified: score >= minScore,
		Reasons: []string{
			fmt.Sprintf("nutrition_quality=%.2f", nutrition),
			fmt.Sprintf("serving_quality=%.2f", serving),
			fmt.Sprintf("identity_quality=%.2f (%s)", identity, identityReason),
			fmt.Sprintf("score=%.2f", score),
			fmt.Sprintf("verified_threshold=%.2f", minScore),
		},
	}
}

// NutritionCompleteness labels how many nutrients v carries.
func NutritionCompleteness(v model.NutritionVector) string {
	switch q := scoreNutritionQuality(v); {
	case q >= 1:
		return "complete"
	case q >= 0.7:
		return "partial"
	case q > 0.2:
		return "sparse"
	}
	return "missing"
}

func scoreNutritionQuality(v model.NutritionVector) float64 {
	macros := 0
	for _, p := range []*float64{v.Protein, v.Carbs, v.Fat} {
		if p != nil {
			macros++
		}
	}
	switch {
	case v.Calories > 0 && macros == 3:
		return 1.0
	case v.Calories > 0 && macros >= 2:
		return 0.7
	case v.Calories > 0 || macros > 0 || v.Fiber != nil || v.Sugar != nil || v.Sodium != nil:
		return 0.4
	}
	return 0.2
}

func scoreServingQuality(size string, unit model.ServingUnit) float64 {
	hasSize := strings.TrimSpace(size) != ""
	hasUnit := unit.Valid()
	switch {
	case hasSize && hasUnit:
		return 1.0
	case hasSize || hasUnit:
		return 0.5
	}
	return 0.0
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func scoreIdentityQuality(food model.FoodItem, barcode string) (float64, string) {
	barcode = strings.TrimSpace(barcode)
	if barcode != "" && food.Barcode == barcode {
		return 1.0, "exact barcode match"
	}
	if strings.TrimSpace(food.Name) == "" {
		return 0.2, "missing name"
	}
	if food.Brand != "" {
		return 0.7, "named and branded"
	}
	if len(strings.Fields(nonAlnum.ReplaceAllString(strings.ToLower(food.Name), " "))) > 1 {
		return 0.5, "descriptive name"
	}
	return 0.4, "weak identity evidence"
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return math.Round(v*1000) / 1000
}
