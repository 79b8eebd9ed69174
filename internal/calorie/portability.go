package calorie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/store"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
}

// ExportDocument carries every calorie namespace. On import a nil field
// means the key was absent and the stored namespace is left untouched.
type ExportDocument struct {
	FoodItems      *[]model.FoodItem     `json:"foodItems,omitempty" yaml:"foodItems,omitempty"`
	CalorieEntries *[]model.CalorieEntry `json:"calorieEntries,omitempty" yaml:"calorieEntries,omitempty"`
	CalorieGoals   *[]model.CalorieGoal  `json:"calorieGoals,omitempty" yaml:"calorieGoals,omitempty"`
	Settings       map[string]any        `json:"settings,omitempty" yaml:"settings,omitempty"`
	ExportDate     time.Time             `json:"exportDate" yaml:"exportDate"`
}

// Export reads the stored namespaces rather than in-memory state.
func (r *Repository) Export(ctx context.Context) ExportDocument {
	foods := nonNil(store.LoadCollection[[]model.FoodItem](ctx, r.kv, store.NamespaceFoods))
	entries := nonNil(store.LoadCollection[[]model.CalorieEntry](ctx, r.kv, store.NamespaceEntries))
	goals := nonNil(store.LoadCollection[[]model.CalorieGoal](ctx, r.kv, store.NamespaceGoals))
	settings := store.LoadCollection[map[string]any](ctx, r.kv, store.NamespaceSettings)
	if settings == nil {
		settings = map[string]any{}
	}
	return ExportDocument{
		FoodItems:      &foods,
		CalorieEntries: &entries,
		CalorieGoals:   &goals,
		Settings:       settings,
		ExportDate:     r.now(),
	}
}

// Import writes each present key to the store and replaces the matching
// in-memory collection. Keys are applied independently. Imported goals keep
// only their first active goal active.
func (r *Repository) Import(ctx context.Context, doc ExportDocument) error {
	var errs []error
	if doc.FoodItems != nil {
		if err := store.SaveCollection(ctx, r.kv, store.NamespaceFoods, *doc.FoodItems); err != nil {
			errs = append(errs, err)
		} else {
			r.foods = cloneFoods(*doc.FoodItems)
		}
	}
	if doc.CalorieEntries != nil {
		if err := store.SaveCollection(ctx, r.kv, store.NamespaceEntries, *doc.CalorieEntries); err != nil {
			errs = append(errs, err)
		} else {
			r.entries = *doc.CalorieEntries
		}
	}
	if doc.CalorieGoals != nil {
		goals := singleActive(*doc.CalorieGoals)
		if err := store.SaveCollection(ctx, r.kv, store.NamespaceGoals, goals); err != nil {
			errs = append(errs, err)
		} else {
			r.goals = goals
		}
	}
	if doc.Settings != nil {
		if err := store.SaveCollection(ctx, r.kv, store.NamespaceSettings, doc.Settings); err != nil {
			errs = append(errs, err)
		} else {
			r.settings = doc.Settings
		}
	}
	if err := errors.Join(errs...); err != nil {
		r.logger.Error("import failed", "error", err)
		return r.fail(fmt.Errorf("import data: %w", err))
	}
	r.emit(EventReset, "")
	return nil
}

func singleActive(goals []model.CalorieGoal) []model.CalorieGoal {
	out := make([]model.CalorieGoal, len(goals))
	seen := false
	for i := range out {
		out[i] = goals[i].Clone()
		if out[i].IsActive && seen {
			out[i].IsActive = false
		}
		seen = seen || out[i].IsActive
	}
	return out
}

func EncodeExport(doc ExportDocument, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode yaml export: %w", err)
		}
		return b, nil
	default:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json export: %w", err)
		}
		return b, nil
	}
}

func DecodeExport(raw []byte, format Format) (ExportDocument, error) {
	var doc ExportDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return ExportDocument{}, fmt.Errorf("decode yaml import: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return ExportDocument{}, fmt.Errorf("decode json import: %w", err)
		}
	}
	return doc, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
