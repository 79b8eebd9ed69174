package calorie

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/reidsolon/tracker/internal/store"
)

const (
	SettingUserID             = "user_id"
	SettingAnalyticsTolerance = "analytics_tolerance"
	SettingSuggestionLimit    = "suggestion_limit"
)

func normalizeKey(key string) string {
	return strings.TrimSpace(strings.ToLower(key))
}

func (r *Repository) SetSetting(ctx context.Context, key string, value any) error {
	key = normalizeKey(key)
	if key == "" {
		return r.fail(fmt.Errorf("setting key is required"))
	}
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	r.settings[key] = value
	return r.persist(ctx, store.NamespaceSettings, r.settings)
}

func (r *Repository) Setting(key string) (any, bool) {
	v, ok := r.settings[normalizeKey(key)]
	return v, ok
}

// SettingString formats a setting with %v, returning "" when unset.
func (r *Repository) SettingString(key string) string {
	v, ok := r.Setting(key)
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (r *Repository) Settings() map[string]any {
	return maps.Clone(r.settings)
}

func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	key = normalizeKey(key)
	if _, ok := r.settings[key]; !ok {
		return nil
	}
	delete(r.settings, key)
	return r.persist(ctx, store.NamespaceSettings, r.settings)
}
