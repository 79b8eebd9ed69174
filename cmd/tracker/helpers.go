package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/app"
	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/seed"
	"github.com/reidsolon/tracker/internal/service"
	"github.com/reidsolon/tracker/internal/store"
	"github.com/reidsolon/tracker/internal/todo"
)

func openStore() (store.KV, func() error, error) {
	if cfg.DBPath == app.MemoryDB {
		return store.NewMemory(), func() error { return nil }, nil
	}
	if err := app.EnsureDBDir(cfg.DBPath); err != nil {
		return nil, nil, err
	}
	s, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

func withStore(run func(store.KV) error) error {
	kv, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()
	return run(kv)
}

func openCalories(ctx context.Context, kv store.KV) (*calorie.Repository, error) {
	repo := calorie.New(calorie.Options{
		Store:  kv,
		Seed:   seed.Catalog{},
		Logger: slog.Default(),
	})
	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func withCalories(cmd *cobra.Command, run func(context.Context, *calorie.Repository) error) error {
	ctx := cmd.Context()
	return withStore(func(kv store.KV) error {
		repo, err := openCalories(ctx, kv)
		if err != nil {
			return err
		}
		return run(ctx, repo)
	})
}

func withTodos(cmd *cobra.Command, run func(context.Context, *todo.Repository) error) error {
	ctx := cmd.Context()
	return withStore(func(kv store.KV) error {
		repo := todo.New(todo.Options{
			Store:          kv,
			Logger:         slog.Default(),
			HistorySize:    cfg.HistorySize,
			PersistHistory: true,
		})
		if err := repo.Initialize(ctx); err != nil {
			return err
		}
		return run(ctx, repo)
	})
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now(), nil
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if timeStr == "" {
		return service.ParseDate(date, time.Local)
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func parseDateOrToday(date string) (time.Time, error) {
	if strings.TrimSpace(date) == "" {
		return time.Now(), nil
	}
	return service.ParseDate(date, time.Local)
}

// optionalFloat returns &v only when the flag was set on the command line.
func optionalFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return model.Float(v)
}

func parseSettingValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func settingFloat(repo *calorie.Repository, key string, fallback float64) float64 {
	v, ok := repo.Setting(key)
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return fallback
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatMacro(v *float64) string {
	return service.FormatNutritionValue(v, "g")
}

func splitIDs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if id := strings.TrimSpace(part); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func parseMealType(s string) (model.MealType, error) {
	m := model.MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("invalid meal type %q (expected breakfast, lunch, dinner, or snack)", s)
	}
	return m, nil
}
