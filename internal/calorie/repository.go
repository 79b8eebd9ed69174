// Package calorie owns the food, entry and goal collections and keeps them
// in sync with a store.KV.
package calorie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/store"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "uninitialized"
}

// SeedProvider supplies the starter dataset for an empty store.
type SeedProvider interface {
	InitialData(now time.Time) model.Dataset
}

type EventKind string

const (
	EventFoodCreated  EventKind = "food.created"
	EventFoodUpdated  EventKind = "food.updated"
	EventFoodDeleted  EventKind = "food.deleted"
	EventEntryCreated EventKind = "entry.created"
	EventEntryUpdated EventKind = "entry.updated"
	EventEntryDeleted EventKind = "entry.deleted"
	EventGoalCreated  EventKind = "goal.created"
	EventGoalUpdated  EventKind = "goal.updated"
	EventGoalDeleted  EventKind = "goal.deleted"
	EventReset        EventKind = "reset"
)

type Event struct {
	Kind EventKind
	ID   string
}

type Options struct {
	Store  store.KV
	Seed   SeedProvider
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// Repository holds the calorie collections in memory and writes every
// mutation through to its store. It is not safe for concurrent use.
type Repository struct {
	kv     store.KV
	seed   SeedProvider
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	state     State
	foods     []model.FoodItem
	entries   []model.CalorieEntry
	goals     []model.CalorieGoal
	settings  map[string]any
	err       error
	listeners map[int]func(Event)
	nextSub   int
}

func New(opts Options) *Repository {
	r := &Repository{
		kv:        opts.Store,
		seed:      opts.Seed,
		logger:    opts.Logger,
		now:       opts.Now,
		newID:     opts.NewID,
		settings:  map[string]any{},
		listeners: map[int]func(Event){},
	}
	if r.kv == nil {
		r.kv = store.NewMemory()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	return r
}

// Initialize loads every namespace and seeds an empty food catalog. It is a
// no-op once the repository is ready.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.state != StateUninitialized {
		return nil
	}
	r.state = StateLoading
	r.err = nil

	r.foods = store.LoadCollection[[]model.FoodItem](ctx, r.kv, store.NamespaceFoods)
	r.entries = store.LoadCollection[[]model.CalorieEntry](ctx, r.kv, store.NamespaceEntries)
	r.goals = store.LoadCollection[[]model.CalorieGoal](ctx, r.kv, store.NamespaceGoals)
	r.settings = store.LoadCollection[map[string]any](ctx, r.kv, store.NamespaceSettings)
	if r.settings == nil {
		r.settings = map[string]any{}
	}

	if len(r.foods) == 0 && r.seed != nil {
		if err := r.applySeed(ctx); err != nil {
			r.state = StateUninitialized
			return r.fail(fmt.Errorf("initialize calorie data: %w", err))
		}
	}

	r.state = StateReady
	r.logger.Debug("calorie repository ready",
		"foods", len(r.foods), "entries", len(r.entries), "goals", len(r.goals))
	return nil
}

func (r *Repository) applySeed(ctx context.Context) error {
	data := r.seed.InitialData(r.now())
	r.foods = data.FoodItems
	r.entries = data.CalorieEntries
	r.goals = data.CalorieGoals
	r.logger.Info("seeded starter data", "foods", len(r.foods), "entries", len(r.entries))
	return errors.Join(
		store.SaveCollection(ctx, r.kv, store.NamespaceFoods, r.foods),
		store.SaveCollection(ctx, r.kv, store.NamespaceEntries, r.entries),
		store.SaveCollection(ctx, r.kv, store.NamespaceGoals, r.goals),
	)
}

func (r *Repository) State() State {
	return r.state
}

// Err returns the error recorded by the most recent failed operation.
func (r *Repository) Err() error {
	return r.err
}

func (r *Repository) ClearError() {
	r.err = nil
}

// Subscribe registers fn for change events and returns a function that removes it.
func (r *Repository) Subscribe(fn func(Event)) func() {
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	return func() { delete(r.listeners, id) }
}

func (r *Repository) emit(kind EventKind, id string) {
	ev := Event{Kind: kind, ID: id}
	for _, fn := range r.listeners {
		fn(ev)
	}
}

func (r *Repository) fail(err error) error {
	r.err = err
	return err
}

func (r *Repository) persistFoods(ctx context.Context) error {
	return r.persist(ctx, store.NamespaceFoods, r.foods)
}

func (r *Repository) persistEntries(ctx context.Context) error {
	return r.persist(ctx, store.NamespaceEntries, r.entries)
}

func (r *Repository) persistGoals(ctx context.Context) error {
	return r.persist(ctx, store.NamespaceGoals, r.goals)
}

func (r *Repository) persist(ctx context.Context, ns string, v any) error {
	if err := store.SaveCollection(ctx, r.kv, ns, v); err != nil {
		r.logger.Error("persist collection failed", "namespace", ns, "error", err)
		return r.fail(err)
	}
	return nil
}

// Foods returns a deep copy of the food collection.
func (r *Repository) Foods() []model.FoodItem {
	return cloneFoods(r.foods)
}

func (r *Repository) Entries() []model.CalorieEntry {
	return slices.Clone(r.entries)
}

func (r *Repository) Goals() []model.CalorieGoal {
	out := make([]model.CalorieGoal, len(r.goals))
	for i, g := range r.goals {
		out[i] = g.Clone()
	}
	return out
}

func cloneFoods(foods []model.FoodItem) []model.FoodItem {
	out := make([]model.FoodItem, len(foods))
	for i, f := range foods {
		out[i] = f.Clone()
	}
	return out
}

func (r *Repository) Food(id string) (model.FoodItem, bool) {
	i := r.foodIndex(id)
	if i < 0 {
		return model.FoodItem{}, false
	}
	return r.foods[i].Clone(), true
}

func (r *Repository) Entry(id string) (model.CalorieEntry, bool) {
	i := r.entryIndex(id)
	if i < 0 {
		return model.CalorieEntry{}, false
	}
	return r.entries[i], true
}

func (r *Repository) Goal(id string) (model.CalorieGoal, bool) {
	i := r.goalIndex(id)
	if i < 0 {
		return model.CalorieGoal{}, false
	}
	return r.goals[i].Clone(), true
}

func (r *Repository) foodIndex(id string) int {
	return slices.IndexFunc(r.foods, func(f model.FoodItem) bool { return f.ID == id })
}

func (r *Repository) entryIndex(id string) int {
	return slices.IndexFunc(r.entries, func(e model.CalorieEntry) bool { return e.ID == id })
}

func (r *Repository) goalIndex(id string) int {
	return slices.IndexFunc(r.goals, func(g model.CalorieGoal) bool { return g.ID == id })
}

// StorageSize reports the total bytes held by the backing store.
func (r *Repository) StorageSize(ctx context.Context) (int64, error) {
	size, err := r.kv.Size(ctx)
	if err != nil {
		return 0, r.fail(&store.Error{Op: "size", Err: err})
	}
	return size, nil
}

// ClearAllData removes every calorie namespace from the store and empties
// the repository. The next Initialize reseeds.
func (r *Repository) ClearAllData(ctx context.Context) error {
	for _, ns := range []string{store.NamespaceFoods, store.NamespaceEntries, store.NamespaceGoals, store.NamespaceSettings} {
		if err := store.Remove(ctx, r.kv, ns); err != nil {
			r.logger.Error("clear namespace failed", "namespace", ns, "error", err)
			return r.fail(err)
		}
	}
	r.foods = nil
	r.entries = nil
	r.goals = nil
	r.settings = map[string]any{}
	r.state = StateUninitialized
	r.emit(EventReset, "")
	return nil
}
