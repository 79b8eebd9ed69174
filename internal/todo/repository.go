// Package todo manages a todo list with bounded undo/redo history.
package todo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reidsolon/tracker/internal/history"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
	"github.com/reidsolon/tracker/internal/store"
)

type Options struct {
	Store       store.KV
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
	HistorySize int
	// PersistHistory saves the undo history alongside the list so it
	// survives a restart.
	PersistHistory bool
}

type CreateInput struct {
	Title       string
	Description string
	Priority    model.Priority
	Category    string
	Completed   bool
}

type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Category    *string
	Completed   *bool
}

// Repository holds the todo list in memory and writes every mutation through
// to its store. It is not safe for concurrent use.
type Repository struct {
	kv             store.KV
	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
	historySize    int
	persistHistory bool

	initialized bool
	todos       []model.TodoItem
	history     *history.Stack[[]model.TodoItem]
	lastUpdated time.Time
	err         error
}

func New(opts Options) *Repository {
	r := &Repository{
		kv:             opts.Store,
		logger:         opts.Logger,
		now:            opts.Now,
		newID:          opts.NewID,
		historySize:    opts.HistorySize,
		persistHistory: opts.PersistHistory,
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
	r.history = history.New[[]model.TodoItem](r.historySize)
	return r
}

// Initialize loads the list, and the history when persisted. Later calls are no-ops.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.initialized {
		return nil
	}
	r.todos = store.LoadCollection[[]model.TodoItem](ctx, r.kv, store.NamespaceTodos)
	if r.persistHistory {
		st := store.LoadCollection[history.State[[]model.TodoItem]](ctx, r.kv, store.NamespaceTodoHistory)
		r.history = history.Restore(r.historySize, st)
	}
	r.initialized = true
	return nil
}

func (r *Repository) Err() error {
	return r.err
}

func (r *Repository) ClearError() {
	r.err = nil
}

func (r *Repository) LastUpdated() time.Time {
	return r.lastUpdated
}

func (r *Repository) fail(err error) error {
	r.err = err
	return err
}

// record snapshots the current list before a mutation.
func (r *Repository) record() {
	r.history.Record(slices.Clone(r.todos))
}

func (r *Repository) persist(ctx context.Context) error {
	r.lastUpdated = r.now()
	errs := []error{store.SaveCollection(ctx, r.kv, store.NamespaceTodos, r.todos)}
	if r.persistHistory {
		errs = append(errs, store.SaveCollection(ctx, r.kv, store.NamespaceTodoHistory, r.history.State()))
	}
	if err := errors.Join(errs...); err != nil {
		r.logger.Error("persist todos failed", "error", err)
		return r.fail(err)
	}
	return nil
}

func (r *Repository) index(id string) int {
	return slices.IndexFunc(r.todos, func(t model.TodoItem) bool { return t.ID == id })
}

func (r *Repository) Todos() []model.TodoItem {
	return slices.Clone(r.todos)
}

func (r *Repository) Get(id string) (model.TodoItem, bool) {
	i := r.index(id)
	if i < 0 {
		return model.TodoItem{}, false
	}
	return r.todos[i], true
}

// Add validates in, records history and prepends the new item.
func (r *Repository) Add(ctx context.Context, in CreateInput) (model.TodoItem, error) {
	now := r.now()
	item := model.TodoItem{
		ID:          r.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Completed:   in.Completed,
		Priority:    in.Priority,
		Category:    strings.TrimSpace(in.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if item.Priority == "" {
		item.Priority = model.PriorityMedium
	}
	if err := service.ValidateTodo(item); err != nil {
		return model.TodoItem{}, r.fail(err)
	}

	r.record()
	r.todos = append([]model.TodoItem{item}, r.todos...)
	return item, r.persist(ctx)
}

func applyUpdate(item model.TodoItem, in UpdateInput) model.TodoItem {
	if in.Title != nil {
		item.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		item.Description = strings.TrimSpace(*in.Description)
	}
	if in.Priority != nil {
		item.Priority = *in.Priority
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Completed != nil {
		item.Completed = *in.Completed
	}
	return item
}

func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (model.TodoItem, error) {
	i := r.index(id)
	if i < 0 {
		return model.TodoItem{}, r.fail(&service.NotFoundError{Kind: "todo", ID: id})
	}
	item := applyUpdate(r.todos[i], in)
	item.UpdatedAt = r.now()
	if err := service.ValidateTodo(item); err != nil {
		return model.TodoItem{}, r.fail(err)
	}

	r.record()
	r.todos[i] = item
	return item, r.persist(ctx)
}

func (r *Repository) Toggle(ctx context.Context, id string) (model.TodoItem, error) {
	i := r.index(id)
	if i < 0 {
		return model.TodoItem{}, r.fail(&service.NotFoundError{Kind: "todo", ID: id})
	}
	completed := !r.todos[i].Completed
	return r.Update(ctx, id, UpdateInput{Completed: &completed})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	i := r.index(id)
	if i < 0 {
		return r.fail(&service.NotFoundError{Kind: "todo", ID: id})
	}
	r.record()
	r.todos = slices.Delete(r.todos, i, i+1)
	return r.persist(ctx)
}

// BatchUpdate applies in to every listed id as one undoable step. Unknown ids
// and updates that would make an item invalid are skipped.
func (r *Repository) BatchUpdate(ctx context.Context, ids []string, in UpdateInput) (int, error) {
	r.record()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	now := r.now()
	updated := 0
	for i, item := range r.todos {
		if !wanted[item.ID] {
			continue
		}
		next := applyUpdate(item, in)
		next.UpdatedAt = now
		if err := service.ValidateTodo(next); err != nil {
			r.logger.Warn("skipping todo update", "todo_id", item.ID, "error", err)
			continue
		}
		r.todos[i] = next
		updated++
	}
	return updated, r.persist(ctx)
}

func (r *Repository) BatchDelete(ctx context.Context, ids []string) (int, error) {
	r.record()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	before := len(r.todos)
	r.todos = slices.DeleteFunc(r.todos, func(t model.TodoItem) bool { return wanted[t.ID] })
	return before - len(r.todos), r.persist(ctx)
}

// Clear empties the list and removes it from the store.
func (r *Repository) Clear(ctx context.Context) error {
	r.record()
	r.todos = nil
	r.lastUpdated = r.now()
	if err := store.Remove(ctx, r.kv, store.NamespaceTodos); err != nil {
		r.logger.Error("clear todos failed", "error", err)
		return r.fail(err)
	}
	if r.persistHistory {
		if err := store.SaveCollection(ctx, r.kv, store.NamespaceTodoHistory, r.history.State()); err != nil {
			return r.fail(err)
		}
	}
	return nil
}

// Undo restores the snapshot one step back in history.
func (r *Repository) Undo(ctx context.Context) (bool, error) {
	snapshot, ok := r.history.Undo()
	if !ok {
		return false, nil
	}
	r.todos = slices.Clone(snapshot)
	return true, r.persist(ctx)
}

func (r *Repository) Redo(ctx context.Context) (bool, error) {
	snapshot, ok := r.history.Redo()
	if !ok {
		return false, nil
	}
	r.todos = slices.Clone(snapshot)
	return true, r.persist(ctx)
}

func (r *Repository) CanUndo() bool {
	return r.history.CanUndo()
}

func (r *Repository) CanRedo() bool {
	return r.history.CanRedo()
}

func (r *Repository) Export() ([]byte, error) {
	b, err := json.MarshalIndent(nonNil(r.todos), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode todos: %w", err)
	}
	return b, nil
}

// Import replaces the list with a JSON array of todos.
func (r *Repository) Import(ctx context.Context, raw []byte) (int, error) {
	var items []model.TodoItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, r.fail(fmt.Errorf("invalid todo data: %w", err))
	}
	if items == nil {
		return 0, r.fail(fmt.Errorf("invalid todo data: expected a JSON array"))
	}
	r.record()
	r.todos = items
	return len(items), r.persist(ctx)
}

func nonNil(items []model.TodoItem) []model.TodoItem {
	if items == nil {
		return []model.TodoItem{}
	}
	return items
}
