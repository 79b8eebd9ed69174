// Package store persists named collections as JSON values in a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

const (
	NamespaceFoods       = "calorie-tracker-foods"
	NamespaceEntries     = "calorie-tracker-entries"
	NamespaceGoals       = "calorie-tracker-goals"
	NamespaceSettings    = "calorie-tracker-settings"
	NamespaceTodos       = "todos"
	NamespaceTodoHistory = "todos-history"
)

// Namespaces lists every key the application writes.
var Namespaces = []string{
	NamespaceFoods,
	NamespaceEntries,
	NamespaceGoals,
	NamespaceSettings,
	NamespaceTodos,
	NamespaceTodoHistory,
}

// KV is a byte-oriented key-value backend.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Size(ctx context.Context) (int64, error)
}

// Error reports a failed storage operation on a namespace.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SaveCollection serializes v as JSON under key.
func SaveCollection[T any](ctx context.Context, kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &Error{Op: "encode", Key: key, Err: err}
	}
	if err := kv.Put(ctx, key, raw); err != nil {
		return &Error{Op: "write", Key: key, Err: err}
	}
	return nil
}

// LoadCollection decodes the value under key. A missing, unreadable or
// malformed value yields the zero T; read and decode failures are logged.
func LoadCollection[T any](ctx context.Context, kv KV, key string) T {
	var zero T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		slog.Warn("read namespace failed", "namespace", key, "error", err)
		return zero
	}
	if !ok || len(raw) == 0 {
		return zero
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("namespace holds malformed data", "namespace", key, "error", err)
		return zero
	}
	return out
}

func Remove(ctx context.Context, kv KV, key string) error {
	if err := kv.Delete(ctx, key); err != nil {
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}
