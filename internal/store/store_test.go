package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reidsolon/tracker/internal/store"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type brokenKV struct {
	*store.Memory
	err error
}

func (b brokenKV) Put(context.Context, string, []byte) error { return b.err }
func (b brokenKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, b.err
}

func TestSaveAndLoadCollection(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()

	in := []record{{ID: "1", Name: "apple"}, {ID: "2", Name: "pear"}}
	require.NoError(t, store.SaveCollection(ctx, kv, store.NamespaceFoods, in))

	out := store.LoadCollection[[]record](ctx, kv, store.NamespaceFoods)
	assert.Equal(t, in, out)
}

func TestLoadCollectionMissingIsEmpty(t *testing.T) {
	t.Parallel()
	out := store.LoadCollection[[]record](context.Background(), store.NewMemory(), store.NamespaceEntries)
	assert.Empty(t, out)
}

func TestLoadCollectionMalformedIsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, store.NamespaceGoals, []byte("{not json")))

	out := store.LoadCollection[[]record](ctx, kv, store.NamespaceGoals)
	assert.Empty(t, out)
}

func TestLoadCollectionReadFailureIsEmpty(t *testing.T) {
	t.Parallel()
	kv := brokenKV{Memory: store.NewMemory(), err: errors.New("unavailable")}
	out := store.LoadCollection[map[string]any](context.Background(), kv, store.NamespaceSettings)
	assert.Nil(t, out)
}

func TestSaveCollectionWrapsWriteFailure(t *testing.T) {
	t.Parallel()
	cause := errors.New("quota exceeded")
	kv := brokenKV{Memory: store.NewMemory(), err: cause}

	err := store.SaveCollection(context.Background(), kv, store.NamespaceTodos, []record{{ID: "1"}})
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
	assert.Equal(t, store.NamespaceTodos, se.Key)
	assert.ErrorIs(t, err, cause)
}

func TestMemorySizeSumsValueLengths(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, "a", []byte("12345")))
	require.NoError(t, kv.Put(ctx, "b", []byte("123")))

	size, err := kv.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	require.NoError(t, store.Remove(ctx, kv, "a"))
	size, err = kv.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
}

func TestMemoryReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	value := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", value))
	value[0] = 'z'

	got, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))
}
