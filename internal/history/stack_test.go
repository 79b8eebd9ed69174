package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reidsolon/tracker/internal/history"
)

func TestNewStackIsEmpty(t *testing.T) {
	t.Parallel()
	s := history.New[int](0)
	assert.Equal(t, -1, s.Index())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	_, ok := s.Undo()
	assert.False(t, ok)
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestSingleRecordCannotUndo(t *testing.T) {
	t.Parallel()
	s := history.New[string](10)
	s.Record("a")
	assert.Equal(t, 0, s.Index())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestUndoRedoWalksSnapshots(t *testing.T) {
	t.Parallel()
	s := history.New[string](10)
	s.Record("a")
	s.Record("b")
	s.Record("c")
	require.True(t, s.CanUndo())

	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", got)

	got, ok = s.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", got)
	assert.False(t, s.CanUndo())

	got, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, "b", got)
	assert.True(t, s.CanRedo())
}

func TestRecordAfterUndoDropsRedoTail(t *testing.T) {
	t.Parallel()
	s := history.New[string](10)
	s.Record("a")
	s.Record("b")
	s.Record("c")
	_, _ = s.Undo()
	_, _ = s.Undo()

	s.Record("d")
	assert.False(t, s.CanRedo())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "d"}, s.State().Snapshots)
}

func TestRecordEvictsOldestBeyondBound(t *testing.T) {
	t.Parallel()
	s := history.New[int](3)
	for i := 1; i <= 5; i++ {
		s.Record(i)
		assert.LessOrEqual(t, s.Len(), 3)
	}
	st := s.State()
	assert.Equal(t, []int{3, 4, 5}, st.Snapshots)
	assert.Equal(t, 2, st.Index)
	assert.Equal(t, st.Snapshots, s.Snapshots())
}

func TestElevenRecordsKeepTenWithIndexNine(t *testing.T) {
	t.Parallel()
	s := history.New[int](10)
	for i := 0; i < 11; i++ {
		s.Record(i)
	}
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 9, s.Index())
}

func TestRestoreClampsIndexAndTrims(t *testing.T) {
	t.Parallel()
	s := history.Restore(2, history.State[int]{Snapshots: []int{1, 2, 3}, Index: 2})
	assert.Equal(t, []int{2, 3}, s.State().Snapshots)
	assert.Equal(t, 1, s.Index())

	empty := history.Restore(5, history.State[int]{Index: 4})
	assert.Equal(t, -1, empty.Index())

	clamped := history.Restore(5, history.State[int]{Snapshots: []int{1}, Index: 7})
	assert.Equal(t, 0, clamped.Index())
}
