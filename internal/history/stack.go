// Package history keeps a bounded list of state snapshots with an undo cursor.
package history

const DefaultMaxSize = 10

// Stack records snapshots of T. Callers own snapshot immutability: a snapshot
// must not share mutable memory with live state.
type Stack[T any] struct {
	snapshots []T
	index     int
	maxSize   int
}

// State is the serializable form of a Stack.
type State[T any] struct {
	Snapshots []T `json:"snapshots"`
	Index     int `json:"index"`
}

func New[T any](maxSize int) *Stack[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stack[T]{index: -1, maxSize: maxSize}
}

// Restore rebuilds a Stack from st, trimming the oldest snapshots beyond
// maxSize and clamping the cursor into range.
func Restore[T any](maxSize int, st State[T]) *Stack[T] {
	s := New[T](maxSize)
	snapshots := st.Snapshots
	index := st.Index
	if over := len(snapshots) - s.maxSize; over > 0 {
		snapshots = snapshots[over:]
		index -= over
	}
	s.snapshots = append([]T(nil), snapshots...)
	switch {
	case len(s.snapshots) == 0:
		s.index = -1
	case index < 0:
		s.index = 0
	case index > len(s.snapshots)-1:
		s.index = len(s.snapshots) - 1
	default:
		s.index = index
	}
	return s
}

// Record discards any redo tail, appends snapshot and evicts the oldest entry
// when the bound is exceeded. The cursor only advances when nothing was evicted.
func (s *Stack[T]) Record(snapshot T) {
	if s.index < len(s.snapshots)-1 {
		s.snapshots = s.snapshots[:s.index+1]
	}
	s.snapshots = append(s.snapshots, snapshot)
	if len(s.snapshots) > s.maxSize {
		s.snapshots = append([]T(nil), s.snapshots[1:]...)
		return
	}
	s.index++
}

func (s *Stack[T]) CanUndo() bool {
	return s.index > 0
}

func (s *Stack[T]) CanRedo() bool {
	return s.index < len(s.snapshots)-1
}

// Undo moves the cursor back one step and returns the snapshot there.
func (s *Stack[T]) Undo() (T, bool) {
	var zero T
	if !s.CanUndo() {
		return zero, false
	}
	s.index--
	return s.snapshots[s.index], true
}

func (s *Stack[T]) Redo() (T, bool) {
	var zero T
	if !s.CanRedo() {
		return zero, false
	}
	s.index++
	return s.snapshots[s.index], true
}

func (s *Stack[T]) Len() int {
	return len(s.snapshots)
}

func (s *Stack[T]) Index() int {
	return s.index
}

// Snapshots returns the recorded snapshots, oldest first.
func (s *Stack[T]) Snapshots() []T {
	return append([]T(nil), s.snapshots...)
}

func (s *Stack[T]) State() State[T] {
	return State[T]{Snapshots: append([]T(nil), s.snapshots...), Index: s.index}
}
