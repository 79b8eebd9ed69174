package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities low=1, medium=2, high=3. Unset or unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

type TodoItem struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	Priority    Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type TodoStats struct {
	Total          int              `json:"total"`
	Completed      int              `json:"completed"`
	Pending        int              `json:"pending"`
	HighPriority   int              `json:"highPriority"`
	Categories     int              `json:"categories"`
	CompletionRate int              `json:"completionRate"`
	PriorityStats  map[Priority]int `json:"priorityStats"`
}
