// Package view derives the ordered, filtered task sequence shown to the user
// and the aggregate counts over the whole collection. Nothing here mutates
// its input.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"todo/internal/task"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

func ParseStatusFilter(v string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(v))); f {
	case StatusAll, StatusActive, StatusCompleted:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, active or completed)", v)
}

func (f StatusFilter) keep(t task.Task) bool {
	switch f {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	}
	return true
}

type SortMode string

const (
	SortDefault  SortMode = "default"
	SortDueDate  SortMode = "due-date"
	SortPriority SortMode = "priority"
)

func ParseSortMode(v string) (SortMode, error) {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(v))); m {
	case SortDefault, SortDueDate, SortPriority:
		return m, nil
	case "", "created":
		return SortDefault, nil
	case "due":
		return SortDueDate, nil
	}
	return "", fmt.Errorf("unknown sort %q (want default, due-date or priority)", v)
}

// PrioritySet is a non-empty subset of priorities. The zero value behaves as
// the full set.
type PrioritySet uint8

const (
	prioLow PrioritySet = 1 << iota
	prioMedium
	prioHigh

	AllPriorities = prioLow | prioMedium | prioHigh
)

func bit(p task.Priority) PrioritySet {
	switch p {
	case task.PriorityLow:
		return prioLow
	case task.PriorityMedium:
		return prioMedium
	case task.PriorityHigh:
		return prioHigh
	}
	return 0
}

// NewPrioritySet builds a set from ps; an empty result is the full set.
func NewPrioritySet(ps ...task.Priority) PrioritySet {
	var s PrioritySet
	for _, p := range ps {
		s |= bit(p)
	}
	return s.normalize()
}

func (s PrioritySet) normalize() PrioritySet {
	if s&AllPriorities == 0 {
		return AllPriorities
	}
	return s & AllPriorities
}

func (s PrioritySet) Has(p task.Priority) bool {
	return s.normalize()&bit(p) != 0
}

// Toggle adds or removes p, reverting to the full set instead of becoming empty.
func (s PrioritySet) Toggle(p task.Priority) PrioritySet {
	return (s.normalize() ^ bit(p)).normalize()
}

func (s PrioritySet) Priorities() []task.Priority {
	var out []task.Priority
	for _, p := range task.Priorities {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s PrioritySet) String() string {
	if s.normalize() == AllPriorities {
		return "any"
	}
	names := make([]string, 0, 3)
	for _, p := range s.Priorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, ",")
}

// State is the ephemeral view configuration; it is never persisted.
type State struct {
	Status     StatusFilter
	Priorities PrioritySet
	Sort       SortMode
}

func DefaultState() State {
	return State{Status: StatusAll, Priorities: AllPriorities, Sort: SortDefault}
}

// Item is a task plus display-only derived flags.
type Item struct {
	task.Task
	Overdue bool
}

// Compute filters by status, then by priority, then sorts by the state's
// sort mode. Sorting is stable so equal keys keep their collection order.
// now decides which items are overdue.
func Compute(tasks []task.Task, st State, now time.Time) []Item {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		if !st.Status.keep(t) || !st.Priorities.Has(t.Priority) {
			continue
		}
		items = append(items, Item{Task: t, Overdue: IsOverdue(t, now)})
	}

	switch st.Sort {
	case SortDueDate:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].DueDate, items[j].DueDate
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.Before(*b)
		})
	case SortPriority:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Priority.Rank() > items[j].Priority.Rank()
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
	return items
}

// IsOverdue reports whether an active task's due date is before the start of
// the day containing now.
func IsOverdue(t task.Task, now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(task.DateOf(now))
}
