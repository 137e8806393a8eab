// Package store owns the authoritative in-memory task collection and writes
// the whole collection through the persistence gateway after every mutation.
package store

import (
	"time"

	"todo/internal/task"
)

// Persister is the part of the storage gateway the store needs.
type Persister interface {
	LoadTasks() ([]task.Task, error)
	SaveTasks([]task.Task) error
}

type Store struct {
	p      Persister
	tasks  []task.Task
	now    func() time.Time
	lastID int64
}

type Option func(*Store)

// WithClock replaces time.Now for creation timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New loads the collection once. When the load fails the store starts empty
// and the returned error describes the failure; the store is still usable.
func New(p Persister, opts ...Option) (*Store, error) {
	s := &Store{p: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	tasks, err := p.LoadTasks()
	s.tasks = tasks
	for _, t := range s.tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s, err
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id int64) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new task. On a persistence failure the task stays in memory
// and is returned together with the error.
func (s *Store) Add(text string, due *task.Date, priority task.Priority) (task.Task, error) {
	text, err := task.NormalizeText(text)
	if err != nil {
		return task.Task{}, err
	}
	if !priority.Valid() {
		priority = task.PriorityMedium
	}
	now := s.now()
	t := task.Task{
		ID:        s.nextID(now),
		Text:      text,
		Priority:  priority,
		CreatedAt: now,
	}
	if due != nil {
		d := *due
		t.DueDate = &d
	}
	s.tasks = append(s.tasks, t)
	return t, s.save()
}

// ToggleCompletion flips completed. Unknown ids are ignored.
func (s *Store) ToggleCompletion(id int64) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save()
}

// Edit replaces the text of a task. Unknown ids are ignored.
func (s *Store) Edit(id int64, text string) error {
	text, err := task.NormalizeText(text)
	if err != nil {
		return err
	}
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Text = text
	return s.save()
}

// Delete removes a task. Unknown ids are ignored.
func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

// ClearCompleted removes every completed task and returns how many were
// removed. The collection is written even when nothing was removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return removed, s.save()
}

func (s *Store) save() error {
	return s.p.SaveTasks(s.Tasks())
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives the id from the creation time in milliseconds, bumping it
// past the largest id seen so ids stay unique within the collection.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
