// Package controller turns user intents into store mutations and pushes the
// recomputed view to a render boundary.
package controller

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"todo/internal/storage"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/view"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "info"
}

// Notice is a user-visible message. Transient notices are dismissed by the
// boundary after a short delay.
type Notice struct {
	Level     Level
	Text      string
	Transient bool
}

// Empty tells a boundary why the item list is empty.
type Empty int

const (
	EmptyNone Empty = iota
	// EmptyNoTasks means the collection itself is empty.
	EmptyNoTasks
	// EmptyNoMatch means tasks exist but none pass the current filters.
	EmptyNoMatch
)

type Snapshot struct {
	Items []view.Item
	Stats view.Stats
	State view.State
	Theme storage.Theme
	Empty Empty
}

// Boundary is the rendering side. Confirm must not block: it shows the
// prompt and calls onConfirm later, only if the user accepts.
type Boundary interface {
	Render(Snapshot)
	Notify(Notice)
	Confirm(title, message string, onConfirm func())
}

// ThemeStore persists the theme preference.
type ThemeStore interface {
	LoadThemePreference() (storage.Theme, error)
	SaveThemePreference(storage.Theme) error
}

type Controller struct {
	store  *store.Store
	themes ThemeStore
	ui     Boundary
	state  view.State
	theme  storage.Theme
	now    func() time.Time
	log    *log.Logger
}

type Option func(*Controller)

func WithState(st view.State) Option {
	return func(c *Controller) { c.state = st }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// New loads the theme preference. A failed load is reported through the
// boundary and the light theme is used.
func New(st *store.Store, themes ThemeStore, ui Boundary, opts ...Option) *Controller {
	c := &Controller{
		store:  st,
		themes: themes,
		ui:     ui,
		state:  view.DefaultState(),
		now:    time.Now,
		log:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	theme, err := themes.LoadThemePreference()
	c.theme = theme
	if err != nil {
		c.storageFailed("load theme", err)
	}
	return c
}

func (c *Controller) State() view.State {
	return c.state
}

func (c *Controller) Theme() storage.Theme {
	return c.theme
}

// Snapshot computes the current view without rendering it.
func (c *Controller) Snapshot() Snapshot {
	tasks := c.store.Tasks()
	items := view.Compute(tasks, c.state, c.now())
	snap := Snapshot{
		Items: items,
		Stats: view.ComputeStats(tasks),
		State: c.state,
		Theme: c.theme,
	}
	switch {
	case len(tasks) == 0:
		snap.Empty = EmptyNoTasks
	case len(items) == 0:
		snap.Empty = EmptyNoMatch
	}
	return snap
}

func (c *Controller) Refresh() {
	c.ui.Render(c.Snapshot())
}

// Add creates a task. The returned error is the one already reported to the
// boundary; on a storage failure the task is still returned and kept.
func (c *Controller) Add(text string, due *task.Date, priority task.Priority) (task.Task, error) {
	t, err := c.store.Add(text, due, priority)
	if errors.Is(err, task.ErrEmptyText) {
		c.invalid(err)
		return t, err
	}
	c.Refresh()
	if err != nil {
		c.storageFailed("add", err)
		return t, err
	}
	c.log.Printf("added task %d", t.ID)
	return t, nil
}

func (c *Controller) Toggle(id int64) error {
	if _, ok := c.store.Get(id); !ok {
		return nil
	}
	err := c.store.ToggleCompletion(id)
	c.Refresh()
	if err != nil {
		c.storageFailed("toggle", err)
	}
	return err
}

func (c *Controller) Edit(id int64, text string) error {
	if _, ok := c.store.Get(id); !ok {
		return nil
	}
	err := c.store.Edit(id, text)
	if errors.Is(err, task.ErrEmptyText) {
		c.invalid(err)
		return err
	}
	c.Refresh()
	if err != nil {
		c.storageFailed("edit", err)
	}
	return err
}

// Lookup returns a task by id without changing anything.
func (c *Controller) Lookup(id int64) (task.Task, bool) {
	return c.store.Get(id)
}

// Delete asks for confirmation before removing the task.
func (c *Controller) Delete(id int64) {
	t, ok := c.store.Get(id)
	if !ok {
		return
	}
	c.ui.Confirm("Delete task", fmt.Sprintf("Delete %q? This cannot be undone.", t.Text), func() {
		err := c.store.Delete(id)
		c.Refresh()
		if err != nil {
			c.storageFailed("delete", err)
			return
		}
		c.log.Printf("deleted task %d", id)
		c.ui.Notify(Notice{Level: LevelInfo, Text: "Task deleted", Transient: true})
	})
}

// ClearCompleted asks for confirmation unless there is nothing to clear.
func (c *Controller) ClearCompleted() {
	pending := view.ComputeStats(c.store.Tasks()).Completed
	if pending == 0 {
		c.ui.Notify(Notice{Level: LevelInfo, Text: "No completed tasks to clear", Transient: true})
		return
	}
	msg := fmt.Sprintf("Clear %d completed %s?", pending, plural(pending, "task", "tasks"))
	c.ui.Confirm("Clear completed", msg, func() {
		n, err := c.store.ClearCompleted()
		c.Refresh()
		if err != nil {
			c.storageFailed("clear completed", err)
			return
		}
		c.log.Printf("cleared %d completed tasks", n)
		c.ui.Notify(Notice{Level: LevelInfo, Text: fmt.Sprintf("Cleared %d completed %s", n, plural(n, "task", "tasks")), Transient: true})
	})
}

func (c *Controller) SetStatusFilter(f view.StatusFilter) {
	c.state.Status = f
	c.Refresh()
}

// TogglePriority shows or hides one priority; hiding the last visible one
// shows all of them again.
func (c *Controller) TogglePriority(p task.Priority) {
	c.state.Priorities = c.state.Priorities.Toggle(p)
	c.Refresh()
}

func (c *Controller) SetPriorities(s view.PrioritySet) {
	c.state.Priorities = view.NewPrioritySet(s.Priorities()...)
	c.Refresh()
}

func (c *Controller) SetSort(m view.SortMode) {
	c.state.Sort = m
	c.Refresh()
}

func (c *Controller) ToggleTheme() {
	c.SetTheme(c.theme.Toggle())
}

// SetTheme applies the theme immediately; a failed save only costs durability.
func (c *Controller) SetTheme(t storage.Theme) {
	c.theme = t
	err := c.themes.SaveThemePreference(t)
	c.Refresh()
	if err != nil {
		c.storageFailed("save theme", err)
	}
}

// ReportLoadError surfaces a failure from loading the task collection.
func (c *Controller) ReportLoadError(err error) {
	if err != nil {
		c.storageFailed("load tasks", err)
	}
}

func (c *Controller) invalid(err error) {
	c.ui.Notify(Notice{Level: LevelError, Text: capitalize(err.Error()) + "!", Transient: true})
}

func (c *Controller) storageFailed(op string, err error) {
	c.log.Printf("%s: %v", op, err)
	cause := err
	var se *storage.Error
	if errors.As(err, &se) {
		cause = se.Err
	}
	c.ui.Notify(Notice{
		Level: LevelWarn,
		Text:  fmt.Sprintf("Storage failed during %s: %v. Changes are kept for this session only.", op, cause),
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
