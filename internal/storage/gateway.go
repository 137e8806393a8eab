package storage

import (
	"encoding/json"

	"todo/internal/task"
)

const (
	KeyTasks = "tasks"
	KeyTheme = "theme"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Gateway reads and writes the task collection and theme preference.
type Gateway struct {
	kv KV
}

func NewGateway(kv KV) *Gateway {
	return &Gateway{kv: kv}
}

// LoadTasks returns the stored collection. An absent or malformed value is
// an empty collection, not an error; only a failing read returns *Error.
func (g *Gateway) LoadTasks() ([]task.Task, error) {
	raw, ok, err := g.kv.Get(KeyTasks)
	if err != nil {
		return nil, &Error{Op: "read", Key: KeyTasks, Err: err}
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, nil
	}
	return sanitize(tasks), nil
}

func (g *Gateway) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return &Error{Op: "encode", Key: KeyTasks, Err: err}
	}
	if err := g.kv.Set(KeyTasks, string(data)); err != nil {
		return &Error{Op: "write", Key: KeyTasks, Err: err}
	}
	return nil
}

// LoadThemePreference falls back to light for absent or unknown values.
func (g *Gateway) LoadThemePreference() (Theme, error) {
	raw, ok, err := g.kv.Get(KeyTheme)
	if err != nil {
		return ThemeLight, &Error{Op: "read", Key: KeyTheme, Err: err}
	}
	if ok && Theme(raw) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (g *Gateway) SaveThemePreference(t Theme) error {
	if t != ThemeDark {
		t = ThemeLight
	}
	if err := g.kv.Set(KeyTheme, string(t)); err != nil {
		return &Error{Op: "write", Key: KeyTheme, Err: err}
	}
	return nil
}

// sanitize drops records that break collection invariants: empty text and
// duplicate ids. Unknown priorities are coerced to medium.
func sanitize(in []task.Task) []task.Task {
	seen := make(map[int64]struct{}, len(in))
	out := make([]task.Task, 0, len(in))
	for _, t := range in {
		text, err := task.NormalizeText(t.Text)
		if err != nil {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		t.Text = text
		if !t.Priority.Valid() {
			t.Priority = task.PriorityMedium
		}
		if t.DueDate != nil && t.DueDate.IsZero() {
			t.DueDate = nil
		}
		out = append(out, t)
	}
	return out
}
