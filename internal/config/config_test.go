package config

import (
	"os"
	"path/filepath"
	"testing"

	"todo/internal/task"
	"todo/internal/view"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file to be written: %v", err)
	}
	if want := filepath.Join(dir, "todo", DefaultDBName); cfg.DBPath != want {
		t.Errorf("Expected db path %s, got %s", want, cfg.DBPath)
	}
	if cfg.Keys.Add != "a" || cfg.NoticeSeconds != 3 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if again.DBPath != cfg.DBPath || again.Keys != cfg.Keys {
		t.Errorf("Reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadOrCreateOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
db_path = "/tmp/tasks.db"
default_filter = "active"
default_sort = "priority"
default_priority = "high"

[keys]
add = "n"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.DBPath != "/tmp/tasks.db" {
		t.Errorf("Expected absolute db path kept, got %s", cfg.DBPath)
	}
	if cfg.Keys.Add != "n" || cfg.Keys.Quit != "q" {
		t.Errorf("Expected merged keymap, got %+v", cfg.Keys)
	}
	st := cfg.ViewState()
	if st.Status != view.StatusActive || st.Sort != view.SortPriority || st.Priorities != view.AllPriorities {
		t.Errorf("Unexpected view state %+v", st)
	}
	if cfg.Priority() != task.PriorityHigh {
		t.Errorf("Expected high default priority, got %s", cfg.Priority())
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	cfg := Config{DefaultFilter: "done", DefaultSort: "alpha", DefaultPriority: "urgent"}
	if st := cfg.ViewState(); st != view.DefaultState() {
		t.Errorf("Expected default state, got %+v", st)
	}
	if cfg.Priority() != task.PriorityMedium {
		t.Errorf("Expected medium, got %s", cfg.Priority())
	}
}

func TestLoadOrCreateBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("db_path = ["), 0o644)
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("Expected parse error")
	}
}
