package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"todo/internal/task"
	"todo/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	appDirName            = "todo"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	ShowLow         string `toml:"show_low"`
	ShowMedium      string `toml:"show_medium"`
	ShowHigh        string `toml:"show_high"`
	SortCreated     string `toml:"sort_created"`
	SortDue         string `toml:"sort_due"`
	SortPriority    string `toml:"sort_priority"`
	ClearCompleted  string `toml:"clear_completed"`
	Theme           string `toml:"theme"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultSort     string `toml:"default_sort"`
	DefaultPriority string `toml:"default_priority"`
	LogPath         string `toml:"log_path"`
	NoticeSeconds   int    `toml:"notice_seconds"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath returns <user config dir>/todo/config.toml, or the
// working directory when no user config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first when it does not
// exist. A relative db_path is resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		cfg.DBPath = resolve(path, cfg.DBPath)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.NoticeSeconds <= 0 {
		cfg.NoticeSeconds = 3
	}
	cfg.DBPath = resolve(path, cfg.DBPath)
	if cfg.LogPath != "" {
		cfg.LogPath = resolve(path, cfg.LogPath)
	}
	return cfg, nil
}

// ViewState is the initial view; invalid values fall back to the defaults.
func (c Config) ViewState() view.State {
	st := view.DefaultState()
	if f, err := view.ParseStatusFilter(c.DefaultFilter); err == nil {
		st.Status = f
	}
	if m, err := view.ParseSortMode(c.DefaultSort); err == nil {
		st.Sort = m
	}
	return st
}

func (c Config) Priority() task.Priority {
	if p, err := task.ParsePriority(c.DefaultPriority); err == nil {
		return p
	}
	return task.PriorityMedium
}

func resolve(configPath, p string) string {
	if filepath.IsAbs(p) || filepath.Dir(configPath) == "." {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:          DefaultDBName,
		DefaultFilter:   string(view.StatusAll),
		DefaultSort:     string(view.SortDefault),
		DefaultPriority: string(task.PriorityMedium),
		NoticeSeconds:   3,
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Edit:            "e",
			Confirm:         "enter",
			Cancel:          "esc",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			ShowLow:         "L",
			ShowMedium:      "M",
			ShowHigh:        "H",
			SortCreated:     "c",
			SortDue:         "u",
			SortPriority:    "p",
			ClearCompleted:  "X",
			Theme:           "t",
		},
	}
}
