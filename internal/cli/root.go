package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"todo/internal/config"
	"todo/internal/controller"
	"todo/internal/storage"
	"todo/internal/store"
	"todo/internal/ui"
)

var Version = "dev"

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todo",
		Short:         "Task list with filters, priorities and due dates",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to config.toml (default: user config dir)")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(toggleCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(themeCmd())
	return rootCmd
}

// session wires config, storage, store and controller for one command.
type session struct {
	cfg     config.Config
	created bool
	db      *storage.SQLite
	ctrl    *controller.Controller
	logFile *os.File
}

func openSession(cmd *cobra.Command, boundary controller.Boundary) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	_, statErr := os.Stat(configPath)
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &session{cfg: cfg, created: errors.Is(statErr, os.ErrNotExist)}
	logger := log.New(io.Discard, "", 0)
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		s.logFile = f
		logger = log.New(f, "todo: ", log.LstdFlags)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	gw := storage.NewGateway(db)
	st, loadErr := store.New(gw)
	s.ctrl = controller.New(st, gw, boundary,
		controller.WithState(cfg.ViewState()),
		controller.WithLogger(logger),
	)
	s.ctrl.ReportLoadError(loadErr)
	return s, nil
}

func (s *session) Close() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	scr := ui.NewScreen()
	s, err := openSession(cmd, scr)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.created {
		scr.Notify(controller.Notice{Level: controller.LevelInfo, Text: "Welcome! Press '" + s.cfg.Keys.Add + "' to add your first task.", Transient: true})
	}
	if err := ui.Run(s.ctrl, scr, s.cfg); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
