package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"todo/internal/controller"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/view"
)

var errNotSaved = errors.New("changes were not saved")

// withSession opens a session bound to a terminal boundary and closes it
// after fn returns.
func withSession(cmd *cobra.Command, assumeYes bool, fn func(*session, *terminal) error) error {
	term := newTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), assumeYes)
	s, err := openSession(cmd, term)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := fn(s, term); err != nil {
		return err
	}
	if term.failed {
		return errNotSaved
	}
	return nil
}

func parseID(v string) (int64, error) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", v)
	}
	return id, nil
}

func lookup(s *session, v string) (task.Task, error) {
	id, err := parseID(v)
	if err != nil {
		return task.Task{}, err
	}
	t, ok := s.ctrl.Lookup(id)
	if !ok {
		return task.Task{}, fmt.Errorf("no task with id %d", id)
	}
	return t, nil
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueFlag, _ := cmd.Flags().GetString("due")
			prioFlag, _ := cmd.Flags().GetString("priority")

			var due *task.Date
			if dueFlag != "" {
				d, err := task.ParseDate(dueFlag)
				if err != nil {
					return err
				}
				due = &d
			}
			return withSession(cmd, false, func(s *session, term *terminal) error {
				priority := s.cfg.Priority()
				if prioFlag != "" {
					p, err := task.ParsePriority(prioFlag)
					if err != nil {
						return err
					}
					priority = p
				}
				t, err := s.ctrl.Add(strings.Join(args, " "), due, priority)
				if errors.Is(err, task.ErrEmptyText) {
					return err
				}
				fmt.Fprintf(term.out, "Added task %d\n", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high (default from config)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(s *session, term *terminal) error {
				st := s.ctrl.State()
				if cmd.Flags().Changed("filter") {
					v, _ := cmd.Flags().GetString("filter")
					f, err := view.ParseStatusFilter(v)
					if err != nil {
						return err
					}
					st.Status = f
				}
				if cmd.Flags().Changed("sort") {
					v, _ := cmd.Flags().GetString("sort")
					m, err := view.ParseSortMode(v)
					if err != nil {
						return err
					}
					st.Sort = m
				}
				prios, _ := cmd.Flags().GetStringSlice("priority")
				ps := make([]task.Priority, 0, len(prios))
				for _, v := range prios {
					p, err := task.ParsePriority(v)
					if err != nil {
						return err
					}
					ps = append(ps, p)
				}

				s.ctrl.SetStatusFilter(st.Status)
				s.ctrl.SetSort(st.Sort)
				s.ctrl.SetPriorities(view.NewPrioritySet(ps...))
				printSnapshot(term, term.snap)
				return nil
			})
		},
	}
	cmd.Flags().StringP("filter", "f", "all", "Status filter: all, active, completed")
	cmd.Flags().StringSliceP("priority", "p", nil, "Show only these priorities (repeatable)")
	cmd.Flags().StringP("sort", "s", "default", "Sort: default, due-date, priority")
	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle a task between active and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(s *session, term *terminal) error {
				t, err := lookup(s, args[0])
				if err != nil {
					return err
				}
				s.ctrl.Toggle(t.ID)
				state := "active"
				if !t.Completed {
					state = "completed"
				}
				fmt.Fprintf(term.out, "Task %d is now %s\n", t.ID, state)
				return nil
			})
		},
	}
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(s *session, term *terminal) error {
				t, err := lookup(s, args[0])
				if err != nil {
					return err
				}
				if err := s.ctrl.Edit(t.ID, strings.Join(args[1:], " ")); errors.Is(err, task.ErrEmptyText) {
					return err
				}
				return nil
			})
		},
	}
}

func rmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return withSession(cmd, yes, func(s *session, term *terminal) error {
				t, err := lookup(s, args[0])
				if err != nil {
					return err
				}
				s.ctrl.Delete(t.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			return withSession(cmd, yes, func(s *session, term *terminal) error {
				s.ctrl.ClearCompleted()
				return nil
			})
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(s *session, term *terminal) error {
				st := s.ctrl.Snapshot().Stats
				fmt.Fprintf(term.out, "total: %d\ncompleted: %d\npending: %d\n", st.Total, st.Completed, st.Pending)
				return nil
			})
		},
	}
}

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, false, func(s *session, term *terminal) error {
				if len(args) == 1 {
					switch args[0] {
					case "light":
						s.ctrl.SetTheme(storage.ThemeLight)
					case "dark":
						s.ctrl.SetTheme(storage.ThemeDark)
					case "toggle":
						s.ctrl.ToggleTheme()
					default:
						return fmt.Errorf("unknown theme %q (want light, dark or toggle)", args[0])
					}
				}
				fmt.Fprintln(term.out, s.ctrl.Theme())
				return nil
			})
		},
	}
}

func printSnapshot(term *terminal, snap controller.Snapshot) {
	switch snap.Empty {
	case controller.EmptyNoTasks:
		fmt.Fprintln(term.out, "No tasks yet.")
		return
	case controller.EmptyNoMatch:
		fmt.Fprintln(term.out, "No tasks match the current filters.")
		return
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, it := range snap.Items {
		check := "[ ]"
		if it.Completed {
			check = "[x]"
		}
		due := ""
		if it.DueDate != nil {
			due = it.DueDate.String()
			if it.Overdue {
				due += " overdue"
			}
		}
		rows = append(rows, []string{strconv.FormatInt(it.ID, 10), check, string(it.Priority), due, it.Text})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DONE", "PRIORITY", "DUE", "TEXT").
		Rows(rows...)
	fmt.Fprintln(term.out, t.String())
	fmt.Fprintf(term.out, "%d total • %d completed • %d pending\n", snap.Stats.Total, snap.Stats.Completed, snap.Stats.Pending)
}
