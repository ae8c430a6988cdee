package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

func (s *session) addCmd() *cobra.Command {
	var emoji string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := s.store.AddHabit(args[0], emoji)
			if err != nil {
				return err
			}
			h, _ := s.store.Habit(id)
			return s.render(cmd.OutOrStdout(), h, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added %s %s (%s)\n", h.Emoji, h.Name, h.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&emoji, "emoji", "e", "", "Emoji shown next to the habit")
	return cmd
}

func (s *session) editCmd() *cobra.Command {
	var name, emoji string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a habit or change its emoji",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, ok := s.store.Habit(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrHabitNotFound, args[0])
			}
			if !cmd.Flags().Changed("name") {
				name = current.Name
			}
			if !cmd.Flags().Changed("emoji") {
				emoji = current.Emoji
			}

			if err := s.store.EditHabit(args[0], name, emoji); err != nil {
				return err
			}
			h, _ := s.store.Habit(args[0])
			return s.render(cmd.OutOrStdout(), h, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Updated %s %s\n", h.Emoji, h.Name)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name")
	cmd.Flags().StringVarP(&emoji, "emoji", "e", "", "New emoji")
	return cmd
}

func (s *session) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit; its past completions are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, existed := s.store.Habit(args[0])
			s.store.DeleteHabit(args[0])

			return s.render(cmd.OutOrStdout(), map[string]any{"id": args[0], "deleted": existed}, func(w io.Writer) error {
				if !existed {
					_, err := fmt.Fprintf(w, "No habit with id %s\n", args[0])
					return err
				}
				_, err := fmt.Fprintf(w, "Deleted %s %s\n", h.Emoji, h.Name)
				return err
			})
		},
	}
}

type toggleView struct {
	HabitID    string `json:"habit_id"`
	Date       string `json:"date"`
	Completed  bool   `json:"completed"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
}

func (s *session) toggleCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a habit done or undone for a day (default today)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, ok := s.store.Habit(id); !ok {
				return fmt.Errorf("%w: %s", domain.ErrHabitNotFound, id)
			}
			if date == "" {
				date = s.store.TodayProgress().Date
			}

			completed, err := s.store.ToggleCompletion(id, date)
			if err != nil {
				return err
			}
			h, _ := s.store.Habit(id)

			view := toggleView{HabitID: id, Date: date, Completed: completed, Streak: h.Streak, BestStreak: h.BestStreak}
			return s.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				state := "not done"
				if completed {
					state = "done"
				}
				_, err := fmt.Fprintf(w, "%s %s marked %s on %s (streak %d, best %d)\n",
					h.Emoji, h.Name, state, date, h.Streak, h.BestStreak)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to toggle as YYYY-MM-DD")
	return cmd
}

func (s *session) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits in creation order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			habits := s.store.Habits()
			return s.render(cmd.OutOrStdout(), habits, func(w io.Writer) error {
				return habitTable(w, habits)
			})
		},
	}
}

type streakView struct {
	HabitID    string `json:"habit_id"`
	Name       string `json:"name"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
}

func (s *session) streakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak <id>",
		Short: "Show the current and best streak of a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ok := s.store.Habit(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrHabitNotFound, args[0])
			}

			view := streakView{HabitID: h.ID, Name: h.Name, Streak: s.store.StreakOf(h.ID), BestStreak: s.store.BestStreakOf(h.ID)}
			return s.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s %s: %d day streak (best %d)\n", h.Emoji, h.Name, view.Streak, view.BestStreak)
				return err
			})
		},
	}
}

func (s *session) todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := s.store.TodayProgress()
			return s.render(cmd.OutOrStdout(), p, func(w io.Writer) error {
				fmt.Fprintf(w, "%s  %s %d%% (%d/%d)\n", p.Date, progressBar(p.Percentage), p.Percentage, p.Completed, p.Total)
				for _, h := range p.CompletedHabits {
					fmt.Fprintf(w, "  [x] %s %s\n", h.Emoji, h.Name)
				}
				for _, h := range p.RemainingHabits {
					fmt.Fprintf(w, "  [ ] %s %s\n", h.Emoji, h.Name)
				}
				return nil
			})
		},
	}
}

func (s *session) weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary := s.store.WeeklySummary()
			return s.render(cmd.OutOrStdout(), summary, func(w io.Writer) error {
				for _, d := range summary.Days {
					fmt.Fprintf(w, "%s %s  %s %3d%%\n", d.Weekday, d.Date, progressBar(d.Percentage), d.Percentage)
				}
				fmt.Fprintf(w, "Average: %d%%\n", summary.AverageCompletion)
				if len(summary.TopHabits) > 0 {
					fmt.Fprintln(w, "Top streaks:")
					for _, h := range summary.TopHabits {
						fmt.Fprintf(w, "  %s %s  %d\n", h.Emoji, h.Name, h.Streak)
					}
				}
				return nil
			})
		},
	}
}

type settingsView struct {
	domain.Settings
	NextReminder *time.Time `json:"next_reminder,omitempty"`
	Message      string     `json:"reminder_message,omitempty"`
}

func (s *session) settingsView() (settingsView, error) {
	view := settingsView{Settings: s.store.Settings()}

	progress := s.store.TodayProgress()
	reminder, err := domain.PlanReminder(s.store.Key(), s.now().In(s.loc), view.Settings, progress.RemainingHabits)
	if err != nil {
		return view, err
	}
	if reminder != nil {
		at := reminder.At
		view.NextReminder = &at
		view.Message = reminder.Message
	}
	return view, nil
}

func (s *session) printSettings(cmd *cobra.Command) error {
	view, err := s.settingsView()
	if err != nil {
		return err
	}
	return s.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
		status := "off"
		if view.NotificationsEnabled {
			status = "on at " + view.NotificationTime
		}
		fmt.Fprintf(w, "Reminders: %s\n", status)
		if view.NextReminder != nil {
			fmt.Fprintf(w, "Next reminder: %s (%s)\n", view.NextReminder.Format("Mon 15:04"), view.Message)
		}
		picture := "none"
		if view.ProfilePicture != nil {
			picture = *view.ProfilePicture
		}
		_, err := fmt.Fprintf(w, "Profile picture: %s\n", picture)
		return err
	})
}

func (s *session) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.printSettings(cmd)
		},
	}

	var enabled bool
	var at string
	notifications := &cobra.Command{
		Use:   "notifications",
		Short: "Turn the daily reminder on or off and set its time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if at != "" {
				if err := s.store.SetNotificationTime(at); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("enabled") {
				s.store.SetNotificationsEnabled(enabled)
			}
			return s.printSettings(cmd)
		},
	}
	notifications.Flags().BoolVar(&enabled, "enabled", true, "Whether the daily reminder fires")
	notifications.Flags().StringVar(&at, "time", "", "Reminder time as HH:MM (24h)")

	var remove bool
	picture := &cobra.Command{
		Use:   "picture [uri]",
		Short: "Set the profile picture, or remove it with --clear",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case remove:
				s.store.SetProfilePicture(nil)
			case len(args) == 1:
				s.store.SetProfilePicture(&args[0])
			default:
				return fmt.Errorf("pass a uri or --clear")
			}
			return s.printSettings(cmd)
		},
	}
	picture.Flags().BoolVar(&remove, "clear", false, "Remove the profile picture")

	cmd.AddCommand(notifications, picture)
	return cmd
}
