package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/workers"
	"github.com/comitanigiacomo/kanso-habit-store/internal/logger"
)

// session is the per-invocation state shared by every subcommand.
type session struct {
	dbPath   string
	output   string
	timezone string
	verbose  bool
	now      services.Clock
	loc      *time.Location

	logger    *zap.Logger
	closeDB   func() error
	persister *workers.PersistWorker
	store     *services.HabitStore
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "habits.db"
	}
	return filepath.Join(home, ".kanso", "habits.db")
}

func newRootCmd() *cobra.Command {
	s := &session{now: time.Now}
	return s.rootCmd()
}

func (s *session) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "habits",
		Short:         "Track daily habits, streaks and progress",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch s.output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (text, json, yaml)", s.output)
			}
			return s.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.dbPath, "db", defaultDBPath(), "SQLite database file")
	flags.StringVarP(&s.output, "output", "o", outputText, "Output format: text, json or yaml")
	flags.StringVar(&s.timezone, "timezone", "Local", "IANA time zone that defines calendar days")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		s.addCmd(),
		s.editCmd(),
		s.deleteCmd(),
		s.toggleCmd(),
		s.listCmd(),
		s.streakCmd(),
		s.todayCmd(),
		s.weekCmd(),
		s.settingsCmd(),
	)
	return root
}

func (s *session) open(ctx context.Context) error {
	log, err := logger.NewConsole(s.verbose)
	if err != nil {
		return err
	}
	s.logger = log

	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	s.loc = loc

	db, err := repository.OpenSQLite(ctx, s.dbPath)
	if err != nil {
		return err
	}
	s.closeDB = db.Close

	repo := repository.NewSQLiteStateRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	s.persister = workers.NewPersistWorker(repo, log)
	s.store, err = services.LoadHabitStore(ctx, repo, domain.StorageKey, domain.NewSeededState,
		services.WithLogger(log),
		services.WithClock(s.now),
		services.WithLocation(loc),
		services.WithPersister(s.persister),
	)
	return err
}

// close writes whatever the command changed before the process exits.
func (s *session) close(ctx context.Context) error {
	var flushErr error
	if s.persister != nil {
		flushErr = s.persister.Flush(context.WithoutCancel(ctx))
	}
	if s.closeDB != nil {
		if err := s.closeDB(); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	return flushErr
}
