package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/fitrank/internal/config"
	"github.com/HammerMeetNail/fitrank/internal/database"
	"github.com/HammerMeetNail/fitrank/internal/logging"
	"github.com/HammerMeetNail/fitrank/internal/services"
)

// skipDBAnnotation marks commands that manage their own connections.
const skipDBAnnotation = "skip-db"

var (
	cfg    *config.Config
	db     *database.PostgresDB
	svc    *services.Services
	now    func() time.Time
	asJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "fitrank",
	Short: "Administer the fitrank fitness leaderboard",
	Long: `fitrank reads the same database as the API server and prints scores,
statistics and leaderboards from the command line.

Configuration comes from the environment (or a .env file), exactly as for
the server: DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, APP_TIMEZONE.

Users may be given by id or by username.

EXAMPLES:

  fitrank migrate up
  fitrank score alice
  fitrank stats alice --period month
  fitrank leaderboard alice
  fitrank compare alice bob --period week --json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if level, err := logging.ParseLevel(cfg.Server.LogLevel); err == nil {
			logging.SetDefaultLevel(level)
		}

		loc, err := cfg.Server.Location()
		if err != nil {
			return err
		}
		now = func() time.Time { return time.Now().In(loc) }

		if cmd.Annotations[skipDBAnnotation] != "" {
			return nil
		}

		opts := database.DefaultPoolOptions()
		opts.MaxConns = 4
		opts.MinConns = 0
		db, err = database.NewPostgresDB(cfg.Database.DSN(), opts)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		svc = services.New(services.NewPoolAdapter(db.Pool), now, nil)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			db.Close()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
}

// resolveUser accepts a user id or a username.
func resolveUser(ctx context.Context, users services.UserLookup, ref string) (uuid.UUID, string, error) {
	if id, err := uuid.Parse(ref); err == nil {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("looking up user %s: %w", ref, err)
		}
		return user.ID, user.Username, nil
	}
	user, err := users.GetByUsername(ctx, ref)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("looking up user %q: %w", ref, err)
	}
	return user.ID, user.Username, nil
}
