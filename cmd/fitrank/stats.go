package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

var (
	statsPeriod string
	statsGlobal bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [USER]",
	Short: "Print workout statistics",
	Long: `Print a user's statistics for a period (day, week, month or year), or the
site-wide statistics for the last 30 days with --global.

  fitrank stats alice
  fitrank stats alice --period year
  fitrank stats --global`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if statsGlobal {
			global, err := svc.Statistics.GetGlobalStatistics(ctx)
			if err != nil {
				return fmt.Errorf("computing global statistics: %w", err)
			}
			if asJSON {
				return writeJSON(out, global)
			}
			fmt.Fprintf(out, "last 30 days: %d records, %d active users, avg intensity %.1f\n",
				global.TotalWorkoutRecords, global.ActiveUsers, global.AverageIntensity)
			for _, p := range global.PopularExercises {
				fmt.Fprintf(out, "  %s %d\n", padRight(p.ExerciseType, 16), p.Count)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a user is required unless --global is set")
		}
		userID, username, err := resolveUser(ctx, svc.Users, args[0])
		if err != nil {
			return err
		}

		report, err := svc.Statistics.GetStatistics(ctx, userID, models.Period(statsPeriod))
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, report)
		}
		renderStatistics(out, username, report)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", string(models.PeriodWeek), "day, week, month or year")
	statsCmd.Flags().BoolVar(&statsGlobal, "global", false, "show site-wide statistics")
	rootCmd.AddCommand(statsCmd)
}
