package main

import (
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/fitrank/internal/models"
)

var comparePeriod string

var compareCmd = &cobra.Command{
	Use:   "compare USER FRIEND",
	Short: "Compare two users day by day",
	Long: `Compare two users' workouts over the last week or month. Each day shows
both average intensities; days the first user leads are green.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, userName, err := resolveUser(ctx, svc.Users, args[0])
		if err != nil {
			return err
		}
		friendID, friendName, err := resolveUser(ctx, svc.Users, args[1])
		if err != nil {
			return err
		}

		report, err := svc.Statistics.Compare(ctx, userID, friendID, models.Period(comparePeriod))
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		renderComparison(cmd.OutOrStdout(), userName, friendName, report)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVarP(&comparePeriod, "period", "p", string(models.PeriodWeek), "week or month")
	rootCmd.AddCommand(compareCmd)
}
