package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score USER",
	Short: "Print a user's weekly score",
	Long: `Print the sum of intensity over the user's records created in the last
seven days.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, username, err := resolveUser(ctx, svc.Users, args[0])
		if err != nil {
			return err
		}

		score, err := svc.Scores.WeeklyScore(ctx, userID, now())
		if err != nil {
			return fmt.Errorf("computing weekly score: %w", err)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"user_id":      userID,
				"weekly_score": score,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", username, score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
