package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard USER",
	Aliases: []string{"lb"},
	Short:   "Print a user's friend leaderboard",
	Long: `Rank the user and their accepted friends by weekly score, highest first.
Ties keep the order friends were listed in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, _, err := resolveUser(ctx, svc.Users, args[0])
		if err != nil {
			return err
		}

		board, err := svc.Leaderboard.GetLeaderboard(ctx, userID)
		if err != nil {
			return fmt.Errorf("building leaderboard: %w", err)
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), board)
		}
		renderLeaderboard(cmd.OutOrStdout(), board)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
