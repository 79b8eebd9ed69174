package tracker

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data for broken references and duplicates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			report, err := repo.Doctor(ctx, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dangling entries: %d\n", report.DanglingEntries)
			fmt.Fprintf(out, "Duplicate food ids: %d\n", report.DuplicateFoodIDs)
			fmt.Fprintf(out, "Duplicate entry ids: %d\n", report.DuplicateEntryIDs)
			fmt.Fprintf(out, "Active goals: %d\n", report.ActiveGoals)
			if doctorFix {
				fmt.Fprintf(out, "Removed entries: %d\n", report.RemovedEntries)
				fmt.Fprintf(out, "Deactivated goals: %d\n", report.DeactivatedGoals)
			}
			size, err := repo.StorageSize(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Storage size: %d bytes\n", size)
			if report.Healthy() {
				fmt.Fprintln(out, "Status: ok")
			} else if !doctorFix {
				fmt.Fprintln(out, "Status: issues found (run with --fix)")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove dangling entries and keep a single active goal")
}
