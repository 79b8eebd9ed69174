package tracker

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local tracker database",
	Long:  "Create the database, apply migrations and seed the starter food catalog when it is empty.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(kv store.KV) error {
			repo, err := openCalories(cmd.Context(), kv)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized tracker database at %s\n", cfg.DBPath)
			if sq, ok := kv.(*store.SQLite); ok {
				version, err := sq.SchemaVersion()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Schema version: %d\n", version)
			}
			fmt.Fprintf(out, "Foods: %d  Entries: %d  Goals: %d\n", len(repo.Foods()), len(repo.Entries()), len(repo.Goals()))
			return nil
		})
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every food, entry, goal and setting",
	Long:  "Delete all calorie data. The starter catalog is seeded again on the next command. Todos are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset deletes all calorie data; pass --yes to confirm")
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.ClearAllData(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared calorie data")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd, resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm deleting all calorie data")
}
