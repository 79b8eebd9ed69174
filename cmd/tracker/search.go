package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/service"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search logged entries by food, brand, category, or notes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			printEntries(cmd.OutOrStdout(), repo.SearchEntries(query))
			return nil
		})
	},
}

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest foods you log often",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			limit := suggestLimit
			if !cmd.Flags().Changed("limit") {
				limit = int(settingFloat(repo, calorie.SettingSuggestionLimit, service.DefaultSuggestionLimit))
			}
			foods := repo.FoodSuggestions(limit)
			if len(foods) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions yet")
				return nil
			}
			printFoods(cmd.OutOrStdout(), foods)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd, suggestCmd)
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", service.DefaultSuggestionLimit, "Number of suggestions")
}
