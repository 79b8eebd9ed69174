package tracker

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show averages and consumption rankings",
}

var statsAveragesCmd = &cobra.Command{
	Use:   "averages",
	Short: "Show 7 and 30 day average daily intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Weekly average: %.0f kcal/day\n", repo.WeeklyAverage())
			fmt.Fprintf(cmd.OutOrStdout(), "Monthly average: %.0f kcal/day\n", repo.MonthlyAverage())
			return nil
		})
	},
}

var topLimit int

var statsTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List the most frequently logged foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			fmt.Fprintln(cmd.OutOrStdout(), "FOOD_ID\tNAME\tCOUNT\tKCAL")
			for _, c := range repo.MostConsumedFoods(topLimit) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%.0f\n", c.Food.ID, c.Food.Name, c.Count, c.TotalCalories)
			}
			return nil
		})
	},
}

var highThreshold float64

var statsHighCmd = &cobra.Command{
	Use:   "high",
	Short: "List entries above a calorie threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			printEntries(cmd.OutOrStdout(), repo.HighCalorieEntries(highThreshold))
			return nil
		})
	},
}

var recentDays int

var statsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List entries from the last few days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			printEntries(cmd.OutOrStdout(), service.SortEntriesByDateTime(repo.RecentEntries(recentDays)))
			return nil
		})
	},
}

func periodCmd(use, short string, entries func(*calorie.Repository) []model.EntryWithFood) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
				list := service.SortEntriesByDateTime(entries(repo))
				total := 0.0
				for _, e := range list {
					total += e.TotalCalories
				}
				printEntries(cmd.OutOrStdout(), list)
				fmt.Fprintf(cmd.OutOrStdout(), "Total: %.0f kcal over %d entries\n", total, len(list))
				return nil
			})
		},
	}
}

var (
	statsWeekCmd  = periodCmd("week", "List entries from the current Sunday-start week", (*calorie.Repository).CurrentWeekEntries)
	statsMonthCmd = periodCmd("month", "List entries from the current calendar month", (*calorie.Repository).CurrentMonthEntries)
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsAveragesCmd, statsTopCmd, statsHighCmd, statsRecentCmd, statsWeekCmd, statsMonthCmd)

	statsTopCmd.Flags().IntVar(&topLimit, "limit", service.DefaultMostConsumedLimit, "Number of foods to list")
	statsHighCmd.Flags().Float64Var(&highThreshold, "threshold", service.DefaultHighCalorieThreshold, "Minimum calories, exclusive")
	statsRecentCmd.Flags().IntVar(&recentDays, "days", 7, "Days to look back")
}
