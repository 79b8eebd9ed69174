package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/service"
)

const defaultAnalyticsTolerance = 0.10

var (
	analyticsFrom      string
	analyticsTo        string
	analyticsTolerance float64
	analyticsJSON      bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarise intake and goal adherence over a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := parseDateOrToday(analyticsTo)
		if err != nil {
			return err
		}
		from := to.AddDate(0, 0, -6)
		if analyticsFrom != "" {
			if from, err = parseDateOrToday(analyticsFrom); err != nil {
				return err
			}
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			tolerance := analyticsTolerance
			if !cmd.Flags().Changed("tolerance") {
				tolerance = settingFloat(repo, calorie.SettingAnalyticsTolerance, defaultAnalyticsTolerance)
			}
			if tolerance < 0 {
				return fmt.Errorf("--tolerance must be >= 0")
			}
			report, err := repo.Analytics(from, to, tolerance)
			if err != nil {
				return err
			}
			if analyticsJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printAnalytics(cmd.OutOrStdout(), report)
			return nil
		})
	},
}

func printAnalytics(w io.Writer, r *service.AnalyticsReport) {
	fmt.Fprintf(w, "Range: %s to %s\n", r.FromDate, r.ToDate)
	fmt.Fprintf(w, "Days with entries: %d\n", r.DaysWithEntries)
	fmt.Fprintf(w, "Total: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", r.TotalCalories, r.TotalProtein, r.TotalCarbs, r.TotalFat)
	fmt.Fprintf(w, "Average/day: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", r.AverageCaloriesPerDay, r.AverageProteinPerDay, r.AverageCarbsPerDay, r.AverageFatPerDay)
	if r.HighestDay != nil {
		fmt.Fprintf(w, "Highest day: %s (%.0f kcal)\n", r.HighestDay.Date, r.HighestDay.Calories)
	}
	if r.LowestDay != nil {
		fmt.Fprintf(w, "Lowest day: %s (%.0f kcal)\n", r.LowestDay.Date, r.LowestDay.Calories)
	}
	if r.Adherence.EvaluatedDays > 0 {
		fmt.Fprintf(w, "Adherence: %d/%d days within goal (%.1f%%)\n",
			r.Adherence.WithinGoalDays, r.Adherence.EvaluatedDays, r.Adherence.PercentWithin)
	}
	if len(r.ByCategory) > 0 {
		fmt.Fprintln(w, "CATEGORY\tENTRIES\tKCAL")
		for _, c := range r.ByCategory {
			fmt.Fprintf(w, "%s\t%d\t%.0f\n", c.Category, c.Entries, c.Calories)
		}
	}
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().StringVar(&analyticsFrom, "from", "", "Start date YYYY-MM-DD (default: 6 days before --to)")
	analyticsCmd.Flags().StringVar(&analyticsTo, "to", "", "End date YYYY-MM-DD (default today)")
	analyticsCmd.Flags().Float64Var(&analyticsTolerance, "tolerance", defaultAnalyticsTolerance, "Fraction of the goal that still counts as on target")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Print as JSON")
}

