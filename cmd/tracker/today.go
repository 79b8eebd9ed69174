package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

var (
	summaryDate string
	summaryJSON bool
)

type summaryReport struct {
	model.DailySummary
	Progress model.CalorieProgress `json:"progress"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	target, err := parseDateOrToday(summaryDate)
	if err != nil {
		return err
	}
	return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
		report := summaryReport{
			DailySummary: repo.DailySummary(target),
			Progress:     repo.Progress(target),
		}
		if summaryJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		printSummary(cmd.OutOrStdout(), report)
		return nil
	})
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and goal progress",
	RunE:  runSummary,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show intake and goal progress for a day",
	RunE:  runSummary,
}

func printSummary(w io.Writer, r summaryReport) {
	n := r.TotalNutrition
	fmt.Fprintf(w, "Date: %s\n", r.Date)
	fmt.Fprintf(w, "Intake: %.0f kcal\n", r.TotalCalories)
	fmt.Fprintf(w, "Macros: P %s | C %s | F %s\n", formatMacro(n.Protein), formatMacro(n.Carbs), formatMacro(n.Fat))
	fmt.Fprintf(w, "Goal: %.0f kcal | Remaining: %.0f kcal | %d%%\n", r.Progress.Goal, r.Progress.Remaining, r.Progress.Percentage)
	for _, m := range model.MealTypes {
		fmt.Fprintf(w, "%s: %.0f kcal\n", m, r.MealBreakdown.For(m))
	}
	if len(r.Entries) > 0 {
		fmt.Fprintln(w)
		printEntries(w, service.SortEntriesByDateTime(r.Entries))
	}
}

func init() {
	rootCmd.AddCommand(todayCmd, summaryCmd)
	todayCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print as JSON")
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Date YYYY-MM-DD (default today)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print as JSON")
}
