package tracker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage calorie goals",
}

var (
	goalCalories float64
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
	goalActivity string
	goalType     string
	goalInactive bool
	goalActive   bool
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create a goal and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		active := !goalInactive
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			g, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
				UserID:        repo.SettingString(calorie.SettingUserID),
				DailyCalories: goalCalories,
				Protein:       optionalFloat(cmd, "protein", goalProtein),
				Carbs:         optionalFloat(cmd, "carbs", goalCarbs),
				Fat:           optionalFloat(cmd, "fat", goalFat),
				ActivityLevel: model.ActivityLevel(strings.ToLower(goalActivity)),
				Goal:          model.GoalType(strings.ToLower(goalType)),
				IsActive:      &active,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s (%.0f kcal, active=%t)\n", g.ID, g.DailyCalories, g.IsActive)
			return nil
		})
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := calorie.UpdateGoalInput{
			DailyCalories: optionalFloat(cmd, "calories", goalCalories),
			Protein:       optionalFloat(cmd, "protein", goalProtein),
			Carbs:         optionalFloat(cmd, "carbs", goalCarbs),
			Fat:           optionalFloat(cmd, "fat", goalFat),
		}
		if cmd.Flags().Changed("activity") {
			a := model.ActivityLevel(strings.ToLower(goalActivity))
			in.ActivityLevel = &a
		}
		if cmd.Flags().Changed("goal") {
			g := model.GoalType(strings.ToLower(goalType))
			in.Goal = &g
		}
		if cmd.Flags().Changed("active") {
			in.IsActive = &goalActive
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			g, err := repo.UpdateGoal(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated goal %s\n", g.ID)
			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			printGoals(cmd.OutOrStdout(), repo.Goals())
			return nil
		})
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.DeleteGoal(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal %s\n", args[0])
			return nil
		})
	},
}

var (
	recWeight float64
	recHeight float64
	recAge    int
	recSex    string
	recApply  bool
)

var goalRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Estimate daily calories from body stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		level := model.ActivityLevel(strings.ToLower(goalActivity))
		target := model.GoalType(strings.ToLower(goalType))
		bmr, err := service.CalculateBMR(recWeight, recHeight, recAge, service.Sex(strings.ToLower(recSex)))
		if err != nil {
			return err
		}
		tdee, err := service.CalculateTDEE(bmr, level)
		if err != nil {
			return err
		}
		kcal, err := service.RecommendedCalories(tdee, target)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BMR: %.0f kcal\n", bmr)
		fmt.Fprintf(out, "TDEE: %.0f kcal\n", tdee)
		fmt.Fprintf(out, "Recommended: %.0f kcal (%s)\n", kcal, target)
		if !recApply {
			return nil
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			g, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
				UserID:        repo.SettingString(calorie.SettingUserID),
				DailyCalories: kcal,
				ActivityLevel: level,
				Goal:          target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created goal %s\n", g.ID)
			return nil
		})
	},
}

func printGoals(w io.Writer, goals []model.CalorieGoal) {
	fmt.Fprintln(w, "ID\tACTIVE\tKCAL\tP\tC\tF\tACTIVITY\tGOAL")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%t\t%.0f\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.IsActive, g.DailyCalories, formatMacro(g.Protein), formatMacro(g.Carbs), formatMacro(g.Fat), g.ActivityLevel, g.Goal)
	}
}

func registerGoalFields(c *cobra.Command) {
	c.Flags().Float64Var(&goalCalories, "calories", 0, "Daily calorie target")
	c.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein target (g)")
	c.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carbs target (g)")
	c.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat target (g)")
	c.Flags().StringVar(&goalActivity, "activity", string(model.ActivityModeratelyActive), "Activity level")
	c.Flags().StringVar(&goalType, "goal", string(model.GoalMaintainWeight), "Goal: lose-weight, maintain-weight, or gain-weight")
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalUpdateCmd, goalListCmd, goalDeleteCmd, goalRecommendCmd)

	registerGoalFields(goalSetCmd)
	goalSetCmd.Flags().BoolVar(&goalInactive, "inactive", false, "Create the goal without activating it")
	_ = goalSetCmd.MarkFlagRequired("calories")

	registerGoalFields(goalUpdateCmd)
	goalUpdateCmd.Flags().BoolVar(&goalActive, "active", true, "Activate or deactivate the goal")

	goalRecommendCmd.Flags().Float64Var(&recWeight, "weight", 0, "Body weight (kg)")
	goalRecommendCmd.Flags().Float64Var(&recHeight, "height", 0, "Height (cm)")
	goalRecommendCmd.Flags().IntVar(&recAge, "age", 0, "Age in years")
	goalRecommendCmd.Flags().StringVar(&recSex, "sex", "", "male or female")
	goalRecommendCmd.Flags().StringVar(&goalActivity, "activity", string(model.ActivityModeratelyActive), "Activity level")
	goalRecommendCmd.Flags().StringVar(&goalType, "goal", string(model.GoalMaintainWeight), "Goal type")
	goalRecommendCmd.Flags().BoolVar(&recApply, "apply", false, "Save the recommendation as the active goal")
	for _, name := range []string{"weight", "height", "age", "sex"} {
		_ = goalRecommendCmd.MarkFlagRequired(name)
	}
}
