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

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage calorie entries",
}

var (
	entryFood     string
	entryQuantity float64
	entryAmount   float64
	entryUnit     string
	entryMeal     string
	entryDate     string
	entryTime     string
	entryNotes    string
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food",
	Long:  "Log a food from the catalog. Use --quantity for servings or --amount with --unit for a measured amount.",
	RunE: func(cmd *cobra.Command, args []string) error {
		consumed, err := parseDateTimeOrNow(entryDate, entryTime)
		if err != nil {
			return err
		}
		meal := service.MealTypeForTime(consumed)
		if entryMeal != "" {
			if meal, err = parseMealType(entryMeal); err != nil {
				return err
			}
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			quantity := entryQuantity
			if cmd.Flags().Changed("amount") {
				food, ok := repo.Food(entryFood)
				if !ok {
					return &service.NotFoundError{Kind: "food item", ID: entryFood}
				}
				unit := model.ServingUnit(entryUnit)
				if unit == "" {
					unit = food.ServingUnit
				}
				if quantity, err = service.QuantityForAmount(food, entryAmount, unit); err != nil {
					return err
				}
			}
			e, err := repo.CreateEntry(ctx, calorie.CreateEntryInput{
				UserID:     repo.SettingString(calorie.SettingUserID),
				FoodID:     entryFood,
				Quantity:   quantity,
				MealType:   meal,
				ConsumedAt: consumed,
				Notes:      entryNotes,
			})
			if err != nil {
				return err
			}
			printEntryAdded(cmd.OutOrStdout(), repo, e)
			return nil
		})
	},
}

var entryQuickCmd = &cobra.Command{
	Use:   "quick <food-id>",
	Short: "Log a food now, picking the meal from the time of day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			e, err := repo.QuickAddEntry(ctx, args[0], entryQuantity, entryNotes)
			if err != nil {
				return err
			}
			printEntryAdded(cmd.OutOrStdout(), repo, e)
			return nil
		})
	},
}

var (
	listDate   string
	listFrom   string
	listTo     string
	listMeal   string
	listCat    string
	listSearch string
	listMin    float64
	listMax    float64
	listSort   string
	listOrder  string
	listLimit  int
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildEntryFilter(cmd)
		if err != nil {
			return err
		}
		var sort *service.EntrySort
		if listSort != "" {
			s, err := service.ParseEntrySort(listSort, listOrder)
			if err != nil {
				return err
			}
			sort = &s
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			entries := repo.FilterEntries(&filter, sort)
			if listLimit > 0 && len(entries) > listLimit {
				entries = entries[:listLimit]
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		})
	},
}

func buildEntryFilter(cmd *cobra.Command) (service.EntryFilter, error) {
	f := service.EntryFilter{
		Category:    model.FoodCategory(strings.ToLower(strings.TrimSpace(listCat))),
		Search:      listSearch,
		MinCalories: optionalFloat(cmd, "min-calories", listMin),
		MaxCalories: optionalFloat(cmd, "max-calories", listMax),
	}
	if listMeal != "" {
		m, err := parseMealType(listMeal)
		if err != nil {
			return f, err
		}
		f.MealType = m
	}
	if listDate != "" {
		d, err := parseDateOrToday(listDate)
		if err != nil {
			return f, err
		}
		f.DateFrom, f.DateTo = service.DayRange(d)
		return f, nil
	}
	if listFrom != "" {
		d, err := parseDateOrToday(listFrom)
		if err != nil {
			return f, err
		}
		f.DateFrom = d
	}
	if listTo != "" {
		d, err := parseDateOrToday(listTo)
		if err != nil {
			return f, err
		}
		f.DateTo = d
	}
	return f, nil
}

var entryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := calorie.UpdateEntryInput{}
		if cmd.Flags().Changed("food") {
			in.FoodID = &entryFood
		}
		if cmd.Flags().Changed("quantity") {
			in.Quantity = &entryQuantity
		}
		if cmd.Flags().Changed("meal") {
			m, err := parseMealType(entryMeal)
			if err != nil {
				return err
			}
			in.MealType = &m
		}
		if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
			t, err := parseDateTimeOrNow(entryDate, entryTime)
			if err != nil {
				return err
			}
			in.ConsumedAt = &t
		}
		if cmd.Flags().Changed("notes") {
			in.Notes = &entryNotes
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			e, err := repo.UpdateEntry(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", e.ID)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Delete one or more entries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := splitIDs(args)
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if len(ids) == 1 {
				if err := repo.DeleteEntry(ctx, ids[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", ids[0])
				return nil
			}
			deleted := repo.DeleteMultipleEntries(ctx, ids)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d of %d entries\n", len(deleted), len(ids))
			return repo.Err()
		})
	},
}

var entryDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Log an existing entry again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(entryDate, entryTime)
		if err != nil {
			return err
		}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			e, err := repo.DuplicateEntry(ctx, args[0], at)
			if err != nil {
				return err
			}
			printEntryAdded(cmd.OutOrStdout(), repo, e)
			return nil
		})
	},
}

var entryCopyYesterdayCmd = &cobra.Command{
	Use:   "copy-yesterday",
	Short: "Copy yesterday's entries to today at the same times",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			copied := repo.CopyYesterdayEntries(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d entries from yesterday\n", len(copied))
			return repo.Err()
		})
	},
}

func printEntryAdded(w io.Writer, repo *calorie.Repository, e model.CalorieEntry) {
	kcal := 0.0
	if f, ok := repo.Food(e.FoodID); ok {
		kcal = service.JoinEntry(e, f).TotalCalories
	}
	fmt.Fprintf(w, "Added entry %s (%s, %.0f kcal)\n", e.ID, e.MealType, kcal)
}

func printEntries(w io.Writer, entries []model.EntryWithFood) {
	fmt.Fprintln(w, "ID\tDATE\tMEAL\tFOOD\tQTY\tKCAL\tP\tC\tF")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%.0f\t%s\t%s\t%s\n",
			e.ID, e.ConsumedAt.Local().Format("2006-01-02 15:04"), e.MealType, e.Food.Name, e.Quantity, e.TotalCalories,
			formatMacro(e.TotalNutrition.Protein), formatMacro(e.TotalNutrition.Carbs), formatMacro(e.TotalNutrition.Fat))
	}
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryQuickCmd, entryListCmd, entryUpdateCmd, entryDeleteCmd, entryDuplicateCmd, entryCopyYesterdayCmd)

	entryAddCmd.Flags().StringVar(&entryFood, "food", "", "Food id")
	entryAddCmd.Flags().Float64Var(&entryQuantity, "quantity", 1, "Number of servings")
	entryAddCmd.Flags().Float64Var(&entryAmount, "amount", 0, "Measured amount, converted to servings with --unit")
	entryAddCmd.Flags().StringVar(&entryUnit, "unit", "", "Unit of --amount (default: the food's serving unit)")
	entryAddCmd.Flags().StringVar(&entryMeal, "meal", "", "Meal: breakfast, lunch, dinner, or snack (default: from time of day)")
	entryAddCmd.Flags().StringVar(&entryDate, "date", "", "Date in YYYY-MM-DD")
	entryAddCmd.Flags().StringVar(&entryTime, "time", "", "Time in HH:MM")
	entryAddCmd.Flags().StringVar(&entryNotes, "notes", "", "Optional notes")
	_ = entryAddCmd.MarkFlagRequired("food")

	entryQuickCmd.Flags().Float64Var(&entryQuantity, "quantity", 1, "Number of servings")
	entryQuickCmd.Flags().StringVar(&entryNotes, "notes", "", "Optional notes")

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Only entries on YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listFrom, "from", "", "Entries from YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listTo, "to", "", "Entries through YYYY-MM-DD")
	entryListCmd.Flags().StringVar(&listMeal, "meal", "", "Filter by meal")
	entryListCmd.Flags().StringVar(&listCat, "category", "", "Filter by food category")
	entryListCmd.Flags().StringVar(&listSearch, "search", "", "Search food name, brand, category, and notes")
	entryListCmd.Flags().Float64Var(&listMin, "min-calories", 0, "Minimum entry calories")
	entryListCmd.Flags().Float64Var(&listMax, "max-calories", 0, "Maximum entry calories")
	entryListCmd.Flags().StringVar(&listSort, "sort", "", "Sort by consumedAt, calories, name, or mealType (default: newest first by meal)")
	entryListCmd.Flags().StringVar(&listOrder, "order", string(service.SortDesc), "Sort order with --sort: asc or desc")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 0, "Result limit (0 for all)")

	entryUpdateCmd.Flags().StringVar(&entryFood, "food", "", "Food id")
	entryUpdateCmd.Flags().Float64Var(&entryQuantity, "quantity", 1, "Number of servings")
	entryUpdateCmd.Flags().StringVar(&entryMeal, "meal", "", "Meal")
	entryUpdateCmd.Flags().StringVar(&entryDate, "date", "", "Date in YYYY-MM-DD")
	entryUpdateCmd.Flags().StringVar(&entryTime, "time", "", "Time in HH:MM")
	entryUpdateCmd.Flags().StringVar(&entryNotes, "notes", "", "Notes")

	entryDuplicateCmd.Flags().StringVar(&entryDate, "date", "", "Date in YYYY-MM-DD (default: now)")
	entryDuplicateCmd.Flags().StringVar(&entryTime, "time", "", "Time in HH:MM")
}
