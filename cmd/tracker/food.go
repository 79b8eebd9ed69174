package tracker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/provider/openfoodfacts"
	"github.com/reidsolon/tracker/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

type nutritionFlags struct {
	calories, protein, carbs, fat, fiber, sugar, sodium float64
}

func (n *nutritionFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&n.calories, "calories", 0, "Calories per serving")
	cmd.Flags().Float64Var(&n.protein, "protein", 0, "Protein grams per serving")
	cmd.Flags().Float64Var(&n.carbs, "carbs", 0, "Carbs grams per serving")
	cmd.Flags().Float64Var(&n.fat, "fat", 0, "Fat grams per serving")
	cmd.Flags().Float64Var(&n.fiber, "fiber", 0, "Fiber grams per serving")
	cmd.Flags().Float64Var(&n.sugar, "sugar", 0, "Sugar grams per serving")
	cmd.Flags().Float64Var(&n.sodium, "sodium", 0, "Sodium milligrams per serving")
}

// apply overlays the flags that were set onto base and reports whether any were.
func (n *nutritionFlags) apply(cmd *cobra.Command, base model.NutritionVector) (model.NutritionVector, bool) {
	changed := false
	if cmd.Flags().Changed("calories") {
		base.Calories = n.calories
		changed = true
	}
	for _, f := range []struct {
		name  string
		value float64
		dst   **float64
	}{
		{"protein", n.protein, &base.Protein},
		{"carbs", n.carbs, &base.Carbs},
		{"fat", n.fat, &base.Fat},
		{"fiber", n.fiber, &base.Fiber},
		{"sugar", n.sugar, &base.Sugar},
		{"sodium", n.sodium, &base.Sodium},
	} {
		if v := optionalFloat(cmd, f.name, f.value); v != nil {
			*f.dst = v
			changed = true
		}
	}
	return base, changed
}

var (
	foodName        string
	foodBrand       string
	foodCategory    string
	foodServingSize string
	foodUnit        string
	foodBarcode     string
	foodNutrition   nutritionFlags
	foodListCat     string
	foodLookupSave  bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		nutrition, _ := foodNutrition.apply(cmd, model.NutritionVector{})
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			food, err := repo.CreateFood(ctx, calorie.CreateFoodInput{
				Name:        foodName,
				Brand:       foodBrand,
				Category:    model.FoodCategory(strings.ToLower(foodCategory)),
				ServingSize: foodServingSize,
				ServingUnit: model.ServingUnit(strings.ToLower(foodUnit)),
				Nutrition:   nutrition,
				Barcode:     foodBarcode,
				IsCustom:    true,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s (%s)\n", food.ID, food.Name)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			foods := repo.Foods()
			if foodListCat != "" {
				foods = repo.FoodsByCategory(model.FoodCategory(strings.ToLower(foodListCat)))
			}
			printFoods(cmd.OutOrStdout(), foods)
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			f, ok := repo.Food(args[0])
			if !ok {
				return &service.NotFoundError{Kind: "food item", ID: args[0]}
			}
			printFood(cmd.OutOrStdout(), f)
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			current, ok := repo.Food(args[0])
			if !ok {
				return &service.NotFoundError{Kind: "food item", ID: args[0]}
			}
			in := calorie.UpdateFoodInput{}
			if cmd.Flags().Changed("name") {
				in.Name = &foodName
			}
			if cmd.Flags().Changed("brand") {
				in.Brand = &foodBrand
			}
			if cmd.Flags().Changed("category") {
				c := model.FoodCategory(strings.ToLower(foodCategory))
				in.Category = &c
			}
			if cmd.Flags().Changed("serving-size") {
				in.ServingSize = &foodServingSize
			}
			if cmd.Flags().Changed("unit") {
				u := model.ServingUnit(strings.ToLower(foodUnit))
				in.ServingUnit = &u
			}
			if cmd.Flags().Changed("barcode") {
				in.Barcode = &foodBarcode
			}
			if n, changed := foodNutrition.apply(cmd, current.Nutrition); changed {
				in.Nutrition = &n
			}
			food, err := repo.UpdateFood(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %s\n", food.ID)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food that no entry references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.DeleteFood(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %s\n", args[0])
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name, brand, or category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			printFoods(cmd.OutOrStdout(), repo.SearchFoods(strings.Join(args, " ")))
			return nil
		})
	},
}

var foodLookupCmd = &cobra.Command{
	Use:   "lookup <barcode>",
	Short: "Look up a barcode in the catalog, then Open Food Facts",
	Long: "Look up a barcode in the local catalog first. Unknown barcodes are fetched from Open Food Facts\n" +
		"(no API key required); pass --save to add the result to the catalog.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &openfoodfacts.Client{BaseURL: cfg.FoodAPIURL}
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			res, err := repo.LookupBarcode(ctx, client, args[0], foodLookupSave)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case res.FromStore:
				fmt.Fprintln(out, "Source: catalog")
			case res.Saved:
				fmt.Fprintf(out, "Source: openfoodfacts (saved as %s)\n", res.Food.ID)
			default:
				fmt.Fprintln(out, "Source: openfoodfacts (not saved)")
			}
			printFood(out, res.Food)
			if !res.FromStore {
				score := service.ScoreLookupConfidence(res.Food, args[0], 0)
				fmt.Fprintf(out, "Confidence: %.2f (verified: %t)\n", score.Score, score.IsVerified)
				fmt.Fprintf(out, "Nutrition: %s\n", service.NutritionCompleteness(res.Food.Nutrition))
			}
			return nil
		})
	},
}

func printFoods(w io.Writer, foods []model.FoodItem) {
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tSERVING\tKCAL\tP\tC\tF")
	for _, f := range foods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\t%.0f\t%s\t%s\t%s\n",
			f.ID, f.Name, f.Brand, f.Category, f.ServingSize, f.ServingUnit, f.Nutrition.Calories,
			formatMacro(f.Nutrition.Protein), formatMacro(f.Nutrition.Carbs), formatMacro(f.Nutrition.Fat))
	}
}

func printFood(w io.Writer, f model.FoodItem) {
	if f.ID != "" {
		fmt.Fprintf(w, "ID: %s\n", f.ID)
	}
	fmt.Fprintf(w, "Name: %s\n", f.Name)
	if f.Brand != "" {
		fmt.Fprintf(w, "Brand: %s\n", f.Brand)
	}
	fmt.Fprintf(w, "Category: %s\n", f.Category)
	fmt.Fprintf(w, "Serving: %s %s\n", f.ServingSize, f.ServingUnit)
	if f.Barcode != "" {
		fmt.Fprintf(w, "Barcode: %s\n", f.Barcode)
	}
	n := f.Nutrition
	fmt.Fprintf(w, "Calories: %s\n", service.FormatNutritionValue(&n.Calories, " kcal"))
	fmt.Fprintf(w, "Protein: %s  Carbs: %s  Fat: %s\n", formatMacro(n.Protein), formatMacro(n.Carbs), formatMacro(n.Fat))
	fmt.Fprintf(w, "Fiber: %s  Sugar: %s  Sodium: %s\n", formatMacro(n.Fiber), formatMacro(n.Sugar), service.FormatNutritionValue(n.Sodium, "mg"))
}

func registerFoodFields(cmd *cobra.Command) {
	cmd.Flags().StringVar(&foodName, "name", "", "Food name")
	cmd.Flags().StringVar(&foodBrand, "brand", "", "Brand")
	cmd.Flags().StringVar(&foodCategory, "category", string(model.CategoryOther), "Category: fruits, vegetables, grains, proteins, dairy, snacks, beverages, or other")
	cmd.Flags().StringVar(&foodServingSize, "serving-size", "100", "Serving size")
	cmd.Flags().StringVar(&foodUnit, "unit", string(model.UnitGram), "Serving unit: g, oz, cup, tbsp, tsp, piece, slice, or ml")
	cmd.Flags().StringVar(&foodBarcode, "barcode", "", "Barcode")
	foodNutrition.register(cmd)
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodShowCmd, foodUpdateCmd, foodDeleteCmd, foodSearchCmd, foodLookupCmd)

	registerFoodFields(foodAddCmd)
	registerFoodFields(foodUpdateCmd)
	foodListCmd.Flags().StringVar(&foodListCat, "category", "", "Filter by category")
	foodLookupCmd.Flags().BoolVar(&foodLookupSave, "save", false, "Save the looked-up food to the catalog")
}
