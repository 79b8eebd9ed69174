package calorie_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/seed"
	"github.com/reidsolon/tracker/internal/service"
	"github.com/reidsolon/tracker/internal/store"
)

var testNow = time.Date(2026, 5, 14, 13, 0, 0, 0, time.UTC)

// flakyKV fails writes while failWrites is set.
type flakyKV struct {
	*store.Memory
	failWrites bool
}

func (f *flakyKV) Put(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return errors.New("quota exceeded")
	}
	return f.Memory.Put(ctx, key, value)
}

func (f *flakyKV) Delete(ctx context.Context, key string) error {
	if f.failWrites {
		return errors.New("quota exceeded")
	}
	return f.Memory.Delete(ctx, key)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newRepo(t *testing.T, kv store.KV, seeded bool) *calorie.Repository {
	t.Helper()
	opts := calorie.Options{
		Store: kv,
		Now:   func() time.Time { return testNow },
		NewID: sequentialIDs("id"),
	}
	if seeded {
		opts.Seed = seed.Catalog{NewID: sequentialIDs("seed")}
	}
	repo := calorie.New(opts)
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func addFood(t *testing.T, repo *calorie.Repository, name string, kcal float64) model.FoodItem {
	t.Helper()
	food, err := repo.CreateFood(context.Background(), calorie.CreateFoodInput{
		Name:        name,
		Category:    model.CategoryOther,
		ServingSize: "100",
		ServingUnit: model.UnitGram,
		Nutrition:   model.NutritionVector{Calories: kcal, Protein: model.Float(1)},
	})
	require.NoError(t, err)
	return food
}

func addEntry(t *testing.T, repo *calorie.Repository, foodID string, qty float64, meal model.MealType, at time.Time) model.CalorieEntry {
	t.Helper()
	entry, err := repo.CreateEntry(context.Background(), calorie.CreateEntryInput{
		FoodID: foodID, Quantity: qty, MealType: meal, ConsumedAt: at,
	})
	require.NoError(t, err)
	return entry
}

func TestInitializeSeedsEmptyStoreOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()

	repo := newRepo(t, kv, true)
	assert.Equal(t, calorie.StateReady, repo.State())
	assert.Len(t, repo.Foods(), 14)
	assert.Len(t, repo.Entries(), 9)
	require.NoError(t, repo.Initialize(ctx))
	assert.Len(t, repo.Foods(), 14)

	stored := store.LoadCollection[[]model.FoodItem](ctx, kv, store.NamespaceFoods)
	assert.Len(t, stored, 14)

	reopened := newRepo(t, kv, true)
	assert.Equal(t, repo.Foods()[0].ID, reopened.Foods()[0].ID)
}

func TestInitializeSeedFailureLeavesUninitialized(t *testing.T) {
	t.Parallel()
	kv := &flakyKV{Memory: store.NewMemory(), failWrites: true}
	repo := calorie.New(calorie.Options{Store: kv, Seed: seed.Catalog{}, Now: func() time.Time { return testNow }})

	err := repo.Initialize(context.Background())
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, calorie.StateUninitialized, repo.State())
	assert.Equal(t, err, repo.Err())
}

func TestCreateEntryRequiresExistingFood(t *testing.T) {
	t.Parallel()
	repo := newRepo(t, store.NewMemory(), false)

	_, err := repo.CreateEntry(context.Background(), calorie.CreateEntryInput{
		FoodID: "missing", Quantity: 1, MealType: model.MealLunch, ConsumedAt: testNow,
	})
	assert.True(t, service.IsNotFound(err))
	assert.Empty(t, repo.Entries())
	assert.Error(t, repo.Err())

	repo.ClearError()
	assert.NoError(t, repo.Err())
}

func TestCreateEntryRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Oats", 150)

	_, err := repo.CreateEntry(context.Background(), calorie.CreateEntryInput{
		FoodID: food.ID, Quantity: 0, MealType: model.MealBreakfast, ConsumedAt: testNow,
	})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Problems, "quantity must be > 0")
	assert.Empty(t, repo.Entries())
}

func TestNonFiniteInputsAreRejectedAndStorageStaysUsable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := newRepo(t, kv, false)
	food := addFood(t, repo, "Oats", 150)

	_, err := repo.CreateEntry(ctx, calorie.CreateEntryInput{
		FoodID: food.ID, Quantity: math.NaN(), MealType: model.MealBreakfast, ConsumedAt: testNow,
	})
	assert.True(t, service.IsValidation(err))
	assert.Empty(t, repo.Entries())

	_, err = repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: math.NaN(), ActivityLevel: model.ActivitySedentary, Goal: model.GoalMaintainWeight,
	})
	assert.True(t, service.IsValidation(err))
	assert.Empty(t, repo.Goals())

	_, err = repo.CreateFood(ctx, calorie.CreateFoodInput{
		Name: "Mystery", Category: model.CategoryOther, ServingSize: "1", ServingUnit: model.UnitPiece,
		Nutrition: model.NutritionVector{Calories: math.Inf(1)},
	})
	assert.True(t, service.IsValidation(err))

	repo.ClearError()
	addEntry(t, repo, food.ID, 1, model.MealBreakfast, testNow)
	require.NoError(t, repo.Err())
	stored := store.LoadCollection[[]model.CalorieEntry](ctx, kv, store.NamespaceEntries)
	assert.Len(t, stored, 1)
	progress := repo.Progress(testNow)
	assert.Equal(t, 150.0, progress.Consumed)
}

func TestReturnedFoodsAndGoalsDoNotAliasState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)

	protein := 10.0
	food, err := repo.CreateFood(ctx, calorie.CreateFoodInput{
		Name: "Tofu", Category: model.CategoryProteins, ServingSize: "100", ServingUnit: model.UnitGram,
		Nutrition: model.NutritionVector{Calories: 80, Protein: &protein},
	})
	require.NoError(t, err)
	protein = 99
	*food.Nutrition.Protein = 50
	*repo.Foods()[0].Nutrition.Protein = 60
	got, ok := repo.Food(food.ID)
	require.True(t, ok)
	*got.Nutrition.Protein = 70
	assert.Equal(t, 10.0, *repo.Foods()[0].Nutrition.Protein)

	fat := 60.0
	goal, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 2000, Fat: &fat, ActivityLevel: model.ActivitySedentary, Goal: model.GoalMaintainWeight,
	})
	require.NoError(t, err)
	fat = 1
	*goal.Fat = 2
	*repo.Goals()[0].Fat = 3
	active, ok := repo.ActiveGoal()
	require.True(t, ok)
	*active.Fat = 4
	active, _ = repo.ActiveGoal()
	assert.Equal(t, 60.0, *active.Fat)
}

func TestCreateFoodValidation(t *testing.T) {
	t.Parallel()
	repo := newRepo(t, store.NewMemory(), false)

	_, err := repo.CreateFood(context.Background(), calorie.CreateFoodInput{
		Name: "  ", Category: "candy", ServingSize: "1", ServingUnit: model.UnitPiece,
		Nutrition: model.NutritionVector{Calories: -5},
	})
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Problems, 3)
	assert.Empty(t, repo.Foods())
}

func TestDeleteFoodReferencedByEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Rice", 130)
	addEntry(t, repo, food.ID, 1, model.MealDinner, testNow)

	err := repo.DeleteFood(ctx, food.ID)
	var re *service.ReferentialIntegrityError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.References)
	_, ok := repo.Food(food.ID)
	assert.True(t, ok)

	unused := addFood(t, repo, "Kale", 30)
	require.NoError(t, repo.DeleteFood(ctx, unused.ID))
	_, ok = repo.Food(unused.ID)
	assert.False(t, ok)

	assert.True(t, service.IsNotFound(repo.DeleteFood(ctx, "nope")))
}

func TestUpdateFoodMergesFields(t *testing.T) {
	t.Parallel()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Toast", 80)

	name := "Sourdough Toast"
	updated, err := repo.UpdateFood(context.Background(), food.ID, calorie.UpdateFoodInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough Toast", updated.Name)
	assert.Equal(t, food.Nutrition.Calories, updated.Nutrition.Calories)
	assert.Equal(t, food.ID, updated.ID)

	_, err = repo.UpdateFood(context.Background(), "missing", calorie.UpdateFoodInput{Name: &name})
	assert.True(t, service.IsNotFound(err))
}

func TestUpdateEntryChecksFoodAndQuantity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Soup", 90)
	entry := addEntry(t, repo, food.ID, 1, model.MealLunch, testNow)

	qty := 2.5
	updated, err := repo.UpdateEntry(ctx, entry.ID, calorie.UpdateEntryInput{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 2.5, updated.Quantity)

	missing := "missing"
	_, err = repo.UpdateEntry(ctx, entry.ID, calorie.UpdateEntryInput{FoodID: &missing})
	assert.True(t, service.IsNotFound(err))

	zero := 0.0
	_, err = repo.UpdateEntry(ctx, entry.ID, calorie.UpdateEntryInput{Quantity: &zero})
	assert.True(t, service.IsValidation(err))

	got, _ := repo.Entry(entry.ID)
	assert.Equal(t, 2.5, got.Quantity)
	assert.Equal(t, food.ID, got.FoodID)
}

func TestGoalActivationKeepsSingleActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)

	first, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 2000, ActivityLevel: model.ActivitySedentary, Goal: model.GoalMaintainWeight,
	})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 1800, ActivityLevel: model.ActivityVeryActive, Goal: model.GoalLoseWeight,
	})
	require.NoError(t, err)

	active, ok := repo.ActiveGoal()
	require.True(t, ok)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, 1, countActive(repo.Goals()))

	yes := true
	_, err = repo.UpdateGoal(ctx, first.ID, calorie.UpdateGoalInput{IsActive: &yes})
	require.NoError(t, err)
	active, _ = repo.ActiveGoal()
	assert.Equal(t, first.ID, active.ID)
	assert.Equal(t, 1, countActive(repo.Goals()))

	no := false
	inactive, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 2500, ActivityLevel: model.ActivitySedentary, Goal: model.GoalGainWeight, IsActive: &no,
	})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)
	active, _ = repo.ActiveGoal()
	assert.Equal(t, first.ID, active.ID)

	_, err = repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 700, ActivityLevel: model.ActivitySedentary, Goal: model.GoalLoseWeight,
	})
	assert.True(t, service.IsValidation(err))

	require.NoError(t, repo.DeleteGoal(ctx, inactive.ID))
	assert.Len(t, repo.Goals(), 2)
}

func countActive(goals []model.CalorieGoal) int {
	n := 0
	for _, g := range goals {
		if g.IsActive {
			n++
		}
	}
	return n
}

func TestStorageFailureKeepsMutationAndRecordsError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := &flakyKV{Memory: store.NewMemory()}
	repo := newRepo(t, kv, false)

	kv.failWrites = true
	food, err := repo.CreateFood(ctx, calorie.CreateFoodInput{
		Name: "Pasta", Category: model.CategoryGrains, ServingSize: "100", ServingUnit: model.UnitGram,
		Nutrition: model.NutritionVector{Calories: 131},
	})
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Pasta", food.Name)
	_, ok := repo.Food(food.ID)
	assert.True(t, ok)
	assert.ErrorAs(t, repo.Err(), &se)

	kv.failWrites = false
	assert.Empty(t, store.LoadCollection[[]model.FoodItem](ctx, kv, store.NamespaceFoods))
}

func TestProgressUsesActiveGoalOrDefault(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Pizza", 550)
	addEntry(t, repo, food.ID, 4, model.MealDinner, testNow)

	progress := repo.Progress(testNow)
	assert.Equal(t, 2200.0, progress.Consumed)
	assert.Equal(t, 2000.0, progress.Goal)
	assert.Equal(t, 0.0, progress.Remaining)
	assert.Equal(t, 110, progress.Percentage)

	_, err := repo.CreateGoal(ctx, calorie.CreateGoalInput{
		DailyCalories: 2750, ActivityLevel: model.ActivityVeryActive, Goal: model.GoalGainWeight,
	})
	require.NoError(t, err)
	progress = repo.Progress(testNow)
	assert.Equal(t, 550.0, progress.Remaining)
	assert.Equal(t, 80, progress.Percentage)
}

func TestQuickAddDuplicateAndCopyYesterday(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Yogurt", 100)

	quick, err := repo.QuickAddEntry(ctx, food.ID, 1, "after gym")
	require.NoError(t, err)
	assert.Equal(t, model.MealLunch, quick.MealType)
	assert.Equal(t, testNow, quick.ConsumedAt)

	evening := time.Date(2026, 5, 14, 19, 15, 0, 0, time.UTC)
	dup, err := repo.DuplicateEntry(ctx, quick.ID, evening)
	require.NoError(t, err)
	assert.Equal(t, model.MealDinner, dup.MealType)
	assert.Equal(t, "after gym", dup.Notes)
	assert.NotEqual(t, quick.ID, dup.ID)

	_, err = repo.DuplicateEntry(ctx, "missing", time.Time{})
	assert.True(t, service.IsNotFound(err))

	yesterday := testNow.AddDate(0, 0, -1)
	addEntry(t, repo, food.ID, 2, model.MealBreakfast, time.Date(2026, 5, 13, 7, 30, 0, 0, time.UTC))
	addEntry(t, repo, food.ID, 1, model.MealSnack, yesterday)

	copied := repo.CopyYesterdayEntries(ctx)
	require.Len(t, copied, 2)
	for _, e := range copied {
		assert.True(t, service.SameDay(e.ConsumedAt, testNow))
	}
	assert.Len(t, repo.EntriesForDate(testNow), 4)
}

func TestAddMultipleEntriesSkipsInvalid(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t, store.NewMemory(), false)
	food := addFood(t, repo, "Beans", 120)

	added := repo.AddMultipleEntries(ctx, []calorie.CreateEntryInput{
		{FoodID: food.ID, Quantity: 1, MealType: model.MealLunch, ConsumedAt: testNow},
		{FoodID: "ghost", Quantity: 1, MealType: model.MealLunch, ConsumedAt: testNow},
		{FoodID: food.ID, Quantity: -1, MealType: model.MealLunch, ConsumedAt: testNow},
		{FoodID: food.ID, Quantity: 3, MealType: model.MealDinner, ConsumedAt: testNow},
	})
	assert.Len(t, added, 2)
	assert.Len(t, repo.Entries(), 2)

	deleted := repo.DeleteMultipleEntries(ctx, []string{added[0].ID, "ghost", added[1].ID})
	assert.Equal(t, []string{added[0].ID, added[1].ID}, deleted)
	assert.Empty(t, repo.Entries())
}

func TestSubscribeReceivesEvents(t *testing.T) {
	t.Parallel()
	repo := newRepo(t, store.NewMemory(), false)

	var got []calorie.EventKind
	unsubscribe := repo.Subscribe(func(ev calorie.Event) { got = append(got, ev.Kind) })
	food := addFood(t, repo, "Tofu", 76)
	addEntry(t, repo, food.ID, 1, model.MealDinner, testNow)
	unsubscribe()
	addFood(t, repo, "Tempeh", 192)

	assert.Equal(t, []calorie.EventKind{calorie.EventFoodCreated, calorie.EventEntryCreated}, got)
}

func TestClearAllDataEmptiesStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := newRepo(t, kv, true)

	require.NoError(t, repo.ClearAllData(ctx))
	assert.Empty(t, repo.Foods())
	assert.Equal(t, calorie.StateUninitialized, repo.State())
	size, err := repo.StorageSize(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestSettingsPersist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := newRepo(t, kv, false)

	require.NoError(t, repo.SetSetting(ctx, " User_ID ", " alex "))
	assert.Equal(t, "alex", repo.SettingString(calorie.SettingUserID))

	reopened := newRepo(t, kv, false)
	v, ok := reopened.Setting("user_id")
	require.True(t, ok)
	assert.Equal(t, "alex", v)

	require.NoError(t, reopened.DeleteSetting(ctx, "user_id"))
	assert.Empty(t, reopened.Settings())
	assert.Error(t, reopened.SetSetting(ctx, "  ", "x"))
}

func TestDoctorFindsAndFixesProblems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	older := testNow.Add(-time.Hour)
	require.NoError(t, store.SaveCollection(ctx, kv, store.NamespaceFoods, []model.FoodItem{
		{ID: "f1", Name: "Apple", Category: model.CategoryFruits, ServingSize: "1", ServingUnit: model.UnitPiece},
	}))
	require.NoError(t, store.SaveCollection(ctx, kv, store.NamespaceEntries, []model.CalorieEntry{
		{ID: "e1", FoodID: "f1", Quantity: 1, MealType: model.MealSnack, ConsumedAt: testNow},
		{ID: "e2", FoodID: "gone", Quantity: 1, MealType: model.MealSnack, ConsumedAt: testNow},
	}))
	require.NoError(t, store.SaveCollection(ctx, kv, store.NamespaceGoals, []model.CalorieGoal{
		{ID: "g1", DailyCalories: 2000, IsActive: true, UpdatedAt: older},
		{ID: "g2", DailyCalories: 1800, IsActive: true, UpdatedAt: testNow},
	}))
	repo := newRepo(t, kv, false)

	report, err := repo.Doctor(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DanglingEntries)
	assert.Equal(t, 2, report.ActiveGoals)
	assert.False(t, report.Healthy())
	assert.Len(t, repo.Entries(), 2)

	report, err = repo.Doctor(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.RemovedEntries)
	assert.Equal(t, 1, report.DeactivatedGoals)
	active, ok := repo.ActiveGoal()
	require.True(t, ok)
	assert.Equal(t, "g2", active.ID)

	after, err := repo.Doctor(ctx, false)
	require.NoError(t, err)
	assert.True(t, after.Healthy())
}
