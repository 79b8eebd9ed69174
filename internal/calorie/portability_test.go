package calorie_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reidsolon/tracker/internal/calorie"
	"github.com/reidsolon/tracker/internal/model"
	"github.com/reidsolon/tracker/internal/store"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := newRepo(t, store.NewMemory(), true)
	require.NoError(t, src.SetSetting(ctx, "user_id", "sam"))

	for _, format := range []calorie.Format{calorie.FormatJSON, calorie.FormatYAML} {
		raw, err := calorie.EncodeExport(src.Export(ctx), format)
		require.NoError(t, err)

		doc, err := calorie.DecodeExport(raw, format)
		require.NoError(t, err, "format %s", format)
		require.NotNil(t, doc.FoodItems)
		assert.Len(t, *doc.FoodItems, 14)
		assert.Equal(t, testNow.Unix(), doc.ExportDate.Unix())

		dst := newRepo(t, store.NewMemory(), false)
		require.NoError(t, dst.Import(ctx, doc))
		assert.Len(t, dst.Foods(), 14)
		assert.Len(t, dst.Entries(), 9)
		assert.Equal(t, "sam", dst.SettingString("user_id"))
		assert.Equal(t, src.DailySummary(testNow).TotalCalories, dst.DailySummary(testNow).TotalCalories)
	}
}

func TestImportPartialDocumentLeavesOtherNamespaces(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := newRepo(t, kv, true)
	foodsBefore := repo.Foods()

	goals := []model.CalorieGoal{{
		ID: "imported", DailyCalories: 1900, IsActive: true,
		ActivityLevel: model.ActivitySedentary, Goal: model.GoalLoseWeight,
	}}
	raw := []byte(`{"calorieGoals":[{"id":"imported","dailyCalories":1900,"activityLevel":"sedentary","goal":"lose-weight","isActive":true}]}`)
	doc, err := calorie.DecodeExport(raw, calorie.FormatJSON)
	require.NoError(t, err)
	assert.Nil(t, doc.FoodItems)

	require.NoError(t, repo.Import(ctx, doc))
	assert.Equal(t, foodsBefore, repo.Foods())
	assert.Len(t, store.LoadCollection[[]model.FoodItem](ctx, kv, store.NamespaceFoods), 14)
	assert.Len(t, store.LoadCollection[[]model.CalorieEntry](ctx, kv, store.NamespaceEntries), 9)
	assert.Equal(t, goals[0].ID, repo.Goals()[0].ID)
	assert.Len(t, repo.Goals(), 1)
}

func TestImportKeepsFirstActiveGoal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := store.NewMemory()
	repo := newRepo(t, kv, false)

	goals := []model.CalorieGoal{
		{ID: "g1", DailyCalories: 1800, ActivityLevel: model.ActivitySedentary, Goal: model.GoalLoseWeight},
		{ID: "g2", DailyCalories: 2000, IsActive: true, ActivityLevel: model.ActivitySedentary, Goal: model.GoalMaintainWeight},
		{ID: "g3", DailyCalories: 2400, IsActive: true, ActivityLevel: model.ActivityVeryActive, Goal: model.GoalGainWeight},
	}
	require.NoError(t, repo.Import(ctx, calorie.ExportDocument{CalorieGoals: &goals}))

	assert.Equal(t, 1, countActive(repo.Goals()))
	active, ok := repo.ActiveGoal()
	require.True(t, ok)
	assert.Equal(t, "g2", active.ID)
	assert.Equal(t, 1, countActive(store.LoadCollection[[]model.CalorieGoal](ctx, kv, store.NamespaceGoals)))
	assert.True(t, goals[2].IsActive)
}

func TestImportStorageFailure(t *testing.T) {
	t.Parallel()
	kv := &flakyKV{Memory: store.NewMemory()}
	repo := newRepo(t, kv, false)
	kv.failWrites = true

	foods := []model.FoodItem{{ID: "f1", Name: "Pear"}}
	err := repo.Import(context.Background(), calorie.ExportDocument{FoodItems: &foods})
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.Empty(t, repo.Foods())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	f, err := calorie.ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, calorie.FormatYAML, f)

	f, err = calorie.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, calorie.FormatJSON, f)

	_, err = calorie.ParseFormat("csv")
	assert.Error(t, err)
}
