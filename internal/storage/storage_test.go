package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripplanner/internal/models"
)

func samplePlan(at time.Time, destination string, total float64) *models.Plan {
	return &models.Plan{
		CreatedAt: at,
		Request: models.PlanRequest{
			TripRequest: models.TripRequest{Origin: "London", Destination: destination, Duration: 3, Budget: models.BudgetTierMidRange},
			Interests:   []string{"food"},
			Pace:        models.PaceRelaxed,
		},
		Currency: "EUR",
		Estimate: models.CostEstimate{TotalCost: total},
		Markdown: "# Plan",
	}
}

func TestPlanStoreRoundTrip(t *testing.T) {
	store, err := NewPlanStore(filepath.Join(t.TempDir(), "plans"))
	require.NoError(t, err)

	at := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)
	plan := samplePlan(at, "Paris", 2480)

	id, err := store.Save(plan)
	require.NoError(t, err)
	assert.Equal(t, "20261017_093005", id)
	assert.Equal(t, id, plan.ID)
	assert.FileExists(t, filepath.Join(store.Dir(), "plan_20261017_093005.json"))

	loaded, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, "Paris", loaded.Request.Destination)
	assert.True(t, at.Equal(loaded.CreatedAt))
	assert.Equal(t, 2480.0, loaded.Estimate.TotalCost)
	assert.Equal(t, "# Plan", loaded.Markdown)
}

func TestPlanStoreCollision(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	require.NoError(t, err)

	at := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)
	first, err := store.Save(samplePlan(at, "Paris", 1))
	require.NoError(t, err)
	second, err := store.Save(samplePlan(at, "Rome", 2))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^20261017_093005_[0-9a-f]{8}$`, second)

	loaded, err := store.Load(second)
	require.NoError(t, err)
	assert.Equal(t, "Rome", loaded.Request.Destination)
}

func TestPlanStoreListAndDelete(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	require.NoError(t, err)

	base := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	for i, dest := range []string{"Paris", "Tokyo"} {
		_, err := store.Save(samplePlan(base.Add(time.Duration(i)*time.Minute), dest, float64(i)))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "plan_20261017_100000.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Paris", list[0].Destination)
	assert.Equal(t, "Tokyo", list[1].Destination)

	require.NoError(t, store.Delete(list[0].ID))
	assert.ErrorIs(t, store.Delete(list[0].ID), ErrPlanNotFound)

	_, err = store.Load(list[0].ID)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanStoreRejectsBadIDs(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"", "../secret", "20261017", "20261017_093005/../../x"} {
		_, err := store.Load(id)
		assert.ErrorIs(t, err, ErrInvalidPlanID, id)
		assert.ErrorIs(t, store.Delete(id), ErrInvalidPlanID, id)
	}
}

func TestFeedbackStoreAppend(t *testing.T) {
	store, err := NewFeedbackStore(t.TempDir())
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2026, 10, 17, 14, 5, 0, 0, time.UTC) }

	ts, err := store.Append(models.FeedbackRequest{Destination: "Tokyo", Duration: 4, Rating: 5, Comments: "Great, \"really\" great"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17 14:05:00", ts)

	_, err = store.Append(models.FeedbackRequest{Destination: "Paris", Duration: 2, Rating: 3, Comments: "ok"})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(store.dir, "feedback_202610.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Destination", "Duration", "Rating", "Comments"}, rows[0])
	assert.Equal(t, []string{"2026-10-17 14:05:00", "Tokyo", "4", "5", "Great, \"really\" great"}, rows[1])
	assert.Equal(t, "Paris", rows[2][1])
}

func TestFeedbackStoreValidation(t *testing.T) {
	store, err := NewFeedbackStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Append(models.FeedbackRequest{Rating: 0, Comments: "x"})
	assert.ErrorIs(t, err, models.ErrInvalidRating)

	_, err = store.Append(models.FeedbackRequest{Rating: 4, Comments: "   "})
	assert.ErrorIs(t, err, models.ErrEmptyComments)

	_, statErr := os.Stat(store.PathFor(time.Now()))
	assert.True(t, os.IsNotExist(statErr))
}
