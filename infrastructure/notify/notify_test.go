package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/models"
)

func qty(v int64) *int64 { return &v }

func completedSheet(id int64, completedAt time.Time, lines []models.SheetLine) models.Sheet {
	return models.Sheet{
		ID:          id,
		Kind:        models.SheetKindCount,
		Number:      fmt.Sprintf("SAY%03d", id),
		Title:       "weekly",
		Status:      models.SheetStatusCompleted,
		CreatedAt:   completedAt.Add(-time.Hour),
		CompletedAt: &completedAt,
		Lines:       lines,
	}
}

func TestDeriveNewSheetInsideWindow(t *testing.T) {
	now := time.Now()
	sheets := []models.Sheet{{
		ID:        1,
		Kind:      models.SheetKindCount,
		Number:    "SAY001",
		Title:     "weekly",
		Status:    models.SheetStatusPending,
		CreatedAt: now.Add(-time.Hour),
	}}

	got := Derive(sheets, nil, now)
	require.Len(t, got, 1)
	assert.Equal(t, "new-1", got[0].ID)
	assert.Equal(t, models.NotificationNewSheet, got[0].Kind)
	assert.Equal(t, "/app/sheets/1", got[0].TargetURL)
	assert.False(t, got[0].Read)
}

func TestDeriveSkipsNewEntriesForEventsOlderThanWindow(t *testing.T) {
	now := time.Now()
	sheets := []models.Sheet{{
		ID:        1,
		Kind:      models.SheetKindCount,
		Number:    "SAY001",
		Status:    models.SheetStatusPending,
		CreatedAt: now.Add(-25 * time.Hour),
	}}

	assert.Empty(t, Derive(sheets, nil, now))
}

func TestDeriveKeepsExistingEntriesOlderThanWindow(t *testing.T) {
	now := time.Now()
	existing := []models.Notification{{
		ID:         "new-1",
		Kind:       models.NotificationNewSheet,
		Message:    "New count sheet SAY001 (weekly)",
		HappenedAt: now.Add(-25 * time.Hour),
		Read:       true,
	}}

	got := Derive(nil, existing, now)
	require.Len(t, got, 1)
	assert.Equal(t, "new-1", got[0].ID)
	assert.True(t, got[0].Read)
}

func TestDeriveEvictsOldEntriesOnlyPastCap(t *testing.T) {
	now := time.Now()
	old := models.Notification{
		ID:         "new-999",
		Kind:       models.NotificationNewSheet,
		Message:    "old",
		HappenedAt: now.Add(-72 * time.Hour),
	}

	sheets := make([]models.Sheet, 0, Cap)
	for i := 1; i < Cap; i++ {
		sheets = append(sheets, models.Sheet{
			ID:        int64(i),
			Kind:      models.SheetKindCount,
			Number:    fmt.Sprintf("SAY%03d", i),
			Status:    models.SheetStatusPending,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	got := Derive(sheets, []models.Notification{old}, now)
	require.Len(t, got, Cap)
	assert.Equal(t, "new-999", got[len(got)-1].ID, "old entry survives as the oldest while under cap")

	sheets = append(sheets, models.Sheet{
		ID:        int64(Cap),
		Kind:      models.SheetKindCount,
		Number:    fmt.Sprintf("SAY%03d", Cap),
		Status:    models.SheetStatusPending,
		CreatedAt: now.Add(-time.Duration(Cap) * time.Minute),
	})
	got = Derive(sheets, []models.Notification{old}, now)
	require.Len(t, got, Cap)
	for _, n := range got {
		assert.NotEqual(t, "new-999", n.ID, "old entry falls off once newer ones fill the cap")
	}
}

func TestDeriveCompletionEmitsShortAndOver(t *testing.T) {
	now := time.Now()
	lines := []models.SheetLine{
		{Code: "A", ExpectedQty: 10, CountedQty: qty(7)},
		{Code: "B", ExpectedQty: 5, CountedQty: qty(9)},
		{Code: "C", ExpectedQty: 3, CountedQty: qty(3)},
	}
	got := Derive([]models.Sheet{completedSheet(4, now.Add(-time.Minute), lines)}, nil, now)

	ids := make([]string, 0, len(got))
	for _, n := range got {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"new-4", "completed-4", "short-4", "over-4"}, ids)
}

func TestDeriveExactCompletionEmitsNoVarianceEntries(t *testing.T) {
	now := time.Now()
	lines := []models.SheetLine{{Code: "A", ExpectedQty: 10, CountedQty: qty(10)}}
	got := Derive([]models.Sheet{completedSheet(2, now.Add(-time.Minute), lines)}, nil, now)

	for _, n := range got {
		assert.NotEqual(t, models.NotificationShortage, n.Kind)
		assert.NotEqual(t, models.NotificationOverage, n.Kind)
	}
}

func TestDerivePreservesReadFlags(t *testing.T) {
	now := time.Now()
	sheets := []models.Sheet{{
		ID:        1,
		Kind:      models.SheetKindCount,
		Number:    "SAY001",
		Status:    models.SheetStatusPending,
		CreatedAt: now.Add(-time.Hour),
	}}
	existing := []models.Notification{{ID: "new-1", Read: true}}

	got := Derive(sheets, existing, now)
	require.Len(t, got, 1)
	assert.True(t, got[0].Read)
}

func TestDeriveSortsNewestFirstAndCaps(t *testing.T) {
	now := time.Now()
	sheets := make([]models.Sheet, 0, 60)
	for i := 1; i <= 60; i++ {
		sheets = append(sheets, models.Sheet{
			ID:        int64(i),
			Kind:      models.SheetKindCount,
			Number:    fmt.Sprintf("SAY%03d", i),
			Status:    models.SheetStatusPending,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	got := Derive(sheets, nil, now)
	require.Len(t, got, Cap)
	assert.Equal(t, "new-1", got[0].ID)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].HappenedAt.After(got[i-1].HappenedAt))
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	now := time.Now()
	lines := []models.SheetLine{{Code: "A", ExpectedQty: 10, CountedQty: qty(7)}}
	sheets := []models.Sheet{completedSheet(3, now.Add(-time.Minute), lines)}

	once := Derive(sheets, nil, now)
	twice := Derive(sheets, once, now)
	assert.Equal(t, once, twice)
}
