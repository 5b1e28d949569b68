package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"backend/models"

	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory persistence gateway. Stored records are deep
// copies, so later in-memory mutations never leak into the "durable" state.
type memRepo struct {
	mu       sync.Mutex
	docs     map[string]*models.NutritionLog
	failLoad bool
	failSave bool
	saves    int
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string]*models.NutritionLog{}}
}

func cloneLog(log *models.NutritionLog) *models.NutritionLog {
	out := *log
	out.Entries = make([]models.LogEntry, len(log.Entries))
	copy(out.Entries, log.Entries)
	return &out
}

func (r *memRepo) Load(_ context.Context, userID uint, date string) (*models.NutritionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLoad {
		return nil, &PersistenceError{Op: "load", Err: errors.New("gateway down")}
	}
	stored, ok := r.docs[models.LogDocKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return cloneLog(stored), nil
}

func (r *memRepo) Save(_ context.Context, log *models.NutritionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return &PersistenceError{Op: "save", Err: errors.New("gateway down")}
	}
	r.saves++
	r.docs[models.LogDocKey(log.UserID, log.Date)] = cloneLog(log)
	return nil
}

func (r *memRepo) Range(_ context.Context, userID uint, from, to string) ([]models.NutritionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NutritionLog
	for _, doc := range r.docs {
		if doc.UserID == userID && doc.Date >= from && doc.Date <= to {
			out = append(out, *cloneLog(doc))
		}
	}
	return out, nil
}

func mustEntry(t *testing.T, calories float64) models.LogEntry {
	t.Helper()
	entry, err := NewLogEntry(models.CatalogItem{Name: "Test Food", Calories: calories, Protein: 1, Carbs: 2, Fats: 3}, 100)
	require.NoError(t, err)
	return entry
}

func TestAddEntriesKeepsTotalsConsistent(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	log, err := svc.Load(ctx, 1, "2024-06-01")
	require.NoError(t, err)
	require.Empty(t, log.Entries)
	require.Equal(t, models.NutritionTotals{}, log.Totals)

	a := mustEntry(t, 200)
	b := mustEntry(t, 100)
	require.NoError(t, svc.AddEntry(ctx, log, a))
	require.NoError(t, svc.AddEntry(ctx, log, b))

	require.Equal(t, 300.0, log.Totals.Calories)
	require.Equal(t, models.SumEntries(log.Entries), log.Totals)

	// what was persisted satisfies the same invariant
	stored, err := svc.Load(ctx, 1, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, stored.Entries, 2)
	require.Equal(t, models.SumEntries(stored.Entries), stored.Totals)

	require.NoError(t, svc.RemoveEntry(ctx, log, a.EntryID))
	require.Equal(t, 100.0, log.Totals.Calories)
	require.Equal(t, models.SumEntries(log.Entries), log.Totals)
}

func TestAddThenRemoveRoundTripsTotals(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	log, _ := svc.Load(ctx, 1, "2024-06-01")
	require.NoError(t, svc.AddEntry(ctx, log, mustEntry(t, 321.5)))
	before := log.Totals

	extra := mustEntry(t, 99.9)
	require.NoError(t, svc.AddEntry(ctx, log, extra))
	require.NoError(t, svc.RemoveEntry(ctx, log, extra.EntryID))

	require.Equal(t, before, log.Totals)
}

func TestRemoveMissingEntryIsNoOp(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	log, _ := svc.Load(ctx, 1, "2024-06-01")
	require.NoError(t, svc.AddEntry(ctx, log, mustEntry(t, 150)))
	savesBefore := repo.saves
	totalsBefore := log.Totals

	require.NoError(t, svc.RemoveEntry(ctx, log, "no-such-id"))

	require.Len(t, log.Entries, 1)
	require.Equal(t, totalsBefore, log.Totals)
	require.Equal(t, savesBefore, repo.saves, "a no-op removal must not write")
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	log, _ := svc.Load(ctx, 1, "2024-06-01")
	names := []string{"first", "second", "third"}
	for _, n := range names {
		entry, err := NewLogEntry(models.CatalogItem{Name: n, Calories: 10}, 100)
		require.NoError(t, err)
		require.NoError(t, svc.AddEntry(ctx, log, entry))
	}

	stored, _ := svc.Load(ctx, 1, "2024-06-01")
	for i, n := range names {
		require.Equal(t, n, stored.Entries[i].Name)
	}
}

func TestWriteFailureKeepsOptimisticState(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	log, _ := svc.Load(ctx, 1, "2024-06-01")
	repo.failSave = true

	entry := mustEntry(t, 150)
	err := svc.AddEntry(ctx, log, entry)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	// not rolled back: the UI may show entries that are not durable yet
	require.Len(t, log.Entries, 1)
	require.Equal(t, 150.0, log.Totals.Calories)
	require.Empty(t, repo.docs)
}

func TestLoadFailurePresentsEmptyLog(t *testing.T) {
	repo := newMemRepo()
	repo.failLoad = true
	svc := NewNutritionLogService(repo, nil)

	log, err := svc.Load(context.Background(), 1, "2024-06-01")

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	require.NotNil(t, log)
	require.Empty(t, log.Entries)
	require.Equal(t, models.NutritionTotals{}, log.Totals)
}

func TestNotifyRunsAfterDurableWriteOnly(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	notified := 0
	svc.SetNotify(func(*models.NutritionLog) { notified++ })

	log, _ := svc.Load(ctx, 1, "2024-06-01")
	require.NoError(t, svc.AddEntry(ctx, log, mustEntry(t, 100)))
	require.Equal(t, 1, notified)

	repo.failSave = true
	_ = svc.AddEntry(ctx, log, mustEntry(t, 100))
	require.Equal(t, 1, notified, "failed writes must not fan out")
}

func TestTrackerSessionDateIsolation(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	session := NewTrackerSession(svc, 7, "2024-06-01")
	require.NoError(t, session.Load(ctx))

	entry, err := session.AddFood(ctx, models.CatalogItem{Name: "Oats", Calories: 389, Protein: 16.9, Carbs: 66.3, Fats: 6.9}, 50)
	require.NoError(t, err)
	require.Len(t, session.Log().Entries, 1)

	// next day is empty
	require.NoError(t, session.Shift(ctx, 1))
	require.Equal(t, "2024-06-02", session.Date())
	require.Empty(t, session.Log().Entries)
	require.Equal(t, models.NutritionTotals{}, session.Log().Totals)

	// back to the first day: the entry is present with identical values
	require.NoError(t, session.Shift(ctx, -1))
	require.Equal(t, "2024-06-01", session.Date())
	require.Len(t, session.Log().Entries, 1)
	got := session.Log().Entries[0]
	require.Equal(t, entry.EntryID, got.EntryID)
	require.Equal(t, entry.Calories, got.Calories)
	require.Equal(t, entry.Protein, got.Protein)
	require.Equal(t, entry.Carbs, got.Carbs)
	require.Equal(t, entry.Fats, got.Fats)
}

func TestTrackerSessionShiftCrossesMonthBoundary(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	session := NewTrackerSession(svc, 7, "2024-06-30")
	require.NoError(t, session.Load(ctx))
	require.NoError(t, session.Shift(ctx, 1))
	require.Equal(t, "2024-07-01", session.Date())
	require.NoError(t, session.Shift(ctx, -1))
	require.Equal(t, "2024-06-30", session.Date())
}

func TestTrackerSessionRejectsBadAmountWithoutMutation(t *testing.T) {
	repo := newMemRepo()
	svc := NewNutritionLogService(repo, nil)
	ctx := context.Background()

	session := NewTrackerSession(svc, 7, "2024-06-01")
	require.NoError(t, session.Load(ctx))

	_, err := session.AddFood(ctx, models.CatalogItem{Name: "Oats", Calories: 389}, -5)
	require.ErrorIs(t, err, ErrInvalidAmount)
	require.Empty(t, session.Log().Entries)
	require.Equal(t, 0, repo.saves)
}
