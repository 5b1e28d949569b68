package services

import (
	"context"
	"time"

	"backend/models"

	"go.uber.org/zap"
)

// NutritionLogService owns all mutation of daily nutrition logs. Totals are
// recomputed synchronously on every structural change, before the record is
// persisted, so a stored record always satisfies totals == sum(entries).
//
// Mutations are optimistic: the in-memory record is updated first and is kept
// even when the persistence write fails. The UI may therefore briefly show
// entries that are not durable yet; the caller surfaces the error.
type NutritionLogService struct {
	repo   LogRepository
	logger *zap.Logger
	notify func(*models.NutritionLog)
}

func NewNutritionLogService(repo LogRepository, logger *zap.Logger) *NutritionLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionLogService{repo: repo, logger: logger}
}

// SetNotify registers a fanout hook invoked after every durable write, e.g.
// realtime broadcast and goal checks.
func (s *NutritionLogService) SetNotify(fn func(*models.NutritionLog)) {
	s.notify = fn
}

// Load returns the log stored for the key, or a fresh empty log when no
// record exists yet. A gateway read failure also presents as an empty log so
// the client keeps working; the error is still returned for reporting.
func (s *NutritionLogService) Load(ctx context.Context, userID uint, date string) (*models.NutritionLog, error) {
	log, err := s.repo.Load(ctx, userID, date)
	if err != nil {
		s.logger.Warn("nutrition log load failed",
			zap.Uint("user_id", userID), zap.String("date", date), zap.Error(err))
		return models.NewNutritionLog(userID, date), err
	}
	if log == nil {
		return models.NewNutritionLog(userID, date), nil
	}
	return log, nil
}

// AddEntry appends the entry at the end of the log, recomputes totals and
// writes the whole record back.
func (s *NutritionLogService) AddEntry(ctx context.Context, log *models.NutritionLog, entry models.LogEntry) error {
	log.Entries = append(log.Entries, entry)
	log.Recalculate()
	return s.persist(ctx, log)
}

// RemoveEntry drops the entry with the given id, recomputes totals and
// persists. Removing an id that is not present is a no-op, not an error, so a
// double-tap on remove stays harmless.
func (s *NutritionLogService) RemoveEntry(ctx context.Context, log *models.NutritionLog, entryID string) error {
	kept := make([]models.LogEntry, 0, len(log.Entries))
	removed := false
	for _, e := range log.Entries {
		if e.EntryID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return nil
	}
	log.Entries = kept
	log.Recalculate()
	return s.persist(ctx, log)
}

// History returns the stored logs for the trailing window of whole days
// ending today, newest first.
func (s *NutritionLogService) History(ctx context.Context, userID uint, days int) ([]models.NutritionLog, error) {
	if days <= 0 {
		days = 7
	}
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return s.repo.Range(ctx, userID, from.Format(models.DateLayout), to.Format(models.DateLayout))
}

func (s *NutritionLogService) persist(ctx context.Context, log *models.NutritionLog) error {
	// the write key comes from the record itself, never from whatever date is
	// currently selected, so a slow write racing a date change cannot land on
	// the wrong day
	if err := s.repo.Save(ctx, log); err != nil {
		s.logger.Error("nutrition log write failed",
			zap.Uint("user_id", log.UserID), zap.String("date", log.Date), zap.Error(err))
		return err
	}
	if s.notify != nil {
		s.notify(log)
	}
	return nil
}

// TrackerSession is one connected client's view of the tracker: the selected
// date plus the single in-memory log for it. Switching dates discards the
// previous copy and re-reads the gateway, so the session always reflects the
// stored state rather than a stale cache.
type TrackerSession struct {
	svc    *NutritionLogService
	userID uint
	date   string
	log    *models.NutritionLog
}

func NewTrackerSession(svc *NutritionLogService, userID uint, date string) *TrackerSession {
	return &TrackerSession{svc: svc, userID: userID, date: date}
}

func (ts *TrackerSession) Date() string { return ts.date }

// Log exposes the in-memory log; nil before the first Load.
func (ts *TrackerSession) Log() *models.NutritionLog { return ts.log }

// Load replaces the in-memory log with the stored one for the selected date.
// On a read failure the session holds an empty log and stays usable.
func (ts *TrackerSession) Load(ctx context.Context) error {
	log, err := ts.svc.Load(ctx, ts.userID, ts.date)
	ts.log = log
	return err
}

// Shift moves the selected date by whole calendar days and reloads. AddDate
// does calendar arithmetic, so the move is safe across DST transitions.
func (ts *TrackerSession) Shift(ctx context.Context, days int) error {
	day, err := time.Parse(models.DateLayout, ts.date)
	if err != nil {
		return err
	}
	ts.date = day.AddDate(0, 0, days).Format(models.DateLayout)
	return ts.Load(ctx)
}

// AddFood scales the catalog item to the given amount and appends it to the
// selected day's log.
func (ts *TrackerSession) AddFood(ctx context.Context, item models.CatalogItem, amountGrams float64) (models.LogEntry, error) {
	entry, err := NewLogEntry(item, amountGrams)
	if err != nil {
		return models.LogEntry{}, err
	}
	if ts.log == nil {
		ts.log = models.NewNutritionLog(ts.userID, ts.date)
	}
	return entry, ts.svc.AddEntry(ctx, ts.log, entry)
}

// RemoveEntry removes by entry id from the selected day's log.
func (ts *TrackerSession) RemoveEntry(ctx context.Context, entryID string) error {
	if ts.log == nil {
		return nil
	}
	return ts.svc.RemoveEntry(ctx, ts.log, entryID)
}
