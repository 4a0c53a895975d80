package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"reminder_webapp/internal/domain"
	"reminder_webapp/internal/logger"
	"reminder_webapp/internal/storage"
)

const historyBlobKey = "history"

// HistoryStore owns the day-keyed completed/missed counters. Buckets are
// created lazily on first event and pruned oldest-first once the retention
// window is exceeded, so a full storage quota degrades by forgetting old
// days rather than recent ones.
type HistoryStore struct {
	mu      sync.Mutex
	buckets map[string]*domain.DayBucket

	blobs    storage.BlobStore
	loc      *time.Location
	now      func() time.Time
	keepDays int
}

// NewHistoryStore loads persisted history. keepDays bounds retention;
// values below 1 fall back to 30.
func NewHistoryStore(ctx context.Context, blobs storage.BlobStore, loc *time.Location, keepDays int) *HistoryStore {
	if keepDays < 1 {
		keepDays = 30
	}
	s := &HistoryStore{
		buckets:  make(map[string]*domain.DayBucket),
		blobs:    blobs,
		loc:      loc,
		now:      time.Now,
		keepDays: keepDays,
	}

	data, err := blobs.Load(ctx, historyBlobKey)
	switch {
	case err == storage.ErrNotFound:
		// first run
	case err != nil:
		logger.Error("load history blob failed, starting empty", "err", err)
	default:
		if err := json.Unmarshal(data, &s.buckets); err != nil {
			logger.Error("history blob corrupt, starting empty", "err", err)
			s.buckets = make(map[string]*domain.DayBucket)
		}
	}
	return s
}

// SetClock overrides the time source, for tests.
func (s *HistoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// RecordCompletion increments today's completed counter.
func (s *HistoryStore) RecordCompletion() {
	s.record(func(b *domain.DayBucket) { b.Completed++ })
}

// RecordMissed increments today's missed counter.
func (s *HistoryStore) RecordMissed() {
	s.record(func(b *domain.DayBucket) { b.Missed++ })
}

func (s *HistoryStore) record(bump func(*domain.DayBucket)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := DayKey(s.now(), s.loc)
	bucket, ok := s.buckets[key]
	if !ok {
		bucket = &domain.DayBucket{}
		s.buckets[key] = bucket
	}
	bump(bucket)
	s.persistLocked()
}

// Stats returns the bucket for dayKey, zeros if absent.
func (s *HistoryStore) Stats(dayKey string) domain.DayBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.buckets[dayKey]; ok {
		return *b
	}
	return domain.DayBucket{}
}

// RecoveryDebt is yesterday's missed count: unresolved misses carried
// forward as today's extra target. Advisory only, never enforced.
func (s *HistoryStore) RecoveryDebt() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	yesterday := DayKey(s.now().AddDate(0, 0, -1), s.loc)
	if b, ok := s.buckets[yesterday]; ok {
		return b.Missed
	}
	return 0
}

// RecentStats returns exactly days consecutive entries ending today,
// oldest first, with zero buckets for days that saw no activity.
func (s *HistoryStore) RecentStats(days int) []domain.DayStats {
	if days < 1 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := dayStart(s.now(), s.loc).AddDate(0, 0, -(days - 1))
	out := make([]domain.DayStats, 0, days)
	for i := 0; i < days; i++ {
		key := DayKey(start.AddDate(0, 0, i), s.loc)
		entry := domain.DayStats{Date: key}
		if b, ok := s.buckets[key]; ok {
			entry.DayBucket = *b
		}
		out = append(out, entry)
	}
	return out
}

// OverallCompletionRate is round(100 * completed / (completed+missed))
// over every bucket; 100 when there is no activity at all.
func (s *HistoryStore) OverallCompletionRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed, total := 0, 0
	for _, b := range s.buckets {
		completed += b.Completed
		total += b.Completed + b.Missed
	}
	if total == 0 {
		return 100
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}

// CurrentStreak counts consecutive clean days (at least one completion,
// zero misses) ending today. A quiet today does not break a streak that
// ran through yesterday.
func (s *HistoryStore) CurrentStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := dayStart(s.now(), s.loc)
	todayKey := DayKey(day, s.loc)
	if b, ok := s.buckets[todayKey]; !ok || (b.Completed == 0 && b.Missed == 0) {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		b, ok := s.buckets[DayKey(day, s.loc)]
		if !ok || b.Completed == 0 || b.Missed > 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Clear empties the history and removes the persisted blob.
func (s *HistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets = make(map[string]*domain.DayBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.blobs.Delete(ctx, historyBlobKey); err != nil {
		logger.Error("delete history blob failed", "err", err)
	}
}

// persistLocked prunes to the retention window, then writes the blob.
// Day keys sort chronologically, so dropping the smallest keys drops the
// oldest days.
func (s *HistoryStore) persistLocked() {
	if len(s.buckets) > s.keepDays {
		keys := make([]string, 0, len(s.buckets))
		for k := range s.buckets {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys[:len(keys)-s.keepDays] {
			delete(s.buckets, k)
		}
	}

	data, err := json.Marshal(s.buckets)
	if err != nil {
		logger.Error("marshal history failed", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.blobs.Save(ctx, historyBlobKey, data); err != nil {
		serr := &domain.StorageError{Op: "save", Key: historyBlobKey, Err: err}
		logger.Error("persist history failed, keeping in-memory state", "err", serr)
	}
}
