package store

import (
	"context"
	"testing"
	"time"

	"reminder_webapp/internal/domain"
)

var testNow = time.Date(2026, 2, 20, 15, 0, 0, 0, time.UTC)

func newTestHistoryStore(t *testing.T, keepDays int) (*HistoryStore, *memBlob) {
	t.Helper()
	blob := newMemBlob()
	s := NewHistoryStore(context.Background(), blob, time.UTC, keepDays)
	s.SetClock(func() time.Time { return testNow })
	return s, blob
}

func TestRecordAndStats(t *testing.T) {
	s, _ := newTestHistoryStore(t, 30)

	s.RecordCompletion()
	s.RecordCompletion()
	s.RecordMissed()

	got := s.Stats("2026-02-20")
	if got.Completed != 2 || got.Missed != 1 {
		t.Fatalf("Stats(today) = %+v; want {2 1}", got)
	}

	if zero := s.Stats("2026-02-19"); zero != (domain.DayBucket{}) {
		t.Fatalf("Stats(absent day) = %+v; want zeros", zero)
	}
}

func TestRecoveryDebt(t *testing.T) {
	s, _ := newTestHistoryStore(t, 30)

	if got := s.RecoveryDebt(); got != 0 {
		t.Fatalf("RecoveryDebt() on empty history = %d; want 0", got)
	}

	// record two misses "yesterday" by shifting the clock back a day
	s.SetClock(func() time.Time { return testNow.AddDate(0, 0, -1) })
	s.RecordMissed()
	s.RecordMissed()
	s.SetClock(func() time.Time { return testNow })

	if got := s.RecoveryDebt(); got != 2 {
		t.Fatalf("RecoveryDebt() = %d; want 2", got)
	}

	// today's misses are not debt yet
	s.RecordMissed()
	if got := s.RecoveryDebt(); got != 2 {
		t.Fatalf("RecoveryDebt() after today's miss = %d; want 2", got)
	}
}

func TestRecentStatsZeroFills(t *testing.T) {
	s, _ := newTestHistoryStore(t, 30)
	s.RecordCompletion()
	s.RecordCompletion()

	got := s.RecentStats(3)
	if len(got) != 3 {
		t.Fatalf("RecentStats(3) returned %d entries", len(got))
	}

	want := []domain.DayStats{
		{Date: "2026-02-18"},
		{Date: "2026-02-19"},
		{Date: "2026-02-20", DayBucket: domain.DayBucket{Completed: 2}},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("RecentStats(3)[%d] = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestOverallCompletionRate(t *testing.T) {
	s, _ := newTestHistoryStore(t, 30)

	if got := s.OverallCompletionRate(); got != 100 {
		t.Fatalf("empty history rate = %d; want 100", got)
	}

	// d1: 3 completed 1 missed, d2: 2 completed -> round(5/6*100) = 83
	s.SetClock(func() time.Time { return testNow.AddDate(0, 0, -1) })
	s.RecordCompletion()
	s.RecordCompletion()
	s.RecordCompletion()
	s.RecordMissed()
	s.SetClock(func() time.Time { return testNow })
	s.RecordCompletion()
	s.RecordCompletion()

	if got := s.OverallCompletionRate(); got != 83 {
		t.Fatalf("OverallCompletionRate() = %d; want 83", got)
	}
}

func TestCurrentStreak(t *testing.T) {
	s, _ := newTestHistoryStore(t, 30)

	if got := s.CurrentStreak(); got != 0 {
		t.Fatalf("streak on empty history = %d; want 0", got)
	}

	// three clean days ending yesterday, today still quiet
	for d := 3; d >= 1; d-- {
		day := testNow.AddDate(0, 0, -d)
		s.SetClock(func() time.Time { return day })
		s.RecordCompletion()
	}
	s.SetClock(func() time.Time { return testNow })
	if got := s.CurrentStreak(); got != 3 {
		t.Fatalf("streak with quiet today = %d; want 3", got)
	}

	// a completion today extends it
	s.RecordCompletion()
	if got := s.CurrentStreak(); got != 4 {
		t.Fatalf("streak after today's completion = %d; want 4", got)
	}

	// a miss today breaks it
	s.RecordMissed()
	if got := s.CurrentStreak(); got != 0 {
		t.Fatalf("streak after today's miss = %d; want 0", got)
	}
}

func TestClearHistory(t *testing.T) {
	s, blob := newTestHistoryStore(t, 30)
	s.RecordCompletion()
	s.Clear()

	if got := s.Stats("2026-02-20"); got != (domain.DayBucket{}) {
		t.Fatalf("Stats after Clear = %+v; want zeros", got)
	}
	if _, err := blob.Load(context.Background(), historyBlobKey); err == nil {
		t.Fatal("history blob still present after Clear")
	}
}

func TestRetentionDropsOldestFirst(t *testing.T) {
	s, _ := newTestHistoryStore(t, 3)

	for d := 5; d >= 0; d-- {
		day := testNow.AddDate(0, 0, -d)
		s.SetClock(func() time.Time { return day })
		s.RecordCompletion()
	}
	s.SetClock(func() time.Time { return testNow })

	if got := s.Stats("2026-02-15"); got != (domain.DayBucket{}) {
		t.Fatalf("oldest bucket survived pruning: %+v", got)
	}
	if got := s.Stats("2026-02-20"); got.Completed != 1 {
		t.Fatalf("most recent bucket lost: %+v", got)
	}
}

func TestHistoryPersistenceRoundtrip(t *testing.T) {
	blob := newMemBlob()
	s := NewHistoryStore(context.Background(), blob, time.UTC, 30)
	s.SetClock(func() time.Time { return testNow })
	s.RecordCompletion()
	s.RecordMissed()

	reloaded := NewHistoryStore(context.Background(), blob, time.UTC, 30)
	got := reloaded.Stats("2026-02-20")
	if got.Completed != 1 || got.Missed != 1 {
		t.Fatalf("reloaded bucket = %+v; want {1 1}", got)
	}
}
