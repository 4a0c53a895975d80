package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"reminder_webapp/internal/domain"
	"reminder_webapp/internal/notify"
	"reminder_webapp/internal/storage"
	"reminder_webapp/internal/store"
)

type memBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemBlob() *memBlob { return &memBlob{data: make(map[string][]byte)} }

func (m *memBlob) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.data[key]; ok {
		return d, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memBlob) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBlob) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memBlob) Close() error { return nil }

type fakeNotifier struct {
	mu    sync.Mutex
	shown []string
}

func (f *fakeNotifier) RequestPermission() notify.Permission { return notify.PermissionGranted }

func (f *fakeNotifier) Show(_, _, dedupTag string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = append(f.shown, dedupTag)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.shown)
}

func newFixture(t *testing.T) (*store.TaskStore, *store.HistoryStore, *fakeNotifier, *Monitor) {
	t.Helper()
	blob := newMemBlob()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	tasks := store.NewTaskStore(context.Background(), blob, time.UTC)
	tasks.SetClock(func() time.Time { return now })
	history := store.NewHistoryStore(context.Background(), blob, time.UTC, 30)
	history.SetClock(func() time.Time { return now })

	notifier := &fakeNotifier{}
	m := New(tasks, history, notifier, time.Minute)
	m.SetClock(func() time.Time { return now })
	return tasks, history, notifier, m
}

func TestScanNotifiesOverdueTaskOnce(t *testing.T) {
	tasks, history, notifier, m := newFixture(t)

	task, err := tasks.Add("Pay rent", time.Date(2026, 2, 20, 11, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	var cbCalls int
	m.OnOverdue(func(got *domain.Task) {
		cbCalls++
		if got.ID != task.ID {
			t.Fatalf("callback task id = %s; want %s", got.ID, task.ID)
		}
	})

	// repeated ticks must produce exactly one notification
	for i := 0; i < 5; i++ {
		m.Scan()
	}

	if cbCalls != 1 {
		t.Fatalf("callback fired %d times; want 1", cbCalls)
	}
	if got := notifier.count(); got != 1 {
		t.Fatalf("notifier shown %d times; want 1", got)
	}

	got, _ := tasks.Get(task.ID)
	if !got.NotifiedOverdue {
		t.Fatal("task not flagged notified_overdue")
	}
	if bucket := history.Stats("2026-02-20"); bucket.Missed != 1 {
		t.Fatalf("today's missed = %d; want 1", bucket.Missed)
	}
}

func TestCompletedBeforeDeadlineNeverNotifies(t *testing.T) {
	tasks, _, notifier, m := newFixture(t)

	task, err := tasks.Add("early finish", time.Date(2026, 2, 20, 13, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := tasks.Complete(task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// deadline passes, ticks continue
	later := time.Date(2026, 2, 20, 14, 0, 0, 0, time.UTC)
	m.SetClock(func() time.Time { return later })
	tasks.SetClock(func() time.Time { return later })
	for i := 0; i < 3; i++ {
		m.Scan()
	}

	if got := notifier.count(); got != 0 {
		t.Fatalf("completed task produced %d notifications; want 0", got)
	}
}

func TestFutureDeadlineNotNotified(t *testing.T) {
	tasks, _, notifier, m := newFixture(t)

	if _, err := tasks.Add("not due yet", time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("add: %v", err)
	}
	m.Scan()

	if got := notifier.count(); got != 0 {
		t.Fatalf("future task produced %d notifications; want 0", got)
	}
}

func TestDedupSetSeededFromNotifiedFlags(t *testing.T) {
	blob := newMemBlob()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)

	tasks := store.NewTaskStore(context.Background(), blob, time.UTC)
	tasks.SetClock(func() time.Time { return now })
	history := store.NewHistoryStore(context.Background(), blob, time.UTC, 30)

	task, _ := tasks.Add("already seen", now.Add(-time.Hour))
	tasks.MarkNotified(task.ID)

	// simulate restart: fresh stores over the same blobs
	tasks2 := store.NewTaskStore(context.Background(), blob, time.UTC)
	tasks2.SetClock(func() time.Time { return now })

	notifier := &fakeNotifier{}
	m := New(tasks2, history, notifier, time.Minute)
	m.SetClock(func() time.Time { return now })
	m.Scan()

	if got := notifier.count(); got != 0 {
		t.Fatalf("restart re-notified %d times; want 0", got)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	_, _, _, m := newFixture(t)

	m.Stop() // never started

	m.Start()
	m.Start() // second start is a no-op
	if !m.Running() {
		t.Fatal("monitor not running after Start")
	}

	m.Stop()
	m.Stop()
	if m.Running() {
		t.Fatal("monitor still running after Stop")
	}
}

func TestRestartReplacesTimer(t *testing.T) {
	_, _, _, m := newFixture(t)

	m.Start()
	m.Restart(2 * time.Second)
	if got := m.Interval(); got != 2*time.Second {
		t.Fatalf("Interval() = %v; want 2s", got)
	}
	if !m.Running() {
		t.Fatal("monitor not running after Restart")
	}
	m.Stop()
}

func TestIntervalClamping(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultInterval},
		{time.Millisecond, MinInterval},
		{time.Hour, MaxInterval},
		{30 * time.Second, 30 * time.Second},
	}

	for _, tc := range cases {
		if got := clampInterval(tc.in); got != tc.want {
			t.Fatalf("clampInterval(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestPanickingCallbackDoesNotAbortScan(t *testing.T) {
	tasks, _, notifier, m := newFixture(t)

	if _, err := tasks.Add("first", time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if _, err := tasks.Add("second", time.Date(2026, 2, 20, 11, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	m.OnOverdue(func(*domain.Task) { panic(errors.New("boom")) })
	m.Scan()

	// both tasks notified despite the callback panicking each time
	if got := notifier.count(); got != 2 {
		t.Fatalf("notified %d tasks; want 2", got)
	}
}
