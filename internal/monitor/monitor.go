package monitor

import (
	"sync"
	"time"

	"reminder_webapp/internal/domain"
	"reminder_webapp/internal/logger"
	"reminder_webapp/internal/notify"
	"reminder_webapp/internal/store"
)

const (
	// MinInterval and MaxInterval bound the configurable tick cadence.
	// Shorter intervals detect overdue tasks sooner at proportional CPU
	// cost; anything past a few minutes makes reminders feel broken.
	MinInterval = time.Second
	MaxInterval = 10 * time.Minute

	DefaultInterval = time.Minute
)

// OverdueCallback fires exactly once per task transition into overdue.
type OverdueCallback func(task *domain.Task)

// Monitor periodically scans the task store for tasks whose deadline has
// passed while incomplete, and notifies each at most once. The dedup set is
// session-scoped and reseeded from the tasks' notified flags, so a restart
// never re-fires old notifications.
type Monitor struct {
	tasks    *store.TaskStore
	history  *store.HistoryStore
	notifier notify.Notifier

	mu        sync.Mutex
	notified  map[string]struct{}
	interval  time.Duration
	stop      chan struct{}
	wg        sync.WaitGroup
	onOverdue OverdueCallback
	now       func() time.Time
}

// New builds a stopped monitor. interval is clamped to [MinInterval,
// MaxInterval]; zero selects DefaultInterval.
func New(tasks *store.TaskStore, history *store.HistoryStore, notifier notify.Notifier, interval time.Duration) *Monitor {
	m := &Monitor{
		tasks:    tasks,
		history:  history,
		notifier: notifier,
		notified: make(map[string]struct{}),
		interval: clampInterval(interval),
		now:      time.Now,
	}
	for _, id := range tasks.NotifiedIDs() {
		m.notified[id] = struct{}{}
	}
	return m
}

func clampInterval(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultInterval
	case d < MinInterval:
		return MinInterval
	case d > MaxInterval:
		return MaxInterval
	default:
		return d
	}
}

// OnOverdue registers the overdue-transition callback.
func (m *Monitor) OnOverdue(cb OverdueCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOverdue = cb
}

// SetClock overrides the time source, for tests.
func (m *Monitor) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Interval reports the active cadence.
func (m *Monitor) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Start runs one scan immediately, then ticks at the configured interval.
// Calling Start on a running monitor is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stop = stop
	interval := m.interval
	m.mu.Unlock()

	m.Scan()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Scan()
			case <-stop:
				return
			}
		}
	}()
	logger.Info("overdue monitor started", "interval", interval)
}

// Stop halts ticking and waits for any in-flight scan. Safe to call
// repeatedly and on a never-started monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stop := m.stop
	m.stop = nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	m.wg.Wait()
	logger.Info("overdue monitor stopped")
}

// Restart stops any running timer and starts over with a new cadence, so
// two timers can never overlap.
func (m *Monitor) Restart(interval time.Duration) {
	m.Stop()
	m.mu.Lock()
	m.interval = clampInterval(interval)
	m.mu.Unlock()
	m.Start()
}

// Running reports whether the timer loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop != nil
}

// Scan walks all tasks once and fires the one-shot overdue handling for
// every newly-overdue task. A failure on one task never aborts the rest
// of the pass.
func (m *Monitor) Scan() {
	ScanTicks.Inc()

	m.mu.Lock()
	now := m.now()
	cb := m.onOverdue
	m.mu.Unlock()

	for _, task := range m.tasks.List() {
		if task.Completed || task.NotifiedOverdue || !task.Overdue(now) {
			continue
		}

		m.mu.Lock()
		if _, seen := m.notified[task.ID]; seen {
			m.mu.Unlock()
			continue
		}
		m.notified[task.ID] = struct{}{}
		m.mu.Unlock()

		m.handleOverdue(task, cb)
	}
}

func (m *Monitor) handleOverdue(task *domain.Task, cb OverdueCallback) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("overdue handler panicked", "task_id", task.ID, "panic", r)
		}
	}()

	// Flag first so a crash between notify and persist errs on the side
	// of a missed notification, never a duplicate.
	m.tasks.MarkNotified(task.ID)
	task.NotifiedOverdue = true

	m.notifier.Show("Task overdue", task.Title, "overdue-"+task.ID)
	m.history.RecordMissed()
	OverdueNotifications.Inc()
	logger.Info("task became overdue", "task_id", task.ID, "title", task.Title)

	if cb != nil {
		cb(task)
	}
}
