package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"reminder_webapp/internal/domain"
	"reminder_webapp/internal/logger"
	"reminder_webapp/internal/storage"

	"github.com/google/uuid"
)

const tasksBlobKey = "tasks"

// CompletionHook is invoked exactly once per task transition from
// incomplete to complete.
type CompletionHook func(task *domain.Task)

// TaskStore owns the task list for the single user session. All mutations
// are atomic under one mutex; persistence is best-effort and the in-memory
// state stays authoritative when a write fails.
type TaskStore struct {
	mu    sync.Mutex
	tasks []*domain.Task

	blobs storage.BlobStore
	loc   *time.Location
	now   func() time.Time

	onComplete CompletionHook
}

// NewTaskStore loads any persisted tasks from blobs. A missing blob means a
// fresh store; a corrupt blob is logged and replaced by an empty list.
func NewTaskStore(ctx context.Context, blobs storage.BlobStore, loc *time.Location) *TaskStore {
	s := &TaskStore{
		blobs: blobs,
		loc:   loc,
		now:   time.Now,
	}

	data, err := blobs.Load(ctx, tasksBlobKey)
	switch {
	case err == storage.ErrNotFound:
		// first run
	case err != nil:
		logger.Error("load tasks blob failed, starting empty", "err", err)
	default:
		if err := json.Unmarshal(data, &s.tasks); err != nil {
			logger.Error("tasks blob corrupt, starting empty", "err", err)
			s.tasks = nil
		}
	}
	return s
}

// OnComplete registers the hook fired when a task transitions to complete.
func (s *TaskStore) OnComplete(hook CompletionHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onComplete = hook
}

// SetClock overrides the time source, for tests.
func (s *TaskStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Add creates a task. Title must be non-blank and the deadline a real
// point in time.
func (s *TaskStore) Add(title string, deadline time.Time) (*domain.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if deadline.IsZero() {
		return nil, &domain.ValidationError{Field: "deadline", Reason: "must be a valid time"}
	}

	s.mu.Lock()
	task := &domain.Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Deadline:  deadline,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, task)
	s.persistLocked()
	s.mu.Unlock()

	return task, nil
}

// Complete marks the task done. Completing an already-completed task is an
// idempotent no-op; an unknown id reports domain.ErrTaskNotFound. The
// completion hook fires exactly once, on the incomplete->complete transition.
func (s *TaskStore) Complete(id string) error {
	s.mu.Lock()
	task := s.findLocked(id)
	if task == nil {
		s.mu.Unlock()
		return domain.ErrTaskNotFound
	}
	if task.Completed {
		s.mu.Unlock()
		return nil
	}

	now := s.now()
	task.Completed = true
	task.CompletedAt = &now
	s.persistLocked()
	hook := s.onComplete
	snapshot := *task
	s.mu.Unlock()

	if hook != nil {
		hook(&snapshot)
	}
	return nil
}

// Delete removes the task unconditionally. Unknown ids are not an error.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Get returns a copy of the task, or ErrTaskNotFound.
func (s *TaskStore) Get(id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findLocked(id)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	snapshot := *task
	return &snapshot, nil
}

// List returns copies of all tasks, newest first.
func (s *TaskStore) List() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		snapshot := *t
		out = append(out, &snapshot)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// DisciplineScore is the percentage of tasks completed out of all tasks
// currently in the store. An empty store scores 100.
func (s *TaskStore) DisciplineScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) == 0 {
		return 100
	}
	completed := 0
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return int(float64(completed)/float64(len(s.tasks))*100 + 0.5)
}

// PendingCount counts incomplete tasks whose deadline has not passed.
func (s *TaskStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed && !t.Overdue(now) {
			n++
		}
	}
	return n
}

// OverdueCount counts incomplete tasks whose deadline has passed.
func (s *TaskStore) OverdueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for _, t := range s.tasks {
		if t.Overdue(now) {
			n++
		}
	}
	return n
}

// MarkNotified sets the one-shot overdue-notification flag. Returns false
// if the task no longer exists or was already flagged.
func (s *TaskStore) MarkNotified(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findLocked(id)
	if task == nil || task.NotifiedOverdue {
		return false
	}
	task.NotifiedOverdue = true
	s.persistLocked()
	return true
}

// NotifiedIDs returns the ids already flagged as notified. The overdue
// monitor seeds its dedup set from this on restart.
func (s *TaskStore) NotifiedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, t := range s.tasks {
		if t.NotifiedOverdue {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (s *TaskStore) findLocked(id string) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// persistLocked writes the task list blob. Failures are logged only; the
// next mutation retries naturally.
func (s *TaskStore) persistLocked() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		logger.Error("marshal tasks failed", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.blobs.Save(ctx, tasksBlobKey, data); err != nil {
		serr := &domain.StorageError{Op: "save", Key: tasksBlobKey, Err: err}
		logger.Error("persist tasks failed, keeping in-memory state", "err", serr)
	}
}
