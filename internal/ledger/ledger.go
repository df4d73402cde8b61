// Package ledger tracks the durable active/completed task sets derived
// from meeting analysis. All mutation goes through a single mutex and is
// persisted by rewriting the backing store in full.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kararlabs/meetmind/internal/meeting"
	"github.com/kararlabs/meetmind/internal/task"
)

var (
	// ErrNotFound is returned for operations on unknown task ids.
	ErrNotFound = errors.New("task not found")

	// ErrAlreadyCompleted is returned when completing a task twice.
	ErrAlreadyCompleted = errors.New("task already completed")

	// ErrInvalidPriority is returned for priority values outside the enum.
	ErrInvalidPriority = errors.New("invalid priority")
)

// State is the persisted form of the ledger.
type State struct {
	Active    []task.Candidate `json:"active"`
	Completed []task.Candidate `json:"completed"`
}

// Store persists ledger state. Implementations read fully and rewrite
// fully; writes must be atomic from the caller's perspective.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// CleanupResult reports how many entries a cleanup removed.
type CleanupResult struct {
	RemovedActive    int `json:"removed_active"`
	RemovedCompleted int `json:"removed_completed"`
}

// Ledger merges, completes, and cleans up task candidates. Safe for
// concurrent use.
type Ledger struct {
	mu    sync.Mutex
	store Store
	state State
}

// Open loads existing state from the store.
func Open(store Store) (*Ledger, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return &Ledger{store: store, state: state}, nil
}

// Active returns a copy of the active task set.
func (l *Ledger) Active() []task.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]task.Candidate(nil), l.state.Active...)
}

// Completed returns a copy of the completed task set.
func (l *Ledger) Completed() []task.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]task.Candidate(nil), l.state.Completed...)
}

// Empty reports whether the ledger holds no tasks at all. An empty ledger
// triggers bootstrap extraction over all meetings.
func (l *Ledger) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state.Active) == 0 && len(l.state.Completed) == 0
}

// ActiveForMeeting returns active tasks belonging to the given meeting.
func (l *Ledger) ActiveForMeeting(m meeting.Ref) []task.Candidate {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []task.Candidate
	for _, t := range l.state.Active {
		if t.MeetingDate == m.Date && t.MeetingTopic == m.Topic {
			out = append(out, t)
		}
	}
	return out
}

// MergeNew appends candidates whose titles are not already present in the
// active set. Existing tasks are never overwritten. Returns the number of
// tasks actually added.
func (l *Ledger) MergeNew(candidates []task.Candidate) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing := make(map[string]bool, len(l.state.Active))
	for _, t := range l.state.Active {
		existing[t.Title] = true
	}

	added := 0
	for _, c := range candidates {
		if existing[c.Title] {
			continue
		}
		existing[c.Title] = true
		l.state.Active = append(l.state.Active, c)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	if err := l.store.Save(l.state); err != nil {
		return 0, fmt.Errorf("failed to persist ledger: %w", err)
	}
	return added, nil
}

// Complete moves a task from active to completed, stamping the completion
// time. Completing an already-completed task returns ErrAlreadyCompleted
// without duplicating the entry.
func (l *Ledger) Complete(taskID string) (task.Candidate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, t := range l.state.Active {
		if t.ID != taskID {
			continue
		}
		now := time.Now()
		t.CompletedAt = &now
		l.state.Active = append(l.state.Active[:i], l.state.Active[i+1:]...)
		l.state.Completed = append(l.state.Completed, t)
		if err := l.store.Save(l.state); err != nil {
			return task.Candidate{}, fmt.Errorf("failed to persist ledger: %w", err)
		}
		return t, nil
	}

	for _, t := range l.state.Completed {
		if t.ID == taskID {
			return t, ErrAlreadyCompleted
		}
	}
	return task.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, taskID)
}

// UpdatePriority changes the priority of an active task.
func (l *Ledger) UpdatePriority(taskID string, p task.Priority) (task.Candidate, error) {
	if !p.Valid() {
		return task.Candidate{}, fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.state.Active {
		if l.state.Active[i].ID != taskID {
			continue
		}
		l.state.Active[i].Priority = p
		if err := l.store.Save(l.state); err != nil {
			return task.Candidate{}, fmt.Errorf("failed to persist ledger: %w", err)
		}
		return l.state.Active[i], nil
	}
	return task.Candidate{}, fmt.Errorf("%w: %s", ErrNotFound, taskID)
}

// CleanupForDeletedMeeting removes all tasks, active and completed, whose
// (meetingDate, meetingTopic) match the deleted meeting.
func (l *Ledger) CleanupForDeletedMeeting(m meeting.Ref) (CleanupResult, error) {
	return l.cleanup(func(t task.Candidate) bool {
		return t.MeetingDate == m.Date && t.MeetingTopic == m.Topic
	})
}

// CleanupByTopics removes all tasks whose meeting topic is in topics.
func (l *Ledger) CleanupByTopics(topics []string) (CleanupResult, error) {
	match := make(map[string]bool, len(topics))
	for _, t := range topics {
		match[t] = true
	}
	return l.cleanup(func(t task.Candidate) bool {
		return match[t.MeetingTopic]
	})
}

func (l *Ledger) cleanup(remove func(task.Candidate) bool) (CleanupResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var result CleanupResult
	keepActive := l.state.Active[:0:0]
	for _, t := range l.state.Active {
		if remove(t) {
			result.RemovedActive++
			continue
		}
		keepActive = append(keepActive, t)
	}
	keepCompleted := l.state.Completed[:0:0]
	for _, t := range l.state.Completed {
		if remove(t) {
			result.RemovedCompleted++
			continue
		}
		keepCompleted = append(keepCompleted, t)
	}

	if result.RemovedActive == 0 && result.RemovedCompleted == 0 {
		return result, nil
	}

	l.state.Active = keepActive
	l.state.Completed = keepCompleted
	if err := l.store.Save(l.state); err != nil {
		return CleanupResult{}, fmt.Errorf("failed to persist ledger: %w", err)
	}
	return result, nil
}
