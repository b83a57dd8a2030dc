package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskFilters is an immutable set of task list criteria. A zero value matches
// every task.
type TaskFilters struct {
	statuses   []TaskStatus
	priorities []TaskPriority
	projectID  *int
	assigneeID *uuid.UUID
	search     string
	dueFrom    *time.Time
	dueTo      *time.Time
}

type FilterOption func(*TaskFilters)

func WithStatuses(s ...TaskStatus) FilterOption {
	return func(f *TaskFilters) { f.statuses = append([]TaskStatus(nil), s...) }
}

func WithPriorities(p ...TaskPriority) FilterOption {
	return func(f *TaskFilters) { f.priorities = append([]TaskPriority(nil), p...) }
}

func WithProject(id int) FilterOption {
	return func(f *TaskFilters) { f.projectID = &id }
}

func WithAssignee(id uuid.UUID) FilterOption {
	return func(f *TaskFilters) { f.assigneeID = &id }
}

func WithSearch(term string) FilterOption {
	return func(f *TaskFilters) { f.search = strings.TrimSpace(term) }
}

// WithDueBetween bounds the due date. Either end may be nil.
func WithDueBetween(from, to *time.Time) FilterOption {
	return func(f *TaskFilters) {
		f.dueFrom = cloneTime(from)
		f.dueTo = cloneTime(to)
	}
}

func NewTaskFilters(opts ...FilterOption) TaskFilters {
	var f TaskFilters
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f TaskFilters) Statuses() []TaskStatus     { return slices.Clone(f.statuses) }
func (f TaskFilters) Priorities() []TaskPriority { return slices.Clone(f.priorities) }
func (f TaskFilters) Search() string             { return f.search }
func (f TaskFilters) DueFrom() *time.Time        { return cloneTime(f.dueFrom) }
func (f TaskFilters) DueTo() *time.Time          { return cloneTime(f.dueTo) }

func (f TaskFilters) ProjectID() (int, bool) {
	if f.projectID == nil {
		return 0, false
	}
	return *f.projectID, true
}

func (f TaskFilters) AssigneeID() (uuid.UUID, bool) {
	if f.assigneeID == nil {
		return uuid.Nil, false
	}
	return *f.assigneeID, true
}

func (f TaskFilters) IsEmpty() bool {
	return len(f.statuses) == 0 && len(f.priorities) == 0 && f.projectID == nil &&
		f.assigneeID == nil && f.search == "" && f.dueFrom == nil && f.dueTo == nil
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (f TaskFilters) Equal(o TaskFilters) bool {
	if !slices.Equal(f.statuses, o.statuses) || !slices.Equal(f.priorities, o.priorities) {
		return false
	}
	if (f.projectID == nil) != (o.projectID == nil) || (f.projectID != nil && *f.projectID != *o.projectID) {
		return false
	}
	if (f.assigneeID == nil) != (o.assigneeID == nil) || (f.assigneeID != nil && *f.assigneeID != *o.assigneeID) {
		return false
	}
	return f.search == o.search && equalTimePtr(f.dueFrom, o.dueFrom) && equalTimePtr(f.dueTo, o.dueTo)
}

// Matches evaluates the criteria against a task. Search is a case-insensitive
// substring match on title or description. Due bounds compare calendar days
// and exclude tasks without a due date.
func (f TaskFilters) Matches(t *Task) bool {
	if len(f.statuses) > 0 && !slices.Contains(f.statuses, t.status) {
		return false
	}
	if len(f.priorities) > 0 && !slices.Contains(f.priorities, t.priority) {
		return false
	}
	if f.projectID != nil && *f.projectID != t.projectID {
		return false
	}
	if f.assigneeID != nil && !t.IsAssignedTo(*f.assigneeID) {
		return false
	}
	if f.search != "" {
		term := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(t.title), term) && !strings.Contains(strings.ToLower(t.description), term) {
			return false
		}
	}
	if f.dueFrom != nil || f.dueTo != nil {
		if t.dueDate == nil {
			return false
		}
		due := DateOnly(*t.dueDate)
		if f.dueFrom != nil && due.Before(DateOnly(*f.dueFrom)) {
			return false
		}
		if f.dueTo != nil && due.After(DateOnly(*f.dueTo)) {
			return false
		}
	}
	return true
}
