package domain

import (
	"time"

	"github.com/google/uuid"
)

// allowedTransitions is the task status graph. Self transitions are always
// allowed and are not listed here.
var allowedTransitions = map[TaskStatus][]TaskStatus{
	StatusTodo:       {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusTodo, StatusReview, StatusCompleted},
	StatusReview:     {StatusTodo, StatusInProgress, StatusCompleted},
	StatusCompleted:  {StatusTodo, StatusInProgress, StatusReview},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Task is the unit of work tracked inside a project.
type Task struct {
	eventLog

	id          uuid.UUID
	title       string
	description string
	status      TaskStatus
	priority    TaskPriority
	projectID   int
	assigneeID  *uuid.UUID
	dueDate     *time.Time
	completedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTask validates its arguments and returns a task with a TaskCreated event queued.
// Whether projectID and assigneeID resolve is checked by the caller.
func NewTask(title, description string, priority TaskPriority, status TaskStatus, projectID int, assigneeID *uuid.UUID, dueDate *time.Time) (*Task, error) {
	title, err := requireText("title", title, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	if _, err := optionalText("description", description, MaxDescriptionLength); err != nil {
		return nil, err
	}
	if projectID <= 0 {
		return nil, ValidationError("projectId", "must be greater than 0")
	}
	if !priority.Valid() {
		return nil, ValidationError("priority", "unknown priority "+priority.String())
	}
	if !status.Valid() {
		return nil, ValidationError("status", "unknown status "+status.String())
	}
	if assigneeID != nil && *assigneeID == uuid.Nil {
		return nil, ValidationError("assigneeId", "cannot be empty")
	}
	at := now()
	if dueDate != nil && IsPastDate(*dueDate, at) {
		return nil, ValidationError("dueDate", "cannot be in the past")
	}

	t := &Task{
		id:          uuid.New(),
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		projectID:   projectID,
		createdAt:   at,
		updatedAt:   at,
	}
	if assigneeID != nil {
		id := *assigneeID
		t.assigneeID = &id
	}
	if dueDate != nil {
		d := dueDate.UTC()
		t.dueDate = &d
	}
	if status == StatusCompleted {
		t.completedAt = &at
	}

	t.record(TaskCreated{
		EventMeta:  newMeta(),
		TaskID:     t.id,
		Title:      t.title,
		ProjectID:  t.projectID,
		AssigneeID: t.AssigneeID(),
		Priority:   t.priority,
	})
	return t, nil
}

func (t *Task) ID() uuid.UUID           { return t.id }
func (t *Task) Title() string           { return t.title }
func (t *Task) Description() string     { return t.description }
func (t *Task) Status() TaskStatus      { return t.status }
func (t *Task) Priority() TaskPriority  { return t.priority }
func (t *Task) ProjectID() int          { return t.projectID }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }
func (t *Task) DueDate() *time.Time     { return cloneTime(t.dueDate) }
func (t *Task) CompletedAt() *time.Time { return cloneTime(t.completedAt) }
func (t *Task) IsCompleted() bool       { return t.status == StatusCompleted }

func (t *Task) IsAssignedTo(id uuid.UUID) bool {
	return t.assigneeID != nil && *t.assigneeID == id
}

func (t *Task) AssigneeID() *uuid.UUID {
	if t.assigneeID == nil {
		return nil
	}
	id := *t.assigneeID
	return &id
}

// IsOverdue reports whether an open task's due day has passed at the given time.
func (t *Task) IsOverdue(at time.Time) bool {
	return t.dueDate != nil && !t.IsCompleted() && IsPastDate(*t.dueDate, at)
}

func (t *Task) touch() { t.updatedAt = now() }

// UpdateStatus moves the task along the status graph. Moving to Completed
// stamps completedAt and queues TaskCompleted after TaskStatusChanged.
// Reopening a completed task leaves completedAt as it was.
func (t *Task) UpdateStatus(to TaskStatus) error {
	if !to.Valid() {
		return ValidationError("status", "unknown status "+to.String())
	}
	if !CanTransition(t.status, to) {
		return InvalidTransition(t.status, to)
	}

	from := t.status
	t.status = to
	t.touch()
	t.record(TaskStatusChanged{
		EventMeta: newMeta(),
		TaskID:    t.id,
		Title:     t.title,
		OldStatus: from,
		NewStatus: to,
		ChangedBy: t.AssigneeID(),
	})

	if to == StatusCompleted {
		t.markCompleted()
	}
	return nil
}

func (t *Task) markCompleted() {
	at := now()
	t.completedAt = &at
	t.updatedAt = at
	t.record(TaskCompleted{
		EventMeta:   newMeta(),
		TaskID:      t.id,
		ProjectID:   t.projectID,
		Title:       t.title,
		CompletedBy: t.AssigneeID(),
		CompletedAt: at,
		Duration:    at.Sub(t.createdAt),
	})
}

// AssignTo sets the assignee. Eligibility of the user is the caller's concern.
func (t *Task) AssignTo(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ValidationError("assigneeId", "cannot be empty")
	}
	old := t.AssigneeID()
	t.assigneeID = &userID
	t.touch()
	t.record(TaskAssigned{
		EventMeta:     newMeta(),
		TaskID:        t.id,
		Title:         t.title,
		OldAssigneeID: old,
		NewAssigneeID: userID,
	})
	return nil
}

// UnassignTask clears the assignee. It is a no-op on an unassigned task.
func (t *Task) UnassignTask() {
	if t.assigneeID == nil {
		return
	}
	prev := *t.assigneeID
	t.assigneeID = nil
	t.touch()
	t.record(TaskUnassigned{
		EventMeta:          newMeta(),
		TaskID:             t.id,
		Title:              t.title,
		PreviousAssigneeID: prev,
	})
}

// SetDueDate rejects dates whose calendar day (UTC) is before today.
func (t *Task) SetDueDate(d time.Time) error {
	if IsPastDate(d, now()) {
		return ValidationError("dueDate", "cannot be in the past")
	}
	d = d.UTC()
	t.dueDate = &d
	t.touch()
	return nil
}

// UpdateDetails replaces title, description and priority. TaskEdited is only
// queued when at least one of them differs from the current value.
func (t *Task) UpdateDetails(title, description string, priority TaskPriority) error {
	title, err := requireText("title", title, MaxTitleLength)
	if err != nil {
		return err
	}
	if _, err := optionalText("description", description, MaxDescriptionLength); err != nil {
		return err
	}
	if !priority.Valid() {
		return ValidationError("priority", "unknown priority "+priority.String())
	}
	if title == t.title && description == t.description && priority == t.priority {
		return nil
	}

	ev := TaskEdited{
		EventMeta:      newMeta(),
		TaskID:         t.id,
		OldTitle:       t.title,
		NewTitle:       title,
		OldDescription: t.description,
		NewDescription: description,
		OldPriority:    t.priority,
		NewPriority:    priority,
		EditedBy:       t.AssigneeID(),
	}
	t.title = title
	t.description = description
	t.priority = priority
	t.touch()
	t.record(ev)
	return nil
}

// ChangeProject moves the task to another project.
func (t *Task) ChangeProject(projectID int) error {
	if projectID <= 0 {
		return ValidationError("projectId", "must be greater than 0")
	}
	if projectID == t.projectID {
		return nil
	}
	old := t.projectID
	t.projectID = projectID
	t.touch()
	t.record(TaskProjectChanged{
		EventMeta:    newMeta(),
		TaskID:       t.id,
		Title:        t.title,
		OldProjectID: old,
		NewProjectID: projectID,
	})
	return nil
}

// Delete queues TaskDeleted for audit. Removing the row is up to the caller.
func (t *Task) Delete(deletedBy *uuid.UUID) {
	var by *uuid.UUID
	if deletedBy != nil {
		id := *deletedBy
		by = &id
	}
	t.record(TaskDeleted{
		EventMeta: newMeta(),
		TaskID:    t.id,
		Title:     t.title,
		ProjectID: t.projectID,
		Status:    t.status,
		DeletedBy: by,
	})
}

// TaskSnapshot is the persisted shape of a task.
type TaskSnapshot struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	ProjectID   int
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreTask rehydrates a task from storage without validating or queuing events.
func RestoreTask(s TaskSnapshot) *Task {
	t := &Task{
		id:          s.ID,
		title:       s.Title,
		description: s.Description,
		status:      s.Status,
		priority:    s.Priority,
		projectID:   s.ProjectID,
		dueDate:     cloneTime(s.DueDate),
		completedAt: cloneTime(s.CompletedAt),
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
	if s.AssigneeID != nil {
		id := *s.AssigneeID
		t.assigneeID = &id
	}
	return t
}

func (t *Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		Priority:    t.priority,
		ProjectID:   t.projectID,
		AssigneeID:  t.AssigneeID(),
		DueDate:     t.DueDate(),
		CompletedAt: t.CompletedAt(),
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}
