package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened to an aggregate.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// EventSource is implemented by every aggregate that queues events.
type EventSource interface {
	Events() []Event
	PullEvents() []Event
	ClearEvents()
}

// EventMeta carries the identity and timestamp shared by all events.
type EventMeta struct {
	EventID uuid.UUID `json:"eventId"`
	At      time.Time `json:"occurredAt"`
}

func newMeta() EventMeta {
	return EventMeta{EventID: uuid.New(), At: now()}
}

func (m EventMeta) OccurredAt() time.Time { return m.At }

// eventLog is the ordered, in-memory queue embedded in aggregates.
type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) {
	l.events = append(l.events, e)
}

// Events returns a copy of the queued events in the order they were raised.
func (l *eventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// PullEvents returns the queued events and empties the queue.
func (l *eventLog) PullEvents() []Event {
	out := l.events
	l.events = nil
	return out
}

func (l *eventLog) ClearEvents() {
	l.events = nil
}

type TaskCreated struct {
	EventMeta
	TaskID     uuid.UUID    `json:"taskId"`
	Title      string       `json:"title"`
	ProjectID  int          `json:"projectId"`
	AssigneeID *uuid.UUID   `json:"assigneeId,omitempty"`
	Priority   TaskPriority `json:"priority"`
}

func (TaskCreated) EventName() string     { return "TaskCreated" }
func (e TaskCreated) AggregateID() string { return e.TaskID.String() }

type TaskStatusChanged struct {
	EventMeta
	TaskID    uuid.UUID  `json:"taskId"`
	Title     string     `json:"title"`
	OldStatus TaskStatus `json:"oldStatus"`
	NewStatus TaskStatus `json:"newStatus"`
	ChangedBy *uuid.UUID `json:"changedBy,omitempty"`
}

func (TaskStatusChanged) EventName() string     { return "TaskStatusChanged" }
func (e TaskStatusChanged) AggregateID() string { return e.TaskID.String() }

type TaskCompleted struct {
	EventMeta
	TaskID      uuid.UUID     `json:"taskId"`
	ProjectID   int           `json:"projectId"`
	Title       string        `json:"title"`
	CompletedBy *uuid.UUID    `json:"completedBy,omitempty"`
	CompletedAt time.Time     `json:"completedAt"`
	Duration    time.Duration `json:"duration"`
}

func (TaskCompleted) EventName() string     { return "TaskCompleted" }
func (e TaskCompleted) AggregateID() string { return e.TaskID.String() }

type TaskAssigned struct {
	EventMeta
	TaskID        uuid.UUID  `json:"taskId"`
	Title         string     `json:"title"`
	OldAssigneeID *uuid.UUID `json:"oldAssigneeId,omitempty"`
	NewAssigneeID uuid.UUID  `json:"newAssigneeId"`
}

func (TaskAssigned) EventName() string     { return "TaskAssigned" }
func (e TaskAssigned) AggregateID() string { return e.TaskID.String() }

type TaskUnassigned struct {
	EventMeta
	TaskID             uuid.UUID `json:"taskId"`
	Title              string    `json:"title"`
	PreviousAssigneeID uuid.UUID `json:"previousAssigneeId"`
}

func (TaskUnassigned) EventName() string     { return "TaskUnassigned" }
func (e TaskUnassigned) AggregateID() string { return e.TaskID.String() }

type TaskEdited struct {
	EventMeta
	TaskID         uuid.UUID    `json:"taskId"`
	OldTitle       string       `json:"oldTitle"`
	NewTitle       string       `json:"newTitle"`
	OldDescription string       `json:"oldDescription"`
	NewDescription string       `json:"newDescription"`
	OldPriority    TaskPriority `json:"oldPriority"`
	NewPriority    TaskPriority `json:"newPriority"`
	EditedBy       *uuid.UUID   `json:"editedBy,omitempty"`
}

func (TaskEdited) EventName() string     { return "TaskEdited" }
func (e TaskEdited) AggregateID() string { return e.TaskID.String() }

type TaskProjectChanged struct {
	EventMeta
	TaskID       uuid.UUID `json:"taskId"`
	Title        string    `json:"title"`
	OldProjectID int       `json:"oldProjectId"`
	NewProjectID int       `json:"newProjectId"`
}

func (TaskProjectChanged) EventName() string     { return "TaskProjectChanged" }
func (e TaskProjectChanged) AggregateID() string { return e.TaskID.String() }

type TaskDeleted struct {
	EventMeta
	TaskID    uuid.UUID  `json:"taskId"`
	Title     string     `json:"title"`
	ProjectID int        `json:"projectId"`
	Status    TaskStatus `json:"status"`
	DeletedBy *uuid.UUID `json:"deletedBy,omitempty"`
}

func (TaskDeleted) EventName() string     { return "TaskDeleted" }
func (e TaskDeleted) AggregateID() string { return e.TaskID.String() }

type TeamMemberInvited struct {
	EventMeta
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

func (TeamMemberInvited) EventName() string     { return "TeamMemberInvited" }
func (e TeamMemberInvited) AggregateID() string { return e.UserID.String() }

type TeamMemberProfileUpdated struct {
	EventMeta
	UserID    uuid.UUID `json:"userId"`
	OldName   string    `json:"oldName"`
	NewName   string    `json:"newName"`
	OldAvatar *string   `json:"oldAvatar,omitempty"`
	NewAvatar *string   `json:"newAvatar,omitempty"`
}

func (TeamMemberProfileUpdated) EventName() string     { return "TeamMemberProfileUpdated" }
func (e TeamMemberProfileUpdated) AggregateID() string { return e.UserID.String() }

type TeamMemberRoleChanged struct {
	EventMeta
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	OldRole  UserRole  `json:"oldRole"`
	NewRole  UserRole  `json:"newRole"`
}

func (TeamMemberRoleChanged) EventName() string     { return "TeamMemberRoleChanged" }
func (e TeamMemberRoleChanged) AggregateID() string { return e.UserID.String() }

type TeamMemberPositionChanged struct {
	EventMeta
	UserID      uuid.UUID `json:"userId"`
	UserName    string    `json:"userName"`
	OldPosition Position  `json:"oldPosition"`
	NewPosition Position  `json:"newPosition"`
}

func (TeamMemberPositionChanged) EventName() string     { return "TeamMemberPositionChanged" }
func (e TeamMemberPositionChanged) AggregateID() string { return e.UserID.String() }

type TeamMemberDepartmentChanged struct {
	EventMeta
	UserID        uuid.UUID `json:"userId"`
	UserName      string    `json:"userName"`
	OldDepartment *string   `json:"oldDepartment,omitempty"`
	NewDepartment *string   `json:"newDepartment,omitempty"`
}

func (TeamMemberDepartmentChanged) EventName() string     { return "TeamMemberDepartmentChanged" }
func (e TeamMemberDepartmentChanged) AggregateID() string { return e.UserID.String() }

type TeamMemberProjectAssigned struct {
	EventMeta
	UserID      uuid.UUID `json:"userId"`
	UserName    string    `json:"userName"`
	ProjectID   int       `json:"projectId"`
	ProjectName string    `json:"projectName"`
}

func (TeamMemberProjectAssigned) EventName() string     { return "TeamMemberProjectAssigned" }
func (e TeamMemberProjectAssigned) AggregateID() string { return e.UserID.String() }

type TeamMemberProjectUnassigned struct {
	EventMeta
	UserID      uuid.UUID `json:"userId"`
	UserName    string    `json:"userName"`
	ProjectID   int       `json:"projectId"`
	ProjectName string    `json:"projectName"`
}

func (TeamMemberProjectUnassigned) EventName() string     { return "TeamMemberProjectUnassigned" }
func (e TeamMemberProjectUnassigned) AggregateID() string { return e.UserID.String() }

type TeamMemberRemoved struct {
	EventMeta
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

func (TeamMemberRemoved) EventName() string     { return "TeamMemberRemoved" }
func (e TeamMemberRemoved) AggregateID() string { return e.UserID.String() }
