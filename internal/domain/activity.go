package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityType classifies an entry of the team activity feed.
type ActivityType int

const (
	ActivityTaskCreated ActivityType = iota
	ActivityTaskUpdated
	ActivityTaskDeleted
	ActivityTaskAssigned
	ActivityTaskUnassigned
	ActivityTaskCompleted
	ActivityTaskReopened
	ActivityProjectCreated
	ActivityProjectUpdated
	ActivityProjectDeleted
	ActivityMemberAdded
	ActivityMemberRemoved
)

var activityTypeNames = [...]string{
	"TaskCreated", "TaskUpdated", "TaskDeleted", "TaskAssigned", "TaskUnassigned", "TaskCompleted",
	"TaskReopened", "ProjectCreated", "ProjectUpdated", "ProjectDeleted", "MemberAdded", "MemberRemoved",
}

func (a ActivityType) String() string {
	if a < 0 || int(a) >= len(activityTypeNames) {
		return fmt.Sprintf("ActivityType(%d)", int(a))
	}
	return activityTypeNames[a]
}

// Activity is one line of the activity feed.
type Activity struct {
	Title       string
	Description string
	Type        ActivityType
	UserID      *uuid.UUID
	Timestamp   time.Time
}

func NewActivity(title, description string, typ ActivityType, userID *uuid.UUID) (Activity, error) {
	title, err := requireText("title", title, MaxTitleLength)
	if err != nil {
		return Activity{}, err
	}
	var uid *uuid.UUID
	if userID != nil {
		id := *userID
		uid = &id
	}
	return Activity{Title: title, Description: description, Type: typ, UserID: uid, Timestamp: now()}, nil
}

// ActivityFor maps a domain event to a feed entry. Events that do not belong
// in the feed (profile edits, role changes, the status change that precedes
// a completion) report false.
func ActivityFor(e Event) (Activity, bool) {
	a := Activity{Timestamp: e.OccurredAt()}
	switch ev := e.(type) {
	case TaskCreated:
		a.Type, a.Title = ActivityTaskCreated, "Task created"
		a.Description = fmt.Sprintf("Task %q was created", ev.Title)
		a.UserID = ev.AssigneeID
	case TaskStatusChanged:
		switch {
		case ev.NewStatus == StatusCompleted:
			return Activity{}, false
		case ev.OldStatus == StatusCompleted:
			a.Type, a.Title = ActivityTaskReopened, "Task reopened"
			a.Description = fmt.Sprintf("Task %q was moved back to %s", ev.Title, ev.NewStatus)
		default:
			a.Type, a.Title = ActivityTaskUpdated, "Task status changed"
			a.Description = fmt.Sprintf("Task %q moved from %s to %s", ev.Title, ev.OldStatus, ev.NewStatus)
		}
		a.UserID = ev.ChangedBy
	case TaskCompleted:
		a.Type, a.Title = ActivityTaskCompleted, "Task completed"
		a.Description = fmt.Sprintf("Task %q was completed", ev.Title)
		a.UserID = ev.CompletedBy
	case TaskAssigned:
		id := ev.NewAssigneeID
		a.Type, a.Title, a.UserID = ActivityTaskAssigned, "Task assigned", &id
		a.Description = fmt.Sprintf("Task %q was assigned", ev.Title)
	case TaskUnassigned:
		id := ev.PreviousAssigneeID
		a.Type, a.Title, a.UserID = ActivityTaskUnassigned, "Task unassigned", &id
		a.Description = fmt.Sprintf("Task %q was unassigned", ev.Title)
	case TaskEdited:
		a.Type, a.Title = ActivityTaskUpdated, "Task updated"
		a.Description = fmt.Sprintf("Task %q was updated", ev.NewTitle)
		a.UserID = ev.EditedBy
	case TaskProjectChanged:
		a.Type, a.Title = ActivityTaskUpdated, "Task moved"
		a.Description = fmt.Sprintf("Task %q was moved to another project", ev.Title)
	case TaskDeleted:
		a.Type, a.Title = ActivityTaskDeleted, "Task deleted"
		a.Description = fmt.Sprintf("Task %q was deleted", ev.Title)
		a.UserID = ev.DeletedBy
	case TeamMemberInvited:
		id := ev.UserID
		a.Type, a.Title, a.UserID = ActivityMemberAdded, "Team member invited", &id
		a.Description = fmt.Sprintf("%s joined the team as %s", ev.Name, ev.Role)
	case TeamMemberProjectAssigned:
		id := ev.UserID
		a.Type, a.Title, a.UserID = ActivityMemberAdded, "Member added to project", &id
		a.Description = fmt.Sprintf("%s was added to %s", ev.UserName, ev.ProjectName)
	case TeamMemberProjectUnassigned:
		id := ev.UserID
		a.Type, a.Title, a.UserID = ActivityMemberRemoved, "Member removed from project", &id
		a.Description = fmt.Sprintf("%s was removed from %s", ev.UserName, ev.ProjectName)
	case TeamMemberRemoved:
		a.Type, a.Title = ActivityMemberRemoved, "Team member removed"
		a.Description = fmt.Sprintf("%s left the team", ev.Name)
	default:
		return Activity{}, false
	}
	return a, true
}
