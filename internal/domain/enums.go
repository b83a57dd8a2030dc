package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TaskStatus ordinals are persisted and exposed over the API; do not renumber.
type TaskStatus int

const (
	StatusTodo TaskStatus = iota
	StatusInProgress
	StatusReview
	StatusCompleted
)

var taskStatusNames = [...]string{"Todo", "InProgress", "Review", "Completed"}

func (s TaskStatus) Valid() bool { return s >= StatusTodo && s <= StatusCompleted }

func (s TaskStatus) String() string {
	if !s.Valid() {
		return "TaskStatus(" + strconv.Itoa(int(s)) + ")"
	}
	return taskStatusNames[s]
}

// AllTaskStatuses lists every status in ordinal order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusCompleted}
}

func ParseTaskStatus(v string) (TaskStatus, error) {
	i, err := parseEnum(v, taskStatusNames[:])
	if err != nil {
		return 0, ValidationError("status", err.Error())
	}
	return TaskStatus(i), nil
}

type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

var taskPriorityNames = [...]string{"Low", "Medium", "High", "Urgent"}

func (p TaskPriority) Valid() bool { return p >= PriorityLow && p <= PriorityUrgent }

func (p TaskPriority) String() string {
	if !p.Valid() {
		return "TaskPriority(" + strconv.Itoa(int(p)) + ")"
	}
	return taskPriorityNames[p]
}

func ParseTaskPriority(v string) (TaskPriority, error) {
	i, err := parseEnum(v, taskPriorityNames[:])
	if err != nil {
		return 0, ValidationError("priority", err.Error())
	}
	return TaskPriority(i), nil
}

type ProjectStatus int

const (
	ProjectActive ProjectStatus = iota
	ProjectOnHold
	ProjectCompleted
	ProjectArchived
)

var projectStatusNames = [...]string{"Active", "OnHold", "Completed", "Archived"}

func (s ProjectStatus) Valid() bool { return s >= ProjectActive && s <= ProjectArchived }

func (s ProjectStatus) String() string {
	if !s.Valid() {
		return "ProjectStatus(" + strconv.Itoa(int(s)) + ")"
	}
	return projectStatusNames[s]
}

type UserRole int

const (
	RoleMember UserRole = iota
	RoleProjectManager
	RoleAdmin
)

var userRoleNames = [...]string{"Member", "ProjectManager", "Admin"}

func (r UserRole) Valid() bool { return r >= RoleMember && r <= RoleAdmin }

func (r UserRole) String() string {
	if !r.Valid() {
		return "UserRole(" + strconv.Itoa(int(r)) + ")"
	}
	return userRoleNames[r]
}

type Position int

const (
	PositionTeamMember Position = iota
	PositionTeamLead
	PositionProjectManager
	PositionDirector
	PositionExecutive
	PositionFrontendDeveloper
	PositionBackendDeveloper
	PositionFullStackDeveloper
	PositionDevOpsEngineer
	PositionQAEngineer
	PositionUIUXDesigner
	PositionDataAnalyst
	PositionProductManager
	PositionTechnicalLead
	PositionSoftwareArchitect
	PositionBusinessAnalyst
	PositionSystemAdministrator
	PositionDatabaseAdministrator
	PositionSecurityEngineer
	PositionMobileAppDeveloper
)

var positionNames = [...]string{
	"TeamMember", "TeamLead", "ProjectManager", "Director", "Executive",
	"FrontendDeveloper", "BackendDeveloper", "FullStackDeveloper", "DevOpsEngineer", "QAEngineer",
	"UIUXDesigner", "DataAnalyst", "ProductManager", "TechnicalLead", "SoftwareArchitect",
	"BusinessAnalyst", "SystemAdministrator", "DatabaseAdministrator", "SecurityEngineer", "MobileAppDeveloper",
}

func (p Position) Valid() bool { return p >= PositionTeamMember && p <= PositionMobileAppDeveloper }

func (p Position) String() string {
	if !p.Valid() {
		return "Position(" + strconv.Itoa(int(p)) + ")"
	}
	return positionNames[p]
}

// parseEnum accepts either the ordinal or the case-insensitive name.
func parseEnum(v string, names []string) (int, error) {
	v = strings.TrimSpace(v)
	if i, err := strconv.Atoi(v); err == nil {
		if i < 0 || i >= len(names) {
			return 0, fmt.Errorf("unknown value %d", i)
		}
		return i, nil
	}
	for i, name := range names {
		if strings.EqualFold(name, v) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", v)
}
