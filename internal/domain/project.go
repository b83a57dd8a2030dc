package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var hexColor = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)

const DefaultProjectColor = "#6366F1"

// Project owns a set of tasks and a roster of assigned users.
// Its identity is a sequential integer handed out by storage.
type Project struct {
	eventLog

	id          int
	name        string
	description string
	color       string
	status      ProjectStatus
	tasks       []*Task
	members     []uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func validateColor(color string) error {
	if !hexColor.MatchString(color) {
		return ValidationError("color", "must be a valid hex color code (e.g., #FF0000)")
	}
	return nil
}

// NewProject returns an active project with an empty roster.
func NewProject(name, description, color string) (*Project, error) {
	name, err := requireText("name", name, MaxProjectNameLength)
	if err != nil {
		return nil, err
	}
	if _, err := optionalText("description", description, MaxDescriptionLength); err != nil {
		return nil, err
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}
	at := now()
	return &Project{
		name:        name,
		description: description,
		color:       color,
		status:      ProjectActive,
		createdAt:   at,
		updatedAt:   at,
	}, nil
}

func (p *Project) ID() int               { return p.id }
func (p *Project) Name() string          { return p.name }
func (p *Project) Description() string   { return p.description }
func (p *Project) Color() string         { return p.color }
func (p *Project) Status() ProjectStatus { return p.status }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }

// SetID records the identity assigned by storage on first insert.
// An already identified project keeps its id.
func (p *Project) SetID(id int) {
	if p.id == 0 {
		p.id = id
	}
}

func (p *Project) touch() { p.updatedAt = now() }

func (p *Project) UpdateDetails(name, description, color string) error {
	name, err := requireText("name", name, MaxProjectNameLength)
	if err != nil {
		return err
	}
	if _, err := optionalText("description", description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateColor(color); err != nil {
		return err
	}
	p.name = name
	p.description = description
	p.color = color
	p.touch()
	return nil
}

func (p *Project) Archive() {
	p.status = ProjectArchived
	p.touch()
}

func (p *Project) ChangeStatus(status ProjectStatus) error {
	if !status.Valid() {
		return ValidationError("status", "unknown status "+status.String())
	}
	if status == p.status {
		return nil
	}
	p.status = status
	p.touch()
	return nil
}

// AddTask attaches a loaded task so progress can be derived from it.
func (p *Project) AddTask(t *Task) {
	if t == nil {
		return
	}
	p.tasks = append(p.tasks, t)
	p.touch()
}

func (p *Project) Tasks() []*Task {
	out := make([]*Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// AssignUser adds the user to the roster. Assigning a member twice is a no-op.
func (p *Project) AssignUser(u *User) error {
	if u == nil {
		return ValidationError("user", "cannot be nil")
	}
	if p.HasMember(u.ID()) {
		return nil
	}
	p.members = append(p.members, u.ID())
	p.touch()
	return nil
}

// RemoveUser drops the user from the roster if present.
func (p *Project) RemoveUser(u *User) error {
	if u == nil {
		return ValidationError("user", "cannot be nil")
	}
	for i, id := range p.members {
		if id == u.ID() {
			p.members = append(p.members[:i], p.members[i+1:]...)
			p.touch()
			return nil
		}
	}
	return nil
}

func (p *Project) ClearAssignedUsers() {
	if len(p.members) == 0 {
		return
	}
	p.members = nil
	p.touch()
}

func (p *Project) HasMember(userID uuid.UUID) bool {
	for _, id := range p.members {
		if id == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the roster in assignment order.
func (p *Project) MemberIDs() []uuid.UUID {
	out := make([]uuid.UUID, len(p.members))
	copy(out, p.members)
	return out
}

// CountByStatus counts attached tasks currently in status.
func (p *Project) CountByStatus(status TaskStatus) int {
	n := 0
	for _, t := range p.tasks {
		if t.Status() == status {
			n++
		}
	}
	return n
}

func (p *Project) CompletedTaskCount() int  { return p.CountByStatus(StatusCompleted) }
func (p *Project) TodoTaskCount() int       { return p.CountByStatus(StatusTodo) }
func (p *Project) InProgressTaskCount() int { return p.CountByStatus(StatusInProgress) }
func (p *Project) ReviewTaskCount() int     { return p.CountByStatus(StatusReview) }

// CompletionPercentage is completed/total*100, or 0 for a project without tasks.
func (p *Project) CompletionPercentage() float64 {
	if len(p.tasks) == 0 {
		return 0
	}
	return float64(p.CompletedTaskCount()) / float64(len(p.tasks)) * 100
}

// ProjectProgress is a point-in-time view of a project's task counts.
type ProjectProgress struct {
	Total                int
	Todo                 int
	InProgress           int
	Review               int
	Completed            int
	CompletionPercentage float64
}

func (p *Project) Progress() ProjectProgress {
	return ProjectProgress{
		Total:                len(p.tasks),
		Todo:                 p.TodoTaskCount(),
		InProgress:           p.InProgressTaskCount(),
		Review:               p.ReviewTaskCount(),
		Completed:            p.CompletedTaskCount(),
		CompletionPercentage: p.CompletionPercentage(),
	}
}

// ProjectSnapshot is the persisted shape of a project.
type ProjectSnapshot struct {
	ID          int
	Name        string
	Description string
	Color       string
	Status      ProjectStatus
	MemberIDs   []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreProject rehydrates a project and the tasks loaded with it.
func RestoreProject(s ProjectSnapshot, tasks []*Task) *Project {
	p := &Project{
		id:          s.ID,
		name:        s.Name,
		description: s.Description,
		color:       s.Color,
		status:      s.Status,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
	if len(s.MemberIDs) > 0 {
		p.members = make([]uuid.UUID, len(s.MemberIDs))
		copy(p.members, s.MemberIDs)
	}
	p.tasks = append(p.tasks, tasks...)
	return p
}

func (p *Project) Snapshot() ProjectSnapshot {
	return ProjectSnapshot{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Color:       p.color,
		Status:      p.status,
		MemberIDs:   p.MemberIDs(),
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}
