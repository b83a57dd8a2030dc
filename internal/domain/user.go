package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// User is a team member. The project roster is kept as project ids; the
// tasks assigned to a user are derived from Task.assigneeID and not stored here.
type User struct {
	eventLog

	id           uuid.UUID
	name         string
	email        string
	role         UserRole
	position     Position
	department   *string
	avatar       *string
	passwordHash string
	projectIDs   []int
	createdAt    time.Time
	updatedAt    time.Time
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ValidationError("email", "cannot be empty")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", ValidationError("email", "is not a valid email address")
	}
	return email, nil
}

// NewUser invites a team member and queues TeamMemberInvited.
func NewUser(name, email string, role UserRole, position Position, department, avatar *string) (*User, error) {
	name, err := requireText("name", name, MaxUserNameLength)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ValidationError("role", "unknown role "+role.String())
	}
	if !position.Valid() {
		return nil, ValidationError("position", "unknown position "+position.String())
	}
	if err := optionalTextPtr("department", department, MaxDepartmentLength); err != nil {
		return nil, err
	}
	if err := optionalTextPtr("avatar", avatar, MaxAvatarLength); err != nil {
		return nil, err
	}

	at := now()
	u := &User{
		id:         uuid.New(),
		name:       name,
		email:      email,
		role:       role,
		position:   position,
		department: cloneString(department),
		avatar:     cloneString(avatar),
		createdAt:  at,
		updatedAt:  at,
	}
	u.record(TeamMemberInvited{
		EventMeta: newMeta(),
		UserID:    u.id,
		Name:      u.name,
		Email:     u.email,
		Role:      u.role,
	})
	return u, nil
}

// NewUserWithPassword registers a member who signs in with a password.
// passwordHash must already be hashed.
func NewUserWithPassword(name, email, passwordHash string, role UserRole, position Position) (*User, error) {
	if passwordHash == "" {
		return nil, ValidationError("password", "cannot be empty")
	}
	u, err := NewUser(name, email, role, position, nil, nil)
	if err != nil {
		return nil, err
	}
	u.passwordHash = passwordHash
	return u, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) Role() UserRole       { return u.role }
func (u *User) Position() Position   { return u.position }
func (u *User) Department() *string  { return cloneString(u.department) }
func (u *User) Avatar() *string      { return cloneString(u.avatar) }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) touch() { u.updatedAt = now() }

func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return ValidationError("password", "cannot be empty")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

// UpdateProfile replaces name and avatar. The event is queued even when
// neither value changed.
func (u *User) UpdateProfile(name string, avatar *string) error {
	name, err := requireText("name", name, MaxUserNameLength)
	if err != nil {
		return err
	}
	if err := optionalTextPtr("avatar", avatar, MaxAvatarLength); err != nil {
		return err
	}
	ev := TeamMemberProfileUpdated{
		EventMeta: newMeta(),
		UserID:    u.id,
		OldName:   u.name,
		NewName:   name,
		OldAvatar: cloneString(u.avatar),
		NewAvatar: cloneString(avatar),
	}
	u.name = name
	u.avatar = cloneString(avatar)
	u.touch()
	u.record(ev)
	return nil
}

func (u *User) ChangeRole(role UserRole) error {
	if !role.Valid() {
		return ValidationError("role", "unknown role "+role.String())
	}
	old := u.role
	u.role = role
	u.touch()
	u.record(TeamMemberRoleChanged{
		EventMeta: newMeta(),
		UserID:    u.id,
		UserName:  u.name,
		OldRole:   old,
		NewRole:   role,
	})
	return nil
}

func (u *User) UpdatePosition(position Position) error {
	if !position.Valid() {
		return ValidationError("position", "unknown position "+position.String())
	}
	old := u.position
	u.position = position
	u.touch()
	u.record(TeamMemberPositionChanged{
		EventMeta:   newMeta(),
		UserID:      u.id,
		UserName:    u.name,
		OldPosition: old,
		NewPosition: position,
	})
	return nil
}

func (u *User) UpdateDepartment(department *string) error {
	if err := optionalTextPtr("department", department, MaxDepartmentLength); err != nil {
		return err
	}
	old := u.department
	u.department = cloneString(department)
	u.touch()
	u.record(TeamMemberDepartmentChanged{
		EventMeta:     newMeta(),
		UserID:        u.id,
		UserName:      u.name,
		OldDepartment: old,
		NewDepartment: cloneString(department),
	})
	return nil
}

// IsMemberOf reports whether the user is on the roster of the project.
func (u *User) IsMemberOf(projectID int) bool {
	for _, id := range u.projectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

func (u *User) ProjectIDs() []int {
	out := make([]int, len(u.projectIDs))
	copy(out, u.projectIDs)
	return out
}

// AssignToProject adds p to the user's roster. Nothing happens, and no event
// is queued, when the user is already a member.
func (u *User) AssignToProject(p *Project) error {
	if p == nil {
		return ValidationError("project", "cannot be nil")
	}
	if u.IsMemberOf(p.ID()) {
		return nil
	}
	u.projectIDs = append(u.projectIDs, p.ID())
	u.touch()
	u.record(TeamMemberProjectAssigned{
		EventMeta:   newMeta(),
		UserID:      u.id,
		UserName:    u.name,
		ProjectID:   p.ID(),
		ProjectName: p.Name(),
	})
	return nil
}

// UnassignFromProject removes p from the user's roster if present.
func (u *User) UnassignFromProject(p *Project) error {
	if p == nil {
		return ValidationError("project", "cannot be nil")
	}
	for i, id := range u.projectIDs {
		if id != p.ID() {
			continue
		}
		u.projectIDs = append(u.projectIDs[:i], u.projectIDs[i+1:]...)
		u.touch()
		u.record(TeamMemberProjectUnassigned{
			EventMeta:   newMeta(),
			UserID:      u.id,
			UserName:    u.name,
			ProjectID:   p.ID(),
			ProjectName: p.Name(),
		})
		return nil
	}
	return nil
}

// MarkRemoved queues TeamMemberRemoved ahead of the row being deleted.
func (u *User) MarkRemoved() {
	u.record(TeamMemberRemoved{
		EventMeta: newMeta(),
		UserID:    u.id,
		Name:      u.name,
		Email:     u.email,
		Role:      u.role,
	})
}

// UserSnapshot is the persisted shape of a user.
type UserSnapshot struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         UserRole
	Position     Position
	Department   *string
	Avatar       *string
	PasswordHash string
	ProjectIDs   []int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func RestoreUser(s UserSnapshot) *User {
	u := &User{
		id:           s.ID,
		name:         s.Name,
		email:        s.Email,
		role:         s.Role,
		position:     s.Position,
		department:   cloneString(s.Department),
		avatar:       cloneString(s.Avatar),
		passwordHash: s.PasswordHash,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
	if len(s.ProjectIDs) > 0 {
		u.projectIDs = make([]int, len(s.ProjectIDs))
		copy(u.projectIDs, s.ProjectIDs)
	}
	return u
}

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email,
		Role:         u.role,
		Position:     u.position,
		Department:   u.Department(),
		Avatar:       u.Avatar(),
		PasswordHash: u.passwordHash,
		ProjectIDs:   u.ProjectIDs(),
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}
