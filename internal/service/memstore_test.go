package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/service"
)

// memStore keeps snapshots so every load hands out a fresh aggregate, the
// same way the database-backed store does.
type memStore struct {
	tasks      map[uuid.UUID]domain.TaskSnapshot
	projects   map[int]domain.ProjectSnapshot
	users      map[uuid.UUID]domain.UserSnapshot
	members    map[int]map[uuid.UUID]bool
	activities []domain.Activity
	nextID     int
	failCommit error
}

func newMemStore() *memStore {
	return &memStore{
		tasks:    map[uuid.UUID]domain.TaskSnapshot{},
		projects: map[int]domain.ProjectSnapshot{},
		users:    map[uuid.UUID]domain.UserSnapshot{},
		members:  map[int]map[uuid.UUID]bool{},
	}
}

func (s *memStore) Tasks() service.TaskRepository          { return memTasks{s} }
func (s *memStore) Projects() service.ProjectRepository    { return memProjects{s} }
func (s *memStore) Users() service.UserRepository          { return memUsers{s} }
func (s *memStore) Activities() service.ActivityRepository { return memActivities{s} }

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.tasks {
		cp.tasks[k] = v
	}
	for k, v := range s.projects {
		cp.projects[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for p, set := range s.members {
		cp.members[p] = map[uuid.UUID]bool{}
		for u := range set {
			cp.members[p][u] = true
		}
	}
	cp.activities = append(cp.activities, s.activities...)
	cp.nextID = s.nextID
	return cp
}

func (s *memStore) InTx(ctx context.Context, fn func(uow service.UnitOfWork) error) error {
	before := s.snapshot()
	err := fn(s)
	if err == nil && s.failCommit != nil {
		err = s.failCommit
	}
	if err != nil {
		s.tasks, s.projects, s.users = before.tasks, before.projects, before.users
		s.members, s.activities, s.nextID = before.members, before.activities, before.nextID
		return err
	}
	return nil
}

func (s *memStore) memberIDs(projectID int) []uuid.UUID {
	var ids []uuid.UUID
	for id := range s.members[projectID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func (s *memStore) projectIDs(userID uuid.UUID) []int {
	var ids []int
	for pid, set := range s.members {
		if set[userID] {
			ids = append(ids, pid)
		}
	}
	sort.Ints(ids)
	return ids
}

type memTasks struct{ s *memStore }

func (r memTasks) FindByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	snap, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	return domain.RestoreTask(snap), nil
}

func (r memTasks) TitleExists(_ context.Context, projectID int, title string, excludeID *uuid.UUID) (bool, error) {
	for id, t := range r.s.tasks {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if t.ProjectID == projectID && strings.EqualFold(t.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

func (r memTasks) List(_ context.Context, f domain.TaskFilters, p service.Page) ([]*domain.Task, int64, error) {
	var all []*domain.Task
	for _, snap := range r.s.tasks {
		t := domain.RestoreTask(snap)
		if f.Matches(t) {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title() < all[j].Title() })
	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r memTasks) ListByProject(_ context.Context, projectID int) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, snap := range r.s.tasks {
		if snap.ProjectID == projectID {
			out = append(out, domain.RestoreTask(snap))
		}
	}
	return out, nil
}

func (r memTasks) CountIncomplete(_ context.Context, userID uuid.UUID, projectID *int) (int64, error) {
	var n int64
	for _, t := range r.s.tasks {
		if t.AssigneeID == nil || *t.AssigneeID != userID || t.Status == domain.StatusCompleted {
			continue
		}
		if projectID != nil && t.ProjectID != *projectID {
			continue
		}
		n++
	}
	return n, nil
}

func (r memTasks) Create(_ context.Context, t *domain.Task) error {
	r.s.tasks[t.ID()] = t.Snapshot()
	return nil
}

func (r memTasks) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.s.tasks[t.ID()]; !ok {
		return errors.New("task row missing")
	}
	r.s.tasks[t.ID()] = t.Snapshot()
	return nil
}

func (r memTasks) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.s.tasks, id)
	return nil
}

type memProjects struct{ s *memStore }

func (r memProjects) FindByID(ctx context.Context, id int) (*domain.Project, error) {
	snap, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	snap.MemberIDs = r.s.memberIDs(id)
	tasks, _ := memTasks{r.s}.ListByProject(ctx, id)
	return domain.RestoreProject(snap, tasks), nil
}

func (r memProjects) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.s.projects[id]
	return ok, nil
}

func (r memProjects) List(ctx context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for id := range r.s.projects {
		p, _ := r.FindByID(ctx, id)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r memProjects) save(p *domain.Project) {
	r.s.projects[p.ID()] = p.Snapshot()
	set := map[uuid.UUID]bool{}
	for _, id := range p.MemberIDs() {
		set[id] = true
	}
	r.s.members[p.ID()] = set
}

func (r memProjects) Create(_ context.Context, p *domain.Project) error {
	r.s.nextID++
	p.SetID(r.s.nextID)
	r.save(p)
	return nil
}

func (r memProjects) Update(_ context.Context, p *domain.Project) error {
	r.save(p)
	return nil
}

func (r memProjects) Delete(_ context.Context, id int) error {
	for tid, t := range r.s.tasks {
		if t.ProjectID == id {
			delete(r.s.tasks, tid)
		}
	}
	delete(r.s.members, id)
	delete(r.s.projects, id)
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	snap, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	snap.ProjectIDs = r.s.projectIDs(id)
	return domain.RestoreUser(snap), nil
}

func (r memUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.s.users[id]
	return ok, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for id, u := range r.s.users {
		if u.Email == email {
			return r.FindByID(ctx, id)
		}
	}
	return nil, nil
}

func (r memUsers) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for id := range r.s.users {
		u, _ := r.FindByID(ctx, id)
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.users[u.ID()] = u.Snapshot()
	return nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) error {
	r.s.users[u.ID()] = u.Snapshot()
	keep := map[int]bool{}
	for _, pid := range u.ProjectIDs() {
		keep[pid] = true
	}
	for pid, set := range r.s.members {
		if keep[pid] {
			set[u.ID()] = true
		} else {
			delete(set, u.ID())
		}
	}
	for pid := range keep {
		if r.s.members[pid] == nil {
			r.s.members[pid] = map[uuid.UUID]bool{u.ID(): true}
		}
	}
	return nil
}

func (r memUsers) Delete(_ context.Context, id uuid.UUID) error {
	for tid, t := range r.s.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == id {
			t.AssigneeID = nil
			r.s.tasks[tid] = t
		}
	}
	for _, set := range r.s.members {
		delete(set, id)
	}
	delete(r.s.users, id)
	return nil
}

type memActivities struct{ s *memStore }

func (r memActivities) Create(_ context.Context, a domain.Activity) error {
	r.s.activities = append(r.s.activities, a)
	return nil
}

func (r memActivities) Recent(_ context.Context, limit int) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, limit)
	for i := len(r.s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.s.activities[i])
	}
	return out, nil
}

// recordingDispatcher captures what the coordinator dispatches.
type recordingDispatcher struct {
	events []domain.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, events []domain.Event) error {
	d.events = append(d.events, events...)
	return d.err
}

func (d *recordingDispatcher) names() []string {
	out := make([]string, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.EventName())
	}
	return out
}

func (d *recordingDispatcher) reset() { d.events = nil }

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(h, p string) bool      { return h == "hashed:"+p }
