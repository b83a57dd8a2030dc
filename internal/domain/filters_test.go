package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskFilters_ZeroValueMatchesAll(t *testing.T) {
	f := NewTaskFilters()
	assert.True(t, f.IsEmpty())
	assert.True(t, f.Matches(newTestTask(t)))
}

func TestTaskFilters_Matches(t *testing.T) {
	freezeClock(t, fixedNow)
	assignee := uuid.New()
	due := fixedNow.Add(5 * 24 * time.Hour)
	task, err := NewTask("Fix login bug", "OAuth redirect loop", PriorityHigh, StatusInProgress, 2, &assignee, &due)
	require.NoError(t, err)

	from := fixedNow.Add(24 * time.Hour)
	to := fixedNow.Add(5*24*time.Hour + 23*time.Hour)
	tooEarly := fixedNow.Add(4 * 24 * time.Hour)

	cases := []struct {
		name string
		f    TaskFilters
		want bool
	}{
		{"status hit", NewTaskFilters(WithStatuses(StatusTodo, StatusInProgress)), true},
		{"status miss", NewTaskFilters(WithStatuses(StatusCompleted)), false},
		{"priority", NewTaskFilters(WithPriorities(PriorityHigh)), true},
		{"project miss", NewTaskFilters(WithProject(3)), false},
		{"assignee", NewTaskFilters(WithAssignee(assignee)), true},
		{"other assignee", NewTaskFilters(WithAssignee(uuid.New())), false},
		{"search title", NewTaskFilters(WithSearch("LOGIN")), true},
		{"search description", NewTaskFilters(WithSearch("redirect")), true},
		{"search miss", NewTaskFilters(WithSearch("payments")), false},
		{"due inside", NewTaskFilters(WithDueBetween(&from, &to)), true},
		{"due after range", NewTaskFilters(WithDueBetween(nil, &tooEarly)), false},
		{"combined", NewTaskFilters(WithProject(2), WithStatuses(StatusInProgress), WithSearch("bug")), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f.Matches(task))
		})
	}
}

func TestTaskFilters_DueRangeExcludesUndated(t *testing.T) {
	from := fixedNow
	f := NewTaskFilters(WithDueBetween(&from, nil))
	assert.False(t, f.Matches(newTestTask(t)))
}

func TestTaskFilters_EqualAndImmutable(t *testing.T) {
	statuses := []TaskStatus{StatusTodo}
	a := NewTaskFilters(WithStatuses(statuses...), WithProject(1))
	b := NewTaskFilters(WithStatuses(StatusTodo), WithProject(1))
	statuses[0] = StatusCompleted

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewTaskFilters(WithProject(1))))

	got := a.Statuses()
	got[0] = StatusReview
	assert.Equal(t, []TaskStatus{StatusTodo}, a.Statuses())
	id, ok := a.ProjectID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}
