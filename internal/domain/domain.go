// Package domain holds the Task, Project and User aggregates together with
// the rules each of them can enforce on its own state.
//
// Aggregates are created through factories (NewTask, NewProject, NewUser),
// mutated only through methods that validate before touching any field, and
// queue domain events that callers drain with PullEvents after a successful
// commit. Nothing in this package logs, retries or performs I/O.
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxProjectNameLength = 200
	MaxUserNameLength    = 100
	MaxDepartmentLength  = 100
	MaxAvatarLength      = 500
)

// now is swapped by tests to freeze the clock.
var now = func() time.Time { return time.Now().UTC() }

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastDate reports whether the calendar day of d is strictly before that of ref (UTC).
func IsPastDate(d, ref time.Time) bool {
	return DateOnly(d).Before(DateOnly(ref))
}

func requireText(field, value string, limit int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ValidationError(field, "cannot be empty")
	}
	if utf8.RuneCountInString(value) > limit {
		return "", ValidationError(field, fmt.Sprintf("cannot exceed %d characters", limit))
	}
	return value, nil
}

func optionalText(field, value string, limit int) (string, error) {
	if utf8.RuneCountInString(value) > limit {
		return "", ValidationError(field, fmt.Sprintf("cannot exceed %d characters", limit))
	}
	return value, nil
}

func optionalTextPtr(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	_, err := optionalText(field, *value, limit)
	return err
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
