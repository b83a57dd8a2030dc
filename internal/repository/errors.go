package repository

import "errors"

// Returned by updates that match no row. Lookups return (nil, nil) instead.
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
)
