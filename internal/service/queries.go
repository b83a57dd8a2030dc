package service

import "taskify/internal/domain"

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortTitle     SortField = "title"
	SortPriority  SortField = "priority"
	SortDueDate   SortField = "dueDate"
	SortStatus    SortField = "status"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func (f SortField) Valid() bool {
	switch f {
	case SortCreatedAt, SortTitle, SortPriority, SortDueDate, SortStatus:
		return true
	}
	return false
}

// Page selects a slice of a sorted list. Number is 1-based.
type Page struct {
	Number int
	Size   int
	SortBy SortField
	Desc   bool
}

// Normalize fills defaults and clamps out-of-range values. An unset or
// unknown sort field falls back to newest first.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	if !p.SortBy.Valid() {
		p.SortBy = SortCreatedAt
		p.Desc = true
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type TaskPage struct {
	Items      []*domain.Task
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

func newTaskPage(items []*domain.Task, total int64, p Page) TaskPage {
	pages := 0
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return TaskPage{Items: items, Total: total, Page: p.Number, PageSize: p.Size, TotalPages: pages}
}
