package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskify/internal/domain"
	"taskify/internal/service"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

func intParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// queryList собирает значения вида ?status=1&status=2 и ?status=1,2
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// taskQuery разбирает фильтры и пагинацию GET /api/tasks.
func taskQuery(c *gin.Context) (domain.TaskFilters, service.Page, error) {
	var opts []domain.FilterOption

	if vals := queryList(c, "status"); len(vals) > 0 {
		statuses := make([]domain.TaskStatus, 0, len(vals))
		for _, v := range vals {
			s, err := domain.ParseTaskStatus(v)
			if err != nil {
				return domain.TaskFilters{}, service.Page{}, err
			}
			statuses = append(statuses, s)
		}
		opts = append(opts, domain.WithStatuses(statuses...))
	}
	if vals := queryList(c, "priority"); len(vals) > 0 {
		priorities := make([]domain.TaskPriority, 0, len(vals))
		for _, v := range vals {
			p, err := domain.ParseTaskPriority(v)
			if err != nil {
				return domain.TaskFilters{}, service.Page{}, err
			}
			priorities = append(priorities, p)
		}
		opts = append(opts, domain.WithPriorities(priorities...))
	}
	if v := c.Query("projectId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return domain.TaskFilters{}, service.Page{}, domain.ValidationError("projectId", "must be an integer")
		}
		opts = append(opts, domain.WithProject(id))
	}
	if v := c.Query("assigneeId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return domain.TaskFilters{}, service.Page{}, domain.ValidationError("assigneeId", "must be a UUID")
		}
		opts = append(opts, domain.WithAssignee(id))
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		opts = append(opts, domain.WithSearch(v))
	}

	var from, to *time.Time
	for key, dst := range map[string]**time.Time{"dueFrom": &from, "dueTo": &to} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		d, err := parseDate(v)
		if err != nil {
			return domain.TaskFilters{}, service.Page{}, domain.ValidationError(key, "must be a date (YYYY-MM-DD)")
		}
		*dst = &d
	}
	if from != nil || to != nil {
		opts = append(opts, domain.WithDueBetween(from, to))
	}

	page := service.Page{SortBy: service.SortField(c.Query("sortBy"))}
	page.Number, _ = strconv.Atoi(c.Query("page"))
	page.Size, _ = strconv.Atoi(c.Query("pageSize"))
	page.Desc, _ = strconv.ParseBool(c.Query("desc"))

	return domain.NewTaskFilters(opts...), page.Normalize(), nil
}
