package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskify/internal/domain"
)

type ActivityService interface {
	RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error)
}

type ActivityHandler struct {
	activity ActivityService
}

func NewActivityHandler(activity ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Recent godoc
// @Summary      Recent activity feed
// @Tags         activity
// @Produce      json
// @Param        limit  query  int  false  "Number of entries"
// @Success      200    {array}  ActivityResponse
// @Security     BearerAuth
// @Router       /api/activity [get]
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	feed, err := h.activity.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]ActivityResponse, 0, len(feed))
	for _, a := range feed {
		resp = append(resp, toActivityResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}
