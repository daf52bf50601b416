package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

type activityService interface {
	List(ctx context.Context, identity models.Identity, filter models.ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityHandler exposes the recorded activity log.
type ActivityHandler struct {
	activity activityService
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(activity activityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List godoc
// @Summary List activity
// @Description Teachers list a classroom's activity; students only see their own.
// @Tags Activity
// @Produce json
// @Param classroomId query int false "Classroom ID"
// @Param action query string false "Action"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Router /activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter := models.ActivityFilter{Action: c.Query("action")}
	if raw := c.Query("classroomId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Validation("invalid classroomId", map[string]string{"classroomId": "must be a positive integer"}))
			return
		}
		filter.ClassroomID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.Error(c, appErrors.Validation("invalid limit", map[string]string{"limit": "must be a positive integer"}))
			return
		}
		filter.Limit = limit
	}
	logs, err := h.activity.List(c.Request.Context(), identity, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
