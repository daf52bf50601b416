package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/models"
)

type activityServiceMock struct {
	filter models.ActivityFilter
	calls  int
}

func (m *activityServiceMock) List(ctx context.Context, identity models.Identity, filter models.ActivityFilter) ([]models.ActivityLog, error) {
	m.calls++
	m.filter = filter
	return []models.ActivityLog{}, nil
}

func TestActivityHandlerParsesQuery(t *testing.T) {
	svc := &activityServiceMock{}
	h := NewActivityHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/activity?classroomId=3&action=SUBMIT&limit=25", nil, teacher, nil)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.filter.ClassroomID)
	assert.Equal(t, int64(3), *svc.filter.ClassroomID)
	assert.Equal(t, "SUBMIT", svc.filter.Action)
	assert.Equal(t, 25, svc.filter.Limit)
}

func TestActivityHandlerRejectsBadQuery(t *testing.T) {
	for _, query := range []string{"classroomId=abc", "classroomId=-1", "limit=0", "limit=x"} {
		svc := &activityServiceMock{}
		h := NewActivityHandler(svc)
		c, w := newJSONContext(http.MethodGet, "/activity?"+query, nil, teacher, nil)
		h.List(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Zero(t, svc.calls, query)
	}
}

func TestActivityHandlerRequiresIdentity(t *testing.T) {
	h := NewActivityHandler(&activityServiceMock{})
	c, w := newJSONContext(http.MethodGet, "/activity", nil, nil, nil)
	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
