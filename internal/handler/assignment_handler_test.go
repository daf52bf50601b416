package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type assignmentServiceMock struct {
	cards   []dto.AssignmentCard
	card    *dto.AssignmentCard
	created *validation.AssignmentForm
	err     error
}

func (m *assignmentServiceMock) Cards(ctx context.Context, identity models.Identity, classroomID int64) ([]dto.AssignmentCard, error) {
	return m.cards, m.err
}

func (m *assignmentServiceMock) Card(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.AssignmentCard, error) {
	return m.card, m.err
}

func (m *assignmentServiceMock) Create(ctx context.Context, identity models.Identity, classroomID int64, form *validation.AssignmentForm) (*models.Assignment, error) {
	m.created = form
	return &models.Assignment{ID: 11, Title: form.Title, ClassroomID: classroomID}, m.err
}

func (m *assignmentServiceMock) Update(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, form *validation.AssignmentEditForm) (*models.Assignment, error) {
	return &models.Assignment{ID: assignmentID, Title: form.Title}, m.err
}

func (m *assignmentServiceMock) Delete(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error {
	return m.err
}

func TestAssignmentHandlerList(t *testing.T) {
	svc := &assignmentServiceMock{cards: []dto.AssignmentCard{{ID: 10, Title: "Essay", Actions: []dto.CardAction{{Key: dto.ActionSubmit, Label: "Submit"}}}}}
	h := NewAssignmentHandler(svc, testValidator(), 1<<20)

	c, w := newJSONContext(http.MethodGet, "/classrooms/3/assignments", nil, student, ids("classroomId", "3"))
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var cards []dto.AssignmentCard
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &cards))
	require.Len(t, cards, 1)
	assert.True(t, cards[0].HasAction(dto.ActionSubmit))
}

func TestAssignmentHandlerGetCarriesNotice(t *testing.T) {
	svc := &assignmentServiceMock{card: &dto.AssignmentCard{ID: 10, Notice: "Could not load your submission status."}}
	h := NewAssignmentHandler(svc, testValidator(), 1<<20)

	c, w := newJSONContext(http.MethodGet, "/classrooms/3/assignments/10", nil, student, ids("classroomId", "3", "assignmentId", "10"))
	h.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Could not load your submission status.", decodeEnvelope(t, w).Meta["notice"])
}

func TestAssignmentHandlerRejectsBadRequests(t *testing.T) {
	h := NewAssignmentHandler(&assignmentServiceMock{}, testValidator(), 1<<20)

	c, w := newJSONContext(http.MethodGet, "/classrooms/x/assignments", nil, student, ids("classroomId", "x"))
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newJSONContext(http.MethodGet, "/classrooms/3/assignments", nil, nil, ids("classroomId", "3"))
	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssignmentHandlerCreateValidatesForm(t *testing.T) {
	svc := &assignmentServiceMock{}
	h := NewAssignmentHandler(svc, testValidator(), 1<<20)

	c, w := newMultipartContext(t, http.MethodPost, "/classrooms/3/assignments",
		map[string]string{"description": "Write it", "dueDate": "2026-10-14"},
		[]testFile{{field: "file", name: "a.exe", contentType: "application/x-msdownload", content: []byte("MZ")}},
		teacher, ids("classroomId", "3"))
	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrValidation.Code, env.Error.Code)
	assert.Equal(t, "Title is required", env.Error.Details["title"])
	assert.Equal(t, "Date cannot be in the past", env.Error.Details["dueDate"])
	assert.Equal(t, validation.FileTypeMessage, env.Error.Details["file"])
	assert.Nil(t, svc.created)
}

func TestAssignmentHandlerCreate(t *testing.T) {
	svc := &assignmentServiceMock{}
	h := NewAssignmentHandler(svc, testValidator(), 1<<20)

	c, w := newMultipartContext(t, http.MethodPost, "/classrooms/3/assignments",
		map[string]string{"title": "Essay", "description": "Write it", "dueDate": "2026-10-15"},
		[]testFile{{field: "file", name: "brief.pdf", contentType: "application/pdf", content: []byte("%PDF-1.4")}},
		teacher, ids("classroomId", "3"))
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Essay", svc.created.Title)
	assert.Equal(t, "brief.pdf", svc.created.File.Filename)
}

func TestAssignmentHandlerDeleteMapsServiceError(t *testing.T) {
	h := NewAssignmentHandler(&assignmentServiceMock{err: appErrors.ErrForbidden}, testValidator(), 1<<20)

	c, w := newJSONContext(http.MethodDelete, "/classrooms/3/assignments/10", nil, student, ids("classroomId", "3", "assignmentId", "10"))
	h.Delete(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
