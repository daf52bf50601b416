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
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type downloadServiceMock struct {
	url       string
	err       error
	cancelled bool
}

func (m *downloadServiceMock) AssignmentFile(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error) {
	return m.url, m.err
}

func (m *downloadServiceMock) OwnSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error) {
	return m.url, m.err
}

func (m *downloadServiceMock) ListedSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) (string, error) {
	return m.url, m.err
}

func (m *downloadServiceMock) Cancel(identity models.Identity) bool {
	return m.cancelled
}

func (m *downloadServiceMock) State(identity models.Identity) (models.DownloadState, models.DownloadState) {
	return models.DownloadState{Phase: models.DownloadPhaseIdle}, models.DownloadState{Phase: models.DownloadPhaseResolved, URL: m.url}
}

func TestDownloadHandlerReturnsLink(t *testing.T) {
	h := NewDownloadHandler(&downloadServiceMock{url: "https://files.example.com/a.pdf"})

	c, w := newJSONContext(http.MethodGet, "/classrooms/3/assignments/10/download", nil, student, ids("classroomId", "3", "assignmentId", "10"))
	h.Assignment(c)
	require.Equal(t, http.StatusOK, w.Code)

	var link dto.DownloadLink
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &link))
	assert.Equal(t, dto.DownloadLink{URL: "https://files.example.com/a.pdf", Target: "_blank"}, link)
}

func TestDownloadHandlerRedirects(t *testing.T) {
	h := NewDownloadHandler(&downloadServiceMock{url: "https://files.example.com/s.pdf"})

	c, w := newJSONContext(http.MethodGet, "/classrooms/3/assignments/10/submission/download?redirect=true", nil, student, ids("classroomId", "3", "assignmentId", "10"))
	h.OwnSubmission(c)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://files.example.com/s.pdf", w.Header().Get("Location"))
}

func TestDownloadHandlerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "in progress", err: appErrors.ErrDownloadInProgress, status: http.StatusConflict, message: appErrors.ErrDownloadInProgress.Message},
		{name: "no submission", err: appErrors.ErrNoSubmission, status: http.StatusNotFound, message: appErrors.ErrNoSubmission.Message},
		{name: "upstream", err: appErrors.Clone(appErrors.ErrFetch, "boom"), status: http.StatusBadGateway, message: "Failed to download file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewDownloadHandler(&downloadServiceMock{err: tc.err})
			c, w := newJSONContext(http.MethodGet, "/x", nil, teacher, ids("classroomId", "3", "assignmentId", "10", "submissionId", "42"))
			h.ListedSubmission(c)
			require.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, decodeEnvelope(t, w).Error.Message)
		})
	}
}

func TestDownloadHandlerStateAndCancel(t *testing.T) {
	h := NewDownloadHandler(&downloadServiceMock{url: "https://files.example.com/a.pdf", cancelled: true})

	c, w := newJSONContext(http.MethodGet, "/downloads/current", nil, student, nil)
	h.State(c)
	require.Equal(t, http.StatusOK, w.Code)
	var status dto.DownloadStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &status))
	assert.Equal(t, models.DownloadPhaseResolved, status.Last.Phase)

	c, w = newJSONContext(http.MethodDelete, "/downloads/current", nil, student, nil)
	h.Cancel(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cancelled":true}`, string(decodeEnvelope(t, w).Data))
}
