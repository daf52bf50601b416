package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

const (
	downloadFailed = "Failed to download file"
	downloadTarget = "_blank"
)

type downloadService interface {
	AssignmentFile(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error)
	OwnSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error)
	ListedSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) (string, error)
	Cancel(identity models.Identity) bool
	State(identity models.Identity) (models.DownloadState, models.DownloadState)
}

// DownloadHandler hands out short-lived file URLs.
type DownloadHandler struct {
	downloads downloadService
}

// NewDownloadHandler constructs the handler.
func NewDownloadHandler(downloads downloadService) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Assignment godoc
// @Summary Get a download URL for an assignment's attachment
// @Tags Downloads
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param redirect query bool false "Redirect to the URL instead of returning it"
// @Success 200 {object} response.Envelope
// @Success 302
// @Failure 409 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/download [get]
func (h *DownloadHandler) Assignment(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := idParams(c, "classroomId", "assignmentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	url, err := h.downloads.AssignmentFile(c.Request.Context(), identity, ids[0], ids[1])
	h.respond(c, url, err)
}

// OwnSubmission godoc
// @Summary Get a download URL for the caller's submission
// @Tags Downloads
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param redirect query bool false "Redirect to the URL instead of returning it"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submission/download [get]
func (h *DownloadHandler) OwnSubmission(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := idParams(c, "classroomId", "assignmentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	url, err := h.downloads.OwnSubmission(c.Request.Context(), identity, ids[0], ids[1])
	h.respond(c, url, err)
}

// ListedSubmission godoc
// @Summary Get a download URL for a listed submission
// @Tags Downloads
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Param redirect query bool false "Redirect to the URL instead of returning it"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submissions/{submissionId}/download [get]
func (h *DownloadHandler) ListedSubmission(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := idParams(c, "classroomId", "assignmentId", "submissionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	url, err := h.downloads.ListedSubmission(c.Request.Context(), identity, ids[0], ids[1], ids[2])
	h.respond(c, url, err)
}

// Cancel godoc
// @Summary Cancel the caller's pending download
// @Tags Downloads
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /downloads/current [delete]
func (h *DownloadHandler) Cancel(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"cancelled": h.downloads.Cancel(identity)})
}

// State godoc
// @Summary Report the caller's download slot
// @Tags Downloads
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /downloads/current [get]
func (h *DownloadHandler) State(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	current, last := h.downloads.State(identity)
	response.JSON(c, http.StatusOK, dto.DownloadStatus{Current: current, Last: last})
}

func (h *DownloadHandler) respond(c *gin.Context, url string, err error) {
	if err != nil {
		if errors.Is(err, appErrors.ErrFetch) {
			err = appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, downloadFailed)
		}
		response.Error(c, err)
		return
	}
	if c.Query("redirect") == "true" {
		c.Header("Cache-Control", "no-store")
		c.Redirect(http.StatusFound, url)
		return
	}
	response.JSON(c, http.StatusOK, dto.DownloadLink{URL: url, Target: downloadTarget})
}
