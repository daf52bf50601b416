package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

const loadSubmissionsFailed = "Failed to load submissions"

type submissionService interface {
	List(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.SubmissionList, string, error)
	Submit(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, form *validation.SubmissionForm) (*models.Submission, error)
	Delete(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) error
}

// SubmissionHandler serves an assignment's submissions.
type SubmissionHandler struct {
	submissions submissionService
	forms       *validation.Validator
	maxUpload   int64
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(submissions submissionService, forms *validation.Validator, maxUpload int64) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, forms: forms, maxUpload: maxUpload}
}

// List godoc
// @Summary List submissions of an assignment
// @Description Rows are flagged late when created after the due date. An empty list carries meta.notice.
// @Tags Submissions
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
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
	list, notice, err := h.submissions.List(c.Request.Context(), identity, ids[0], ids[1])
	if err != nil {
		if errors.Is(err, appErrors.ErrFetch) {
			err = appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, loadSubmissionsFailed)
		}
		response.Error(c, err)
		return
	}
	response.WithNotice(c, list, notice)
}

// Submit godoc
// @Summary Submit a file for an assignment
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param file formData file true "Submission"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
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
	values, err := formValues(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return
	}
	form, err := h.forms.Submission(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	submission, err := h.submissions.Submit(c.Request.Context(), identity, ids[0], ids[1], form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, submission)
}

// Delete godoc
// @Summary Delete the caller's submission
// @Tags Submissions
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param submissionId path int true "Submission ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submissions/{submissionId} [delete]
func (h *SubmissionHandler) Delete(c *gin.Context) {
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
	if err := h.submissions.Delete(c.Request.Context(), identity, ids[0], ids[1], ids[2]); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
