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
	enrollSucceeded = "Student successfully enrolled in classroom"
	enrollFailed    = "Failed to enroll student. Please try again."
)

type enrollmentService interface {
	Options(ctx context.Context, identity models.Identity, classroomID int64, query string) ([]dto.StudentOption, error)
	Enroll(ctx context.Context, identity models.Identity, classroomID int64, req dto.EnrollRequest) error
}

// EnrollmentHandler backs the student search modal.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Options godoc
// @Summary Search unenrolled students
// @Tags Enrollments
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param q query string false "Name or email filter"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId}/enrollments/options [get]
func (h *EnrollmentHandler) Options(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	classroomID, err := idParam(c, "classroomId")
	if err != nil {
		response.Error(c, err)
		return
	}
	options, err := h.enrollments.Options(c.Request.Context(), identity, classroomID, c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Enroll godoc
// @Summary Enroll a student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param payload body dto.EnrollRequest true "Selected student"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms/{classroomId}/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	classroomID, err := idParam(c, "classroomId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation("Please select a student", map[string]string{"studentId": "Please select a student"}))
		return
	}
	if err := h.enrollments.Enroll(c.Request.Context(), identity, classroomID, req); err != nil {
		if errors.Is(err, appErrors.ErrFetch) {
			err = appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, enrollFailed)
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, models.Enrollment{StudentID: req.StudentID, ClassroomID: classroomID}, map[string]interface{}{"notice": enrollSucceeded})
}
