package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

type assignmentService interface {
	Cards(ctx context.Context, identity models.Identity, classroomID int64) ([]dto.AssignmentCard, error)
	Card(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.AssignmentCard, error)
	Create(ctx context.Context, identity models.Identity, classroomID int64, form *validation.AssignmentForm) (*models.Assignment, error)
	Update(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, form *validation.AssignmentEditForm) (*models.Assignment, error)
	Delete(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error
}

// AssignmentHandler serves assignment cards and assignment mutations.
type AssignmentHandler struct {
	assignments assignmentService
	forms       *validation.Validator
	maxUpload   int64
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(assignments assignmentService, forms *validation.Validator, maxUpload int64) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, forms: forms, maxUpload: maxUpload}
}

// List godoc
// @Summary List assignment cards of a classroom
// @Tags Assignments
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
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
	cards, err := h.assignments.Cards(c.Request.Context(), identity, classroomID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cards)
}

// Get godoc
// @Summary Get one assignment card
// @Tags Assignments
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
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
	card, err := h.assignments.Card(c.Request.Context(), identity, ids[0], ids[1])
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, card, card.Notice)
}

// Create godoc
// @Summary Create an assignment
// @Tags Assignments
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param dueDate formData string true "Due date (YYYY-MM-DD)"
// @Param file formData file true "Attachment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
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
	values, err := formValues(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return
	}
	form, err := h.forms.Assignment(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	assignment, err := h.assignments.Create(c.Request.Context(), identity, classroomID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Edit an assignment
// @Tags Assignments
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param dueDate formData string true "Due date (YYYY-MM-DD)"
// @Param file formData file false "Replacement attachment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
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
	form, err := h.forms.AssignmentEdit(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	assignment, err := h.assignments.Update(c.Request.Context(), identity, ids[0], ids[1], form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Assignments
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Success 204
// @Router /classrooms/{classroomId}/assignments/{assignmentId} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
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
	if err := h.assignments.Delete(c.Request.Context(), identity, ids[0], ids[1]); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
