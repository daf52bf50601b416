package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

type contentService interface {
	CreateMaterial(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MaterialForm) (*models.Material, error)
	UpdateMaterial(ctx context.Context, identity models.Identity, classroomID, materialID int64, form *validation.MaterialEditForm) (*models.Material, error)
	SendMessage(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MessageForm) (*models.Message, error)
	SetMeetLink(ctx context.Context, identity models.Identity, classroomID int64, form *validation.MeetLinkForm) error
}

// ContentHandler serves materials, messages and the meet link.
type ContentHandler struct {
	content   contentService
	forms     *validation.Validator
	maxUpload int64
}

// NewContentHandler constructs the handler.
func NewContentHandler(content contentService, forms *validation.Validator, maxUpload int64) *ContentHandler {
	return &ContentHandler{content: content, forms: forms, maxUpload: maxUpload}
}

// CreateMaterial godoc
// @Summary Upload a material
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param file formData file true "Material file"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{classroomId}/materials [post]
func (h *ContentHandler) CreateMaterial(c *gin.Context) {
	identity, classroomID, values, ok := h.prepare(c)
	if !ok {
		return
	}
	form, err := h.forms.Material(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	material, err := h.content.CreateMaterial(c.Request.Context(), identity, classroomID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}

// UpdateMaterial godoc
// @Summary Edit a material
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param materialId path int true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{classroomId}/materials/{materialId} [put]
func (h *ContentHandler) UpdateMaterial(c *gin.Context) {
	materialID, err := idParam(c, "materialId")
	if err != nil {
		response.Error(c, err)
		return
	}
	identity, classroomID, values, ok := h.prepare(c)
	if !ok {
		return
	}
	form, err := h.forms.MaterialEdit(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	material, err := h.content.UpdateMaterial(c.Request.Context(), identity, classroomID, materialID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, material)
}

// SendMessage godoc
// @Summary Post a classroom message
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param content formData string true "Message"
// @Param file formData file false "Attachment"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{classroomId}/messages [post]
func (h *ContentHandler) SendMessage(c *gin.Context) {
	identity, classroomID, values, ok := h.prepare(c)
	if !ok {
		return
	}
	form, err := h.forms.Message(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	message, err := h.content.SendMessage(c.Request.Context(), identity, classroomID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// SetMeetLink godoc
// @Summary Set the classroom's meet link
// @Tags Content
// @Accept json
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Success 204
// @Router /classrooms/{classroomId}/meetlink [put]
func (h *ContentHandler) SetMeetLink(c *gin.Context) {
	identity, classroomID, values, ok := h.prepare(c)
	if !ok {
		return
	}
	form, err := h.forms.MeetLink(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.content.SetMeetLink(c.Request.Context(), identity, classroomID, form); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *ContentHandler) prepare(c *gin.Context) (models.Identity, int64, validation.Values, bool) {
	identity, err := identityFromContext(c)
	if err != nil {
		response.Error(c, err)
		return models.Identity{}, 0, validation.Values{}, false
	}
	classroomID, err := idParam(c, "classroomId")
	if err != nil {
		response.Error(c, err)
		return models.Identity{}, 0, validation.Values{}, false
	}
	values, err := formValues(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return models.Identity{}, 0, validation.Values{}, false
	}
	return identity, classroomID, values, true
}
