package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/validation"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

// FormHandler lets the browser validate a form before submitting it.
type FormHandler struct {
	forms     *validation.Validator
	maxUpload int64
}

// NewFormHandler constructs the handler.
func NewFormHandler(forms *validation.Validator, maxUpload int64) *FormHandler {
	return &FormHandler{forms: forms, maxUpload: maxUpload}
}

// Schemas godoc
// @Summary List form schemas
// @Tags Forms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /forms [get]
func (h *FormHandler) Schemas(c *gin.Context) {
	response.JSON(c, http.StatusOK, validation.Schemas())
}

// Validate godoc
// @Summary Validate form values against a schema
// @Description Reports the form state (empty, valid or invalid), per-field errors and whether the form may be submitted.
// @Tags Forms
// @Accept multipart/form-data
// @Produce json
// @Param schema path string true "Schema name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /forms/{schema}/validate [post]
func (h *FormHandler) Validate(c *gin.Context) {
	values, err := formValues(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.forms.NewForm(validation.SchemaName(c.Param("schema"))).Change(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
