package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/service"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/response"
)

type exportService interface {
	Roster(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, format string) (*service.ExportResult, error)
	ParseToken(token string) (exportID, relPath string, expiresAt time.Time, err error)
	Open(relPath string) (*os.File, error)
}

type structValidator interface {
	Struct(req interface{}) error
}

// ExportHandler produces submission roster files.
type ExportHandler struct {
	exports   exportService
	validator structValidator
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService, validator structValidator) *ExportHandler {
	return &ExportHandler{exports: exports, validator: validator}
}

// Create godoc
// @Summary Export an assignment's submissions
// @Tags Exports
// @Accept json
// @Produce json
// @Param classroomId path int true "Classroom ID"
// @Param assignmentId path int true "Assignment ID"
// @Param payload body dto.ExportRequest true "Export format"
// @Success 201 {object} response.Envelope
// @Router /classrooms/{classroomId}/assignments/{assignmentId}/submissions/export [post]
func (h *ExportHandler) Create(c *gin.Context) {
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
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid export request"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.Roster(c.Request.Context(), identity, ids[0], ids[1], req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ExportLink{URL: result.URL, Format: result.Format, ExpiresAt: result.ExpiresAt})
}

// Download godoc
// @Summary Download an export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	_, relPath, _, err := h.exports.ParseToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.Open(relPath)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	name := filepath.Base(relPath)
	contentType := "text/csv"
	if strings.HasSuffix(name, ".pdf") {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
