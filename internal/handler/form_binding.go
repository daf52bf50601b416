package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

// multipartOverhead is the room left for field parts and boundaries on top of
// the largest accepted file.
const multipartOverhead = 1 << 20

// formValues reads a multipart, urlencoded or JSON body into form values.
// File contents are read up to maxFileSize; the declared size is kept so
// oversized uploads fail validation instead of the read.
func formValues(c *gin.Context, maxFileSize int64) (validation.Values, error) {
	values := validation.Values{Fields: map[string]string{}, Files: map[string]*models.FileUpload{}}
	if c.Request.Body == nil {
		return values, nil
	}
	contentType := c.ContentType()

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*maxFileSize+multipartOverhead)
		if err := c.Request.ParseMultipartForm(multipartOverhead); err != nil {
			return values, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid multipart form")
		}
		for key, vals := range c.Request.MultipartForm.Value {
			if len(vals) > 0 {
				values.Fields[key] = vals[0]
			}
		}
		for key, headers := range c.Request.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			upload, err := readUpload(headers[0], maxFileSize)
			if err != nil {
				return values, err
			}
			values.Files[key] = upload
		}
	case contentType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return values, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form")
		}
		for key, vals := range c.Request.PostForm {
			if len(vals) > 0 {
				values.Fields[key] = vals[0]
			}
		}
	default:
		var payload map[string]interface{}
		if err := json.NewDecoder(io.LimitReader(c.Request.Body, multipartOverhead)).Decode(&payload); err != nil {
			if err == io.EOF {
				return values, nil
			}
			return values, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON body")
		}
		invalid := map[string]string{}
		for key, raw := range payload {
			switch v := raw.(type) {
			case nil:
				// null still counts as a submitted key
				values.Fields[key] = ""
			case string:
				values.Fields[key] = v
			default:
				invalid[key] = fmt.Sprintf("Expected string, received %s", jsonKind(v))
			}
		}
		if len(invalid) > 0 {
			return values, appErrors.Validation("invalid form", invalid)
		}
	}
	return values, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	default:
		return "object"
	}
}

func readUpload(header *multipart.FileHeader, maxFileSize int64) (*models.FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable upload")
	}
	defer f.Close()

	limit := header.Size
	if maxFileSize > 0 && limit > maxFileSize {
		limit = maxFileSize
	}
	content, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable upload")
	}
	return &models.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}, nil
}
