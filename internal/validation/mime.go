package validation

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/noah-isme/classroom-gateway/internal/models"
)

// FileTypeMessage is reported for any upload outside the allow-list.
const FileTypeMessage = "File must be an image (JPEG, PNG), PDF, or document (DOC, DOCX)"

// AllowedMIMETypes lists the upload content types accepted by every form.
var AllowedMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var allowedMIME = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllowedMIMETypes))
	for _, t := range AllowedMIMETypes {
		set[t] = struct{}{}
	}
	return set
}()

// IsAllowedMIME reports whether contentType is on the allow-list.
func IsAllowedMIME(contentType string) bool {
	_, ok := allowedMIME[normalizeMIME(contentType)]
	return ok
}

// ResolveContentType returns the declared type of an upload, falling back to
// sniffing the content when the declared type is missing or generic.
func ResolveContentType(declared string, content []byte) string {
	declared = normalizeMIME(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if len(content) == 0 {
		return declared
	}
	return normalizeMIME(mimetype.Detect(content).String())
}

// PrepareFile fills in the content type of an upload before validation.
func PrepareFile(file *models.FileUpload) *models.FileUpload {
	if file == nil {
		return nil
	}
	file.ContentType = ResolveContentType(file.ContentType, file.Content)
	if file.Size == 0 {
		file.Size = int64(len(file.Content))
	}
	return file
}

func normalizeMIME(raw string) string {
	base, _, _ := strings.Cut(raw, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
