package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

var fixedNow = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(Options{
		Location:    time.UTC,
		Now:         func() time.Time { return fixedNow },
		MaxFileSize: 1024 * 1024,
	})
}

func pdfUpload() *models.FileUpload {
	return &models.FileUpload{Filename: "brief.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4\n")}
}

func validAssignmentValues() Values {
	return Values{
		Fields: map[string]string{
			"title":       "Essay",
			"description": "Write 500 words",
			"dueDate":     "2026-10-20",
		},
		Files: map[string]*models.FileUpload{"file": pdfUpload()},
	}
}

func TestAssignmentSchemaAcceptsValidInput(t *testing.T) {
	v := newTestValidator()
	form, err := v.Assignment(validAssignmentValues())
	require.NoError(t, err)
	assert.Equal(t, "Essay", form.Title)
	assert.Equal(t, "application/pdf", form.File.ContentType)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), *form.DueDate)
}

func TestAssignmentSchemaRejectsSingleFieldViolations(t *testing.T) {
	v := newTestValidator()
	cases := []struct {
		name    string
		mutate  func(Values)
		field   string
		message string
	}{
		{"missing title", func(vals Values) { delete(vals.Fields, "title") }, "title", "Title is required"},
		{"missing description", func(vals Values) { vals.Fields["description"] = "" }, "description", "Description is required"},
		{"missing file", func(vals Values) { delete(vals.Files, "file") }, "file", "File is required"},
		{"bad file type", func(vals Values) {
			vals.Files["file"] = &models.FileUpload{Filename: "a.txt", ContentType: "text/plain", Content: []byte("hi")}
		}, "file", FileTypeMessage},
		{"missing due date", func(vals Values) { delete(vals.Fields, "dueDate") }, "dueDate", "Date is required"},
		{"past due date", func(vals Values) { vals.Fields["dueDate"] = "2026-10-14" }, "dueDate", "Date cannot be in the past"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := validAssignmentValues()
			tc.mutate(values)
			_, err := v.Assignment(values)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tc.message, appErr.Details[tc.field])
		})
	}
}

func TestDueDateBoundaryIsStartOfToday(t *testing.T) {
	v := newTestValidator()

	values := validAssignmentValues()
	values.Fields["dueDate"] = "2026-10-15T00:00:00Z"
	_, err := v.Assignment(values)
	require.NoError(t, err)

	values = validAssignmentValues()
	values.Fields["dueDate"] = "2026-10-14T23:59:59.999Z"
	_, err = v.Assignment(values)
	require.Error(t, err)
	assert.Equal(t, "Date cannot be in the past", appErrors.FromError(err).Details["dueDate"])
}

func TestDueDateUsesConfiguredLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 2026-10-15 02:00 in Jakarta is still 2026-10-14 in UTC
	v := New(Options{Location: jakarta, Now: func() time.Time { return time.Date(2026, 10, 14, 19, 0, 0, 0, time.UTC) }})
	values := validAssignmentValues()
	values.Fields["dueDate"] = "2026-10-14"
	_, err := v.Assignment(values)
	require.Error(t, err)

	values.Fields["dueDate"] = "2026-10-15"
	_, err = v.Assignment(values)
	require.NoError(t, err)
}

func TestAssignmentEditAllowsMissingFile(t *testing.T) {
	v := newTestValidator()
	values := validAssignmentValues()
	delete(values.Files, "file")
	_, err := v.AssignmentEdit(values)
	require.NoError(t, err)

	values.Files = map[string]*models.FileUpload{"file": {ContentType: "application/zip", Content: []byte("PK")}}
	_, err = v.AssignmentEdit(values)
	require.Error(t, err)
	assert.Equal(t, FileTypeMessage, appErrors.FromError(err).Details["file"])
}

func TestMaterialSchemas(t *testing.T) {
	v := newTestValidator()
	values := Values{
		Fields: map[string]string{"title": "Slides", "description": "Week 1"},
		Files:  map[string]*models.FileUpload{"file": pdfUpload()},
	}
	_, err := v.Material(values)
	require.NoError(t, err)

	values.Files = nil
	_, err = v.Material(values)
	require.Error(t, err)
	assert.Equal(t, "File is required", appErrors.FromError(err).Details["file"])

	_, err = v.MaterialEdit(values)
	require.NoError(t, err)
}

func TestSubmissionSchemaSniffsGenericContentType(t *testing.T) {
	v := newTestValidator()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	form, err := v.Submission(Values{Files: map[string]*models.FileUpload{
		"file": {Filename: "photo", ContentType: "application/octet-stream", Content: png},
	}})
	require.NoError(t, err)
	assert.Equal(t, "image/png", form.File.ContentType)
}

func TestSubmissionSchemaRejectsOversizedFile(t *testing.T) {
	v := newTestValidator()
	upload := pdfUpload()
	upload.Size = 2 * 1024 * 1024
	_, err := v.Submission(Values{Files: map[string]*models.FileUpload{"file": upload}})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details["file"], "must not exceed")
}

func TestMessageSchemaIsStrict(t *testing.T) {
	v := newTestValidator()
	_, err := v.Message(Values{Fields: map[string]string{"content": "hello"}})
	require.NoError(t, err)

	_, err = v.Message(Values{
		Fields: map[string]string{"content": "hello", "priority": "high"},
		Files:  map[string]*models.FileUpload{"file": pdfUpload()},
	})
	require.Error(t, err)
	details := appErrors.FromError(err).Details
	require.Len(t, details, 1)
	assert.Contains(t, details["priority"], "Unrecognized key")
}

func TestMessageSchemaRequiresContent(t *testing.T) {
	v := newTestValidator()
	_, err := v.Message(Values{Files: map[string]*models.FileUpload{"file": pdfUpload()}})
	require.Error(t, err)
	assert.Equal(t, "You need to input a message in the text box", appErrors.FromError(err).Details["content"])
}

func TestMeetLinkSchema(t *testing.T) {
	v := newTestValidator()
	_, err := v.MeetLink(Values{Fields: map[string]string{"meetlink": "https://meet.google.com/abc-defg-hij"}})
	require.NoError(t, err)

	cases := map[string]string{
		"https://meet.google.com/ab-defg-hij": "Please enter a valid Google Meet link",
		"https://zoom.us/abc-defg-hij":        "Please enter a valid Google Meet link",
		"not a url":                           "Please enter a valid URL",
		"":                                    "Please enter a valid URL",
	}
	for link, message := range cases {
		_, err := v.MeetLink(Values{Fields: map[string]string{"meetlink": link}})
		require.Error(t, err, link)
		assert.Equal(t, message, appErrors.FromError(err).Details["meetlink"], link)
	}
}

func TestCheckUnknownSchema(t *testing.T) {
	v := newTestValidator()
	_, _, err := v.Check("quiz", Values{})
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStructConvertsDTOErrors(t *testing.T) {
	v := newTestValidator()
	type enrollRequest struct {
		StudentID int64 `json:"studentId" validate:"required,gt=0"`
	}
	err := v.Struct(enrollRequest{})
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Details, "studentId")
}
