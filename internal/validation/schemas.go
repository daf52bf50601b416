package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/classroom-gateway/internal/models"
)

// SchemaName identifies a form schema.
type SchemaName string

const (
	SchemaAssignment     SchemaName = "assignment"
	SchemaAssignmentEdit SchemaName = "assignment-edit"
	SchemaMaterial       SchemaName = "material"
	SchemaMaterialEdit   SchemaName = "material-edit"
	SchemaSubmission     SchemaName = "submission"
	SchemaMessage        SchemaName = "message"
	SchemaMeetLink       SchemaName = "meetlink"
)

// Values is the raw content of a submitted form: text fields and files keyed
// by form field name.
type Values struct {
	Fields map[string]string
	Files  map[string]*models.FileUpload
}

// Empty reports whether the form carries no fields at all.
func (v Values) Empty() bool {
	return len(v.Fields) == 0 && len(v.Files) == 0
}

// Keys returns every field and file name present, sorted.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v.Fields)+len(v.Files))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	for k := range v.Files {
		if _, dup := v.Fields[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (v Values) field(name string) string {
	if v.Fields == nil {
		return ""
	}
	return v.Fields[name]
}

func (v Values) file(name string) *models.FileUpload {
	if v.Files == nil {
		return nil
	}
	return PrepareFile(v.Files[name])
}

// AssignmentForm is the create-assignment form.
type AssignmentForm struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description" validate:"required"`
	File        *models.FileUpload `json:"file" validate:"required,allowedmime"`
	DueDate     *time.Time         `json:"dueDate" validate:"required,notpast"`
}

// AssignmentEditForm is the edit-assignment form; the file is optional.
type AssignmentEditForm struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description" validate:"required"`
	File        *models.FileUpload `json:"file" validate:"omitempty,allowedmime"`
	DueDate     *time.Time         `json:"dueDate" validate:"required,notpast"`
}

// MaterialForm is the create-material form.
type MaterialForm struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description" validate:"required"`
	File        *models.FileUpload `json:"file" validate:"required,allowedmime"`
}

// MaterialEditForm is the edit-material form; the file is optional.
type MaterialEditForm struct {
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description" validate:"required"`
	File        *models.FileUpload `json:"file" validate:"omitempty,allowedmime"`
}

// SubmissionForm carries a student's submitted file.
type SubmissionForm struct {
	File *models.FileUpload `json:"file" validate:"required,allowedmime"`
}

// MessageForm is a chat message with an optional attachment. Only content and
// file may be present.
type MessageForm struct {
	Content string             `json:"content" validate:"required"`
	File    *models.FileUpload `json:"file" validate:"omitempty,allowedmime"`
}

// MeetLinkForm sets a classroom's Google Meet link.
type MeetLinkForm struct {
	MeetLink string `json:"meetlink" validate:"required,url,meetlink"`
}

var fieldMessages = map[string]string{
	"title.required":       "Title is required",
	"description.required": "Description is required",
	"file.required":        "File is required",
	"file.allowedmime":     FileTypeMessage,
	"dueDate.required":     "Date is required",
	"dueDate.notpast":      "Date cannot be in the past",
	"content.required":     "You need to input a message in the text box",
	"meetlink.required":    "Please enter a valid URL",
	"meetlink.url":         "Please enter a valid URL",
	"meetlink.meetlink":    "Please enter a valid Google Meet link",
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field)
}

type schema struct {
	// allowed is set for strict schemas; any other key is rejected.
	allowed []string
	build   func(values Values, loc *time.Location, errs map[string]string) interface{}
}

var schemas = map[SchemaName]schema{
	SchemaAssignment: {build: func(values Values, loc *time.Location, errs map[string]string) interface{} {
		return &AssignmentForm{
			Title:       values.field("title"),
			Description: values.field("description"),
			File:        values.file("file"),
			DueDate:     dueDateField(values, loc, errs),
		}
	}},
	SchemaAssignmentEdit: {build: func(values Values, loc *time.Location, errs map[string]string) interface{} {
		return &AssignmentEditForm{
			Title:       values.field("title"),
			Description: values.field("description"),
			File:        values.file("file"),
			DueDate:     dueDateField(values, loc, errs),
		}
	}},
	SchemaMaterial: {build: func(values Values, _ *time.Location, _ map[string]string) interface{} {
		return &MaterialForm{
			Title:       values.field("title"),
			Description: values.field("description"),
			File:        values.file("file"),
		}
	}},
	SchemaMaterialEdit: {build: func(values Values, _ *time.Location, _ map[string]string) interface{} {
		return &MaterialEditForm{
			Title:       values.field("title"),
			Description: values.field("description"),
			File:        values.file("file"),
		}
	}},
	SchemaSubmission: {build: func(values Values, _ *time.Location, _ map[string]string) interface{} {
		return &SubmissionForm{File: values.file("file")}
	}},
	SchemaMessage: {
		allowed: []string{"content", "file"},
		build: func(values Values, _ *time.Location, _ map[string]string) interface{} {
			return &MessageForm{Content: values.field("content"), File: values.file("file")}
		},
	},
	SchemaMeetLink: {build: func(values Values, _ *time.Location, _ map[string]string) interface{} {
		return &MeetLinkForm{MeetLink: values.field("meetlink")}
	}},
}

// Schemas lists the known schema names.
func Schemas() []SchemaName {
	names := make([]SchemaName, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// dueDateField parses the dueDate value. A missing value is left nil for the
// required rule; an unparseable one is reported directly.
func dueDateField(values Values, loc *time.Location, errs map[string]string) *time.Time {
	raw := values.field("dueDate")
	if raw == "" {
		return nil
	}
	due, err := ParseDueDate(raw, loc)
	if err != nil {
		errs["dueDate"] = "Invalid date"
		return nil
	}
	return &due
}

// ParseDueDate reads a due date from a form. A bare date is midnight of that
// day in loc; timestamps keep their own offset.
func ParseDueDate(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

func unknownKeys(values Values, allowed []string) []string {
	permitted := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		permitted[k] = struct{}{}
	}
	var extra []string
	for _, k := range values.Keys() {
		if _, ok := permitted[k]; !ok {
			extra = append(extra, k)
		}
	}
	return extra
}
