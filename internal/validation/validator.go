package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

var meetLinkPattern = regexp.MustCompile(`^https://meet\.google\.com/[a-z0-9]{3,4}-[a-z0-9]{3,4}-[a-z0-9]{3,4}$`)

// Options tunes the validator.
type Options struct {
	// Location decides where "today" starts for due dates.
	Location    *time.Location
	Now         func() time.Time
	MaxFileSize int64
}

// Validator checks classroom forms against their schemas.
type Validator struct {
	validate    *validator.Validate
	loc         *time.Location
	now         func() time.Time
	maxFileSize int64
}

// New builds a Validator with the custom form rules registered.
func New(opts Options) *Validator {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	v := &Validator{
		validate:    validator.New(),
		loc:         opts.Location,
		now:         opts.Now,
		maxFileSize: opts.MaxFileSize,
	}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// uploads are validated through their resolved content type
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if upload, ok := field.Interface().(models.FileUpload); ok {
			return upload.ContentType
		}
		return nil
	}, models.FileUpload{})
	_ = v.validate.RegisterValidation("allowedmime", func(fl validator.FieldLevel) bool {
		return IsAllowedMIME(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		due, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !due.Before(v.StartOfToday())
	})
	_ = v.validate.RegisterValidation("meetlink", func(fl validator.FieldLevel) bool {
		return meetLinkPattern.MatchString(fl.Field().String())
	})
	return v
}

// Engine exposes the underlying validator for request DTOs.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Location returns the location due dates are evaluated in.
func (v *Validator) Location() *time.Location {
	return v.loc
}

// StartOfToday returns midnight of the current day in the configured location.
func (v *Validator) StartOfToday() time.Time {
	now := v.now().In(v.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.loc)
}

// Check decodes values into the named schema's form and validates it. The
// returned map holds one message per failing field and is empty when the
// form is valid.
func (v *Validator) Check(name SchemaName, values Values) (interface{}, map[string]string, error) {
	sc, ok := schemas[name]
	if !ok {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown form schema %q", name))
	}
	fields := make(map[string]string)
	if sc.allowed != nil {
		for _, key := range unknownKeys(values, sc.allowed) {
			fields[key] = fmt.Sprintf("Unrecognized key(s) in object: '%s'", key)
		}
	}
	form := sc.build(values, v.loc, fields)
	if err := v.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "form validation failed")
		}
		for _, fe := range verrs {
			if _, exists := fields[fe.Field()]; exists {
				continue
			}
			fields[fe.Field()] = messageFor(fe.Field(), fe.Tag())
		}
	}
	if _, exists := fields["file"]; !exists {
		if upload := values.file("file"); upload != nil && v.maxFileSize > 0 && upload.Size > v.maxFileSize {
			fields["file"] = fmt.Sprintf("File must not exceed %d MB", v.maxFileSize/(1024*1024))
		}
	}
	return form, fields, nil
}

// Struct validates a request DTO and converts failures to a validation error.
func (v *Validator) Struct(req interface{}) error {
	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = messageFor(fe.Field(), fe.Tag())
		}
		return appErrors.Validation("invalid payload", fields)
	}
	return nil
}

// Assignment validates a create-assignment form.
func (v *Validator) Assignment(values Values) (*AssignmentForm, error) {
	form, err := v.decode(SchemaAssignment, values)
	if err != nil {
		return nil, err
	}
	return form.(*AssignmentForm), nil
}

// AssignmentEdit validates an edit-assignment form.
func (v *Validator) AssignmentEdit(values Values) (*AssignmentEditForm, error) {
	form, err := v.decode(SchemaAssignmentEdit, values)
	if err != nil {
		return nil, err
	}
	return form.(*AssignmentEditForm), nil
}

// Material validates a create-material form.
func (v *Validator) Material(values Values) (*MaterialForm, error) {
	form, err := v.decode(SchemaMaterial, values)
	if err != nil {
		return nil, err
	}
	return form.(*MaterialForm), nil
}

// MaterialEdit validates an edit-material form.
func (v *Validator) MaterialEdit(values Values) (*MaterialEditForm, error) {
	form, err := v.decode(SchemaMaterialEdit, values)
	if err != nil {
		return nil, err
	}
	return form.(*MaterialEditForm), nil
}

// Submission validates a submission upload.
func (v *Validator) Submission(values Values) (*SubmissionForm, error) {
	form, err := v.decode(SchemaSubmission, values)
	if err != nil {
		return nil, err
	}
	return form.(*SubmissionForm), nil
}

// Message validates a chat message form.
func (v *Validator) Message(values Values) (*MessageForm, error) {
	form, err := v.decode(SchemaMessage, values)
	if err != nil {
		return nil, err
	}
	return form.(*MessageForm), nil
}

// MeetLink validates a meet link form.
func (v *Validator) MeetLink(values Values) (*MeetLinkForm, error) {
	form, err := v.decode(SchemaMeetLink, values)
	if err != nil {
		return nil, err
	}
	return form.(*MeetLinkForm), nil
}

func (v *Validator) decode(name SchemaName, values Values) (interface{}, error) {
	form, fields, err := v.Check(name, values)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, appErrors.Validation("invalid form", fields)
	}
	return form, nil
}
