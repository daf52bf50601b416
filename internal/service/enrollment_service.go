package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type enrollmentRemote interface {
	ListUnenrolled(ctx context.Context, identity models.Identity, classroomID int64) ([]models.UnenrolledStudent, error)
	Enroll(ctx context.Context, identity models.Identity, classroomID, studentID int64) error
}

type requestValidator interface {
	Struct(req interface{}) error
}

// EnrollmentService backs the student search used to enroll students.
type EnrollmentService struct {
	remote    enrollmentRemote
	validator requestValidator
	activity  activityRecorder
	logger    *zap.Logger
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(remote enrollmentRemote, validator requestValidator, activity activityRecorder, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{remote: remote, validator: validator, activity: activity, logger: logger}
}

// Options returns unenrolled students as search options filtered by query.
func (s *EnrollmentService) Options(ctx context.Context, identity models.Identity, classroomID int64, query string) ([]dto.StudentOption, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	students, err := s.remote.ListUnenrolled(ctx, identity, classroomID)
	if err != nil {
		return nil, err
	}
	return FilterStudentOptions(BuildStudentOptions(students), query), nil
}

// BuildStudentOptions maps students to options labelled "First Last".
func BuildStudentOptions(students []models.UnenrolledStudent) []dto.StudentOption {
	options := make([]dto.StudentOption, 0, len(students))
	for _, st := range students {
		options = append(options, dto.StudentOption{
			Label: st.User.FirstName + " " + st.User.LastName,
			Value: strconv.FormatInt(st.ID, 10),
			Email: st.User.Email,
		})
	}
	return options
}

// FilterStudentOptions keeps options whose label or email contains the
// trimmed query, ignoring case. An empty query keeps everything.
func FilterStudentOptions(options []dto.StudentOption, query string) []dto.StudentOption {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return options
	}
	filtered := make([]dto.StudentOption, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), q) || strings.Contains(strings.ToLower(opt.Email), q) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// Enroll enrolls the selected student.
func (s *EnrollmentService) Enroll(ctx context.Context, identity models.Identity, classroomID int64, req dto.EnrollRequest) error {
	if err := requireTeacher(identity); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation("Please select a student", map[string]string{"studentId": "Please select a student"})
	}
	if err := s.remote.Enroll(ctx, identity, classroomID, req.StudentID); err != nil {
		s.logger.Warn("enrollment failed", zap.Int64("classroom_id", classroomID), zap.Int64("student_id", req.StudentID), zap.Error(err))
		return err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionEnroll,
		Resource:    "enrollment",
		ResourceID:  int64Ptr(req.StudentID),
		ClassroomID: classroomID,
	})
	return nil
}
