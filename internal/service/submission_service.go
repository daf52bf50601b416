package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

// NoSubmissionsNotice is shown when an assignment has no submissions yet.
const NoSubmissionsNotice = "No submissions found."

type submissionRemote interface {
	GetAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*models.Assignment, error)
	ListSubmissions(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) ([]models.SubmissionSummary, error)
	Submit(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, file *models.FileUpload) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, identity models.Identity, classroomID, submissionID int64) error
}

// SubmissionService lists, creates and deletes submissions.
type SubmissionService struct {
	remote   submissionRemote
	statuses submissionStatusResolver
	activity activityRecorder
	logger   *zap.Logger
}

// NewSubmissionService constructs the service.
func NewSubmissionService(remote submissionRemote, statuses submissionStatusResolver, activity activityRecorder, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{remote: remote, statuses: statuses, activity: activity, logger: logger}
}

// List returns an assignment's submissions with late flags. An empty list
// comes back with a notice rather than an error.
func (s *SubmissionService) List(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.SubmissionList, string, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, "", err
	}

	var (
		assignment *models.Assignment
		rows       []models.SubmissionSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignment, err = s.remote.GetAssignment(gctx, identity, classroomID, assignmentID)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.remote.ListSubmissions(gctx, identity, classroomID, assignmentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	list := &dto.SubmissionList{
		AssignmentID: assignmentID,
		ClassroomID:  classroomID,
		DueDate:      assignment.DueDate,
		Rows:         BuildSubmissionRows(assignment.DueDate, rows),
	}
	if len(list.Rows) == 0 {
		return list, NoSubmissionsNotice, nil
	}
	return list, "", nil
}

// BuildSubmissionRows flags each submission created strictly after due as late.
func BuildSubmissionRows(due models.Date, rows []models.SubmissionSummary) []dto.SubmissionRow {
	out := make([]dto.SubmissionRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.SubmissionRow{
			SubmissionID: row.SubmissionID,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			FullName:     strings.TrimSpace(row.FirstName + " " + row.LastName),
			CreatedAt:    row.CreatedAt,
			Late:         row.IsLateFor(due),
		})
	}
	return out
}

// Find returns the row of submissionID in an assignment's list.
func (s *SubmissionService) Find(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) (*models.SubmissionSummary, error) {
	rows, err := s.remote.ListSubmissions(ctx, identity, classroomID, assignmentID)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].SubmissionID == submissionID {
			return &rows[i], nil
		}
	}
	return nil, appErrors.ErrNoSubmission
}

// Submit uploads the caller's submission and refreshes their status.
func (s *SubmissionService) Submit(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, form *validation.SubmissionForm) (*models.Submission, error) {
	if err := requireStudent(identity); err != nil {
		return nil, err
	}
	submission, err := s.remote.Submit(ctx, identity, classroomID, assignmentID, form.File)
	if err != nil {
		return nil, err
	}
	s.statuses.Invalidate(ctx, assignmentID, identity.UserID, classroomID)
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionSubmit,
		Resource:    "submission",
		ResourceID:  int64Ptr(submission.ID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"assignmentId": assignmentID, "contentType": form.File.ContentType},
	})
	return submission, nil
}

// Delete removes the caller's own submission. The id must match the one in
// the caller's resolved status.
func (s *SubmissionService) Delete(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) error {
	if err := requireStudent(identity); err != nil {
		return err
	}
	status, err := s.statuses.Resolve(ctx, identity, assignmentID, classroomID)
	if err != nil {
		return err
	}
	if !status.HasSubmission() || *status.SubmissionID != submissionID {
		return appErrors.ErrNoSubmission
	}
	if err := s.remote.DeleteSubmission(ctx, identity, classroomID, submissionID); err != nil {
		return err
	}
	s.statuses.Invalidate(ctx, assignmentID, identity.UserID, classroomID)
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionDeleteSubmission,
		Resource:    "submission",
		ResourceID:  int64Ptr(submissionID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"assignmentId": assignmentID},
	})
	return nil
}
