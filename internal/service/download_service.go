package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type submissionFinder interface {
	Find(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) (*models.SubmissionSummary, error)
}

// DownloadService builds download requests from known identifiers and runs
// them through the caller's coordinator.
type DownloadService struct {
	registry    *DownloadRegistry
	statuses    submissionStatusResolver
	submissions submissionFinder
	activity    activityRecorder
	logger      *zap.Logger
}

// NewDownloadService constructs the service.
func NewDownloadService(registry *DownloadRegistry, statuses submissionStatusResolver, submissions submissionFinder, activity activityRecorder, logger *zap.Logger) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadService{registry: registry, statuses: statuses, submissions: submissions, activity: activity, logger: logger}
}

// AssignmentFile returns a URL for an assignment's attachment.
func (s *DownloadService) AssignmentFile(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error) {
	req := models.NewAssignmentDownload(classroomID, assignmentID)
	return s.run(ctx, identity, req, models.ActivityActionDownloadAssignment)
}

// OwnSubmission returns a URL for the caller's own submission. Without a
// known submission id no request is issued.
func (s *DownloadService) OwnSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (string, error) {
	if err := requireStudent(identity); err != nil {
		return "", err
	}
	status, err := s.statuses.Resolve(ctx, identity, assignmentID, classroomID)
	if err != nil {
		return "", err
	}
	req, err := models.NewSubmissionDownload(classroomID, status)
	if err != nil {
		return "", appErrors.ErrNoSubmission
	}
	return s.run(ctx, identity, req, models.ActivityActionDownloadSubmission)
}

// ListedSubmission returns a URL for a submission picked from an
// assignment's submissions list.
func (s *DownloadService) ListedSubmission(ctx context.Context, identity models.Identity, classroomID, assignmentID, submissionID int64) (string, error) {
	if err := requireTeacher(identity); err != nil {
		return "", err
	}
	if submissionID <= 0 {
		return "", appErrors.ErrNoSubmission
	}
	row, err := s.submissions.Find(ctx, identity, classroomID, assignmentID, submissionID)
	if err != nil {
		return "", err
	}
	req, err := models.NewListedSubmissionDownload(classroomID, *row)
	if err != nil {
		return "", appErrors.ErrNoSubmission
	}
	return s.run(ctx, identity, req, models.ActivityActionDownloadSubmission)
}

// Cancel abandons the caller's pending download.
func (s *DownloadService) Cancel(identity models.Identity) bool {
	return s.registry.Cancel(identity.UserID)
}

// State reports the caller's download slot.
func (s *DownloadService) State(identity models.Identity) (models.DownloadState, models.DownloadState) {
	return s.registry.For(identity.UserID).State()
}

func (s *DownloadService) run(ctx context.Context, identity models.Identity, req models.DownloadRequest, action string) (string, error) {
	url, err := s.registry.For(identity.UserID).Request(ctx, identity, req)
	if err != nil {
		return "", err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      action,
		Resource:    string(req.Kind),
		ResourceID:  int64Ptr(req.TargetID),
		ClassroomID: req.ClassroomID,
	})
	return url, nil
}
