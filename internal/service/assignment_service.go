package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

const (
	dueDateLayout = "January 2, 2006"
	// StatusUnavailableNotice is attached to a card whose submission status could not be loaded.
	StatusUnavailableNotice = "Could not load your submission status."
	cardStatusConcurrency   = 4
)

type assignmentRemote interface {
	ListAssignments(ctx context.Context, identity models.Identity, classroomID int64) ([]models.Assignment, error)
	GetAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*models.Assignment, error)
	CreateAssignment(ctx context.Context, identity models.Identity, classroomID int64, input models.AssignmentInput) (*models.Assignment, error)
	UpdateAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, input models.AssignmentInput) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error
}

type submissionStatusResolver interface {
	Resolve(ctx context.Context, identity models.Identity, assignmentID, classroomID int64) (*models.SubmissionStatus, error)
	Invalidate(ctx context.Context, assignmentID, userID, classroomID int64)
	InvalidateAssignment(ctx context.Context, assignmentID int64)
}

// AssignmentService composes assignment cards and dispatches assignment mutations.
type AssignmentService struct {
	remote   assignmentRemote
	statuses submissionStatusResolver
	activity activityRecorder
	logger   *zap.Logger
}

// NewAssignmentService constructs the service.
func NewAssignmentService(remote assignmentRemote, statuses submissionStatusResolver, activity activityRecorder, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{remote: remote, statuses: statuses, activity: activity, logger: logger}
}

// Card renders one assignment for the caller.
func (s *AssignmentService) Card(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.AssignmentCard, error) {
	assignment, err := s.remote.GetAssignment(ctx, identity, classroomID, assignmentID)
	if err != nil {
		return nil, err
	}
	card := s.cardFor(ctx, identity, *assignment, classroomID)
	return &card, nil
}

// Cards renders every assignment of a classroom. Student statuses are
// resolved concurrently; a failed status degrades its card only.
func (s *AssignmentService) Cards(ctx context.Context, identity models.Identity, classroomID int64) ([]dto.AssignmentCard, error) {
	assignments, err := s.remote.ListAssignments(ctx, identity, classroomID)
	if err != nil {
		return nil, err
	}
	cards := make([]dto.AssignmentCard, len(assignments))
	var g errgroup.Group
	g.SetLimit(cardStatusConcurrency)
	for i := range assignments {
		i := i
		g.Go(func() error {
			cards[i] = s.cardFor(ctx, identity, assignments[i], classroomID)
			return nil
		})
	}
	_ = g.Wait()
	return cards, nil
}

func (s *AssignmentService) cardFor(ctx context.Context, identity models.Identity, assignment models.Assignment, classroomID int64) dto.AssignmentCard {
	if assignment.ClassroomID == 0 {
		assignment.ClassroomID = classroomID
	}
	if !identity.IsStudent() {
		return BuildAssignmentCard(assignment, identity, nil, nil)
	}
	status, err := s.statuses.Resolve(ctx, identity, assignment.ID, classroomID)
	return BuildAssignmentCard(assignment, identity, status, err)
}

// BuildAssignmentCard derives a card's affordances from the caller's role and,
// for students, their submission status. statusErr marks a status that could
// not be fetched; the card then only offers the assignment download.
func BuildAssignmentCard(assignment models.Assignment, identity models.Identity, status *models.SubmissionStatus, statusErr error) dto.AssignmentCard {
	card := dto.AssignmentCard{
		ID:          assignment.ID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     assignment.DueDate,
		ClassroomID: assignment.ClassroomID,
	}
	if !assignment.DueDate.IsZero() {
		card.DueDateLabel = assignment.DueDate.Format(dueDateLayout)
	}
	download := dto.CardAction{Key: dto.ActionDownload, Label: "Download"}

	switch {
	case identity.IsTeacher():
		card.Actions = []dto.CardAction{
			{Key: dto.ActionEdit, Label: "Edit"},
			{Key: dto.ActionDelete, Label: "Delete"},
			download,
			{Key: dto.ActionSubmissions, Label: "Submissions"},
		}
	case statusErr != nil || status == nil:
		card.Status = dto.CardStatusUnknown
		card.Notice = StatusUnavailableNotice
		card.Actions = []dto.CardAction{download}
	case status.HasSubmission():
		id := *status.SubmissionID
		card.Status = dto.CardStatusSubmitted
		card.StatusLabel = "Submitted"
		card.SubmissionID = &id
		card.Actions = []dto.CardAction{
			download,
			{Key: dto.ActionDownloadSubmission, Label: "Download Submission"},
			{Key: dto.ActionDeleteSubmission, Label: "Delete Submission"},
		}
	case status.Submitted:
		// submitted but the id is not known yet: nothing to download or delete
		card.Status = dto.CardStatusSubmitted
		card.StatusLabel = "Submitted"
		card.Actions = []dto.CardAction{download}
	default:
		card.Status = dto.CardStatusNotSubmitted
		card.Actions = []dto.CardAction{download, {Key: dto.ActionSubmit, Label: "Submit"}}
	}
	return card
}

func requireTeacher(identity models.Identity) error {
	if !identity.IsTeacher() {
		return appErrors.Clone(appErrors.ErrForbidden, "only teachers can perform this action")
	}
	return nil
}

func requireStudent(identity models.Identity) error {
	if !identity.IsStudent() {
		return appErrors.Clone(appErrors.ErrForbidden, "only students can perform this action")
	}
	return nil
}

// Create creates an assignment from a validated form.
func (s *AssignmentService) Create(ctx context.Context, identity models.Identity, classroomID int64, form *validation.AssignmentForm) (*models.Assignment, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	assignment, err := s.remote.CreateAssignment(ctx, identity, classroomID, models.AssignmentInput{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     *form.DueDate,
		File:        form.File,
	})
	if err != nil {
		return nil, err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionAssignmentCreate,
		Resource:    "assignment",
		ResourceID:  int64Ptr(assignment.ID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"title": assignment.Title},
	})
	return assignment, nil
}

// Update edits an assignment from a validated form.
func (s *AssignmentService) Update(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, form *validation.AssignmentEditForm) (*models.Assignment, error) {
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	assignment, err := s.remote.UpdateAssignment(ctx, identity, classroomID, assignmentID, models.AssignmentInput{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     *form.DueDate,
		File:        form.File,
	})
	if err != nil {
		return nil, err
	}
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionAssignmentUpdate,
		Resource:    "assignment",
		ResourceID:  int64Ptr(assignmentID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"fileReplaced": form.File != nil},
	})
	return assignment, nil
}

// Delete removes an assignment and every cached status for it.
func (s *AssignmentService) Delete(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error {
	if err := requireTeacher(identity); err != nil {
		return err
	}
	if err := s.remote.DeleteAssignment(ctx, identity, classroomID, assignmentID); err != nil {
		return err
	}
	s.statuses.InvalidateAssignment(ctx, assignmentID)
	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionAssignmentDelete,
		Resource:    "assignment",
		ResourceID:  int64Ptr(assignmentID),
		ClassroomID: classroomID,
	})
	return nil
}
