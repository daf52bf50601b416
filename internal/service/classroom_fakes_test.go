package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

var (
	teacherIdentity = models.Identity{UserID: 1, UserType: models.UserTypeTeacher, Token: "teacher-token"}
	studentIdentity = models.Identity{UserID: 7, UserType: models.UserTypeStudent, Token: "student-token"}
)

// fakeClassroomRemote stands in for the remote classroom API. Gates, when
// set, block the matching call until closed or the context ends.
type fakeClassroomRemote struct {
	mu sync.Mutex

	assignments []models.Assignment
	assignment  *models.Assignment
	summaries   []models.SubmissionSummary
	listErr     error

	status      *models.SubmissionStatus
	statusErr   error
	statusGate  chan struct{}
	statusCalls int32

	downloadURL      string
	downloadErr      error
	downloadGate     chan struct{}
	downloadCalls    int32
	downloadRequests []models.DownloadRequest

	submitted          *models.FileUpload
	deletedSubmissions []int64
	createdAssignment  *models.AssignmentInput
	deletedAssignments []int64

	unenrolled []models.UnenrolledStudent
	enrolled   []int64
	meetLink   string
}

func (f *fakeClassroomRemote) SubmissionStatus(ctx context.Context, identity models.Identity, classroomID, assignmentID, userID int64) (*models.SubmissionStatus, error) {
	atomic.AddInt32(&f.statusCalls, 1)
	if f.statusGate != nil {
		select {
		case <-f.statusGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.status == nil {
		return &models.SubmissionStatus{}, nil
	}
	copied := *f.status
	return &copied, nil
}

func (f *fakeClassroomRemote) setStatus(status *models.SubmissionStatus) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func (f *fakeClassroomRemote) DownloadURL(ctx context.Context, identity models.Identity, req models.DownloadRequest) (string, error) {
	atomic.AddInt32(&f.downloadCalls, 1)
	f.mu.Lock()
	f.downloadRequests = append(f.downloadRequests, req)
	gate := f.downloadGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	return f.downloadURL, nil
}

func (f *fakeClassroomRemote) ListSubmissions(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) ([]models.SubmissionSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.summaries, nil
}

func (f *fakeClassroomRemote) Submit(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, file *models.FileUpload) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = file
	return &models.Submission{ID: 99, AssignmentID: assignmentID, StudentID: identity.UserID}, nil
}

func (f *fakeClassroomRemote) DeleteSubmission(ctx context.Context, identity models.Identity, classroomID, submissionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedSubmissions = append(f.deletedSubmissions, submissionID)
	return nil
}

func (f *fakeClassroomRemote) ListAssignments(ctx context.Context, identity models.Identity, classroomID int64) ([]models.Assignment, error) {
	return f.assignments, nil
}

func (f *fakeClassroomRemote) GetAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*models.Assignment, error) {
	if f.assignment != nil {
		return f.assignment, nil
	}
	for i := range f.assignments {
		if f.assignments[i].ID == assignmentID {
			return &f.assignments[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "Assignment not found")
}

func (f *fakeClassroomRemote) CreateAssignment(ctx context.Context, identity models.Identity, classroomID int64, input models.AssignmentInput) (*models.Assignment, error) {
	f.createdAssignment = &input
	return &models.Assignment{ID: 11, Title: input.Title, Description: input.Description, ClassroomID: classroomID}, nil
}

func (f *fakeClassroomRemote) UpdateAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, input models.AssignmentInput) (*models.Assignment, error) {
	return &models.Assignment{ID: assignmentID, Title: input.Title, Description: input.Description, ClassroomID: classroomID}, nil
}

func (f *fakeClassroomRemote) DeleteAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error {
	f.deletedAssignments = append(f.deletedAssignments, assignmentID)
	return nil
}

func (f *fakeClassroomRemote) ListUnenrolled(ctx context.Context, identity models.Identity, classroomID int64) ([]models.UnenrolledStudent, error) {
	return f.unenrolled, nil
}

func (f *fakeClassroomRemote) Enroll(ctx context.Context, identity models.Identity, classroomID, studentID int64) error {
	f.enrolled = append(f.enrolled, studentID)
	return nil
}

func (f *fakeClassroomRemote) CreateMaterial(ctx context.Context, identity models.Identity, classroomID int64, input models.MaterialInput) (*models.Material, error) {
	return &models.Material{ID: 5, Title: input.Title, Description: input.Description, ClassroomID: classroomID}, nil
}

func (f *fakeClassroomRemote) UpdateMaterial(ctx context.Context, identity models.Identity, classroomID, materialID int64, input models.MaterialInput) (*models.Material, error) {
	return &models.Material{ID: materialID, Title: input.Title, Description: input.Description, ClassroomID: classroomID}, nil
}

func (f *fakeClassroomRemote) SendMessage(ctx context.Context, identity models.Identity, classroomID int64, input models.MessageInput) (*models.Message, error) {
	return &models.Message{ID: 3, Content: input.Content, ClassroomID: classroomID, SenderID: identity.UserID}, nil
}

func (f *fakeClassroomRemote) SetMeetLink(ctx context.Context, identity models.Identity, classroomID int64, link string) error {
	f.meetLink = link
	return nil
}

// fakeStatusResolver serves fixed statuses per assignment.
type fakeStatusResolver struct {
	mu                     sync.Mutex
	statuses               map[int64]*models.SubmissionStatus
	errs                   map[int64]error
	resolveCalls           int
	invalidated            []string
	invalidatedAssignments []int64
}

func (f *fakeStatusResolver) Resolve(ctx context.Context, identity models.Identity, assignmentID, classroomID int64) (*models.SubmissionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolveCalls++
	if err := f.errs[assignmentID]; err != nil {
		return nil, err
	}
	if status, ok := f.statuses[assignmentID]; ok {
		return status, nil
	}
	return &models.SubmissionStatus{}, nil
}

func (f *fakeStatusResolver) Invalidate(ctx context.Context, assignmentID, userID, classroomID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, StatusKey(assignmentID, userID, classroomID))
}

func (f *fakeStatusResolver) InvalidateAssignment(ctx context.Context, assignmentID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidatedAssignments = append(f.invalidatedAssignments, assignmentID)
}

// recordingActivity keeps every recorded entry.
type recordingActivity struct {
	mu      sync.Mutex
	entries []ActivityEntry
}

func (r *recordingActivity) Record(identity models.Identity, entry ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingActivity) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func submissionID(v int64) *int64 {
	return &v
}
