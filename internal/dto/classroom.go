package dto

import (
	"time"

	"github.com/noah-isme/classroom-gateway/internal/models"
)

// Card action keys rendered by the browser.
const (
	ActionEdit               = "edit"
	ActionDelete             = "delete"
	ActionSubmissions        = "submissions"
	ActionDownload           = "download"
	ActionDownloadSubmission = "download_submission"
	ActionDeleteSubmission   = "delete_submission"
	ActionSubmit             = "submit"
)

// Card submission states shown to students.
const (
	CardStatusSubmitted    = "submitted"
	CardStatusNotSubmitted = "not_submitted"
	CardStatusUnknown      = "unknown"
)

// CardAction is one affordance of an assignment card.
type CardAction struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// AssignmentCard is the rendered view of an assignment for the caller's role.
type AssignmentCard struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	DueDate      models.Date  `json:"dueDate"`
	DueDateLabel string       `json:"dueDateLabel"`
	ClassroomID  int64        `json:"classroomId"`
	Status       string       `json:"status,omitempty"`
	StatusLabel  string       `json:"statusLabel,omitempty"`
	SubmissionID *int64       `json:"submissionId,omitempty"`
	Actions      []CardAction `json:"actions"`
	Notice       string       `json:"notice,omitempty"`
}

// HasAction reports whether the card offers key.
func (c AssignmentCard) HasAction(key string) bool {
	for _, a := range c.Actions {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SubmissionRow is one submission in a teacher's list.
type SubmissionRow struct {
	SubmissionID int64     `json:"submissionId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
	Late         bool      `json:"late"`
}

// SubmissionList is the submissions of one assignment.
type SubmissionList struct {
	AssignmentID int64           `json:"assignmentId"`
	ClassroomID  int64           `json:"classroomId"`
	DueDate      models.Date     `json:"dueDate"`
	Rows         []SubmissionRow `json:"rows"`
}

// StudentOption is an enrollment search option.
type StudentOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Email string `json:"email"`
}

// EnrollRequest enrolls a student.
type EnrollRequest struct {
	StudentID int64 `json:"studentId" validate:"required,gt=0"`
}

// DownloadLink is returned for the browser to open.
type DownloadLink struct {
	URL    string `json:"url"`
	Target string `json:"target"`
}

// DownloadStatus reports a user's download slot.
type DownloadStatus struct {
	Current models.DownloadState `json:"current"`
	Last    models.DownloadState `json:"last"`
}

// ExportRequest asks for a submissions roster export.
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportLink points at a generated export.
type ExportLink struct {
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expiresAt"`
}
