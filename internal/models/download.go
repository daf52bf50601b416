package models

import (
	"fmt"
	"time"
)

// DownloadKind identifies what a download request targets.
type DownloadKind string

const (
	DownloadKindAssignment DownloadKind = "assignment"
	DownloadKindSubmission DownloadKind = "submission"
)

// DownloadRequest asks for a short-lived retrieval URL for a file.
type DownloadRequest struct {
	Kind        DownloadKind `json:"kind"`
	ClassroomID int64        `json:"classroomId"`
	TargetID    int64        `json:"targetId"`
}

// Validate checks the request carries positive keys and a known kind.
func (r DownloadRequest) Validate() error {
	if r.Kind != DownloadKindAssignment && r.Kind != DownloadKindSubmission {
		return fmt.Errorf("unknown download kind %q", r.Kind)
	}
	if r.ClassroomID <= 0 {
		return fmt.Errorf("classroom id must be positive")
	}
	if r.TargetID <= 0 {
		return fmt.Errorf("%s id must be positive", r.Kind)
	}
	return nil
}

// NewAssignmentDownload builds a request for an assignment's attachment.
func NewAssignmentDownload(classroomID, assignmentID int64) DownloadRequest {
	return DownloadRequest{Kind: DownloadKindAssignment, ClassroomID: classroomID, TargetID: assignmentID}
}

// NewSubmissionDownload builds a request for a student's own submission. The
// submission id is taken from a resolved status; there is no request without one.
func NewSubmissionDownload(classroomID int64, status *SubmissionStatus) (DownloadRequest, error) {
	if !status.HasSubmission() {
		return DownloadRequest{}, fmt.Errorf("submission id not known")
	}
	return DownloadRequest{Kind: DownloadKindSubmission, ClassroomID: classroomID, TargetID: *status.SubmissionID}, nil
}

// NewListedSubmissionDownload builds a request for a submission picked from an
// assignment's submissions list.
func NewListedSubmissionDownload(classroomID int64, row SubmissionSummary) (DownloadRequest, error) {
	if row.SubmissionID <= 0 {
		return DownloadRequest{}, fmt.Errorf("submission id not known")
	}
	return DownloadRequest{Kind: DownloadKindSubmission, ClassroomID: classroomID, TargetID: row.SubmissionID}, nil
}

// DownloadPhase is the coordinator slot state.
type DownloadPhase string

const (
	DownloadPhaseIdle     DownloadPhase = "idle"
	DownloadPhasePending  DownloadPhase = "pending"
	DownloadPhaseResolved DownloadPhase = "resolved"
	DownloadPhaseFailed   DownloadPhase = "failed"
)

// DownloadState is a snapshot of a coordinator slot.
type DownloadState struct {
	Phase     DownloadPhase    `json:"phase"`
	Request   *DownloadRequest `json:"request,omitempty"`
	URL       string           `json:"url,omitempty"`
	Error     string           `json:"error,omitempty"`
	StartedAt *time.Time       `json:"startedAt,omitempty"`
}
