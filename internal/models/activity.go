package models

import (
	"encoding/json"
	"time"
)

// ActivityAction constants name recorded user intents.
const (
	ActivityActionDownloadAssignment = "DOWNLOAD_ASSIGNMENT"
	ActivityActionDownloadSubmission = "DOWNLOAD_SUBMISSION"
	ActivityActionSubmit             = "SUBMISSION_CREATE"
	ActivityActionDeleteSubmission   = "SUBMISSION_DELETE"
	ActivityActionAssignmentCreate   = "ASSIGNMENT_CREATE"
	ActivityActionAssignmentUpdate   = "ASSIGNMENT_UPDATE"
	ActivityActionAssignmentDelete   = "ASSIGNMENT_DELETE"
	ActivityActionEnroll             = "ENROLLMENT_CREATE"
	ActivityActionMaterialCreate     = "MATERIAL_CREATE"
	ActivityActionMaterialUpdate     = "MATERIAL_UPDATE"
	ActivityActionMessageSend        = "MESSAGE_SEND"
	ActivityActionMeetLinkUpdate     = "MEETLINK_UPDATE"
	ActivityActionRosterExport       = "ROSTER_EXPORT"
)

// ActivityLog is an append-only record of something a user did through the gateway.
type ActivityLog struct {
	ID          string          `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"userId"`
	UserType    UserType        `db:"user_type" json:"userType"`
	Action      string          `db:"action" json:"action"`
	Resource    string          `db:"resource" json:"resource"`
	ResourceID  *int64          `db:"resource_id" json:"resourceId,omitempty"`
	ClassroomID int64           `db:"classroom_id" json:"classroomId"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// ActivityFilter narrows activity log listings.
type ActivityFilter struct {
	UserID      *int64
	ClassroomID *int64
	Action      string
	Limit       int
}
