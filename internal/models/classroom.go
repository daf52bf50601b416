package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date on the wire. The classroom API sends either a
// bare date ("2026-10-20", read as UTC midnight) or a full timestamp.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate parses any layout accepted on the wire.
func ParseDate(raw string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Assignment is a task issued by a teacher to a classroom.
type Assignment struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     Date   `json:"dueDate"`
	ClassroomID int64  `json:"classroomId"`
}

// SubmissionStatus is the derived view of whether a student has submitted.
// It is never persisted by the gateway.
type SubmissionStatus struct {
	Submitted    bool   `json:"submitted"`
	SubmissionID *int64 `json:"submissionId,omitempty"`
}

// HasSubmission reports whether the status carries a usable submission id.
func (s *SubmissionStatus) HasSubmission() bool {
	return s != nil && s.Submitted && s.SubmissionID != nil && *s.SubmissionID > 0
}

// Submission is a student's uploaded response to an assignment.
type Submission struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignmentId"`
	StudentID    int64     `json:"studentId"`
	CreatedAt    time.Time `json:"createdAt"`
	FileKey      string    `json:"fileKey,omitempty"`
}

// UnmarshalJSON accepts createdAt in any layout Date accepts.
func (s *Submission) UnmarshalJSON(b []byte) error {
	type plain Submission
	aux := struct {
		*plain
		CreatedAt Date `json:"createdAt"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.CreatedAt = aux.CreatedAt.Time
	return nil
}

// SubmissionSummary is one row of an assignment's submissions list.
type SubmissionSummary struct {
	SubmissionID int64     `json:"submissionId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts createdAt in any layout Date accepts.
func (s *SubmissionSummary) UnmarshalJSON(b []byte) error {
	type plain SubmissionSummary
	aux := struct {
		*plain
		CreatedAt Date `json:"createdAt"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.CreatedAt = aux.CreatedAt.Time
	return nil
}

// IsLateFor reports whether the submission arrived after the due date.
func (s SubmissionSummary) IsLateFor(due Date) bool {
	return !due.IsZero() && s.CreatedAt.After(due.Time)
}

// StudentUser holds the profile fields of a student account.
type StudentUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UnenrolledStudent is a student not yet enrolled in a classroom.
type UnenrolledStudent struct {
	ID   int64       `json:"id"`
	User StudentUser `json:"user"`
}

// Material is a teacher-provided learning resource.
type Material struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ClassroomID int64  `json:"classroomId"`
}

// Message is a classroom chat message, optionally with an attachment.
type Message struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	ClassroomID int64     `json:"classroomId"`
	SenderID    int64     `json:"senderId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UnmarshalJSON accepts createdAt in any layout Date accepts.
func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	aux := struct {
		*plain
		CreatedAt Date `json:"createdAt"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	m.CreatedAt = aux.CreatedAt.Time
	return nil
}

// Enrollment associates a student with a classroom.
type Enrollment struct {
	StudentID   int64 `json:"studentId"`
	ClassroomID int64 `json:"classroomId"`
}

// FileUpload is a validated file travelling from a form to the classroom API.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// AssignmentInput is the payload for creating or editing an assignment.
// File is nil when an edit keeps the existing attachment.
type AssignmentInput struct {
	Title       string
	Description string
	DueDate     time.Time
	File        *FileUpload
}

// MaterialInput is the payload for creating or editing a material.
type MaterialInput struct {
	Title       string
	Description string
	File        *FileUpload
}

// MessageInput is the payload for sending a classroom message.
type MessageInput struct {
	Content string
	File    *FileUpload
}
