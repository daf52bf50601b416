package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type urlResponse struct {
	URL string `json:"url"`
}

func classroomPath(classroomID int64, format string, args ...interface{}) string {
	return fmt.Sprintf("/classrooms/%d", classroomID) + fmt.Sprintf(format, args...)
}

func jsonBody(v interface{}) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request")
	}
	return buf, nil
}

// SubmissionStatus asks whether userID has submitted the assignment.
func (c *ClassroomClient) SubmissionStatus(ctx context.Context, identity models.Identity, classroomID, assignmentID, userID int64) (*models.SubmissionStatus, error) {
	query := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var status models.SubmissionStatus
	err := c.do(ctx, identity, call{
		operation: "submission_status",
		method:    http.MethodGet,
		path:      classroomPath(classroomID, "/assignments/%d/submissions/status?%s", assignmentID, query.Encode()),
	}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// DownloadURL requests a fresh retrieval URL for the file named by req.
func (c *ClassroomClient) DownloadURL(ctx context.Context, identity models.Identity, req models.DownloadRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	var path string
	switch req.Kind {
	case models.DownloadKindAssignment:
		path = classroomPath(req.ClassroomID, "/assignments/%d/download", req.TargetID)
	case models.DownloadKindSubmission:
		path = classroomPath(req.ClassroomID, "/submissions/%d/download", req.TargetID)
	}
	var out urlResponse
	if err := c.do(ctx, identity, call{operation: "download_" + string(req.Kind), method: http.MethodGet, path: path}, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", appErrors.Wrap(fmt.Errorf("empty url"), appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, "classroom service returned no download url")
	}
	return out.URL, nil
}

// ListSubmissions returns every submission of an assignment.
func (c *ClassroomClient) ListSubmissions(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) ([]models.SubmissionSummary, error) {
	var rows []models.SubmissionSummary
	err := c.do(ctx, identity, call{
		operation: "list_submissions",
		method:    http.MethodGet,
		path:      classroomPath(classroomID, "/assignments/%d/submissions", assignmentID),
	}, &rows)
	return rows, err
}

// Submit uploads a student's file for an assignment.
func (c *ClassroomClient) Submit(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, file *models.FileUpload) (*models.Submission, error) {
	body, contentType, err := multipartBody(nil, file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode submission")
	}
	var submission models.Submission
	err = c.do(ctx, identity, call{
		operation:   "submit",
		method:      http.MethodPost,
		path:        classroomPath(classroomID, "/assignments/%d/submissions", assignmentID),
		body:        body,
		contentType: contentType,
	}, &submission)
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// DeleteSubmission removes a submission.
func (c *ClassroomClient) DeleteSubmission(ctx context.Context, identity models.Identity, classroomID, submissionID int64) error {
	return c.do(ctx, identity, call{
		operation: "delete_submission",
		method:    http.MethodDelete,
		path:      classroomPath(classroomID, "/submissions/%d", submissionID),
	}, nil)
}

// ListAssignments returns a classroom's assignments.
func (c *ClassroomClient) ListAssignments(ctx context.Context, identity models.Identity, classroomID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := c.do(ctx, identity, call{
		operation: "list_assignments",
		method:    http.MethodGet,
		path:      classroomPath(classroomID, "/assignments"),
	}, &assignments)
	return assignments, err
}

// GetAssignment fetches one assignment.
func (c *ClassroomClient) GetAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*models.Assignment, error) {
	var assignment models.Assignment
	err := c.do(ctx, identity, call{
		operation: "get_assignment",
		method:    http.MethodGet,
		path:      classroomPath(classroomID, "/assignments/%d", assignmentID),
	}, &assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func assignmentFields(input models.AssignmentInput) map[string]string {
	return map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"dueDate":     input.DueDate.Format(time.RFC3339),
	}
}

// CreateAssignment creates an assignment with its attachment.
func (c *ClassroomClient) CreateAssignment(ctx context.Context, identity models.Identity, classroomID int64, input models.AssignmentInput) (*models.Assignment, error) {
	body, contentType, err := multipartBody(assignmentFields(input), input.File)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode assignment")
	}
	var assignment models.Assignment
	err = c.do(ctx, identity, call{
		operation:   "create_assignment",
		method:      http.MethodPost,
		path:        classroomPath(classroomID, "/assignments"),
		body:        body,
		contentType: contentType,
	}, &assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateAssignment edits an assignment; a nil file keeps the current one.
func (c *ClassroomClient) UpdateAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, input models.AssignmentInput) (*models.Assignment, error) {
	body, contentType, err := multipartBody(assignmentFields(input), input.File)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode assignment")
	}
	var assignment models.Assignment
	err = c.do(ctx, identity, call{
		operation:   "update_assignment",
		method:      http.MethodPut,
		path:        classroomPath(classroomID, "/assignments/%d", assignmentID),
		body:        body,
		contentType: contentType,
	}, &assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteAssignment removes an assignment.
func (c *ClassroomClient) DeleteAssignment(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) error {
	return c.do(ctx, identity, call{
		operation: "delete_assignment",
		method:    http.MethodDelete,
		path:      classroomPath(classroomID, "/assignments/%d", assignmentID),
	}, nil)
}

// ListUnenrolled returns students not yet enrolled in the classroom.
func (c *ClassroomClient) ListUnenrolled(ctx context.Context, identity models.Identity, classroomID int64) ([]models.UnenrolledStudent, error) {
	var students []models.UnenrolledStudent
	err := c.do(ctx, identity, call{
		operation: "list_unenrolled",
		method:    http.MethodGet,
		path:      classroomPath(classroomID, "/enrollments/unenrolled"),
	}, &students)
	return students, err
}

// Enroll adds a student to the classroom.
func (c *ClassroomClient) Enroll(ctx context.Context, identity models.Identity, classroomID, studentID int64) error {
	body, err := jsonBody(map[string]int64{"studentId": studentID})
	if err != nil {
		return err
	}
	return c.do(ctx, identity, call{
		operation:   "enroll",
		method:      http.MethodPost,
		path:        classroomPath(classroomID, "/enrollments"),
		body:        body,
		contentType: "application/json",
	}, nil)
}

// CreateMaterial uploads a new learning material.
func (c *ClassroomClient) CreateMaterial(ctx context.Context, identity models.Identity, classroomID int64, input models.MaterialInput) (*models.Material, error) {
	return c.sendMaterial(ctx, identity, "create_material", http.MethodPost, classroomPath(classroomID, "/materials"), input)
}

// UpdateMaterial edits a material; a nil file keeps the current one.
func (c *ClassroomClient) UpdateMaterial(ctx context.Context, identity models.Identity, classroomID, materialID int64, input models.MaterialInput) (*models.Material, error) {
	return c.sendMaterial(ctx, identity, "update_material", http.MethodPut, classroomPath(classroomID, "/materials/%d", materialID), input)
}

func (c *ClassroomClient) sendMaterial(ctx context.Context, identity models.Identity, operation, method, path string, input models.MaterialInput) (*models.Material, error) {
	body, contentType, err := multipartBody(map[string]string{
		"title":       input.Title,
		"description": input.Description,
	}, input.File)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode material")
	}
	var material models.Material
	if err := c.do(ctx, identity, call{operation: operation, method: method, path: path, body: body, contentType: contentType}, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

// SendMessage posts a chat message to the classroom.
func (c *ClassroomClient) SendMessage(ctx context.Context, identity models.Identity, classroomID int64, input models.MessageInput) (*models.Message, error) {
	body, contentType, err := multipartBody(map[string]string{"content": input.Content}, input.File)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode message")
	}
	var message models.Message
	err = c.do(ctx, identity, call{
		operation:   "send_message",
		method:      http.MethodPost,
		path:        classroomPath(classroomID, "/messages"),
		body:        body,
		contentType: contentType,
	}, &message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// SetMeetLink stores the classroom's Google Meet link.
func (c *ClassroomClient) SetMeetLink(ctx context.Context, identity models.Identity, classroomID int64, link string) error {
	body, err := jsonBody(map[string]string{"meetlink": link})
	if err != nil {
		return err
	}
	return c.do(ctx, identity, call{
		operation:   "set_meetlink",
		method:      http.MethodPut,
		path:        classroomPath(classroomID, "/meetlink"),
		body:        body,
		contentType: "application/json",
	}, nil)
}
