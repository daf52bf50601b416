package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	"github.com/noah-isme/classroom-gateway/internal/validation"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

func TestBuildSubmissionRowsFlagsLateStrictly(t *testing.T) {
	due, err := models.ParseDate("2026-10-10")
	require.NoError(t, err)
	rows := BuildSubmissionRows(due, []models.SubmissionSummary{
		{SubmissionID: 1, FirstName: "Ada", LastName: "Lovelace", CreatedAt: time.Date(2026, 10, 9, 23, 0, 0, 0, time.UTC)},
		{SubmissionID: 2, FirstName: "Alan", LastName: "Turing", CreatedAt: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)},
		{SubmissionID: 3, FirstName: "Grace", LastName: "Hopper", CreatedAt: time.Date(2026, 10, 10, 0, 0, 1, 0, time.UTC)},
	})

	require.Len(t, rows, 3)
	assert.False(t, rows[0].Late)
	assert.False(t, rows[1].Late)
	assert.True(t, rows[2].Late)
	assert.Equal(t, "Grace Hopper", rows[2].FullName)
}

func TestSubmissionServiceListReportsEmptyNotice(t *testing.T) {
	due, _ := models.ParseDate("2026-10-10")
	remote := &fakeClassroomRemote{assignment: &models.Assignment{ID: 10, DueDate: due}}
	svc := NewSubmissionService(remote, &fakeStatusResolver{}, &recordingActivity{}, zap.NewNop())

	list, notice, err := svc.List(context.Background(), teacherIdentity, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Rows)
	assert.Equal(t, NoSubmissionsNotice, notice)
}

func TestSubmissionServiceListPropagatesRemoteError(t *testing.T) {
	remote := &fakeClassroomRemote{
		assignment: &models.Assignment{ID: 10},
		listErr:    appErrors.Clone(appErrors.ErrFetch, "Failed to load submissions"),
	}
	svc := NewSubmissionService(remote, &fakeStatusResolver{}, &recordingActivity{}, zap.NewNop())

	_, _, err := svc.List(context.Background(), teacherIdentity, 3, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrFetch))
}

func TestSubmissionServiceListRequiresTeacher(t *testing.T) {
	svc := NewSubmissionService(&fakeClassroomRemote{}, &fakeStatusResolver{}, &recordingActivity{}, zap.NewNop())
	_, _, err := svc.List(context.Background(), studentIdentity, 3, 10)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestSubmissionServiceSubmitInvalidatesStatus(t *testing.T) {
	remote := &fakeClassroomRemote{}
	statuses := &fakeStatusResolver{}
	activity := &recordingActivity{}
	svc := NewSubmissionService(remote, statuses, activity, zap.NewNop())
	file := &models.FileUpload{Filename: "essay.pdf", ContentType: "application/pdf", Size: 4}

	submission, err := svc.Submit(context.Background(), studentIdentity, 3, 10, &validation.SubmissionForm{File: file})
	require.NoError(t, err)
	assert.Equal(t, int64(99), submission.ID)
	assert.Same(t, file, remote.submitted)
	assert.Equal(t, []string{StatusKey(10, studentIdentity.UserID, 3)}, statuses.invalidated)
	assert.Equal(t, []string{models.ActivityActionSubmit}, activity.actions())
}

func TestSubmissionServiceDeleteRequiresMatchingSubmission(t *testing.T) {
	remote := &fakeClassroomRemote{}
	statuses := &fakeStatusResolver{statuses: map[int64]*models.SubmissionStatus{10: {Submitted: true, SubmissionID: submissionID(42)}}}
	svc := NewSubmissionService(remote, statuses, &recordingActivity{}, zap.NewNop())

	err := svc.Delete(context.Background(), studentIdentity, 3, 10, 41)
	assert.True(t, errors.Is(err, appErrors.ErrNoSubmission))
	assert.Empty(t, remote.deletedSubmissions)
	assert.Empty(t, statuses.invalidated)

	require.NoError(t, svc.Delete(context.Background(), studentIdentity, 3, 10, 42))
	assert.Equal(t, []int64{42}, remote.deletedSubmissions)
	assert.Equal(t, []string{StatusKey(10, studentIdentity.UserID, 3)}, statuses.invalidated)
}

func TestSubmissionServiceDeleteWithoutSubmission(t *testing.T) {
	remote := &fakeClassroomRemote{}
	statuses := &fakeStatusResolver{statuses: map[int64]*models.SubmissionStatus{10: {Submitted: false}}}
	svc := NewSubmissionService(remote, statuses, &recordingActivity{}, zap.NewNop())

	err := svc.Delete(context.Background(), studentIdentity, 3, 10, 42)
	assert.True(t, errors.Is(err, appErrors.ErrNoSubmission))
	assert.Empty(t, remote.deletedSubmissions)
}
