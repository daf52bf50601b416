package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

func newDownloadServiceForTest(remote *fakeClassroomRemote, statuses *fakeStatusResolver, activity *recordingActivity) *DownloadService {
	registry := NewDownloadRegistry(remote, nil, zap.NewNop())
	submissions := NewSubmissionService(remote, statuses, activity, zap.NewNop())
	return NewDownloadService(registry, statuses, submissions, activity, zap.NewNop())
}

func TestDownloadServiceOwnSubmissionWithoutIDNeverCallsRemote(t *testing.T) {
	cases := map[string]*models.SubmissionStatus{
		"not submitted":        {Submitted: false},
		"submitted without id": {Submitted: true},
		"zero id":              {Submitted: true, SubmissionID: submissionID(0)},
	}
	for name, status := range cases {
		t.Run(name, func(t *testing.T) {
			remote := &fakeClassroomRemote{downloadURL: "https://files.example.com/s.pdf"}
			statuses := &fakeStatusResolver{statuses: map[int64]*models.SubmissionStatus{10: status}}
			svc := newDownloadServiceForTest(remote, statuses, &recordingActivity{})

			_, err := svc.OwnSubmission(context.Background(), studentIdentity, 3, 10)
			require.Error(t, err)
			assert.True(t, errors.Is(err, appErrors.ErrNoSubmission))
			assert.Equal(t, int32(0), atomic.LoadInt32(&remote.downloadCalls))
		})
	}
}

func TestDownloadServiceOwnSubmissionUsesResolvedID(t *testing.T) {
	remote := &fakeClassroomRemote{downloadURL: "https://files.example.com/s.pdf"}
	statuses := &fakeStatusResolver{statuses: map[int64]*models.SubmissionStatus{10: {Submitted: true, SubmissionID: submissionID(42)}}}
	activity := &recordingActivity{}
	svc := newDownloadServiceForTest(remote, statuses, activity)

	url, err := svc.OwnSubmission(context.Background(), studentIdentity, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/s.pdf", url)
	require.Len(t, remote.downloadRequests, 1)
	assert.Equal(t, models.DownloadRequest{Kind: models.DownloadKindSubmission, ClassroomID: 3, TargetID: 42}, remote.downloadRequests[0])
	assert.Equal(t, []string{models.ActivityActionDownloadSubmission}, activity.actions())
}

func TestDownloadServiceOwnSubmissionRequiresStudent(t *testing.T) {
	svc := newDownloadServiceForTest(&fakeClassroomRemote{}, &fakeStatusResolver{}, &recordingActivity{})
	_, err := svc.OwnSubmission(context.Background(), teacherIdentity, 3, 10)
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))
}

func TestDownloadServiceListedSubmission(t *testing.T) {
	remote := &fakeClassroomRemote{
		downloadURL: "https://files.example.com/s.pdf",
		summaries:   []models.SubmissionSummary{{SubmissionID: 42, FirstName: "Ada", LastName: "Lovelace", CreatedAt: time.Now()}},
	}
	svc := newDownloadServiceForTest(remote, &fakeStatusResolver{}, &recordingActivity{})

	url, err := svc.ListedSubmission(context.Background(), teacherIdentity, 3, 10, 42)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/s.pdf", url)

	_, err = svc.ListedSubmission(context.Background(), teacherIdentity, 3, 10, 43)
	assert.True(t, errors.Is(err, appErrors.ErrNoSubmission))
	assert.Equal(t, int32(1), atomic.LoadInt32(&remote.downloadCalls))
}

func TestDownloadServiceAssignmentFileRecordsActivity(t *testing.T) {
	remote := &fakeClassroomRemote{downloadURL: "https://files.example.com/a.pdf"}
	activity := &recordingActivity{}
	svc := newDownloadServiceForTest(remote, &fakeStatusResolver{}, activity)

	_, err := svc.AssignmentFile(context.Background(), teacherIdentity, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{models.ActivityActionDownloadAssignment}, activity.actions())

	current, last := svc.State(teacherIdentity)
	assert.Equal(t, models.DownloadPhaseIdle, current.Phase)
	assert.Equal(t, models.DownloadPhaseResolved, last.Phase)
	assert.False(t, svc.Cancel(teacherIdentity))
}
