package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type mockActivityStore struct {
	mu      sync.Mutex
	created []*models.ActivityLog
	filter  models.ActivityFilter
}

func (m *mockActivityStore) Create(ctx context.Context, log *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, log)
	return nil
}

func (m *mockActivityStore) List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error) {
	m.filter = filter
	return []models.ActivityLog{{ID: "a1"}}, nil
}

func (m *mockActivityStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

func TestActivityServiceRecordsInBackground(t *testing.T) {
	store := &mockActivityStore{}
	svc := NewActivityService(store, nil, zap.NewNop(), ActivityServiceConfig{Enabled: true, Workers: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	svc.Record(studentIdentity, ActivityEntry{
		Action:      models.ActivityActionSubmit,
		Resource:    "submission",
		ResourceID:  int64Ptr(99),
		ClassroomID: 3,
		Metadata:    map[string]interface{}{"assignmentId": 10},
	})

	require.Eventually(t, func() bool { return store.count() == 1 }, time.Second, 5*time.Millisecond)
	store.mu.Lock()
	log := store.created[0]
	store.mu.Unlock()
	assert.Equal(t, studentIdentity.UserID, log.UserID)
	assert.Equal(t, models.UserTypeStudent, log.UserType)
	assert.Equal(t, int64(99), *log.ResourceID)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(log.Metadata, &meta))
	assert.Equal(t, float64(10), meta["assignmentId"])
}

func TestActivityServiceDisabled(t *testing.T) {
	store := &mockActivityStore{}
	svc := NewActivityService(store, nil, zap.NewNop(), ActivityServiceConfig{Enabled: false})
	svc.Start(context.Background())
	svc.Record(studentIdentity, ActivityEntry{Action: models.ActivityActionSubmit})
	svc.Stop()

	assert.Equal(t, 0, store.count())
	_, err := svc.List(context.Background(), teacherIdentity, models.ActivityFilter{})
	assert.True(t, errors.Is(err, appErrors.ErrFeatureDisabled))

	var nilSvc *ActivityService
	assert.NotPanics(t, func() { nilSvc.Record(studentIdentity, ActivityEntry{}) })
}

func TestActivityServiceListScopesByRole(t *testing.T) {
	store := &mockActivityStore{}
	svc := NewActivityService(store, nil, zap.NewNop(), ActivityServiceConfig{Enabled: true})

	other := int64(1234)
	_, err := svc.List(context.Background(), studentIdentity, models.ActivityFilter{UserID: &other})
	require.NoError(t, err)
	require.NotNil(t, store.filter.UserID)
	assert.Equal(t, studentIdentity.UserID, *store.filter.UserID)

	_, err = svc.List(context.Background(), teacherIdentity, models.ActivityFilter{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	classroom := int64(3)
	logs, err := svc.List(context.Background(), teacherIdentity, models.ActivityFilter{ClassroomID: &classroom})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
