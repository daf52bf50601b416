package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/jobs"
)

const activityJobType = "activity_log"

type activityStore interface {
	Create(ctx context.Context, log *models.ActivityLog) error
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error)
}

// ActivityEntry describes a user intent worth recording.
type ActivityEntry struct {
	Action      string
	Resource    string
	ResourceID  *int64
	ClassroomID int64
	Metadata    map[string]interface{}
}

type activityRecorder interface {
	Record(identity models.Identity, entry ActivityEntry)
}

// ActivityServiceConfig tunes the background writer.
type ActivityServiceConfig struct {
	Enabled bool
	Workers int
	Retries int
}

// ActivityService records activity logs on a background queue so request
// handling never waits on the database.
type ActivityService struct {
	repo    activityStore
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
	enabled bool
}

// NewActivityService constructs the service and its queue. Start must be
// called before entries are accepted.
func NewActivityService(repo activityStore, metrics *MetricsService, logger *zap.Logger, cfg ActivityServiceConfig) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ActivityService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		enabled: cfg.Enabled && repo != nil,
	}
	svc.queue = jobs.NewQueue("activity", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.Retries,
		Logger:     logger,
	})
	return svc
}

// Start launches the queue workers.
func (s *ActivityService) Start(ctx context.Context) {
	if !s.enabled {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *ActivityService) Stop() {
	s.queue.Stop()
}

// Record enqueues an entry. It never blocks; entries that cannot be queued
// are dropped and counted.
func (s *ActivityService) Record(identity models.Identity, entry ActivityEntry) {
	if s == nil || !s.enabled {
		return
	}
	log := &models.ActivityLog{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		UserType:    identity.UserType,
		Action:      entry.Action,
		Resource:    entry.Resource,
		ResourceID:  entry.ResourceID,
		ClassroomID: entry.ClassroomID,
	}
	if len(entry.Metadata) > 0 {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			s.logger.Warn("activity metadata not serialisable", zap.String("action", entry.Action), zap.Error(err))
		} else {
			log.Metadata = raw
		}
	}
	if err := s.queue.TryEnqueue(jobs.Job{ID: log.ID, Type: activityJobType, Payload: log}); err != nil {
		s.metrics.RecordActivityDropped()
		s.logger.Warn("activity log dropped", zap.String("action", entry.Action), zap.Error(err))
	}
}

// List returns recorded activity. Teachers see a classroom's activity;
// students only their own.
func (s *ActivityService) List(ctx context.Context, identity models.Identity, filter models.ActivityFilter) ([]models.ActivityLog, error) {
	if !s.enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "activity log disabled")
	}
	if identity.IsStudent() {
		filter.UserID = &identity.UserID
	} else if filter.ClassroomID == nil {
		return nil, appErrors.Validation("classroom required", map[string]string{"classroomId": "classroomId is required"})
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activity")
	}
	return logs, nil
}

func (s *ActivityService) handle(ctx context.Context, job jobs.Job) error {
	log, ok := job.Payload.(*models.ActivityLog)
	if !ok {
		return fmt.Errorf("unexpected activity payload %T", job.Payload)
	}
	return s.repo.Create(ctx, log)
}

func recordActivity(rec activityRecorder, identity models.Identity, entry ActivityEntry) {
	if rec == nil {
		return
	}
	rec.Record(identity, entry)
}

func int64Ptr(v int64) *int64 {
	return &v
}
