package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type submissionStatusFetcher interface {
	SubmissionStatus(ctx context.Context, identity models.Identity, classroomID, assignmentID, userID int64) (*models.SubmissionStatus, error)
}

// StatusResolver answers "has this student submitted this assignment?".
//
// Results are cached per (assignment, user, classroom). Concurrent lookups of
// the same key share one remote call. Invalidate bumps a per-key generation
// and InvalidateAssignment a per-assignment one; a fetch that started under
// an older generation never writes the cache.
type StatusResolver struct {
	remote  submissionStatusFetcher
	cache   *CacheService
	ttl     time.Duration
	metrics *MetricsService
	logger  *zap.Logger

	group                 singleflight.Group
	mu                    sync.Mutex
	generations           map[string]uint64
	assignmentGenerations map[int64]uint64
}

// statusGeneration identifies the invalidation epoch a fetch started in.
type statusGeneration struct {
	key        uint64
	assignment uint64
}

// NewStatusResolver constructs a resolver. cache may be nil or disabled.
func NewStatusResolver(remote submissionStatusFetcher, cache *CacheService, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *StatusResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusResolver{
		remote:                remote,
		cache:                 cache,
		ttl:                   ttl,
		metrics:               metrics,
		logger:                logger,
		generations:           make(map[string]uint64),
		assignmentGenerations: make(map[int64]uint64),
	}
}

// StatusKey is the cache key of a submission status.
func StatusKey(assignmentID, userID, classroomID int64) string {
	return fmt.Sprintf("submission_status:%d:%d:%d", assignmentID, userID, classroomID)
}

// Resolve returns the caller's submission status for an assignment.
func (r *StatusResolver) Resolve(ctx context.Context, identity models.Identity, assignmentID, classroomID int64) (*models.SubmissionStatus, error) {
	if !identity.IsStudent() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "submission status is only available to students")
	}
	if assignmentID <= 0 || classroomID <= 0 {
		return nil, appErrors.Validation("invalid identifiers", map[string]string{"assignmentId": "must be positive", "classroomId": "must be positive"})
	}

	key := StatusKey(assignmentID, identity.UserID, classroomID)
	var cached models.SubmissionStatus
	if hit, _ := r.cache.Get(ctx, key, &cached); hit {
		r.metrics.RecordStatusResolution("cache")
		return &cached, nil
	}

	gen := r.generation(assignmentID, key)
	flightKey := key + "#" + strconv.FormatUint(gen.key, 10) + "." + strconv.FormatUint(gen.assignment, 10)
	// the shared fetch must not die with whichever caller started it
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := r.group.Do(flightKey, func() (interface{}, error) {
		status, err := r.remote.SubmissionStatus(fetchCtx, identity, classroomID, assignmentID, identity.UserID)
		if err != nil {
			return nil, err
		}
		r.store(fetchCtx, assignmentID, key, gen, status)
		return status, nil
	})
	if err != nil {
		r.metrics.RecordStatusResolution("error")
		r.logger.Warn("submission status fetch failed",
			zap.Int64("assignment_id", assignmentID),
			zap.Int64("classroom_id", classroomID),
			zap.Int64("user_id", identity.UserID),
			zap.Error(err),
		)
		return nil, err
	}
	if shared {
		r.metrics.RecordStatusResolution("shared")
	} else {
		r.metrics.RecordStatusResolution("remote")
	}
	status := *v.(*models.SubmissionStatus)
	return &status, nil
}

// Invalidate drops the cached status and discards any fetch still in flight
// for the key.
func (r *StatusResolver) Invalidate(ctx context.Context, assignmentID, userID, classroomID int64) {
	key := StatusKey(assignmentID, userID, classroomID)
	r.mu.Lock()
	r.generations[key]++
	r.mu.Unlock()
	if err := r.cache.Delete(ctx, key); err != nil {
		r.logger.Warn("submission status invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateAssignment drops every cached status of an assignment and
// discards every fetch for it still in flight.
func (r *StatusResolver) InvalidateAssignment(ctx context.Context, assignmentID int64) {
	r.mu.Lock()
	r.assignmentGenerations[assignmentID]++
	r.mu.Unlock()
	pattern := fmt.Sprintf("submission_status:%d:*", assignmentID)
	if err := r.cache.Invalidate(ctx, pattern); err != nil {
		r.logger.Warn("submission status invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

func (r *StatusResolver) generation(assignmentID int64, key string) statusGeneration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return statusGeneration{key: r.generations[key], assignment: r.assignmentGenerations[assignmentID]}
}

// store writes status unless the key was invalidated since gen was read. The
// generation is checked again after the write: an invalidation that raced the
// write has already bumped it, so the entry is removed.
func (r *StatusResolver) store(ctx context.Context, assignmentID int64, key string, gen statusGeneration, status *models.SubmissionStatus) {
	if !r.cache.Enabled() || r.generation(assignmentID, key) != gen {
		return
	}
	if err := r.cache.Set(ctx, key, status, r.ttl); err != nil {
		return
	}
	if r.generation(assignmentID, key) != gen {
		_ = r.cache.Delete(ctx, key)
	}
}
