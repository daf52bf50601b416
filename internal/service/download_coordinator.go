package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
)

type downloadURLFetcher interface {
	DownloadURL(ctx context.Context, identity models.Identity, req models.DownloadRequest) (string, error)
}

// Download outcomes recorded in metrics.
const (
	downloadOutcomeResolved   = "resolved"
	downloadOutcomeFailed     = "failed"
	downloadOutcomeBusy       = "in_progress"
	downloadOutcomeSuperseded = "superseded"
	downloadOutcomeRejected   = "rejected"
)

// DownloadCoordinator holds a single download slot. At most one request is
// pending at a time; resolved and failed outcomes are reported once and the
// slot returns to idle. URLs are fetched fresh on every request.
type DownloadCoordinator struct {
	fetcher downloadURLFetcher
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time

	mu         sync.Mutex
	phase      models.DownloadPhase
	request    *models.DownloadRequest
	startedAt  time.Time
	generation uint64
	cancel     context.CancelFunc
	last       models.DownloadState
	lastActive time.Time
}

// NewDownloadCoordinator constructs an idle coordinator.
func NewDownloadCoordinator(fetcher downloadURLFetcher, metrics *MetricsService, logger *zap.Logger) *DownloadCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadCoordinator{
		fetcher: fetcher,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		phase:   models.DownloadPhaseIdle,
	}
}

// idleBefore reports whether nothing is pending and the slot was last used
// before cutoff.
func (c *DownloadCoordinator) idleBefore(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != models.DownloadPhasePending && c.lastActive.Before(cutoff)
}

func (c *DownloadCoordinator) touch() {
	c.mu.Lock()
	c.lastActive = c.now()
	c.mu.Unlock()
}

// Request obtains a URL for req. It fails with DOWNLOAD_IN_PROGRESS while
// another request is pending and with DOWNLOAD_SUPERSEDED when Cancel ran
// before the result arrived.
func (c *DownloadCoordinator) Request(ctx context.Context, identity models.Identity, req models.DownloadRequest) (string, error) {
	if err := req.Validate(); err != nil {
		c.metrics.RecordDownload(string(req.Kind), downloadOutcomeRejected)
		return "", appErrors.Validation(err.Error(), map[string]string{"targetId": err.Error()})
	}

	c.mu.Lock()
	if c.phase == models.DownloadPhasePending {
		c.mu.Unlock()
		c.metrics.RecordDownload(string(req.Kind), downloadOutcomeBusy)
		return "", appErrors.ErrDownloadInProgress
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	gen := c.generation
	c.phase = models.DownloadPhasePending
	pending := req
	c.request = &pending
	c.startedAt = c.now()
	c.lastActive = c.startedAt
	c.cancel = cancel
	c.mu.Unlock()

	url, err := c.fetcher.DownloadURL(fetchCtx, identity, req)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()
	if c.generation != gen {
		c.metrics.RecordDownload(string(req.Kind), downloadOutcomeSuperseded)
		c.logger.Debug("discarding superseded download", zap.String("kind", string(req.Kind)), zap.Int64("target_id", req.TargetID))
		return "", appErrors.ErrDownloadSuperseded
	}

	started := c.startedAt
	c.reset()
	if err != nil {
		c.last = models.DownloadState{Phase: models.DownloadPhaseFailed, Request: &pending, Error: appErrors.FromError(err).Message, StartedAt: &started}
		c.metrics.RecordDownload(string(req.Kind), downloadOutcomeFailed)
		return "", err
	}
	c.last = models.DownloadState{Phase: models.DownloadPhaseResolved, Request: &pending, URL: url, StartedAt: &started}
	c.metrics.RecordDownload(string(req.Kind), downloadOutcomeResolved)
	return url, nil
}

// Cancel abandons the pending request, if any. Its late result is discarded.
func (c *DownloadCoordinator) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.phase != models.DownloadPhasePending {
		return false
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.reset()
	return true
}

// State reports the slot: the pending request when one is in flight,
// otherwise idle together with the last outcome.
func (c *DownloadCoordinator) State() (current models.DownloadState, last models.DownloadState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current = models.DownloadState{Phase: c.phase}
	if c.phase == models.DownloadPhasePending {
		req := *c.request
		started := c.startedAt
		current.Request = &req
		current.StartedAt = &started
	}
	return current, c.last
}

// Busy reports whether a request is pending.
func (c *DownloadCoordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == models.DownloadPhasePending
}

func (c *DownloadCoordinator) reset() {
	c.phase = models.DownloadPhaseIdle
	c.request = nil
	c.cancel = nil
	c.startedAt = time.Time{}
}

// downloadSlotIdleTTL is how long an unused slot is kept before the registry
// drops it.
const downloadSlotIdleTTL = 15 * time.Minute

// DownloadRegistry keeps one coordinator per user so each user has their own
// download slot. Slots idle for longer than the idle TTL are dropped.
type DownloadRegistry struct {
	fetcher downloadURLFetcher
	metrics *MetricsService
	logger  *zap.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu           sync.Mutex
	coordinators map[int64]*DownloadCoordinator
	lastSweep    time.Time
}

// NewDownloadRegistry constructs an empty registry.
func NewDownloadRegistry(fetcher downloadURLFetcher, metrics *MetricsService, logger *zap.Logger) *DownloadRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadRegistry{
		fetcher:      fetcher,
		metrics:      metrics,
		logger:       logger,
		idleTTL:      downloadSlotIdleTTL,
		now:          time.Now,
		coordinators: make(map[int64]*DownloadCoordinator),
	}
}

// For returns the coordinator of userID, creating it on first use.
func (r *DownloadRegistry) For(userID int64) *DownloadCoordinator {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	coord, ok := r.coordinators[userID]
	if !ok {
		coord = NewDownloadCoordinator(r.fetcher, r.metrics, r.logger)
		coord.now = r.now
		r.coordinators[userID] = coord
	}
	coord.touch()
	return coord
}

// Len reports how many slots are held.
func (r *DownloadRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.coordinators)
}

// sweepLocked drops idle slots, at most once per idle TTL. r.mu must be held.
func (r *DownloadRegistry) sweepLocked() {
	now := r.now()
	if now.Sub(r.lastSweep) < r.idleTTL {
		return
	}
	r.lastSweep = now
	cutoff := now.Add(-r.idleTTL)
	for userID, coord := range r.coordinators {
		if coord.idleBefore(cutoff) {
			delete(r.coordinators, userID)
		}
	}
}

// Cancel cancels userID's pending download, reporting whether one existed.
func (r *DownloadRegistry) Cancel(userID int64) bool {
	r.mu.Lock()
	coord, ok := r.coordinators[userID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return coord.Cancel()
}
