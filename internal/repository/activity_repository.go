package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/classroom-gateway/internal/models"
)

const defaultActivityLimit = 100

// ActivityRepository persists activity logs in PostgreSQL.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create inserts a log entry, assigning its id and timestamp when unset.
func (r *ActivityRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO activity_logs (id, user_id, user_type, action, resource, resource_id, classroom_id, metadata, created_at)
VALUES (:id, :user_id, :user_type, :action, :resource, :resource_id, :classroom_id, :metadata, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// List returns the newest entries matching filter.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.ClassroomID != nil {
		args = append(args, *filter.ClassroomID)
		conditions = append(conditions, fmt.Sprintf("classroom_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = defaultActivityLimit
	}

	var b strings.Builder
	b.WriteString(`SELECT id, user_id, user_type, action, resource, resource_id, classroom_id, metadata, created_at FROM activity_logs`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	args = append(args, limit)
	fmt.Fprintf(&b, " ORDER BY created_at DESC LIMIT $%d", len(args))

	var logs []models.ActivityLog
	if err := r.db.SelectContext(ctx, &logs, b.String(), args...); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	return logs, nil
}

// Ping checks the database connection for readiness probes.
func (r *ActivityRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
