package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-gateway/internal/dto"
	"github.com/noah-isme/classroom-gateway/internal/models"
	appErrors "github.com/noah-isme/classroom-gateway/pkg/errors"
	"github.com/noah-isme/classroom-gateway/pkg/export"
	"github.com/noah-isme/classroom-gateway/pkg/storage"
)

const (
	rosterColumnStudent   = "Student"
	rosterColumnSubmitted = "Submitted At"
	rosterColumnLate      = "Late"
)

type rosterSource interface {
	List(ctx context.Context, identity models.Identity, classroomID, assignmentID int64) (*dto.SubmissionList, string, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled   bool
	APIPrefix string
	ResultTTL time.Duration
	Location  *time.Location
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       string
	ExpiresAt    time.Time
}

// ExportService renders submission rosters and hands out signed links to them.
type ExportService struct {
	roster   rosterSource
	storage  fileStorage
	csv      csvRenderer
	pdf      pdfRenderer
	signer   *storage.SignedURLSigner
	activity activityRecorder
	logger   *zap.Logger
	cfg      ExportConfig
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(roster rosterSource, store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, activity activityRecorder) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = &export.PDFExporter{HighlightColumn: rosterColumnLate, HighlightValue: "Yes"}
	}
	return &ExportService{
		roster:   roster,
		storage:  store,
		csv:      csv,
		pdf:      pdf,
		signer:   signer,
		activity: activity,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Roster renders an assignment's submissions in format and stores the file.
func (s *ExportService) Roster(ctx context.Context, identity models.Identity, classroomID, assignmentID int64, format string) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.ErrFeatureDisabled
	}
	if err := requireTeacher(identity); err != nil {
		return nil, err
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Validation("unsupported export format", map[string]string{"format": "Format must be csv or pdf"})
	}

	list, _, err := s.roster.List(ctx, identity, classroomID, assignmentID)
	if err != nil {
		return nil, err
	}
	dataset := BuildRosterDataset(list.Rows, s.cfg.Location)

	var payload []byte
	switch format {
	case "csv":
		payload, err = s.csv.Render(dataset)
	case "pdf":
		payload, err = s.pdf.Render(dataset, fmt.Sprintf("Submissions for assignment %d", assignmentID))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	relPath, err := s.storage.Save(s.buildFilename(classroomID, assignmentID, format), payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}

	exportID := uuid.NewString()
	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	recordActivity(s.activity, identity, ActivityEntry{
		Action:      models.ActivityActionRosterExport,
		Resource:    "assignment",
		ResourceID:  int64Ptr(assignmentID),
		ClassroomID: classroomID,
		Metadata:    map[string]interface{}{"format": format, "rows": len(dataset.Rows), "exportId": exportID},
	})

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// BuildRosterDataset lays submission rows out as Student, Submitted At and Late columns.
func BuildRosterDataset(rows []dto.SubmissionRow, loc *time.Location) export.Dataset {
	if loc == nil {
		loc = time.UTC
	}
	data := export.Dataset{
		Headers: []string{rosterColumnStudent, rosterColumnSubmitted, rosterColumnLate},
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, row := range rows {
		late := "No"
		if row.Late {
			late = "Yes"
		}
		data.Rows = append(data.Rows, map[string]string{
			rosterColumnStudent:   row.FullName,
			rosterColumnSubmitted: row.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			rosterColumnLate:      late,
		})
	}
	return data
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string) (exportID, relPath string, expiresAt time.Time, err error) {
	exportID, relPath, expiresAt, err = s.signer.Parse(token, false)
	if err != nil {
		return "", "", time.Time{}, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired export link")
	}
	return exportID, relPath, expiresAt, nil
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	f, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export not found")
	}
	return f, nil
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

// RunCleanup sweeps expired exports every interval until ctx is done.
func (s *ExportService) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Cleanup(0)
			if err != nil {
				s.logger.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				s.logger.Info("export cleanup", zap.Int("removed", len(removed)))
			}
		}
	}
}

func (s *ExportService) buildFilename(classroomID, assignmentID int64, format string) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("submissions_c%d_a%d_%s.%s", classroomID, assignmentID, timestamp, format)
}
