package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"argynix-connect/internal/domain"
	"argynix-connect/internal/export"
	"argynix-connect/internal/repository"
	"argynix-connect/internal/store"
	"argynix-connect/internal/thingsboard"

	"go.uber.org/zap"
)

// TelemetryReader is the part of the platform client an export needs.
type TelemetryReader interface {
	GetTimeseries(ctx context.Context, entityType, entityID string, q thingsboard.TimeseriesQuery) (*domain.Telemetry, error)
}

// ExportRequest one device export.
type ExportRequest struct {
	DeviceID   string   `json:"deviceId" validate:"required"`
	DeviceName string   `json:"deviceName" validate:"required"`
	Keys       []string `json:"keys" validate:"required,min=1,dive,required"`
	StartTs    int64    `json:"startTs" validate:"min=0"`
	EndTs      int64    `json:"endTs" validate:"gtfield=StartTs"`
	Format     string   `json:"format" validate:"required"`
}

type ExportService struct {
	history repository.ExportHistoryRepository
	limit   int
	logger  *zap.Logger
}

func NewExportService(history repository.ExportHistoryRepository, limit int, logger *zap.Logger) *ExportService {
	return &ExportService{history: history, limit: limit, logger: logger}
}

// Export fetches the selected series and renders them. export.ErrNoData when
// nothing is in range; no history is recorded then.
func (s *ExportService) Export(ctx context.Context, api TelemetryReader, req ExportRequest) (*export.File, error) {
	if err := ValidateForm(&req); err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, err
	}

	tel, err := api.GetTimeseries(ctx, domain.EntityTypeDevice, req.DeviceID, thingsboard.TimeseriesQuery{
		Keys:    req.Keys,
		StartTs: req.StartTs,
		EndTs:   req.EndTs,
		Limit:   s.limit,
	})
	if err != nil {
		return nil, err
	}

	file, err := export.Render(tel, export.Request{
		DeviceName: req.DeviceName,
		Keys:       req.Keys,
		StartTs:    req.StartTs,
		EndTs:      req.EndTs,
		Format:     format,
	})
	if err != nil {
		return nil, err
	}

	rec := &domain.ExportRecord{
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
		Format:     string(format),
		Keys:       req.Keys,
		StartTs:    req.StartTs,
		EndTs:      req.EndTs,
		FileName:   file.Name,
		RowCount:   file.Rows,
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.logger.Warn("Failed to record export history",
			zap.String("device_id", req.DeviceID),
			zap.Error(err),
		)
	}

	s.logger.Info("Export produced",
		zap.String("device_id", req.DeviceID),
		zap.String("format", string(format)),
		zap.String("file", file.Name),
		zap.Int("rows", file.Rows),
	)
	return file, nil
}

func (s *ExportService) History(ctx context.Context, filter repository.ExportFilter, page, size int) ([]*domain.ExportRecord, int, error) {
	return s.history.List(ctx, filter, page, size)
}

// SessionExporter runs exports on behalf of a stored session and writes the
// files to a directory. Used by the MQTT trigger and the CLI.
type SessionExporter struct {
	sessions *store.SessionStore
	clients  ClientFactory
	exports  *ExportService
	dir      string
	logger   *zap.Logger
}

func NewSessionExporter(sessions *store.SessionStore, clients ClientFactory, exports *ExportService, dir string, logger *zap.Logger) *SessionExporter {
	return &SessionExporter{sessions: sessions, clients: clients, exports: exports, dir: dir, logger: logger}
}

// ExportToDir returns the path of the written file.
func (e *SessionExporter) ExportToDir(ctx context.Context, sessionID string, req ExportRequest) (string, error) {
	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	file, err := e.exports.Export(ctx, e.clients.ForSession(sess), req)
	if err != nil {
		return "", err
	}
	return WriteFile(e.dir, file)
}

// WriteFile stores f under dir, creating dir when needed.
func WriteFile(dir string, f *export.File) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// DefaultRange is the last 24 hours ending at now, in epoch ms.
func DefaultRange(now time.Time) (int64, int64) {
	return now.Add(-24 * time.Hour).UnixMilli(), now.UnixMilli()
}
