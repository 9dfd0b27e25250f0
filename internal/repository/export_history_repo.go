package repository

import (
	"context"

	"argynix-connect/internal/domain"
)

// ExportHistoryRepository records produced export files.
type ExportHistoryRepository interface {
	// Record stores rec; an empty ID gets a fresh uuid.
	Record(ctx context.Context, rec *domain.ExportRecord) error

	// List returns newest first. DeviceID filters when set.
	List(ctx context.Context, filter ExportFilter, page, size int) ([]*domain.ExportRecord, int, error)
}

type ExportFilter struct {
	DeviceID string
	Format   string
}

func normalizePage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	return page, size
}
