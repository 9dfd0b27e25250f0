package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"argynix-connect/internal/domain"

	"github.com/google/uuid"
)

// MemoryExportHistoryRepository keeps export history when the DB is disabled.
type MemoryExportHistoryRepository struct {
	mu      sync.RWMutex
	records []domain.ExportRecord
}

func NewMemoryExportHistoryRepository() *MemoryExportHistoryRepository {
	return &MemoryExportHistoryRepository{}
}

var _ ExportHistoryRepository = (*MemoryExportHistoryRepository)(nil)

func (r *MemoryExportHistoryRepository) Record(_ context.Context, rec *domain.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	cp.Keys = append([]string(nil), rec.Keys...)
	r.records = append(r.records, cp)
	return nil
}

func (r *MemoryExportHistoryRepository) List(_ context.Context, filter ExportFilter, page, size int) ([]*domain.ExportRecord, int, error) {
	page, size = normalizePage(page, size)

	r.mu.RLock()
	all := make([]*domain.ExportRecord, 0, len(r.records))
	for i := range r.records {
		rec := r.records[i]
		if filter.DeviceID != "" && rec.DeviceID != filter.DeviceID {
			continue
		}
		if filter.Format != "" && rec.Format != filter.Format {
			continue
		}
		all = append(all, &rec)
	}
	r.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
