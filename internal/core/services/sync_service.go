package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
)

// syncService exposes the pending-sync drain surface. Upload itself happens
// elsewhere; this side only reports what is pending and records acks.
type syncService struct {
	syncRepo portsrepo.SyncTracker
}

// NewSyncService creates a new sync tracking service.
func NewSyncService(syncRepo portsrepo.SyncTracker) portssvc.SyncSvcFacade {
	return &syncService{syncRepo: syncRepo}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

func validateEntityType(entityType domain.EntityType) error {
	for _, known := range domain.KnownEntityTypes() {
		if entityType == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entityType)
}

// ListPending retrieves records of an entity family awaiting upload.
func (s *syncService) ListPending(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.SyncRecord, error) {
	if err := validateEntityType(entityType); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	records, err := s.syncRepo.ListPendingSync(ctx, entityType, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list pending sync records",
			slog.String("error", err.Error()),
			slog.String("entity_type", string(entityType)))
		return nil, fmt.Errorf("failed to list pending sync records: %w", err)
	}
	return records, nil
}

// MarkSynced acknowledges a successful upload of one record.
func (s *syncService) MarkSynced(ctx context.Context, entityType domain.EntityType, recordID string, syncedAt time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateEntityType(entityType); err != nil {
		return err
	}
	if recordID == "" {
		return fmt.Errorf("%w: record id is required", apperrors.ErrValidation)
	}
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}

	if err := s.syncRepo.MarkSyncStatus(ctx, entityType, recordID, domain.SyncSynced, syncedAt); err != nil {
		logger.Error("Failed to mark record synced",
			slog.String("error", err.Error()),
			slog.String("entity_type", string(entityType)),
			slog.String("record_id", recordID))
		return fmt.Errorf("failed to mark record synced: %w", err)
	}

	logger.Info("Record marked synced",
		slog.String("entity_type", string(entityType)),
		slog.String("record_id", recordID))
	return nil
}
