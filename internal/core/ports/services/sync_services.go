package services

import (
	"context"
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// SyncSvcFacade exposes the pending-sync drain surface to the external
// synchronization collaborator.
type SyncSvcFacade interface {
	// ListPending retrieves records of an entity family awaiting upload.
	ListPending(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.SyncRecord, error)

	// MarkSynced acknowledges a successful upload of one record.
	MarkSynced(ctx context.Context, entityType domain.EntityType, recordID string, syncedAt time.Time) error
}
