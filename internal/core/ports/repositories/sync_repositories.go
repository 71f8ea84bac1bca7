package repositories

import (
	"context"
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// SyncTracker is the contract consumed by the external synchronization
// collaborator: drain the pending set, upload, acknowledge.
type SyncTracker interface {
	// ListPendingSync retrieves records of the given entity family still in
	// PENDING sync status, oldest mutation first.
	ListPendingSync(ctx context.Context, entityType domain.EntityType, limit int) ([]domain.SyncRecord, error)

	// MarkSyncStatus acknowledges a record's upload state.
	MarkSyncStatus(ctx context.Context, entityType domain.EntityType, recordID string, status domain.SyncStatus, syncedAt time.Time) error
}
