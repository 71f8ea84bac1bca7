package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
)

// SyncRecordResponse identifies a locally mutated record awaiting upload.
type SyncRecordResponse struct {
	EntityType    string    `json:"entityType"`
	RecordID      string    `json:"recordID"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// PendingSyncResponse is the drain view consumed by the sync collaborator.
type PendingSyncResponse struct {
	EntityType string               `json:"entityType"`
	Records    []SyncRecordResponse `json:"records"`
}

// MarkSyncedRequest acknowledges a successful upload of one record.
type MarkSyncedRequest struct {
	SyncedAt *time.Time `json:"syncedAt,omitempty"`
}

// ToSyncRecordResponses converts domain sync records to DTOs.
func ToSyncRecordResponses(records []domain.SyncRecord) []SyncRecordResponse {
	responses := make([]SyncRecordResponse, len(records))
	for i, rec := range records {
		responses[i] = SyncRecordResponse{
			EntityType:    string(rec.EntityType),
			RecordID:      rec.RecordID,
			LastUpdatedAt: rec.LastUpdatedAt,
		}
	}
	return responses
}
