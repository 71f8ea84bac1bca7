package domain

import "time"

// SyncRecord points at a locally mutated record the sync collaborator
// still has to upload.
type SyncRecord struct {
	EntityType    EntityType `json:"entityType"`
	RecordID      string     `json:"recordID"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}
