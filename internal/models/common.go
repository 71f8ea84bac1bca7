package models

import "time"

// AuditFields holds standard audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// SyncFields holds the sync and soft-delete columns shared by every table.
type SyncFields struct {
	SyncStatus   string     `db:"sync_status"`
	LastSyncedAt *time.Time `db:"last_synced_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
