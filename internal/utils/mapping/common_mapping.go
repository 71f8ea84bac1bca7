package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelSyncFields converts a domain SyncFields to a model SyncFields
func ToModelSyncFields(d domain.SyncFields) models.SyncFields {
	return models.SyncFields{
		SyncStatus:   string(d.SyncStatus),
		LastSyncedAt: d.LastSyncedAt,
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainSyncFields converts a model SyncFields to a domain SyncFields
func ToDomainSyncFields(m models.SyncFields) domain.SyncFields {
	return domain.SyncFields{
		SyncStatus:   domain.SyncStatus(m.SyncStatus),
		LastSyncedAt: m.LastSyncedAt,
		DeletedAt:    m.DeletedAt,
	}
}
