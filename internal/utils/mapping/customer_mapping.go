package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:     d.CustomerID,
		ShopID:         d.ShopID,
		Name:           d.Name,
		Phone:          d.Phone,
		CreditLimit:    d.CreditLimit,
		CurrentDebt:    d.CurrentDebt,
		TotalPurchases: d.TotalPurchases,
		TotalPaid:      d.TotalPaid,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SyncFields:     ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:     m.CustomerID,
		ShopID:         m.ShopID,
		Name:           m.Name,
		Phone:          m.Phone,
		CreditLimit:    m.CreditLimit,
		CurrentDebt:    m.CurrentDebt,
		TotalPurchases: m.TotalPurchases,
		TotalPaid:      m.TotalPaid,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SyncFields:     ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
