package services

import (
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Inventory:     NewInventoryService(repos.ProductRepo),
		Customer:      NewCustomerService(repos.CustomerRepo),
		Sale:          NewSaleService(repos.SaleRepo),
		PurchaseOrder: NewPurchaseOrderService(repos.PurchaseOrderRepo),
		Savings:       NewSavingsService(repos.SavingsRepo),
		Sync:          NewSyncService(repos.SyncRepo),
	}
}
