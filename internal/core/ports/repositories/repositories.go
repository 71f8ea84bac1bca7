package repositories

// RepositoryProvider aggregates the repository facades handed to the
// service container.
type RepositoryProvider struct {
	ProductRepo       ProductRepositoryFacade
	CustomerRepo      CustomerRepositoryFacade
	SaleRepo          SaleRepositoryFacade
	PurchaseOrderRepo PurchaseOrderRepositoryFacade
	SavingsRepo       SavingsRepositoryFacade
	SyncRepo          SyncTracker
}
