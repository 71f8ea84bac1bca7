package services

// ServiceContainer aggregates the service facades handed to the handlers.
type ServiceContainer struct {
	Inventory     InventorySvcFacade
	Customer      CustomerSvcFacade
	Sale          SaleSvcFacade
	PurchaseOrder PurchaseOrderSvcFacade
	Savings       SavingsSvcFacade
	Sync          SyncSvcFacade
}
