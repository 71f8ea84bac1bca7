package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	saleRepo := newPgxSaleRepository(dbPool, productRepo, customerRepo)
	purchaseOrderRepo := newPgxPurchaseOrderRepository(dbPool)
	savingsRepo := newPgxSavingsRepository(dbPool)
	syncRepo := newPgxSyncRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ProductRepo:       productRepo,
		CustomerRepo:      customerRepo,
		SaleRepo:          saleRepo,
		PurchaseOrderRepo: purchaseOrderRepo,
		SavingsRepo:       savingsRepo,
		SyncRepo:          syncRepo,
	}
}
