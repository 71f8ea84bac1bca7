package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mauzoapp/mauzo_backend/internal/apperrors"
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	portsrepo "github.com/mauzoapp/mauzo_backend/internal/core/ports/repositories"
	portssvc "github.com/mauzoapp/mauzo_backend/internal/core/ports/services"
	"github.com/mauzoapp/mauzo_backend/internal/dto"
	"github.com/mauzoapp/mauzo_backend/internal/middleware"
	"github.com/mauzoapp/mauzo_backend/internal/utils/money"
)

var (
	// ErrSaleTotalsMismatch wraps ErrValidation so handlers map it to 422
	// like every other rejected request.
	ErrSaleTotalsMismatch = fmt.Errorf("%w: sale totals do not reconcile", apperrors.ErrValidation)
	ErrSaleNotCancellable = errors.New("sale cannot be cancelled in its current state")
)

// saleService registers sales and reconciles their payment and refund
// ledgers. Customer debt moves inside the sale repository's composite
// transactions, so the sale repo is the only dependency.
type saleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
}

// NewSaleService creates a new sale transaction engine.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade) portssvc.SaleSvcFacade {
	return &saleService{saleRepo: saleRepo}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale atomically registers a sale and its consequences: header,
// items, initial payments, stock deductions for tracked products, and the
// customer's debt increment commit together or not at all.
func (s *saleService) CreateSale(ctx context.Context, shopID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: sale must have at least one item", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	saleDate := now
	if req.SaleDate != nil {
		saleDate = req.SaleDate.UTC()
	}
	saleID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	pending := domain.SyncFields{SyncStatus: domain.SyncPending}

	// Build items, freeze per-line profit, and collect stock deductions.
	items := make([]domain.SaleItem, len(req.Items))
	stockDeductions := make(map[string]int64)
	profitTotal := decimal.Zero
	for i, itemReq := range req.Items {
		item := domain.SaleItem{
			SaleItemID:     uuid.NewString(),
			SaleID:         saleID,
			ProductID:      itemReq.ProductID,
			ProductName:    itemReq.ProductName,
			Quantity:       itemReq.Quantity,
			SellingPrice:   itemReq.SellingPrice,
			CostPrice:      itemReq.CostPrice,
			DiscountAmount: itemReq.DiscountAmount,
			Subtotal:       itemReq.Subtotal,
			Total:          itemReq.Total,
			AuditFields:    audit,
			SyncFields:     pending,
		}
		if err := item.ReconcileTotals(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		item.Profit = item.ComputeProfit()
		profitTotal = profitTotal.Add(item.Profit)
		items[i] = item

		if item.ProductID != nil {
			if units := item.StockUnits(); units > 0 {
				stockDeductions[*item.ProductID] += units
			}
		}
	}

	// Initial payments, append-only from the start.
	payments := make([]domain.SalePayment, len(req.Payments))
	for i, payReq := range req.Payments {
		paymentDate := saleDate
		if payReq.PaymentDate != nil {
			paymentDate = payReq.PaymentDate.UTC()
		}
		payments[i] = domain.SalePayment{
			SalePaymentID: uuid.NewString(),
			SaleID:        saleID,
			PaymentMethod: payReq.PaymentMethod,
			Amount:        payReq.Amount,
			PaymentDate:   paymentDate,
			AuditFields:   audit,
			SyncFields:    pending,
		}
	}

	amountPaid := domain.SumPayments(payments)
	sale := domain.Sale{
		SaleID:         saleID,
		ShopID:         shopID,
		CustomerID:     req.CustomerID,
		Subtotal:       req.Subtotal,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    req.TotalAmount,
		AmountPaid:     amountPaid,
		ChangeAmount:   money.ChangeDue(req.TotalAmount, amountPaid),
		DebtAmount:     money.Outstanding(req.TotalAmount, amountPaid),
		ProfitAmount:   profitTotal,
		Status:         domain.SaleCompleted,
		SaleDate:       saleDate,
		AuditFields:    audit,
		SyncFields:     pending,
	}
	if err := sale.ReconcileTotals(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaleTotalsMismatch, err)
	}
	sale.PaymentStatus = domain.DeriveInitialPaymentStatus(sale.TotalAmount, sale.AmountPaid, sale.DebtAmount, sale.CustomerID != nil)

	if err := s.saleRepo.SaveSale(ctx, sale, items, payments, stockDeductions); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	logger.Info("Sale created",
		slog.String("sale_id", saleID),
		slog.String("shop_id", shopID),
		slog.String("total", sale.TotalAmount.String()),
		slog.String("payment_status", string(sale.PaymentStatus)))

	sale.Items = items
	sale.Payments = payments
	return &sale, nil
}

// GetSaleByID retrieves a sale with its items, payments and refunds.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	items, err := s.saleRepo.FindItemsBySaleID(ctx, saleID)
	if err != nil {
		logger.Error("Failed to fetch sale items", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve items for sale %s: %w", saleID, apperrors.ErrInternal)
	}
	payments, err := s.saleRepo.FindPaymentsBySaleID(ctx, saleID)
	if err != nil {
		logger.Error("Failed to fetch sale payments", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve payments for sale %s: %w", saleID, apperrors.ErrInternal)
	}
	refunds, err := s.saleRepo.FindRefundsBySaleID(ctx, saleID)
	if err != nil {
		logger.Error("Failed to fetch sale refunds", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve refunds for sale %s: %w", saleID, apperrors.ErrInternal)
	}

	sale.Items = items
	sale.Payments = payments
	sale.Refunds = refunds
	return sale, nil
}

// ListSalesByShop retrieves a token-paginated page of sales for a shop.
func (s *saleService) ListSalesByShop(ctx context.Context, shopID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	sales, nextToken, err := s.saleRepo.ListSalesByShop(ctx, shopID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list sales", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to retrieve sales: %w", err)
	}

	responses := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		responses[i] = dto.ToSaleResponse(&sales[i])
	}
	return &dto.ListSalesResponse{Sales: responses, NextToken: nextToken}, nil
}

// AddPayment appends a payment to the sale's ledger. amountPaid is
// re-derived by summing all payments rather than incremented, so a missed
// or repeated increment can never drift the total.
func (s *saleService) AddPayment(ctx context.Context, saleID string, req dto.AddSalePaymentRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}
	payment := domain.SalePayment{
		SalePaymentID: uuid.NewString(),
		SaleID:        saleID,
		PaymentMethod: req.PaymentMethod,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	sale, err := s.saleRepo.AppendSalePayment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sale not found for payment", slog.String("sale_id", saleID))
		} else {
			logger.Error("Failed to append sale payment", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		}
		return nil, fmt.Errorf("failed to add payment to sale %s: %w", saleID, err)
	}

	logger.Info("Sale payment recorded",
		slog.String("sale_id", saleID),
		slog.String("amount", req.Amount.String()),
		slog.String("payment_status", string(sale.PaymentStatus)))
	return sale, nil
}

// RefundSale appends a refund to the sale's ledger and re-derives the sale
// status. Stock and customer debt are not reversed: restocking and debt
// adjustment are separate business events the caller issues explicitly.
func (s *saleService) RefundSale(ctx context.Context, saleID string, req dto.RefundSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	refund := domain.SaleRefund{
		SaleRefundID: uuid.NewString(),
		SaleID:       saleID,
		Amount:       req.Amount,
		Reason:       req.Reason,
		RefundDate:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	sale, err := s.saleRepo.AppendSaleRefund(ctx, refund)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sale not found for refund", slog.String("sale_id", saleID))
		} else {
			logger.Error("Failed to append sale refund", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		}
		return nil, fmt.Errorf("failed to refund sale %s: %w", saleID, err)
	}

	logger.Info("Sale refund recorded",
		slog.String("sale_id", saleID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(sale.Status)))
	return sale, nil
}

// CancelSale marks a sale cancelled. Like refunds, cancellation does not
// reverse stock or customer debt.
func (s *saleService) CancelSale(ctx context.Context, saleID string, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find sale for cancellation", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	switch sale.Status {
	case domain.SaleCancelled, domain.SaleRefunded:
		return nil, fmt.Errorf("%w: %v: sale is %s", apperrors.ErrConflict, ErrSaleNotCancellable, sale.Status)
	}

	now := time.Now().UTC()
	if err := s.saleRepo.UpdateSaleStatus(ctx, saleID, domain.SaleCancelled, userID, now); err != nil {
		logger.Error("Failed to cancel sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to cancel sale %s: %w", saleID, err)
	}

	sale.Status = domain.SaleCancelled
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = userID
	sale.MarkPending()

	logger.Info("Sale cancelled", slog.String("sale_id", saleID))
	return sale, nil
}
