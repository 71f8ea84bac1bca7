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
)

var ErrOrderTotalsMismatch = errors.New("purchase order total does not match item totals")

// purchaseOrderService drives the pending -> approved -> completed state
// machine by payment accumulation.
type purchaseOrderService struct {
	orderRepo portsrepo.PurchaseOrderRepositoryFacade
}

// NewPurchaseOrderService creates a new purchase order lifecycle engine.
func NewPurchaseOrderService(orderRepo portsrepo.PurchaseOrderRepositoryFacade) portssvc.PurchaseOrderSvcFacade {
	return &purchaseOrderService{orderRepo: orderRepo}
}

var _ portssvc.PurchaseOrderSvcFacade = (*purchaseOrderService)(nil)

// CreatePurchaseOrder persists the order and its items. Status is forced to
// PENDING regardless of what the caller supplied, and the caller's total is
// reconciled against the sum of item totals.
func (s *purchaseOrderService) CreatePurchaseOrder(ctx context.Context, buyerShopID string, req dto.CreatePurchaseOrderRequest, creatorUserID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase order must have at least one item", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	pending := domain.SyncFields{SyncStatus: domain.SyncPending}

	items := make([]domain.PurchaseOrderItem, len(req.Items))
	itemsTotal := decimal.Zero
	for i, itemReq := range req.Items {
		item := domain.PurchaseOrderItem{
			PurchaseOrderItemID: uuid.NewString(),
			PurchaseOrderID:     orderID,
			ProductID:           itemReq.ProductID,
			ProductName:         itemReq.ProductName,
			Quantity:            itemReq.Quantity,
			UnitPrice:           itemReq.UnitPrice,
			TotalPrice:          itemReq.TotalPrice,
			AuditFields:         audit,
			SyncFields:          pending,
		}
		if err := item.ReconcileTotals(); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		itemsTotal = itemsTotal.Add(item.TotalPrice)
		items[i] = item
	}

	if !req.TotalAmount.Equal(itemsTotal) {
		return nil, fmt.Errorf("%w: %v: total %s, items sum %s",
			apperrors.ErrValidation, ErrOrderTotalsMismatch, req.TotalAmount, itemsTotal)
	}

	order := domain.PurchaseOrder{
		PurchaseOrderID: orderID,
		BuyerShopID:     buyerShopID,
		SellerShopID:    req.SellerShopID,
		ReferenceNumber: req.ReferenceNumber,
		Status:          domain.POPending,
		TotalAmount:     req.TotalAmount,
		TotalPaid:       decimal.Zero,
		AuditFields:     audit,
		SyncFields:      pending,
	}

	if err := s.orderRepo.SavePurchaseOrder(ctx, order, items); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate purchase order reference", slog.String("reference", req.ReferenceNumber))
		} else {
			logger.Error("Failed to save purchase order", slog.String("error", err.Error()), slog.String("buyer_shop_id", buyerShopID))
		}
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}

	logger.Info("Purchase order created",
		slog.String("order_id", orderID),
		slog.String("reference", req.ReferenceNumber),
		slog.String("total", order.TotalAmount.String()))

	order.Items = items
	return &order, nil
}

// GetPurchaseOrderByID retrieves an order with its items and payments.
func (s *purchaseOrderService) GetPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindPurchaseOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find purchase order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", orderID, err)
	}

	items, err := s.orderRepo.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		logger.Error("Failed to fetch order items", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to retrieve items for order %s: %w", orderID, apperrors.ErrInternal)
	}
	payments, err := s.orderRepo.FindPaymentsByOrderID(ctx, orderID)
	if err != nil {
		logger.Error("Failed to fetch order payments", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to retrieve payments for order %s: %w", orderID, apperrors.ErrInternal)
	}

	order.Items = items
	order.Payments = payments
	return order, nil
}

// ListPurchaseOrdersByShop retrieves a token-paginated page of orders where
// the shop is the buyer.
func (s *purchaseOrderService) ListPurchaseOrdersByShop(ctx context.Context, shopID string, params dto.ListPurchaseOrdersParams) (*dto.ListPurchaseOrdersResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	orders, nextToken, err := s.orderRepo.ListPurchaseOrdersByShop(ctx, shopID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list purchase orders", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to retrieve purchase orders: %w", err)
	}

	responses := make([]dto.PurchaseOrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToPurchaseOrderResponse(&orders[i])
	}
	return &dto.ListPurchaseOrdersResponse{PurchaseOrders: responses, NextToken: nextToken}, nil
}

// ApprovePurchaseOrder transitions PENDING -> APPROVED, recording approver
// and timestamp. Any other starting state is a conflict.
func (s *purchaseOrderService) ApprovePurchaseOrder(ctx context.Context, orderID string, approverID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, orderID, approverID, func(order *domain.PurchaseOrder, now time.Time) error {
		return order.Approve(approverID, now)
	})
}

// RejectPurchaseOrder transitions PENDING -> REJECTED with a reason.
func (s *purchaseOrderService) RejectPurchaseOrder(ctx context.Context, orderID string, req dto.RejectPurchaseOrderRequest, userID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, orderID, userID, func(order *domain.PurchaseOrder, _ time.Time) error {
		return order.Reject(req.Reason)
	})
}

// CancelPurchaseOrder transitions any non-terminal state -> CANCELLED.
func (s *purchaseOrderService) CancelPurchaseOrder(ctx context.Context, orderID string, userID string) (*domain.PurchaseOrder, error) {
	return s.transition(ctx, orderID, userID, func(order *domain.PurchaseOrder, _ time.Time) error {
		return order.Cancel()
	})
}

// transition loads the order, applies a state machine move, and persists it.
// Illegal moves surface as ErrConflict.
func (s *purchaseOrderService) transition(ctx context.Context, orderID string, userID string, apply func(*domain.PurchaseOrder, time.Time) error) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	order, err := s.orderRepo.FindPurchaseOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find purchase order for transition", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", orderID, err)
	}

	now := time.Now().UTC()
	if err := apply(order, now); err != nil {
		logger.Warn("Illegal purchase order transition",
			slog.String("order_id", orderID),
			slog.String("status", string(order.Status)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}

	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID
	order.MarkPending()

	if err := s.orderRepo.UpdatePurchaseOrder(ctx, *order); err != nil {
		logger.Error("Failed to persist purchase order transition", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update purchase order %s: %w", orderID, err)
	}

	logger.Info("Purchase order transitioned", slog.String("order_id", orderID), slog.String("status", string(order.Status)))
	return order, nil
}

// AddPayment appends a payment to the order's ledger. totalPaid is
// re-derived by summation; the order completes exactly when the summed
// ledger covers totalAmount. Overpayment is recorded as-is.
func (s *purchaseOrderService) AddPayment(ctx context.Context, orderID string, req dto.AddPurchasePaymentRequest, userID string) (*domain.PurchaseOrder, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	paymentDate := now
	if req.PaymentDate != nil {
		paymentDate = req.PaymentDate.UTC()
	}
	payment := domain.PurchasePayment{
		PurchasePaymentID: uuid.NewString(),
		PurchaseOrderID:   orderID,
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		RecordedBy:        userID,
		PaymentDate:       paymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	order, err := s.orderRepo.AppendPurchasePayment(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase order not found for payment", slog.String("order_id", orderID))
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Payment against purchase order in terminal state", slog.String("order_id", orderID))
		} else {
			logger.Error("Failed to append purchase payment", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, fmt.Errorf("failed to add payment to purchase order %s: %w", orderID, err)
	}

	logger.Info("Purchase payment recorded",
		slog.String("order_id", orderID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(order.Status)))
	return order, nil
}
