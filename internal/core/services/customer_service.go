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

// customerService manages the customer roster and the running debt ledger
// fed by credit sales.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer registers a new customer for a shop.
func (s *customerService) CreateCustomer(ctx context.Context, shopID string, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creditLimit := decimal.Zero
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
		}
		creditLimit = *req.CreditLimit
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:     uuid.NewString(),
		ShopID:         shopID,
		Name:           req.Name,
		Phone:          req.Phone,
		CreditLimit:    creditLimit,
		CurrentDebt:    decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalPaid:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
		SyncFields: domain.SyncFields{SyncStatus: domain.SyncPending},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID), slog.String("shop_id", shopID))
	return &customer, nil
}

// GetCustomerByID retrieves a single customer.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomersByShop retrieves the customers of a shop.
func (s *customerService) ListCustomersByShop(ctx context.Context, shopID string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	customers, err := s.customerRepo.ListCustomersByShop(ctx, shopID, limit, offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list customers", slog.String("error", err.Error()), slog.String("shop_id", shopID))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// RecordCustomerPayment applies a standalone debt repayment to a customer.
// The debt floors at zero; overpaying clears the debt and keeps the excess
// reflected in the paid total only.
func (s *customerService) RecordCustomerPayment(ctx context.Context, customerID string, req dto.RecordCustomerPaymentRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	customer, err := s.customerRepo.ApplyCustomerPayment(ctx, customerID, req.Amount, userID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to apply customer payment", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, fmt.Errorf("failed to apply customer payment: %w", err)
	}

	logger.Info("Customer payment recorded",
		slog.String("customer_id", customerID),
		slog.String("amount", req.Amount.String()),
		slog.String("current_debt", customer.CurrentDebt.String()))
	return customer, nil
}
