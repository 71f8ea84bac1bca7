package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the payload for creating a customer.
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty" binding:"omitempty,dgte0"`
}

// RecordCustomerPaymentRequest records a debt repayment by a customer.
type RecordCustomerPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PaymentMethod string          `json:"paymentMethod"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID     string          `json:"customerID"`
	ShopID         string          `json:"shopID"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone,omitempty"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentDebt    decimal.Decimal `json:"currentDebt"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:     c.CustomerID,
		ShopID:         c.ShopID,
		Name:           c.Name,
		Phone:          c.Phone,
		CreditLimit:    c.CreditLimit,
		CurrentDebt:    c.CurrentDebt,
		TotalPurchases: c.TotalPurchases,
		TotalPaid:      c.TotalPaid,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to DTOs.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
