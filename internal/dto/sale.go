package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleItemRequest is a single line of a new sale. Subtotal and Total
// are caller-supplied and re-validated against price*quantity by the engine.
type CreateSaleItemRequest struct {
	ProductID      *string         `json:"productID,omitempty"`
	ProductName    string          `json:"productName" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	SellingPrice   decimal.Decimal `json:"sellingPrice" binding:"dgte0"`
	CostPrice      decimal.Decimal `json:"costPrice" binding:"dgte0"`
	DiscountAmount decimal.Decimal `json:"discountAmount" binding:"dgte0"`
	Subtotal       decimal.Decimal `json:"subtotal" binding:"dgte0"`
	Total          decimal.Decimal `json:"total" binding:"dgte0"`
}

// CreateSalePaymentRequest is an initial payment taken with the sale.
type CreateSalePaymentRequest struct {
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
}

// CreateSaleRequest defines the payload for registering a sale.
type CreateSaleRequest struct {
	CustomerID     *string                    `json:"customerID,omitempty"`
	Subtotal       decimal.Decimal            `json:"subtotal" binding:"dgte0"`
	TaxAmount      decimal.Decimal            `json:"taxAmount" binding:"dgte0"`
	DiscountAmount decimal.Decimal            `json:"discountAmount" binding:"dgte0"`
	TotalAmount    decimal.Decimal            `json:"totalAmount" binding:"dgte0"`
	SaleDate       *time.Time                 `json:"saleDate,omitempty"`
	Items          []CreateSaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments       []CreateSalePaymentRequest `json:"payments" binding:"dive"`
}

// AddSalePaymentRequest appends a payment to an existing sale.
type AddSalePaymentRequest struct {
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
}

// RefundSaleRequest appends a refund to an existing sale.
type RefundSaleRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Reason string          `json:"reason" binding:"required"`
}

// ListSalesParams holds pagination parameters for listing sales.
type ListSalesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// SaleItemResponse defines the data returned for a sale line.
type SaleItemResponse struct {
	SaleItemID     string          `json:"saleItemID"`
	ProductID      *string         `json:"productID,omitempty"`
	ProductName    string          `json:"productName"`
	Quantity       decimal.Decimal `json:"quantity"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Profit         decimal.Decimal `json:"profit"`
}

// SalePaymentResponse defines the data returned for a payment ledger row.
type SalePaymentResponse struct {
	SalePaymentID string          `json:"salePaymentID"`
	PaymentMethod string          `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

// SaleRefundResponse defines the data returned for a refund ledger row.
type SaleRefundResponse struct {
	SaleRefundID string          `json:"saleRefundID"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	RefundDate   time.Time       `json:"refundDate"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID         string                `json:"saleID"`
	ShopID         string                `json:"shopID"`
	CustomerID     *string               `json:"customerID,omitempty"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	DiscountAmount decimal.Decimal       `json:"discountAmount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	AmountPaid     decimal.Decimal       `json:"amountPaid"`
	ChangeAmount   decimal.Decimal       `json:"changeAmount"`
	DebtAmount     decimal.Decimal       `json:"debtAmount"`
	ProfitAmount   decimal.Decimal       `json:"profitAmount"`
	Status         string                `json:"status"`
	PaymentStatus  string                `json:"paymentStatus"`
	SaleDate       time.Time             `json:"saleDate"`
	SyncStatus     string                `json:"syncStatus"`
	Items          []SaleItemResponse    `json:"items,omitempty"`
	Payments       []SalePaymentResponse `json:"payments,omitempty"`
	Refunds        []SaleRefundResponse  `json:"refunds,omitempty"`
}

// ListSalesResponse wraps a page of sales with the continuation token.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToSaleResponse converts a domain.Sale (with any loaded children) to a DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	resp := SaleResponse{
		SaleID:         s.SaleID,
		ShopID:         s.ShopID,
		CustomerID:     s.CustomerID,
		Subtotal:       s.Subtotal,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		TotalAmount:    s.TotalAmount,
		AmountPaid:     s.AmountPaid,
		ChangeAmount:   s.ChangeAmount,
		DebtAmount:     s.DebtAmount,
		ProfitAmount:   s.ProfitAmount,
		Status:         string(s.Status),
		PaymentStatus:  string(s.PaymentStatus),
		SaleDate:       s.SaleDate,
		SyncStatus:     string(s.SyncStatus),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			SaleItemID:     item.SaleItemID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			SellingPrice:   item.SellingPrice,
			CostPrice:      item.CostPrice,
			DiscountAmount: item.DiscountAmount,
			Subtotal:       item.Subtotal,
			Total:          item.Total,
			Profit:         item.Profit,
		})
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, SalePaymentResponse{
			SalePaymentID: p.SalePaymentID,
			PaymentMethod: p.PaymentMethod,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
		})
	}
	for _, r := range s.Refunds {
		resp.Refunds = append(resp.Refunds, SaleRefundResponse{
			SaleRefundID: r.SaleRefundID,
			Amount:       r.Amount,
			Reason:       r.Reason,
			RefundDate:   r.RefundDate,
		})
	}
	return resp
}
