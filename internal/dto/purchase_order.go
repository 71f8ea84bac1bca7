package dto

import (
	"time"

	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderItemRequest is a single line of a new purchase order.
type CreatePurchaseOrderItemRequest struct {
	ProductID   string          `json:"productID" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required,dgt0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"dgte0"`
	TotalPrice  decimal.Decimal `json:"totalPrice" binding:"dgte0"`
}

// CreatePurchaseOrderRequest defines the payload for creating a purchase order.
// Status is always forced to PENDING regardless of input.
type CreatePurchaseOrderRequest struct {
	SellerShopID    string                           `json:"sellerShopID" binding:"required"`
	ReferenceNumber string                           `json:"referenceNumber" binding:"required"`
	TotalAmount     decimal.Decimal                  `json:"totalAmount" binding:"dgte0"`
	Items           []CreatePurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RejectPurchaseOrderRequest carries the rejection reason.
type RejectPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AddPurchasePaymentRequest appends a payment to a purchase order.
type AddPurchasePaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
}

// ListPurchaseOrdersParams holds pagination parameters.
type ListPurchaseOrdersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// PurchaseOrderItemResponse defines the data returned for an order line.
type PurchaseOrderItemResponse struct {
	PurchaseOrderItemID string          `json:"purchaseOrderItemID"`
	ProductID           string          `json:"productID"`
	ProductName         string          `json:"productName"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
}

// PurchasePaymentResponse defines the data returned for a payment ledger row.
type PurchasePaymentResponse struct {
	PurchasePaymentID string          `json:"purchasePaymentID"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     string          `json:"paymentMethod"`
	RecordedBy        string          `json:"recordedBy"`
	PaymentDate       time.Time       `json:"paymentDate"`
}

// PurchaseOrderResponse defines the data returned for a purchase order.
type PurchaseOrderResponse struct {
	PurchaseOrderID string                      `json:"purchaseOrderID"`
	BuyerShopID     string                      `json:"buyerShopID"`
	SellerShopID    string                      `json:"sellerShopID"`
	ReferenceNumber string                      `json:"referenceNumber"`
	Status          string                      `json:"status"`
	TotalAmount     decimal.Decimal             `json:"totalAmount"`
	TotalPaid       decimal.Decimal             `json:"totalPaid"`
	RejectReason    string                      `json:"rejectReason,omitempty"`
	ApprovedAt      *time.Time                  `json:"approvedAt,omitempty"`
	ApprovedBy      *string                     `json:"approvedBy,omitempty"`
	SyncStatus      string                      `json:"syncStatus"`
	Items           []PurchaseOrderItemResponse `json:"items,omitempty"`
	Payments        []PurchasePaymentResponse   `json:"payments,omitempty"`
}

// ListPurchaseOrdersResponse wraps a page of orders with the continuation token.
type ListPurchaseOrdersResponse struct {
	PurchaseOrders []PurchaseOrderResponse `json:"purchaseOrders"`
	NextToken      *string                 `json:"nextToken,omitempty"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder to a DTO.
func ToPurchaseOrderResponse(po *domain.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		PurchaseOrderID: po.PurchaseOrderID,
		BuyerShopID:     po.BuyerShopID,
		SellerShopID:    po.SellerShopID,
		ReferenceNumber: po.ReferenceNumber,
		Status:          string(po.Status),
		TotalAmount:     po.TotalAmount,
		TotalPaid:       po.TotalPaid,
		RejectReason:    po.RejectReason,
		ApprovedAt:      po.ApprovedAt,
		ApprovedBy:      po.ApprovedBy,
		SyncStatus:      string(po.SyncStatus),
	}
	for _, item := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			PurchaseOrderItemID: item.PurchaseOrderItemID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			TotalPrice:          item.TotalPrice,
		})
	}
	for _, p := range po.Payments {
		resp.Payments = append(resp.Payments, PurchasePaymentResponse{
			PurchasePaymentID: p.PurchasePaymentID,
			Amount:            p.Amount,
			PaymentMethod:     p.PaymentMethod,
			RecordedBy:        p.RecordedBy,
			PaymentDate:       p.PaymentDate,
		})
	}
	return resp
}
