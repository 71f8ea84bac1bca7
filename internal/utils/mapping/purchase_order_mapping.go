package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelPurchaseOrder converts a domain PurchaseOrder to a model PurchaseOrder
func ToModelPurchaseOrder(d domain.PurchaseOrder) models.PurchaseOrder {
	return models.PurchaseOrder{
		PurchaseOrderID: d.PurchaseOrderID,
		BuyerShopID:     d.BuyerShopID,
		SellerShopID:    d.SellerShopID,
		ReferenceNumber: d.ReferenceNumber,
		Status:          models.PurchaseOrderStatus(d.Status),
		TotalAmount:     d.TotalAmount,
		TotalPaid:       d.TotalPaid,
		RejectReason:    d.RejectReason,
		ApprovedAt:      d.ApprovedAt,
		ApprovedBy:      d.ApprovedBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		SyncFields:      ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainPurchaseOrder converts a model PurchaseOrder to a domain PurchaseOrder
func ToDomainPurchaseOrder(m models.PurchaseOrder) domain.PurchaseOrder {
	return domain.PurchaseOrder{
		PurchaseOrderID: m.PurchaseOrderID,
		BuyerShopID:     m.BuyerShopID,
		SellerShopID:    m.SellerShopID,
		ReferenceNumber: m.ReferenceNumber,
		Status:          domain.PurchaseOrderStatus(m.Status),
		TotalAmount:     m.TotalAmount,
		TotalPaid:       m.TotalPaid,
		RejectReason:    m.RejectReason,
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		SyncFields:      ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainPurchaseOrderSlice converts a slice of model PurchaseOrders to domain PurchaseOrders
func ToDomainPurchaseOrderSlice(ms []models.PurchaseOrder) []domain.PurchaseOrder {
	ds := make([]domain.PurchaseOrder, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseOrder(m)
	}
	return ds
}

// ToModelPurchaseOrderItem converts a domain PurchaseOrderItem to a model PurchaseOrderItem
func ToModelPurchaseOrderItem(d domain.PurchaseOrderItem) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{
		PurchaseOrderItemID: d.PurchaseOrderItemID,
		PurchaseOrderID:     d.PurchaseOrderID,
		ProductID:           d.ProductID,
		ProductName:         d.ProductName,
		Quantity:            d.Quantity,
		UnitPrice:           d.UnitPrice,
		TotalPrice:          d.TotalPrice,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		SyncFields:          ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainPurchaseOrderItem converts a model PurchaseOrderItem to a domain PurchaseOrderItem
func ToDomainPurchaseOrderItem(m models.PurchaseOrderItem) domain.PurchaseOrderItem {
	return domain.PurchaseOrderItem{
		PurchaseOrderItemID: m.PurchaseOrderItemID,
		PurchaseOrderID:     m.PurchaseOrderID,
		ProductID:           m.ProductID,
		ProductName:         m.ProductName,
		Quantity:            m.Quantity,
		UnitPrice:           m.UnitPrice,
		TotalPrice:          m.TotalPrice,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		SyncFields:          ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainPurchaseOrderItemSlice converts a slice of model PurchaseOrderItems to domain PurchaseOrderItems
func ToDomainPurchaseOrderItemSlice(ms []models.PurchaseOrderItem) []domain.PurchaseOrderItem {
	ds := make([]domain.PurchaseOrderItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchaseOrderItem(m)
	}
	return ds
}

// ToModelPurchasePayment converts a domain PurchasePayment to a model PurchasePayment
func ToModelPurchasePayment(d domain.PurchasePayment) models.PurchasePayment {
	return models.PurchasePayment{
		PurchasePaymentID: d.PurchasePaymentID,
		PurchaseOrderID:   d.PurchaseOrderID,
		Amount:            d.Amount,
		PaymentMethod:     d.PaymentMethod,
		RecordedBy:        d.RecordedBy,
		PaymentDate:       d.PaymentDate,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		SyncFields:        ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainPurchasePayment converts a model PurchasePayment to a domain PurchasePayment
func ToDomainPurchasePayment(m models.PurchasePayment) domain.PurchasePayment {
	return domain.PurchasePayment{
		PurchasePaymentID: m.PurchasePaymentID,
		PurchaseOrderID:   m.PurchaseOrderID,
		Amount:            m.Amount,
		PaymentMethod:     m.PaymentMethod,
		RecordedBy:        m.RecordedBy,
		PaymentDate:       m.PaymentDate,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
		SyncFields:        ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainPurchasePaymentSlice converts a slice of model PurchasePayments to domain PurchasePayments
func ToDomainPurchasePaymentSlice(ms []models.PurchasePayment) []domain.PurchasePayment {
	ds := make([]domain.PurchasePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPurchasePayment(m)
	}
	return ds
}
