package mapping

import (
	"github.com/mauzoapp/mauzo_backend/internal/core/domain"
	"github.com/mauzoapp/mauzo_backend/internal/models"
)

// ToModelSale converts a domain Sale to a model Sale. Child collections are
// persisted separately and are not part of the sale row.
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:         d.SaleID,
		ShopID:         d.ShopID,
		CustomerID:     d.CustomerID,
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		DiscountAmount: d.DiscountAmount,
		TotalAmount:    d.TotalAmount,
		AmountPaid:     d.AmountPaid,
		ChangeAmount:   d.ChangeAmount,
		DebtAmount:     d.DebtAmount,
		ProfitAmount:   d.ProfitAmount,
		Status:         models.SaleStatus(d.Status),
		PaymentStatus:  string(d.PaymentStatus),
		SaleDate:       d.SaleDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SyncFields:     ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:         m.SaleID,
		ShopID:         m.ShopID,
		CustomerID:     m.CustomerID,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
		AmountPaid:     m.AmountPaid,
		ChangeAmount:   m.ChangeAmount,
		DebtAmount:     m.DebtAmount,
		ProfitAmount:   m.ProfitAmount,
		Status:         domain.SaleStatus(m.Status),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		SaleDate:       m.SaleDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SyncFields:     ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSaleSlice converts a slice of model Sales to domain Sales
func ToDomainSaleSlice(ms []models.Sale) []domain.Sale {
	ds := make([]domain.Sale, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSale(m)
	}
	return ds
}

// ToModelSaleItem converts a domain SaleItem to a model SaleItem
func ToModelSaleItem(d domain.SaleItem) models.SaleItem {
	return models.SaleItem{
		SaleItemID:     d.SaleItemID,
		SaleID:         d.SaleID,
		ProductID:      d.ProductID,
		ProductName:    d.ProductName,
		Quantity:       d.Quantity,
		SellingPrice:   d.SellingPrice,
		CostPrice:      d.CostPrice,
		DiscountAmount: d.DiscountAmount,
		Subtotal:       d.Subtotal,
		Total:          d.Total,
		Profit:         d.Profit,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		SyncFields:     ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSaleItem converts a model SaleItem to a domain SaleItem
func ToDomainSaleItem(m models.SaleItem) domain.SaleItem {
	return domain.SaleItem{
		SaleItemID:     m.SaleItemID,
		SaleID:         m.SaleID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Quantity:       m.Quantity,
		SellingPrice:   m.SellingPrice,
		CostPrice:      m.CostPrice,
		DiscountAmount: m.DiscountAmount,
		Subtotal:       m.Subtotal,
		Total:          m.Total,
		Profit:         m.Profit,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		SyncFields:     ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSaleItemSlice converts a slice of model SaleItems to domain SaleItems
func ToDomainSaleItemSlice(ms []models.SaleItem) []domain.SaleItem {
	ds := make([]domain.SaleItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleItem(m)
	}
	return ds
}

// ToModelSalePayment converts a domain SalePayment to a model SalePayment
func ToModelSalePayment(d domain.SalePayment) models.SalePayment {
	return models.SalePayment{
		SalePaymentID: d.SalePaymentID,
		SaleID:        d.SaleID,
		PaymentMethod: d.PaymentMethod,
		Amount:        d.Amount,
		PaymentDate:   d.PaymentDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
		SyncFields:    ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSalePayment converts a model SalePayment to a domain SalePayment
func ToDomainSalePayment(m models.SalePayment) domain.SalePayment {
	return domain.SalePayment{
		SalePaymentID: m.SalePaymentID,
		SaleID:        m.SaleID,
		PaymentMethod: m.PaymentMethod,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
		SyncFields:    ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSalePaymentSlice converts a slice of model SalePayments to domain SalePayments
func ToDomainSalePaymentSlice(ms []models.SalePayment) []domain.SalePayment {
	ds := make([]domain.SalePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalePayment(m)
	}
	return ds
}

// ToModelSaleRefund converts a domain SaleRefund to a model SaleRefund
func ToModelSaleRefund(d domain.SaleRefund) models.SaleRefund {
	return models.SaleRefund{
		SaleRefundID: d.SaleRefundID,
		SaleID:       d.SaleID,
		Amount:       d.Amount,
		Reason:       d.Reason,
		RefundDate:   d.RefundDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		SyncFields:   ToModelSyncFields(d.SyncFields),
	}
}

// ToDomainSaleRefund converts a model SaleRefund to a domain SaleRefund
func ToDomainSaleRefund(m models.SaleRefund) domain.SaleRefund {
	return domain.SaleRefund{
		SaleRefundID: m.SaleRefundID,
		SaleID:       m.SaleID,
		Amount:       m.Amount,
		Reason:       m.Reason,
		RefundDate:   m.RefundDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		SyncFields:   ToDomainSyncFields(m.SyncFields),
	}
}

// ToDomainSaleRefundSlice converts a slice of model SaleRefunds to domain SaleRefunds
func ToDomainSaleRefundSlice(ms []models.SaleRefund) []domain.SaleRefund {
	ds := make([]domain.SaleRefund, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSaleRefund(m)
	}
	return ds
}
