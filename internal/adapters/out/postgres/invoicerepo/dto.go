package invoicerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO is the invoices row. order_id and invoice_number are unique.
type InvoiceDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceNumber    string          `gorm:"size:32;not null;uniqueIndex"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Subtotal         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Tax              decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ReturnAdjustment decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DueDate          time.Time       `gorm:"not null;index"`
	Status           string          `gorm:"size:20;not null;index"`
	PaidAt           *time.Time
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

// PaymentDTO is a payments row.
type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method        string          `gorm:"size:32;not null"`
	TransactionID string          `gorm:"size:128"`
	CollectedBy   *uuid.UUID      `gorm:"type:uuid"`
	PaymentDate   time.Time       `gorm:"not null"`
	Notes         string          `gorm:"type:text"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:               inv.ID().Bytes(),
		InvoiceNumber:    inv.Number(),
		OrderID:          inv.OrderID().Bytes(),
		Subtotal:         inv.Subtotal(),
		Discount:         inv.Discount(),
		Tax:              inv.Tax(),
		ReturnAdjustment: inv.ReturnAdjustment(),
		TotalAmount:      inv.TotalAmount(),
		DueDate:          inv.DueDate(),
		Status:           string(inv.Status()),
		PaidAt:           inv.PaidAt(),
		CreatedAt:        inv.CreatedAt(),
		UpdatedAt:        inv.UpdatedAt(),
	}
}

func paymentFromDomain(p *invoice.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID.Bytes(),
		InvoiceID:     p.InvoiceID.Bytes(),
		Amount:        p.Amount,
		Method:        p.Method,
		TransactionID: p.TransactionID,
		CollectedBy:   kernel.OptionalBytes(p.CollectedBy),
		PaymentDate:   p.PaymentDate,
		Notes:         p.Notes,
	}
}

func toDomain(dto InvoiceDTO, paymentDTOs []PaymentDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}

	payments := make([]*invoice.Payment, 0, len(paymentDTOs))
	for _, p := range paymentDTOs {
		paymentID, pErr := kernel.UUIDFromGoogle(p.ID)
		if pErr != nil {
			return nil, pErr
		}
		collectedBy, pErr := kernel.OptionalUUIDFromGoogle(p.CollectedBy)
		if pErr != nil {
			return nil, pErr
		}
		payments = append(payments, &invoice.Payment{
			ID:            paymentID,
			InvoiceID:     id,
			Amount:        p.Amount,
			Method:        p.Method,
			TransactionID: p.TransactionID,
			CollectedBy:   collectedBy,
			PaymentDate:   p.PaymentDate,
			Notes:         p.Notes,
		})
	}

	return invoice.RestoreInvoice(invoice.Snapshot{
		ID:               id,
		Number:           dto.InvoiceNumber,
		OrderID:          orderID,
		Subtotal:         dto.Subtotal,
		Discount:         dto.Discount,
		Tax:              dto.Tax,
		ReturnAdjustment: dto.ReturnAdjustment,
		TotalAmount:      dto.TotalAmount,
		DueDate:          dto.DueDate,
		Status:           invoice.Status(dto.Status),
		PaidAt:           dto.PaidAt,
		Payments:         payments,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	}), nil
}
