package invoicerepo

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres/dberrs"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "invoice"

type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.TranslateInsert(entityName, err)
	}

	r.tracker.TrackAggregate(inv.ID(), inv)
	return nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(inv)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dberrs.TranslateRead(entityName, inv.ID(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(inv.ID(), inv)
	return nil
}

func (r *GormInvoiceRepository) AddPayment(ctx context.Context, payment *invoice.Payment) error {
	dto := paymentFromDomain(payment)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate issues SELECT ... FOR UPDATE so concurrent payments on the
// same invoice serialise on the row.
func (r *GormInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormInvoiceRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*invoice.Invoice, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead("invoice of order", orderID, err)
	}
	return r.load(ctx, dto)
}

func (r *GormInvoiceRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("invoice_number LIKE ?", prefix+"%").Count(&count).Error
	return count, err
}

// ListPendingDueBefore locks and returns PENDING invoices due before t.
// Rows locked by a running payment or return are skipped and picked up on
// the next run.
func (r *GormInvoiceRepository) ListPendingDueBefore(ctx context.Context, t time.Time) ([]*invoice.Invoice, error) {
	var dtos []InvoiceDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND due_date < ?", string(invoice.StatusPending), t).
		Order("due_date").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := r.load(ctx, dto)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// UpdateStatus writes only status, paidAt and updatedAt, and only while the
// stored status is still from. It reports whether the row changed.
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, inv *invoice.Invoice, from invoice.Status) (bool, error) {
	if err := inv.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(inv)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Where("id = ? AND status = ?", dto.ID, string(from)).
		Select("status", "paid_at", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(inv.ID(), inv)
	return true, nil
}

func (r *GormInvoiceRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberrs.TranslateRead(entityName, id, err)
	}
	return r.load(ctx, dto)
}

func (r *GormInvoiceRepository) load(ctx context.Context, dto InvoiceDTO) (*invoice.Invoice, error) {
	var payments []PaymentDTO
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", dto.ID).Order("payment_date, id").Find(&payments).Error; err != nil {
		return nil, err
	}
	return toDomain(dto, payments)
}
