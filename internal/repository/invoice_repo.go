package repository

import (
	"context"
	"time"

	"leadportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceListFilter narrows the paginated invoice listing.
type InvoiceListFilter struct {
	Status   string
	ClientID *uuid.UUID
	Start    *time.Time // inclusive, on date_issued
	End      *time.Time // inclusive, on date_issued
	Page     int
	Limit    int
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error)
	ListAll(ctx context.Context, start, end *time.Time) ([]model.Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Invoice, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Save(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).Preload("Client").First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.ClientID != nil {
			q = q.Where("client_id = ?", *filter.ClientID)
		}
		if filter.Start != nil {
			q = q.Where("date_issued >= ?", *filter.Start)
		}
		if filter.End != nil {
			q = q.Where("date_issued <= ?", *filter.End)
		}
		return q
	}

	if err := apply(db.Model(&model.Invoice{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Preload("Client")).
		Order("date_issued DESC").Offset(offset).Limit(filter.Limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// ListAll returns every invoice inside the optional inclusive issue-date range.
// Used by the revenue service, which aggregates in memory.
func (r *invoiceRepository) ListAll(ctx context.Context, start, end *time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	query := GetDB(ctx, r.db).Model(&model.Invoice{})
	if start != nil {
		query = query.Where("date_issued >= ?", *start)
	}
	if end != nil {
		query = query.Where("date_issued <= ?", *end)
	}
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("date_issued DESC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Invoice{}).Where("invoice_number LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
