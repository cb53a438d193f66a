package repository

import (
	"context"

	"leadportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, status, search string, page, limit int) ([]model.Client, int64, error)
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	CreateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error
	CreateSalesTools(ctx context.Context, tools *model.SalesTools) error
	UpdateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error
	UpdateSalesTools(ctx context.Context, tools *model.SalesTools) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Client{}).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByIDWithRelations loads the client detail page payload: feature grids,
// invoices, and lead batches in one call.
func (r *clientRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).
		Preload("Marketing").
		Preload("SalesTools").
		Preload("Invoices", func(db *gorm.DB) *gorm.DB { return db.Order("date_issued DESC") }).
		Preload("LeadBatches", func(db *gorm.DB) *gorm.DB { return db.Order("upload_date DESC") }).
		First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, status, search string, page, limit int) ([]model.Client, int64, error) {
	var clients []model.Client
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Client{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	fetchQuery := db.Model(&model.Client{})
	if status != "" {
		fetchQuery = fetchQuery.Where("status = ?", status)
	}
	if search != "" {
		fetchQuery = fetchQuery.Where("company_name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := fetchQuery.Order("company_name ASC").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *clientRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Client{}).Where("client_number LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *clientRepository) CreateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error {
	return GetDB(ctx, r.db).Create(channels).Error
}

func (r *clientRepository) CreateSalesTools(ctx context.Context, tools *model.SalesTools) error {
	return GetDB(ctx, r.db).Create(tools).Error
}

func (r *clientRepository) UpdateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error {
	return GetDB(ctx, r.db).Save(channels).Error
}

func (r *clientRepository) UpdateSalesTools(ctx context.Context, tools *model.SalesTools) error {
	return GetDB(ctx, r.db).Save(tools).Error
}
