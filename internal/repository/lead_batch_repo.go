package repository

import (
	"context"

	"leadportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadBatchRepository interface {
	CreateBatch(ctx context.Context, batch *model.LeadBatch) error
	CreateLeads(ctx context.Context, leads []model.Lead) error
	FindBatchByID(ctx context.Context, id uuid.UUID) (*model.LeadBatch, error)
	ListBatchesByClient(ctx context.Context, clientID uuid.UUID) ([]model.LeadBatch, error)
	ListLeadsByBatch(ctx context.Context, batchID uuid.UUID, page, limit int) ([]model.Lead, int64, error)
	CountBatchesByPrefix(ctx context.Context, prefix string) (int64, error)
}

type leadBatchRepository struct {
	db *gorm.DB
}

func NewLeadBatchRepository(db *gorm.DB) LeadBatchRepository {
	return &leadBatchRepository{db: db}
}

func (r *leadBatchRepository) CreateBatch(ctx context.Context, batch *model.LeadBatch) error {
	return GetDB(ctx, r.db).Create(batch).Error
}

func (r *leadBatchRepository) CreateLeads(ctx context.Context, leads []model.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&leads).Error
}

func (r *leadBatchRepository) FindBatchByID(ctx context.Context, id uuid.UUID) (*model.LeadBatch, error) {
	var batch model.LeadBatch
	if err := GetDB(ctx, r.db).Preload("Client").First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *leadBatchRepository) ListBatchesByClient(ctx context.Context, clientID uuid.UUID) ([]model.LeadBatch, error) {
	var batches []model.LeadBatch
	if err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("upload_date DESC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *leadBatchRepository) ListLeadsByBatch(ctx context.Context, batchID uuid.UUID, page, limit int) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Lead{}).Where("batch_id = ?", batchID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("batch_id = ?", batchID).
		Order("company ASC").Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *leadBatchRepository) CountBatchesByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.LeadBatch{}).Where("batch_id LIKE ?", prefix+"%").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
