package repository

import (
	"context"

	"leadportal/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LiveLeadRepository interface {
	Create(ctx context.Context, lead *model.LiveLead) error
	Update(ctx context.Context, lead *model.LiveLead) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LiveLead, error)
	List(ctx context.Context, search string, clientID *uuid.UUID, page, limit int) ([]model.LiveLead, int64, error)
}

type liveLeadRepository struct {
	db *gorm.DB
}

func NewLiveLeadRepository(db *gorm.DB) LiveLeadRepository {
	return &liveLeadRepository{db: db}
}

func (r *liveLeadRepository) Create(ctx context.Context, lead *model.LiveLead) error {
	return GetDB(ctx, r.db).Create(lead).Error
}

func (r *liveLeadRepository) Update(ctx context.Context, lead *model.LiveLead) error {
	return GetDB(ctx, r.db).Save(lead).Error
}

func (r *liveLeadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.LiveLead{}).Error
}

func (r *liveLeadRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LiveLead, error) {
	var lead model.LiveLead
	if err := GetDB(ctx, r.db).Preload("Client").First(&lead, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// List searches across the contact columns the admin grid filters on.
func (r *liveLeadRepository) List(ctx context.Context, search string, clientID *uuid.UUID, page, limit int) ([]model.LiveLead, int64, error) {
	var leads []model.LiveLead
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if search != "" {
			like := "%" + search + "%"
			q = q.Where("company_name ILIKE ? OR owner_name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR mobile ILIKE ?",
				like, like, like, like, like)
		}
		if clientID != nil {
			q = q.Where("client_id = ?", *clientID)
		}
		return q
	}

	if err := apply(db.Model(&model.LiveLead{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := apply(db.Preload("Client")).
		Order("date DESC").Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}
