package repository

import (
	"context"

	"leadportal/internal/model"

	"gorm.io/gorm"
)

// DashboardRepository serves the counts and recent-row widgets on the admin
// landing page. Invoice aggregates come from InvoiceRepository.ListAll plus
// the revenue package, not from SQL.
type DashboardRepository interface {
	CountClients(ctx context.Context) (int64, error)
	CountLiveLeads(ctx context.Context) (int64, error)
	RecentClients(ctx context.Context, limit int) ([]model.Client, error)
	RecentLiveLeads(ctx context.Context, limit int) ([]model.LiveLead, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.Client{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *dashboardRepository) CountLiveLeads(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.LiveLead{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *dashboardRepository) RecentClients(ctx context.Context, limit int) ([]model.Client, error) {
	var clients []model.Client
	if err := GetDB(ctx, r.db).Order("created_at DESC").Limit(limit).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *dashboardRepository) RecentLiveLeads(ctx context.Context, limit int) ([]model.LiveLead, error) {
	var leads []model.LiveLead
	if err := GetDB(ctx, r.db).Preload("Client").Order("created_at DESC").Limit(limit).Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}
