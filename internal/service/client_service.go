package service

import (
	"context"
	"fmt"
	"time"

	"leadportal/internal/model"
	"leadportal/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateClientRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	ContactName   string `json:"contact_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Status        string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Industry      string `json:"industry"`
	SalesVertical string `json:"sales_vertical"`
	Notes         string `json:"notes"`
}

type UpdateClientRequest struct {
	CompanyName   *string `json:"company_name"`
	ContactName   *string `json:"contact_name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Status        *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Industry      *string `json:"industry"`
	SalesVertical *string `json:"sales_vertical"`
	Notes         *string `json:"notes"`
}

// UpdateMarketingChannelsRequest toggles the per-client marketing grid.
// Nil fields are left untouched.
type UpdateMarketingChannelsRequest struct {
	SocialMediaAds          *bool `json:"social_media_ads"`
	PaidAds                 *bool `json:"paid_ads"`
	SEO                     *bool `json:"seo"`
	AutomatedSalesSequences *bool `json:"automated_sales_sequences"`
	SMSMarketing            *bool `json:"sms_marketing"`
	ContentMarketing        *bool `json:"content_marketing"`
	AISalesAgents           *bool `json:"ai_sales_agents"`
	ColdEmail               *bool `json:"cold_email"`
}

type UpdateSalesToolsRequest struct {
	SalesCollateral        *bool `json:"sales_collateral"`
	AutomatedOutreach      *bool `json:"automated_outreach"`
	InteractiveCalculators *bool `json:"interactive_calculators"`
	EmailTemplates         *bool `json:"email_templates"`
	ColdCallingScripts     *bool `json:"cold_calling_scripts"`
	SalesProcess           *bool `json:"sales_process"`
	CRMSystem              *bool `json:"crm_system"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, status, search string, page, limit int) ([]model.Client, int64, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error
	UpdateMarketingChannels(ctx context.Context, clientID string, req UpdateMarketingChannelsRequest) (*model.MarketingChannels, error)
	UpdateSalesTools(ctx context.Context, clientID string, req UpdateSalesToolsRequest) (*model.SalesTools, error)
}

type clientService struct {
	repo      repository.ClientRepository
	txManager repository.TransactionManager
}

func NewClientService(repo repository.ClientRepository, txManager repository.TransactionManager) ClientService {
	return &clientService{repo: repo, txManager: txManager}
}

// --- Implementation ---

// CreateClient inserts the client together with its default marketing and
// sales-tools grids so the detail page never renders a missing section.
func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*model.Client, error) {
	status := req.Status
	if status == "" {
		status = model.ClientStatusActive
	}

	clientNumber, err := s.generateClientNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate client number: %w", err)
	}

	client := &model.Client{
		ClientNumber:  clientNumber,
		CompanyName:   req.CompanyName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Status:        status,
		Phone:         req.Phone,
		Address:       req.Address,
		Industry:      req.Industry,
		SalesVertical: req.SalesVertical,
		Notes:         req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		if err := s.repo.CreateMarketingChannels(txCtx, &model.MarketingChannels{ClientID: client.ID}); err != nil {
			return fmt.Errorf("failed to create marketing channels: %w", err)
		}
		if err := s.repo.CreateSalesTools(txCtx, &model.SalesTools{ClientID: client.ID}); err != nil {
			return fmt.Errorf("failed to create sales tools: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.FindByIDWithRelations(ctx, client.ID)
}

func (s *clientService) GetClient(ctx context.Context, id string) (*model.Client, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}
	client, err := s.repo.FindByIDWithRelations(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, status, search string, page, limit int) ([]model.Client, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	clients, total, err := s.repo.List(ctx, status, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, total, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*model.Client, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}

	if req.CompanyName != nil {
		client.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Industry != nil {
		client.Industry = *req.Industry
	}
	if req.SalesVertical != nil {
		client.SalesVertical = *req.SalesVertical
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return s.repo.FindByIDWithRelations(ctx, clientID)
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	return s.repo.Delete(ctx, clientID)
}

func (s *clientService) UpdateMarketingChannels(ctx context.Context, clientID string, req UpdateMarketingChannelsRequest) (*model.MarketingChannels, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	channels := client.Marketing
	if channels == nil {
		channels = &model.MarketingChannels{ClientID: client.ID}
	}

	if req.SocialMediaAds != nil {
		channels.SocialMediaAds = *req.SocialMediaAds
	}
	if req.PaidAds != nil {
		channels.PaidAds = *req.PaidAds
	}
	if req.SEO != nil {
		channels.SEO = *req.SEO
	}
	if req.AutomatedSalesSequences != nil {
		channels.AutomatedSalesSequences = *req.AutomatedSalesSequences
	}
	if req.SMSMarketing != nil {
		channels.SMSMarketing = *req.SMSMarketing
	}
	if req.ContentMarketing != nil {
		channels.ContentMarketing = *req.ContentMarketing
	}
	if req.AISalesAgents != nil {
		channels.AISalesAgents = *req.AISalesAgents
	}
	if req.ColdEmail != nil {
		channels.ColdEmail = *req.ColdEmail
	}

	if channels.ID == uuid.Nil {
		err = s.repo.CreateMarketingChannels(ctx, channels)
	} else {
		err = s.repo.UpdateMarketingChannels(ctx, channels)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update marketing channels: %w", err)
	}
	return channels, nil
}

func (s *clientService) UpdateSalesTools(ctx context.Context, clientID string, req UpdateSalesToolsRequest) (*model.SalesTools, error) {
	client, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	tools := client.SalesTools
	if tools == nil {
		tools = &model.SalesTools{ClientID: client.ID}
	}

	if req.SalesCollateral != nil {
		tools.SalesCollateral = *req.SalesCollateral
	}
	if req.AutomatedOutreach != nil {
		tools.AutomatedOutreach = *req.AutomatedOutreach
	}
	if req.InteractiveCalculators != nil {
		tools.InteractiveCalculators = *req.InteractiveCalculators
	}
	if req.EmailTemplates != nil {
		tools.EmailTemplates = *req.EmailTemplates
	}
	if req.ColdCallingScripts != nil {
		tools.ColdCallingScripts = *req.ColdCallingScripts
	}
	if req.SalesProcess != nil {
		tools.SalesProcess = *req.SalesProcess
	}
	if req.CRMSystem != nil {
		tools.CRMSystem = *req.CRMSystem
	}

	if tools.ID == uuid.Nil {
		err = s.repo.CreateSalesTools(ctx, tools)
	} else {
		err = s.repo.UpdateSalesTools(ctx, tools)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update sales tools: %w", err)
	}
	return tools, nil
}

func (s *clientService) generateClientNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("CL-%d-", time.Now().Year())
	count, err := s.repo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}
