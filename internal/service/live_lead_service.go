package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leadportal/internal/model"
	"leadportal/internal/repository"
	"leadportal/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateLiveLeadRequest struct {
	ClientID    string `json:"client_id"`
	CompanyName string `json:"company_name" binding:"required"`
	OwnerName   string `json:"owner_name" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	Industry    string `json:"industry"`
	State       string `json:"state"`
	LeadType    string `json:"lead_type"`
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
	Notes       string `json:"notes"`
}

type UpdateLiveLeadRequest struct {
	ClientID    *string `json:"client_id"`
	CompanyName *string `json:"company_name"`
	OwnerName   *string `json:"owner_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Mobile      *string `json:"mobile"`
	Industry    *string `json:"industry"`
	State       *string `json:"state"`
	LeadType    *string `json:"lead_type"`
	Date        *string `json:"date"`
	Notes       *string `json:"notes"`
}

type LiveLeadFilter struct {
	Search   string
	ClientID string
	Page     int
	Limit    int
}

// --- Interface ---

type LiveLeadService interface {
	CreateLiveLead(ctx context.Context, userID string, req CreateLiveLeadRequest) (*model.LiveLead, error)
	GetLiveLead(ctx context.Context, id string) (*model.LiveLead, error)
	ListLiveLeads(ctx context.Context, filter LiveLeadFilter) ([]model.LiveLead, int64, error)
	UpdateLiveLead(ctx context.Context, userID, id string, req UpdateLiveLeadRequest) (*model.LiveLead, error)
	DeleteLiveLead(ctx context.Context, userID, id string) error
}

type liveLeadService struct {
	repo      repository.LiveLeadRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	wsHub     *websocket.Hub
}

func NewLiveLeadService(
	repo repository.LiveLeadRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	wsHub *websocket.Hub,
) LiveLeadService {
	return &liveLeadService{repo: repo, auditRepo: auditRepo, txManager: txManager, wsHub: wsHub}
}

// --- Implementation ---

func (s *liveLeadService) CreateLiveLead(ctx context.Context, userID string, req CreateLiveLeadRequest) (*model.LiveLead, error) {
	lead := model.LiveLead{
		CompanyName: req.CompanyName,
		OwnerName:   req.OwnerName,
		Email:       optionalString(req.Email),
		Phone:       optionalString(req.Phone),
		Mobile:      optionalString(req.Mobile),
		Industry:    optionalString(req.Industry),
		State:       optionalString(req.State),
		LeadType:    optionalString(req.LeadType),
		Notes:       optionalString(req.Notes),
		Date:        time.Now(),
	}

	if req.ClientID != "" {
		clientID, err := uuid.Parse(req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("invalid client_id: %w", err)
		}
		lead.ClientID = &clientID
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		lead.Date = date
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, &lead); err != nil {
			return fmt.Errorf("failed to create live lead: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionCreateLiveLead, &lead)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("live_lead.created", &lead)
	return &lead, nil
}

func (s *liveLeadService) GetLiveLead(ctx context.Context, id string) (*model.LiveLead, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid live lead id: %w", err)
	}
	lead, err := s.repo.FindByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("live lead not found: %w", err)
	}
	return lead, nil
}

func (s *liveLeadService) ListLiveLeads(ctx context.Context, filter LiveLeadFilter) ([]model.LiveLead, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	var clientID *uuid.UUID
	if filter.ClientID != "" {
		parsed, err := uuid.Parse(filter.ClientID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid client_id: %w", err)
		}
		clientID = &parsed
	}

	leads, total, err := s.repo.List(ctx, filter.Search, clientID, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch live leads: %w", err)
	}
	return leads, total, nil
}

func (s *liveLeadService) UpdateLiveLead(ctx context.Context, userID, id string, req UpdateLiveLeadRequest) (*model.LiveLead, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid live lead id: %w", err)
	}

	lead, err := s.repo.FindByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("live lead not found: %w", err)
	}

	if req.ClientID != nil {
		if *req.ClientID == "" {
			lead.ClientID = nil
		} else {
			clientID, err := uuid.Parse(*req.ClientID)
			if err != nil {
				return nil, fmt.Errorf("invalid client_id: %w", err)
			}
			lead.ClientID = &clientID
		}
	}
	if req.CompanyName != nil {
		lead.CompanyName = *req.CompanyName
	}
	if req.OwnerName != nil {
		lead.OwnerName = *req.OwnerName
	}
	if req.Email != nil {
		lead.Email = optionalString(*req.Email)
	}
	if req.Phone != nil {
		lead.Phone = optionalString(*req.Phone)
	}
	if req.Mobile != nil {
		lead.Mobile = optionalString(*req.Mobile)
	}
	if req.Industry != nil {
		lead.Industry = optionalString(*req.Industry)
	}
	if req.State != nil {
		lead.State = optionalString(*req.State)
	}
	if req.LeadType != nil {
		lead.LeadType = optionalString(*req.LeadType)
	}
	if req.Notes != nil {
		lead.Notes = optionalString(*req.Notes)
	}
	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		lead.Date = date
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, lead); err != nil {
			return fmt.Errorf("failed to update live lead: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionUpdateLiveLead, lead)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("live_lead.updated", lead)
	return lead, nil
}

func (s *liveLeadService) DeleteLiveLead(ctx context.Context, userID, id string) error {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid live lead id: %w", err)
	}

	lead, err := s.repo.FindByID(ctx, leadID)
	if err != nil {
		return fmt.Errorf("live lead not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, leadID); err != nil {
			return fmt.Errorf("failed to delete live lead: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionDeleteLiveLead, lead)
	})
}

// broadcast pushes a lead event to connected dashboards. Best effort: a full
// or absent hub never fails the request.
func (s *liveLeadService) broadcast(event string, lead *model.LiveLead) {
	if s.wsHub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type": event,
		"data": lead,
	})
	if err != nil {
		return
	}
	s.wsHub.Broadcast <- payload
}

func (s *liveLeadService) writeAudit(ctx context.Context, userID, action string, lead *model.LiveLead) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(lead)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   lead.ID.String(),
		EntityName: lead.CompanyName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
