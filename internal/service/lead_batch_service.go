package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leadportal/internal/model"
	"leadportal/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type LeadRow struct {
	Company      string `json:"company" binding:"required"`
	Owner        string `json:"owner" binding:"required"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email" binding:"omitempty,email"`
	Industry     string `json:"industry"`
	CompanyPhone string `json:"company_phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Website      string `json:"website"`
	JobTitle     string `json:"job_title"`
	WorkPhone    string `json:"work_phone"`
}

type CreateBatchRequest struct {
	ClientID string    `json:"client_id" binding:"required,uuid"`
	FileName string    `json:"file_name" binding:"required"`
	Leads    []LeadRow `json:"leads" binding:"required,min=1,dive"`
}

type LeadBatchResponse struct {
	ID         string `json:"id"`
	BatchID    string `json:"batch_id"`
	FileName   string `json:"file_name"`
	ClientID   string `json:"client_id"`
	UploadDate string `json:"upload_date"`
	LeadCount  int    `json:"lead_count"`
}

// --- Interface ---

type LeadBatchService interface {
	CreateBatch(ctx context.Context, userID string, req CreateBatchRequest) (*LeadBatchResponse, error)
	GetBatch(ctx context.Context, id string) (*model.LeadBatch, error)
	ListBatchesByClient(ctx context.Context, clientID string) ([]LeadBatchResponse, error)
	ListLeadsByBatch(ctx context.Context, batchID string, page, limit int) ([]model.Lead, int64, error)
}

type leadBatchService struct {
	repo       repository.LeadBatchRepository
	clientRepo repository.ClientRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
}

func NewLeadBatchService(
	repo repository.LeadBatchRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) LeadBatchService {
	return &leadBatchService{repo: repo, clientRepo: clientRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

// CreateBatch stores the uploaded lead file as one batch plus its rows, all in
// a single transaction so a failed bulk insert never leaves an empty batch.
func (s *leadBatchService) CreateBatch(ctx context.Context, userID string, req CreateBatchRequest) (*LeadBatchResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return nil, fmt.Errorf("client not found: %w", err)
	}

	batchID, err := s.generateBatchID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch id: %w", err)
	}

	batch := &model.LeadBatch{
		BatchID:    batchID,
		FileName:   req.FileName,
		ClientID:   clientID,
		UploadDate: time.Now(),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateBatch(txCtx, batch); err != nil {
			return fmt.Errorf("failed to create lead batch: %w", err)
		}

		leads := make([]model.Lead, 0, len(req.Leads))
		for _, row := range req.Leads {
			leads = append(leads, model.Lead{
				BatchID:      batch.ID,
				Company:      row.Company,
				Owner:        row.Owner,
				Mobile:       optionalString(row.Mobile),
				Email:        optionalString(row.Email),
				Industry:     optionalString(row.Industry),
				CompanyPhone: optionalString(row.CompanyPhone),
				Address:      optionalString(row.Address),
				City:         optionalString(row.City),
				State:        optionalString(row.State),
				ZipCode:      optionalString(row.ZipCode),
				Website:      optionalString(row.Website),
				JobTitle:     optionalString(row.JobTitle),
				WorkPhone:    optionalString(row.WorkPhone),
			})
		}
		if err := s.repo.CreateLeads(txCtx, leads); err != nil {
			return fmt.Errorf("failed to create leads: %w", err)
		}

		return s.writeAudit(txCtx, userID, batch, len(leads))
	})
	if err != nil {
		return nil, err
	}

	resp := toLeadBatchResponse(batch)
	resp.LeadCount = len(req.Leads)
	return &resp, nil
}

func (s *leadBatchService) GetBatch(ctx context.Context, id string) (*model.LeadBatch, error) {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid batch id: %w", err)
	}
	batch, err := s.repo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("lead batch not found: %w", err)
	}
	return batch, nil
}

func (s *leadBatchService) ListBatchesByClient(ctx context.Context, clientID string) ([]LeadBatchResponse, error) {
	parsed, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	batches, err := s.repo.ListBatchesByClient(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead batches: %w", err)
	}

	res := make([]LeadBatchResponse, 0, len(batches))
	for i := range batches {
		res = append(res, toLeadBatchResponse(&batches[i]))
	}
	return res, nil
}

func (s *leadBatchService) ListLeadsByBatch(ctx context.Context, batchID string, page, limit int) ([]model.Lead, int64, error) {
	parsed, err := uuid.Parse(batchID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid batch id: %w", err)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	leads, total, err := s.repo.ListLeadsByBatch(ctx, parsed, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch leads: %w", err)
	}
	return leads, total, nil
}

func (s *leadBatchService) generateBatchID(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("LB-%d-", time.Now().Year())
	count, err := s.repo.CountBatchesByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (s *leadBatchService) writeAudit(ctx context.Context, userID string, batch *model.LeadBatch, leadCount int) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(map[string]interface{}{
		"batch_id":   batch.BatchID,
		"file_name":  batch.FileName,
		"client_id":  batch.ClientID.String(),
		"lead_count": leadCount,
	})
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     model.ActionCreateBatch,
		EntityID:   batch.BatchID,
		EntityName: batch.FileName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func toLeadBatchResponse(batch *model.LeadBatch) LeadBatchResponse {
	return LeadBatchResponse{
		ID:         batch.ID.String(),
		BatchID:    batch.BatchID,
		FileName:   batch.FileName,
		ClientID:   batch.ClientID.String(),
		UploadDate: batch.UploadDate.Format(dateLayout),
	}
}
