package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leadportal/internal/model"
	"leadportal/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	ClientID         string `json:"client_id" binding:"required"`
	DateIssued       string `json:"date_issued" binding:"required"` // YYYY-MM-DD
	Quantity         int    `json:"quantity" binding:"required,min=1"`
	UnitPrice        string `json:"unit_price" binding:"required"`
	Status           string `json:"status" binding:"omitempty,oneof=Paid Unpaid Overdue"`
	PaymentMethod    string `json:"payment_method"`
	DatePaid         string `json:"date_paid"` // YYYY-MM-DD, only for Paid
	DueDate          string `json:"due_date"`
	LeadType         string `json:"lead_type"`
	OrderDescription string `json:"order_description"`
}

type UpdateInvoiceRequest struct {
	ClientID         *string `json:"client_id"`
	DateIssued       *string `json:"date_issued"`
	Quantity         *int    `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice        *string `json:"unit_price"`
	AmountPaid       *string `json:"amount_paid"`
	Status           *string `json:"status" binding:"omitempty,oneof=Paid Unpaid Overdue"`
	PaymentMethod    *string `json:"payment_method"`
	DatePaid         *string `json:"date_paid"`
	DueDate          *string `json:"due_date"`
	LeadType         *string `json:"lead_type"`
	OrderDescription *string `json:"order_description"`
}

type InvoiceFilter struct {
	Status    string
	ClientID  string
	StartDate string // YYYY-MM-DD, inclusive on date_issued
	EndDate   string
	Page      int
	Limit     int
}

type InvoiceResponse struct {
	ID               string  `json:"id"`
	InvoiceNumber    string  `json:"invoice_number"`
	ClientID         string  `json:"client_id"`
	ClientName       string  `json:"client_name"`
	DateIssued       string  `json:"date_issued"`
	Quantity         int     `json:"quantity"`
	UnitPrice        string  `json:"unit_price"`
	Amount           string  `json:"amount"`
	AmountPaid       string  `json:"amount_paid"`
	Status           string  `json:"status"`
	PaymentMethod    *string `json:"payment_method"`
	DatePaid         *string `json:"date_paid"`
	DueDate          *string `json:"due_date"`
	LeadType         *string `json:"lead_type"`
	OrderDescription *string `json:"order_description"`
	CreatedAt        string  `json:"created_at"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	ListInvoicesForClient(ctx context.Context, clientID string) ([]InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, userID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, userID, id string) error
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

const dateLayout = "2006-01-02"

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (InvoiceResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid client_id: %w", err)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("referenced client not found: %w", err)
	}

	dateIssued, err := time.Parse(dateLayout, req.DateIssued)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid date_issued: %w", err)
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid unit_price: %w", err)
	}

	status := req.Status
	if status == "" {
		status = model.InvoiceStatusUnpaid
	}

	invoice := model.Invoice{
		ClientID:   clientID,
		ClientName: client.CompanyName, // Hard copy for reporting
		DateIssued: dateIssued,
		Quantity:   req.Quantity,
		UnitPrice:  unitPrice,
		Amount:     unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
		AmountPaid: decimal.Zero,
		Status:     status,
	}

	if req.PaymentMethod != "" {
		invoice.PaymentMethod = &req.PaymentMethod
	}
	if req.LeadType != "" {
		invoice.LeadType = &req.LeadType
	}
	if req.OrderDescription != "" {
		invoice.OrderDescription = &req.OrderDescription
	}
	if req.DatePaid != "" {
		datePaid, err := time.Parse(dateLayout, req.DatePaid)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid date_paid: %w", err)
		}
		invoice.DatePaid = &datePaid
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid due_date: %w", err)
		}
		invoice.DueDate = &dueDate
	}

	invoiceNumber, err := s.generateInvoiceNumber(ctx)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to generate invoice number: %w", err)
	}
	invoice.InvoiceNumber = invoiceNumber

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Create(txCtx, &invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionCreateInvoice, &invoice, req)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found: %w", err)
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.InvoiceListFilter{
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if filter.ClientID != "" {
		clientID, err := uuid.Parse(filter.ClientID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid client_id: %w", err)
		}
		repoFilter.ClientID = &clientID
	}
	if filter.StartDate != "" {
		start, err := time.Parse(dateLayout, filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid start_date: %w", err)
		}
		repoFilter.Start = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse(dateLayout, filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid end_date: %w", err)
		}
		repoFilter.End = &end
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

// ListInvoicesForClient serves the client portal: the client_id comes from the
// caller's token, never from the request.
func (s *invoiceService) ListInvoicesForClient(ctx context.Context, clientID string) ([]InvoiceResponse, error) {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id: %w", err)
	}

	invoices, err := s.invoiceRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, id string, req UpdateInvoiceRequest) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found: %w", err)
	}

	if req.ClientID != nil {
		clientID, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid client_id: %w", err)
		}
		client, err := s.clientRepo.FindByID(ctx, clientID)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("referenced client not found: %w", err)
		}
		invoice.ClientID = clientID
		invoice.ClientName = client.CompanyName
	}
	if req.DateIssued != nil {
		dateIssued, err := time.Parse(dateLayout, *req.DateIssued)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid date_issued: %w", err)
		}
		invoice.DateIssued = dateIssued
	}
	if req.Quantity != nil {
		invoice.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		unitPrice, err := decimal.NewFromString(*req.UnitPrice)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid unit_price: %w", err)
		}
		invoice.UnitPrice = unitPrice
	}
	// Amount always tracks quantity * unit_price
	invoice.Amount = invoice.UnitPrice.Mul(decimal.NewFromInt(int64(invoice.Quantity)))

	if req.AmountPaid != nil {
		amountPaid, err := decimal.NewFromString(*req.AmountPaid)
		if err != nil {
			return InvoiceResponse{}, fmt.Errorf("invalid amount_paid: %w", err)
		}
		invoice.AmountPaid = amountPaid
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}
	if req.PaymentMethod != nil {
		invoice.PaymentMethod = optionalString(*req.PaymentMethod)
	}
	if req.LeadType != nil {
		invoice.LeadType = optionalString(*req.LeadType)
	}
	if req.OrderDescription != nil {
		invoice.OrderDescription = optionalString(*req.OrderDescription)
	}
	if req.DatePaid != nil {
		if *req.DatePaid == "" {
			invoice.DatePaid = nil
		} else {
			datePaid, err := time.Parse(dateLayout, *req.DatePaid)
			if err != nil {
				return InvoiceResponse{}, fmt.Errorf("invalid date_paid: %w", err)
			}
			invoice.DatePaid = &datePaid
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			invoice.DueDate = nil
		} else {
			dueDate, err := time.Parse(dateLayout, *req.DueDate)
			if err != nil {
				return InvoiceResponse{}, fmt.Errorf("invalid due_date: %w", err)
			}
			invoice.DueDate = &dueDate
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Update(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionUpdateInvoice, invoice, req)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, id string) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid invoice id: %w", err)
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.Delete(txCtx, invoiceID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return s.writeAudit(txCtx, userID, model.ActionDeleteInvoice, invoice, nil)
	})
}

func (s *invoiceService) generateInvoiceNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", time.Now().Year())
	count, err := s.invoiceRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (s *invoiceService) writeAudit(ctx context.Context, userID, action string, invoice *model.Invoice, payload interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   invoice.ID.String(),
		EntityName: invoice.InvoiceNumber,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// --- Helpers ---

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- Mapping ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:               inv.ID.String(),
		InvoiceNumber:    inv.InvoiceNumber,
		ClientID:         inv.ClientID.String(),
		ClientName:       inv.ClientName,
		DateIssued:       inv.DateIssued.Format(dateLayout),
		Quantity:         inv.Quantity,
		UnitPrice:        inv.UnitPrice.StringFixed(2),
		Amount:           inv.Amount.StringFixed(2),
		AmountPaid:       inv.AmountPaid.StringFixed(2),
		Status:           inv.Status,
		PaymentMethod:    inv.PaymentMethod,
		LeadType:         inv.LeadType,
		OrderDescription: inv.OrderDescription,
		CreatedAt:        inv.CreatedAt.Format(time.RFC3339),
	}

	if inv.DatePaid != nil {
		s := inv.DatePaid.Format(dateLayout)
		resp.DatePaid = &s
	}
	if inv.DueDate != nil {
		s := inv.DueDate.Format(dateLayout)
		resp.DueDate = &s
	}

	return resp
}
