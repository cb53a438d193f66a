package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"leadportal/internal/model"

	"github.com/google/uuid"
)

func newInvoiceServiceForTest(clients ...*model.Client) (InvoiceService, *fakeInvoiceRepo, *fakeAuditRepo) {
	invoiceRepo := &fakeInvoiceRepo{}
	auditRepo := &fakeAuditRepo{}
	svc := NewInvoiceService(invoiceRepo, newFakeClientRepo(clients...), auditRepo, &fakeTxManager{})
	return svc, invoiceRepo, auditRepo
}

func TestCreateInvoice(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, repo, auditRepo := newInvoiceServiceForTest(client)
	userID := uuid.New().String()

	resp, err := svc.CreateInvoice(context.Background(), userID, CreateInvoiceRequest{
		ClientID:   client.ID.String(),
		DateIssued: "2025-03-15",
		Quantity:   4,
		UnitPrice:  "25.50",
		LeadType:   "Solar",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Amount != "102.00" {
		t.Errorf("Amount = %q, want 102.00 (4 x 25.50)", resp.Amount)
	}
	if resp.Status != model.InvoiceStatusUnpaid {
		t.Errorf("Status = %q, want default %q", resp.Status, model.InvoiceStatusUnpaid)
	}
	if resp.ClientName != "Acme Corp" {
		t.Errorf("ClientName = %q, want Acme Corp", resp.ClientName)
	}
	wantNumber := fmt.Sprintf("INV-%d-0001", time.Now().Year())
	if resp.InvoiceNumber != wantNumber {
		t.Errorf("InvoiceNumber = %q, want %q", resp.InvoiceNumber, wantNumber)
	}
	if resp.LeadType == nil || *resp.LeadType != "Solar" {
		t.Errorf("LeadType = %v, want Solar", resp.LeadType)
	}

	if len(repo.invoices) != 1 {
		t.Fatalf("stored %d invoices, want 1", len(repo.invoices))
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != model.ActionCreateInvoice {
		t.Fatalf("audit entries = %+v, want one CREATE_INVOICE", auditRepo.entries)
	}
	if auditRepo.entries[0].UserID == nil || auditRepo.entries[0].UserID.String() != userID {
		t.Errorf("audit UserID = %v, want %s", auditRepo.entries[0].UserID, userID)
	}
}

func TestCreateInvoiceSequentialNumbers(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, _, _ := newInvoiceServiceForTest(client)

	req := CreateInvoiceRequest{
		ClientID:   client.ID.String(),
		DateIssued: "2025-03-15",
		Quantity:   1,
		UnitPrice:  "10",
	}

	first, err := svc.CreateInvoice(context.Background(), uuid.New().String(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.CreateInvoice(context.Background(), uuid.New().String(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	year := time.Now().Year()
	if first.InvoiceNumber != fmt.Sprintf("INV-%d-0001", year) || second.InvoiceNumber != fmt.Sprintf("INV-%d-0002", year) {
		t.Errorf("numbers = %q, %q, want sequential 0001/0002", first.InvoiceNumber, second.InvoiceNumber)
	}
}

func TestCreateInvoiceValidation(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, _, _ := newInvoiceServiceForTest(client)

	cases := []struct {
		name string
		req  CreateInvoiceRequest
	}{
		{"unknown client", CreateInvoiceRequest{ClientID: uuid.New().String(), DateIssued: "2025-03-15", Quantity: 1, UnitPrice: "10"}},
		{"malformed client id", CreateInvoiceRequest{ClientID: "nope", DateIssued: "2025-03-15", Quantity: 1, UnitPrice: "10"}},
		{"bad date", CreateInvoiceRequest{ClientID: client.ID.String(), DateIssued: "15/03/2025", Quantity: 1, UnitPrice: "10"}},
		{"bad unit price", CreateInvoiceRequest{ClientID: client.ID.String(), DateIssued: "2025-03-15", Quantity: 1, UnitPrice: "ten"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateInvoice(context.Background(), uuid.New().String(), tc.req); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUpdateInvoiceRecomputesAmount(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, _, _ := newInvoiceServiceForTest(client)

	created, err := svc.CreateInvoice(context.Background(), uuid.New().String(), CreateInvoiceRequest{
		ClientID:   client.ID.String(),
		DateIssued: "2025-03-15",
		Quantity:   2,
		UnitPrice:  "50",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quantity := 5
	updated, err := svc.UpdateInvoice(context.Background(), uuid.New().String(), created.ID, UpdateInvoiceRequest{
		Quantity: &quantity,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Amount != "250.00" {
		t.Errorf("Amount = %q, want 250.00 after quantity change", updated.Amount)
	}
}

func TestUpdateInvoiceMarkPaid(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, _, auditRepo := newInvoiceServiceForTest(client)

	created, err := svc.CreateInvoice(context.Background(), uuid.New().String(), CreateInvoiceRequest{
		ClientID:   client.ID.String(),
		DateIssued: "2025-03-15",
		Quantity:   1,
		UnitPrice:  "100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := model.InvoiceStatusPaid
	datePaid := "2025-04-01"
	method := "Bank Transfer"
	updated, err := svc.UpdateInvoice(context.Background(), uuid.New().String(), created.ID, UpdateInvoiceRequest{
		Status:        &status,
		DatePaid:      &datePaid,
		PaymentMethod: &method,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Status != model.InvoiceStatusPaid {
		t.Errorf("Status = %q, want Paid", updated.Status)
	}
	if updated.DatePaid == nil || *updated.DatePaid != "2025-04-01" {
		t.Errorf("DatePaid = %v, want 2025-04-01", updated.DatePaid)
	}
	if len(auditRepo.entries) != 2 || auditRepo.entries[1].Action != model.ActionUpdateInvoice {
		t.Fatalf("expected create + update audit entries, got %+v", auditRepo.entries)
	}
}

func TestDeleteInvoice(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	svc, repo, auditRepo := newInvoiceServiceForTest(client)

	created, err := svc.CreateInvoice(context.Background(), uuid.New().String(), CreateInvoiceRequest{
		ClientID:   client.ID.String(),
		DateIssued: "2025-03-15",
		Quantity:   1,
		UnitPrice:  "100",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteInvoice(context.Background(), uuid.New().String(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.invoices) != 0 {
		t.Errorf("stored %d invoices after delete, want 0", len(repo.invoices))
	}
	if len(auditRepo.entries) != 2 || auditRepo.entries[1].Action != model.ActionDeleteInvoice {
		t.Fatalf("expected delete audit entry, got %+v", auditRepo.entries)
	}
}

func TestListInvoicesForClient(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	other := &model.Client{ID: uuid.New(), CompanyName: "Beta Ltd"}
	svc, _, _ := newInvoiceServiceForTest(client, other)

	for _, c := range []*model.Client{client, other} {
		if _, err := svc.CreateInvoice(context.Background(), uuid.New().String(), CreateInvoiceRequest{
			ClientID:   c.ID.String(),
			DateIssued: "2025-03-15",
			Quantity:   1,
			UnitPrice:  "10",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	invoices, err := svc.ListInvoicesForClient(context.Background(), client.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ClientID != client.ID.String() {
		t.Errorf("invoices = %+v, want only the client's own", invoices)
	}

	if _, err := svc.ListInvoicesForClient(context.Background(), "not-a-uuid"); err == nil {
		t.Error("expected error for malformed client id")
	}
}
