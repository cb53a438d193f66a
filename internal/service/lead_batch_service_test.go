package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"leadportal/internal/model"

	"github.com/google/uuid"
)

type fakeLeadBatchRepo struct {
	batches []model.LeadBatch
	leads   []model.Lead
	err     error
}

func (f *fakeLeadBatchRepo) CreateBatch(ctx context.Context, batch *model.LeadBatch) error {
	if f.err != nil {
		return f.err
	}
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	f.batches = append(f.batches, *batch)
	return nil
}

func (f *fakeLeadBatchRepo) CreateLeads(ctx context.Context, leads []model.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.leads = append(f.leads, leads...)
	return nil
}

func (f *fakeLeadBatchRepo) FindBatchByID(ctx context.Context, id uuid.UUID) (*model.LeadBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.batches {
		if f.batches[i].ID == id {
			batch := f.batches[i]
			return &batch, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeLeadBatchRepo) ListBatchesByClient(ctx context.Context, clientID uuid.UUID) ([]model.LeadBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.LeadBatch
	for _, b := range f.batches {
		if b.ClientID == clientID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeLeadBatchRepo) ListLeadsByBatch(ctx context.Context, batchID uuid.UUID, page, limit int) ([]model.Lead, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []model.Lead
	for _, l := range f.leads {
		if l.BatchID == batchID {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeadBatchRepo) CountBatchesByPrefix(ctx context.Context, prefix string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, b := range f.batches {
		if len(b.BatchID) >= len(prefix) && b.BatchID[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func TestCreateBatch(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	repo := &fakeLeadBatchRepo{}
	auditRepo := &fakeAuditRepo{}
	svc := NewLeadBatchService(repo, newFakeClientRepo(client), auditRepo, &fakeTxManager{})

	resp, err := svc.CreateBatch(context.Background(), uuid.New().String(), CreateBatchRequest{
		ClientID: client.ID.String(),
		FileName: "march-leads.csv",
		Leads: []LeadRow{
			{Company: "Lead One", Owner: "Pat", Email: "pat@one.test"},
			{Company: "Lead Two", Owner: "Sam", City: "Austin"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantID := fmt.Sprintf("LB-%d-0001", time.Now().Year())
	if resp.BatchID != wantID {
		t.Errorf("BatchID = %q, want %q", resp.BatchID, wantID)
	}
	if resp.LeadCount != 2 {
		t.Errorf("LeadCount = %d, want 2", resp.LeadCount)
	}
	if len(repo.leads) != 2 {
		t.Fatalf("stored %d leads, want 2", len(repo.leads))
	}
	if repo.leads[0].Email == nil || *repo.leads[0].Email != "pat@one.test" {
		t.Errorf("lead email = %v, want pat@one.test", repo.leads[0].Email)
	}
	if repo.leads[1].Email != nil {
		t.Error("blank email should be stored as nil")
	}
	if len(auditRepo.entries) != 1 || auditRepo.entries[0].Action != model.ActionCreateBatch {
		t.Fatalf("audit entries = %+v, want one CREATE_LEAD_BATCH", auditRepo.entries)
	}
}

func TestCreateBatchUnknownClient(t *testing.T) {
	svc := NewLeadBatchService(&fakeLeadBatchRepo{}, newFakeClientRepo(), &fakeAuditRepo{}, &fakeTxManager{})

	_, err := svc.CreateBatch(context.Background(), uuid.New().String(), CreateBatchRequest{
		ClientID: uuid.New().String(),
		FileName: "x.csv",
		Leads:    []LeadRow{{Company: "A", Owner: "B"}},
	})
	if err == nil {
		t.Error("expected error for unknown client")
	}
}

func TestListBatchesByClient(t *testing.T) {
	client := &model.Client{ID: uuid.New(), CompanyName: "Acme Corp"}
	other := &model.Client{ID: uuid.New(), CompanyName: "Beta Ltd"}
	repo := &fakeLeadBatchRepo{}
	svc := NewLeadBatchService(repo, newFakeClientRepo(client, other), &fakeAuditRepo{}, &fakeTxManager{})

	for _, c := range []*model.Client{client, other} {
		if _, err := svc.CreateBatch(context.Background(), uuid.New().String(), CreateBatchRequest{
			ClientID: c.ID.String(),
			FileName: "leads.csv",
			Leads:    []LeadRow{{Company: "A", Owner: "B"}},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	batches, err := svc.ListBatchesByClient(context.Background(), client.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batches) != 1 || batches[0].ClientID != client.ID.String() {
		t.Errorf("batches = %+v, want only the client's own", batches)
	}
}
