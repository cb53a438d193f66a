package service

import (
	"context"
	"errors"
	"time"

	"leadportal/internal/model"
	"leadportal/internal/repository"

	"github.com/google/uuid"
)

var errNotFound = errors.New("record not found")

// fakeTxManager runs the callback directly; transaction semantics are covered
// by the real gorm-backed manager.
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeInvoiceRepo struct {
	invoices []model.Invoice
	err      error
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error {
	if f.err != nil {
		return f.err
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now()
	f.invoices = append(f.invoices, *invoice)
	return nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, invoice *model.Invoice) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == invoice.ID {
			f.invoices[i] = *invoice
			return nil
		}
	}
	return errNotFound
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices = append(f.invoices[:i], f.invoices[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			inv := f.invoices[i]
			return &inv, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceListFilter) ([]model.Invoice, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.invoices, int64(len(f.invoices)), nil
}

func (f *fakeInvoiceRepo) ListAll(ctx context.Context, start, end *time.Time) ([]model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.invoices, nil
}

func (f *fakeInvoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, inv := range f.invoices {
		if len(inv.InvoiceNumber) >= len(prefix) && inv.InvoiceNumber[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
	err     error
}

func newFakeClientRepo(clients ...*model.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
	for _, c := range clients {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(ctx context.Context, client *model.Client) error {
	if f.err != nil {
		return f.err
	}
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) Update(ctx context.Context, client *model.Client) error {
	if f.err != nil {
		return f.err
	}
	f.clients[client.ID] = client
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	client, ok := f.clients[id]
	if !ok {
		return nil, errNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeClientRepo) List(ctx context.Context, status, search string, page, limit int) ([]model.Client, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []model.Client
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeClientRepo) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for _, c := range f.clients {
		if len(c.ClientNumber) >= len(prefix) && c.ClientNumber[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (f *fakeClientRepo) CreateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error {
	if channels.ID == uuid.Nil {
		channels.ID = uuid.New()
	}
	if c, ok := f.clients[channels.ClientID]; ok {
		c.Marketing = channels
	}
	return f.err
}

func (f *fakeClientRepo) CreateSalesTools(ctx context.Context, tools *model.SalesTools) error {
	if tools.ID == uuid.Nil {
		tools.ID = uuid.New()
	}
	if c, ok := f.clients[tools.ClientID]; ok {
		c.SalesTools = tools
	}
	return f.err
}

func (f *fakeClientRepo) UpdateMarketingChannels(ctx context.Context, channels *model.MarketingChannels) error {
	return f.err
}

func (f *fakeClientRepo) UpdateSalesTools(ctx context.Context, tools *model.SalesTools) error {
	return f.err
}

type fakeAuditRepo struct {
	entries []*model.AuditLog
	err     error
}

func (f *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var out []model.AuditLog
	for _, e := range f.entries {
		if action == "" || e.Action == action {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

type fakeDashboardRepo struct {
	clientCount   int64
	liveLeadCount int64
	recentClients []model.Client
	recentLeads   []model.LiveLead
	err           error
}

func (f *fakeDashboardRepo) CountClients(ctx context.Context) (int64, error) {
	return f.clientCount, f.err
}

func (f *fakeDashboardRepo) CountLiveLeads(ctx context.Context) (int64, error) {
	return f.liveLeadCount, f.err
}

func (f *fakeDashboardRepo) RecentClients(ctx context.Context, limit int) ([]model.Client, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recentClients, nil
}

func (f *fakeDashboardRepo) RecentLiveLeads(ctx context.Context, limit int) ([]model.LiveLead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recentLeads, nil
}
