package service

import (
	"context"
	"fmt"
	"time"

	"leadportal/internal/repository"
	"leadportal/internal/revenue"
)

// --- DTOs ---

type ClientRevenuePoint struct {
	Name    string `json:"name"`
	Revenue string `json:"revenue"`
}

type LeadTypeRevenuePoint struct {
	LeadType string `json:"lead_type"`
	Revenue  string `json:"revenue"`
}

type MonthRevenuePoint struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue string `json:"revenue"`
}

type RevenueReportResponse struct {
	TotalSales        int                    `json:"total_sales"`
	TotalRevenue      string                 `json:"total_revenue"`
	PaidInvoices      int                    `json:"paid_invoices"`
	PaidRevenue       string                 `json:"paid_revenue"`
	UnpaidInvoices    int                    `json:"unpaid_invoices"`
	UnpaidRevenue     string                 `json:"unpaid_revenue"`
	TopClients        []ClientRevenuePoint   `json:"top_clients"`
	RevenueByLeadType []LeadTypeRevenuePoint `json:"revenue_by_lead_type"`
	MonthlyRevenue    []MonthRevenuePoint    `json:"monthly_revenue"`
}

type StatusBucketPoint struct {
	Count  int    `json:"count"`
	Amount string `json:"amount"`
}

type RevenueStatsResponse struct {
	Paid    StatusBucketPoint `json:"paid"`
	Unpaid  StatusBucketPoint `json:"unpaid"`
	Overdue StatusBucketPoint `json:"overdue"`
}

type RecentClient struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type RecentLiveLead struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	OwnerName   string `json:"owner_name"`
	ClientName  string `json:"client_name,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type DashboardResponse struct {
	TotalClients   int64            `json:"total_clients"`
	TotalLiveLeads int64            `json:"total_live_leads"`
	TotalInvoices  int              `json:"total_invoices"`
	TotalRevenue   string           `json:"total_revenue"`
	PaidInvoices   int              `json:"paid_invoices"`
	RecentClients  []RecentClient   `json:"recent_clients"`
	RecentLeads    []RecentLiveLead `json:"recent_leads"`
}

// --- Interface ---

// RevenueService pulls invoice rows and delegates all math to the revenue
// package; nothing is aggregated in SQL so the numbers match what the pure
// aggregator's tests pin down.
type RevenueService interface {
	GetRevenueReport(ctx context.Context, startDate, endDate string) (RevenueReportResponse, error)
	GetRevenueStats(ctx context.Context, startDate, endDate string) (RevenueStatsResponse, error)
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}

type revenueService struct {
	invoiceRepo   repository.InvoiceRepository
	dashboardRepo repository.DashboardRepository
}

func NewRevenueService(invoiceRepo repository.InvoiceRepository, dashboardRepo repository.DashboardRepository) RevenueService {
	return &revenueService{invoiceRepo: invoiceRepo, dashboardRepo: dashboardRepo}
}

// --- Implementation ---

const recentLimit = 5

func (s *revenueService) GetRevenueReport(ctx context.Context, startDate, endDate string) (RevenueReportResponse, error) {
	rng, start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return RevenueReportResponse{}, err
	}

	invoices, err := s.invoiceRepo.ListAll(ctx, start, end)
	if err != nil {
		return RevenueReportResponse{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	summary := revenue.Summarize(invoices, rng)

	resp := RevenueReportResponse{
		TotalSales:        summary.TotalSales,
		TotalRevenue:      summary.TotalRevenue.StringFixed(2),
		PaidInvoices:      summary.PaidInvoices,
		PaidRevenue:       summary.PaidRevenue.StringFixed(2),
		UnpaidInvoices:    summary.UnpaidInvoices,
		UnpaidRevenue:     summary.UnpaidRevenue.StringFixed(2),
		TopClients:        []ClientRevenuePoint{},
		RevenueByLeadType: []LeadTypeRevenuePoint{},
		MonthlyRevenue:    []MonthRevenuePoint{},
	}
	for _, c := range summary.TopClients {
		resp.TopClients = append(resp.TopClients, ClientRevenuePoint{Name: c.Name, Revenue: c.Revenue.StringFixed(2)})
	}
	for _, lt := range summary.RevenueByLeadType {
		resp.RevenueByLeadType = append(resp.RevenueByLeadType, LeadTypeRevenuePoint{LeadType: lt.LeadType, Revenue: lt.Revenue.StringFixed(2)})
	}
	for _, m := range summary.MonthlyRevenue {
		resp.MonthlyRevenue = append(resp.MonthlyRevenue, MonthRevenuePoint{Month: m.Month, Revenue: m.Revenue.StringFixed(2)})
	}

	return resp, nil
}

func (s *revenueService) GetRevenueStats(ctx context.Context, startDate, endDate string) (RevenueStatsResponse, error) {
	_, start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return RevenueStatsResponse{}, err
	}

	invoices, err := s.invoiceRepo.ListAll(ctx, start, end)
	if err != nil {
		return RevenueStatsResponse{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	buckets := revenue.BucketByStatus(invoices)
	return RevenueStatsResponse{
		Paid:    StatusBucketPoint{Count: buckets.Paid.Count, Amount: buckets.Paid.Amount.StringFixed(2)},
		Unpaid:  StatusBucketPoint{Count: buckets.Unpaid.Count, Amount: buckets.Unpaid.Amount.StringFixed(2)},
		Overdue: StatusBucketPoint{Count: buckets.Overdue.Count, Amount: buckets.Overdue.Amount.StringFixed(2)},
	}, nil
}

func (s *revenueService) GetDashboard(ctx context.Context) (DashboardResponse, error) {
	totalClients, err := s.dashboardRepo.CountClients(ctx)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to count clients: %w", err)
	}
	totalLiveLeads, err := s.dashboardRepo.CountLiveLeads(ctx)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to count live leads: %w", err)
	}

	invoices, err := s.invoiceRepo.ListAll(ctx, nil, nil)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	summary := revenue.Summarize(invoices, nil)

	recentClients, err := s.dashboardRepo.RecentClients(ctx, recentLimit)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch recent clients: %w", err)
	}
	recentLeads, err := s.dashboardRepo.RecentLiveLeads(ctx, recentLimit)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch recent live leads: %w", err)
	}

	resp := DashboardResponse{
		TotalClients:   totalClients,
		TotalLiveLeads: totalLiveLeads,
		TotalInvoices:  summary.TotalSales,
		TotalRevenue:   summary.TotalRevenue.StringFixed(2),
		PaidInvoices:   summary.PaidInvoices,
		RecentClients:  []RecentClient{},
		RecentLeads:    []RecentLiveLead{},
	}
	for _, c := range recentClients {
		resp.RecentClients = append(resp.RecentClients, RecentClient{
			ID:          c.ID.String(),
			CompanyName: c.CompanyName,
			ContactName: c.ContactName,
			Status:      c.Status,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, l := range recentLeads {
		lead := RecentLiveLead{
			ID:          l.ID.String(),
			CompanyName: l.CompanyName,
			OwnerName:   l.OwnerName,
			CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		}
		if l.Client != nil {
			lead.ClientName = l.Client.CompanyName
		}
		resp.RecentLeads = append(resp.RecentLeads, lead)
	}

	return resp, nil
}

// parseRange turns optional YYYY-MM-DD bounds into a revenue.Range and the
// repository filter times. The end bound is pushed to end of day so the SQL
// filter stays inclusive.
func parseRange(startDate, endDate string) (*revenue.Range, *time.Time, *time.Time, error) {
	if startDate == "" && endDate == "" {
		return nil, nil, nil, nil
	}

	var rng revenue.Range
	var start, end *time.Time

	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid start_date: %w", err)
		}
		rng.Start = parsed
		start = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid end_date: %w", err)
		}
		eod := parsed.Add(24*time.Hour - time.Nanosecond)
		rng.End = eod
		end = &eod
	}

	return &rng, start, end, nil
}
