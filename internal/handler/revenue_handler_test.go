package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadportal/internal/service"

	"github.com/gin-gonic/gin"
)

type stubRevenueService struct {
	report service.RevenueReportResponse
	stats  service.RevenueStatsResponse
	dash   service.DashboardResponse
	err    error

	gotStart, gotEnd string
}

func (s *stubRevenueService) GetRevenueReport(ctx context.Context, startDate, endDate string) (service.RevenueReportResponse, error) {
	s.gotStart, s.gotEnd = startDate, endDate
	return s.report, s.err
}

func (s *stubRevenueService) GetRevenueStats(ctx context.Context, startDate, endDate string) (service.RevenueStatsResponse, error) {
	s.gotStart, s.gotEnd = startDate, endDate
	return s.stats, s.err
}

func (s *stubRevenueService) GetDashboard(ctx context.Context) (service.DashboardResponse, error) {
	return s.dash, s.err
}

func TestRevenueHandler_GetRevenueReport(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes date range and wraps payload", func(t *testing.T) {
		stub := &stubRevenueService{report: service.RevenueReportResponse{
			TotalSales:   3,
			TotalRevenue: "450.00",
		}}
		h := NewRevenueHandler(stub)

		r := gin.New()
		r.GET("/api/revenue/report", h.GetRevenueReport)

		req := httptest.NewRequest(http.MethodGet, "/api/revenue/report?start_date=2025-01-01&end_date=2025-06-30", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if stub.gotStart != "2025-01-01" || stub.gotEnd != "2025-06-30" {
			t.Errorf("dates = %q/%q, want query values passed through", stub.gotStart, stub.gotEnd)
		}

		var body struct {
			Status string                         `json:"status"`
			Data   service.RevenueReportResponse `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Status != "success" {
			t.Errorf("status = %q, want success", body.Status)
		}
		if body.Data.TotalSales != 3 || body.Data.TotalRevenue != "450.00" {
			t.Errorf("data = %+v", body.Data)
		}
	})

	t.Run("service error maps to 500", func(t *testing.T) {
		stub := &stubRevenueService{err: errors.New("db down")}
		h := NewRevenueHandler(stub)

		r := gin.New()
		r.GET("/api/revenue/report", h.GetRevenueReport)

		req := httptest.NewRequest(http.MethodGet, "/api/revenue/report", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestRevenueHandler_GetRevenueStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubRevenueService{stats: service.RevenueStatsResponse{
		Paid:   service.StatusBucketPoint{Count: 2, Amount: "300.00"},
		Unpaid: service.StatusBucketPoint{Count: 1, Amount: "50.00"},
	}}
	h := NewRevenueHandler(stub)

	r := gin.New()
	r.GET("/api/revenue/stats", h.GetRevenueStats)

	req := httptest.NewRequest(http.MethodGet, "/api/revenue/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data service.RevenueStatsResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.Paid.Count != 2 || body.Data.Paid.Amount != "300.00" {
		t.Errorf("paid bucket = %+v", body.Data.Paid)
	}
}

func TestRevenueHandler_GetDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubRevenueService{dash: service.DashboardResponse{
		TotalClients:  5,
		TotalRevenue:  "1000.00",
		RecentClients: []service.RecentClient{},
		RecentLeads:   []service.RecentLiveLead{},
	}}
	h := NewRevenueHandler(stub)

	r := gin.New()
	r.GET("/api/dashboard", h.GetDashboard)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data service.DashboardResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.TotalClients != 5 || body.Data.TotalRevenue != "1000.00" {
		t.Errorf("data = %+v", body.Data)
	}
}
