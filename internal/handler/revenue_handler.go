package handler

import (
	"net/http"

	"leadportal/internal/middleware"
	"leadportal/internal/service"
	"leadportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type RevenueHandler struct {
	revenueService service.RevenueService
}

func NewRevenueHandler(revenueService service.RevenueService) *RevenueHandler {
	return &RevenueHandler{revenueService: revenueService}
}

func (h *RevenueHandler) RegisterRoutes(router *gin.RouterGroup) {
	revenue := router.Group("/api/revenue", middleware.RequireRole("admin"))
	{
		revenue.GET("/report", h.GetRevenueReport)
		revenue.GET("/stats", h.GetRevenueStats)
	}

	router.GET("/api/dashboard", middleware.RequireRole("admin"), h.GetDashboard)
}

// GetRevenueReport returns the full revenue summary
// @Summary      Get revenue report
// @Description  Returns totals, paid/unpaid splits, top clients, lead-type breakdown, and monthly series over the optional issue-date range
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Issue date lower bound (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Issue date upper bound (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.RevenueReportResponse}
// @Failure      400         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /api/revenue/report [get]
func (h *RevenueHandler) GetRevenueReport(c *gin.Context) {
	report, err := h.revenueService.GetRevenueReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetRevenueStats returns invoice counts and amounts per status bucket
// @Summary      Get revenue stats
// @Description  Returns invoice counts and total amounts split into paid, unpaid, and overdue buckets
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Param        start_date  query     string  false  "Issue date lower bound (YYYY-MM-DD)"
// @Param        end_date    query     string  false  "Issue date upper bound (YYYY-MM-DD)"
// @Success      200         {object}  response.Response{data=service.RevenueStatsResponse}
// @Failure      500         {object}  response.Response
// @Router       /api/revenue/stats [get]
func (h *RevenueHandler) GetRevenueStats(c *gin.Context) {
	stats, err := h.revenueService.GetRevenueStats(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetDashboard returns the admin dashboard overview
// @Summary      Get dashboard
// @Description  Returns headline counts, revenue totals, and recent clients and live leads
// @Tags         revenue
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.DashboardResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard [get]
func (h *RevenueHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.revenueService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}
