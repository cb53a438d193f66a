package handler

import (
	"net/http"

	"leadportal/internal/middleware"
	"leadportal/internal/service"
	"leadportal/pkg/pagination"
	"leadportal/pkg/response"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves the client-facing portal. Every route resolves the
// client from the caller's token, so a client user can never read another
// client's records.
type PortalHandler struct {
	clientService    service.ClientService
	invoiceService   service.InvoiceService
	leadBatchService service.LeadBatchService
}

func NewPortalHandler(
	clientService service.ClientService,
	invoiceService service.InvoiceService,
	leadBatchService service.LeadBatchService,
) *PortalHandler {
	return &PortalHandler{
		clientService:    clientService,
		invoiceService:   invoiceService,
		leadBatchService: leadBatchService,
	}
}

func (h *PortalHandler) RegisterRoutes(router *gin.RouterGroup) {
	portal := router.Group("/api/client", middleware.RequireRole("admin", "client"))
	{
		portal.GET("/profile", h.GetProfile)
		portal.GET("/invoices", h.ListInvoices)
		portal.GET("/lead-batches", h.ListLeadBatches)
		portal.GET("/lead-batches/:id/leads", h.ListLeads)
	}
}

// clientID resolves the caller's client scope; admins may pass ?client_id=.
func (h *PortalHandler) clientID(c *gin.Context) string {
	if scope := middleware.ClientScope(c); scope != "" {
		return scope
	}
	return c.Query("client_id")
}

// GetProfile returns the caller's client record with grids preloaded
// @Summary      Get client profile
// @Description  Returns the authenticated client's profile, marketing channels, and sales tools
// @Tags         portal
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.Client}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/client/profile [get]
func (h *PortalHandler) GetProfile(c *gin.Context) {
	clientID := h.clientID(c)
	if clientID == "" {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No client linked to this account"))
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// ListInvoices returns the caller's invoices newest first
// @Summary      List own invoices
// @Description  Returns the authenticated client's invoices, newest issue date first
// @Tags         portal
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.InvoiceResponse}
// @Failure      403  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/client/invoices [get]
func (h *PortalHandler) ListInvoices(c *gin.Context) {
	clientID := h.clientID(c)
	if clientID == "" {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No client linked to this account"))
		return
	}

	invoices, err := h.invoiceService.ListInvoicesForClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoices))
}

// ListLeadBatches returns the caller's uploaded lead batches
// @Summary      List own lead batches
// @Description  Returns the authenticated client's lead batches, newest upload first
// @Tags         portal
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.LeadBatchResponse}
// @Failure      403  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/client/lead-batches [get]
func (h *PortalHandler) ListLeadBatches(c *gin.Context) {
	clientID := h.clientID(c)
	if clientID == "" {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No client linked to this account"))
		return
	}

	batches, err := h.leadBatchService.ListBatchesByClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, batches))
}

// ListLeads returns the rows of one of the caller's batches
// @Summary      List leads in own batch
// @Description  Returns a paginated list of lead rows for a batch owned by the authenticated client
// @Tags         portal
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Batch ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /api/client/lead-batches/{id}/leads [get]
func (h *PortalHandler) ListLeads(c *gin.Context) {
	clientID := h.clientID(c)
	if clientID == "" {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "No client linked to this account"))
		return
	}

	batch, err := h.leadBatchService.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	if batch.ClientID.String() != clientID {
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Batch does not belong to this client"))
		return
	}

	p := pagination.Parse(c)
	leads, total, err := h.leadBatchService.ListLeadsByBatch(c.Request.Context(), c.Param("id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"leads": leads,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}
