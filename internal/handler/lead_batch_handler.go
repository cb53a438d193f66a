package handler

import (
	"net/http"

	"leadportal/internal/middleware"
	"leadportal/internal/service"
	"leadportal/pkg/pagination"
	"leadportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeadBatchHandler struct {
	leadBatchService service.LeadBatchService
}

func NewLeadBatchHandler(leadBatchService service.LeadBatchService) *LeadBatchHandler {
	return &LeadBatchHandler{leadBatchService: leadBatchService}
}

func (h *LeadBatchHandler) RegisterRoutes(router *gin.RouterGroup) {
	batches := router.Group("/api/lead-batches", middleware.RequireRole("admin"))
	{
		batches.POST("", h.CreateBatch)
		batches.GET("", h.ListBatchesByClient)
		batches.GET("/:id", h.GetBatch)
		batches.GET("/:id/leads", h.ListLeadsByBatch)
	}
}

// CreateBatch uploads one lead file for a client
// @Summary      Create lead batch
// @Description  Stores an uploaded lead file as a batch with its rows in one transaction
// @Tags         lead-batches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateBatchRequest  true  "Create Batch Payload"
// @Success      201      {object}  response.Response{data=service.LeadBatchResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/lead-batches [post]
func (h *LeadBatchHandler) CreateBatch(c *gin.Context) {
	var req service.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	batch, err := h.leadBatchService.CreateBatch(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, batch))
}

// ListBatchesByClient lists a client's uploaded batches newest first
// @Summary      List lead batches
// @Description  Retrieves all lead batches for a client, newest upload first
// @Tags         lead-batches
// @Security     BearerAuth
// @Produce      json
// @Param        client_id  query     string  true  "Client ID"
// @Success      200        {object}  response.Response{data=[]service.LeadBatchResponse}
// @Failure      400        {object}  response.Response
// @Router       /api/lead-batches [get]
func (h *LeadBatchHandler) ListBatchesByClient(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "client_id is required"))
		return
	}

	batches, err := h.leadBatchService.ListBatchesByClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, batches))
}

// GetBatch fetches a single batch by ID
// @Summary      Get lead batch
// @Description  Fetch a single lead batch's detail by its UUID
// @Tags         lead-batches
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Batch ID"
// @Success      200  {object}  response.Response{data=model.LeadBatch}
// @Failure      404  {object}  response.Response
// @Router       /api/lead-batches/{id} [get]
func (h *LeadBatchHandler) GetBatch(c *gin.Context) {
	batch, err := h.leadBatchService.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, batch))
}

// ListLeadsByBatch returns a batch's lead rows paginated
// @Summary      List leads in batch
// @Description  Retrieves a paginated list of lead rows inside one batch
// @Tags         lead-batches
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Batch ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /api/lead-batches/{id}/leads [get]
func (h *LeadBatchHandler) ListLeadsByBatch(c *gin.Context) {
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
