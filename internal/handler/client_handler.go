package handler

import (
	"net/http"

	"leadportal/internal/middleware"
	"leadportal/internal/service"
	"leadportal/pkg/pagination"
	"leadportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/api/clients", middleware.RequireRole("admin"))
	{
		clients.POST("", h.CreateClient)
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
		clients.PUT("/:id/marketing-channels", h.UpdateMarketingChannels)
		clients.PUT("/:id/sales-tools", h.UpdateSalesTools)
	}
}

// CreateClient creates a new client with default marketing and sales-tools grids
// @Summary      Create client
// @Description  Creates a new client; a client number is generated and the marketing/sales grids are seeded
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateClientRequest  true  "Create Client Payload"
// @Success      201      {object}  response.Response{data=model.Client}
// @Failure      400      {object}  response.Response
// @Router       /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, client))
}

// ListClients returns a paginated list of clients
// @Summary      List clients
// @Description  Retrieves a paginated list of clients, filterable by status and free-text search
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (Active, Inactive)"
// @Param        search  query     string  false  "Search over company, contact, email, client number"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	p := pagination.Parse(c)

	clients, total, err := h.clientService.ListClients(c.Request.Context(), c.Query("status"), c.Query("search"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"total":   total,
		"page":    p.Page,
		"limit":   p.Limit,
	}))
}

// GetClient fetches a client with its invoices, batches, and grids preloaded
// @Summary      Get client
// @Description  Fetch a single client's detail including invoices, lead batches, marketing channels and sales tools
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response{data=model.Client}
// @Failure      404  {object}  response.Response
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// UpdateClient updates a client's profile fields
// @Summary      Update client
// @Description  Updates a client's details; omitted fields are left unchanged
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true  "Client ID"
// @Param        payload  body      service.UpdateClientRequest  true  "Update Client Payload"
// @Success      200      {object}  response.Response{data=model.Client}
// @Failure      400      {object}  response.Response
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, client))
}

// DeleteClient soft deletes a client
// @Summary      Delete client
// @Description  Soft deletes a client by ID
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Client deleted successfully"))
}

// UpdateMarketingChannels toggles the client's marketing channel flags
// @Summary      Update marketing channels
// @Description  Updates the per-client marketing channel grid; omitted flags are left unchanged
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                                  true  "Client ID"
// @Param        payload  body      service.UpdateMarketingChannelsRequest  true  "Marketing Channels Payload"
// @Success      200      {object}  response.Response{data=model.MarketingChannels}
// @Failure      400      {object}  response.Response
// @Router       /api/clients/{id}/marketing-channels [put]
func (h *ClientHandler) UpdateMarketingChannels(c *gin.Context) {
	var req service.UpdateMarketingChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	channels, err := h.clientService.UpdateMarketingChannels(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, channels))
}

// UpdateSalesTools toggles the client's sales tools flags
// @Summary      Update sales tools
// @Description  Updates the per-client sales tools grid; omitted flags are left unchanged
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Client ID"
// @Param        payload  body      service.UpdateSalesToolsRequest  true  "Sales Tools Payload"
// @Success      200      {object}  response.Response{data=model.SalesTools}
// @Failure      400      {object}  response.Response
// @Router       /api/clients/{id}/sales-tools [put]
func (h *ClientHandler) UpdateSalesTools(c *gin.Context) {
	var req service.UpdateSalesToolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tools, err := h.clientService.UpdateSalesTools(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tools))
}
