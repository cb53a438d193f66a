package handler

import (
	"net/http"
	"strconv"

	"leadportal/internal/middleware"
	"leadportal/internal/service"
	"leadportal/pkg/response"

	"github.com/gin-gonic/gin"
)

type LiveLeadHandler struct {
	liveLeadService service.LiveLeadService
}

func NewLiveLeadHandler(liveLeadService service.LiveLeadService) *LiveLeadHandler {
	return &LiveLeadHandler{liveLeadService: liveLeadService}
}

func (h *LiveLeadHandler) RegisterRoutes(router *gin.RouterGroup) {
	leads := router.Group("/api/live-leads", middleware.RequireRole("admin"))
	{
		leads.POST("", h.CreateLiveLead)
		leads.GET("", h.ListLiveLeads)
		leads.GET("/:id", h.GetLiveLead)
		leads.PUT("/:id", h.UpdateLiveLead)
		leads.DELETE("/:id", h.DeleteLiveLead)
	}
}

// CreateLiveLead records an incoming live lead and broadcasts it to dashboards
// @Summary      Create live lead
// @Description  Records a live lead, optionally routed to a client, and pushes it to connected dashboards
// @Tags         live-leads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLiveLeadRequest  true  "Create Live Lead Payload"
// @Success      201      {object}  response.Response{data=model.LiveLead}
// @Failure      400      {object}  response.Response
// @Router       /api/live-leads [post]
func (h *LiveLeadHandler) CreateLiveLead(c *gin.Context) {
	var req service.CreateLiveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	lead, err := h.liveLeadService.CreateLiveLead(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lead))
}

// ListLiveLeads returns a paginated, searchable list of live leads
// @Summary      List live leads
// @Description  Retrieves live leads newest first, searchable across company, owner, email, state, and lead type
// @Tags         live-leads
// @Security     BearerAuth
// @Produce      json
// @Param        search     query     string  false  "Free-text search"
// @Param        client_id  query     string  false  "Filter by routed client"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Number of items per page (default 10)"
// @Success      200        {object}  response.Response{data=object}
// @Failure      500        {object}  response.Response
// @Router       /api/live-leads [get]
func (h *LiveLeadHandler) ListLiveLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := service.LiveLeadFilter{
		Search:   c.Query("search"),
		ClientID: c.Query("client_id"),
		Page:     page,
		Limit:    limit,
	}

	leads, total, err := h.liveLeadService.ListLiveLeads(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"leads": leads,
		"total": total,
		"page":  page,
		"limit": limit,
	}))
}

// GetLiveLead fetches a single live lead by ID
// @Summary      Get live lead
// @Description  Fetch a single live lead's detail by its UUID
// @Tags         live-leads
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Live Lead ID"
// @Success      200  {object}  response.Response{data=model.LiveLead}
// @Failure      404  {object}  response.Response
// @Router       /api/live-leads/{id} [get]
func (h *LiveLeadHandler) GetLiveLead(c *gin.Context) {
	lead, err := h.liveLeadService.GetLiveLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lead))
}

// UpdateLiveLead updates a live lead and broadcasts the change
// @Summary      Update live lead
// @Description  Updates a live lead; omitted fields are left unchanged
// @Tags         live-leads
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Live Lead ID"
// @Param        payload  body      service.UpdateLiveLeadRequest  true  "Update Live Lead Payload"
// @Success      200      {object}  response.Response{data=model.LiveLead}
// @Failure      400      {object}  response.Response
// @Router       /api/live-leads/{id} [put]
func (h *LiveLeadHandler) UpdateLiveLead(c *gin.Context) {
	var req service.UpdateLiveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	lead, err := h.liveLeadService.UpdateLiveLead(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lead))
}

// DeleteLiveLead removes a live lead
// @Summary      Delete live lead
// @Description  Deletes a live lead by ID
// @Tags         live-leads
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Live Lead ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/live-leads/{id} [delete]
func (h *LiveLeadHandler) DeleteLiveLead(c *gin.Context) {
	if err := h.liveLeadService.DeleteLiveLead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Live lead deleted successfully"))
}
