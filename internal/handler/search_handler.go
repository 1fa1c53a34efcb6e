package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/adotefacil/service-adoption/internal/application"
	"github.com/adotefacil/service-adoption/pkg/response"
)

// SearchHandler serves the aggregated catalog queries that merge store
// listings with the external breed catalogs.
type SearchHandler struct {
	service *application.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(service *application.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// RegisterRoutes registers the aggregated query routes. All of them are
// public.
func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/animals", h.FindAll)

	search := r.Group("/api/v1/search/animals")
	{
		search.GET("/term", h.FindByTerm)
		search.GET("/category", h.FindByCategory)
		search.GET("/status", h.FindByStatus)
		search.GET("/date", h.FindByCreationDate)
	}
}

// FindAll handles GET /api/v1/animals.
func (h *SearchHandler) FindAll(c *gin.Context) {
	result, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// FindByTerm handles GET /api/v1/search/animals/term?term=...
func (h *SearchHandler) FindByTerm(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		response.BadRequest(c, "term query parameter is required")
		return
	}

	result, err := h.service.FindByTerm(c.Request.Context(), term)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// FindByCategory handles GET /api/v1/search/animals/category?category=...
func (h *SearchHandler) FindByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.BadRequest(c, "category query parameter is required")
		return
	}

	result, err := h.service.FindByCategory(c.Request.Context(), category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// FindByStatus handles GET /api/v1/search/animals/status?status=...
func (h *SearchHandler) FindByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		response.BadRequest(c, "status query parameter is required")
		return
	}

	result, err := h.service.FindByStatus(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// FindByCreationDate handles GET /api/v1/search/animals/date?date=...
// The date accepts yyyy/MM/dd or dd/MM/yyyy.
func (h *SearchHandler) FindByCreationDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date query parameter is required")
		return
	}

	result, err := h.service.FindByCreationDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
