package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adotefacil/service-adoption/internal/application"
	"github.com/adotefacil/service-adoption/pkg/auth"
	"github.com/adotefacil/service-adoption/pkg/middleware"
	"github.com/adotefacil/service-adoption/pkg/response"
)

// AnimalHandler handles HTTP requests for listing registration and the
// ownership-gated mutations.
type AnimalHandler struct {
	service *application.AnimalService
}

// NewAnimalHandler creates a new AnimalHandler.
func NewAnimalHandler(service *application.AnimalService) *AnimalHandler {
	return &AnimalHandler{service: service}
}

// RegisterRoutes registers all listing routes. Lookups are public;
// mutations require authentication.
func (h *AnimalHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	animals := r.Group("/api/v1/animals")
	{
		animals.GET("/:id", h.GetAnimal)
		animals.POST("", authMW, h.CreateAnimal)
		animals.PUT("/:id", authMW, h.UpdateAnimal)
		animals.DELETE("/:id", authMW, h.DeleteAnimal)
		animals.PATCH("/:id/status", authMW, h.ToggleStatus)
	}

	r.GET("/api/v1/my/animals", authMW, h.GetMyAnimals)
}

// CreateAnimal handles POST /api/v1/animals.
func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetAnimal handles GET /api/v1/animals/:id.
func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMyAnimals handles GET /api/v1/my/animals.
func (h *AnimalHandler) GetMyAnimals(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetMine(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateAnimal handles PUT /api/v1/animals/:id.
func (h *AnimalHandler) UpdateAnimal(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteAnimal handles DELETE /api/v1/animals/:id.
func (h *AnimalHandler) DeleteAnimal(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "animal deleted"})
}

// ToggleStatus handles PATCH /api/v1/animals/:id/status. It flips the
// listing between AVAILABLE and ADOPTED.
func (h *AnimalHandler) ToggleStatus(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ToggleStatus(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
