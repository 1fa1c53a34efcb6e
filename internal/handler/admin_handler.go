package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adotefacil/service-adoption/internal/application"
	"github.com/adotefacil/service-adoption/pkg/auth"
	"github.com/adotefacil/service-adoption/pkg/middleware"
	"github.com/adotefacil/service-adoption/pkg/response"
)

// AdminHandler exposes the back-office endpoints. Every route requires
// the admin role.
type AdminHandler struct {
	animals *application.AnimalService
	users   *application.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(animals *application.AnimalService, users *application.UserService) *AdminHandler {
	return &AdminHandler{animals: animals, users: users}
}

// RegisterRoutes registers the admin routes.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/animals", h.ListAnimals)
		admin.GET("/users", h.ListUsers)
		admin.GET("/stats/animals", h.AnimalStats)
	}
}

// ListAnimals handles GET /api/v1/admin/animals. It pages over store
// listings only, external catalogs are not included.
func (h *AdminHandler) ListAnimals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	animals, total, err := h.animals.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, animals, total, page, limit)
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, users)
}

// AnimalStats handles GET /api/v1/admin/stats/animals.
func (h *AdminHandler) AnimalStats(c *gin.Context) {
	stats, err := h.animals.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
