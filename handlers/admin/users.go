package admin

import (
	"strconv"

	"github.com/classpoint/classpoint/handlers"
	"github.com/classpoint/classpoint/services"
	"github.com/classpoint/classpoint/utils/middleware"
	"github.com/classpoint/classpoint/utils/response"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	identityService *services.IdentityService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(identityService *services.IdentityService) *AdminHandler {
	return &AdminHandler{identityService: identityService}
}

// ListUsers handles GET /api/v1/admin/users
// Admin-only paginated listing of all accounts with profiles preloaded
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.identityService.ListUsers(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return handlers.ServiceError(c, err)
	}

	return response.Paginated(c, users, response.CalculatePagination(page, limit, total))
}
