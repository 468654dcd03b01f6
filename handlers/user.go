package handlers

import (
	"net/http"

	"beresin/middleware"
	usersvc "beresin/services/user"
	"beresin/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the role-upgrade operation.
type UserHandler struct {
	Service usersvc.UserService
}

func NewUserHandler(service usersvc.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// UpgradeRoleHandler handles POST /api/users/upgrade-role.
func (h *UserHandler) UpgradeRoleHandler(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(utils.CodeUnauthenticated, "caller identity missing"))
		return
	}

	if err := h.Service.UpgradeToProviderRole(c.Request.Context(), userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
