package handlers

import (
	"net/http"

	"beresin/middleware"
	ordersvc "beresin/services/order"
	"beresin/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the claim operation.
type OrderHandler struct {
	Service ordersvc.OrderService
}

func NewOrderHandler(service ordersvc.OrderService) *OrderHandler {
	return &OrderHandler{Service: service}
}

// ClaimOrderHandler handles POST /api/orders/claim. The caller is the
// provider claiming the order.
func (h *OrderHandler) ClaimOrderHandler(c *gin.Context) {
	providerID, ok := middleware.CallerID(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(utils.CodeUnauthenticated, "caller identity missing"))
		return
	}

	var input struct {
		OrderID       string `json:"orderId" binding:"required"`
		ScheduledDate string `json:"scheduledDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError(utils.CodeInvalidArgument, "orderId and scheduledDate are required"))
		return
	}

	if err := h.Service.Claim(c.Request.Context(), input.OrderID, providerID, input.ScheduledDate); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
