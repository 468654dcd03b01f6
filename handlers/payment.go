package handlers

import (
	"net/http"

	"beresin/middleware"
	"beresin/models"
	"beresin/services/payment"
	"beresin/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes checkout creation and the gateway webhook.
type PaymentHandler struct {
	Gateway *payment.GatewayAdapter
}

func NewPaymentHandler(gateway *payment.GatewayAdapter) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway}
}

// CreateTransactionHandler handles POST /api/payments/transaction.
func (h *PaymentHandler) CreateTransactionHandler(c *gin.Context) {
	customerID, ok := middleware.CallerID(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(utils.CodeUnauthenticated, "caller identity missing"))
		return
	}

	var input struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError(utils.CodeInvalidArgument, "orderId is required"))
		return
	}

	result, err := h.Gateway.CreateTransaction(c.Request.Context(), input.OrderID, customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// NotificationHandler handles POST /api/payments/notification, the gateway's
// signed webhook. The gateway redelivers on non-2xx, so internal failures
// return 500 and successes 200 even when the notification was a no-op.
func (h *PaymentHandler) NotificationHandler(c *gin.Context) {
	var n models.GatewayNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		utils.RespondError(c, utils.NewAppError(utils.CodeInvalidArgument, "malformed notification payload"))
		return
	}

	if err := h.Gateway.ProcessNotification(c.Request.Context(), &n); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
