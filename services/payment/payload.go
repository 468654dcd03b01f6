package payment

import (
	"fmt"
	"math"

	"beresin/models"
	"beresin/utils"
)

// checkoutPayload is the gateway-neutral request both the SDK path and the
// REST fallback are built from, so the two paths cannot drift.
type checkoutPayload struct {
	OrderID       string
	GrossAmount   int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// GrossAmount resolves the charge for an order: the same base-amount priority
// as the refund calculator, plus the admin fee, minus the discount.
func GrossAmount(order *models.Order) float64 {
	var base float64
	switch {
	case order.TotalAmount > 0:
		base = order.TotalAmount
	case len(order.ServiceSnapshot.Items) > 0:
		for _, item := range order.ServiceSnapshot.Items {
			base += item.LineTotal
		}
	default:
		qty := order.Quantity
		if qty < 1 {
			qty = 1
		}
		base = order.BasePrice * float64(qty)
	}
	return base + order.AdminFee - order.DiscountAmount
}

func buildPayload(order *models.Order, customer *models.User) (*checkoutPayload, error) {
	gross := GrossAmount(order)
	if gross <= 0 {
		return nil, utils.NewAppError(utils.CodeInvalidArgument,
			fmt.Sprintf("computed gross amount %.2f is not chargeable", gross)).
			WithDetails(map[string]any{"orderId": order.ID})
	}
	return &checkoutPayload{
		OrderID:       order.ID,
		GrossAmount:   int64(math.Round(gross)),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	}, nil
}
