// Package refund computes how much money goes back to a customer when a paid
// order is cancelled. Pure computation, no I/O.
package refund

import "beresin/models"

// Base amount sources, in priority order.
const (
	SourceTotalAmount = "totalAmount"
	SourceItems       = "items"
	SourceBasePrice   = "basePrice"
)

// Adjustments records the policy corrections applied to the base amount.
type Adjustments struct {
	SubtractAdminFee float64 `json:"subtractAdminFee,omitempty"`
	AddAdminFee      float64 `json:"addAdminFee,omitempty"`
	SubtractDiscount float64 `json:"subtractDiscount,omitempty"`
}

// Result is the full refund decision for an order snapshot.
type Result struct {
	Amount      float64             `json:"amount"`
	Source      string              `json:"source"`
	Adjustments Adjustments         `json:"adjustments"`
	Policy      models.RefundPolicy `json:"policy"`
}

// resolvePolicy merges the order-level policy with the snapshot-level policy,
// the snapshot overriding when present.
func resolvePolicy(order *models.Order) models.RefundPolicy {
	policy := models.RefundPolicy{}
	if order.RefundPolicy != nil {
		policy = *order.RefundPolicy
	}
	if order.ServiceSnapshot.RefundPolicy != nil {
		policy = *order.ServiceSnapshot.RefundPolicy
	}
	return policy
}

// CalculateRefund determines the refundable amount for an order.
//
// Base amount priority: totalAmount, then the item line totals, then
// basePrice x quantity. The admin fee is only subtracted when it was embedded
// in the base (totalAmount source) and the policy excludes it; it is only
// added when it was never embedded (item/basePrice sources) and the policy
// includes it. The result never goes below zero.
func CalculateRefund(order *models.Order) Result {
	policy := resolvePolicy(order)
	res := Result{Policy: policy}

	var base float64
	switch {
	case order.TotalAmount > 0:
		base = order.TotalAmount
		res.Source = SourceTotalAmount
	case len(order.ServiceSnapshot.Items) > 0:
		for _, item := range order.ServiceSnapshot.Items {
			base += item.LineTotal
		}
		res.Source = SourceItems
	default:
		qty := order.Quantity
		if qty < 1 {
			qty = 1
		}
		base = order.BasePrice * float64(qty)
		res.Source = SourceBasePrice
	}

	if base <= 0 {
		res.Amount = 0
		return res
	}

	if res.Source == SourceTotalAmount {
		if !policy.IncludeAdminFee {
			sub := min(order.AdminFee, base)
			base -= sub
			res.Adjustments.SubtractAdminFee = sub
		}
	} else {
		if policy.IncludeAdminFee {
			base += order.AdminFee
			res.Adjustments.AddAdminFee = order.AdminFee
		}
		if !policy.IncludeDiscount {
			sub := min(order.DiscountAmount, base)
			base -= sub
			res.Adjustments.SubtractDiscount = sub
		}
	}

	res.Amount = max(0, base)
	return res
}
