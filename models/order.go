package models

import "time"

// Order statuses.
const (
	StatusAwaitingPayment              = "awaiting_payment"
	StatusSearchingProvider            = "searching_provider"
	StatusAwaitingProviderConfirmation = "awaiting_provider_confirmation"
	StatusPending                      = "pending"
	StatusAccepted                     = "accepted"
	StatusOngoing                      = "ongoing"
	StatusAwaitingConfirmation         = "awaiting_confirmation"
	StatusCompleted                    = "completed"
	StatusCancelled                    = "cancelled"
)

// Payment statuses, mirroring the gateway's transaction_status values.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
	PaymentCancel  = "cancel"
	PaymentDeny    = "deny"
	PaymentExpire  = "expire"
)

// Order types.
const (
	OrderTypeBasic  = "basic"
	OrderTypeDirect = "direct"
)

// ActiveStatuses is the closed set of statuses under which an order still
// occupies its provider's schedule.
var ActiveStatuses = []string{
	StatusAwaitingPayment,
	StatusPending,
	StatusAccepted,
	StatusOngoing,
	StatusAwaitingConfirmation,
	StatusAwaitingProviderConfirmation,
}

// IsActiveStatus reports whether status belongs to the active set.
func IsActiveStatus(status string) bool {
	for _, s := range ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ServiceItem is a point-in-time copy of one priced line item.
type ServiceItem struct {
	Name      string  `bson:"name" json:"name"`
	BasePrice float64 `bson:"basePrice" json:"basePrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	LineTotal float64 `bson:"lineTotal" json:"lineTotal"`
}

// RefundPolicy controls which fee components count as refundable.
type RefundPolicy struct {
	IncludeAdminFee bool `bson:"includeAdminFee" json:"includeAdminFee"`
	IncludeDiscount bool `bson:"includeDiscount" json:"includeDiscount"`
}

// ServiceSnapshot freezes the priced service at order time.
type ServiceSnapshot struct {
	Items        []ServiceItem `bson:"items" json:"items"`
	RefundPolicy *RefundPolicy `bson:"refundPolicy,omitempty" json:"refundPolicy,omitempty"`
}

// PaymentSession holds the hosted-checkout handle persisted by the gateway
// adapter. Merged onto the order so a crash after gateway acceptance is
// recoverable by reading the order back.
type PaymentSession struct {
	Token       string `bson:"token" json:"token"`
	RedirectURL string `bson:"redirectUrl" json:"redirectUrl"`
	Environment string `bson:"environment" json:"environment"`
}

// Order represents one service request.
type Order struct {
	ID              string          `bson:"id" json:"id"`
	CustomerID      string          `bson:"customerId" json:"customerId"`
	ProviderID      string          `bson:"providerId,omitempty" json:"providerId,omitempty"`
	OrderType       string          `bson:"orderType" json:"orderType"`
	Status          string          `bson:"status" json:"status"`
	ScheduledDate   string          `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	PaymentStatus   string          `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount     float64         `bson:"totalAmount" json:"totalAmount"`
	AdminFee        float64         `bson:"adminFee" json:"adminFee"`
	DiscountAmount  float64         `bson:"discountAmount" json:"discountAmount"`
	BasePrice       float64         `bson:"basePrice" json:"basePrice"`
	Quantity        int             `bson:"quantity" json:"quantity"`
	ServiceSnapshot ServiceSnapshot `bson:"serviceSnapshot" json:"serviceSnapshot"`
	RefundPolicy    *RefundPolicy   `bson:"refundPolicy,omitempty" json:"refundPolicy,omitempty"`
	Payment         *PaymentSession `bson:"payment,omitempty" json:"payment,omitempty"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the order still occupies its provider's schedule.
func (o *Order) IsActive() bool {
	return o != nil && IsActiveStatus(o.Status)
}
