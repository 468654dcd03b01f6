package models

// GatewayNotification is the signed webhook payload the payment gateway posts
// after a transaction changes state.
type GatewayNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

// CheckoutResult is what createPaymentTransaction returns to the client.
type CheckoutResult struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}
