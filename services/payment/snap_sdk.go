package payment

import (
	"fmt"

	"beresin/models"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// snapCreator creates one hosted-checkout transaction. The gateway adapter
// tries the SDK implementation first, then the REST fallback.
type snapCreator interface {
	createTransaction(p *checkoutPayload) (*models.PaymentSession, error)
}

// sdkCreator drives the official Snap SDK client.
type sdkCreator struct {
	client snap.Client
	env    string
}

func newSDKCreator(serverKey string, production bool) *sdkCreator {
	envType := midtrans.Sandbox
	envName := "sandbox"
	if production {
		envType = midtrans.Production
		envName = "production"
	}
	c := &sdkCreator{env: envName}
	c.client.New(serverKey, envType)
	return c
}

func (c *sdkCreator) createTransaction(p *checkoutPayload) (*models.PaymentSession, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: p.GrossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: p.CustomerName,
			Email: p.CustomerEmail,
			Phone: p.CustomerPhone,
		},
	}

	resp, snapErr := c.client.CreateTransaction(req)
	if snapErr != nil {
		return nil, fmt.Errorf("snap sdk create transaction: %w", snapErr)
	}
	return &models.PaymentSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		Environment: c.env,
	}, nil
}
