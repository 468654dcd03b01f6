package payment

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"beresin/models"
)

const (
	snapSandboxURL    = "https://app.sandbox.midtrans.com/snap/v1/transactions"
	snapProductionURL = "https://app.midtrans.com/snap/v1/transactions"
)

// restCreator is the fallback path: a raw signed POST against the Snap REST
// endpoint. It deliberately does not share the SDK's transport so an SDK-level
// failure cannot take both paths down.
type restCreator struct {
	serverKey  string
	endpoint   string
	env        string
	httpClient *http.Client
}

func newRESTCreator(serverKey string, production bool) *restCreator {
	endpoint := snapSandboxURL
	envName := "sandbox"
	if production {
		endpoint = snapProductionURL
		envName = "production"
	}
	return &restCreator{
		serverKey:  serverKey,
		endpoint:   endpoint,
		env:        envName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *restCreator) createTransaction(p *checkoutPayload) (*models.PaymentSession, error) {
	body := map[string]any{
		"transaction_details": map[string]any{
			"order_id":     p.OrderID,
			"gross_amount": p.GrossAmount,
		},
		"customer_details": map[string]any{
			"first_name": p.CustomerName,
			"email":      p.CustomerEmail,
			"phone":      p.CustomerPhone,
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal snap request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build snap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("snap rest call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snap response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("snap rest call returned %d: %s", resp.StatusCode, respBody)
	}

	var parsed struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode snap response: %w", err)
	}
	if parsed.Token == "" {
		return nil, fmt.Errorf("snap rest call returned no token")
	}

	return &models.PaymentSession{
		Token:       parsed.Token,
		RedirectURL: parsed.RedirectURL,
		Environment: c.env,
	}, nil
}
