package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SessionRequest carries everything the hosted checkout page needs.
type SessionRequest struct {
	Amount        float64
	TransactionID string

	ProductName     string
	ProductCategory string

	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string

	SuccessURL string
	FailURL    string
	CancelURL  string
}

// Gateway creates a hosted checkout session and returns the URL the
// payer must be redirected to.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (string, error)
}

// Client talks to an SSLCommerz-compatible session API.
type Client struct {
	storeID       string
	storePassword string
	endpoint      string
	httpClient    *http.Client
}

func NewClient(storeID, storePassword, endpoint string) *Client {
	return &Client{
		storeID:       storeID,
		storePassword: storePassword,
		endpoint:      endpoint,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", "BDT")
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("shipping_method", "NO")
	form.Set("product_name", req.ProductName)
	form.Set("product_category", req.ProductCategory)
	form.Set("product_profile", "non-physical-goods")
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", req.CustomerAddress)
	form.Set("cus_city", req.CustomerCity)
	form.Set("cus_country", "Bangladesh")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("gateway response decode: %w", err)
	}
	if !strings.EqualFold(session.Status, "SUCCESS") || session.GatewayPageURL == "" {
		reason := session.FailedReason
		if reason == "" {
			reason = "no redirect URL in response"
		}
		return "", fmt.Errorf("gateway session rejected: %s", reason)
	}

	return session.GatewayPageURL, nil
}
