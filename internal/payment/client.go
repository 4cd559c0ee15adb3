package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tour-booking/pkg/utils"

	"go.uber.org/zap"
)

// Capture is the provider's answer to a capture attempt. Status is compared
// verbatim against the accepted "COMPLETED" sentinel downstream.
type Capture struct {
	OrderID string
	Status  string
}

// OrderService is the provider surface the checkout session needs.
type OrderService interface {
	CreateOrder(ctx context.Context, value int, description string) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*Capture, error)
}

// Client talks to the PayPal Orders v2 API, authenticated through the Loader.
type Client struct {
	baseURL  string
	currency string
	loader   *Loader
	httpc    *http.Client
	log      *zap.Logger
}

func NewClient(config utils.PayPalConfig, loader *Loader, log *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(config.BaseURL, "/"),
		currency: config.Currency,
		loader:   loader,
		// Capture and order creation deliberately carry no client timeout;
		// once a capture starts we wait for the provider's answer.
		httpc: &http.Client{},
		log:   log.With(zap.String("component", "payment_client")),
	}
}

// tokenSource implements TokenSource using the OAuth client-credentials grant.
type tokenSource struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpc        *http.Client
}

func NewTokenSource(config utils.PayPalConfig) TokenSource {
	return &tokenSource{
		baseURL:      strings.TrimRight(config.BaseURL, "/"),
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		httpc:        &http.Client{},
	}
}

func (s *tokenSource) FetchToken(ctx context.Context) (Token, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return Token{}, fmt.Errorf("fetch provider token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Token{}, fmt.Errorf("fetch provider token: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Token{}, fmt.Errorf("decode provider token: %w", err)
	}
	if body.AccessToken == "" {
		return Token{}, fmt.Errorf("provider returned empty access token")
	}

	// Renew a minute early so in-flight calls never carry a stale token
	expiresAt := time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)

	return Token{AccessToken: body.AccessToken, ExpiresAt: expiresAt}, nil
}

// CreateOrder opens a provider order for the given whole-EUR amount and
// returns the provider's order identifier.
func (c *Client) CreateOrder(ctx context.Context, value int, description string) (string, error) {
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{
			{
				"description": description,
				"amount": map[string]string{
					"currency_code": c.currency,
					"value":         fmt.Sprintf("%d.00", value),
				},
			},
		},
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/v2/checkout/orders", payload, &body); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("create order: provider returned no order ID")
	}

	c.log.Info("Payment order created",
		zap.String("order_id", body.ID),
		zap.Int("value", value))

	return body.ID, nil
}

// CaptureOrder captures an approved order and reports the provider's status.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Capture, error) {
	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/v2/checkout/orders/"+orderID+"/capture", struct{}{}, &body); err != nil {
		return nil, fmt.Errorf("capture order %s: %w", orderID, err)
	}

	c.log.Info("Payment capture attempted",
		zap.String("order_id", orderID),
		zap.String("status", body.Status))

	return &Capture{OrderID: body.ID, Status: body.Status}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	token, err := c.loader.Ensure(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
