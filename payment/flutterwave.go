package payment

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.flutterwave.com/v3"

// ErrMissingCredentials means the client was constructed without a secret
// key. Checkout must abort before any external call when this happens.
var ErrMissingCredentials = errors.New("payment: flutterwave secret key not configured")

// FlutterwaveClient talks to the Flutterwave v3 API for hosted payments.
type FlutterwaveClient struct {
	secretKey   string
	webhookHash string
	redirectURL string
	currency    string
	baseURL     string
	httpClient  *http.Client
}

type FlutterwaveConfig struct {
	SecretKey   string
	WebhookHash string
	RedirectURL string
	Currency    string
	BaseURL     string // defaults to the production API
}

func NewFlutterwaveClient(cfg FlutterwaveConfig) (*FlutterwaveClient, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Currency == "" {
		cfg.Currency = "NGN"
	}
	return &FlutterwaveClient{
		secretKey:   cfg.SecretKey,
		webhookHash: cfg.WebhookHash,
		redirectURL: cfg.RedirectURL,
		currency:    cfg.Currency,
		baseURL:     cfg.BaseURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type initiatePayload struct {
	TxRef       string `json:"tx_ref"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	RedirectURL string `json:"redirect_url"`
	Customer    struct {
		Email string `json:"email"`
		Phone string `json:"phonenumber"`
		Name  string `json:"name"`
	} `json:"customer"`
	Customizations struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"customizations"`
}

type apiEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initiate creates a hosted payment and returns the link the shopper is sent
// to. The charge's terminal outcome arrives later via webhook or redirect.
func (c *FlutterwaveClient) Initiate(ctx context.Context, req ChargeRequest) (*InitiateResult, error) {
	payload := initiatePayload{
		TxRef:       req.TxRef,
		Amount:      FormatAmount(req.AmountKobo),
		Currency:    c.currency,
		RedirectURL: c.redirectURL,
	}
	payload.Customer.Email = req.Customer.Email
	payload.Customer.Phone = req.Customer.Phone
	payload.Customer.Name = req.Customer.Name
	payload.Customizations.Title = "Storefront"
	payload.Customizations.Description = "Secure Payment"

	env, err := c.post(ctx, "/payments", payload)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("payment: initiation rejected: %s", env.Message)
	}

	var data struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("payment: decode initiation response: %w", err)
	}
	return &InitiateResult{TxRef: req.TxRef, PaymentLink: data.Link}, nil
}

// Verify fetches the provider's verdict for a transaction reference. Amounts
// come back in naira and are converted to kobo here.
func (c *FlutterwaveClient) Verify(ctx context.Context, txRef string) (*ChargeOutcome, error) {
	endpoint := "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(txRef)
	env, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("payment: verification rejected: %s", env.Message)
	}

	var data struct {
		ID       int64   `json:"id"`
		TxRef    string  `json:"tx_ref"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("payment: decode verification response: %w", err)
	}

	status := StatusFailed
	switch data.Status {
	case "successful":
		status = StatusSuccessful
	case "cancelled":
		status = StatusCancelled
	}

	return &ChargeOutcome{
		TxRef:         data.TxRef,
		TransactionID: fmt.Sprintf("%d", data.ID),
		Status:        status,
		AmountKobo:    int64(math.Round(data.Amount * 100)),
		Currency:      data.Currency,
	}, nil
}

// VerifyWebhookSignature checks the verif-hash header Flutterwave sends with
// every webhook against the configured hash.
func (c *FlutterwaveClient) VerifyWebhookSignature(signature string) bool {
	if c.webhookHash == "" || signature == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(c.webhookHash)) == 1
}

// WebhookEvent is the subset of the webhook payload checkout cares about.
type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		TxRef  string  `json:"tx_ref"`
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	} `json:"data"`
}

// ParseWebhook decodes a webhook request body after checking its signature.
func (c *FlutterwaveClient) ParseWebhook(r *http.Request) (*WebhookEvent, error) {
	if !c.VerifyWebhookSignature(r.Header.Get("verif-hash")) {
		return nil, errors.New("payment: invalid webhook signature")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("payment: decode webhook: %w", err)
	}
	return &event, nil
}

// FormatAmount renders kobo as the decimal naira string the API expects,
// without going through floating point.
func FormatAmount(kobo int64) string {
	return fmt.Sprintf("%d.%02d", kobo/100, kobo%100)
}

func (c *FlutterwaveClient) post(ctx context.Context, path string, payload any) (*apiEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *FlutterwaveClient) get(ctx context.Context, path string) (*apiEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *FlutterwaveClient) do(req *http.Request) (*apiEnvelope, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment: flutterwave request failed: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("payment: decode flutterwave response (http %d): %w", resp.StatusCode, err)
	}
	return &env, nil
}
