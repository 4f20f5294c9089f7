// Package payment implements the client for the external payment API, which
// fronts Stripe product creation.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nostruffes/catalog/internal/service"
)

// createProductPath is the payment API operation that creates a Stripe
// product.
const createProductPath = "/api/create-stripe-product"

// Client is an HTTP implementation of service.ProductRegistrar. Each
// registration is a single attempt bounded by the configured timeout; the
// caller decides what a failure means.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ service.ProductRegistrar = (*Client)(nil)

// NewClient creates a payment API client. The timeout bounds the whole
// request including connection setup and body read.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "payment"),
	}
}

// createProductResponse is the payment API payload. Error is populated on
// soft failures.
type createProductResponse struct {
	Success         bool   `json:"success"`
	StripeProductID string `json:"stripeProductId"`
	Error           string `json:"error"`
}

// RegisterProduct posts the product to the payment API and returns the Stripe
// product identifier. The request is detached from the caller's cancellation:
// the persistence write that follows needs the outcome even if the caller
// goes away, so the client timeout is the only bound.
func (c *Client) RegisterProduct(ctx context.Context, reg service.ProductRegistration) (string, error) {
	body, err := json.Marshal(reg)
	if err != nil {
		return "", fmt.Errorf("failed to encode registration request: %w", err)
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx),
		http.MethodPost, c.baseURL+createProductPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload createProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode payment API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !payload.Success {
		return "", fmt.Errorf("payment API rejected product registration (status %d): %s", resp.StatusCode, payload.Error)
	}

	c.logger.DebugContext(ctx, "Stripe product registered", "stripe_product_id", payload.StripeProductID)
	return payload.StripeProductID, nil
}
