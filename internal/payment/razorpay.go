package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"redmango/internal/config"

	"github.com/rs/zerolog"
)

// razorpayClient implements Gateway against the Razorpay Orders API.
type razorpayClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewRazorpayClient creates a Gateway backed by the Razorpay Orders API.
// Credentials come from the supplied configuration, never from globals.
func NewRazorpayClient(cfg config.RazorpayConfig, logger zerolog.Logger) Gateway {
	return &razorpayClient{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("gateway", "razorpay").Logger(),
	}
}

// razorpayErrorEnvelope is the error shape Razorpay returns on non-2xx.
type razorpayErrorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder submits an order creation request. It performs exactly one
// attempt; retry policy belongs to the caller.
func (c *razorpayClient) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order request: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	c.logger.Debug().
		Int64("amount", req.Amount).
		Str("currency", req.Currency).
		Str("receipt", req.Receipt).
		Msg("creating payment order")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error().Err(err).Msg("payment order request failed")
		return nil, fmt.Errorf("payment order request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gwErr := &GatewayError{StatusCode: resp.StatusCode}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if readErr == nil {
			var envelope razorpayErrorEnvelope
			if json.Unmarshal(raw, &envelope) == nil {
				gwErr.Code = envelope.Error.Code
				gwErr.Description = envelope.Error.Description
			}
		}

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("code", gwErr.Code).
			Str("description", gwErr.Description).
			Msg("payment gateway rejected order")

		return nil, gwErr
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		c.logger.Error().Err(err).Msg("failed to decode payment order response")
		return nil, fmt.Errorf("failed to decode payment order response: %w", err)
	}

	if order.ID == "" {
		return nil, fmt.Errorf("payment gateway returned an order without an id")
	}

	c.logger.Info().
		Str("order_id", order.ID).
		Int64("amount", order.Amount).
		Str("currency", order.Currency).
		Msg("payment order created")

	return &order, nil
}
