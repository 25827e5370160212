// Package gateway wraps the hosted mobile-money payment gateway. The
// gateway's own protocol is opaque; this client only drives the
// verify-by-reference endpoint used by confirmation polling.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/pkg/config"
)

// Status is the settled view of a transaction as reported by the gateway.
type Status string

const (
	StatusPending    Status = "pending"
	StatusSuccessful Status = "successful"
	StatusFailed     Status = "failed"
)

// Client calls the gateway's transaction verification endpoint.
type Client struct {
	httpClient *http.Client
	verifyURL  string
	secretKey  string
	logger     *zap.Logger
}

// NewClient constructs a gateway client from the payment configuration.
func NewClient(cfg config.PaymentConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		verifyURL:  cfg.VerifyURL,
		secretKey:  cfg.SecretKey,
		logger:     logger,
	}
}

type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// VerifyTransaction asks the gateway for the current state of a transaction
// by its external reference.
func (c *Client) VerifyTransaction(ctx context.Context, ref string) (Status, error) {
	u, err := url.Parse(c.verifyURL)
	if err != nil {
		return StatusPending, fmt.Errorf("parse verify url: %w", err)
	}
	q := u.Query()
	q.Set("tx_ref", ref)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return StatusPending, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatusPending, fmt.Errorf("verify transaction: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		// The gateway has not registered the transaction yet.
		return StatusPending, nil
	}
	if resp.StatusCode != http.StatusOK {
		return StatusPending, fmt.Errorf("verify transaction: unexpected status %d", resp.StatusCode)
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return StatusPending, fmt.Errorf("decode verify response: %w", err)
	}

	switch strings.ToLower(payload.Data.Status) {
	case "successful":
		return StatusSuccessful, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}
