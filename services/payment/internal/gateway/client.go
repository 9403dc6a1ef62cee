// Package gateway is the outbound client for the payment gateway's orders API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrGateway = errors.New("payment gateway")

type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client creates remote orders the checkout widget pays against.
type Client interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type HTTPClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *HTTPClient) CreateOrder(ctx context.Context, in OrderRequest) (*Order, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error.Description != "" {
			return nil, fmt.Errorf("%w: status %d: %s: %s", ErrGateway, resp.StatusCode, e.Error.Code, e.Error.Description)
		}
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	var out Order
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("%w: response without order id", ErrGateway)
	}
	return &out, nil
}
