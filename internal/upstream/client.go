// Package upstream talks to the payments API that custodies each wallet's
// account state and accepts signed blocks for broadcast.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/synthron-labs/nanoagent/internal/nanocore"
)

// Client is an HTTP client for the upstream payments API, implementing
// nanocore.AccountInfoProvider plus block publication.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New constructs a Client bound to baseURL, authenticating with apiKey via
// the X-API-Key header.
func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiResponse[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, uri string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+uri, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type accountInfoPayload struct {
	Frontier       string `json:"frontier"`
	Balance        string `json:"balance"`
	Representative string `json:"representative"`
}

// GetAccountInfo implements nanocore.AccountInfoProvider.
func (c *Client) GetAccountInfo(ctx context.Context, address string) (*nanocore.AccountInfo, error) {
	var resp apiResponse[accountInfoPayload]
	if err := c.do(ctx, http.MethodGet, "/account/info/"+address, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("upstream account info: %s", resp.Error)
	}
	return &nanocore.AccountInfo{
		Frontier:       resp.Data.Frontier,
		Balance:        resp.Data.Balance,
		Representative: resp.Data.Representative,
	}, nil
}

// PublishBlock submits a signed state block for broadcast.
func (c *Client) PublishBlock(ctx context.Context, block *nanocore.SignedBlock) error {
	return c.do(ctx, http.MethodPost, "/block/publish", block, nil)
}

// Credits fetches the caller's credit balance, a thin pass-through onto the
// upstream credits endpoint.
func (c *Client) Credits(ctx context.Context, address string) (map[string]any, error) {
	var resp apiResponse[map[string]any]
	if err := c.do(ctx, http.MethodGet, "/credits/"+address, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("upstream credits: %s", resp.Error)
	}
	return *resp.Data, nil
}

// Donate forwards a donation request to the upstream donate endpoint.
func (c *Client) Donate(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var resp apiResponse[map[string]any]
	if err := c.do(ctx, http.MethodPost, "/donate", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("upstream donate: %s", resp.Error)
	}
	return *resp.Data, nil
}
