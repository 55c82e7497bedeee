package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
)

const defaultTimeout = 15 * time.Second

// APIClient struct handles all communication with the backend API.
type APIClient struct {
	BaseURL    string
	Token      string
	HttpClient *http.Client
}

// New creates a client for the API rooted at baseURL (without /v1).
// token is sent as a bearer token on every request.
func New(baseURL, token string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HttpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// do is the single, unified helper for making API requests. body is encoded
// as JSON when not nil; a 2xx response is decoded into out when out is not
// nil. Error responses come back as the typed errors the server raised.
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+"/v1"+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create API request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return &errors.StoreError{Op: "reach the server", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.FromStatus(resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errors.StoreError{Op: "decode response", Err: err}
	}
	return nil
}
