package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"framescan/internal/models"
)

// Client submits frames to a remote scan service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Scan submits one encoded frame and returns the service's scan result. A
// non-200 response is an error carrying the service's error message.
func (c *Client) Scan(ctx context.Context, frame []byte) (models.ScanResult, error) {
	payload, err := json.Marshal(models.ScanRequest{
		Image: base64.StdEncoding.EncodeToString(frame),
	})
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scan", bytes.NewReader(payload))
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("scan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return models.ScanResult{}, fmt.Errorf("scan rejected: %s", errResp.Error)
		}
		return models.ScanResult{}, fmt.Errorf("scan request failed: HTTP %d", resp.StatusCode)
	}

	var result models.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.ScanResult{}, fmt.Errorf("failed to decode scan response: %w", err)
	}
	return result, nil
}

// Health checks the service's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: HTTP %d", resp.StatusCode)
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", health.Status)
	}
	return nil
}
