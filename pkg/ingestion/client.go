package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client invokes the external file processor service to index a raw file
// URL before it can be queried. Only called for unindexed references.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type ingestRequest struct {
	FileURL        string `json:"file_url"`
	Source         string `json:"source"`
	WaitForVectors bool   `json:"wait_for_vectors"`
}

type ingestResponse struct {
	Status string `json:"status"`
	FileID string `json:"file_id"`
	Error  string `json:"error,omitempty"`
}

// Ingest submits the file for processing and returns the indexed file id.
func (c *Client) Ingest(ctx context.Context, fileURL string) (string, error) {
	if fileURL == "" {
		return "", fmt.Errorf("file url is empty")
	}

	payloadBytes, err := json.Marshal(ingestRequest{
		FileURL:        fileURL,
		Source:         "chat",
		WaitForVectors: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("file processor request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("file processor error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var result ingestResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if result.Status != "success" || result.FileID == "" {
		return "", fmt.Errorf("file processor failed: %s", result.Error)
	}

	return result.FileID, nil
}
