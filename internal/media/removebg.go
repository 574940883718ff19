package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// RemoveBgClient calls the remove.bg API to strip image backgrounds, used
// for doctor portrait uploads.
type RemoveBgClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewRemoveBgClient(apiKey string) *RemoveBgClient {
	return &RemoveBgClient{
		apiKey:   apiKey,
		endpoint: "https://api.remove.bg/v1.0/removebg",
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewRemoveBgClientWithEndpoint is used by tests.
func NewRemoveBgClientWithEndpoint(apiKey, endpoint string) *RemoveBgClient {
	c := NewRemoveBgClient(apiKey)
	c.endpoint = endpoint
	return c
}

func (c *RemoveBgClient) Configured() bool {
	return c.apiKey != ""
}

// Strip returns the image with its background removed as PNG bytes. On any
// failure the caller falls back to the original image.
func (c *RemoveBgClient) Strip(ctx context.Context, image []byte, filename string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("size", "auto")
	part, err := writer.CreateFormFile("image_file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build remove.bg form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write remove.bg form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish remove.bg form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build remove.bg request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remove.bg unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remove.bg returned status %d", resp.StatusCode)
	}

	stripped, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read remove.bg response: %w", err)
	}
	return stripped, nil
}
