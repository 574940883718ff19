// Package push sends notifications to mobile devices through the Expo push
// gateway.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEndpoint = "https://exp.host/--/api/v2/push/send"
	// Expo caps one send request at 100 messages.
	chunkSize = 100
)

// Message is one push notification addressed to a set of device tokens.
type Message struct {
	To    []string       `json:"to"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
	Sound string         `json:"sound,omitempty"`
}

type ticket struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type sendResponse struct {
	Data []ticket `json:"data"`
}

type ExpoClient struct {
	endpoint string
	client   *http.Client
}

func NewExpoClient() *ExpoClient {
	return &ExpoClient{
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewExpoClientWithEndpoint is used by tests to point at a local server.
func NewExpoClientWithEndpoint(endpoint string) *ExpoClient {
	c := NewExpoClient()
	c.endpoint = endpoint
	return c
}

// ValidToken reports whether a string looks like an Expo push token.
func ValidToken(token string) bool {
	return strings.HasPrefix(token, "ExponentPushToken[") && strings.HasSuffix(token, "]")
}

// Send fans a notification out to tokens in chunks of 100. Invalid tokens
// are dropped up front. The returned count is the number of accepted
// tickets; per-ticket errors are logged, not returned, because a partial
// delivery should not fail the admin request that triggered it.
func (c *ExpoClient) Send(ctx context.Context, tokens []string, title, body string, data map[string]any) (int, error) {
	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if ValidToken(t) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	accepted := 0
	for start := 0; start < len(valid); start += chunkSize {
		end := start + chunkSize
		if end > len(valid) {
			end = len(valid)
		}

		n, err := c.sendChunk(ctx, Message{
			To:    valid[start:end],
			Title: title,
			Body:  body,
			Data:  data,
			Sound: "default",
		})
		if err != nil {
			return accepted, err
		}
		accepted += n
	}
	return accepted, nil
}

func (c *ExpoClient) sendChunk(ctx context.Context, msg Message) (int, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("push gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode push response: %w", err)
	}

	accepted := 0
	for _, t := range result.Data {
		if t.Status == "ok" {
			accepted++
			continue
		}
		slog.Warn("push ticket rejected", "status", t.Status, "message", t.Message)
	}
	return accepted, nil
}
