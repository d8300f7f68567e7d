// Package openai talks to an OpenAI-compatible chat-completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"boutique/internal/models"
)

type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	http        *http.Client
}

func New(baseURL, apiKey, model string, temperature float32, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		http:        &http.Client{Timeout: timeout},
	}
}

// StreamChat opens POST /chat/completions with stream=true and hands back
// the raw SSE body. A non-2xx status is returned as an error with the body
// text attached; the stream is never partially consumed here.
func (c *Client) StreamChat(ctx context.Context, messages []models.Message) (io.ReadCloser, error) {
	reqBody := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": c.temperature,
		"stream":      true,
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("chat http %d: %s", resp.StatusCode, string(data))
	}
	return resp.Body, nil
}
